package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/qawatake/fixify"
	"github.com/sahilchouksey/uni-portal/database"
	"github.com/sahilchouksey/uni-portal/database/dbtest"
	"github.com/sahilchouksey/uni-portal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_DuplicateUsername(t *testing.T) {
	store := dbtest.NewStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, &model.User{Username: "alice", Email: "a@x.io", PasswordHash: "h"}))

	err := store.CreateUser(ctx, &model.User{Username: "alice", Email: "other@x.io", PasswordHash: "h"})
	assert.ErrorIs(t, err, database.ErrUsernameTaken)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store := dbtest.NewStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, &model.User{Username: "alice", Email: "a@x.io", PasswordHash: "h"}))

	err := store.CreateUser(ctx, &model.User{Username: "bob", Email: "a@x.io", PasswordHash: "h"})
	assert.ErrorIs(t, err, database.ErrEmailTaken)
}

func TestCreateUser_DefaultsAndLookup(t *testing.T) {
	store := dbtest.NewStore(t)
	ctx := context.Background()

	user := &model.User{Username: "alice", Email: "a@x.io", PasswordHash: "h"}
	require.NoError(t, store.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)

	got, err := store.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, model.RoleStudent, got.Role)
	assert.WithinDuration(t, time.Now().UTC(), got.CreatedAt, time.Minute)

	_, err = store.FindUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, database.ErrNotFound)

	exists, err := store.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.EmailExists(ctx, "nobody@x.io")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListUniversities_StorageOrder(t *testing.T) {
	store := dbtest.NewStore(t)
	ctx := context.Background()

	universities, err := store.ListUniversities(ctx)
	require.NoError(t, err)
	assert.NotNil(t, universities)
	assert.Empty(t, universities)

	for _, name := range []string{"Zeta", "Alpha", "Mu"} {
		require.NoError(t, store.CreateUniversity(ctx, &model.University{Name: name}))
	}

	universities, err = store.ListUniversities(ctx)
	require.NoError(t, err)
	require.Len(t, universities, 3)
	assert.Equal(t, "Zeta", universities[0].Name)
	assert.Equal(t, "Alpha", universities[1].Name)
	assert.Equal(t, "Mu", universities[2].Name)
}

func TestListCoursesByUniversity(t *testing.T) {
	store := dbtest.NewStore(t)
	ctx := context.Background()

	var withCourses, empty *fixify.Model[model.University]
	dbtest.Setup(t, store,
		dbtest.University(func(u *model.University) { u.Name = "With courses" }).Bind(&withCourses).With(
			dbtest.Course(func(c *model.Course) { c.Name = "Informatics" }),
			dbtest.Course(func(c *model.Course) { c.Name = "Physics" }),
		),
		dbtest.University(func(u *model.University) { u.Name = "Empty" }).Bind(&empty),
	)

	courses, err := store.ListCoursesByUniversity(ctx, withCourses.Value().ID)
	require.NoError(t, err)
	assert.Len(t, courses, 2)
	for _, c := range courses {
		assert.Equal(t, withCourses.Value().ID, c.UniversityID)
	}

	courses, err = store.ListCoursesByUniversity(ctx, empty.Value().ID)
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)

	courses, err = store.ListCoursesByUniversity(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestListEventsByUniversity_OrderedByDate(t *testing.T) {
	store := dbtest.NewStore(t)
	ctx := context.Background()

	var uni *fixify.Model[model.University]
	dbtest.Setup(t, store,
		dbtest.University().Bind(&uni).With(
			dbtest.Event(func(e *model.Event) {
				e.Name = "Later"
				e.Date = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
			}),
			dbtest.Event(func(e *model.Event) {
				e.Name = "Sooner"
				e.Date = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
			}),
		),
	)

	events, err := store.ListEventsByUniversity(ctx, uni.Value().ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Sooner", events[0].Name)
	assert.Equal(t, "Later", events[1].Name)
}

func TestCreateApplication_DefaultsToPending(t *testing.T) {
	store := dbtest.NewStore(t)
	ctx := context.Background()

	var uni *fixify.Model[model.University]
	var course *fixify.Model[model.Course]
	dbtest.Setup(t, store,
		dbtest.University().Bind(&uni).With(dbtest.Course().Bind(&course)),
	)

	app := &model.Application{
		UniversityID: uni.Value().ID,
		CourseID:     course.Value().ID,
		Intake:       "Fall",
		Year:         2026,
	}
	require.NoError(t, store.CreateApplication(ctx, app))

	recent, err := store.ListRecentApplications(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, model.StatusPending, recent[0].Status)
	assert.Nil(t, recent[0].UserID)
	require.NotNil(t, recent[0].University)
	require.NotNil(t, recent[0].Course)
	assert.Equal(t, uni.Value().Name, recent[0].University.Name)
	assert.Equal(t, course.Value().Name, recent[0].Course.Name)
}

func TestListRecentApplications_NewestFirstWithUser(t *testing.T) {
	store := dbtest.NewStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	var user *fixify.Model[model.User]
	first := dbtest.Application(func(a *model.Application) {
		a.Intake = "Spring"
		a.CreatedAt = now.Add(-time.Hour)
	})
	second := dbtest.Application(func(a *model.Application) {
		a.Intake = "Fall"
		a.CreatedAt = now
	})
	dbtest.Setup(t, store,
		dbtest.University().With(
			dbtest.Course().With(first, second),
			first,
			second,
		),
		dbtest.User().Bind(&user).With(second),
	)

	recent, err := store.ListRecentApplications(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	assert.Equal(t, "Fall", recent[0].Intake)
	require.NotNil(t, recent[0].UserID)
	assert.Equal(t, user.Value().ID, *recent[0].UserID)

	assert.Equal(t, "Spring", recent[1].Intake)
	assert.Nil(t, recent[1].UserID)
}

func TestGetUniversityAndCourse_NotFound(t *testing.T) {
	store := dbtest.NewStore(t)
	ctx := context.Background()

	_, err := store.GetUniversity(ctx, 42)
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = store.GetCourse(ctx, 42)
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = store.GetUser(ctx, 42)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestHealthCheck(t *testing.T) {
	store := dbtest.NewStore(t)
	assert.NoError(t, store.HealthCheck())
}
