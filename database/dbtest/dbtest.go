// Package dbtest opens throwaway SQLite stores and builds relational fixtures for tests.
package dbtest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/qawatake/fixify"
	"github.com/sahilchouksey/uni-portal/config"
	"github.com/sahilchouksey/uni-portal/database"
	"github.com/sahilchouksey/uni-portal/model"
	"github.com/sahilchouksey/uni-portal/utils/auth"
)

// NewStore opens a migrated SQLite database in a temp dir
func NewStore(tb testing.TB) *database.GORMStore {
	tb.Helper()

	store, err := database.StartGORM(&config.EnviornmentVariable{
		GO_ENV:    "production", // quiet GORM logger
		DB_DRIVER: "sqlite",
		DB_PATH:   filepath.Join(tb.TempDir(), "test.db"),
	})
	if err != nil {
		tb.Fatalf("open test database: %v", err)
	}
	tb.Cleanup(func() { store.Close() })

	if err := store.Init(); err != nil {
		tb.Fatalf("migrate test database: %v", err)
	}
	return store
}

// Setup inserts the fixture models parents first
func Setup(tb testing.TB, store *database.GORMStore, models ...fixify.IModel) {
	tb.Helper()
	db := store.GetDB()
	fixify.New(tb, models...).Iterate(func(v any) error {
		return db.Create(v).Error
	})
}

// University returns a university fixture
func University(setters ...func(u *model.University)) *fixify.Model[model.University] {
	u := &model.University{
		Name:     "University of Testing",
		Location: "Testville",
		Ranking:  100,
	}
	for _, set := range setters {
		set(u)
	}
	return fixify.NewModel(u)
}

// Course returns a course fixture attached to its parent university
func Course(setters ...func(c *model.Course)) *fixify.Model[model.Course] {
	c := &model.Course{
		Name:              "Computer Science",
		DurationSemesters: 6,
		Description:       "Algorithms and systems",
	}
	for _, set := range setters {
		set(c)
	}
	return fixify.NewModel(c,
		fixify.ConnectorFunc(func(_ testing.TB, child *model.Course, parent *model.University) {
			child.UniversityID = parent.ID
		}),
	)
}

// Event returns an event fixture attached to its parent university
func Event(setters ...func(e *model.Event)) *fixify.Model[model.Event] {
	e := &model.Event{
		Name: "Open Day",
		City: "Testville",
		Date: time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, set := range setters {
		set(e)
	}
	return fixify.NewModel(e,
		fixify.ConnectorFunc(func(_ testing.TB, child *model.Event, parent *model.University) {
			child.UniversityID = parent.ID
		}),
	)
}

// User returns a student fixture whose password is "pw123"
func User(setters ...func(u *model.User)) *fixify.Model[model.User] {
	u := &model.User{
		Username:     "alice",
		Email:        "a@x.io",
		PasswordHash: mustHash("pw123"),
		Role:         model.RoleStudent,
	}
	for _, set := range setters {
		set(u)
	}
	return fixify.NewModel(u)
}

// Application returns an application fixture. Attach it to a university and
// a course, and optionally a user.
func Application(setters ...func(a *model.Application)) *fixify.Model[model.Application] {
	a := &model.Application{
		Status: model.StatusPending,
		Intake: "Fall",
		Year:   2026,
	}
	for _, set := range setters {
		set(a)
	}
	return fixify.NewModel(a,
		fixify.ConnectorFunc(func(_ testing.TB, child *model.Application, parent *model.University) {
			child.UniversityID = parent.ID
		}),
		fixify.ConnectorFunc(func(_ testing.TB, child *model.Application, parent *model.Course) {
			child.CourseID = parent.ID
		}),
		fixify.ConnectorFunc(func(_ testing.TB, child *model.Application, parent *model.User) {
			id := parent.ID
			child.UserID = &id
		}),
	)
}

func mustHash(password string) string {
	// lowest cost keeps fixtures fast
	hash, err := auth.HashPasswordWithCost(password, 4)
	if err != nil {
		panic(err)
	}
	return hash
}
