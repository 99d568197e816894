package database_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sahilchouksey/uni-portal/database"
	"github.com/sahilchouksey/uni-portal/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeedData_Embedded(t *testing.T) {
	data, err := database.LoadSeedData("")
	require.NoError(t, err)
	require.NotEmpty(t, data.Universities)

	for _, u := range data.Universities {
		assert.NotEmpty(t, u.Name)
	}
}

func TestSeeder_SeedAllIsIdempotent(t *testing.T) {
	store := dbtest.NewStore(t)
	ctx := context.Background()

	raw := []byte(`
universities:
  - name: Seed University
    location: Seedville
    ranking: 7
    courses:
      - name: Agronomy
        duration_semesters: 8
      - name: Botany
        duration_semesters: 6
    events:
      - name: Harvest Fair
        city: Seedville
        date: 2026-09-01T10:00:00Z
`)
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	data, err := database.LoadSeedData(path)
	require.NoError(t, err)

	seeder := database.NewSeeder(store.GetDB())
	require.NoError(t, seeder.SeedAll(data))
	require.NoError(t, seeder.SeedAll(data))

	universities, err := store.ListUniversities(ctx)
	require.NoError(t, err)
	require.Len(t, universities, 1)
	assert.Equal(t, "Seed University", universities[0].Name)
	assert.Equal(t, 7, universities[0].Ranking)

	courses, err := store.ListCoursesByUniversity(ctx, universities[0].ID)
	require.NoError(t, err)
	assert.Len(t, courses, 2)

	events, err := store.ListEventsByUniversity(ctx, universities[0].ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 2026, events[0].Date.Year())
}

func TestParseSeedData_Invalid(t *testing.T) {
	_, err := database.ParseSeedData([]byte("universities: [unclosed"))
	assert.Error(t, err)
}
