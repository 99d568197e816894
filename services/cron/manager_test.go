package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sahilchouksey/uni-portal/database/dbtest"
	"github.com/sahilchouksey/uni-portal/model"
	"github.com/sahilchouksey/uni-portal/utils/auth"
	"github.com/sahilchouksey/uni-portal/utils/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunNow_CleanupTokenBlacklist(t *testing.T) {
	store := dbtest.NewStore(t)
	db := store.GetDB()
	ctx := context.Background()

	blacklist := auth.NewBlacklistService(db)
	require.NoError(t, blacklist.RevokeToken(ctx, "expired-jti", 1, time.Now().Add(-time.Hour), "logout"))
	require.NoError(t, blacklist.RevokeToken(ctx, "live-jti", 1, time.Now().Add(time.Hour), "logout"))

	m := NewCronManager(db)
	before := testutil.ToFloat64(metrics.CronRuns.WithLabelValues(JobCleanupTokenBlacklist, model.CronStatusCompleted))
	require.NoError(t, m.RunNow(JobCleanupTokenBlacklist))

	revoked, err := blacklist.IsTokenRevoked(ctx, "live-jti")
	require.NoError(t, err)
	assert.True(t, revoked)

	count, err := blacklist.GetBlacklistedTokenCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var logs []model.CronJobLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, JobCleanupTokenBlacklist, logs[0].JobName)
	assert.Equal(t, model.CronStatusCompleted, logs[0].Status)
	assert.Equal(t, "Removed 1 expired tokens, 1 still revoked", logs[0].Message)
	assert.NotNil(t, logs[0].CompletedAt)

	after := testutil.ToFloat64(metrics.CronRuns.WithLabelValues(JobCleanupTokenBlacklist, model.CronStatusCompleted))
	assert.Equal(t, before+1, after)
}

func TestRunNow_RecordsFailure(t *testing.T) {
	store := dbtest.NewStore(t)
	db := store.GetDB()

	m := NewCronManager(db)
	m.jobs["broken"] = Job{
		Name:     "broken",
		Schedule: "@every 1h",
		Run: func(context.Context) (string, error) {
			return "", errors.New("boom")
		},
	}

	require.EqualError(t, m.RunNow("broken"), "boom")

	var entry model.CronJobLog
	require.NoError(t, db.Where("job_name = ?", "broken").First(&entry).Error)
	assert.Equal(t, model.CronStatusFailed, entry.Status)
	assert.Equal(t, "boom", entry.ErrorMsg)
}

func TestRunNow_UnknownJob(t *testing.T) {
	m := NewCronManager(dbtest.NewStore(t).GetDB())
	assert.Error(t, m.RunNow("nope"))
}

func TestCleanupCronLogs(t *testing.T) {
	store := dbtest.NewStore(t)
	db := store.GetDB()

	old := time.Now().UTC().Add(-40 * 24 * time.Hour)
	require.NoError(t, db.Create(&[]model.CronJobLog{
		{JobName: "a", Status: model.CronStatusCompleted, StartedAt: old},
		{JobName: "b", Status: model.CronStatusRunning, StartedAt: old},
		{JobName: "c", Status: model.CronStatusCompleted, StartedAt: time.Now().UTC()},
	}).Error)

	m := NewCronManager(db)
	message, err := m.CleanupCronLogs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Removed 1 old cron job logs", message)

	var names []string
	require.NoError(t, db.Model(&model.CronJobLog{}).Order("job_name").Pluck("job_name", &names).Error)
	assert.Equal(t, []string{"b", "c"}, names)
}

func TestStartAndStop(t *testing.T) {
	m := NewCronManager(dbtest.NewStore(t).GetDB())
	require.NoError(t, m.Start())
	assert.Len(t, m.cron.Entries(), 2)
	m.Stop()
}
