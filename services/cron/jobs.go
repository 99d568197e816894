package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/uni-portal/model"
	"github.com/sahilchouksey/uni-portal/utils/auth"
)

// Job names
const (
	JobCleanupTokenBlacklist = "cleanup_token_blacklist"
	JobCleanupCronLogs       = "cleanup_cron_logs"
)

// cronLogRetention is how long job history is kept
const cronLogRetention = 30 * 24 * time.Hour

func (m *CronManager) defaultJobs() []Job {
	return []Job{
		// Every hour: purge expired revoked tokens
		{Name: JobCleanupTokenBlacklist, Schedule: "0 0 * * * *", Run: m.CleanupTokenBlacklist},
		// Daily at 2 AM: trim job history
		{Name: JobCleanupCronLogs, Schedule: "0 0 2 * * *", Run: m.CleanupCronLogs},
	}
}

// CleanupTokenBlacklist removes revoked tokens that have expired anyway
func (m *CronManager) CleanupTokenBlacklist(ctx context.Context) (string, error) {
	blacklist := auth.NewBlacklistService(m.db)

	deleted, err := blacklist.CleanupExpiredTokens(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to cleanup token blacklist: %w", err)
	}

	remaining, err := blacklist.GetBlacklistedTokenCount(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to count token blacklist: %w", err)
	}

	return fmt.Sprintf("Removed %d expired tokens, %d still revoked", deleted, remaining), nil
}

// CleanupCronLogs removes finished job logs older than the retention window
func (m *CronManager) CleanupCronLogs(ctx context.Context) (string, error) {
	cutoff := time.Now().UTC().Add(-cronLogRetention)

	result := m.db.WithContext(ctx).
		Where("started_at < ? AND status <> ?", cutoff, model.CronStatusRunning).
		Delete(&model.CronJobLog{})
	if result.Error != nil {
		return "", fmt.Errorf("failed to cleanup cron logs: %w", result.Error)
	}

	return fmt.Sprintf("Removed %d old cron job logs", result.RowsAffected), nil
}
