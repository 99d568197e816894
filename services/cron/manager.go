package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"
	"github.com/sahilchouksey/uni-portal/model"
	"github.com/sahilchouksey/uni-portal/utils/metrics"
	"gorm.io/gorm"
)

// Job is a named unit of background work
type Job struct {
	Name     string
	Schedule string // six-field cron expression, seconds first
	Run      func(ctx context.Context) (string, error)
}

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron    *cron.Cron
	db      *gorm.DB
	jobs    map[string]Job
	timeout time.Duration
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger)))

	m := &CronManager{
		cron:    c,
		db:      db,
		jobs:    make(map[string]Job),
		timeout: 10 * time.Minute,
	}
	for _, job := range m.defaultJobs() {
		m.jobs[job.Name] = job
	}
	return m
}

// Start registers all jobs and starts the scheduler
func (m *CronManager) Start() error {
	log.Info("Starting cron jobs...")

	for _, job := range m.jobs {
		job := job
		if _, err := m.cron.AddFunc(job.Schedule, func() { m.execute(job) }); err != nil {
			return fmt.Errorf("register cron job %s: %w", job.Name, err)
		}
	}

	m.cron.Start()

	log.Infof("Cron jobs started successfully (%d jobs)", len(m.jobs))
	return nil
}

// Stop stops all cron jobs and waits for running ones
func (m *CronManager) Stop() {
	log.Info("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Info("Cron jobs stopped")
}

// RunNow executes a registered job synchronously
func (m *CronManager) RunNow(name string) error {
	job, ok := m.jobs[name]
	if !ok {
		return fmt.Errorf("unknown cron job %q", name)
	}
	return m.execute(job)
}

func (m *CronManager) execute(job Job) error {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	entry := m.logJobStart(job.Name)

	message, err := job.Run(ctx)
	if err != nil {
		m.logJobError(entry, err)
		return err
	}

	m.logJobComplete(entry, message)
	return nil
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(jobName string) *model.CronJobLog {
	log.Infof("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))

	cronLog := &model.CronJobLog{
		JobName:   jobName,
		Status:    model.CronStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := m.db.Create(cronLog).Error; err != nil {
		log.Errorf("[CRON] Failed to record start of %s: %v", jobName, err)
	}
	return cronLog
}

// logJobComplete logs successful completion of a cron job
func (m *CronManager) logJobComplete(entry *model.CronJobLog, message string) {
	log.Infof("[CRON] Completed job: %s - %s", entry.JobName, message)
	metrics.CronRuns.WithLabelValues(entry.JobName, model.CronStatusCompleted).Inc()
	m.finish(entry, map[string]interface{}{
		"status":  model.CronStatusCompleted,
		"message": message,
	})
}

// logJobError logs a cron job error
func (m *CronManager) logJobError(entry *model.CronJobLog, err error) {
	log.Errorf("[CRON] Error in job: %s - %v", entry.JobName, err)
	metrics.CronRuns.WithLabelValues(entry.JobName, model.CronStatusFailed).Inc()
	m.finish(entry, map[string]interface{}{
		"status":    model.CronStatusFailed,
		"error_msg": err.Error(),
	})
}

func (m *CronManager) finish(entry *model.CronJobLog, updates map[string]interface{}) {
	if entry.ID == 0 {
		return
	}
	now := time.Now().UTC()
	updates["completed_at"] = now
	updates["duration"] = now.Sub(entry.StartedAt).Milliseconds()

	if err := m.db.Model(&model.CronJobLog{}).Where("id = ?", entry.ID).Updates(updates).Error; err != nil {
		log.Errorf("[CRON] Failed to record result of %s: %v", entry.JobName, err)
	}
}
