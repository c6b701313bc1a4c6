package main

import (
	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Maintenance schedules in standard cron format
const (
	cleanTokensSchedule = "0 3 * * *"  // daily at 03:00
	cleanJobsSchedule   = "30 3 * * *" // daily at 03:30
)

// Scheduler enqueues recurring maintenance tasks on a cron schedule
type Scheduler struct {
	cron        *cron.Cron
	asynqClient *asynq.Client
	logger      *zap.Logger
}

// NewScheduler creates a new scheduler instance
func NewScheduler(asynqClient *asynq.Client, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		asynqClient: asynqClient,
		logger:      logger,
	}
}

// Start registers the maintenance jobs and starts the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(cleanTokensSchedule, func() {
		s.enqueue(taskTypeCleanTokens)
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(cleanJobsSchedule, func() {
		s.enqueue(taskTypeCleanJobs)
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Maintenance scheduler started")
	return nil
}

// Stop stops the cron loop and waits for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Maintenance scheduler stopped")
}

// enqueue puts a maintenance task on the queue
func (s *Scheduler) enqueue(taskType string) {
	task := asynq.NewTask(taskType, nil)
	if _, err := s.asynqClient.Enqueue(task, asynq.Queue("maintenance")); err != nil {
		s.logger.Error("Failed to enqueue maintenance task",
			zap.String("type", taskType),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("Enqueued maintenance task", zap.String("type", taskType))
}
