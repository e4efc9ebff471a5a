// Package jobs runs periodic maintenance work on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"anoa.com/edapp/pkg/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a unit of background work. A job with an empty Schedule is
// registered but never fired.
type Job interface {
	Name() string
	Schedule() string
	Run(ctx context.Context) error
}

type Scheduler struct {
	cron *cron.Cron
	jobs []Job
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		jobs: make([]Job, 0),
	}
}

// Every renders a cron spec that fires at a fixed interval.
func Every(d time.Duration) string {
	return fmt.Sprintf("@every %s", d)
}

func (s *Scheduler) Register(job Job) error {
	if spec := job.Schedule(); spec != "" {
		if _, err := s.cron.AddFunc(spec, func() { s.run(context.Background(), job) }); err != nil {
			return fmt.Errorf("schedule %s: %w", job.Name(), err)
		}
		logger.Log.Info("job scheduled", zap.String("job", job.Name()), zap.String("schedule", spec))
	}

	s.jobs = append(s.jobs, job)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Log.Info("scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop halts the schedule and waits for running jobs to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Log.Info("scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context, job Job) error {
	start := time.Now()
	if err := job.Run(ctx); err != nil {
		logger.Log.Error("job failed", zap.String("job", job.Name()), zap.Error(err))
		return err
	}
	logger.Log.Debug("job finished", zap.String("job", job.Name()), zap.Duration("took", time.Since(start)))
	return nil
}
