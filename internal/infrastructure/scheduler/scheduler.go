// Package scheduler runs periodic maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a unit of periodic work
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Config holds scheduler settings
type Config struct {
	// Location the cron expressions are evaluated in
	Location *time.Location
	// JobTimeout bounds a single run
	JobTimeout time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Location:   time.UTC,
		JobTimeout: 5 * time.Minute,
	}
}

// Scheduler wraps a seconds-precision cron. Overlapping runs of the same job
// are skipped and panics are recovered.
type Scheduler struct {
	cron    *cron.Cron
	config  Config
	logger  *zap.Logger
	baseCtx context.Context
	cancel  context.CancelFunc
}

// New creates a scheduler
func New(config Config, logger *zap.Logger) *Scheduler {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = DefaultConfig().JobTimeout
	}

	cronLogger := zapCronLogger{logger: logger.Sugar()}
	c := cron.New(
		cron.WithLocation(config.Location),
		cron.WithSeconds(),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    c,
		config:  config,
		logger:  logger,
		baseCtx: ctx,
		cancel:  cancel,
	}
}

// Register adds job on spec, a six-field cron expression or descriptor
// such as "@every 1h".
func (s *Scheduler) Register(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() { s.runJob(job) })
	if err != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrInvalidSchedule, job.Name(), spec, err)
	}
	s.logger.Info("Scheduled job registered",
		zap.String("job", job.Name()),
		zap.String("schedule", spec),
	)
	return nil
}

// Run starts the cron and blocks until ctx is cancelled, then waits for
// running jobs to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("Starting cron scheduler", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()

	<-ctx.Done()

	s.logger.Info("Stopping cron scheduler")
	s.cancel()
	<-s.cron.Stop().Done()
	s.logger.Info("Cron scheduler stopped")
	return nil
}

// RunNow executes job synchronously with the scheduler's timeout
func (s *Scheduler) RunNow(job Job) {
	s.runJob(job)
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) runJob(job Job) {
	ctx, cancel := context.WithTimeout(s.baseCtx, s.config.JobTimeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.logger.Error("Scheduled job failed",
			zap.String("job", job.Name()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("Scheduled job completed",
		zap.String("job", job.Name()),
		zap.Duration("duration", time.Since(start)),
	)
}

// zapCronLogger adapts zap to cron.Logger
type zapCronLogger struct {
	logger *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
