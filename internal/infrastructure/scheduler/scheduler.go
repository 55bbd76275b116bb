package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/protrack/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// JobStatus represents the outcome of the latest run of a job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// JobFunc is the body of a periodic job
type JobFunc func(ctx context.Context) error

// JobStats is a snapshot of a job's run history
type JobStats struct {
	Name      string
	Interval  time.Duration
	Status    JobStatus
	Runs      int64
	Failures  int64
	Skipped   int64
	LastRunAt time.Time
	LastError string
}

type job struct {
	name     string
	interval time.Duration
	timeout  time.Duration
	fn       JobFunc

	mu      sync.Mutex
	running bool
	stats   JobStats
}

// Scheduler runs registered jobs on fixed intervals. A run that is still in
// progress when the next tick fires causes that tick to be skipped.
type Scheduler struct {
	logger *zap.Logger

	mu      sync.Mutex
	jobs    map[string]*job
	order   []string
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// New creates an empty scheduler
func New(l *zap.Logger) *Scheduler {
	return &Scheduler{
		logger: l.Named("scheduler"),
		jobs:   make(map[string]*job),
	}
}

// Every registers fn to run every interval. Each run gets a context bounded
// by the interval so a stuck run cannot block the next one forever.
func (s *Scheduler) Every(name string, interval time.Duration, fn JobFunc) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrSchedulerRunning
	}
	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, name)
	}
	s.jobs[name] = &job{
		name:     name,
		interval: interval,
		timeout:  interval,
		fn:       fn,
		stats:    JobStats{Name: name, Interval: interval, Status: JobStatusPending},
	}
	s.order = append(s.order, name)
	return nil
}

// Start launches one goroutine per registered job
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	s.running = true

	ctx, s.cancel = context.WithCancel(ctx)
	for _, name := range s.order {
		j := s.jobs[name]
		s.wg.Add(1)
		go s.loop(ctx, j)
	}

	s.logger.Info("scheduler started", zap.Strings("jobs", s.order))
	return nil
}

// Stop cancels all jobs and waits for in-flight runs to return or ctx to
// expire
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
		return ctx.Err()
	}
}

// Stats returns a snapshot of every job in registration order
func (s *Scheduler) Stats() []JobStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobStats, 0, len(s.order))
	for _, name := range s.order {
		j := s.jobs[name]
		j.mu.Lock()
		out = append(out, j.stats)
		j.mu.Unlock()
	}
	return out
}

func (s *Scheduler) loop(ctx context.Context, j *job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !j.begin() {
				s.logger.Warn("previous run still in progress, skipping tick", zap.String("job", j.name))
				continue
			}
			s.wg.Add(1)
			go s.run(ctx, j)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, j *job) {
	defer s.wg.Done()

	ctx = logger.WithJob(ctx, j.name)
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("job panicked: %v", r)
			}
		}()
		err = j.fn(ctx)
	}()

	j.finish(err)
	if err != nil {
		logger.Enrich(ctx, s.logger).Error("job failed", zap.Error(err))
	}
}

func (j *job) begin() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		j.stats.Skipped++
		return false
	}
	j.running = true
	j.stats.Status = JobStatusRunning
	j.stats.LastRunAt = time.Now()
	return true
}

func (j *job) finish(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.running = false
	j.stats.Runs++
	if err != nil {
		j.stats.Failures++
		j.stats.Status = JobStatusFailed
		j.stats.LastError = err.Error()
		return
	}
	j.stats.Status = JobStatusSuccess
	j.stats.LastError = ""
}
