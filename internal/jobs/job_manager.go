package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

type Job interface {
	Name() string
	Run(ctx context.Context) error
	RequiresLeadership() bool
	Interval() time.Duration
}

// Leadership reports whether this instance currently holds the lease.
type Leadership interface {
	IsLeader() bool
}

type JobManager struct {
	jobs          []Job
	election      Leadership
	checkInterval time.Duration
	logger        *slog.Logger
	wg            sync.WaitGroup
	cancelFuncs   map[string]context.CancelFunc
	mu            sync.Mutex
}

// NewJobManager runs leader jobs only while election reports leadership. A
// nil election runs them unconditionally. checkInterval is how often
// leadership is polled.
func NewJobManager(election Leadership, checkInterval time.Duration, logger *slog.Logger) *JobManager {
	if checkInterval <= 0 {
		checkInterval = 10 * time.Second
	}

	return &JobManager{
		jobs:          make([]Job, 0),
		election:      election,
		checkInterval: checkInterval,
		logger:        logger,
		cancelFuncs:   make(map[string]context.CancelFunc),
	}
}

func (jm *JobManager) Register(job Job) {
	jm.jobs = append(jm.jobs, job)
}

func (jm *JobManager) Start(ctx context.Context) {
	jm.startJobs(ctx, false)

	if jm.election != nil {
		jm.wg.Add(1)
		go jm.monitorLeadership(ctx)
	} else {
		jm.startJobs(ctx, true)
	}
}

func (jm *JobManager) Shutdown(ctx context.Context) {
	jm.logger.Debug("shutting down job manager")
	jm.stopJobs(func(Job) bool { return true })

	done := make(chan struct{})
	go func() {
		jm.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		jm.logger.Debug("all jobs stopped cleanly")
	case <-ctx.Done():
		jm.logger.Warn("jobs failed to shut down in time")
	}
}

// Running reports whether the named job has been started and not stopped.
func (jm *JobManager) Running(name string) bool {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	_, ok := jm.cancelFuncs[name]
	return ok
}

func (jm *JobManager) monitorLeadership(ctx context.Context) {
	defer jm.wg.Done()
	ticker := time.NewTicker(jm.checkInterval)
	defer ticker.Stop()

	var wasLeader bool

	for {
		select {
		case <-ctx.Done():
			jm.stopJobs(Job.RequiresLeadership)
			return
		case <-ticker.C:
			isLeader := jm.election.IsLeader()

			if isLeader && !wasLeader {
				jm.logger.Info("became leader, starting leader jobs")
				jm.startJobs(ctx, true)
			} else if !isLeader && wasLeader {
				jm.logger.Info("lost leadership, stopping leader jobs")
				jm.stopJobs(Job.RequiresLeadership)
			}

			wasLeader = isLeader
		}
	}
}

func (jm *JobManager) startJobs(ctx context.Context, leaderJobs bool) {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	for _, job := range jm.jobs {
		if job.RequiresLeadership() != leaderJobs {
			continue
		}

		if _, exists := jm.cancelFuncs[job.Name()]; exists {
			continue
		}

		jobCtx, cancel := context.WithCancel(ctx)
		jm.cancelFuncs[job.Name()] = cancel

		jm.wg.Add(1)
		go func(j Job) {
			defer jm.wg.Done()
			jm.logger.Info("starting job", "job", j.Name(), "interval", j.Interval())
			if err := j.Run(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				jm.logger.Error("job failed", "job", j.Name(), "error", err)
			}
		}(job)
	}
}

func (jm *JobManager) stopJobs(match func(Job) bool) {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	for _, job := range jm.jobs {
		if !match(job) {
			continue
		}

		if cancel, exists := jm.cancelFuncs[job.Name()]; exists {
			jm.logger.Debug("stopping job", "job", job.Name())
			cancel()
			delete(jm.cancelFuncs, job.Name())
		}
	}
}
