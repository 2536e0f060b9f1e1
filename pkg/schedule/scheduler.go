// Package schedule implements spec.md §4.4: periodic, non-overlapping
// collection and maintenance jobs. There is no single teacher source file
// to port here — cmd/* control-plane sources were filtered out of the
// retrieval pack — so the scheduler is built from the teacher's broader
// idiom (a cooperative-task model, no unbounded goroutine sprawl) plus
// golang.org/x/sync's semaphore/errgroup primitives, which the teacher
// already depends on for its own worker pools.
package schedule

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job describes one scheduler entry: how often it fires and whether it is
// enabled. Name is also the non-overlap lock's job component and the
// label used in scheduler logs.
type Job struct {
	Name     string
	Interval time.Duration
	Enabled  bool
}

type registeredJob struct {
	job  Job
	task Task
}

// Scheduler runs a set of registered (Job, Task) pairs on independent
// tickers. It guarantees non-overlap per (job name, fan-out key): if a
// previous tick for that pair hasn't finished, the next one is skipped and
// logged (spec.md §4.4).
type Scheduler struct {
	logger        *zap.Logger
	shutdownGrace time.Duration

	mu   sync.Mutex
	jobs []registeredJob

	inflight sync.Map // lockKey -> struct{}
	wg       sync.WaitGroup

	workCtx    context.Context
	cancelWork context.CancelFunc
}

// NewScheduler creates a Scheduler. shutdownGrace is how long Shutdown
// waits for in-flight ticks to finish on their own before their context is
// cancelled out from under them (spec.md §4.4 "Cancellation").
func NewScheduler(logger *zap.Logger, shutdownGrace time.Duration) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	workCtx, cancelWork := context.WithCancel(context.Background())
	return &Scheduler{
		logger:        logger,
		shutdownGrace: shutdownGrace,
		workCtx:       workCtx,
		cancelWork:    cancelWork,
	}
}

// Register adds a job. Call before Start; registering after Start is not
// supported (jobs are fixed for the process lifetime per spec.md §4.4's
// "on start" framing).
func (s *Scheduler) Register(job Job, task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, registeredJob{job: job, task: task})
}

// Start launches one ticker goroutine per enabled job. ctx controls the
// ticker loops themselves — cancel it to stop scheduling new ticks, then
// call Shutdown to drain (or forcibly cancel) whatever is already running.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	jobs := append([]registeredJob(nil), s.jobs...)
	s.mu.Unlock()

	for _, rj := range jobs {
		if !rj.job.Enabled {
			continue
		}
		s.wg.Add(1)
		go s.runJobLoop(ctx, rj)
	}
}

func (s *Scheduler) runJobLoop(ctx context.Context, rj registeredJob) {
	defer s.wg.Done()
	ticker := time.NewTicker(rj.job.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fireTick(rj)
		}
	}
}

func (s *Scheduler) fireTick(rj registeredJob) {
	keys, err := rj.task.Keys(s.workCtx)
	if err != nil {
		s.logger.Error("listing fan-out keys failed", zap.String("job", rj.job.Name), zap.Error(err))
		return
	}

	for _, key := range keys {
		lockKey := rj.job.Name + "/" + key
		if _, alreadyRunning := s.inflight.LoadOrStore(lockKey, struct{}{}); alreadyRunning {
			s.logger.Warn("skipping tick: previous invocation still running",
				zap.String("job", rj.job.Name), zap.String("key", key))
			continue
		}

		s.wg.Add(1)
		go func(rj registeredJob, key, lockKey string) {
			defer s.wg.Done()
			defer s.inflight.Delete(lockKey)
			if err := rj.task.RunFor(s.workCtx, key); err != nil {
				s.logger.Error("tick failed", zap.String("job", rj.job.Name), zap.String("key", key), zap.Error(err))
			}
		}(rj, key, lockKey)
	}
}

// Shutdown waits up to shutdownGrace for in-flight ticks to drain on their
// own; if any remain after that, it cancels the work context shared by all
// running RunFor calls, so pending HTTP requests are cancelled and ticks
// abandon remaining work (partial batches are fine — the Store's
// per-device atomicity keeps each write consistent, spec.md §4.4).
func (s *Scheduler) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(s.shutdownGrace):
		s.logger.Warn("shutdown grace period elapsed, cancelling in-flight ticks")
		s.cancelWork()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
