// Package schedule runs the kiosk's periodic refresh tasks.
//
// Each task is an independent repeating timer registered on one gocron
// scheduler sharing one clock. A task that returns an error halts its own
// cycle; the other tasks keep running. Stop cancels everything and is safe to
// call more than once.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Task is one unit of periodic work. Returning an error stops the task from
// ever running again.
type Task func(ctx context.Context) error

// HaltFunc is called once when a task halts. It runs on the task's
// goroutine and must not call Stop.
type HaltFunc func(name string, err error)

// Options configure a Scheduler.
type Options struct {
	Clock  clockwork.Clock
	Logger *zap.Logger
	OnHalt HaltFunc
	// StopTimeout bounds how long Stop waits for in-flight tasks.
	StopTimeout time.Duration
}

const defaultStopTimeout = 10 * time.Second

// ErrStopped is returned when registering a task after Stop.
var ErrStopped = errors.New("scheduler stopped")

// Scheduler owns the periodic tasks.
type Scheduler struct {
	cron   gocron.Scheduler
	clock  clockwork.Clock
	logger *zap.Logger
	onHalt HaltFunc

	ctx    context.Context
	cancel context.CancelFunc

	stopping atomic.Bool
	stopOnce sync.Once
	stopErr  error

	mu    sync.Mutex
	tasks map[string]*periodic
}

type periodic struct {
	name   string
	task   Task
	id     uuid.UUID
	halted atomic.Bool
	runs   atomic.Int64
}

// New builds a stopped scheduler. Call Every to register tasks, then Start.
func New(opts Options) (*Scheduler, error) {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	stopTimeout := opts.StopTimeout
	if stopTimeout <= 0 {
		stopTimeout = defaultStopTimeout
	}

	cron, err := gocron.NewScheduler(
		gocron.WithClock(clock),
		gocron.WithLogger(cronLogger{logger.Sugar()}),
		gocron.WithStopTimeout(stopTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron,
		clock:  clock,
		logger: logger,
		onHalt: opts.OnHalt,
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(map[string]*periodic),
	}, nil
}

// Clock returns the clock driving the scheduler.
func (s *Scheduler) Clock() clockwork.Clock {
	return s.clock
}

// Every registers task to run every period. With immediate set the first run
// happens as soon as the scheduler starts; otherwise one period after.
func (s *Scheduler) Every(name string, period time.Duration, immediate bool, task Task) error {
	if s.stopping.Load() {
		return ErrStopped
	}
	if period <= 0 {
		return fmt.Errorf("task %s: period must be positive, got %s", name, period)
	}
	if task == nil {
		return fmt.Errorf("task %s: nil task", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.tasks[name]; dup {
		return fmt.Errorf("task %s: already registered", name)
	}

	p := &periodic{name: name, task: task}
	opts := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithContext(s.ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if immediate {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}
	job, err := s.cron.NewJob(
		gocron.DurationJob(period),
		gocron.NewTask(func(ctx context.Context) { s.run(ctx, p) }),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("create %s job: %w", name, err)
	}
	p.id = job.ID()
	s.tasks[name] = p
	return nil
}

// Start begins firing registered tasks.
func (s *Scheduler) Start() {
	if s.stopping.Load() {
		return
	}
	s.cron.Start()
}

// Stop cancels pending firings, cancels the context of in-flight tasks and
// waits for them to return. Later calls return the first call's result.
func (s *Scheduler) Stop() error {
	s.stopOnce.Do(func() {
		s.stopping.Store(true)
		s.cancel()
		if err := s.cron.Shutdown(); err != nil {
			s.stopErr = fmt.Errorf("shutdown scheduler: %w", err)
		}
	})
	return s.stopErr
}

// Halted reports whether the named task stopped itself with an error.
func (s *Scheduler) Halted(name string) bool {
	s.mu.Lock()
	p, ok := s.tasks[name]
	s.mu.Unlock()
	return ok && p.halted.Load()
}

// Runs reports how many times the named task body has started.
func (s *Scheduler) Runs(name string) int64 {
	s.mu.Lock()
	p, ok := s.tasks[name]
	s.mu.Unlock()
	if !ok {
		return 0
	}
	return p.runs.Load()
}

func (s *Scheduler) run(ctx context.Context, p *periodic) {
	if s.stopping.Load() || p.halted.Load() || ctx.Err() != nil {
		return
	}
	p.runs.Add(1)

	err := p.task(ctx)
	if err == nil {
		return
	}
	if ctx.Err() != nil {
		// Cancelled by Stop; not a task failure.
		s.logger.Debug("task cancelled", zap.String("task", p.name), zap.Error(err))
		return
	}
	if !p.halted.CompareAndSwap(false, true) {
		return
	}
	s.logger.Error("task halted", zap.String("task", p.name), zap.Error(err))
	go func() {
		if rmErr := s.cron.RemoveJob(p.id); rmErr != nil && !s.stopping.Load() {
			s.logger.Warn("remove halted task", zap.String("task", p.name), zap.Error(rmErr))
		}
	}()
	if s.onHalt != nil {
		s.onHalt(p.name, err)
	}
}

// cronLogger adapts zap to gocron's key/value logger.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Debug(msg string, args ...any) { c.l.Debugw(msg, args...) }
func (c cronLogger) Info(msg string, args ...any)  { c.l.Infow(msg, args...) }
func (c cronLogger) Warn(msg string, args ...any)  { c.l.Warnw(msg, args...) }
func (c cronLogger) Error(msg string, args ...any) { c.l.Errorw(msg, args...) }
