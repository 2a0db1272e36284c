package app

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/weatherpi/internal/observability"
	"github.com/five82/weatherpi/internal/schedule"
)

// State is the kiosk lifecycle state.
type State int32

const (
	Starting State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Surface is the display the lifecycle drives. *tea.Program satisfies it.
type Surface interface {
	Send(msg tea.Msg)
	Quit()
}

var errNoSurface = errors.New("no display surface attached")

// Lifecycle gates display updates on the kiosk state and owns teardown.
type Lifecycle struct {
	state  atomic.Int32
	logger *zap.Logger

	sched   *schedule.Scheduler
	surface Surface

	mu    sync.Mutex
	fatal error

	stopOnce sync.Once
	stopErr  error
}

func newLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{logger: logger}
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() State {
	return State(l.state.Load())
}

// start moves Starting to Running and starts the scheduler.
func (l *Lifecycle) start() error {
	if l.surface == nil {
		return errNoSurface
	}
	if !l.state.CompareAndSwap(int32(Starting), int32(Running)) {
		return errors.New("kiosk already started")
	}
	l.sched.Start()
	l.logger.Info("kiosk running")
	return nil
}

// Dispatch forwards msg to the surface if the kiosk is running. Messages
// arriving in any other state are dropped.
func (l *Lifecycle) Dispatch(msg tea.Msg) bool {
	if l.State() != Running {
		observability.DroppedDispatchesTotal.Inc()
		return false
	}
	l.surface.Send(msg)
	return true
}

// Fail records a fatal error and asks the surface to quit. Only the first
// error is kept. Teardown happens in Stop once the surface has exited, so
// Fail is safe to call from a task.
func (l *Lifecycle) Fail(err error) {
	l.mu.Lock()
	if l.fatal == nil {
		l.fatal = err
	}
	l.mu.Unlock()

	l.logger.Error("kiosk failed", zap.Error(err))
	if l.surface != nil {
		l.surface.Quit()
	}
}

// Err returns the fatal error passed to Fail, if any.
func (l *Lifecycle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fatal
}

// Stop cancels both tasks and then closes the surface if it was running. It blocks until
// in-flight tasks return. Only the first call does work; later calls wait
// for it and return its result. Stop must not be called from a task.
func (l *Lifecycle) Stop() error {
	l.stopOnce.Do(func() {
		prev := State(l.state.Swap(int32(Stopped)))
		if l.sched != nil {
			l.stopErr = l.sched.Stop()
		}
		// A surface that never ran has no loop to receive Quit.
		if prev == Running && l.surface != nil {
			l.surface.Quit()
		}
		l.logger.Info("kiosk stopped", zap.Stringer("from", prev))
	})
	return l.stopErr
}

// onHalt is the scheduler's halt handler.
func (l *Lifecycle) onHalt(name string, err error) {
	l.Fail(fmt.Errorf("%s task halted: %w", name, err))
}
