package shell

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/webshell/internal/infrastructure/logging"
)

// ErrLoopClosed is returned by Dispatch after Close.
var ErrLoopClosed = errors.New("event loop closed")

// Loop is a single-consumer event loop. Producers may call Dispatch
// concurrently; tasks run one at a time on the loop goroutine in the order
// they were accepted.
type Loop struct {
	tasks  chan func()
	logger *logging.Logger

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
}

// NewLoop starts a loop with the given queue size. If queueSize <= 0, a
// default is used.
func NewLoop(queueSize int, logger *logging.Logger) *Loop {
	if queueSize <= 0 {
		queueSize = 1024
	}

	l := &Loop{
		tasks:  make(chan func(), queueSize),
		logger: logger.Named("loop"),
		done:   make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for task := range l.tasks {
		l.safeRun(task)
	}
}

// safeRun keeps the loop alive when a task panics
func (l *Loop) safeRun(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event loop task panicked", zap.Any("panic", r))
		}
	}()
	task()
}

// Dispatch enqueues task, blocking until it is accepted or ctx is done.
func (l *Loop) Dispatch(ctx context.Context, task func()) error {
	if task == nil {
		return errors.New("nil task")
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return ErrLoopClosed
	}

	select {
	case l.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks, runs the ones already queued and waits for
// the loop goroutine to exit.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		close(l.tasks)
		l.mu.Unlock()
	})
	<-l.done
}

// Done is closed once the loop has exited
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
