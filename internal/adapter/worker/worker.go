package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/khmm12/ping-monitor/internal/common/logging"
	"github.com/khmm12/ping-monitor/internal/common/tracing"
)

var ErrAlreadyRunning = errors.New("worker is already running")

type Task interface {
	Execute(ctx context.Context) error
}

// Worker runs a task immediately and then once per interval until its
// context is canceled. A failed run is logged and never ends the loop.
type Worker struct {
	logger *slog.Logger

	interval time.Duration
	task     Task

	mu sync.Mutex
}

func NewWorker(logger *slog.Logger, interval time.Duration, task Task) *Worker {
	return &Worker{
		logger:   logger,
		interval: interval,
		task:     task,
	}
}

// Run blocks until ctx is canceled. Cancellation interrupts the wait between
// runs, so it never has to sit out a full interval.
func (w *Worker) Run(ctx context.Context) error {
	if !w.mu.TryLock() {
		return ErrAlreadyRunning
	}

	defer w.mu.Unlock()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}

		err := w.run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			w.logger.ErrorContext(ctx, "Failed to execute task", logging.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *Worker) run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()

	return w.task.Execute(tracing.WithCycleID(ctx))
}

type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}
