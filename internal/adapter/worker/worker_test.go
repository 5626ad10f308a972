package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/khmm12/ping-monitor/internal/common/tracing"
)

type taskFunc func(ctx context.Context) error

func (f taskFunc) Execute(ctx context.Context) error { return f(ctx) }

func TestWorker_RunsImmediatelyAndPerInterval(t *testing.T) {
	var runs atomic.Int32

	w := newTestWorker(20*time.Millisecond, taskFunc(func(context.Context) error {
		runs.Add(1)
		return nil
	}))

	ctx, cancel := context.WithCancel(t.Context())
	done := runWorker(ctx, w)

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWorker_StopsDuringLongSleep(t *testing.T) {
	started := make(chan struct{}, 1)

	w := newTestWorker(time.Hour, taskFunc(func(context.Context) error {
		started <- struct{}{}
		return nil
	}))

	ctx, cancel := context.WithCancel(t.Context())
	done := runWorker(ctx, w)

	<-started
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop within the grace period")
	}
}

func TestWorker_KeepsRunningAfterFailures(t *testing.T) {
	var runs atomic.Int32

	w := newTestWorker(5*time.Millisecond, taskFunc(func(context.Context) error {
		if runs.Add(1) == 1 {
			panic("boom")
		}

		return errors.New("cycle failed")
	}))

	ctx, cancel := context.WithCancel(t.Context())
	done := runWorker(ctx, w)

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWorker_EachRunHasCycleID(t *testing.T) {
	ids := make(chan string, 2)

	w := newTestWorker(5*time.Millisecond, taskFunc(func(ctx context.Context) error {
		select {
		case ids <- tracing.CycleID(ctx):
		default:
		}

		return nil
	}))

	ctx, cancel := context.WithCancel(t.Context())
	done := runWorker(ctx, w)

	first, second := <-ids, <-ids
	cancel()
	require.NoError(t, <-done)

	require.NotEmpty(t, first)
	require.NotEqual(t, first, second)
}

func TestWorker_RejectsConcurrentRun(t *testing.T) {
	started := make(chan struct{}, 1)

	w := newTestWorker(time.Hour, taskFunc(func(context.Context) error {
		started <- struct{}{}
		return nil
	}))

	ctx, cancel := context.WithCancel(t.Context())
	done := runWorker(ctx, w)
	<-started

	require.ErrorIs(t, w.Run(ctx), ErrAlreadyRunning)

	cancel()
	require.NoError(t, <-done)
}

func newTestWorker(interval time.Duration, task Task) *Worker {
	return NewWorker(slog.New(slog.NewTextHandler(io.Discard, nil)), interval, task)
}

func runWorker(ctx context.Context, w *Worker) <-chan error {
	done := make(chan error, 1)

	go func() {
		done <- w.Run(ctx)
	}()

	return done
}
