package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/khmm12/ping-monitor/internal/adapter/worker"
	"github.com/khmm12/ping-monitor/internal/common/logging"
	"github.com/khmm12/ping-monitor/internal/device"
	"github.com/khmm12/ping-monitor/internal/ports"
	"github.com/khmm12/ping-monitor/internal/updates"
	"github.com/khmm12/ping-monitor/internal/usecase"
)

const (
	DefaultInterval    = 1500 * time.Millisecond
	DefaultTimeout     = time.Second
	DefaultStopTimeout = 2 * time.Second
)

var (
	ErrNoDevices   = errors.New("add at least one host/IP before starting monitor")
	ErrStopTimeout = errors.New("monitor loop did not stop in time")
)

type Config struct {
	Interval    time.Duration
	Timeout     time.Duration
	Concurrency int
	StopTimeout time.Duration
	Hosts       []string
}

// Monitor is the controller-facing side of the monitoring engine. The
// registry is shared with the poll loop; everything else the loop produces
// is read through Drain.
type Monitor struct {
	logger      *slog.Logger
	registry    *device.Registry
	queue       *updates.Queue
	worker      *worker.Worker
	stopTimeout time.Duration

	// done outlives cancel when Stop timed out, until the old loop exits.
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(logger *slog.Logger, probe ports.LatencyProbe, notifier ports.OfflineNotifier, cfg Config) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = DefaultStopTimeout
	}

	registry := device.NewRegistry(cfg.Hosts...)
	queue := updates.NewQueue()

	uc := usecase.NewPollDevicesUseCase(logger, registry, probe, notifier, queue, usecase.PollDevicesConfig{
		Timeout:     cfg.Timeout,
		Concurrency: cfg.Concurrency,
	})

	return &Monitor{
		logger:      logger,
		registry:    registry,
		queue:       queue,
		worker:      worker.NewWorker(logger, cfg.Interval, newCycleTask(logger, uc)),
		stopTimeout: cfg.StopTimeout,
	}
}

// Start launches the poll loop in the background. It is a no-op when the
// loop is already running. A loop left behind by a timed out Stop is given
// the stop timeout to exit; if it is still running Start fails with
// ErrStopTimeout.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		return nil
	}

	if m.registry.Len() == 0 {
		return ErrNoDevices
	}

	if !m.awaitDone(m.stopTimeout) {
		return ErrStopTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	m.cancel = cancel
	m.done = done

	go func() {
		defer close(done)

		if err := m.worker.Run(ctx); err != nil {
			m.logger.ErrorContext(ctx, "Poll loop exited", logging.Error(err))
		}
	}()

	m.logger.Info("Monitoring started", slog.Int("devices", m.registry.Len()))

	return nil
}

// Stop signals the poll loop and waits for it to exit, at most the
// configured stop timeout. It is a no-op when the loop is not running.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel == nil {
		return nil
	}

	m.cancel()
	m.cancel = nil

	if !m.awaitDone(m.stopTimeout) {
		m.logger.Warn("Poll loop is still finishing its cycle", slog.Duration("waited", m.stopTimeout))
		return ErrStopTimeout
	}

	m.logger.Info("Monitoring stopped")

	return nil
}

// Wait blocks until a stopped poll loop has exited or ctx is done.
func (m *Monitor) Wait(ctx context.Context) error {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// awaitDone waits for the previous loop to exit and forgets it. It must be
// called with mu held.
func (m *Monitor) awaitDone(timeout time.Duration) bool {
	if m.done == nil {
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-m.done:
		m.done = nil
		return true
	case <-timer.C:
		return false
	}
}

func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cancel != nil
}

func (m *Monitor) AddHost(host string) bool {
	added := m.registry.Add(host)
	if added {
		m.logger.Debug("Device added", logging.Host(host))
	}

	return added
}

func (m *Monitor) RemoveHost(host string) bool {
	removed := m.registry.Remove(host)
	if removed {
		m.logger.Debug("Device removed", logging.Host(host))
	}

	return removed
}

func (m *Monitor) Hosts() []string {
	return m.registry.Hosts()
}

// States returns copies of the current per-host states.
func (m *Monitor) States() []device.DeviceState {
	return m.registry.States()
}

// Drain returns every pending update in publish order without blocking.
func (m *Monitor) Drain() []updates.Event {
	return m.queue.Drain()
}

// Ready is signaled when updates are waiting to be drained.
func (m *Monitor) Ready() <-chan struct{} {
	return m.queue.Ready()
}
