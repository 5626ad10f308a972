package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/khmm12/ping-monitor/internal/common/logging"
	"github.com/khmm12/ping-monitor/internal/device"
	"github.com/khmm12/ping-monitor/internal/ports"
	"github.com/khmm12/ping-monitor/internal/updates"
)

const DefaultConcurrency = 8

type deviceRegistry interface {
	Targets() []device.Target
	Get(host string) (device.DeviceState, bool)
	Observe(target device.Target, latency device.Latency, now time.Time) (device.DeviceState, bool, bool)
}

type PollDevicesConfig struct {
	Timeout     time.Duration
	Concurrency int
	Now         func() time.Time
}

// PollDevicesUseCase runs a single poll cycle: probe every registered host,
// advance its state, publish a snapshot and notify about new outages.
type PollDevicesUseCase struct {
	logger      *slog.Logger
	registry    deviceRegistry
	probe       ports.LatencyProbe
	notifier    ports.OfflineNotifier
	publisher   ports.UpdatePublisher
	timeout     time.Duration
	concurrency int
	now         func() time.Time
}

func NewPollDevicesUseCase(
	logger *slog.Logger,
	registry deviceRegistry,
	probe ports.LatencyProbe,
	notifier ports.OfflineNotifier,
	publisher ports.UpdatePublisher,
	cfg PollDevicesConfig,
) *PollDevicesUseCase {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &PollDevicesUseCase{
		logger:      logger,
		registry:    registry,
		probe:       probe,
		notifier:    notifier,
		publisher:   publisher,
		timeout:     cfg.Timeout,
		concurrency: cfg.Concurrency,
		now:         cfg.Now,
	}
}

type probeOutcome struct {
	latency device.Latency
	fault   error
}

func (u *PollDevicesUseCase) Execute(ctx context.Context) error {
	targets := u.registry.Targets()
	outcomes := make([]probeOutcome, len(targets))

	var g errgroup.Group
	g.SetLimit(u.concurrency)

	for i, target := range targets {
		g.Go(func() error {
			outcomes[i] = u.measure(ctx, target.Host)
			return nil
		})
	}

	_ = g.Wait()

	// A stop arrived while probing: outcomes may be cancellations, not outages.
	if err := ctx.Err(); err != nil {
		return err
	}

	now := u.now()

	var (
		snapshot = make([]device.DeviceState, 0, len(targets))
		offline  []string
		faults   []string
	)

	for i, target := range targets {
		outcome := outcomes[i]

		if outcome.fault != nil {
			u.logger.ErrorContext(ctx, "Failed to poll host", logging.Host(target.Host), logging.Error(outcome.fault))
			faults = append(faults, fmt.Sprintf("Internal error while polling %s: %v", target.Host, outcome.fault))

			if state, ok := u.registry.Get(target.Host); ok {
				snapshot = append(snapshot, state)
			}

			continue
		}

		state, wentOffline, ok := u.registry.Observe(target, outcome.latency, now)
		if !ok {
			u.logger.DebugContext(ctx, "Host removed during poll cycle", logging.Host(target.Host))
			continue
		}

		if wentOffline {
			offline = append(offline, target.Host)
		}

		snapshot = append(snapshot, state)
	}

	u.publisher.Publish(updates.NewSnapshot(now, snapshot))

	for _, fault := range faults {
		u.publisher.Publish(updates.NewLog(now, fault))
	}

	if len(offline) == 0 {
		return nil
	}

	u.logger.WarnContext(ctx, "Hosts went offline", slog.Any("hosts", offline))
	u.publisher.Publish(updates.NewLog(now, "Offline detected: "+strings.Join(offline, ", ")))

	// DownNotified is already committed, so a stop must not abort delivery.
	// The notifier bounds the send with its own timeout.
	ok, message := u.notify(context.WithoutCancel(ctx), offline)
	if ok {
		u.logger.InfoContext(ctx, "Offline notification delivered", slog.String("message", message))
	} else {
		u.logger.WarnContext(ctx, "Offline notification not delivered", slog.String("message", message))
	}

	u.publisher.Publish(updates.NewLog(u.now(), message))

	return nil
}

func (u *PollDevicesUseCase) measure(ctx context.Context, host string) (outcome probeOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = probeOutcome{fault: fmt.Errorf("probe panicked: %v", r)}
		}
	}()

	ctx = logging.ContextWithAttrs(ctx, logging.Host(host))

	latency, err := u.probe.Measure(ctx, host, u.timeout)
	if err != nil {
		u.logger.DebugContext(ctx, "Host unreachable", logging.Error(err))
		return probeOutcome{}
	}

	return probeOutcome{latency: device.LatencyOf(latency)}
}

func (u *PollDevicesUseCase) notify(ctx context.Context, hosts []string) (ok bool, message string) {
	defer func() {
		if r := recover(); r != nil {
			ok, message = false, fmt.Sprintf("Offline notification failed: %v", r)
		}
	}()

	return u.notifier.Notify(ctx, hosts)
}
