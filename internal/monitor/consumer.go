package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/khmm12/ping-monitor/internal/common/logging"
	"github.com/khmm12/ping-monitor/internal/device"
	"github.com/khmm12/ping-monitor/internal/ports"
	"github.com/khmm12/ping-monitor/internal/updates"
)

const DefaultDrainInterval = 200 * time.Millisecond

type Source interface {
	Drain() []updates.Event
}

type Sink interface {
	HandleSnapshot(ctx context.Context, at time.Time, states []device.DeviceState)
	HandleLog(ctx context.Context, at time.Time, message string)
}

// Consume drains src every interval and hands events to sink in publish
// order. Pending events are flushed once more after ctx is canceled.
func Consume(ctx context.Context, src Source, interval time.Duration, sink Sink) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			Dispatch(context.WithoutCancel(ctx), src.Drain(), sink)
			return
		case <-ticker.C:
			Dispatch(ctx, src.Drain(), sink)
		}
	}
}

func Dispatch(ctx context.Context, events []updates.Event, sink Sink) {
	for _, ev := range events {
		switch ev.Kind {
		case updates.KindSnapshot:
			sink.HandleSnapshot(ctx, ev.At, ev.Snapshot)
		case updates.KindLog:
			sink.HandleLog(ctx, ev.At, ev.Message)
		}
	}
}

// ReportingSink writes monitor events to the program log and forwards
// snapshots to a state publisher such as the metrics exporter.
type ReportingSink struct {
	logger    *slog.Logger
	publisher ports.DeviceStatePublisher
}

func NewReportingSink(logger *slog.Logger, publisher ports.DeviceStatePublisher) *ReportingSink {
	return &ReportingSink{
		logger:    logger,
		publisher: publisher,
	}
}

func (s *ReportingSink) HandleSnapshot(ctx context.Context, _ time.Time, states []device.DeviceState) {
	for _, state := range states {
		s.logger.DebugContext(ctx, "Device state",
			logging.Host(state.Host),
			slog.String("status", state.Status.String()),
			slog.String("latency_ms", state.Latency.String()),
		)
	}

	if err := s.publisher.Publish(ctx, states); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish device states", logging.Error(err))
	}
}

func (s *ReportingSink) HandleLog(ctx context.Context, at time.Time, message string) {
	s.logger.InfoContext(ctx, message, slog.Time("at", at))
}
