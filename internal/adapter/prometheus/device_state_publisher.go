package prometheus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/khmm12/ping-monitor/internal/device"
)

// DeviceStatePublisher mirrors monitor snapshots into gauges. Series of
// hosts missing from a snapshot are deleted.
type DeviceStatePublisher struct {
	logger   *slog.Logger
	exporter *Exporter

	mu    sync.Mutex
	known map[string]device.DeviceState
}

func NewDeviceStatePublisher(logger *slog.Logger, exporter *Exporter) *DeviceStatePublisher {
	return &DeviceStatePublisher{
		logger:   logger,
		exporter: exporter,
		known:    make(map[string]device.DeviceState),
	}
}

func (p *DeviceStatePublisher) Publish(ctx context.Context, states []device.DeviceState) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	m := p.exporter.metrics

	var up, down, unknown int

	seen := make(map[string]device.DeviceState, len(states))

	for _, s := range states {
		seen[s.Host] = s

		switch s.Status {
		case device.StatusUp:
			up++
			m.hostStatus.WithLabelValues(s.Host).Set(1.0)
		case device.StatusDown:
			down++
			m.hostStatus.WithLabelValues(s.Host).Set(0.0)
		default:
			unknown++
			m.hostStatus.WithLabelValues(s.Host).Set(-1.0)
		}

		if s.Latency.Valid {
			m.hostLatency.WithLabelValues(s.Host).Set(s.Latency.Value.Seconds())
		} else {
			m.hostLatency.DeleteLabelValues(s.Host)
		}

		if !s.ChangedAt.IsZero() {
			m.hostLastChange.WithLabelValues(s.Host).Set(float64(s.ChangedAt.UnixMilli()) / 1000)
		}

		if prev, ok := p.known[s.Host]; s.Status == device.StatusDown && (!ok || prev.Status != device.StatusDown) {
			m.offlineEvents.Inc()
		}
	}

	for host := range p.known {
		if _, ok := seen[host]; ok {
			continue
		}

		m.hostStatus.DeleteLabelValues(host)
		m.hostLatency.DeleteLabelValues(host)
		m.hostLastChange.DeleteLabelValues(host)
	}

	p.known = seen

	m.hostsTotal.Set(float64(len(states)))
	m.hostsUp.Set(float64(up))
	m.hostsDown.Set(float64(down))
	m.hostsUnknown.Set(float64(unknown))

	p.logger.DebugContext(ctx, "Published device states",
		slog.Group("publish",
			slog.Int("up_hosts", up),
			slog.Int("down_hosts", down),
			slog.Int("unknown_hosts", unknown),
		))

	return nil
}
