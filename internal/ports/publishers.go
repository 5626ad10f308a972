package ports

import (
	"context"

	"github.com/khmm12/ping-monitor/internal/device"
	"github.com/khmm12/ping-monitor/internal/updates"
)

type UpdatePublisher interface {
	Publish(event updates.Event)
}

type DeviceStatePublisher interface {
	Publish(ctx context.Context, states []device.DeviceState) error
}
