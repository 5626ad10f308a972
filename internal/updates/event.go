package updates

import (
	"slices"
	"time"

	"github.com/khmm12/ping-monitor/internal/device"
)

type Kind int

const (
	KindSnapshot Kind = iota + 1
	KindLog
)

func (k Kind) String() string {
	switch k {
	case KindSnapshot:
		return "snapshot"
	case KindLog:
		return "log"
	default:
		return "unknown"
	}
}

// Event is a single item handed from the monitoring engine to its observer.
// Snapshot is set for KindSnapshot, Message for KindLog.
type Event struct {
	Kind     Kind
	At       time.Time
	Snapshot []device.DeviceState
	Message  string
}

// NewSnapshot copies states, so later changes on either side are not shared.
func NewSnapshot(at time.Time, states []device.DeviceState) Event {
	return Event{
		Kind:     KindSnapshot,
		At:       at,
		Snapshot: slices.Clone(states),
	}
}

func NewLog(at time.Time, message string) Event {
	return Event{
		Kind:    KindLog,
		At:      at,
		Message: message,
	}
}
