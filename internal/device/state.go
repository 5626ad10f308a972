package device

import (
	"strconv"
	"time"
)

type Status int

const (
	StatusUnknown Status = iota
	StatusUp
	StatusDown
)

func (s Status) String() string {
	switch s {
	case StatusUp:
		return "UP"
	case StatusDown:
		return "DOWN"
	default:
		return "UNKNOWN"
	}
}

// Latency is the round-trip time of the most recent successful probe.
// The zero value means no measurement is available.
type Latency struct {
	Value time.Duration
	Valid bool
}

func LatencyOf(d time.Duration) Latency {
	return Latency{Value: d, Valid: true}
}

// Milliseconds returns the measurement in fractional milliseconds.
func (l Latency) Milliseconds() (float64, bool) {
	if !l.Valid {
		return 0, false
	}

	return float64(l.Value) / float64(time.Millisecond), true
}

func (l Latency) String() string {
	ms, ok := l.Milliseconds()
	if !ok {
		return "-"
	}

	return strconv.FormatFloat(ms, 'f', 2, 64)
}

// DeviceState is the tracked state of a single monitored host.
// It holds no references, so copies are fully independent.
type DeviceState struct {
	Host         string
	Status       Status
	Latency      Latency
	ChangedAt    time.Time
	DownNotified bool
}

func NewDeviceState(host string) DeviceState {
	return DeviceState{Host: host, Status: StatusUnknown}
}

// Observe applies one probe outcome to the state. An invalid latency means
// the host was unreachable. It reports whether the host just went offline
// and has not been notified for the current outage yet.
func (s *DeviceState) Observe(latency Latency, now time.Time) bool {
	next := StatusDown
	if latency.Valid {
		next = StatusUp
	}

	var wentOffline bool

	if next != s.Status {
		s.ChangedAt = now

		switch {
		case next == StatusDown && !s.DownNotified:
			s.DownNotified = true
			wentOffline = true
		case next == StatusUp:
			s.DownNotified = false
		}
	}

	s.Status = next
	s.Latency = latency

	if next == StatusDown {
		s.Latency = Latency{}
	}

	return wentOffline
}
