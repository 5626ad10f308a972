package monitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khmm12/ping-monitor/internal/device"
	"github.com/khmm12/ping-monitor/internal/ports"
	portsm "github.com/khmm12/ping-monitor/internal/ports/mocks"
	"github.com/khmm12/ping-monitor/internal/updates"
)

type fakeProbe struct {
	mu        sync.Mutex
	reachable map[string]bool
}

func newFakeProbe(reachable map[string]bool) *fakeProbe {
	return &fakeProbe{reachable: reachable}
}

func (p *fakeProbe) set(host string, up bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.reachable[host] = up
}

func (p *fakeProbe) Measure(ctx context.Context, host string, _ time.Duration) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.reachable[host] {
		return 3 * time.Millisecond, nil
	}

	return 0, errors.New("request timed out")
}

// slowProbe ignores cancellation, like a probe stuck in a blocking call.
type slowProbe struct {
	delay   time.Duration
	calls   atomic.Int32
	entered chan struct{}
}

func (p *slowProbe) Measure(context.Context, string, time.Duration) (time.Duration, error) {
	p.calls.Add(1)

	select {
	case p.entered <- struct{}{}:
	default:
	}

	time.Sleep(p.delay)

	return time.Millisecond, nil
}

func TestMonitor_StartRequiresDevices(t *testing.T) {
	m := newTestMonitor(t, newFakeProbe(map[string]bool{}), portsm.NewMockOfflineNotifier(t), Config{})

	require.ErrorIs(t, m.Start(), ErrNoDevices)
	require.False(t, m.Running())
}

func TestMonitor_StartStopAreIdempotent(t *testing.T) {
	probe := newFakeProbe(map[string]bool{"a": true})
	m := newTestMonitor(t, probe, portsm.NewMockOfflineNotifier(t), Config{
		Interval: time.Hour,
		Hosts:    []string{"a"},
	})

	require.NoError(t, m.Stop())

	require.NoError(t, m.Start())
	require.NoError(t, m.Start())
	require.True(t, m.Running())

	require.NoError(t, m.Stop())
	require.NoError(t, m.Stop())
	require.False(t, m.Running())
}

func TestMonitor_StopDuringSleepIsBounded(t *testing.T) {
	probe := newFakeProbe(map[string]bool{"a": true})
	m := newTestMonitor(t, probe, portsm.NewMockOfflineNotifier(t), Config{
		Interval: time.Hour,
		Hosts:    []string{"a"},
	})

	require.NoError(t, m.Start())
	waitForSnapshot(t, m)

	start := time.Now()
	require.NoError(t, m.Stop())
	require.Less(t, time.Since(start), DefaultStopTimeout)
}

func TestMonitor_PublishesSnapshotsAndNotifications(t *testing.T) {
	probe := newFakeProbe(map[string]bool{"a": true, "b": false})
	notifier := portsm.NewMockOfflineNotifier(t)
	notifier.On("Notify", mock.Anything, []string{"b"}).Return(false, "Email alert skipped.").Once()

	m := newTestMonitor(t, probe, notifier, Config{
		Interval: 10 * time.Millisecond,
		Hosts:    []string{"a", "b"},
	})

	require.NoError(t, m.Start())
	t.Cleanup(func() { _ = m.Stop() })

	var events []updates.Event
	require.Eventually(t, func() bool {
		events = append(events, m.Drain()...)
		return countSnapshots(events) >= 3
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, m.Stop())
	events = append(events, m.Drain()...)

	require.Equal(t, updates.KindSnapshot, events[0].Kind)
	require.Equal(t, device.StatusUp, events[0].Snapshot[0].Status)
	require.Equal(t, device.StatusDown, events[0].Snapshot[1].Status)

	require.Equal(t, "Offline detected: b", events[1].Message)
	require.Equal(t, "Email alert skipped.", events[2].Message)

	for _, ev := range events[3:] {
		require.Equal(t, updates.KindSnapshot, ev.Kind)
	}
}

func TestMonitor_RemovedHostIsNoLongerPolled(t *testing.T) {
	probe := newFakeProbe(map[string]bool{"a": true, "b": true})
	notifier := portsm.NewMockOfflineNotifier(t)

	m := newTestMonitor(t, probe, notifier, Config{
		Interval: 10 * time.Millisecond,
		Hosts:    []string{"a", "b"},
	})

	require.NoError(t, m.Start())
	t.Cleanup(func() { _ = m.Stop() })

	waitForSnapshot(t, m)

	require.True(t, m.RemoveHost("b"))
	probe.set("b", false)

	m.Drain()
	require.Eventually(t, func() bool {
		for _, ev := range m.Drain() {
			if ev.Kind == updates.KindSnapshot {
				return len(ev.Snapshot) == 1 && ev.Snapshot[0].Host == "a"
			}
		}

		return false
	}, 2*time.Second, 5*time.Millisecond)

	require.Equal(t, []string{"a"}, m.Hosts())
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestMonitor_AddHostWhileRunning(t *testing.T) {
	probe := newFakeProbe(map[string]bool{"a": true, "c": true})

	m := newTestMonitor(t, probe, portsm.NewMockOfflineNotifier(t), Config{
		Interval: 10 * time.Millisecond,
		Hosts:    []string{"a"},
	})

	require.NoError(t, m.Start())
	t.Cleanup(func() { _ = m.Stop() })

	require.True(t, m.AddHost("c"))
	require.False(t, m.AddHost("c"))

	require.Eventually(t, func() bool {
		state, ok := findState(m.States(), "c")
		return ok && state.Status == device.StatusUp
	}, 2*time.Second, 5*time.Millisecond)
}

func TestMonitor_RestartAfterStopTimeout(t *testing.T) {
	probe := &slowProbe{delay: 300 * time.Millisecond, entered: make(chan struct{}, 1)}
	m := newTestMonitor(t, probe, portsm.NewMockOfflineNotifier(t), Config{
		Interval:    10 * time.Millisecond,
		StopTimeout: 20 * time.Millisecond,
		Hosts:       []string{"a"},
	})

	require.NoError(t, m.Start())

	select {
	case <-probe.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("probe was not called")
	}

	require.ErrorIs(t, m.Stop(), ErrStopTimeout)
	require.False(t, m.Running())

	require.ErrorIs(t, m.Start(), ErrStopTimeout)
	require.False(t, m.Running())

	require.NoError(t, m.Wait(t.Context()))
	require.NoError(t, m.Start())
	require.True(t, m.Running())
	t.Cleanup(func() { _ = m.Wait(context.Background()) })
	t.Cleanup(func() { _ = m.Stop() })

	calls := probe.calls.Load()
	require.Eventually(t, func() bool {
		return probe.calls.Load() > calls
	}, 2*time.Second, 5*time.Millisecond)
}

func newTestMonitor(t *testing.T, probe ports.LatencyProbe, notifier *portsm.MockOfflineNotifier, cfg Config) *Monitor {
	t.Helper()

	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), probe, notifier, cfg)
}

func waitForSnapshot(t *testing.T, m *Monitor) {
	t.Helper()

	select {
	case <-m.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("no update published")
	}
}

func countSnapshots(events []updates.Event) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == updates.KindSnapshot {
			n++
		}
	}

	return n
}

func findState(states []device.DeviceState, host string) (device.DeviceState, bool) {
	for _, s := range states {
		if s.Host == host {
			return s, true
		}
	}

	return device.DeviceState{}, false
}
