package ping

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portsm "github.com/khmm12/ping-monitor/internal/ports/mocks"
)

type pingerFunc func(ctx context.Context, addr netip.Addr, timeout time.Duration) (time.Duration, error)

func (f pingerFunc) Ping(ctx context.Context, addr netip.Addr, timeout time.Duration) (time.Duration, error) {
	return f(ctx, addr, timeout)
}

var testAddr = netip.MustParseAddr("192.0.2.10")

func TestProbe_ResolutionFailureIsUnreachable(t *testing.T) {
	resolver := portsm.NewMockResolver(t)
	resolver.On("Resolve", mock.Anything, "nope.invalid").Return(netip.Addr{}, errors.New("no such host")).Once()

	p := newTestProbe(resolver, MethodAuto, failingPinger(t), failingPinger(t))

	_, err := p.Measure(t.Context(), "nope.invalid", time.Second)
	require.ErrorContains(t, err, "failed to resolve nope.invalid")
}

func TestProbe_UsesICMP(t *testing.T) {
	resolver := portsm.NewMockResolver(t)
	resolver.On("Resolve", mock.Anything, "router").Return(testAddr, nil).Once()

	icmpPinger := pingerFunc(func(_ context.Context, addr netip.Addr, timeout time.Duration) (time.Duration, error) {
		require.Equal(t, testAddr, addr)
		require.Equal(t, time.Second, timeout)

		return 4 * time.Millisecond, nil
	})

	p := newTestProbe(resolver, MethodAuto, icmpPinger, failingPinger(t))

	latency, err := p.Measure(t.Context(), "router", time.Second)
	require.NoError(t, err)
	require.Equal(t, 4*time.Millisecond, latency)
}

func TestProbe_FallsBackToCommandOnce(t *testing.T) {
	resolver := portsm.NewMockResolver(t)
	resolver.On("Resolve", mock.Anything, "router").Return(testAddr, nil).Twice()

	icmpCalls := 0
	icmpPinger := pingerFunc(func(context.Context, netip.Addr, time.Duration) (time.Duration, error) {
		icmpCalls++
		return 0, ErrSocketUnavailable
	})

	commandPinger := pingerFunc(func(context.Context, netip.Addr, time.Duration) (time.Duration, error) {
		return 9 * time.Millisecond, nil
	})

	p := newTestProbe(resolver, MethodAuto, icmpPinger, commandPinger)

	for range 2 {
		latency, err := p.Measure(t.Context(), "router", time.Second)
		require.NoError(t, err)
		require.Equal(t, 9*time.Millisecond, latency)
	}

	require.Equal(t, 1, icmpCalls)
}

func TestProbe_ICMPTimeoutDoesNotFallBack(t *testing.T) {
	resolver := portsm.NewMockResolver(t)
	resolver.On("Resolve", mock.Anything, "router").Return(testAddr, nil).Once()

	icmpPinger := pingerFunc(func(context.Context, netip.Addr, time.Duration) (time.Duration, error) {
		return 0, errors.New("i/o timeout")
	})

	p := newTestProbe(resolver, MethodAuto, icmpPinger, failingPinger(t))

	_, err := p.Measure(t.Context(), "router", time.Second)
	require.ErrorContains(t, err, "i/o timeout")
}

func TestProbe_CommandMethod(t *testing.T) {
	resolver := portsm.NewMockResolver(t)
	resolver.On("Resolve", mock.Anything, "router").Return(testAddr, nil).Once()

	commandPinger := pingerFunc(func(context.Context, netip.Addr, time.Duration) (time.Duration, error) {
		return time.Millisecond, nil
	})

	p := newTestProbe(resolver, MethodCommand, failingPinger(t), commandPinger)

	latency, err := p.Measure(t.Context(), "router", time.Second)
	require.NoError(t, err)
	require.Equal(t, time.Millisecond, latency)
}

func newTestProbe(resolver *portsm.MockResolver, method Method, icmpPinger, commandPinger pinger) *Probe {
	p := NewProbe(slog.New(slog.NewTextHandler(io.Discard, nil)), resolver, method, false)
	p.icmp = icmpPinger
	p.command = commandPinger

	return p
}

func failingPinger(t *testing.T) pinger {
	t.Helper()

	return pingerFunc(func(context.Context, netip.Addr, time.Duration) (time.Duration, error) {
		t.Error("unexpected ping")
		return 0, errors.New("unexpected")
	})
}
