package ping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"sync/atomic"
	"time"

	"github.com/khmm12/ping-monitor/internal/common/logging"
	"github.com/khmm12/ping-monitor/internal/ports"
)

type Method string

const (
	MethodAuto    Method = "auto"
	MethodICMP    Method = "icmp"
	MethodCommand Method = "command"
)

type pinger interface {
	Ping(ctx context.Context, addr netip.Addr, timeout time.Duration) (time.Duration, error)
}

// Probe resolves a host on every call and measures one round trip to it.
// In auto mode ICMP sockets are used until the first permission failure,
// after which the system ping command takes over.
type Probe struct {
	logger   *slog.Logger
	resolver ports.Resolver
	method   Method
	icmp     pinger
	command  pinger

	icmpUnavailable atomic.Bool
}

func NewProbe(logger *slog.Logger, resolver ports.Resolver, method Method, privileged bool) *Probe {
	return &Probe{
		logger:   logger,
		resolver: resolver,
		method:   method,
		icmp:     NewICMPPinger(privileged),
		command:  NewCommandPinger(),
	}
}

func (p *Probe) Measure(ctx context.Context, host string, timeout time.Duration) (time.Duration, error) {
	resolveCtx, cancel := context.WithTimeout(ctx, timeout)
	addr, err := p.resolver.Resolve(resolveCtx, host)
	cancel()

	if err != nil {
		return 0, fmt.Errorf("failed to resolve %s: %w", host, err)
	}

	switch p.method {
	case MethodCommand:
		return p.command.Ping(ctx, addr, timeout)
	case MethodICMP:
		return p.icmp.Ping(ctx, addr, timeout)
	}

	if p.icmpUnavailable.Load() {
		return p.command.Ping(ctx, addr, timeout)
	}

	latency, err := p.icmp.Ping(ctx, addr, timeout)
	if errors.Is(err, ErrSocketUnavailable) {
		if p.icmpUnavailable.CompareAndSwap(false, true) {
			p.logger.WarnContext(ctx, "ICMP sockets unavailable, falling back to system ping", logging.Error(err))
		}

		return p.command.Ping(ctx, addr, timeout)
	}

	return latency, err
}
