package mdns

import (
	"context"
	"fmt"
	"log/slog"
	"net/netip"
	"strings"

	"github.com/pion/mdns/v2"
	"golang.org/x/net/dns/dnsmessage"
	"golang.org/x/sync/semaphore"

	"github.com/khmm12/ping-monitor/internal/common/logging"
)

type querier interface {
	QueryAddr(ctx context.Context, name string) (dnsmessage.ResourceHeader, netip.Addr, error)
	Close() error
}

// Resolver answers ".local" names with multicast DNS queries. Concurrent
// lookups share one multicast socket and are capped by a semaphore.
type Resolver struct {
	logger *slog.Logger
	conn   querier
	sem    *semaphore.Weighted
}

func NewResolver(logger *slog.Logger, cfg Config) (*Resolver, error) {
	if cfg.Concurrency <= 0 {
		return nil, fmt.Errorf("mdns: query concurrency must be greater than zero")
	}

	if !cfg.UseIPv4 && !cfg.UseIPv6 {
		return nil, fmt.Errorf("mdns: at least one of IPv4 or IPv6 must be enabled")
	}

	conn, err := openConn(cfg)
	if err != nil {
		return nil, err
	}

	return newResolver(logger, conn, cfg.Concurrency), nil
}

func newResolver(logger *slog.Logger, conn querier, concurrency int) *Resolver {
	return &Resolver{
		logger: logger,
		conn:   conn,
		sem:    semaphore.NewWeighted(int64(concurrency)),
	}
}

// Resolve blocks until an answer arrives or ctx is done.
func (r *Resolver) Resolve(ctx context.Context, host string) (netip.Addr, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return netip.Addr{}, err
	}

	defer r.sem.Release(1)

	_, addr, err := r.conn.QueryAddr(ctx, strings.TrimSuffix(host, "."))
	if err != nil {
		r.logger.DebugContext(ctx, "mDNS query failed", logging.Host(host), logging.Error(err))
		return netip.Addr{}, fmt.Errorf("mdns query for %s: %w", host, err)
	}

	return addr, nil
}

func (r *Resolver) Close() error {
	return r.conn.Close()
}

var _ querier = (*mdns.Conn)(nil)
