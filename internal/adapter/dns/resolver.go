package dns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/khmm12/ping-monitor/internal/ports"
)

var ErrNoAddress = errors.New("no address found")

type lookuper interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

// Resolver turns a host identifier into a single address. Literal addresses
// are returned as-is, ".local" names go to the link-local resolver when one is
// configured and everything else is looked up through the system resolver.
// Nothing is cached: every call performs a fresh lookup.
type Resolver struct {
	lookup lookuper
	local  ports.Resolver
}

func NewResolver(local ports.Resolver) *Resolver {
	return &Resolver{
		lookup: net.DefaultResolver,
		local:  local,
	}
}

func (r *Resolver) Resolve(ctx context.Context, host string) (netip.Addr, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return netip.Addr{}, fmt.Errorf("%w: empty host", ErrNoAddress)
	}

	if addr, err := netip.ParseAddr(strings.Trim(host, "[]")); err == nil {
		return addr, nil
	}

	if r.local != nil && isLinkLocalName(host) {
		return r.local.Resolve(ctx, host)
	}

	addrs, err := r.lookup.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return netip.Addr{}, err
	}

	return pick(addrs, host)
}

// pick prefers IPv4, matching what gethostbyname-style resolution returns.
func pick(addrs []netip.Addr, host string) (netip.Addr, error) {
	if len(addrs) == 0 {
		return netip.Addr{}, fmt.Errorf("%w for %s", ErrNoAddress, host)
	}

	for _, addr := range addrs {
		if addr.Unmap().Is4() {
			return addr.Unmap(), nil
		}
	}

	return addrs[0], nil
}

func isLinkLocalName(host string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSuffix(host, ".")), ".local")
}
