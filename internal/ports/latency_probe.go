package ports

import (
	"context"
	"net/netip"
	"time"
)

// LatencyProbe measures the round-trip time to host. Any error, including a
// failed name resolution, means the host is unreachable.
type LatencyProbe interface {
	Measure(ctx context.Context, host string, timeout time.Duration) (time.Duration, error)
}

type Resolver interface {
	Resolve(ctx context.Context, host string) (netip.Addr, error)
}
