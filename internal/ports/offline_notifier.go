package ports

import "context"

// OfflineNotifier delivers a single alert for hosts that just went offline.
// Failures are reported through ok and message, never as a panic.
type OfflineNotifier interface {
	Notify(ctx context.Context, hosts []string) (ok bool, message string)
}
