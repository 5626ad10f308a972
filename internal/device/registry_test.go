package device

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegistry_AddIsIdempotent(t *testing.T) {
	r := NewRegistry()

	require.True(t, r.Add("a"))
	require.False(t, r.Add("a"))
	require.Equal(t, 1, r.Len())

	state, ok := r.Get("a")
	require.True(t, ok)
	require.Equal(t, NewDeviceState("a"), state)
}

func TestRegistry_RemoveIsIdempotent(t *testing.T) {
	r := NewRegistry("a")

	require.True(t, r.Remove("a"))
	require.False(t, r.Remove("a"))
	require.Zero(t, r.Len())
}

func TestRegistry_TargetsKeepInsertionOrder(t *testing.T) {
	r := NewRegistry("c", "a", "b")
	r.Remove("a")
	r.Add("a")

	require.Equal(t, []string{"c", "b", "a"}, r.Hosts())
}

func TestRegistry_ObserveUpdatesState(t *testing.T) {
	r := NewRegistry("a")
	now := time.Now()

	targets := r.Targets()
	require.Len(t, targets, 1)

	state, wentOffline, ok := r.Observe(targets[0], Latency{}, now)
	require.True(t, ok)
	require.True(t, wentOffline)
	require.Equal(t, StatusDown, state.Status)

	stored, _ := r.Get("a")
	require.Equal(t, state, stored)
}

func TestRegistry_ObserveIgnoresRemovedTarget(t *testing.T) {
	r := NewRegistry("a")
	targets := r.Targets()

	r.Remove("a")

	_, _, ok := r.Observe(targets[0], Latency{}, time.Now())
	require.False(t, ok)
}

func TestRegistry_ObserveIgnoresReaddedTarget(t *testing.T) {
	r := NewRegistry("a")
	targets := r.Targets()

	r.Remove("a")
	r.Add("a")

	_, _, ok := r.Observe(targets[0], Latency{}, time.Now())
	require.False(t, ok)

	state, _ := r.Get("a")
	require.Equal(t, StatusUnknown, state.Status)
	require.False(t, state.DownNotified)
}

func TestRegistry_StatesAreCopies(t *testing.T) {
	r := NewRegistry("a")

	states := r.States()
	states[0].Status = StatusUp
	states[0].DownNotified = true

	stored, _ := r.Get("a")
	require.Equal(t, StatusUnknown, stored.Status)
	require.False(t, stored.DownNotified)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			host := fmt.Sprintf("host-%d", i)
			for range 100 {
				r.Add(host)
				for _, target := range r.Targets() {
					r.Observe(target, LatencyOf(time.Millisecond), time.Now())
				}
				r.Remove(host)
			}
		}()
	}

	wg.Wait()
	require.Zero(t, r.Len())
}
