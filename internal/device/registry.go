package device

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// Target is a point-in-time reference to a registered host. The sequence
// number distinguishes a host from a later re-registration under the same name.
type Target struct {
	Host string
	seq  uint64
}

type entry struct {
	state DeviceState
	seq   uint64
}

// Registry is the set of monitored hosts keyed by host name.
// It is safe for concurrent use; locks are never held across probes.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	nextSeq uint64
}

func NewRegistry(hosts ...string) *Registry {
	r := &Registry{
		entries: make(map[string]*entry, len(hosts)),
	}

	for _, host := range hosts {
		r.Add(host)
	}

	return r
}

// Add registers host with the initial UNKNOWN state. It returns false if the
// host is already registered.
func (r *Registry) Add(host string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[host]; ok {
		return false
	}

	r.nextSeq++
	r.entries[host] = &entry{
		state: NewDeviceState(host),
		seq:   r.nextSeq,
	}

	return true
}

// Remove unregisters host. It returns false if the host was not registered.
func (r *Registry) Remove(host string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[host]; !ok {
		return false
	}

	delete(r.entries, host)

	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Targets returns the registered hosts in insertion order.
func (r *Registry) Targets() []Target {
	r.mu.RLock()
	targets := make([]Target, 0, len(r.entries))
	for host, e := range r.entries {
		targets = append(targets, Target{Host: host, seq: e.seq})
	}
	r.mu.RUnlock()

	slices.SortFunc(targets, func(a, b Target) int {
		return cmp.Compare(a.seq, b.seq)
	})

	return targets
}

func (r *Registry) Hosts() []string {
	targets := r.Targets()

	hosts := make([]string, len(targets))
	for i, t := range targets {
		hosts[i] = t.Host
	}

	return hosts
}

func (r *Registry) Get(host string) (DeviceState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[host]
	if !ok {
		return DeviceState{}, false
	}

	return e.state, true
}

// States returns copies of every tracked state in insertion order.
func (r *Registry) States() []DeviceState {
	r.mu.RLock()
	entries := make([]entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, *e)
	}
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Compare(a.seq, b.seq)
	})

	states := make([]DeviceState, len(entries))
	for i, e := range entries {
		states[i] = e.state
	}

	return states
}

// Observe merges a probe outcome for target into the registry. ok is false
// when the target has been removed (or removed and re-added) since it was
// handed out, in which case nothing is changed.
func (r *Registry) Observe(target Target, latency Latency, now time.Time) (state DeviceState, wentOffline, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, found := r.entries[target.Host]
	if !found || e.seq != target.seq {
		return DeviceState{}, false, false
	}

	wentOffline = e.state.Observe(latency, now)

	return e.state, wentOffline, true
}
