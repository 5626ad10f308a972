package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	hostsTotal     prometheus.Gauge
	hostsUp        prometheus.Gauge
	hostsDown      prometheus.Gauge
	hostsUnknown   prometheus.Gauge
	hostStatus     *prometheus.GaugeVec
	hostLatency    *prometheus.GaugeVec
	hostLastChange *prometheus.GaugeVec
	offlineEvents  prometheus.Counter
}

const (
	prefix = "ping_"
)

func newMetrics(reg *prometheus.Registry) (*metrics, error) {
	m := &metrics{
		hostsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "hosts_total",
			Help: "Number of monitored hosts",
		}),
		hostsUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "hosts_up",
			Help: "Number of hosts answering pings",
		}),
		hostsDown: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "hosts_down",
			Help: "Number of hosts not answering pings",
		}),
		hostsUnknown: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "hosts_unknown",
			Help: "Number of hosts not probed yet",
		}),
		hostStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: prefix + "host_status",
			Help: "Status of a specific host (1: up, 0: down, -1: unknown)",
		}, []string{"host"}),
		hostLatency: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: prefix + "host_latency_seconds",
			Help: "Last measured round-trip time of a host",
		}, []string{"host"}),
		hostLastChange: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: prefix + "host_last_change_timestamp_seconds",
			Help: "Unix time of the last status change of a host",
		}, []string{"host"}),
		offlineEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "offline_events_total",
			Help: "Number of offline transitions observed",
		}),
	}

	err := register(reg,
		m.hostsTotal,
		m.hostsUp,
		m.hostsDown,
		m.hostsUnknown,
		m.hostStatus,
		m.hostLatency,
		m.hostLastChange,
		m.offlineEvents,
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func register(r *prometheus.Registry, cs ...prometheus.Collector) error {
	for i, c := range cs {
		if err := r.Register(c); err != nil {
			for _, c := range cs[:i] {
				r.Unregister(c)
			}

			return err
		}
	}

	return nil
}
