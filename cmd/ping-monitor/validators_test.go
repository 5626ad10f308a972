package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateProbe(t *testing.T) {
	valid := Probe{Interval: 1500 * time.Millisecond, Timeout: time.Second, Concurrency: 8, Method: "auto"}
	require.Empty(t, validateProbe(&valid))

	invalid := Probe{Interval: time.Second, Timeout: time.Second, Concurrency: 0}
	require.Len(t, validateProbe(&invalid), 2)
}

func TestValidateHosts(t *testing.T) {
	require.Len(t, validateHosts(&Hosts{}, true), 1)
	require.Empty(t, validateHosts(&Hosts{}, false))
	require.Empty(t, validateHosts(&Hosts{Hosts: []string{"a"}}, true))

	missing := filepath.Join(t.TempDir(), "hosts.yaml")
	require.Len(t, validateHosts(&Hosts{File: missing}, true), 1)
}

func TestHosts_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hosts:\n  - b\n  - c\n"), 0o600))

	hosts, err := Hosts{Hosts: []string{"a", "b"}, File: path}.load()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, hosts)
}

func TestValidateMDNS(t *testing.T) {
	require.Empty(t, validateMDNS(&MDNS{Enabled: false}))

	valid := MDNS{Enabled: true, UseIPv4: true, IPv4Addr: "224.0.0.0:5353", Concurrency: 1}
	require.Empty(t, validateMDNS(&valid))

	require.NotEmpty(t, validateMDNS(&MDNS{Enabled: true, Concurrency: 1}))
	require.NotEmpty(t, validateMDNS(&MDNS{Enabled: true, UseIPv4: true, IPv4Addr: "[FF02::]:5353", Concurrency: 1}))
}

func TestValidateMetrics(t *testing.T) {
	require.Empty(t, validateMetrics(&Metrics{Addr: "0.0.0.0:8080", Path: "/metrics"}))
	require.Len(t, validateMetrics(&Metrics{Addr: "localhost", Path: "metrics"}), 2)
}

func TestServe_ValidateJoinsErrors(t *testing.T) {
	s := Serve{
		Probe:   Probe{Interval: time.Second, Timeout: 2 * time.Second, Concurrency: 1},
		Email:   Email{Port: 587, Timeout: time.Second},
		Metrics: Metrics{Addr: "0.0.0.0:8080", Path: "/metrics"},
		Log:     Log{Level: "verbose"},
	}

	err := s.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "--probe.interval: must be greater than --probe.timeout")
	require.Contains(t, err.Error(), "--hosts or --hosts-file")
	require.Contains(t, err.Error(), "--log.level")
}
