package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
)

func validateProbe(p *Probe) []error {
	var errs []error

	if p.Interval <= 0 {
		errs = append(errs, errors.New("--probe.interval: must be greater than zero"))
	}

	if p.Timeout <= 0 {
		errs = append(errs, errors.New("--probe.timeout: must be greater than zero"))
	}

	if p.Interval <= p.Timeout {
		errs = append(errs, errors.New("--probe.interval: must be greater than --probe.timeout"))
	}

	if p.Concurrency <= 0 {
		errs = append(errs, errors.New("--probe.concurrency: must be greater than zero"))
	}

	return errs
}

func validateMDNS(m *MDNS) []error {
	if !m.Enabled {
		return nil
	}

	var errs []error

	if !m.UseIPv4 && !m.UseIPv6 {
		errs = append(errs, errors.New("at least one of --mdns.ipv4 or --mdns.ipv6 must be enabled"))
	}

	if m.UseIPv4 && !isUDP4AddrResolvable(m.IPv4Addr) {
		errs = append(errs, errors.New("--mdns.ipv4.addr: must be a valid UDP IPv4 address e.g. 224.0.0.0:5353"))
	}

	if m.UseIPv6 && !isUDP6AddrResolvable(m.IPv6Addr) {
		errs = append(errs, errors.New("--mdns.ipv6.addr: must be a valid UDP IPv6 address e.g. [FF02::]:5353"))
	}

	if m.Concurrency <= 0 {
		errs = append(errs, errors.New("--mdns.concurrency: must be greater than zero"))
	}

	return errs
}

func validateHosts(h *Hosts, required bool) []error {
	var errs []error

	if h.File != "" && !isFile(h.File) {
		errs = append(errs, fmt.Errorf("--hosts-file: %s is not a readable file", h.File))
	}

	if required && len(h.Hosts) == 0 && h.File == "" {
		errs = append(errs, errors.New("--hosts or --hosts-file: at least one host is required"))
	}

	return errs
}

func validateEmail(e *Email) []error {
	var errs []error

	if e.Port < 0 || e.Port > 65535 {
		errs = append(errs, errors.New("--smtp.port: must be a valid TCP port"))
	}

	if e.Timeout <= 0 {
		errs = append(errs, errors.New("--smtp.timeout: must be greater than zero"))
	}

	return errs
}

func validateMetrics(m *Metrics) []error {
	var errs []error

	if !isTCPAddr(m.Addr) {
		errs = append(errs, errors.New("--metrics.addr: must be a valid tcp listening address (e.g. 0.0.0.0:8080)"))
	}

	if !strings.HasPrefix(m.Path, "/") {
		errs = append(errs, errors.New("--metrics.path: must start with /"))
	}

	return errs
}

func validateLog(l *Log) []error {
	if !isLogLevel(l.Level) {
		return []error{errors.New("--log.level: must be one of debug, info, warn, error")}
	}

	return nil
}

func isUDP4AddrResolvable(val string) bool {
	if !isIP4Addr(val) {
		return false
	}

	_, err := net.ResolveUDPAddr("udp4", val)

	return err == nil
}

func isUDP6AddrResolvable(val string) bool {
	if !isIP6Addr(val) {
		return false
	}

	_, err := net.ResolveUDPAddr("udp6", val)

	return err == nil
}

func isIP4Addr(val string) bool {
	if idx := strings.LastIndex(val, ":"); idx != -1 {
		val = val[0:idx]
	}

	ip := net.ParseIP(val)

	return ip != nil && ip.To4() != nil
}

func isIP6Addr(val string) bool {
	if idx := strings.LastIndex(val, ":"); idx != -1 {
		if idx != 0 && val[idx-1:idx] == "]" {
			val = val[1 : idx-1]
		}
	}

	ip := net.ParseIP(val)

	return ip != nil && ip.To4() == nil
}

func isTCPAddr(val string) bool {
	if !isIP4Addr(val) && !isIP6Addr(val) {
		return false
	}

	_, err := net.ResolveTCPAddr("tcp", val)

	return err == nil
}

func isLogLevel(val string) bool {
	return val == "debug" || val == "info" || val == "warn" || val == "error"
}

func isFile(path string) bool {
	fi, err := os.Stat(path)

	return err == nil && fi.Mode().IsRegular()
}
