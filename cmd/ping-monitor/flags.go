package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/khmm12/ping-monitor/internal/adapter/hostsfile"
	"github.com/khmm12/ping-monitor/internal/adapter/mdns"
	"github.com/khmm12/ping-monitor/internal/adapter/smtp"
	"github.com/khmm12/ping-monitor/internal/common/logging"
)

type Probe struct {
	Interval    time.Duration `name:"interval" env:"PROBE_INTERVAL" default:"1.5s" help:"The interval between poll cycles (e.g., 1.5s, 10s)."`
	Timeout     time.Duration `name:"timeout" env:"PROBE_TIMEOUT" default:"1s" help:"The maximum duration to wait for a single echo reply."`
	Concurrency int           `name:"concurrency" env:"PROBE_CONCURRENCY" default:"8" help:"The maximum number of hosts probed concurrently."`
	Method      string        `name:"method" env:"PROBE_METHOD" default:"auto" enum:"auto,icmp,command" help:"Probe method: auto, icmp or command (system ping)."`
	Privileged  bool          `name:"privileged" env:"PROBE_PRIVILEGED" help:"Use raw ICMP sockets instead of unprivileged datagram sockets."`
}

type Hosts struct {
	Hosts []string `name:"hosts" env:"PROBE_HOSTS" sep:"," help:"A comma-separated list of hosts or IPs to monitor (e.g., '192.168.1.1,printer.local')."`
	File  string   `name:"hosts-file" env:"PROBE_HOSTS_FILE" help:"YAML file with a 'hosts' list to monitor."`
}

func (h Hosts) load() ([]string, error) {
	hosts := slices.Clone(h.Hosts)

	if h.File != "" {
		fromFile, err := hostsfile.Load(h.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load hosts file: %w", err)
		}

		hosts = append(hosts, fromFile...)
	}

	return hostsfile.Normalize(hosts), nil
}

type MDNS struct {
	Enabled     bool   `name:"enabled" env:"MDNS_ENABLED" default:"true" negatable:"" help:"Resolve '.local' names over multicast DNS. Enabled by default."`
	UseIPv4     bool   `name:"ipv4" env:"MDNS_USE_IPV4" default:"true" negatable:"" help:"Enable mDNS queries over IPv4. Enabled by default."`
	IPv4Addr    string `name:"ipv4.addr" env:"MDNS_IPV4_ADDR" default:"224.0.0.0:5353" help:"IPv4 address to bind to for mDNS queries."`
	UseIPv6     bool   `name:"ipv6" env:"MDNS_USE_IPV6" default:"true" negatable:"" help:"Enable mDNS queries over IPv6. Enabled by default."`
	IPv6Addr    string `name:"ipv6.addr" env:"MDNS_IPV6_ADDR" default:"[FF02::]:5353" help:"IPv6 address to bind to for mDNS queries."`
	Concurrency int    `name:"concurrency" env:"MDNS_CONCURRENCY" default:"4" help:"The maximum number of mDNS queries in flight."`
}

func (m MDNS) config() mdns.Config {
	return mdns.Config{
		UseIPv4:     m.UseIPv4,
		UseIPv6:     m.UseIPv6,
		IPv4Addr:    m.IPv4Addr,
		IPv6Addr:    m.IPv6Addr,
		Concurrency: m.Concurrency,
	}
}

type Email struct {
	Server    string        `name:"server" env:"PM_SMTP_SERVER" help:"SMTP server host."`
	Port      int           `name:"port" env:"PM_SMTP_PORT" default:"587" help:"SMTP server port (STARTTLS)."`
	Sender    string        `name:"sender" env:"PM_SENDER_EMAIL" help:"Sender address, also used as the SMTP user name."`
	Password  string        `name:"password" env:"PM_SENDER_PASSWORD" help:"SMTP password."`
	Recipient string        `name:"recipient" env:"PM_RECIPIENT_EMAIL" help:"Address receiving offline alerts."`
	Timeout   time.Duration `name:"timeout" env:"SMTP_TIMEOUT" default:"10s" help:"The maximum duration of one delivery."`
}

func (e Email) config() smtp.Config {
	return smtp.Config{
		Server:    e.Server,
		Port:      e.Port,
		Sender:    e.Sender,
		Password:  e.Password,
		Recipient: e.Recipient,
	}
}

type Metrics struct {
	Addr string `name:"addr" env:"METRICS_ADDR" default:"0.0.0.0:8080" help:"HTTP Address to bind Prometheus metrics and the device API"`
	Path string `name:"path" env:"METRICS_PATH" default:"/metrics" help:"Path to serve Prometheus metrics"`
}

type Log struct {
	Level      string `name:"level" env:"LOG_LEVEL" default:"info" help:"Log level (debug, info, warn, error)"`
	File       string `name:"file" env:"LOG_FILE" help:"Write logs to this file with rotation instead of stdout."`
	MaxSize    int    `name:"max-size" env:"LOG_MAX_SIZE" default:"10" help:"Maximum size in megabytes of a log file before rotation."`
	MaxBackups int    `name:"max-backups" env:"LOG_MAX_BACKUPS" default:"3" help:"Number of rotated log files to keep."`
	MaxAge     int    `name:"max-age" env:"LOG_MAX_AGE" default:"7" help:"Days to keep rotated log files."`
	Compress   bool   `name:"compress" env:"LOG_COMPRESS" help:"Gzip rotated log files."`
}

// open builds the program logger. fallback receives logs when no file is set.
func (l Log) open(fallback io.Writer) (*slog.Logger, func() error, error) {
	level, err := logging.ParseLevel(l.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	w, closeFn := logging.OutputConfig{
		File:       l.File,
		MaxSizeMB:  l.MaxSize,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAge,
		Compress:   l.Compress,
		Fallback:   fallback,
	}.Open()

	return logging.New(w, level), closeFn, nil
}
