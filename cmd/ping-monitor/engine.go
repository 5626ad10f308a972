package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/khmm12/ping-monitor/internal/adapter/dns"
	"github.com/khmm12/ping-monitor/internal/adapter/mdns"
	"github.com/khmm12/ping-monitor/internal/adapter/ping"
	"github.com/khmm12/ping-monitor/internal/adapter/smtp"
	"github.com/khmm12/ping-monitor/internal/common/logging"
	"github.com/khmm12/ping-monitor/internal/monitor"
)

type engineOptions struct {
	Probe Probe
	MDNS  MDNS
	Email Email
	Hosts []string
}

// engine is the monitor with its adapters, shared by serve and watch.
type engine struct {
	logger   *slog.Logger
	monitor  *monitor.Monitor
	notifier *smtp.Notifier
	mdns     *mdns.Resolver
}

func newEngine(ctx context.Context, logger *slog.Logger, opts engineOptions) (*engine, error) {
	e := &engine{logger: logger}

	resolver := dns.NewResolver(nil)

	if opts.MDNS.Enabled {
		local, err := mdns.NewResolver(logger, opts.MDNS.config())
		if err != nil {
			logger.ErrorContext(ctx, "Failed to create mdns resolver", logging.Error(err))
			return nil, err
		}

		e.mdns = local
		resolver = dns.NewResolver(local)
	}

	probe := ping.NewProbe(logger, resolver, ping.Method(opts.Probe.Method), opts.Probe.Privileged)

	e.notifier = smtp.NewNotifier(logger, opts.Email.config(), opts.Email.Timeout)

	e.monitor = monitor.New(logger, probe, e.notifier, monitor.Config{
		Interval:    opts.Probe.Interval,
		Timeout:     opts.Probe.Timeout,
		Concurrency: opts.Probe.Concurrency,
		Hosts:       opts.Hosts,
	})

	logger.InfoContext(ctx, "Monitor configured",
		slog.Int("devices", len(opts.Hosts)),
		slog.String("method", opts.Probe.Method),
		slog.Bool("mdns", opts.MDNS.Enabled),
		slog.Bool("email", e.notifier.Enabled()),
	)

	return e, nil
}

// Close stops the poll loop and releases the mDNS sockets. A cycle still
// delivering an alert is awaited until ctx is done.
func (e *engine) Close(ctx context.Context) {
	e.logger.InfoContext(ctx, "Stopping Monitor...")

	err := e.monitor.Stop()
	if err != nil && !errors.Is(err, monitor.ErrStopTimeout) {
		e.logger.ErrorContext(ctx, "Failed to stop Monitor", logging.Error(err))
	}

	// A stop that timed out here or earlier leaves the loop finishing a cycle.
	if err := e.monitor.Wait(ctx); err != nil {
		e.logger.ErrorContext(ctx, "Poll loop did not finish", logging.Error(err))
	}

	if e.mdns != nil {
		e.logger.InfoContext(ctx, "Closing mdns resolver")
		_ = e.mdns.Close()
	}
}
