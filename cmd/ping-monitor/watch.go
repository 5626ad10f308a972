package main

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/khmm12/ping-monitor/internal/adapter/tui"
	"github.com/khmm12/ping-monitor/internal/common/logging"
)

type Watch struct {
	Probe Probe `embed:"" prefix:"probe."`
	Hosts Hosts `embed:""`
	MDNS  MDNS  `embed:"" prefix:"mdns."`
	Email Email `embed:"" prefix:"smtp."`
	Log   Log   `embed:"" prefix:"log."`
	Start bool  `name:"start" help:"Start monitoring right away when hosts are given."`
}

func (w *Watch) Validate() error {
	var errs []error

	errs = append(errs, validateProbe(&w.Probe)...)
	errs = append(errs, validateHosts(&w.Hosts, false)...)
	errs = append(errs, validateMDNS(&w.MDNS)...)
	errs = append(errs, validateEmail(&w.Email)...)
	errs = append(errs, validateLog(&w.Log)...)

	return errors.Join(errs...)
}

func (w *Watch) Run() error {
	ctx := context.Background()
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer cancel()

	// The dashboard owns the terminal.
	logger, closeLog, err := w.Log.open(io.Discard)
	if err != nil {
		return err
	}

	defer func() { _ = closeLog() }()

	hosts, err := w.Hosts.load()
	if err != nil {
		return err
	}

	eng, err := newEngine(ctx, logger, engineOptions{
		Probe: w.Probe,
		MDNS:  w.MDNS,
		Email: w.Email,
		Hosts: hosts,
	})
	if err != nil {
		return err
	}

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.Email.Timeout+time.Second)
		defer cancel()

		eng.Close(closeCtx)
	}()

	if w.Start && len(hosts) > 0 {
		if err := eng.monitor.Start(); err != nil {
			logger.ErrorContext(ctx, "Failed to start Monitor", logging.Error(err))
			return err
		}
	}

	if err := tui.Run(ctx, eng.monitor, eng.notifier); err != nil {
		logger.ErrorContext(ctx, "Dashboard exited", logging.Error(err))
		return err
	}

	return nil
}
