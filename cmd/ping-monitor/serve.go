package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/khmm12/ping-monitor/internal/adapter/httpsrv"
	"github.com/khmm12/ping-monitor/internal/adapter/prometheus"
	"github.com/khmm12/ping-monitor/internal/common/logging"
	"github.com/khmm12/ping-monitor/internal/monitor"
)

type Serve struct {
	Probe   Probe   `embed:"" prefix:"probe."`
	Hosts   Hosts   `embed:""`
	MDNS    MDNS    `embed:"" prefix:"mdns."`
	Email   Email   `embed:"" prefix:"smtp."`
	Metrics Metrics `embed:"" prefix:"metrics."`
	Log     Log     `embed:"" prefix:"log."`
}

func (s *Serve) Validate() error {
	var errs []error

	errs = append(errs, validateProbe(&s.Probe)...)
	errs = append(errs, validateHosts(&s.Hosts, true)...)
	errs = append(errs, validateMDNS(&s.MDNS)...)
	errs = append(errs, validateEmail(&s.Email)...)
	errs = append(errs, validateMetrics(&s.Metrics)...)
	errs = append(errs, validateLog(&s.Log)...)

	return errors.Join(errs...)
}

func (s *Serve) Run() error {
	ctx := context.Background()
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger, closeLog, err := s.Log.open(os.Stdout)
	if err != nil {
		return err
	}

	defer func() { _ = closeLog() }()

	hosts, err := s.Hosts.load()
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load hosts", logging.Error(err))
		return err
	}

	exporter, err := prometheus.NewExporter()
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create prometheus exporter", logging.Error(err))
		return err
	}

	eng, err := newEngine(ctx, logger, engineOptions{
		Probe: s.Probe,
		MDNS:  s.MDNS,
		Email: s.Email,
		Hosts: hosts,
	})
	if err != nil {
		return err
	}

	srv := httpsrv.NewServer(s.Metrics.Addr, httpsrv.ServerOptions{
		MetricsHandler: exporter.Handler(),
		MetricsPath:    s.Metrics.Path,
		Devices:        eng.monitor,
		Health:         eng.monitor,
		Logger:         logger,
	})

	sink := monitor.NewReportingSink(logger, prometheus.NewDeviceStatePublisher(logger, exporter))

	consumeCtx, stopConsume := context.WithCancel(ctx)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		monitor.Consume(consumeCtx, eng.monitor, monitor.DefaultDrainInterval, sink)
	}()

	defer func() {
		logger.InfoContext(ctx, "Stopping...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), max(5*time.Second, s.Email.Timeout+time.Second))
		defer cancel()

		eng.Close(shutdownCtx)

		logger.InfoContext(ctx, "Stopping HTTP Server...")
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			logger.ErrorContext(ctx, "Failed to stop HTTP Server", logging.Error(serr))
		}

		stopConsume()
		wg.Wait()

		logger.InfoContext(ctx, "Stopped")
	}()

	if err := eng.monitor.Start(); err != nil {
		logger.ErrorContext(ctx, "Failed to start Monitor", logging.Error(err))
		return err
	}

	errCh := make(chan error, 1)

	go func() {
		logger.InfoContext(ctx, "Start HTTP Server", slog.String("address", srv.ListenAddr()))

		if err := srv.Start(); err != nil {
			logger.ErrorContext(ctx, "Failed to start HTTP Server", logging.Error(err))
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return nil
	}
}
