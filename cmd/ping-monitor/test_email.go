package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/khmm12/ping-monitor/internal/adapter/smtp"
)

type TestEmail struct {
	Email Email `embed:"" prefix:"smtp."`
	Log   Log   `embed:"" prefix:"log."`
}

func (t *TestEmail) Validate() error {
	var errs []error

	errs = append(errs, validateEmail(&t.Email)...)
	errs = append(errs, validateLog(&t.Log)...)

	return errors.Join(errs...)
}

func (t *TestEmail) Run() error {
	ctx := context.Background()
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger, closeLog, err := t.Log.open(os.Stderr)
	if err != nil {
		return err
	}

	defer func() { _ = closeLog() }()

	notifier := smtp.NewNotifier(logger, t.Email.config(), t.Email.Timeout)

	ok, message := notifier.SendTest(ctx)
	if !ok {
		return errors.New(message)
	}

	fmt.Println(message)

	return nil
}
