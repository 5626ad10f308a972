package main

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Serve     Serve     `cmd:"" default:"withargs" help:"Monitor hosts headlessly and serve metrics and the device API."`
	Watch     Watch     `cmd:"" help:"Monitor hosts from an interactive terminal dashboard."`
	TestEmail TestEmail `cmd:"" name:"test-email" help:"Send a test email with the configured SMTP settings."`
}

func main() {
	var cli CLI

	kctx := kong.Parse(&cli,
		kong.Name("ping-monitor"),
		kong.Description("Ping a set of hosts, track UP/DOWN transitions and email when hosts go offline."),
		kong.UsageOnError(),
	)

	kctx.FatalIfErrorf(kctx.Run())
}
