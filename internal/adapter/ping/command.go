package ping

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// commandGrace is added on top of the probe timeout for process start-up.
const commandGrace = 2 * time.Second

var (
	ErrNoLatency = errors.New("no latency in ping output")

	latencyPattern = regexp.MustCompile(`(?i)time[=<]\s*(\d+(?:[.,]\d+)?)\s*ms`)
)

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// CommandPinger measures latency by running the system ping utility once.
type CommandPinger struct {
	goos string
	run  runFunc
}

func NewCommandPinger() *CommandPinger {
	return &CommandPinger{
		goos: runtime.GOOS,
		run:  runCommand,
	}
}

func (p *CommandPinger) Ping(ctx context.Context, addr netip.Addr, timeout time.Duration) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout+commandGrace)
	defer cancel()

	out, err := p.run(ctx, "ping", p.args(addr, timeout)...)
	if err != nil {
		return 0, fmt.Errorf("ping %s failed: %w", addr, err)
	}

	return parseLatency(string(out))
}

func (p *CommandPinger) args(addr netip.Addr, timeout time.Duration) []string {
	if p.goos == "windows" {
		ms := max(timeout.Milliseconds(), 100)
		return []string{"-n", "1", "-w", strconv.FormatInt(ms, 10), addr.String()}
	}

	secs := max(int(timeout.Seconds()), 1)

	return []string{"-c", "1", "-W", strconv.Itoa(secs), addr.String()}
}

func parseLatency(output string) (time.Duration, error) {
	m := latencyPattern.FindStringSubmatch(output)
	if m == nil {
		return 0, ErrNoLatency
	}

	ms, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse latency %q: %w", m[1], err)
	}

	return time.Duration(ms * float64(time.Millisecond)), nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
