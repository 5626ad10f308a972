// Package tui is a terminal controller for the monitor: a device table,
// an event log and key bindings for add, remove, start, stop and email
// reload.
package tui

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/khmm12/ping-monitor/internal/adapter/hostsfile"
	"github.com/khmm12/ping-monitor/internal/device"
	"github.com/khmm12/ping-monitor/internal/monitor"
	"github.com/khmm12/ping-monitor/internal/updates"
)

const (
	DefaultTickInterval = monitor.DefaultDrainInterval

	maxLogLines = 200
)

type Controller interface {
	Start() error
	Stop() error
	Running() bool
	AddHost(host string) bool
	RemoveHost(host string) bool
	Hosts() []string
	Drain() []updates.Event
}

type Mailer interface {
	Enabled() bool
	ReloadFromEnv()
}

type mode int

const (
	modeBrowse mode = iota
	modeAdd
)

type tickMsg time.Time

type Model struct {
	ctl    Controller
	mailer Mailer
	tick   time.Duration
	now    func() time.Time

	states map[string]device.DeviceState
	// addedAt is when a host appeared in this view after startup. Older
	// snapshot entries for it describe a previous registration.
	addedAt map[string]time.Time
	order   []string
	logs    []string

	table table.Model
	input textinput.Model
	mode  mode

	width    int
	height   int
	quitting bool
}

func NewModel(ctl Controller, mailer Mailer, tick time.Duration) Model {
	if tick <= 0 {
		tick = DefaultTickInterval
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Host", Width: 28},
			{Title: "Status", Width: 9},
			{Title: "Latency (ms)", Width: 12},
			{Title: "Last change", Width: 10},
			{Title: "Alerted", Width: 7},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())

	in := textinput.New()
	in.Placeholder = "192.168.1.1, printer.local 10.0.0.5"
	in.CharLimit = 1024
	in.Width = 60

	m := Model{
		ctl:    ctl,
		mailer: mailer,
		tick:   tick,
		now:    time.Now,
		states: make(map[string]device.DeviceState),
		table:  t,
		input:  in,
	}
	m.syncHosts()
	clear(m.addedAt)

	return m
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.drain()
		return m, m.tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(5, msg.Height/2))

		return m, nil

	case tea.KeyMsg:
		if m.mode == modeAdd {
			return m.updateAdd(msg)
		}

		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyQuitAlt:
		if err := m.ctl.Stop(); err != nil {
			m.log(fmt.Sprintf("Failed to stop monitor: %v", err))
		}

		m.quitting = true

		return m, tea.Quit

	case keyAdd:
		m.mode = modeAdd
		m.input.SetValue("")
		cmd := m.input.Focus()

		return m, cmd

	case keyRemove:
		row := m.table.SelectedRow()
		if len(row) == 0 {
			return m, nil
		}

		if m.ctl.RemoveHost(row[0]) {
			m.log("Removed 1 device(s).")
		}

		m.syncHosts()

		return m, nil

	case keyStart:
		m.start()
		return m, nil

	case keyStop:
		if !m.ctl.Running() {
			return m, nil
		}

		if err := m.ctl.Stop(); err != nil {
			m.log(fmt.Sprintf("Failed to stop monitor: %v", err))
			return m, nil
		}

		m.log("Monitoring stopped.")

		return m, nil

	case keyReload:
		m.mailer.ReloadFromEnv()
		m.log("Reloaded email config from environment variables.")

		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyCancel:
		m.mode = modeBrowse
		m.input.Blur()

		return m, nil

	case keySubmit:
		var added int
		for _, host := range hostsfile.Parse(m.input.Value()) {
			if m.ctl.AddHost(host) {
				added++
			}
		}

		if added > 0 {
			m.log(fmt.Sprintf("Added %d device(s).", added))
		}

		m.syncHosts()
		m.mode = modeBrowse
		m.input.Blur()
		m.input.SetValue("")

		return m, nil

	case keyQuitAlt:
		m.mode = modeBrowse
		return m.updateBrowse(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *Model) start() {
	if m.ctl.Running() {
		return
	}

	err := m.ctl.Start()

	switch {
	case errors.Is(err, monitor.ErrNoDevices):
		m.log("Add at least one host/IP before starting monitor.")
	case err != nil:
		m.log(fmt.Sprintf("Failed to start monitor: %v", err))
	default:
		m.log("Monitoring started.")
	}
}

// drain applies pending monitor events. Snapshot entries for hosts that
// are no longer registered are ignored.
func (m *Model) drain() {
	events := m.ctl.Drain()
	if len(events) == 0 {
		return
	}

	m.syncHosts()

	for _, ev := range events {
		switch ev.Kind {
		case updates.KindSnapshot:
			for _, s := range ev.Snapshot {
				if m.applies(ev.At, s.Host) {
					m.states[s.Host] = s
				}
			}
		case updates.KindLog:
			m.logAt(ev.At, ev.Message)
		}
	}

	m.refreshRows()
}

func (m *Model) applies(at time.Time, host string) bool {
	if _, ok := m.states[host]; !ok {
		return false
	}

	added, ok := m.addedAt[host]

	return !ok || !at.Before(added)
}

// syncHosts aligns the local view with the registry: new hosts start
// UNKNOWN and removed hosts are dropped.
func (m *Model) syncHosts() {
	hosts := m.ctl.Hosts()
	now := m.now()

	next := make(map[string]device.DeviceState, len(hosts))
	addedAt := make(map[string]time.Time, len(hosts))

	for _, h := range hosts {
		if s, ok := m.states[h]; ok {
			next[h] = s
			if at, ok := m.addedAt[h]; ok {
				addedAt[h] = at
			}
		} else {
			next[h] = device.NewDeviceState(h)
			addedAt[h] = now
		}
	}

	m.states = next
	m.addedAt = addedAt
	m.order = slices.Clone(hosts)
	m.refreshRows()
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, 0, len(m.order))
	for _, h := range m.order {
		rows = append(rows, toRow(m.states[h]))
	}

	m.table.SetRows(rows)

	if m.table.Cursor() < 0 && len(rows) > 0 {
		m.table.SetCursor(0)
	}
}

func (m *Model) log(message string) {
	m.logAt(time.Now(), message)
}

func (m *Model) logAt(at time.Time, message string) {
	m.logs = append(m.logs, fmt.Sprintf("[%s] %s", at.Format(time.TimeOnly), message))
	if len(m.logs) > maxLogLines {
		m.logs = slices.Delete(m.logs, 0, len(m.logs)-maxLogLines)
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func toRow(s device.DeviceState) table.Row {
	changed := "-"
	if !s.ChangedAt.IsZero() {
		changed = s.ChangedAt.Format(time.TimeOnly)
	}

	alerted := ""
	if s.DownNotified {
		alerted = "yes"
	}

	return table.Row{s.Host, s.Status.String(), s.Latency.String(), changed, alerted}
}
