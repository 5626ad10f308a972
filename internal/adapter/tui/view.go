package tui

import (
	"fmt"
	"strings"

	"github.com/khmm12/ping-monitor/internal/device"
)

const visibleLogLines = 8

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.mode == modeAdd {
		b.WriteString("\nAdd hosts (comma or space separated, enter to confirm, esc to cancel)\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderLog())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpText))

	return b.String()
}

func (m Model) renderHeader() string {
	var up, down int
	for _, s := range m.states {
		switch s.Status {
		case device.StatusUp:
			up++
		case device.StatusDown:
			down++
		}
	}

	monitoring := "stopped"
	if m.ctl.Running() {
		monitoring = "running"
	}

	stats := fmt.Sprintf("%d hosts | %s %d | %s %d | Monitoring: %s | %s",
		len(m.order),
		upStyle.Render("UP"), up,
		downStyle.Render("DOWN"), down,
		monitoring,
		m.emailStatus(),
	)

	return titleStyle.Render("Ping Monitor") + statusBarStyle.Render(stats)
}

func (m Model) emailStatus() string {
	if m.mailer.Enabled() {
		return "Email: configured"
	}

	return "Email: not configured"
}

func (m Model) renderLog() string {
	lines := m.logs
	if len(lines) > visibleLogLines {
		lines = lines[len(lines)-visibleLogLines:]
	}

	body := strings.Join(lines, "\n")
	if body == "" {
		body = helpStyle.Render("No events yet")
	}

	style := logStyle
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}

	return style.Render(body)
}
