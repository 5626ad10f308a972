package smtp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/khmm12/ping-monitor/internal/common/logging"
)

const (
	AlertSubject = "Ping Monitor Alert: devices offline"
	TestSubject  = "Ping Monitor - Test Email"

	DefaultTimeout = 10 * time.Second

	MessageSkipped = "Email alert skipped. Configure PM_SMTP_SERVER, PM_SMTP_PORT, " +
		"PM_SENDER_EMAIL, PM_SENDER_PASSWORD and PM_RECIPIENT_EMAIL."
	MessageSent     = "Email alert sent successfully."
	MessageTestSent = "Email sent successfully."
)

// outcome holds the texts a caller reports for one kind of message.
type outcome struct {
	sent   string
	failed string
}

var (
	alertOutcome = outcome{sent: MessageSent, failed: "Email alert failed: %v"}
	testOutcome  = outcome{sent: MessageTestSent, failed: "Failed to send email: %v"}
)

type sendFunc func(ctx context.Context, cfg Config, timeout time.Duration, msg *mail.Msg) error

// Notifier emails the list of hosts that just went offline. Its
// configuration can be swapped at runtime with Reload.
type Notifier struct {
	logger  *slog.Logger
	config  atomic.Pointer[Config]
	timeout time.Duration
	send    sendFunc
}

func NewNotifier(logger *slog.Logger, cfg Config, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	n := &Notifier{
		logger:  logger,
		timeout: timeout,
		send:    sendMail,
	}
	n.config.Store(&cfg)

	return n
}

func (n *Notifier) Config() Config {
	return *n.config.Load()
}

func (n *Notifier) Enabled() bool {
	return n.Config().Enabled()
}

func (n *Notifier) Reload(cfg Config) {
	n.config.Store(&cfg)
	n.logger.Info("Email configuration reloaded", slog.Bool("enabled", cfg.Enabled()))
}

// ReloadFromEnv replaces the configuration with the current PM_* variables.
func (n *Notifier) ReloadFromEnv() {
	n.Reload(ConfigFromEnv(nil))
}

func (n *Notifier) Notify(ctx context.Context, hosts []string) (bool, string) {
	body := "These hosts are offline:\n\n" + strings.Join(hosts, "\n")

	return n.deliver(ctx, AlertSubject, body, alertOutcome)
}

// SendTest delivers a fixed message to verify the SMTP settings.
func (n *Notifier) SendTest(ctx context.Context) (bool, string) {
	return n.deliver(ctx, TestSubject, "Ping Monitor test email sent successfully.", testOutcome)
}

func (n *Notifier) deliver(ctx context.Context, subject, body string, texts outcome) (bool, string) {
	cfg := n.Config()
	if !cfg.Enabled() {
		return false, MessageSkipped
	}

	msg, err := newMessage(cfg, subject, body)
	if err == nil {
		err = n.send(ctx, cfg, n.timeout, msg)
	}

	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to send email", slog.String("subject", subject), logging.Error(err))
		return false, fmt.Sprintf(texts.failed, err)
	}

	return true, texts.sent
}

func newMessage(cfg Config, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg(mail.WithEncoding(mail.NoEncoding))

	if err := msg.From(cfg.Sender); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}

	if err := msg.To(cfg.Recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}

	msg.Subject(subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, body)

	return msg, nil
}

// sendMail requires STARTTLS before authenticating.
func sendMail(ctx context.Context, cfg Config, timeout time.Duration, msg *mail.Msg) error {
	client, err := mail.NewClient(cfg.Server,
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Sender),
		mail.WithPassword(cfg.Password),
		mail.WithTimeout(timeout),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return client.DialAndSendWithContext(ctx, msg)
}
