package smtp

import (
	"os"
	"strconv"
	"strings"
)

const (
	EnvServer    = "PM_SMTP_SERVER"
	EnvPort      = "PM_SMTP_PORT"
	EnvSender    = "PM_SENDER_EMAIL"
	EnvPassword  = "PM_SENDER_PASSWORD"
	EnvRecipient = "PM_RECIPIENT_EMAIL"

	DefaultPort = 587
)

type Config struct {
	Server    string
	Port      int
	Sender    string
	Password  string
	Recipient string
}

// Enabled reports whether every setting needed for delivery is present.
func (c Config) Enabled() bool {
	return c.Server != "" && c.Port > 0 && c.Sender != "" && c.Password != "" && c.Recipient != ""
}

// ConfigFromEnv reads the PM_* variables. An unparsable port counts as unset.
func ConfigFromEnv(getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}

	port := DefaultPort
	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			p = 0
		}

		port = p
	}

	return Config{
		Server:    strings.TrimSpace(getenv(EnvServer)),
		Port:      port,
		Sender:    strings.TrimSpace(getenv(EnvSender)),
		Password:  getenv(EnvPassword),
		Recipient: strings.TrimSpace(getenv(EnvRecipient)),
	}
}
