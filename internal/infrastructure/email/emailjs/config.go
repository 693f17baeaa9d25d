package emailjs

import (
	"strings"
	"time"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/email/retry"
)

const (
	DefaultEndpoint       = "https://api.emailjs.com/api/v1.0/email/send"
	DefaultAttemptTimeout = 10 * time.Second
	DefaultVerifyLinkBase = "http://localhost:5000/api/auth/verify"
)

// Config holds the provider credentials and dispatch tuning.
type Config struct {
	ServiceID  string
	TemplateID string
	UserID     string

	// DefaultRecipient receives mail sent without an explicit recipient.
	DefaultRecipient string

	Endpoint          string
	VerifyLinkBaseURL string
	AttemptTimeout    time.Duration
	Retry             retry.Policy
}

func (c Config) withDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.VerifyLinkBaseURL == "" {
		c.VerifyLinkBaseURL = DefaultVerifyLinkBase
	}
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = DefaultAttemptTimeout
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry = retry.DefaultPolicy()
	}
	return c
}

// missingCredentials lists the env names of empty credentials, in a fixed order.
func (c Config) missingCredentials() []string {
	var missing []string
	if strings.TrimSpace(c.ServiceID) == "" {
		missing = append(missing, "EMAILJS_SERVICE_ID")
	}
	if strings.TrimSpace(c.TemplateID) == "" {
		missing = append(missing, "EMAILJS_TEMPLATE_ID")
	}
	if strings.TrimSpace(c.UserID) == "" {
		missing = append(missing, "EMAILJS_USER_ID")
	}
	return missing
}
