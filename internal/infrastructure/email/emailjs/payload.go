package emailjs

import "net/url"

// Mode is selected by whether a free-text message is present.
type Mode string

const (
	ModeVerification Mode = "verification"
	ModeContact      Mode = "contact"
)

// Params describes one email.
type Params struct {
	SenderName     string
	SenderEmail    string
	RecipientEmail string
	// Message switches the email to contact mode when non-empty.
	Message string
}

func (p Params) Mode() Mode {
	if p.Message != "" {
		return ModeContact
	}
	return ModeVerification
}

type payload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// VerificationLink builds the one-time link for email.
func VerificationLink(base, email string) string {
	return base + "?email=" + url.QueryEscape(email)
}

func buildPayload(cfg Config, p Params, recipient string) payload {
	params := map[string]string{
		"from_email": p.SenderEmail,
		"to_email":   recipient,
	}

	switch p.Mode() {
	case ModeContact:
		params["message"] = p.Message
	case ModeVerification:
		if p.SenderEmail != "" {
			params["verificationLink"] = VerificationLink(cfg.VerifyLinkBaseURL, p.SenderEmail)
			name := p.SenderName
			if name == "" {
				name = "User"
			}
			params["name"] = name
		}
	}

	return payload{
		ServiceID:      cfg.ServiceID,
		TemplateID:     cfg.TemplateID,
		UserID:         cfg.UserID,
		TemplateParams: params,
	}
}
