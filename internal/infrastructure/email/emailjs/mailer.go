package emailjs

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/account"
)

// Deliver implements account.Mailer.
func (d *Dispatcher) Deliver(ctx context.Context, e account.Email) account.Delivery {
	res := d.Send(ctx, Params{
		SenderName:     e.SenderName,
		SenderEmail:    e.SenderEmail,
		RecipientEmail: e.RecipientEmail,
		Message:        e.Message,
	})
	return account.Delivery{Sent: res.Sent, Error: res.ErrorMessage()}
}

var _ account.Mailer = (*Dispatcher)(nil)
