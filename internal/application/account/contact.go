package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

type ContactInput struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,account_email"`
	Message string `validate:"required"`
}

// SubmitContact stores the message, then relays it to the site owner.
// The message stays stored when delivery fails.
func (s *Service) SubmitContact(ctx context.Context, in ContactInput) (domain.ContactMessage, error) {
	if err := checkFields(in, "All fields are required.", "Invalid email address."); err != nil {
		return domain.ContactMessage{}, err
	}

	saved, err := s.contacts.Save(ctx, domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return domain.ContactMessage{}, err
	}

	// No explicit recipient: the mailer falls back to its configured owner address.
	d := s.mailer.Deliver(ctx, Email{
		SenderName:  saved.Name,
		SenderEmail: saved.Email,
		Message:     saved.Message,
	})

	s.publish(ctx, "contact.submitted", func(ctx context.Context) error {
		return s.pub.PublishContactSubmitted(ctx, ContactSubmittedEvent{
			MessageID:  saved.ID,
			Email:      saved.Email,
			Delivered:  d.Sent,
			OccurredAt: s.now().UTC(),
		})
	})

	if !d.Sent {
		return saved, domain.ErrEmailDeliveryFailed(d.Error)
	}
	return saved, nil
}
