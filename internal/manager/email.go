package manager

import (
	"context"

	"github.com/consorcio-server/consorcio-server/internal/mail"
	"github.com/consorcio-server/consorcio-server/internal/models"
)

// SendEmailInput holds the fields for an explicit transactional email
type SendEmailInput struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

// SendEmail delivers a transactional email synchronously, in a single
// attempt. Admin only. Unlike the notifications dispatched after record
// commits, a delivery failure here is surfaced to the caller.
func (m *Manager) SendEmail(ctx context.Context, caller Caller, in SendEmailInput, attachment *Upload) error {
	if err := m.requireAdmin(caller); err != nil {
		return err
	}
	if err := m.validator.Validate(in); err != nil {
		return invalid(err)
	}

	msg := mail.Message{
		To:      in.To,
		Subject: in.Subject,
		Body:    in.Body,
	}
	if attachment != nil {
		msg.Attachment = &mail.Attachment{
			Filename: attachment.Filename,
			Content:  attachment.Content,
		}
	}

	if err := m.sender.Send(ctx, msg); err != nil {
		return Transportf("send email: %v", err)
	}

	return nil
}

// ListEmailLog returns the append-only send history. Admin only.
func (m *Manager) ListEmailLog(ctx context.Context, caller Caller) ([]*models.EmailLog, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}
	logs, err := m.store.ListEmailLogs(ctx)
	if err != nil {
		return nil, wrapStore("list email log", err)
	}
	return logs, nil
}
