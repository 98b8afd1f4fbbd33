package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/mail"
	"github.com/consorcio-server/consorcio-server/internal/models"
)

// CreateInvitationInput holds the fields for a new invitation
type CreateInvitationInput struct {
	RecipientEmail string `json:"recipientEmail" validate:"required,email"`
	Subject        string `json:"subject" validate:"required"`
	Message        string `json:"message"`
}

// CreateInvitation creates an invitation, issues a short-lived join token
// bound to the recipient email, and dispatches the invitation email after
// the record commit. Admin only. Deleting the record later does not revoke
// the token.
func (m *Manager) CreateInvitation(ctx context.Context, caller Caller, in CreateInvitationInput, attachments []Upload) (*models.Invitation, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := m.validator.Validate(in); err != nil {
		return nil, invalid(err)
	}

	urls, err := m.uploadAll(ctx, "invitations", attachments)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := m.tokens.GenerateInviteToken(in.RecipientEmail)
	if err != nil {
		return nil, Transportf("issue join token: %v", err)
	}

	inv := &models.Invitation{
		ID:             uuid.New(),
		CreatedAt:      time.Now(),
		RecipientEmail: in.RecipientEmail,
		Subject:        in.Subject,
		Message:        in.Message,
		AttachmentURLs: urls,
		JoinToken:      token,
		ExpiresAt:      expiresAt,
	}

	if err := m.store.CreateInvitation(ctx, inv); err != nil {
		return nil, wrapStore("create invitation", err)
	}

	msg := mail.Message{
		To:      inv.RecipientEmail,
		Subject: inv.Subject,
		Body: fmt.Sprintf("%s\n\nUse this token to join (valid until %s):\n%s",
			inv.Message, inv.ExpiresAt.Format(time.RFC3339), inv.JoinToken),
	}
	if len(attachments) > 0 {
		msg.Attachment = &mail.Attachment{
			Filename: attachments[0].Filename,
			Content:  attachments[0].Content,
		}
	}
	m.dispatcher.Dispatch(ctx, msg)

	return inv, nil
}

// GetInvitation fetches an invitation by id
func (m *Manager) GetInvitation(ctx context.Context, id uuid.UUID) (*models.Invitation, error) {
	inv, err := m.store.GetInvitation(ctx, id)
	if err != nil {
		return nil, wrapStore("get invitation", err)
	}
	return inv, nil
}

// ListInvitations lists all invitations
func (m *Manager) ListInvitations(ctx context.Context) ([]*models.Invitation, error) {
	invitations, err := m.store.ListInvitations(ctx)
	if err != nil {
		return nil, wrapStore("list invitations", err)
	}
	return invitations, nil
}

// DeleteInvitation deletes an invitation record. Admin only. An already
// issued join token stays valid until it expires.
func (m *Manager) DeleteInvitation(ctx context.Context, caller Caller, id uuid.UUID) error {
	if err := m.requireAdmin(caller); err != nil {
		return err
	}
	if err := m.store.DeleteInvitation(ctx, id); err != nil {
		return wrapStore("delete invitation", err)
	}
	return nil
}
