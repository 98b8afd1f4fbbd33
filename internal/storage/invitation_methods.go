package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// CreateInvitation creates a new invitation
func (s *PostgresStore) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	inv.CreatedAt = time.Now()

	query := `
		INSERT INTO invitations (
			id, created_at, recipient_email, subject, message,
			attachment_urls, join_token, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		inv.ID, inv.CreatedAt, inv.RecipientEmail, inv.Subject, inv.Message,
		inv.AttachmentURLs, inv.JoinToken, inv.ExpiresAt,
	)

	return mapError(err)
}

// GetInvitation gets an invitation by ID
func (s *PostgresStore) GetInvitation(ctx context.Context, id uuid.UUID) (*models.Invitation, error) {
	query := `
		SELECT id, created_at, recipient_email, subject, message,
		       attachment_urls, join_token, expires_at
		FROM invitations
		WHERE id = $1`

	inv := &models.Invitation{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&inv.ID, &inv.CreatedAt, &inv.RecipientEmail, &inv.Subject, &inv.Message,
		&inv.AttachmentURLs, &inv.JoinToken, &inv.ExpiresAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return inv, nil
}

// DeleteInvitation deletes an invitation. Already-issued join tokens stay
// valid until they expire.
func (s *PostgresStore) DeleteInvitation(ctx context.Context, id uuid.UUID) error {
	return checkAffected(s.db.ExecContext(ctx, `DELETE FROM invitations WHERE id = $1`, id))
}

// ListInvitations lists all invitations
func (s *PostgresStore) ListInvitations(ctx context.Context) ([]*models.Invitation, error) {
	query := `
		SELECT id, created_at, recipient_email, subject, message,
		       attachment_urls, join_token, expires_at
		FROM invitations
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var invitations []*models.Invitation
	for rows.Next() {
		inv := &models.Invitation{}
		if err := rows.Scan(
			&inv.ID, &inv.CreatedAt, &inv.RecipientEmail, &inv.Subject, &inv.Message,
			&inv.AttachmentURLs, &inv.JoinToken, &inv.ExpiresAt,
		); err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}

	return invitations, rows.Err()
}
