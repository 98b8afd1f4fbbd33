package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// CreateComplaint creates a new complaint
func (s *PostgresStore) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `
		INSERT INTO complaints (
			id, created_at, updated_at, unit_id, content, status,
			attachment_urls, reply, replied_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.CreatedAt, c.UpdatedAt, c.UnitID, c.Content, c.Status,
		c.AttachmentURLs, c.Reply, c.RepliedAt,
	)

	return mapError(err)
}

// GetComplaint gets a complaint by ID
func (s *PostgresStore) GetComplaint(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	query := `
		SELECT id, created_at, updated_at, unit_id, content, status,
		       attachment_urls, reply, replied_at
		FROM complaints
		WHERE id = $1`

	c := &models.Complaint{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.UnitID, &c.Content, &c.Status,
		&c.AttachmentURLs, &c.Reply, &c.RepliedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return c, nil
}

// UpdateComplaint updates a complaint
func (s *PostgresStore) UpdateComplaint(ctx context.Context, c *models.Complaint) error {
	c.UpdatedAt = time.Now()

	query := `
		UPDATE complaints SET
			updated_at = $2, unit_id = $3, content = $4, status = $5,
			attachment_urls = $6, reply = $7, replied_at = $8
		WHERE id = $1`

	return checkAffected(s.db.ExecContext(ctx, query,
		c.ID, c.UpdatedAt, c.UnitID, c.Content, c.Status,
		c.AttachmentURLs, c.Reply, c.RepliedAt,
	))
}

// DeleteComplaint deletes a complaint
func (s *PostgresStore) DeleteComplaint(ctx context.Context, id uuid.UUID) error {
	return checkAffected(s.db.ExecContext(ctx, `DELETE FROM complaints WHERE id = $1`, id))
}

// ListComplaints lists all complaints
func (s *PostgresStore) ListComplaints(ctx context.Context) ([]*models.Complaint, error) {
	query := `
		SELECT id, created_at, updated_at, unit_id, content, status,
		       attachment_urls, reply, replied_at
		FROM complaints
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var complaints []*models.Complaint
	for rows.Next() {
		c := &models.Complaint{}
		if err := rows.Scan(
			&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.UnitID, &c.Content, &c.Status,
			&c.AttachmentURLs, &c.Reply, &c.RepliedAt,
		); err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}

	return complaints, rows.Err()
}
