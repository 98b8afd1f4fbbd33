package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// CreatePayment creates a new payment
func (s *PostgresStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO payments (
			id, created_at, updated_at, unit_id, amount, payment_date,
			status, description, attachment_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.CreatedAt, p.UpdatedAt, p.UnitID, p.Amount, p.PaymentDate,
		p.Status, p.Description, p.AttachmentURL,
	)

	return mapError(err)
}

// GetPayment gets a payment by ID
func (s *PostgresStore) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	query := `
		SELECT id, created_at, updated_at, unit_id, amount, payment_date,
		       status, description, attachment_url
		FROM payments
		WHERE id = $1`

	p := &models.Payment{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.UnitID, &p.Amount, &p.PaymentDate,
		&p.Status, &p.Description, &p.AttachmentURL,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return p, nil
}

// UpdatePayment updates a payment
func (s *PostgresStore) UpdatePayment(ctx context.Context, p *models.Payment) error {
	p.UpdatedAt = time.Now()

	query := `
		UPDATE payments SET
			updated_at = $2, unit_id = $3, amount = $4, payment_date = $5,
			status = $6, description = $7, attachment_url = $8
		WHERE id = $1`

	return checkAffected(s.db.ExecContext(ctx, query,
		p.ID, p.UpdatedAt, p.UnitID, p.Amount, p.PaymentDate,
		p.Status, p.Description, p.AttachmentURL,
	))
}

// DeletePayment deletes a payment
func (s *PostgresStore) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return checkAffected(s.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id))
}

// ListPayments lists all payments
func (s *PostgresStore) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	query := `
		SELECT id, created_at, updated_at, unit_id, amount, payment_date,
		       status, description, attachment_url
		FROM payments
		ORDER BY payment_date DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		if err := rows.Scan(
			&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.UnitID, &p.Amount, &p.PaymentDate,
			&p.Status, &p.Description, &p.AttachmentURL,
		); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}
