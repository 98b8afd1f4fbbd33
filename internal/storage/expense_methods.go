package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// CreateExpense creates a new expense
func (s *PostgresStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `
		INSERT INTO expenses (
			id, created_at, updated_at, consortium_id, month, year,
			base_amount, computed_amount, due_date, paid_date, description, sent
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.CreatedAt, e.UpdatedAt, e.ConsortiumID, e.Month, e.Year,
		e.BaseAmount, e.ComputedAmount, e.DueDate, e.PaidDate, e.Description, e.Sent,
	)

	return mapError(err)
}

// GetExpense gets an expense by ID
func (s *PostgresStore) GetExpense(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	query := `
		SELECT id, created_at, updated_at, consortium_id, month, year,
		       base_amount, computed_amount, due_date, paid_date, description, sent
		FROM expenses
		WHERE id = $1`

	e := &models.Expense{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.CreatedAt, &e.UpdatedAt, &e.ConsortiumID, &e.Month, &e.Year,
		&e.BaseAmount, &e.ComputedAmount, &e.DueDate, &e.PaidDate, &e.Description, &e.Sent,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return e, nil
}

// UpdateExpense updates an expense
func (s *PostgresStore) UpdateExpense(ctx context.Context, e *models.Expense) error {
	e.UpdatedAt = time.Now()

	query := `
		UPDATE expenses SET
			updated_at = $2, consortium_id = $3, month = $4, year = $5,
			base_amount = $6, computed_amount = $7, due_date = $8,
			paid_date = $9, description = $10, sent = $11
		WHERE id = $1`

	return checkAffected(s.db.ExecContext(ctx, query,
		e.ID, e.UpdatedAt, e.ConsortiumID, e.Month, e.Year,
		e.BaseAmount, e.ComputedAmount, e.DueDate, e.PaidDate, e.Description, e.Sent,
	))
}

// DeleteExpense deletes an expense
func (s *PostgresStore) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return checkAffected(s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id))
}

// ListExpenses lists all expenses
func (s *PostgresStore) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	query := `
		SELECT id, created_at, updated_at, consortium_id, month, year,
		       base_amount, computed_amount, due_date, paid_date, description, sent
		FROM expenses
		ORDER BY year DESC, month DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		if err := rows.Scan(
			&e.ID, &e.CreatedAt, &e.UpdatedAt, &e.ConsortiumID, &e.Month, &e.Year,
			&e.BaseAmount, &e.ComputedAmount, &e.DueDate, &e.PaidDate, &e.Description, &e.Sent,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}
