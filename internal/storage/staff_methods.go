package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// ========== Staff methods ==========

// CreateStaff creates a new staff member
func (s *PostgresStore) CreateStaff(ctx context.Context, st *models.Staff) error {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}

	now := time.Now()
	st.CreatedAt = now
	st.UpdatedAt = now

	query := `
		INSERT INTO staff (
			id, created_at, updated_at, name, birth_date, cuil,
			position, category, seniority_years
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		st.ID, st.CreatedAt, st.UpdatedAt, st.Name, st.BirthDate, st.CUIL,
		st.Position, st.Category, st.SeniorityYears,
	)

	return mapError(err)
}

// GetStaff gets a staff member by ID
func (s *PostgresStore) GetStaff(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	query := `
		SELECT id, created_at, updated_at, name, birth_date, cuil,
		       position, category, seniority_years
		FROM staff
		WHERE id = $1`

	st := &models.Staff{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&st.ID, &st.CreatedAt, &st.UpdatedAt, &st.Name, &st.BirthDate, &st.CUIL,
		&st.Position, &st.Category, &st.SeniorityYears,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return st, nil
}

// UpdateStaff updates a staff member
func (s *PostgresStore) UpdateStaff(ctx context.Context, st *models.Staff) error {
	st.UpdatedAt = time.Now()

	query := `
		UPDATE staff SET
			updated_at = $2, name = $3, birth_date = $4, cuil = $5,
			position = $6, category = $7, seniority_years = $8
		WHERE id = $1`

	return checkAffected(s.db.ExecContext(ctx, query,
		st.ID, st.UpdatedAt, st.Name, st.BirthDate, st.CUIL,
		st.Position, st.Category, st.SeniorityYears,
	))
}

// DeleteStaff deletes a staff member
func (s *PostgresStore) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	return checkAffected(s.db.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id))
}

// ListStaff lists all staff members
func (s *PostgresStore) ListStaff(ctx context.Context) ([]*models.Staff, error) {
	query := `
		SELECT id, created_at, updated_at, name, birth_date, cuil,
		       position, category, seniority_years
		FROM staff
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var staff []*models.Staff
	for rows.Next() {
		st := &models.Staff{}
		if err := rows.Scan(
			&st.ID, &st.CreatedAt, &st.UpdatedAt, &st.Name, &st.BirthDate, &st.CUIL,
			&st.Position, &st.Category, &st.SeniorityYears,
		); err != nil {
			return nil, err
		}
		staff = append(staff, st)
	}

	return staff, rows.Err()
}

// ========== Payroll receipt methods ==========

// CreatePayrollReceipt creates a new payroll receipt
func (s *PostgresStore) CreatePayrollReceipt(ctx context.Context, r *models.PayrollReceipt) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()

	query := `
		INSERT INTO payroll_receipts (
			id, created_at, staff_id, month, year, amount, details, attachment_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.CreatedAt, r.StaffID, r.Month, r.Year, r.Amount, r.Details, r.AttachmentURL,
	)

	return mapError(err)
}

// GetPayrollReceipt gets a payroll receipt by ID
func (s *PostgresStore) GetPayrollReceipt(ctx context.Context, id uuid.UUID) (*models.PayrollReceipt, error) {
	query := `
		SELECT id, created_at, staff_id, month, year, amount, details, attachment_url
		FROM payroll_receipts
		WHERE id = $1`

	r := &models.PayrollReceipt{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&r.ID, &r.CreatedAt, &r.StaffID, &r.Month, &r.Year, &r.Amount, &r.Details, &r.AttachmentURL,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return r, nil
}

// ListPayrollReceiptsByStaff lists payroll receipts for a staff member
func (s *PostgresStore) ListPayrollReceiptsByStaff(ctx context.Context, staffID uuid.UUID) ([]*models.PayrollReceipt, error) {
	query := `
		SELECT id, created_at, staff_id, month, year, amount, details, attachment_url
		FROM payroll_receipts
		WHERE staff_id = $1
		ORDER BY year DESC, month DESC`

	rows, err := s.db.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var receipts []*models.PayrollReceipt
	for rows.Next() {
		r := &models.PayrollReceipt{}
		if err := rows.Scan(
			&r.ID, &r.CreatedAt, &r.StaffID, &r.Month, &r.Year, &r.Amount, &r.Details, &r.AttachmentURL,
		); err != nil {
			return nil, err
		}
		receipts = append(receipts, r)
	}

	return receipts, rows.Err()
}
