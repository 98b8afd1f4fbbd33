package manager

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// CreateStaffInput holds the fields for a new staff member
type CreateStaffInput struct {
	Name           string    `json:"name" validate:"required"`
	BirthDate      time.Time `json:"birthDate"`
	CUIL           string    `json:"cuil" validate:"required"`
	Position       string    `json:"position" validate:"required"`
	Category       string    `json:"category"`
	SeniorityYears int       `json:"seniorityYears" validate:"min=0"`
}

// UpdateStaffInput holds a partial staff update
type UpdateStaffInput struct {
	Name           *string    `json:"name"`
	BirthDate      *time.Time `json:"birthDate"`
	CUIL           *string    `json:"cuil"`
	Position       *string    `json:"position"`
	Category       *string    `json:"category"`
	SeniorityYears *int       `json:"seniorityYears"`
}

// CreatePayrollReceiptInput holds the fields for a new payroll receipt
type CreatePayrollReceiptInput struct {
	StaffID uuid.UUID `json:"staffId"`
	Month   int       `json:"month" validate:"min=1,max=12"`
	Year    int       `json:"year" validate:"min=2000"`
	Amount  float64   `json:"amount" validate:"gt=0"`
	Details string    `json:"details"`
}

// CreateStaff registers a staff member. Admin only.
func (m *Manager) CreateStaff(ctx context.Context, caller Caller, in CreateStaffInput) (*models.Staff, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := m.validator.Validate(in); err != nil {
		return nil, invalid(err)
	}
	if in.BirthDate.IsZero() {
		return nil, Validationf("birth date is required")
	}

	now := time.Now()
	s := &models.Staff{
		ID:             uuid.New(),
		CreatedAt:      now,
		UpdatedAt:      now,
		Name:           in.Name,
		BirthDate:      in.BirthDate,
		CUIL:           in.CUIL,
		Position:       in.Position,
		Category:       in.Category,
		SeniorityYears: in.SeniorityYears,
	}

	if err := m.store.CreateStaff(ctx, s); err != nil {
		return nil, wrapStore("create staff", err)
	}

	return s, nil
}

// GetStaff fetches a staff member by id
func (m *Manager) GetStaff(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	s, err := m.store.GetStaff(ctx, id)
	if err != nil {
		return nil, wrapStore("get staff", err)
	}
	return s, nil
}

// ListStaff lists all staff members
func (m *Manager) ListStaff(ctx context.Context) ([]*models.Staff, error) {
	staff, err := m.store.ListStaff(ctx)
	if err != nil {
		return nil, wrapStore("list staff", err)
	}
	return staff, nil
}

// UpdateStaff applies a partial update. Admin only.
func (m *Manager) UpdateStaff(ctx context.Context, caller Caller, id uuid.UUID, in UpdateStaffInput) (*models.Staff, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}

	s, err := m.store.GetStaff(ctx, id)
	if err != nil {
		return nil, wrapStore("get staff", err)
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, Validationf("name must not be empty")
		}
		s.Name = *in.Name
	}
	if in.BirthDate != nil {
		s.BirthDate = *in.BirthDate
	}
	if in.CUIL != nil {
		s.CUIL = *in.CUIL
	}
	if in.Position != nil {
		s.Position = *in.Position
	}
	if in.Category != nil {
		s.Category = *in.Category
	}
	if in.SeniorityYears != nil {
		if *in.SeniorityYears < 0 {
			return nil, Validationf("seniority must not be negative")
		}
		s.SeniorityYears = *in.SeniorityYears
	}

	s.UpdatedAt = time.Now()

	if err := m.store.UpdateStaff(ctx, s); err != nil {
		return nil, wrapStore("update staff", err)
	}

	return s, nil
}

// DeleteStaff deletes a staff member. Admin only.
func (m *Manager) DeleteStaff(ctx context.Context, caller Caller, id uuid.UUID) error {
	if err := m.requireAdmin(caller); err != nil {
		return err
	}
	if err := m.store.DeleteStaff(ctx, id); err != nil {
		return wrapStore("delete staff", err)
	}
	return nil
}

// CreatePayrollReceipt registers a payroll receipt for a staff member.
// Admin only. The staff member must exist.
func (m *Manager) CreatePayrollReceipt(ctx context.Context, caller Caller, in CreatePayrollReceiptInput, attachment *Upload) (*models.PayrollReceipt, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := m.validator.Validate(in); err != nil {
		return nil, invalid(err)
	}
	if in.StaffID == uuid.Nil {
		return nil, Validationf("staff id is required")
	}

	if _, err := m.store.GetStaff(ctx, in.StaffID); err != nil {
		return nil, wrapStore("get staff", err)
	}

	url, err := m.uploadOne(ctx, "receipts", attachment)
	if err != nil {
		return nil, err
	}

	r := &models.PayrollReceipt{
		ID:            uuid.New(),
		CreatedAt:     time.Now(),
		StaffID:       in.StaffID,
		Month:         in.Month,
		Year:          in.Year,
		Amount:        in.Amount,
		Details:       in.Details,
		AttachmentURL: url,
	}

	if err := m.store.CreatePayrollReceipt(ctx, r); err != nil {
		return nil, wrapStore("create payroll receipt", err)
	}

	return r, nil
}

// GetPayrollReceipt fetches a payroll receipt by id
func (m *Manager) GetPayrollReceipt(ctx context.Context, id uuid.UUID) (*models.PayrollReceipt, error) {
	r, err := m.store.GetPayrollReceipt(ctx, id)
	if err != nil {
		return nil, wrapStore("get payroll receipt", err)
	}
	return r, nil
}

// ListPayrollReceipts lists the receipts of one staff member
func (m *Manager) ListPayrollReceipts(ctx context.Context, staffID uuid.UUID) ([]*models.PayrollReceipt, error) {
	receipts, err := m.store.ListPayrollReceiptsByStaff(ctx, staffID)
	if err != nil {
		return nil, wrapStore("list payroll receipts", err)
	}
	return receipts, nil
}
