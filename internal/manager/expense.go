package manager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/billing"
	"github.com/consorcio-server/consorcio-server/internal/mail"
	"github.com/consorcio-server/consorcio-server/internal/models"
	"github.com/consorcio-server/consorcio-server/internal/storage"
)

// CreateExpenseInput holds the fields for a new expense record
type CreateExpenseInput struct {
	ConsortiumID string     `json:"consortiumId" validate:"required"`
	Month        int        `json:"month" validate:"min=1,max=12"`
	Year         int        `json:"year" validate:"min=2000"`
	BaseAmount   float64    `json:"baseAmount" validate:"gt=0"`
	DueDate      time.Time  `json:"dueDate"`
	PaidDate     *time.Time `json:"paidDate"`
	Description  string     `json:"description"`
}

// UpdateExpenseInput holds a partial expense update
type UpdateExpenseInput struct {
	BaseAmount  *float64   `json:"baseAmount"`
	DueDate     *time.Time `json:"dueDate"`
	PaidDate    *time.Time `json:"paidDate"`
	Description *string    `json:"description"`
}

// financeParams returns the consortium's interest rate and grace period,
// falling back to the defaults when no configuration record exists.
func (m *Manager) financeParams(ctx context.Context, consortiumID string) (float64, int, error) {
	cfg, err := m.store.GetFinanceConfig(ctx, consortiumID)
	if errors.Is(err, storage.ErrNotFound) {
		return billing.DefaultInterestRatePerDay, billing.DefaultGracePeriodDays, nil
	}
	if err != nil {
		return 0, 0, wrapStore("get finance config", err)
	}
	return cfg.InterestRatePerDay, cfg.GracePeriodDays, nil
}

// CreateExpense creates an expense record, computing the amount due from the
// base amount plus any late-payment interest. Admin only.
func (m *Manager) CreateExpense(ctx context.Context, caller Caller, in CreateExpenseInput) (*models.Expense, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := m.validator.Validate(in); err != nil {
		return nil, invalid(err)
	}
	if in.DueDate.IsZero() {
		return nil, Validationf("due date is required")
	}

	rate, grace, err := m.financeParams(ctx, in.ConsortiumID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	e := &models.Expense{
		ID:             uuid.New(),
		CreatedAt:      now,
		UpdatedAt:      now,
		ConsortiumID:   in.ConsortiumID,
		Month:          in.Month,
		Year:           in.Year,
		BaseAmount:     in.BaseAmount,
		ComputedAmount: billing.ComputedAmount(in.BaseAmount, in.DueDate, in.PaidDate, rate, grace),
		DueDate:        in.DueDate,
		PaidDate:       in.PaidDate,
		Description:    in.Description,
	}

	if err := m.store.CreateExpense(ctx, e); err != nil {
		return nil, wrapStore("create expense", err)
	}

	return e, nil
}

// GetExpense fetches an expense by id
func (m *Manager) GetExpense(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	e, err := m.store.GetExpense(ctx, id)
	if err != nil {
		return nil, wrapStore("get expense", err)
	}
	return e, nil
}

// ListExpenses lists all expense records
func (m *Manager) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	expenses, err := m.store.ListExpenses(ctx)
	if err != nil {
		return nil, wrapStore("list expenses", err)
	}
	return expenses, nil
}

// UpdateExpense applies a partial update and recomputes the amount due with
// the consortium's current configuration. Admin only.
func (m *Manager) UpdateExpense(ctx context.Context, caller Caller, id uuid.UUID, in UpdateExpenseInput) (*models.Expense, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}

	e, err := m.store.GetExpense(ctx, id)
	if err != nil {
		return nil, wrapStore("get expense", err)
	}

	if in.BaseAmount != nil {
		if *in.BaseAmount <= 0 {
			return nil, Validationf("base amount must be positive")
		}
		e.BaseAmount = *in.BaseAmount
	}
	if in.DueDate != nil {
		if in.DueDate.IsZero() {
			return nil, Validationf("due date is required")
		}
		e.DueDate = *in.DueDate
	}
	if in.PaidDate != nil {
		e.PaidDate = in.PaidDate
	}
	if in.Description != nil {
		e.Description = *in.Description
	}

	rate, grace, err := m.financeParams(ctx, e.ConsortiumID)
	if err != nil {
		return nil, err
	}
	e.ComputedAmount = billing.ComputedAmount(e.BaseAmount, e.DueDate, e.PaidDate, rate, grace)
	e.UpdatedAt = time.Now()

	if err := m.store.UpdateExpense(ctx, e); err != nil {
		return nil, wrapStore("update expense", err)
	}

	return e, nil
}

// DeleteExpense deletes an expense record. Admin only.
func (m *Manager) DeleteExpense(ctx context.Context, caller Caller, id uuid.UUID) error {
	if err := m.requireAdmin(caller); err != nil {
		return err
	}
	if err := m.store.DeleteExpense(ctx, id); err != nil {
		return wrapStore("delete expense", err)
	}
	return nil
}

// SendExpense emails the computed bill to the recipient and marks the
// record as sent. Admin only. Delivery is dispatched after the record is
// updated; a delivery failure never reverts the sent flag.
func (m *Manager) SendExpense(ctx context.Context, caller Caller, id uuid.UUID, to string) (*models.Expense, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}
	if !mail.ValidRecipient(to) {
		return nil, Validationf("invalid recipient address: %q", to)
	}

	e, err := m.store.GetExpense(ctx, id)
	if err != nil {
		return nil, wrapStore("get expense", err)
	}

	e.Sent = true
	e.UpdatedAt = time.Now()
	if err := m.store.UpdateExpense(ctx, e); err != nil {
		return nil, wrapStore("update expense", err)
	}

	m.dispatcher.Dispatch(ctx, mail.Message{
		To:      to,
		Subject: fmt.Sprintf("Expense statement %02d/%d", e.Month, e.Year),
		Body: fmt.Sprintf(
			"Expense statement for period %02d/%d.\n\nBase amount: %.2f\nAmount due: %.2f\nDue date: %s\n\n%s",
			e.Month, e.Year, e.BaseAmount, e.ComputedAmount, e.DueDate.Format("2006-01-02"), e.Description),
	})

	return e, nil
}
