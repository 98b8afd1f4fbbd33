package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/mail"
	"github.com/consorcio-server/consorcio-server/internal/models"
)

// CreatePaymentInput holds the fields for a new payment
type CreatePaymentInput struct {
	UnitID      string    `json:"unitId" validate:"required"`
	Amount      float64   `json:"amount" validate:"gt=0"`
	PaymentDate time.Time `json:"paymentDate"`
	Status      string    `json:"status"`
	Description string    `json:"description"`

	// NotifyEmail, when set, receives a payment notification after the
	// record commit
	NotifyEmail string `json:"notifyEmail"`
}

// UpdatePaymentInput holds a partial payment update
type UpdatePaymentInput struct {
	Amount      *float64   `json:"amount"`
	PaymentDate *time.Time `json:"paymentDate"`
	Status      *string    `json:"status"`
	Description *string    `json:"description"`
}

func validPaymentStatus(s string) bool {
	switch s {
	case models.PaymentStatusPending, models.PaymentStatusCompleted, models.PaymentStatusRejected:
		return true
	}
	return false
}

// CreatePayment registers a payment. Admin only. An optional receipt file is
// stored alongside the record; an optional notification email is dispatched
// after the commit.
func (m *Manager) CreatePayment(ctx context.Context, caller Caller, in CreatePaymentInput, receipt *Upload) (*models.Payment, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := m.validator.Validate(in); err != nil {
		return nil, invalid(err)
	}
	if in.PaymentDate.IsZero() {
		return nil, Validationf("payment date is required")
	}
	if in.Status == "" {
		in.Status = models.PaymentStatusPending
	}
	if !validPaymentStatus(in.Status) {
		return nil, Validationf("invalid payment status: %q", in.Status)
	}
	if in.NotifyEmail != "" && !mail.ValidRecipient(in.NotifyEmail) {
		return nil, Validationf("invalid notification address: %q", in.NotifyEmail)
	}

	url, err := m.uploadOne(ctx, "payments", receipt)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &models.Payment{
		ID:            uuid.New(),
		CreatedAt:     now,
		UpdatedAt:     now,
		UnitID:        in.UnitID,
		Amount:        in.Amount,
		PaymentDate:   in.PaymentDate,
		Status:        in.Status,
		Description:   in.Description,
		AttachmentURL: url,
	}

	if err := m.store.CreatePayment(ctx, p); err != nil {
		return nil, wrapStore("create payment", err)
	}

	if in.NotifyEmail != "" {
		m.dispatcher.Dispatch(ctx, mail.Message{
			To:      in.NotifyEmail,
			Subject: "Payment registered",
			Body: fmt.Sprintf("A payment of %.2f for unit %s was registered on %s.",
				p.Amount, p.UnitID, p.PaymentDate.Format("2006-01-02")),
		})
	}

	return p, nil
}

// GetPayment fetches a payment by id
func (m *Manager) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	p, err := m.store.GetPayment(ctx, id)
	if err != nil {
		return nil, wrapStore("get payment", err)
	}
	return p, nil
}

// ListPayments lists all payments
func (m *Manager) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	payments, err := m.store.ListPayments(ctx)
	if err != nil {
		return nil, wrapStore("list payments", err)
	}
	return payments, nil
}

// UpdatePayment applies a partial update. Admin only.
func (m *Manager) UpdatePayment(ctx context.Context, caller Caller, id uuid.UUID, in UpdatePaymentInput, receipt *Upload) (*models.Payment, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}

	p, err := m.store.GetPayment(ctx, id)
	if err != nil {
		return nil, wrapStore("get payment", err)
	}

	if in.Amount != nil {
		if *in.Amount <= 0 {
			return nil, Validationf("amount must be positive")
		}
		p.Amount = *in.Amount
	}
	if in.PaymentDate != nil {
		p.PaymentDate = *in.PaymentDate
	}
	if in.Status != nil {
		if !validPaymentStatus(*in.Status) {
			return nil, Validationf("invalid payment status: %q", *in.Status)
		}
		p.Status = *in.Status
	}
	if in.Description != nil {
		p.Description = *in.Description
	}

	if receipt != nil {
		url, err := m.uploadOne(ctx, "payments", receipt)
		if err != nil {
			return nil, err
		}
		p.AttachmentURL = url
	}

	p.UpdatedAt = time.Now()

	if err := m.store.UpdatePayment(ctx, p); err != nil {
		return nil, wrapStore("update payment", err)
	}

	return p, nil
}

// DeletePayment deletes a payment. Admin only.
func (m *Manager) DeletePayment(ctx context.Context, caller Caller, id uuid.UUID) error {
	if err := m.requireAdmin(caller); err != nil {
		return err
	}
	if err := m.store.DeletePayment(ctx, id); err != nil {
		return wrapStore("delete payment", err)
	}
	return nil
}
