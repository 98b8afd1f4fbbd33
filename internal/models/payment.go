package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusRejected  = "rejected"
)

// Payment represents a payment registered against a functional unit
type Payment struct {
	ID        uuid.UUID `json:"id" db:"id" firestore:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" firestore:"updatedAt"`

	UnitID      string    `json:"unitId" db:"unit_id" firestore:"unitId"`
	Amount      float64   `json:"amount" db:"amount" firestore:"amount"`
	PaymentDate time.Time `json:"paymentDate" db:"payment_date" firestore:"paymentDate"`
	Status      string    `json:"status" db:"status" firestore:"status"`
	Description string    `json:"description" db:"description" firestore:"description"`

	AttachmentURL string `json:"attachmentUrl,omitempty" db:"attachment_url" firestore:"attachmentUrl"`
}
