package models

import (
	"time"

	"github.com/google/uuid"
)

// Expense represents a monthly billing record (expensa) for a consortium
type Expense struct {
	ID        uuid.UUID `json:"id" db:"id" firestore:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" firestore:"updatedAt"`

	ConsortiumID string `json:"consortiumId" db:"consortium_id" firestore:"consortiumId"`
	Month        int    `json:"month" db:"month" firestore:"month"`
	Year         int    `json:"year" db:"year" firestore:"year"`

	BaseAmount float64 `json:"baseAmount" db:"base_amount" firestore:"baseAmount"`

	// ComputedAmount is the base amount plus any late-payment interest.
	// Invariant: ComputedAmount >= BaseAmount.
	ComputedAmount float64 `json:"computedAmount" db:"computed_amount" firestore:"computedAmount"`

	DueDate  time.Time  `json:"dueDate" db:"due_date" firestore:"dueDate"`
	PaidDate *time.Time `json:"paidDate,omitempty" db:"paid_date" firestore:"paidDate"`

	Description string `json:"description" db:"description" firestore:"description"`

	// Sent marks whether the bill was emailed out
	Sent bool `json:"sent" db:"sent" firestore:"sent"`
}
