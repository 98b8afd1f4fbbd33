package models

import (
	"time"

	"github.com/google/uuid"
)

// Staff represents a building manager/caretaker (encargado)
type Staff struct {
	ID        uuid.UUID `json:"id" db:"id" firestore:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" firestore:"updatedAt"`

	Name      string    `json:"name" db:"name" firestore:"name"`
	BirthDate time.Time `json:"birthDate" db:"birth_date" firestore:"birthDate"`

	// CUIL is the Argentine tax/labor identification number
	CUIL string `json:"cuil" db:"cuil" firestore:"cuil"`

	Position string `json:"position" db:"position" firestore:"position"`
	Category string `json:"category" db:"category" firestore:"category"`

	SeniorityYears int `json:"seniorityYears" db:"seniority_years" firestore:"seniorityYears"`
}

// PayrollReceipt represents a payroll receipt (recibo de sueldo) for a staff member
type PayrollReceipt struct {
	ID        uuid.UUID `json:"id" db:"id" firestore:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" firestore:"createdAt"`

	StaffID uuid.UUID `json:"staffId" db:"staff_id" firestore:"staffId"`

	Month  int     `json:"month" db:"month" firestore:"month"`
	Year   int     `json:"year" db:"year" firestore:"year"`
	Amount float64 `json:"amount" db:"amount" firestore:"amount"`

	// Details carries free-form items such as bonuses or deductions
	Details string `json:"details" db:"details" firestore:"details"`

	AttachmentURL string `json:"attachmentUrl,omitempty" db:"attachment_url" firestore:"attachmentUrl"`
}
