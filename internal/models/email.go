package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailLog is an append-only audit entry for a sent email
type EmailLog struct {
	ID uuid.UUID `json:"id" db:"id" firestore:"id"`

	Recipient string    `json:"recipient" db:"recipient" firestore:"recipient"`
	Subject   string    `json:"subject" db:"subject" firestore:"subject"`
	SentAt    time.Time `json:"sentAt" db:"sent_at" firestore:"sentAt"`
}
