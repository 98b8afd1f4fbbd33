package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a system user (unit owner or administrator)
type User struct {
	ID        uuid.UUID `json:"id" db:"id" firestore:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" firestore:"updatedAt"`

	Name  string `json:"name" db:"name" firestore:"name"`
	Email string `json:"email" db:"email" firestore:"email"`

	PasswordHash string `json:"-" db:"password_hash" firestore:"passwordHash"`

	IsAdmin bool `json:"isAdmin" db:"is_admin" firestore:"isAdmin"`

	// UnitID links the user to their functional unit, empty for admins
	UnitID string `json:"unitId,omitempty" db:"unit_id" firestore:"unitId"`

	AttachmentURL string `json:"attachmentUrl,omitempty" db:"attachment_url" firestore:"attachmentUrl"`
}
