package models

import (
	"time"

	"github.com/google/uuid"
)

// Building represents a managed building/condominium
type Building struct {
	ID        uuid.UUID `json:"id" db:"id" firestore:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" firestore:"updatedAt"`

	Name      string `json:"name" db:"name" firestore:"name"`
	Address   string `json:"address" db:"address" firestore:"address"`
	UnitCount int    `json:"unitCount" db:"unit_count" firestore:"unitCount"`

	AttachmentURLs StringArray `json:"attachmentUrls" db:"attachment_urls" firestore:"attachmentUrls"`
}
