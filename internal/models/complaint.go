package models

import (
	"time"

	"github.com/google/uuid"
)

// Complaint statuses. A complaint starts open and only changes through an
// explicit admin update.
const (
	ComplaintStatusOpen       = "open"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
	ComplaintStatusRejected   = "rejected"
)

// Complaint represents a complaint ticket filed by a unit owner
type Complaint struct {
	ID        uuid.UUID `json:"id" db:"id" firestore:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" firestore:"updatedAt"`

	UnitID  string `json:"unitId" db:"unit_id" firestore:"unitId"`
	Content string `json:"content" db:"content" firestore:"content"`
	Status  string `json:"status" db:"status" firestore:"status"`

	AttachmentURLs StringArray `json:"attachmentUrls" db:"attachment_urls" firestore:"attachmentUrls"`

	Reply     string     `json:"reply,omitempty" db:"reply" firestore:"reply"`
	RepliedAt *time.Time `json:"repliedAt,omitempty" db:"replied_at" firestore:"repliedAt"`
}
