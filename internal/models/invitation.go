package models

import (
	"time"

	"github.com/google/uuid"
)

// Invitation represents an invitation to join a consortium. The join token
// is a signed, short-lived credential bound to the recipient email; deleting
// the invitation record does not revoke an already-issued token.
type Invitation struct {
	ID        uuid.UUID `json:"id" db:"id" firestore:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" firestore:"createdAt"`

	RecipientEmail string `json:"recipientEmail" db:"recipient_email" firestore:"recipientEmail"`
	Subject        string `json:"subject" db:"subject" firestore:"subject"`
	Message        string `json:"message" db:"message" firestore:"message"`

	AttachmentURLs StringArray `json:"attachmentUrls" db:"attachment_urls" firestore:"attachmentUrls"`

	JoinToken string    `json:"joinToken" db:"join_token" firestore:"joinToken"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at" firestore:"expiresAt"`
}
