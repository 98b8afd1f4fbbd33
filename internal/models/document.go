package models

import (
	"time"

	"github.com/google/uuid"
)

// Document represents a shared document (regulations, meeting minutes, etc.)
type Document struct {
	ID        uuid.UUID `json:"id" db:"id" firestore:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" firestore:"createdAt"`

	Category    string    `json:"category" db:"category" firestore:"category"`
	Date        time.Time `json:"date" db:"date" firestore:"date"`
	FileURL     string    `json:"fileUrl" db:"file_url" firestore:"fileUrl"`
	Description string    `json:"description" db:"description" firestore:"description"`
}
