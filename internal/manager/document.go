package manager

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// CreateDocumentInput holds the fields for a new shared document
type CreateDocumentInput struct {
	Category    string    `json:"category" validate:"required"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// CreateDocument uploads a shared document (regulations, meeting minutes).
// Admin only. Exactly one file is required.
func (m *Manager) CreateDocument(ctx context.Context, caller Caller, in CreateDocumentInput, file *Upload) (*models.Document, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := m.validator.Validate(in); err != nil {
		return nil, invalid(err)
	}
	if file == nil {
		return nil, Validationf("document file is required")
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	url, err := m.uploadOne(ctx, "documents", file)
	if err != nil {
		return nil, err
	}

	d := &models.Document{
		ID:          uuid.New(),
		CreatedAt:   time.Now(),
		Category:    in.Category,
		Date:        in.Date,
		FileURL:     url,
		Description: in.Description,
	}

	if err := m.store.CreateDocument(ctx, d); err != nil {
		return nil, wrapStore("create document", err)
	}

	return d, nil
}

// GetDocument fetches a document by id
func (m *Manager) GetDocument(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	d, err := m.store.GetDocument(ctx, id)
	if err != nil {
		return nil, wrapStore("get document", err)
	}
	return d, nil
}

// ListDocuments lists all shared documents
func (m *Manager) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	documents, err := m.store.ListDocuments(ctx)
	if err != nil {
		return nil, wrapStore("list documents", err)
	}
	return documents, nil
}

// DeleteDocument deletes a document record. Admin only. The stored blob is
// not removed.
func (m *Manager) DeleteDocument(ctx context.Context, caller Caller, id uuid.UUID) error {
	if err := m.requireAdmin(caller); err != nil {
		return err
	}
	if err := m.store.DeleteDocument(ctx, id); err != nil {
		return wrapStore("delete document", err)
	}
	return nil
}
