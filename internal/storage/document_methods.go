package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// CreateDocument creates a new document
func (s *PostgresStore) CreateDocument(ctx context.Context, d *models.Document) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = time.Now()

	query := `
		INSERT INTO documents (id, created_at, category, date, file_url, description)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		d.ID, d.CreatedAt, d.Category, d.Date, d.FileURL, d.Description,
	)

	return mapError(err)
}

// GetDocument gets a document by ID
func (s *PostgresStore) GetDocument(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := `
		SELECT id, created_at, category, date, file_url, description
		FROM documents
		WHERE id = $1`

	d := &models.Document{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.CreatedAt, &d.Category, &d.Date, &d.FileURL, &d.Description,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return d, nil
}

// DeleteDocument deletes a document
func (s *PostgresStore) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return checkAffected(s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id))
}

// ListDocuments lists all documents
func (s *PostgresStore) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	query := `
		SELECT id, created_at, category, date, file_url, description
		FROM documents
		ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var documents []*models.Document
	for rows.Next() {
		d := &models.Document{}
		if err := rows.Scan(
			&d.ID, &d.CreatedAt, &d.Category, &d.Date, &d.FileURL, &d.Description,
		); err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}

	return documents, rows.Err()
}
