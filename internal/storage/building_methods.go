package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// CreateBuilding creates a new building
func (s *PostgresStore) CreateBuilding(ctx context.Context, b *models.Building) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	query := `
		INSERT INTO buildings (id, created_at, updated_at, name, address, unit_count, attachment_urls)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		b.ID, b.CreatedAt, b.UpdatedAt, b.Name, b.Address, b.UnitCount, b.AttachmentURLs,
	)

	return mapError(err)
}

// GetBuilding gets a building by ID
func (s *PostgresStore) GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	query := `
		SELECT id, created_at, updated_at, name, address, unit_count, attachment_urls
		FROM buildings
		WHERE id = $1`

	b := &models.Building{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.Name, &b.Address, &b.UnitCount, &b.AttachmentURLs,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return b, nil
}

// UpdateBuilding updates a building
func (s *PostgresStore) UpdateBuilding(ctx context.Context, b *models.Building) error {
	b.UpdatedAt = time.Now()

	query := `
		UPDATE buildings SET
			updated_at = $2, name = $3, address = $4, unit_count = $5, attachment_urls = $6
		WHERE id = $1`

	return checkAffected(s.db.ExecContext(ctx, query,
		b.ID, b.UpdatedAt, b.Name, b.Address, b.UnitCount, b.AttachmentURLs,
	))
}

// DeleteBuilding deletes a building
func (s *PostgresStore) DeleteBuilding(ctx context.Context, id uuid.UUID) error {
	return checkAffected(s.db.ExecContext(ctx, `DELETE FROM buildings WHERE id = $1`, id))
}

// ListBuildings lists all buildings
func (s *PostgresStore) ListBuildings(ctx context.Context) ([]*models.Building, error) {
	query := `
		SELECT id, created_at, updated_at, name, address, unit_count, attachment_urls
		FROM buildings
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var buildings []*models.Building
	for rows.Next() {
		b := &models.Building{}
		if err := rows.Scan(
			&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.Name, &b.Address, &b.UnitCount, &b.AttachmentURLs,
		); err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}

	return buildings, rows.Err()
}
