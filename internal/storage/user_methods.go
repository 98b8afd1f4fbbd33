package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// CreateUser creates a new user
func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	query := `
		INSERT INTO users (
			id, created_at, updated_at, name, email, password_hash,
			is_admin, unit_id, attachment_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		u.ID, u.CreatedAt, u.UpdatedAt, u.Name, u.Email, u.PasswordHash,
		u.IsAdmin, u.UnitID, u.AttachmentURL,
	)

	return mapError(err)
}

// GetUser gets a user by ID
func (s *PostgresStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, created_at, updated_at, name, email, password_hash,
		       is_admin, unit_id, attachment_url
		FROM users
		WHERE id = $1`

	u := &models.User{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Name, &u.Email, &u.PasswordHash,
		&u.IsAdmin, &u.UnitID, &u.AttachmentURL,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return u, nil
}

// GetUserByEmail gets a user by email
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, created_at, updated_at, name, email, password_hash,
		       is_admin, unit_id, attachment_url
		FROM users
		WHERE email = $1`

	u := &models.User{}
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Name, &u.Email, &u.PasswordHash,
		&u.IsAdmin, &u.UnitID, &u.AttachmentURL,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return u, nil
}

// UpdateUser updates a user
func (s *PostgresStore) UpdateUser(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now()

	query := `
		UPDATE users SET
			updated_at = $2, name = $3, email = $4, password_hash = $5,
			is_admin = $6, unit_id = $7, attachment_url = $8
		WHERE id = $1`

	return checkAffected(s.db.ExecContext(ctx, query,
		u.ID, u.UpdatedAt, u.Name, u.Email, u.PasswordHash,
		u.IsAdmin, u.UnitID, u.AttachmentURL,
	))
}

// DeleteUser deletes a user
func (s *PostgresStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return checkAffected(s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id))
}

// ListUsers lists all users
func (s *PostgresStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, created_at, updated_at, name, email, password_hash,
		       is_admin, unit_id, attachment_url
		FROM users
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(
			&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Name, &u.Email, &u.PasswordHash,
			&u.IsAdmin, &u.UnitID, &u.AttachmentURL,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
