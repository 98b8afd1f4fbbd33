package storage

import (
	"context"
	"time"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// GetFinanceConfig gets the financial configuration for a consortium
func (s *PostgresStore) GetFinanceConfig(ctx context.Context, consortiumID string) (*models.FinanceConfig, error) {
	query := `
		SELECT consortium_id, updated_at, interest_rate_per_day, grace_period_days
		FROM finance_configs
		WHERE consortium_id = $1`

	cfg := &models.FinanceConfig{}
	err := s.db.QueryRowContext(ctx, query, consortiumID).Scan(
		&cfg.ConsortiumID, &cfg.UpdatedAt, &cfg.InterestRatePerDay, &cfg.GracePeriodDays,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return cfg, nil
}

// UpsertFinanceConfig creates or replaces the financial configuration
func (s *PostgresStore) UpsertFinanceConfig(ctx context.Context, cfg *models.FinanceConfig) error {
	cfg.UpdatedAt = time.Now()

	query := `
		INSERT INTO finance_configs (consortium_id, updated_at, interest_rate_per_day, grace_period_days)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (consortium_id) DO UPDATE SET
			updated_at = EXCLUDED.updated_at,
			interest_rate_per_day = EXCLUDED.interest_rate_per_day,
			grace_period_days = EXCLUDED.grace_period_days`

	_, err := s.db.ExecContext(ctx, query,
		cfg.ConsortiumID, cfg.UpdatedAt, cfg.InterestRatePerDay, cfg.GracePeriodDays,
	)

	return mapError(err)
}

// UpdateFinanceConfig updates an existing financial configuration
func (s *PostgresStore) UpdateFinanceConfig(ctx context.Context, cfg *models.FinanceConfig) error {
	cfg.UpdatedAt = time.Now()

	query := `
		UPDATE finance_configs SET
			updated_at = $2, interest_rate_per_day = $3, grace_period_days = $4
		WHERE consortium_id = $1`

	return checkAffected(s.db.ExecContext(ctx, query,
		cfg.ConsortiumID, cfg.UpdatedAt, cfg.InterestRatePerDay, cfg.GracePeriodDays,
	))
}

// DeleteFinanceConfig deletes the financial configuration for a consortium
func (s *PostgresStore) DeleteFinanceConfig(ctx context.Context, consortiumID string) error {
	return checkAffected(s.db.ExecContext(ctx,
		`DELETE FROM finance_configs WHERE consortium_id = $1`, consortiumID))
}
