package manager

import (
	"context"
	"time"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// FinanceConfigInput holds per-consortium financial settings
type FinanceConfigInput struct {
	ConsortiumID       string  `json:"consortiumId" validate:"required"`
	InterestRatePerDay float64 `json:"interestRatePerDay" validate:"min=0"`
	GracePeriodDays    int     `json:"gracePeriodDays" validate:"min=0"`
}

// GetFinanceConfig fetches the financial configuration of one consortium
func (m *Manager) GetFinanceConfig(ctx context.Context, consortiumID string) (*models.FinanceConfig, error) {
	cfg, err := m.store.GetFinanceConfig(ctx, consortiumID)
	if err != nil {
		return nil, wrapStore("get finance config", err)
	}
	return cfg, nil
}

// UpsertFinanceConfig creates or replaces the consortium's financial
// configuration. Admin only.
func (m *Manager) UpsertFinanceConfig(ctx context.Context, caller Caller, in FinanceConfigInput) (*models.FinanceConfig, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := m.validator.Validate(in); err != nil {
		return nil, invalid(err)
	}

	cfg := &models.FinanceConfig{
		ConsortiumID:       in.ConsortiumID,
		UpdatedAt:          time.Now(),
		InterestRatePerDay: in.InterestRatePerDay,
		GracePeriodDays:    in.GracePeriodDays,
	}

	if err := m.store.UpsertFinanceConfig(ctx, cfg); err != nil {
		return nil, wrapStore("upsert finance config", err)
	}

	return cfg, nil
}

// UpdateFinanceConfig replaces an existing configuration, failing when none
// exists. Admin only.
func (m *Manager) UpdateFinanceConfig(ctx context.Context, caller Caller, in FinanceConfigInput) (*models.FinanceConfig, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := m.validator.Validate(in); err != nil {
		return nil, invalid(err)
	}

	cfg := &models.FinanceConfig{
		ConsortiumID:       in.ConsortiumID,
		UpdatedAt:          time.Now(),
		InterestRatePerDay: in.InterestRatePerDay,
		GracePeriodDays:    in.GracePeriodDays,
	}

	if err := m.store.UpdateFinanceConfig(ctx, cfg); err != nil {
		return nil, wrapStore("update finance config", err)
	}

	return cfg, nil
}

// DeleteFinanceConfig removes the consortium's configuration, failing when
// none exists. Admin only. Billing falls back to the defaults afterwards.
func (m *Manager) DeleteFinanceConfig(ctx context.Context, caller Caller, consortiumID string) error {
	if err := m.requireAdmin(caller); err != nil {
		return err
	}
	if err := m.store.DeleteFinanceConfig(ctx, consortiumID); err != nil {
		return wrapStore("delete finance config", err)
	}
	return nil
}
