package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/mail"
	"github.com/consorcio-server/consorcio-server/internal/models"
)

// CreateBuildingInput holds the fields for a new building
type CreateBuildingInput struct {
	Name      string `json:"name" validate:"required"`
	Address   string `json:"address" validate:"required"`
	UnitCount int    `json:"unitCount" validate:"min=0"`
}

// UpdateBuildingInput holds a partial building update
type UpdateBuildingInput struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	UnitCount *int    `json:"unitCount"`
}

// CreateBuilding creates a building. Admin only. A notification email to the
// configured administrator address is dispatched after the record commit.
func (m *Manager) CreateBuilding(ctx context.Context, caller Caller, in CreateBuildingInput, attachments []Upload) (*models.Building, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := m.validator.Validate(in); err != nil {
		return nil, invalid(err)
	}

	urls, err := m.uploadAll(ctx, "buildings", attachments)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	b := &models.Building{
		ID:             uuid.New(),
		CreatedAt:      now,
		UpdatedAt:      now,
		Name:           in.Name,
		Address:        in.Address,
		UnitCount:      in.UnitCount,
		AttachmentURLs: urls,
	}

	if err := m.store.CreateBuilding(ctx, b); err != nil {
		return nil, wrapStore("create building", err)
	}

	if m.adminEmail != "" {
		m.dispatcher.Dispatch(ctx, mail.Message{
			To:      m.adminEmail,
			Subject: "New building registered",
			Body:    fmt.Sprintf("Building %q at %s was registered with %d units.", b.Name, b.Address, b.UnitCount),
		})
	}

	return b, nil
}

// GetBuilding fetches a building by id
func (m *Manager) GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	b, err := m.store.GetBuilding(ctx, id)
	if err != nil {
		return nil, wrapStore("get building", err)
	}
	return b, nil
}

// ListBuildings lists all buildings
func (m *Manager) ListBuildings(ctx context.Context) ([]*models.Building, error) {
	buildings, err := m.store.ListBuildings(ctx)
	if err != nil {
		return nil, wrapStore("list buildings", err)
	}
	return buildings, nil
}

// UpdateBuilding applies a partial update. Admin only. Supplied attachments
// replace the stored URLs.
func (m *Manager) UpdateBuilding(ctx context.Context, caller Caller, id uuid.UUID, in UpdateBuildingInput, attachments []Upload) (*models.Building, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}

	b, err := m.store.GetBuilding(ctx, id)
	if err != nil {
		return nil, wrapStore("get building", err)
	}

	if in.Name != nil {
		b.Name = *in.Name
	}
	if in.Address != nil {
		b.Address = *in.Address
	}
	if in.UnitCount != nil {
		if *in.UnitCount < 0 {
			return nil, Validationf("unit count must not be negative")
		}
		b.UnitCount = *in.UnitCount
	}

	if len(attachments) > 0 {
		urls, err := m.uploadAll(ctx, "buildings", attachments)
		if err != nil {
			return nil, err
		}
		b.AttachmentURLs = urls
	}

	b.UpdatedAt = time.Now()

	if err := m.store.UpdateBuilding(ctx, b); err != nil {
		return nil, wrapStore("update building", err)
	}

	return b, nil
}

// DeleteBuilding deletes a building. Admin only.
func (m *Manager) DeleteBuilding(ctx context.Context, caller Caller, id uuid.UUID) error {
	if err := m.requireAdmin(caller); err != nil {
		return err
	}
	if err := m.store.DeleteBuilding(ctx, id); err != nil {
		return wrapStore("delete building", err)
	}
	return nil
}
