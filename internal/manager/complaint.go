package manager

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// CreateComplaintInput holds the fields for a new complaint
type CreateComplaintInput struct {
	UnitID  string `json:"unitId" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UpdateComplaintInput holds an admin complaint update. Setting Reply
// records the reply time; setting Status moves the ticket explicitly.
type UpdateComplaintInput struct {
	Status *string `json:"status"`
	Reply  *string `json:"reply"`
}

func validComplaintStatus(s string) bool {
	switch s {
	case models.ComplaintStatusOpen, models.ComplaintStatusInProgress,
		models.ComplaintStatusResolved, models.ComplaintStatusRejected:
		return true
	}
	return false
}

// CreateComplaint files a complaint for the caller's unit. Any authenticated
// caller may file one; the ticket always starts open.
func (m *Manager) CreateComplaint(ctx context.Context, caller Caller, in CreateComplaintInput, attachments []Upload) (*models.Complaint, error) {
	if err := m.validator.Validate(in); err != nil {
		return nil, invalid(err)
	}

	urls, err := m.uploadAll(ctx, "complaints", attachments)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	c := &models.Complaint{
		ID:             uuid.New(),
		CreatedAt:      now,
		UpdatedAt:      now,
		UnitID:         in.UnitID,
		Content:        in.Content,
		Status:         models.ComplaintStatusOpen,
		AttachmentURLs: urls,
	}

	if err := m.store.CreateComplaint(ctx, c); err != nil {
		return nil, wrapStore("create complaint", err)
	}

	return c, nil
}

// GetComplaint fetches a complaint by id
func (m *Manager) GetComplaint(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	c, err := m.store.GetComplaint(ctx, id)
	if err != nil {
		return nil, wrapStore("get complaint", err)
	}
	return c, nil
}

// ListComplaints lists all complaints
func (m *Manager) ListComplaints(ctx context.Context) ([]*models.Complaint, error) {
	complaints, err := m.store.ListComplaints(ctx)
	if err != nil {
		return nil, wrapStore("list complaints", err)
	}
	return complaints, nil
}

// UpdateComplaint applies an admin reply or status transition. Status never
// changes except through this call.
func (m *Manager) UpdateComplaint(ctx context.Context, caller Caller, id uuid.UUID, in UpdateComplaintInput) (*models.Complaint, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}

	c, err := m.store.GetComplaint(ctx, id)
	if err != nil {
		return nil, wrapStore("get complaint", err)
	}

	if in.Status != nil {
		if !validComplaintStatus(*in.Status) {
			return nil, Validationf("invalid complaint status: %q", *in.Status)
		}
		c.Status = *in.Status
	}
	if in.Reply != nil {
		now := time.Now()
		c.Reply = *in.Reply
		c.RepliedAt = &now
	}

	c.UpdatedAt = time.Now()

	if err := m.store.UpdateComplaint(ctx, c); err != nil {
		return nil, wrapStore("update complaint", err)
	}

	return c, nil
}

// DeleteComplaint deletes a complaint. Admin only.
func (m *Manager) DeleteComplaint(ctx context.Context, caller Caller, id uuid.UUID) error {
	if err := m.requireAdmin(caller); err != nil {
		return err
	}
	if err := m.store.DeleteComplaint(ctx, id); err != nil {
		return wrapStore("delete complaint", err)
	}
	return nil
}
