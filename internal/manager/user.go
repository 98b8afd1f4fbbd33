package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/mail"
	"github.com/consorcio-server/consorcio-server/internal/models"
	"github.com/consorcio-server/consorcio-server/pkg/crypto"
)

// CreateUserInput holds the fields for a new user account
type CreateUserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	IsAdmin  bool   `json:"isAdmin"`
	UnitID   string `json:"unitId"`
}

// UpdateUserInput holds a partial user update
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"isAdmin"`
	UnitID   *string `json:"unitId"`
}

// CreateUser creates a user account. Admin only. A welcome notification is
// dispatched to the new account's address after the record commit.
func (m *Manager) CreateUser(ctx context.Context, caller Caller, in CreateUserInput, avatar *Upload) (*models.User, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := m.validator.Validate(in); err != nil {
		return nil, invalid(err)
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, Transportf("hash password: %v", err)
	}

	url, err := m.uploadOne(ctx, "users", avatar)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &models.User{
		ID:            uuid.New(),
		CreatedAt:     now,
		UpdatedAt:     now,
		Name:          in.Name,
		Email:         in.Email,
		PasswordHash:  hash,
		IsAdmin:       in.IsAdmin,
		UnitID:        in.UnitID,
		AttachmentURL: url,
	}

	if err := m.store.CreateUser(ctx, u); err != nil {
		return nil, wrapStore("create user", err)
	}

	m.dispatcher.Dispatch(ctx, mail.Message{
		To:      u.Email,
		Subject: "Your account was created",
		Body:    fmt.Sprintf("Hello %s,\n\nan account was created for you with this email address.", u.Name),
	})

	return u, nil
}

// GetUser fetches a user by id
func (m *Manager) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := m.store.GetUser(ctx, id)
	if err != nil {
		return nil, wrapStore("get user", err)
	}
	return u, nil
}

// ListUsers lists all users
func (m *Manager) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := m.store.ListUsers(ctx)
	if err != nil {
		return nil, wrapStore("list users", err)
	}
	return users, nil
}

// UpdateUser applies a partial update. Admin only. A change notification is
// dispatched to the account's address after the record commit.
func (m *Manager) UpdateUser(ctx context.Context, caller Caller, id uuid.UUID, in UpdateUserInput, avatar *Upload) (*models.User, error) {
	if err := m.requireAdmin(caller); err != nil {
		return nil, err
	}

	u, err := m.store.GetUser(ctx, id)
	if err != nil {
		return nil, wrapStore("get user", err)
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, Validationf("name must not be empty")
		}
		u.Name = *in.Name
	}
	if in.Email != nil {
		if !mail.ValidRecipient(*in.Email) {
			return nil, Validationf("invalid email address: %q", *in.Email)
		}
		u.Email = *in.Email
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, Validationf("password must be at least 8 characters")
		}
		hash, err := crypto.HashPassword(*in.Password)
		if err != nil {
			return nil, Transportf("hash password: %v", err)
		}
		u.PasswordHash = hash
	}
	if in.IsAdmin != nil {
		u.IsAdmin = *in.IsAdmin
	}
	if in.UnitID != nil {
		u.UnitID = *in.UnitID
	}

	if avatar != nil {
		url, err := m.uploadOne(ctx, "users", avatar)
		if err != nil {
			return nil, err
		}
		u.AttachmentURL = url
	}

	u.UpdatedAt = time.Now()

	if err := m.store.UpdateUser(ctx, u); err != nil {
		return nil, wrapStore("update user", err)
	}

	m.dispatcher.Dispatch(ctx, mail.Message{
		To:      u.Email,
		Subject: "Your account was updated",
		Body:    fmt.Sprintf("Hello %s,\n\nyour account details were updated.", u.Name),
	})

	return u, nil
}

// DeleteUser deletes a user account. Admin only.
func (m *Manager) DeleteUser(ctx context.Context, caller Caller, id uuid.UUID) error {
	if err := m.requireAdmin(caller); err != nil {
		return err
	}
	if err := m.store.DeleteUser(ctx, id); err != nil {
		return wrapStore("delete user", err)
	}
	return nil
}

// Login verifies credentials and issues an access token. Unknown addresses
// and wrong passwords are indistinguishable to the caller.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", Unauthorizedf("invalid credentials")
	}

	if !crypto.VerifyPassword(password, u.PasswordHash) {
		return nil, "", Unauthorizedf("invalid credentials")
	}

	token, err := m.tokens.GenerateToken(u)
	if err != nil {
		return nil, "", Transportf("generate token: %v", err)
	}

	return u, token, nil
}
