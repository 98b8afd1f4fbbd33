// Package manager implements the application façades over the document
// store, blob store and mail transport.
package manager

import (
	"bytes"
	"context"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/auth"
	"github.com/consorcio-server/consorcio-server/internal/filestore"
	"github.com/consorcio-server/consorcio-server/internal/mail"
	"github.com/consorcio-server/consorcio-server/internal/models"
	"github.com/consorcio-server/consorcio-server/internal/storage"
	"github.com/consorcio-server/consorcio-server/internal/validation"
)

// Caller identifies the authenticated request principal
type Caller struct {
	ID      uuid.UUID
	Email   string
	IsAdmin bool
}

// Upload is a file received with a request, to be persisted in the blob store
type Upload struct {
	Filename string
	Content  []byte
}

// Manager exposes the application operations. All dependencies are injected;
// there is no package-level state.
type Manager struct {
	store      storage.Store
	files      filestore.Store
	sender     mail.Sender
	dispatcher mail.Dispatcher
	tokens     *auth.JWTManager
	validator  *validation.Validator
	adminEmail string
}

// New creates a manager
func New(store storage.Store, files filestore.Store, sender mail.Sender, dispatcher mail.Dispatcher, tokens *auth.JWTManager, adminEmail string) *Manager {
	return &Manager{
		store:      store,
		files:      files,
		sender:     sender,
		dispatcher: dispatcher,
		tokens:     tokens,
		validator:  validation.NewValidator(),
		adminEmail: adminEmail,
	}
}

// requireAdmin gates mutating operations to administrators. It runs before
// any store call so a rejected request never mutates anything.
func (m *Manager) requireAdmin(caller Caller) error {
	if !caller.IsAdmin {
		return Unauthorizedf("administrator privileges required")
	}
	return nil
}

// uploadAll persists the uploads under folder and returns their URLs
func (m *Manager) uploadAll(ctx context.Context, folder string, uploads []Upload) (models.StringArray, error) {
	urls := make(models.StringArray, 0, len(uploads))
	for _, u := range uploads {
		url, err := m.files.Save(ctx, folder, u.Filename, bytes.NewReader(u.Content))
		if err != nil {
			return nil, Transportf("upload %s: %v", u.Filename, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// uploadOne persists a single upload and returns its URL; empty when u is nil
func (m *Manager) uploadOne(ctx context.Context, folder string, u *Upload) (string, error) {
	if u == nil {
		return "", nil
	}
	url, err := m.files.Save(ctx, folder, u.Filename, bytes.NewReader(u.Content))
	if err != nil {
		return "", Transportf("upload %s: %v", u.Filename, err)
	}
	return url, nil
}
