package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consorcio-server/consorcio-server/internal/config"
	"github.com/consorcio-server/consorcio-server/internal/models"
)

func newTestJWTManager() *JWTManager {
	return NewJWTManager(&config.JWTConfig{
		Secret:         "unit-test-secret",
		AccessTokenTTL: time.Hour,
		InviteTokenTTL: 30 * time.Minute,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestJWTManager()

	user := &models.User{
		ID:      uuid.New(),
		Email:   "admin@example.com",
		IsAdmin: true,
	}

	token, err := m.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := newTestJWTManager()

	token, err := m.GenerateToken(&models.User{ID: uuid.New(), Email: "a@b.com"})
	require.NoError(t, err)

	other := NewJWTManager(&config.JWTConfig{Secret: "different-secret", AccessTokenTTL: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	m := newTestJWTManager()

	_, err := m.ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = m.ValidateToken("")
	assert.Error(t, err)
}

func TestInviteTokenRoundTrip(t *testing.T) {
	m := newTestJWTManager()

	token, expiresAt, err := m.GenerateInviteToken("invitee@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, time.Minute)

	claims, err := m.ValidateInviteToken(token)
	require.NoError(t, err)
	assert.Equal(t, "invitee@example.com", claims.Email)
	assert.Equal(t, "invitee@example.com", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestInviteTokensAreUnique(t *testing.T) {
	m := newTestJWTManager()

	a, _, err := m.GenerateInviteToken("x@example.com")
	require.NoError(t, err)
	b, _, err := m.GenerateInviteToken("x@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestInviteTokenIsNotAnAccessToken(t *testing.T) {
	m := newTestJWTManager()

	token, _, err := m.GenerateInviteToken("invitee@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	if err == nil {
		// same signing key, so the parse may succeed, but it must not
		// carry a usable identity
		assert.Equal(t, uuid.Nil, claims.UserID)
		assert.False(t, claims.IsAdmin)
	}
}
