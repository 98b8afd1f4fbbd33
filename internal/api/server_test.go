package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consorcio-server/consorcio-server/internal/auth"
	"github.com/consorcio-server/consorcio-server/internal/config"
	"github.com/consorcio-server/consorcio-server/internal/mail"
	"github.com/consorcio-server/consorcio-server/internal/manager"
	"github.com/consorcio-server/consorcio-server/internal/models"
	"github.com/consorcio-server/consorcio-server/internal/storage"
	"github.com/consorcio-server/consorcio-server/pkg/crypto"
)

type fakeFiles struct{}

func (fakeFiles) Save(ctx context.Context, folder, name string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://files.test/%s/%s", folder, name), nil
}

type nopMailer struct{}

func (nopMailer) Send(ctx context.Context, msg mail.Message) error { return nil }
func (nopMailer) Dispatch(ctx context.Context, msg mail.Message)   {}

type testServer struct {
	srv    *RESTServer
	store  *storage.MemoryStore
	tokens *auth.JWTManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{
		Secret:         "api-test-secret",
		AccessTokenTTL: time.Hour,
		InviteTokenTTL: time.Hour,
	}
	cfg.Uploads.Driver = "firebase"

	store := storage.NewMemoryStore()
	tokens := auth.NewJWTManager(&cfg.JWT)
	mailer := nopMailer{}
	mgr := manager.New(store, fakeFiles{}, mailer, mailer, tokens, "")

	return &testServer{
		srv:    NewRESTServer(cfg, mgr, tokens),
		store:  store,
		tokens: tokens,
	}
}

// seedUser creates a user record directly in the store and returns a
// bearer token for it
func (ts *testServer) seedUser(t *testing.T, email string, isAdmin bool) (*models.User, string) {
	t.Helper()

	hash, err := crypto.HashPassword("seed-password")
	require.NoError(t, err)

	u := &models.User{
		Name:         "Seed",
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	require.NoError(t, ts.store.CreateUser(context.Background(), u))

	token, err := ts.tokens.GenerateToken(u)
	require.NoError(t, err)
	return u, token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, "healthy", body["status"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/buildings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/buildings", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/buildings", nil)
	req.Header.Set("Authorization", "NotBearer xyz")
	rec2 := httptest.NewRecorder()
	ts.srv.Router().ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)
}

func TestLoginFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "admin@example.com", true)

	rec := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "seed-password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		AccessToken string      `json:"access_token"`
		TokenType   string      `json:"token_type"`
		ExpiresIn   int         `json:"expires_in"`
		User        models.User `json:"user"`
	}
	decodeBody(t, rec, &body)
	assert.NotEmpty(t, body.AccessToken)
	assert.Equal(t, "Bearer", body.TokenType)
	assert.Equal(t, 3600, body.ExpiresIn)
	assert.Equal(t, "admin@example.com", body.User.Email)

	// the issued token is accepted on protected routes
	rec = ts.do(t, http.MethodGet, "/api/v1/users/me", body.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "admin@example.com", true)

	rec := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "seed-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBuildingCRUDOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.seedUser(t, "admin@example.com", true)

	// create
	rec := ts.do(t, http.MethodPost, "/api/v1/buildings", adminToken, map[string]interface{}{
		"name":      "Torre Norte",
		"address":   "Av. Siempreviva 123",
		"unitCount": 20,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Building
	decodeBody(t, rec, &created)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Torre Norte", created.Name)

	// get
	rec = ts.do(t, http.MethodGet, "/api/v1/buildings/"+created.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// update
	rec = ts.do(t, http.MethodPut, "/api/v1/buildings/"+created.ID.String(), adminToken, map[string]interface{}{
		"name": "Torre Norte II",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Building
	decodeBody(t, rec, &updated)
	assert.Equal(t, "Torre Norte II", updated.Name)
	assert.Equal(t, 20, updated.UnitCount)

	// list
	rec = ts.do(t, http.MethodGet, "/api/v1/buildings", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Building
	decodeBody(t, rec, &list)
	assert.Len(t, list, 1)

	// delete
	rec = ts.do(t, http.MethodDelete, "/api/v1/buildings/"+created.ID.String(), adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/buildings/"+created.ID.String(), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNonAdminMutationForbidden(t *testing.T) {
	ts := newTestServer(t)
	_, ownerToken := ts.seedUser(t, "owner@example.com", false)

	rec := ts.do(t, http.MethodPost, "/api/v1/buildings", ownerToken, map[string]interface{}{
		"name":    "Torre",
		"address": "Calle 1",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// reads stay open to authenticated users
	rec = ts.do(t, http.MethodGet, "/api/v1/buildings", ownerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInvalidIDAndValidation(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.seedUser(t, "admin@example.com", true)

	rec := ts.do(t, http.MethodGet, "/api/v1/buildings/not-a-uuid", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// missing required fields
	rec = ts.do(t, http.MethodPost, "/api/v1/buildings", adminToken, map[string]interface{}{
		"address": "sin nombre",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown id on a well-formed uuid
	rec = ts.do(t, http.MethodDelete, "/api/v1/buildings/"+uuid.NewString(), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateBuildingMultipart(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.seedUser(t, "admin@example.com", true)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Torre Multipart"))
	require.NoError(t, mw.WriteField("address", "Av. Corrientes 1000"))
	require.NoError(t, mw.WriteField("unitCount", "8"))
	fw, err := mw.CreateFormFile("files", "plano.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("pdf-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/buildings", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	ts.srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Building
	decodeBody(t, rec, &created)
	assert.Equal(t, "Torre Multipart", created.Name)
	assert.Equal(t, 8, created.UnitCount)
	require.Len(t, created.AttachmentURLs, 1)
	assert.True(t, strings.HasPrefix(created.AttachmentURLs[0], "https://files.test/buildings/"))
}

func TestExpenseSendEndpoint(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.seedUser(t, "admin@example.com", true)

	// due date in the future, so no interest accrues on the open bill
	dueDate := time.Now().AddDate(0, 1, 0).Format(time.RFC3339)
	rec := ts.do(t, http.MethodPost, "/api/v1/expenses", adminToken, map[string]interface{}{
		"consortiumId": "consorcio-1",
		"month":        3,
		"year":         2024,
		"baseAmount":   1000,
		"dueDate":      dueDate,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Expense
	decodeBody(t, rec, &created)
	assert.False(t, created.Sent)
	assert.InDelta(t, created.BaseAmount, created.ComputedAmount, 1e-9)

	rec = ts.do(t, http.MethodPost, "/api/v1/expenses/"+created.ID.String()+"/send", adminToken, map[string]string{
		"to": "owner@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var sent models.Expense
	decodeBody(t, rec, &sent)
	assert.True(t, sent.Sent)
}

func TestFinanceConfigEndpoints(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.seedUser(t, "admin@example.com", true)

	rec := ts.do(t, http.MethodGet, "/api/v1/finance/consorcio-1", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/finance", adminToken, map[string]interface{}{
		"consortiumId":       "consorcio-1",
		"interestRatePerDay": 0.005,
		"gracePeriodDays":    5,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/finance/consorcio-1", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cfg models.FinanceConfig
	decodeBody(t, rec, &cfg)
	assert.Equal(t, 0.005, cfg.InterestRatePerDay)
	assert.Equal(t, 5, cfg.GracePeriodDays)

	rec = ts.do(t, http.MethodPut, "/api/v1/finance/consorcio-1", adminToken, map[string]interface{}{
		"interestRatePerDay": 0.01,
		"gracePeriodDays":    0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/v1/finance/consorcio-1", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/v1/finance/consorcio-1", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComplaintEndpointsForOwners(t *testing.T) {
	ts := newTestServer(t)
	_, ownerToken := ts.seedUser(t, "owner@example.com", false)
	_, adminToken := ts.seedUser(t, "admin@example.com", true)

	rec := ts.do(t, http.MethodPost, "/api/v1/complaints", ownerToken, map[string]interface{}{
		"unitId":  "3C",
		"content": "Gotera en el pasillo",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Complaint
	decodeBody(t, rec, &created)
	assert.Equal(t, models.ComplaintStatusOpen, created.Status)

	// owners cannot reply
	rec = ts.do(t, http.MethodPut, "/api/v1/complaints/"+created.ID.String(), ownerToken, map[string]interface{}{
		"reply": "no corresponde",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/v1/complaints/"+created.ID.String(), adminToken, map[string]interface{}{
		"status": models.ComplaintStatusInProgress,
		"reply":  "Lo vemos esta semana",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Complaint
	decodeBody(t, rec, &updated)
	assert.Equal(t, models.ComplaintStatusInProgress, updated.Status)
	assert.NotNil(t, updated.RepliedAt)
}
