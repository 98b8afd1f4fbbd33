package manager

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consorcio-server/consorcio-server/internal/auth"
	"github.com/consorcio-server/consorcio-server/internal/config"
	"github.com/consorcio-server/consorcio-server/internal/mail"
	"github.com/consorcio-server/consorcio-server/internal/storage"
)

// fakeFiles records saved uploads and returns deterministic URLs
type fakeFiles struct {
	saved []string
}

func (f *fakeFiles) Save(ctx context.Context, folder, name string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	url := fmt.Sprintf("https://files.test/%s/%s", folder, name)
	f.saved = append(f.saved, url)
	return url, nil
}

// recorderMailer implements Sender and Dispatcher, recording every message
type recorderMailer struct {
	mu       sync.Mutex
	messages []mail.Message
	sendErr  error
}

func (m *recorderMailer) Send(ctx context.Context, msg mail.Message) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *recorderMailer) Dispatch(ctx context.Context, msg mail.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *recorderMailer) all() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mail.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

func newTestManager(t *testing.T) (*Manager, *storage.MemoryStore, *recorderMailer, *fakeFiles) {
	t.Helper()
	store := storage.NewMemoryStore()
	files := &fakeFiles{}
	mailer := &recorderMailer{}
	tokens := auth.NewJWTManager(&config.JWTConfig{
		Secret:         "test-secret",
		AccessTokenTTL: time.Hour,
		InviteTokenTTL: time.Hour,
	})
	mgr := New(store, files, mailer, mailer, tokens, "admin@example.com")
	return mgr, store, mailer, files
}

var (
	admin = Caller{ID: uuid.New(), Email: "admin@example.com", IsAdmin: true}
	owner = Caller{ID: uuid.New(), Email: "owner@example.com", IsAdmin: false}
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// ========== Authorization ==========

func TestAdminGateFailsClosed(t *testing.T) {
	mgr, store, _, _ := newTestManager(t)
	ctx := context.Background()

	_, err := mgr.CreateBuilding(ctx, owner, CreateBuildingInput{Name: "Torre Norte", Address: "Av. Siempreviva 123"}, nil)
	require.Error(t, err)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	// no document was written
	buildings, err := store.ListBuildings(ctx)
	require.NoError(t, err)
	assert.Empty(t, buildings)
}

func TestAdminGateOnDelete(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	b, err := mgr.CreateBuilding(ctx, admin, CreateBuildingInput{Name: "Torre Sur", Address: "Calle Falsa 456"}, nil)
	require.NoError(t, err)

	err = mgr.DeleteBuilding(ctx, owner, b.ID)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	// still there
	got, err := mgr.GetBuilding(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

// ========== Not found ==========

func TestMissingIDYieldsNotFound(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()
	id := uuid.New()

	_, err := mgr.GetBuilding(ctx, id)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = mgr.UpdateBuilding(ctx, admin, id, UpdateBuildingInput{}, nil)
	assert.Equal(t, KindNotFound, KindOf(err))

	err = mgr.DeleteBuilding(ctx, admin, id)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = mgr.GetExpense(ctx, id)
	assert.Equal(t, KindNotFound, KindOf(err))

	err = mgr.DeleteFinanceConfig(ctx, admin, "no-such-consortium")
	assert.Equal(t, KindNotFound, KindOf(err))
}

// ========== Buildings ==========

func TestCreateBuildingRoundTrip(t *testing.T) {
	mgr, _, mailer, files := newTestManager(t)
	ctx := context.Background()

	in := CreateBuildingInput{Name: "Edificio Central", Address: "San Martin 100", UnitCount: 24}
	uploads := []Upload{{Filename: "plano.pdf", Content: []byte("pdf")}}

	b, err := mgr.CreateBuilding(ctx, admin, in, uploads)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, b.ID)

	got, err := mgr.GetBuilding(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Address, got.Address)
	assert.Equal(t, in.UnitCount, got.UnitCount)
	require.Len(t, got.AttachmentURLs, 1)
	assert.Equal(t, files.saved[0], got.AttachmentURLs[0])

	// admin notification dispatched after the commit
	msgs := mailer.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, "admin@example.com", msgs[0].To)
}

func TestCreateBuildingValidation(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)

	_, err := mgr.CreateBuilding(context.Background(), admin, CreateBuildingInput{Address: "sin nombre"}, nil)
	assert.Equal(t, KindValidation, KindOf(err))
}

// ========== Expenses ==========

func TestCreateExpenseComputesInterest(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	_, err := mgr.UpsertFinanceConfig(ctx, admin, FinanceConfigInput{
		ConsortiumID:       "consorcio-1",
		InterestRatePerDay: 0.005,
	})
	require.NoError(t, err)

	paid := date("2024-01-20")
	e, err := mgr.CreateExpense(ctx, admin, CreateExpenseInput{
		ConsortiumID: "consorcio-1",
		Month:        1,
		Year:         2024,
		BaseAmount:   1000,
		DueDate:      date("2024-01-10"),
		PaidDate:     &paid,
	})
	require.NoError(t, err)

	// 10 days late at 0.5% per day
	assert.InDelta(t, 1050.0, e.ComputedAmount, 1e-9)
	assert.GreaterOrEqual(t, e.ComputedAmount, e.BaseAmount)
}

func TestCreateExpenseEarlyPayment(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	paid := date("2024-01-05")
	e, err := mgr.CreateExpense(ctx, admin, CreateExpenseInput{
		ConsortiumID: "consorcio-1",
		Month:        1,
		Year:         2024,
		BaseAmount:   1000,
		DueDate:      date("2024-01-10"),
		PaidDate:     &paid,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, e.ComputedAmount, 1e-9)
}

func TestCreateExpenseDefaultRateWithoutConfig(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	paid := date("2024-03-11")
	e, err := mgr.CreateExpense(ctx, admin, CreateExpenseInput{
		ConsortiumID: "unconfigured",
		Month:        3,
		Year:         2024,
		BaseAmount:   2000,
		DueDate:      date("2024-03-01"),
		PaidDate:     &paid,
	})
	require.NoError(t, err)

	// default rate 0.005, 10 days late
	assert.InDelta(t, 2100.0, e.ComputedAmount, 1e-9)
}

func TestCreateExpenseGracePeriod(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	_, err := mgr.UpsertFinanceConfig(ctx, admin, FinanceConfigInput{
		ConsortiumID:       "consorcio-2",
		InterestRatePerDay: 0.01,
		GracePeriodDays:    15,
	})
	require.NoError(t, err)

	paid := date("2024-01-20")
	e, err := mgr.CreateExpense(ctx, admin, CreateExpenseInput{
		ConsortiumID: "consorcio-2",
		Month:        1,
		Year:         2024,
		BaseAmount:   1000,
		DueDate:      date("2024-01-10"),
		PaidDate:     &paid,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, e.ComputedAmount, 1e-9)
}

func TestCreateExpenseValidation(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	_, err := mgr.CreateExpense(ctx, admin, CreateExpenseInput{
		ConsortiumID: "c", Month: 1, Year: 2024, BaseAmount: 0, DueDate: date("2024-01-10"),
	})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = mgr.CreateExpense(ctx, admin, CreateExpenseInput{
		ConsortiumID: "c", Month: 1, Year: 2024, BaseAmount: 100,
	})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestSendExpenseMarksSent(t *testing.T) {
	mgr, _, mailer, _ := newTestManager(t)
	ctx := context.Background()

	e, err := mgr.CreateExpense(ctx, admin, CreateExpenseInput{
		ConsortiumID: "c", Month: 2, Year: 2024, BaseAmount: 500, DueDate: date("2024-02-10"),
	})
	require.NoError(t, err)
	assert.False(t, e.Sent)

	sent, err := mgr.SendExpense(ctx, admin, e.ID, "owner@example.com")
	require.NoError(t, err)
	assert.True(t, sent.Sent)

	got, err := mgr.GetExpense(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, got.Sent)

	msgs := mailer.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, "owner@example.com", msgs[0].To)

	_, err = mgr.SendExpense(ctx, admin, e.ID, "not-an-address")
	assert.Equal(t, KindValidation, KindOf(err))
}

// ========== Payments ==========

func TestCreatePaymentAdminOnly(t *testing.T) {
	mgr, _, mailer, _ := newTestManager(t)
	ctx := context.Background()

	in := CreatePaymentInput{
		UnitID:      "4B",
		Amount:      1500,
		PaymentDate: date("2024-02-01"),
		NotifyEmail: "owner@example.com",
	}

	_, err := mgr.CreatePayment(ctx, owner, in, nil)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	p, err := mgr.CreatePayment(ctx, admin, in, &Upload{Filename: "recibo.jpg", Content: []byte("img")})
	require.NoError(t, err)
	assert.Equal(t, "pending", p.Status)
	assert.NotEmpty(t, p.AttachmentURL)

	msgs := mailer.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, "owner@example.com", msgs[0].To)
}

func TestUpdatePaymentStatus(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	p, err := mgr.CreatePayment(ctx, admin, CreatePaymentInput{
		UnitID: "1A", Amount: 100, PaymentDate: date("2024-02-01"),
	}, nil)
	require.NoError(t, err)

	completed := "completed"
	updated, err := mgr.UpdatePayment(ctx, admin, p.ID, UpdatePaymentInput{Status: &completed}, nil)
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)

	bogus := "paid-ish"
	_, err = mgr.UpdatePayment(ctx, admin, p.ID, UpdatePaymentInput{Status: &bogus}, nil)
	assert.Equal(t, KindValidation, KindOf(err))
}

// ========== Complaints ==========

func TestComplaintLifecycle(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	// unit owners can file complaints
	c, err := mgr.CreateComplaint(ctx, owner, CreateComplaintInput{UnitID: "3C", Content: "La caldera no funciona"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "open", c.Status)
	assert.Nil(t, c.RepliedAt)

	// only admins may reply
	reply := "Un tecnico visita el lunes"
	_, err = mgr.UpdateComplaint(ctx, owner, c.ID, UpdateComplaintInput{Reply: &reply})
	assert.Equal(t, KindUnauthorized, KindOf(err))

	status := "in_progress"
	updated, err := mgr.UpdateComplaint(ctx, admin, c.ID, UpdateComplaintInput{Status: &status, Reply: &reply})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", updated.Status)
	assert.Equal(t, reply, updated.Reply)
	require.NotNil(t, updated.RepliedAt)

	// status stayed put without an explicit transition
	got, err := mgr.GetComplaint(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", got.Status)
}

// ========== Invitations ==========

func TestCreateInvitationIssuesToken(t *testing.T) {
	mgr, _, mailer, _ := newTestManager(t)
	ctx := context.Background()

	inv, err := mgr.CreateInvitation(ctx, admin, CreateInvitationInput{
		RecipientEmail: "a@b.com",
		Subject:        "Sumate al consorcio",
		Message:        "Te invitamos a la plataforma.",
	}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, inv.JoinToken)

	// the token decodes to the recipient email with ~1h expiry
	tokens := auth.NewJWTManager(&config.JWTConfig{Secret: "test-secret", InviteTokenTTL: time.Hour})
	claims, err := tokens.ValidateInviteToken(inv.JoinToken)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
	assert.WithinDuration(t, inv.ExpiresAt, claims.ExpiresAt.Time, time.Second)

	msgs := mailer.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, "a@b.com", msgs[0].To)
	assert.Contains(t, msgs[0].Body, inv.JoinToken)
}

func TestDeleteInvitationKeepsTokenValid(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	inv, err := mgr.CreateInvitation(ctx, admin, CreateInvitationInput{
		RecipientEmail: "a@b.com", Subject: "Hola",
	}, nil)
	require.NoError(t, err)

	require.NoError(t, mgr.DeleteInvitation(ctx, admin, inv.ID))

	tokens := auth.NewJWTManager(&config.JWTConfig{Secret: "test-secret", InviteTokenTTL: time.Hour})
	_, err = tokens.ValidateInviteToken(inv.JoinToken)
	assert.NoError(t, err)
}

// ========== Users ==========

func TestCreateUserAndLogin(t *testing.T) {
	mgr, _, mailer, _ := newTestManager(t)
	ctx := context.Background()

	u, err := mgr.CreateUser(ctx, admin, CreateUserInput{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "super-secreta",
		UnitID:   "2D",
	}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "super-secreta", u.PasswordHash)

	// welcome notification
	msgs := mailer.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, "maria@example.com", msgs[0].To)

	logged, token, err := mgr.Login(ctx, "maria@example.com", "super-secreta")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
	assert.NotEmpty(t, token)

	_, _, err = mgr.Login(ctx, "maria@example.com", "wrong")
	assert.Equal(t, KindUnauthorized, KindOf(err))

	_, _, err = mgr.Login(ctx, "nobody@example.com", "whatever")
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestCreateUserRejectsShortPassword(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)

	_, err := mgr.CreateUser(context.Background(), admin, CreateUserInput{
		Name: "X", Email: "x@example.com", Password: "short",
	}, nil)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	u, err := mgr.CreateUser(ctx, admin, CreateUserInput{
		Name: "Jose", Email: "jose@example.com", Password: "primera-clave",
	}, nil)
	require.NoError(t, err)

	newPass := "segunda-clave"
	_, err = mgr.UpdateUser(ctx, admin, u.ID, UpdateUserInput{Password: &newPass}, nil)
	require.NoError(t, err)

	_, _, err = mgr.Login(ctx, "jose@example.com", "segunda-clave")
	assert.NoError(t, err)
	_, _, err = mgr.Login(ctx, "jose@example.com", "primera-clave")
	assert.Error(t, err)
}

// ========== Staff and payroll ==========

func TestPayrollReceiptsByStaff(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	st, err := mgr.CreateStaff(ctx, admin, CreateStaffInput{
		Name:      "Carlos",
		BirthDate: date("1980-06-15"),
		CUIL:      "20-12345678-9",
		Position:  "encargado",
	})
	require.NoError(t, err)

	// receipts against a missing staff id are rejected
	_, err = mgr.CreatePayrollReceipt(ctx, admin, CreatePayrollReceiptInput{
		StaffID: uuid.New(), Month: 1, Year: 2024, Amount: 100,
	}, nil)
	assert.Equal(t, KindNotFound, KindOf(err))

	for month := 1; month <= 3; month++ {
		_, err = mgr.CreatePayrollReceipt(ctx, admin, CreatePayrollReceiptInput{
			StaffID: st.ID, Month: month, Year: 2024, Amount: 350000,
		}, &Upload{Filename: "recibo.pdf", Content: []byte("pdf")})
		require.NoError(t, err)
	}

	receipts, err := mgr.ListPayrollReceipts(ctx, st.ID)
	require.NoError(t, err)
	assert.Len(t, receipts, 3)
	for _, r := range receipts {
		assert.Equal(t, st.ID, r.StaffID)
		assert.NotEmpty(t, r.AttachmentURL)
	}
}

// ========== Documents ==========

func TestCreateDocumentRequiresFile(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	_, err := mgr.CreateDocument(ctx, admin, CreateDocumentInput{Category: "reglamento"}, nil)
	assert.Equal(t, KindValidation, KindOf(err))

	d, err := mgr.CreateDocument(ctx, admin, CreateDocumentInput{Category: "reglamento"},
		&Upload{Filename: "reglamento.pdf", Content: []byte("pdf")})
	require.NoError(t, err)
	assert.NotEmpty(t, d.FileURL)
	assert.False(t, d.Date.IsZero())
}

// ========== Finance config ==========

func TestFinanceConfigUpsertUpdateDelete(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	// update before any record exists fails
	_, err := mgr.UpdateFinanceConfig(ctx, admin, FinanceConfigInput{
		ConsortiumID: "c1", InterestRatePerDay: 0.01,
	})
	assert.Equal(t, KindNotFound, KindOf(err))

	// upsert creates
	cfg, err := mgr.UpsertFinanceConfig(ctx, admin, FinanceConfigInput{
		ConsortiumID: "c1", InterestRatePerDay: 0.005, GracePeriodDays: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.005, cfg.InterestRatePerDay)

	// update now succeeds
	cfg, err = mgr.UpdateFinanceConfig(ctx, admin, FinanceConfigInput{
		ConsortiumID: "c1", InterestRatePerDay: 0.01, GracePeriodDays: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.InterestRatePerDay)

	got, err := mgr.GetFinanceConfig(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.GracePeriodDays)

	require.NoError(t, mgr.DeleteFinanceConfig(ctx, admin, "c1"))
	_, err = mgr.GetFinanceConfig(ctx, "c1")
	assert.Equal(t, KindNotFound, KindOf(err))
}

// ========== Email ==========

func TestSendEmailSurfacesTransportFailure(t *testing.T) {
	mgr, _, mailer, _ := newTestManager(t)
	ctx := context.Background()

	in := SendEmailInput{To: "a@b.com", Subject: "Aviso", Body: "Corte de agua programado"}

	require.NoError(t, mgr.SendEmail(ctx, admin, in, nil))

	mailer.sendErr = fmt.Errorf("smtp unreachable")
	err := mgr.SendEmail(ctx, admin, in, nil)
	assert.Equal(t, KindTransport, KindOf(err))

	// non-admins may not use the raw send endpoint
	mailer.sendErr = nil
	err = mgr.SendEmail(ctx, owner, in, nil)
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestSendEmailValidatesRecipient(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)

	err := mgr.SendEmail(context.Background(), admin, SendEmailInput{
		To: "not-an-address", Subject: "x", Body: "y",
	}, nil)
	assert.Equal(t, KindValidation, KindOf(err))
}
