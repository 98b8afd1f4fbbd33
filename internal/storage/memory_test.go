package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

func TestMemoryBuildingCRUD(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	b := &models.Building{Name: "Torre Uno", Address: "Av. Rivadavia 500", UnitCount: 12}
	require.NoError(t, s.CreateBuilding(ctx, b))
	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.False(t, b.CreatedAt.IsZero())

	got, err := s.GetBuilding(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Torre Uno", got.Name)

	// stored values are copies, mutating the returned record changes nothing
	got.Name = "mutated"
	again, err := s.GetBuilding(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Torre Uno", again.Name)

	b.Name = "Torre Uno bis"
	require.NoError(t, s.UpdateBuilding(ctx, b))
	got, err = s.GetBuilding(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Torre Uno bis", got.Name)

	list, err := s.ListBuildings(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeleteBuilding(ctx, b.ID))
	_, err = s.GetBuilding(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryNotFoundOnMissing(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	id := uuid.New()

	_, err := s.GetExpense(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.UpdateExpense(ctx, &models.Expense{ID: id}), ErrNotFound)
	assert.ErrorIs(t, s.DeleteExpense(ctx, id), ErrNotFound)
	assert.ErrorIs(t, s.DeletePayment(ctx, id), ErrNotFound)
	assert.ErrorIs(t, s.DeleteInvitation(ctx, id), ErrNotFound)
	assert.ErrorIs(t, s.UpdateUser(ctx, &models.User{ID: id}), ErrNotFound)
}

func TestMemoryUserDuplicateEmail(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	u := &models.User{Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, s.CreateUser(ctx, u))

	dup := &models.User{Name: "Otra Ana", Email: "ana@example.com"}
	assert.ErrorIs(t, s.CreateUser(ctx, dup), ErrDuplicateKey)

	got, err := s.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryPayrollReceiptsByStaff(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	st := &models.Staff{Name: "Carlos", CUIL: "20-12345678-9", Position: "encargado"}
	require.NoError(t, s.CreateStaff(ctx, st))

	other := &models.Staff{Name: "Laura", CUIL: "27-87654321-0", Position: "limpieza"}
	require.NoError(t, s.CreateStaff(ctx, other))

	for i := 0; i < 2; i++ {
		require.NoError(t, s.CreatePayrollReceipt(ctx, &models.PayrollReceipt{
			StaffID: st.ID, Month: i + 1, Year: 2024, Amount: 100,
		}))
	}
	require.NoError(t, s.CreatePayrollReceipt(ctx, &models.PayrollReceipt{
		StaffID: other.ID, Month: 1, Year: 2024, Amount: 200,
	}))

	receipts, err := s.ListPayrollReceiptsByStaff(ctx, st.ID)
	require.NoError(t, err)
	assert.Len(t, receipts, 2)
	for _, r := range receipts {
		assert.Equal(t, st.ID, r.StaffID)
	}
}

func TestMemoryFinanceConfigUpsert(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.GetFinanceConfig(ctx, "c1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.UpdateFinanceConfig(ctx, &models.FinanceConfig{ConsortiumID: "c1"}), ErrNotFound)

	cfg := &models.FinanceConfig{ConsortiumID: "c1", InterestRatePerDay: 0.005, GracePeriodDays: 3}
	require.NoError(t, s.UpsertFinanceConfig(ctx, cfg))

	got, err := s.GetFinanceConfig(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 0.005, got.InterestRatePerDay)

	cfg.InterestRatePerDay = 0.01
	require.NoError(t, s.UpsertFinanceConfig(ctx, cfg))
	got, err = s.GetFinanceConfig(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 0.01, got.InterestRatePerDay)

	require.NoError(t, s.DeleteFinanceConfig(ctx, "c1"))
	assert.ErrorIs(t, s.DeleteFinanceConfig(ctx, "c1"), ErrNotFound)
}

func TestMemoryEmailLog(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.CreateEmailLog(ctx, &models.EmailLog{Recipient: "a@b.com", Subject: "uno"}))
	time.Sleep(time.Millisecond)
	require.NoError(t, s.CreateEmailLog(ctx, &models.EmailLog{Recipient: "c@d.com", Subject: "dos"}))

	logs, err := s.ListEmailLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
}
