package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// MemoryStore implements Store with in-process maps. It backs the memory
// driver and the test suites.
type MemoryStore struct {
	mu sync.RWMutex

	buildings       map[uuid.UUID]*models.Building
	expenses        map[uuid.UUID]*models.Expense
	payments        map[uuid.UUID]*models.Payment
	complaints      map[uuid.UUID]*models.Complaint
	invitations     map[uuid.UUID]*models.Invitation
	users           map[uuid.UUID]*models.User
	staff           map[uuid.UUID]*models.Staff
	payrollReceipts map[uuid.UUID]*models.PayrollReceipt
	documents       map[uuid.UUID]*models.Document
	financeConfigs  map[string]*models.FinanceConfig
	emailLogs       []*models.EmailLog
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		buildings:       make(map[uuid.UUID]*models.Building),
		expenses:        make(map[uuid.UUID]*models.Expense),
		payments:        make(map[uuid.UUID]*models.Payment),
		complaints:      make(map[uuid.UUID]*models.Complaint),
		invitations:     make(map[uuid.UUID]*models.Invitation),
		users:           make(map[uuid.UUID]*models.User),
		staff:           make(map[uuid.UUID]*models.Staff),
		payrollReceipts: make(map[uuid.UUID]*models.PayrollReceipt),
		documents:       make(map[uuid.UUID]*models.Document),
		financeConfigs:  make(map[string]*models.FinanceConfig),
	}
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}

// ========== Building methods ==========

func (s *MemoryStore) CreateBuilding(ctx context.Context, b *models.Building) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	cp := *b
	s.buildings[b.ID] = &cp
	return nil
}

func (s *MemoryStore) GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.buildings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *MemoryStore) UpdateBuilding(ctx context.Context, b *models.Building) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.buildings[b.ID]; !ok {
		return ErrNotFound
	}
	b.UpdatedAt = time.Now()
	cp := *b
	s.buildings[b.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteBuilding(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.buildings[id]; !ok {
		return ErrNotFound
	}
	delete(s.buildings, id)
	return nil
}

func (s *MemoryStore) ListBuildings(ctx context.Context) ([]*models.Building, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Building, 0, len(s.buildings))
	for _, b := range s.buildings {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

// ========== Expense methods ==========

func (s *MemoryStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	cp := *e
	s.expenses[e.ID] = &cp
	return nil
}

func (s *MemoryStore) GetExpense(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.expenses[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *MemoryStore) UpdateExpense(ctx context.Context, e *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[e.ID]; !ok {
		return ErrNotFound
	}
	e.UpdatedAt = time.Now()
	cp := *e
	s.expenses[e.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[id]; !ok {
		return ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *MemoryStore) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

// ========== Payment methods ==========

func (s *MemoryStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	s.payments[p.ID] = &cp
	return nil
}

func (s *MemoryStore) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) UpdatePayment(ctx context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[p.ID]; !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now()
	cp := *p
	s.payments[p.ID] = &cp
	return nil
}

func (s *MemoryStore) DeletePayment(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[id]; !ok {
		return ErrNotFound
	}
	delete(s.payments, id)
	return nil
}

func (s *MemoryStore) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// ========== Complaint methods ==========

func (s *MemoryStore) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := *c
	s.complaints[c.ID] = &cp
	return nil
}

func (s *MemoryStore) GetComplaint(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.complaints[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) UpdateComplaint(ctx context.Context, c *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.complaints[c.ID]; !ok {
		return ErrNotFound
	}
	c.UpdatedAt = time.Now()
	cp := *c
	s.complaints[c.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteComplaint(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.complaints[id]; !ok {
		return ErrNotFound
	}
	delete(s.complaints, id)
	return nil
}

func (s *MemoryStore) ListComplaints(ctx context.Context) ([]*models.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Complaint, 0, len(s.complaints))
	for _, c := range s.complaints {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

// ========== Invitation methods ==========

func (s *MemoryStore) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	inv.CreatedAt = time.Now()
	cp := *inv
	s.invitations[inv.ID] = &cp
	return nil
}

func (s *MemoryStore) GetInvitation(ctx context.Context, id uuid.UUID) (*models.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invitations[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (s *MemoryStore) DeleteInvitation(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invitations[id]; !ok {
		return ErrNotFound
	}
	delete(s.invitations, id)
	return nil
}

func (s *MemoryStore) ListInvitations(ctx context.Context) ([]*models.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Invitation, 0, len(s.invitations))
	for _, inv := range s.invitations {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

// ========== User methods ==========

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrDuplicateKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}
	u.UpdatedAt = time.Now()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// ========== Staff methods ==========

func (s *MemoryStore) CreateStaff(ctx context.Context, st *models.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	now := time.Now()
	st.CreatedAt = now
	st.UpdatedAt = now
	cp := *st
	s.staff[st.ID] = &cp
	return nil
}

func (s *MemoryStore) GetStaff(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.staff[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *MemoryStore) UpdateStaff(ctx context.Context, st *models.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staff[st.ID]; !ok {
		return ErrNotFound
	}
	st.UpdatedAt = time.Now()
	cp := *st
	s.staff[st.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staff[id]; !ok {
		return ErrNotFound
	}
	delete(s.staff, id)
	return nil
}

func (s *MemoryStore) ListStaff(ctx context.Context) ([]*models.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Staff, 0, len(s.staff))
	for _, st := range s.staff {
		cp := *st
		out = append(out, &cp)
	}
	return out, nil
}

// ========== Payroll receipt methods ==========

func (s *MemoryStore) CreatePayrollReceipt(ctx context.Context, r *models.PayrollReceipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	cp := *r
	s.payrollReceipts[r.ID] = &cp
	return nil
}

func (s *MemoryStore) GetPayrollReceipt(ctx context.Context, id uuid.UUID) (*models.PayrollReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.payrollReceipts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *MemoryStore) ListPayrollReceiptsByStaff(ctx context.Context, staffID uuid.UUID) ([]*models.PayrollReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.PayrollReceipt
	for _, r := range s.payrollReceipts {
		if r.StaffID == staffID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ========== Document methods ==========

func (s *MemoryStore) CreateDocument(ctx context.Context, d *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = time.Now()
	cp := *d
	s.documents[d.ID] = &cp
	return nil
}

func (s *MemoryStore) GetDocument(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.documents[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *MemoryStore) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return ErrNotFound
	}
	delete(s.documents, id)
	return nil
}

func (s *MemoryStore) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Document, 0, len(s.documents))
	for _, d := range s.documents {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

// ========== Finance config methods ==========

func (s *MemoryStore) GetFinanceConfig(ctx context.Context, consortiumID string) (*models.FinanceConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.financeConfigs[consortiumID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *cfg
	return &cp, nil
}

func (s *MemoryStore) UpsertFinanceConfig(ctx context.Context, cfg *models.FinanceConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg.UpdatedAt = time.Now()
	cp := *cfg
	s.financeConfigs[cfg.ConsortiumID] = &cp
	return nil
}

func (s *MemoryStore) UpdateFinanceConfig(ctx context.Context, cfg *models.FinanceConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.financeConfigs[cfg.ConsortiumID]; !ok {
		return ErrNotFound
	}
	cfg.UpdatedAt = time.Now()
	cp := *cfg
	s.financeConfigs[cfg.ConsortiumID] = &cp
	return nil
}

func (s *MemoryStore) DeleteFinanceConfig(ctx context.Context, consortiumID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.financeConfigs[consortiumID]; !ok {
		return ErrNotFound
	}
	delete(s.financeConfigs, consortiumID)
	return nil
}

// ========== Email log methods ==========

func (s *MemoryStore) CreateEmailLog(ctx context.Context, e *models.EmailLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.SentAt.IsZero() {
		e.SentAt = time.Now()
	}
	cp := *e
	s.emailLogs = append(s.emailLogs, &cp)
	return nil
}

func (s *MemoryStore) ListEmailLogs(ctx context.Context) ([]*models.EmailLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.EmailLog, 0, len(s.emailLogs))
	for _, e := range s.emailLogs {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}
