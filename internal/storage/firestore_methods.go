package storage

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// ========== Building methods ==========

func (s *FirestoreStore) CreateBuilding(ctx context.Context, b *models.Building) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	return s.setDoc(ctx, colBuildings, b.ID.String(), b)
}

func (s *FirestoreStore) GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	b := &models.Building{}
	if err := s.getDoc(ctx, colBuildings, id.String(), b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *FirestoreStore) UpdateBuilding(ctx context.Context, b *models.Building) error {
	b.UpdatedAt = time.Now()
	return s.updateDoc(ctx, colBuildings, b.ID.String(), b)
}

func (s *FirestoreStore) DeleteBuilding(ctx context.Context, id uuid.UUID) error {
	return s.deleteDoc(ctx, colBuildings, id.String())
}

func (s *FirestoreStore) ListBuildings(ctx context.Context) ([]*models.Building, error) {
	var buildings []*models.Building
	err := s.eachDoc(ctx, s.client.Collection(colBuildings).Query, func(snap *firestore.DocumentSnapshot) error {
		b := &models.Building{}
		if err := snap.DataTo(b); err != nil {
			return err
		}
		buildings = append(buildings, b)
		return nil
	})
	return buildings, err
}

// ========== Expense methods ==========

func (s *FirestoreStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	return s.setDoc(ctx, colExpenses, e.ID.String(), e)
}

func (s *FirestoreStore) GetExpense(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	e := &models.Expense{}
	if err := s.getDoc(ctx, colExpenses, id.String(), e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *FirestoreStore) UpdateExpense(ctx context.Context, e *models.Expense) error {
	e.UpdatedAt = time.Now()
	return s.updateDoc(ctx, colExpenses, e.ID.String(), e)
}

func (s *FirestoreStore) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.deleteDoc(ctx, colExpenses, id.String())
}

func (s *FirestoreStore) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	var expenses []*models.Expense
	err := s.eachDoc(ctx, s.client.Collection(colExpenses).Query, func(snap *firestore.DocumentSnapshot) error {
		e := &models.Expense{}
		if err := snap.DataTo(e); err != nil {
			return err
		}
		expenses = append(expenses, e)
		return nil
	})
	return expenses, err
}

// ========== Payment methods ==========

func (s *FirestoreStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.setDoc(ctx, colPayments, p.ID.String(), p)
}

func (s *FirestoreStore) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	p := &models.Payment{}
	if err := s.getDoc(ctx, colPayments, id.String(), p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *FirestoreStore) UpdatePayment(ctx context.Context, p *models.Payment) error {
	p.UpdatedAt = time.Now()
	return s.updateDoc(ctx, colPayments, p.ID.String(), p)
}

func (s *FirestoreStore) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return s.deleteDoc(ctx, colPayments, id.String())
}

func (s *FirestoreStore) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := s.eachDoc(ctx, s.client.Collection(colPayments).Query, func(snap *firestore.DocumentSnapshot) error {
		p := &models.Payment{}
		if err := snap.DataTo(p); err != nil {
			return err
		}
		payments = append(payments, p)
		return nil
	})
	return payments, err
}

// ========== Complaint methods ==========

func (s *FirestoreStore) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.setDoc(ctx, colComplaints, c.ID.String(), c)
}

func (s *FirestoreStore) GetComplaint(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	c := &models.Complaint{}
	if err := s.getDoc(ctx, colComplaints, id.String(), c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *FirestoreStore) UpdateComplaint(ctx context.Context, c *models.Complaint) error {
	c.UpdatedAt = time.Now()
	return s.updateDoc(ctx, colComplaints, c.ID.String(), c)
}

func (s *FirestoreStore) DeleteComplaint(ctx context.Context, id uuid.UUID) error {
	return s.deleteDoc(ctx, colComplaints, id.String())
}

func (s *FirestoreStore) ListComplaints(ctx context.Context) ([]*models.Complaint, error) {
	var complaints []*models.Complaint
	err := s.eachDoc(ctx, s.client.Collection(colComplaints).Query, func(snap *firestore.DocumentSnapshot) error {
		c := &models.Complaint{}
		if err := snap.DataTo(c); err != nil {
			return err
		}
		complaints = append(complaints, c)
		return nil
	})
	return complaints, err
}

// ========== Invitation methods ==========

func (s *FirestoreStore) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	inv.CreatedAt = time.Now()
	return s.setDoc(ctx, colInvitations, inv.ID.String(), inv)
}

func (s *FirestoreStore) GetInvitation(ctx context.Context, id uuid.UUID) (*models.Invitation, error) {
	inv := &models.Invitation{}
	if err := s.getDoc(ctx, colInvitations, id.String(), inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *FirestoreStore) DeleteInvitation(ctx context.Context, id uuid.UUID) error {
	return s.deleteDoc(ctx, colInvitations, id.String())
}

func (s *FirestoreStore) ListInvitations(ctx context.Context) ([]*models.Invitation, error) {
	var invitations []*models.Invitation
	err := s.eachDoc(ctx, s.client.Collection(colInvitations).Query, func(snap *firestore.DocumentSnapshot) error {
		inv := &models.Invitation{}
		if err := snap.DataTo(inv); err != nil {
			return err
		}
		invitations = append(invitations, inv)
		return nil
	})
	return invitations, err
}

// ========== User methods ==========

func (s *FirestoreStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	return s.setDoc(ctx, colUsers, u.ID.String(), u)
}

func (s *FirestoreStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u := &models.User{}
	if err := s.getDoc(ctx, colUsers, id.String(), u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *FirestoreStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	it := s.client.Collection(colUsers).Where("email", "==", email).Limit(1).Documents(ctx)
	defer it.Stop()

	snap, err := it.Next()
	if err != nil {
		return nil, ErrNotFound
	}

	u := &models.User{}
	if err := snap.DataTo(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *FirestoreStore) UpdateUser(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now()
	return s.updateDoc(ctx, colUsers, u.ID.String(), u)
}

func (s *FirestoreStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.deleteDoc(ctx, colUsers, id.String())
}

func (s *FirestoreStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := s.eachDoc(ctx, s.client.Collection(colUsers).Query, func(snap *firestore.DocumentSnapshot) error {
		u := &models.User{}
		if err := snap.DataTo(u); err != nil {
			return err
		}
		users = append(users, u)
		return nil
	})
	return users, err
}

// ========== Staff methods ==========

func (s *FirestoreStore) CreateStaff(ctx context.Context, st *models.Staff) error {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	now := time.Now()
	st.CreatedAt = now
	st.UpdatedAt = now
	return s.setDoc(ctx, colStaff, st.ID.String(), st)
}

func (s *FirestoreStore) GetStaff(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	st := &models.Staff{}
	if err := s.getDoc(ctx, colStaff, id.String(), st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *FirestoreStore) UpdateStaff(ctx context.Context, st *models.Staff) error {
	st.UpdatedAt = time.Now()
	return s.updateDoc(ctx, colStaff, st.ID.String(), st)
}

func (s *FirestoreStore) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	return s.deleteDoc(ctx, colStaff, id.String())
}

func (s *FirestoreStore) ListStaff(ctx context.Context) ([]*models.Staff, error) {
	var staff []*models.Staff
	err := s.eachDoc(ctx, s.client.Collection(colStaff).Query, func(snap *firestore.DocumentSnapshot) error {
		st := &models.Staff{}
		if err := snap.DataTo(st); err != nil {
			return err
		}
		staff = append(staff, st)
		return nil
	})
	return staff, err
}

// ========== Payroll receipt methods ==========

func (s *FirestoreStore) CreatePayrollReceipt(ctx context.Context, r *models.PayrollReceipt) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	return s.setDoc(ctx, colPayrollReceipts, r.ID.String(), r)
}

func (s *FirestoreStore) GetPayrollReceipt(ctx context.Context, id uuid.UUID) (*models.PayrollReceipt, error) {
	r := &models.PayrollReceipt{}
	if err := s.getDoc(ctx, colPayrollReceipts, id.String(), r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *FirestoreStore) ListPayrollReceiptsByStaff(ctx context.Context, staffID uuid.UUID) ([]*models.PayrollReceipt, error) {
	var receipts []*models.PayrollReceipt
	q := s.client.Collection(colPayrollReceipts).Where("staffId", "==", staffID)
	err := s.eachDoc(ctx, q, func(snap *firestore.DocumentSnapshot) error {
		r := &models.PayrollReceipt{}
		if err := snap.DataTo(r); err != nil {
			return err
		}
		receipts = append(receipts, r)
		return nil
	})
	return receipts, err
}

// ========== Document methods ==========

func (s *FirestoreStore) CreateDocument(ctx context.Context, d *models.Document) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = time.Now()
	return s.setDoc(ctx, colDocuments, d.ID.String(), d)
}

func (s *FirestoreStore) GetDocument(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	d := &models.Document{}
	if err := s.getDoc(ctx, colDocuments, id.String(), d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *FirestoreStore) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return s.deleteDoc(ctx, colDocuments, id.String())
}

func (s *FirestoreStore) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	var documents []*models.Document
	err := s.eachDoc(ctx, s.client.Collection(colDocuments).Query, func(snap *firestore.DocumentSnapshot) error {
		d := &models.Document{}
		if err := snap.DataTo(d); err != nil {
			return err
		}
		documents = append(documents, d)
		return nil
	})
	return documents, err
}

// ========== Finance config methods ==========

func (s *FirestoreStore) GetFinanceConfig(ctx context.Context, consortiumID string) (*models.FinanceConfig, error) {
	cfg := &models.FinanceConfig{}
	if err := s.getDoc(ctx, colFinanceConfigs, consortiumID, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *FirestoreStore) UpsertFinanceConfig(ctx context.Context, cfg *models.FinanceConfig) error {
	cfg.UpdatedAt = time.Now()
	return s.setDoc(ctx, colFinanceConfigs, cfg.ConsortiumID, cfg)
}

func (s *FirestoreStore) UpdateFinanceConfig(ctx context.Context, cfg *models.FinanceConfig) error {
	cfg.UpdatedAt = time.Now()
	return s.updateDoc(ctx, colFinanceConfigs, cfg.ConsortiumID, cfg)
}

func (s *FirestoreStore) DeleteFinanceConfig(ctx context.Context, consortiumID string) error {
	return s.deleteDoc(ctx, colFinanceConfigs, consortiumID)
}

// ========== Email log methods ==========

func (s *FirestoreStore) CreateEmailLog(ctx context.Context, e *models.EmailLog) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.SentAt.IsZero() {
		e.SentAt = time.Now()
	}
	return s.setDoc(ctx, colEmailLogs, e.ID.String(), e)
}

func (s *FirestoreStore) ListEmailLogs(ctx context.Context) ([]*models.EmailLog, error) {
	var logs []*models.EmailLog
	err := s.eachDoc(ctx, s.client.Collection(colEmailLogs).Query, func(snap *firestore.DocumentSnapshot) error {
		e := &models.EmailLog{}
		if err := snap.DataTo(e); err != nil {
			return err
		}
		logs = append(logs, e)
		return nil
	})
	return logs, err
}
