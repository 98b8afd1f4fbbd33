package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidData  = errors.New("invalid data")
)

// Store defines the storage interface
type Store interface {
	// Building methods
	CreateBuilding(ctx context.Context, b *models.Building) error
	GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error)
	UpdateBuilding(ctx context.Context, b *models.Building) error
	DeleteBuilding(ctx context.Context, id uuid.UUID) error
	ListBuildings(ctx context.Context) ([]*models.Building, error)

	// Expense methods
	CreateExpense(ctx context.Context, e *models.Expense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*models.Expense, error)
	UpdateExpense(ctx context.Context, e *models.Expense) error
	DeleteExpense(ctx context.Context, id uuid.UUID) error
	ListExpenses(ctx context.Context) ([]*models.Expense, error)

	// Payment methods
	CreatePayment(ctx context.Context, p *models.Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	UpdatePayment(ctx context.Context, p *models.Payment) error
	DeletePayment(ctx context.Context, id uuid.UUID) error
	ListPayments(ctx context.Context) ([]*models.Payment, error)

	// Complaint methods
	CreateComplaint(ctx context.Context, c *models.Complaint) error
	GetComplaint(ctx context.Context, id uuid.UUID) (*models.Complaint, error)
	UpdateComplaint(ctx context.Context, c *models.Complaint) error
	DeleteComplaint(ctx context.Context, id uuid.UUID) error
	ListComplaints(ctx context.Context) ([]*models.Complaint, error)

	// Invitation methods
	CreateInvitation(ctx context.Context, inv *models.Invitation) error
	GetInvitation(ctx context.Context, id uuid.UUID) (*models.Invitation, error)
	DeleteInvitation(ctx context.Context, id uuid.UUID) error
	ListInvitations(ctx context.Context) ([]*models.Invitation, error)

	// User methods
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context) ([]*models.User, error)

	// Staff methods
	CreateStaff(ctx context.Context, s *models.Staff) error
	GetStaff(ctx context.Context, id uuid.UUID) (*models.Staff, error)
	UpdateStaff(ctx context.Context, s *models.Staff) error
	DeleteStaff(ctx context.Context, id uuid.UUID) error
	ListStaff(ctx context.Context) ([]*models.Staff, error)

	// Payroll receipt methods
	CreatePayrollReceipt(ctx context.Context, r *models.PayrollReceipt) error
	GetPayrollReceipt(ctx context.Context, id uuid.UUID) (*models.PayrollReceipt, error)
	ListPayrollReceiptsByStaff(ctx context.Context, staffID uuid.UUID) ([]*models.PayrollReceipt, error)

	// Document methods
	CreateDocument(ctx context.Context, d *models.Document) error
	GetDocument(ctx context.Context, id uuid.UUID) (*models.Document, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
	ListDocuments(ctx context.Context) ([]*models.Document, error)

	// Finance config methods, keyed by consortium id with upsert semantics
	GetFinanceConfig(ctx context.Context, consortiumID string) (*models.FinanceConfig, error)
	UpsertFinanceConfig(ctx context.Context, cfg *models.FinanceConfig) error
	UpdateFinanceConfig(ctx context.Context, cfg *models.FinanceConfig) error
	DeleteFinanceConfig(ctx context.Context, consortiumID string) error

	// Email log methods (append-only)
	CreateEmailLog(ctx context.Context, e *models.EmailLog) error
	ListEmailLogs(ctx context.Context) ([]*models.EmailLog, error)

	// Close the store
	Close() error
}
