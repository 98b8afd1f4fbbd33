package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Collection names
const (
	colBuildings       = "buildings"
	colExpenses        = "expenses"
	colPayments        = "payments"
	colComplaints      = "complaints"
	colInvitations     = "invitations"
	colUsers           = "users"
	colStaff           = "staff"
	colPayrollReceipts = "payrollReceipts"
	colDocuments       = "documents"
	colFinanceConfigs  = "financeConfigs"
	colEmailLogs       = "emailLogs"
)

// FirestoreStore implements Store interface for Cloud Firestore
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore store. With an empty credentials
// file it falls back to application default credentials.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	conf := &firebase.Config{ProjectID: projectID}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firestore: %w", err)
	}

	return &FirestoreStore{client: client}, nil
}

// Close closes the Firestore client
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// getDoc reads a document into dst, mapping missing documents to ErrNotFound
func (s *FirestoreStore) getDoc(ctx context.Context, col, id string, dst interface{}) error {
	snap, err := s.client.Collection(col).Doc(id).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return ErrNotFound
		}
		return err
	}
	return snap.DataTo(dst)
}

// setDoc writes a document unconditionally
func (s *FirestoreStore) setDoc(ctx context.Context, col, id string, data interface{}) error {
	_, err := s.client.Collection(col).Doc(id).Set(ctx, data)
	return err
}

// updateDoc replaces a document only if it already exists. The existence
// check and the write run in one transaction.
func (s *FirestoreStore) updateDoc(ctx context.Context, col, id string, data interface{}) error {
	ref := s.client.Collection(col).Doc(id)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if snap != nil && !snap.Exists() {
				return ErrNotFound
			}
			return err
		}
		return tx.Set(ref, data)
	})
}

// deleteDoc removes a document only if it exists
func (s *FirestoreStore) deleteDoc(ctx context.Context, col, id string) error {
	ref := s.client.Collection(col).Doc(id)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if snap != nil && !snap.Exists() {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(ref)
	})
}

// eachDoc iterates a full collection scan, calling fn for each document
func (s *FirestoreStore) eachDoc(ctx context.Context, q firestore.Query, fn func(*firestore.DocumentSnapshot) error) error {
	it := q.Documents(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(snap); err != nil {
			return err
		}
	}
}
