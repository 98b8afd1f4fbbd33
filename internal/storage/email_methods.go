package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/consorcio-server/consorcio-server/internal/models"
)

// CreateEmailLog appends a send-history entry
func (s *PostgresStore) CreateEmailLog(ctx context.Context, e *models.EmailLog) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.SentAt.IsZero() {
		e.SentAt = time.Now()
	}

	query := `
		INSERT INTO email_logs (id, recipient, subject, sent_at)
		VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query, e.ID, e.Recipient, e.Subject, e.SentAt)

	return mapError(err)
}

// ListEmailLogs lists the send history
func (s *PostgresStore) ListEmailLogs(ctx context.Context) ([]*models.EmailLog, error) {
	query := `
		SELECT id, recipient, subject, sent_at
		FROM email_logs
		ORDER BY sent_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var logs []*models.EmailLog
	for rows.Next() {
		e := &models.EmailLog{}
		if err := rows.Scan(&e.ID, &e.Recipient, &e.Subject, &e.SentAt); err != nil {
			return nil, err
		}
		logs = append(logs, e)
	}

	return logs, rows.Err()
}
