package mail

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/consorcio-server/consorcio-server/internal/config"
	"github.com/consorcio-server/consorcio-server/internal/models"
	"github.com/consorcio-server/consorcio-server/internal/storage"
)

// SMTPSender delivers messages over SMTP. Every successful send appends a
// send-history entry; a failed append never fails the send.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	store  storage.Store
}

// NewSMTPSender creates an SMTP sender
func NewSMTPSender(cfg *config.SMTPConfig, store storage.Store) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		store:  store,
	}
}

// Send delivers a message in a single attempt
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if !ValidRecipient(msg.To) {
		return fmt.Errorf("invalid recipient address: %q", msg.To)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	m.AddAlternative("text/html", "<p>"+html.EscapeString(msg.Body)+"</p>")

	if msg.Attachment != nil {
		content := msg.Attachment.Content
		m.Attach(msg.Attachment.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	entry := &models.EmailLog{
		Recipient: msg.To,
		Subject:   msg.Subject,
	}
	if err := s.store.CreateEmailLog(ctx, entry); err != nil {
		log.Error().Err(err).Str("recipient", msg.To).Msg("Failed to record email log")
	}

	return nil
}
