package server

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/consorcio-server/consorcio-server/internal/mail"
)

// MailSubscriber delivers queued mail published on NATS
type MailSubscriber struct {
	nc     *nats.Conn
	sender mail.Sender
	subs   []*nats.Subscription
}

// NewMailSubscriber creates a mail subscriber
func NewMailSubscriber(nc *nats.Conn, sender mail.Sender) *MailSubscriber {
	return &MailSubscriber{
		nc:     nc,
		sender: sender,
		subs:   make([]*nats.Subscription, 0),
	}
}

// Start subscribes to the send subject and blocks until the context ends
func (s *MailSubscriber) Start(ctx context.Context) error {
	sub, err := s.nc.Subscribe(mail.SubjectSend, s.handleSend)
	if err != nil {
		return fmt.Errorf("subscribe mail send: %w", err)
	}
	s.subs = append(s.subs, sub)

	log.Info().
		Int("subscriptions", len(s.subs)).
		Msg("Mail subscriber started")

	<-ctx.Done()

	for _, sub := range s.subs {
		sub.Unsubscribe()
	}

	return ctx.Err()
}

// handleSend delivers a queued message
func (s *MailSubscriber) handleSend(msg *nats.Msg) {
	log.Debug().
		Str("subject", msg.Subject).
		Int("size", len(msg.Data)).
		Msg("Received mail message")

	m, err := mail.DecodeMessage(msg.Data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to decode mail message")
		return
	}

	if err := s.sender.Send(context.Background(), m); err != nil {
		log.Error().Err(err).Str("recipient", m.To).Msg("Failed to deliver queued mail")
		return
	}

	log.Info().
		Str("recipient", m.To).
		Str("mailSubject", m.Subject).
		Msg("Queued mail delivered")
}
