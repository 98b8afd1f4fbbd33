package mail

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// SubjectSend is the NATS subject outbound messages are published to
const SubjectSend = "mail.send"

// NATSDispatcher publishes messages to NATS for delivery by the mail
// subscriber. Publishing is fire-and-forget: the caller's operation has
// already committed by the time a message is dispatched.
type NATSDispatcher struct {
	conn *nats.Conn
}

// NewNATSDispatcher creates a NATS-backed dispatcher
func NewNATSDispatcher(conn *nats.Conn) *NATSDispatcher {
	return &NATSDispatcher{conn: conn}
}

// Dispatch publishes the message to the send subject
func (d *NATSDispatcher) Dispatch(ctx context.Context, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("recipient", msg.To).Msg("Failed to encode mail message")
		return
	}
	if err := d.conn.Publish(SubjectSend, data); err != nil {
		log.Error().Err(err).Str("recipient", msg.To).Msg("Failed to publish mail message")
	}
}

// AsyncDispatcher delivers messages on a background goroutine through a
// Sender. Used when no NATS server is configured.
type AsyncDispatcher struct {
	sender Sender
}

// NewAsyncDispatcher creates a goroutine-backed dispatcher
func NewAsyncDispatcher(sender Sender) *AsyncDispatcher {
	return &AsyncDispatcher{sender: sender}
}

// Dispatch sends the message in the background. Delivery errors are
// logged, never surfaced to the caller.
func (d *AsyncDispatcher) Dispatch(ctx context.Context, msg Message) {
	go func() {
		if err := d.sender.Send(context.Background(), msg); err != nil {
			log.Error().Err(err).Str("recipient", msg.To).Msg("Failed to deliver mail")
		}
	}()
}

// DecodeMessage decodes a published mail message payload
func DecodeMessage(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("decode mail message: %w", err)
	}
	return msg, nil
}
