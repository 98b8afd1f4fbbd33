// Package mail handles outbound transactional email and its dispatch.
package mail

import (
	"context"
	"regexp"
)

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Attachment is a single file attached to a message
type Attachment struct {
	Filename string `json:"filename"`
	Content  []byte `json:"content"`
}

// Message is an outbound email
type Message struct {
	To         string      `json:"to"`
	Subject    string      `json:"subject"`
	Body       string      `json:"body"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// ValidRecipient reports whether the recipient looks like an email address
func ValidRecipient(addr string) bool {
	return emailRe.MatchString(addr)
}

// Sender delivers a message in a single attempt. Delivery failures are not
// retried; the error is surfaced to the caller.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher queues a message for best-effort delivery after the caller's
// record commit. Dispatch never fails the caller; delivery errors are only
// logged.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message)
}
