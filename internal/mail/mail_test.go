package mail

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidRecipient(t *testing.T) {
	assert.True(t, ValidRecipient("owner@example.com"))
	assert.True(t, ValidRecipient("a.b+c@sub.example.co"))

	assert.False(t, ValidRecipient(""))
	assert.False(t, ValidRecipient("plainword"))
	assert.False(t, ValidRecipient("a@b"))
	assert.False(t, ValidRecipient("spaces in@example.com"))
}

func TestDecodeMessageRoundTrip(t *testing.T) {
	msg := Message{
		To:      "owner@example.com",
		Subject: "Expensas marzo",
		Body:    "Detalle adjunto",
		Attachment: &Attachment{
			Filename: "expensas.pdf",
			Content:  []byte("pdf-bytes"),
		},
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	got, err := DecodeMessage(data)
	require.NoError(t, err)
	assert.Equal(t, msg.To, got.To)
	assert.Equal(t, msg.Subject, got.Subject)
	assert.Equal(t, msg.Body, got.Body)
	require.NotNil(t, got.Attachment)
	assert.Equal(t, "expensas.pdf", got.Attachment.Filename)
	assert.Equal(t, []byte("pdf-bytes"), got.Attachment.Content)
}

func TestDecodeMessageRejectsGarbage(t *testing.T) {
	_, err := DecodeMessage([]byte("{not json"))
	assert.Error(t, err)
}
