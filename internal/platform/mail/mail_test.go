// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	sender, err := New(Settings{Backend: "log"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, sender)

	sender, err = New(Settings{Backend: "smtp", Host: "localhost", Port: "25"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, sender)

	_, err = New(Settings{Backend: "pigeon"}, logger)
	assert.Error(t, err)
}

func TestLogSender_Send(t *testing.T) {
	var buffer bytes.Buffer
	sender := NewLogSender(slog.New(slog.NewJSONHandler(&buffer, nil)))

	err := sender.Send(context.Background(), Message{To: "ann@example.com", Subject: "Hi", Body: "code"})
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	assert.Equal(t, "mail_logged", entry["msg"])
	assert.Equal(t, "ann@example.com", entry["to"])

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sender.Send(cancelled, Message{}), context.Canceled)
}

func TestSMTPSender_Compose(t *testing.T) {
	sender := NewSMTPSender(Settings{From: "no-reply@yamdb.local"})

	raw := string(sender.compose(Message{To: "ann@example.com", Subject: "Code", Body: "line1\nline2"}))
	assert.Contains(t, raw, "From: no-reply@yamdb.local\r\n")
	assert.Contains(t, raw, "Subject: Code\r\n")
	assert.Contains(t, raw, "\r\n\r\nline1\r\nline2\r\n")
}
