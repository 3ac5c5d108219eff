// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail delivers outbound notifications.

Two backends exist:

  - [LogSender] writes messages to the structured log (development).
  - [SMTPSender] relays through an SMTP server with STARTTLS and AUTH when offered.

Senders must honor the context deadline; callers bound every send with a timeout.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"
)

// Message is a plain-text mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a [Message].
type Sender interface {
	Send(ctx context.Context, message Message) error
}

// Settings selects and configures a backend.
type Settings struct {
	Backend  string
	From     string
	Host     string
	Port     string
	Username string
	Password string
}

// New returns the sender named by settings.Backend.
func New(settings Settings, logger *slog.Logger) (Sender, error) {
	switch settings.Backend {
	case "", "log":
		return NewLogSender(logger), nil
	case "smtp":
		return NewSMTPSender(settings), nil
	default:
		return nil, fmt.Errorf("mail: unknown backend %q", settings.Backend)
	}
}

// LogSender records messages in the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a [LogSender].
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send implements [Sender].
func (sender *LogSender) Send(ctx context.Context, message Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sender.logger.InfoContext(ctx, "mail_logged",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
		slog.String("body", message.Body),
	)
	return nil
}
