// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// SMTPSender relays messages through an SMTP server.
type SMTPSender struct {
	settings Settings
	dialer   net.Dialer
}

// NewSMTPSender creates an [SMTPSender].
func NewSMTPSender(settings Settings) *SMTPSender {
	return &SMTPSender{settings: settings}
}

// Send implements [Sender]. The whole SMTP exchange shares the context deadline.
func (sender *SMTPSender) Send(ctx context.Context, message Message) error {
	address := net.JoinHostPort(sender.settings.Host, sender.settings.Port)

	connection, err := sender.dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("mail: dial %s: %w", address, err)
	}
	defer connection.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = connection.SetDeadline(deadline)
	}

	// Unblock the exchange if the context is cancelled mid-conversation
	stop := context.AfterFunc(ctx, func() { _ = connection.SetDeadline(time.Now()) })
	defer stop()

	client, err := smtp.NewClient(connection, sender.settings.Host)
	if err != nil {
		return fmt.Errorf("mail: handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: sender.settings.Host}); err != nil {
			return fmt.Errorf("mail: starttls: %w", err)
		}
	}

	if sender.settings.Username != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", sender.settings.Username, sender.settings.Password, sender.settings.Host)
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("mail: auth: %w", err)
			}
		}
	}

	if err := client.Mail(sender.settings.From); err != nil {
		return fmt.Errorf("mail: MAIL FROM: %w", err)
	}
	if err := client.Rcpt(message.To); err != nil {
		return fmt.Errorf("mail: RCPT TO: %w", err)
	}

	body, err := client.Data()
	if err != nil {
		return fmt.Errorf("mail: DATA: %w", err)
	}
	if _, err := body.Write(sender.compose(message)); err != nil {
		return fmt.Errorf("mail: write body: %w", err)
	}
	if err := body.Close(); err != nil {
		return fmt.Errorf("mail: close body: %w", err)
	}

	return client.Quit()
}

func (sender *SMTPSender) compose(message Message) []byte {
	var builder strings.Builder
	fmt.Fprintf(&builder, "From: %s\r\n", sender.settings.From)
	fmt.Fprintf(&builder, "To: %s\r\n", message.To)
	fmt.Fprintf(&builder, "Subject: %s\r\n", message.Subject)
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	builder.WriteString(strings.ReplaceAll(message.Body, "\n", "\r\n"))
	builder.WriteString("\r\n")
	return []byte(builder.String())
}
