package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/libriverse/libriverse/pkg/config"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

const dialTimeout = 30 * time.Second

// Mailer sends transactional mail. The only message Libriverse sends is
// the password-reset verification code.
type Mailer interface {
	SendResetCode(ctx context.Context, to, code string) error
}

// New returns an SMTP-backed mailer when SMTP is configured, and a
// log-only mailer otherwise (development and tests).
func New(cfg *config.Config) Mailer {
	if cfg.SMTP.Enabled {
		return &smtpMailer{cfg: cfg.SMTP}
	}
	return &logMailer{log: logger.New()}
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

func (m *smtpMailer) SendResetCode(ctx context.Context, to, code string) error {
	msg := m.buildMessage(to, code)
	return m.send(ctx, to, msg)
}

func (m *smtpMailer) buildMessage(to, code string) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: Libriverse <%s>\r\n", m.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString("Subject: Your Libriverse password reset code\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(fmt.Sprintf("Your verification code is %s. It expires in 15 minutes.\r\n", code))
	msg.WriteString("If you didn't request a password reset, you can ignore this email.\r\n")

	return msg.String()
}

func (m *smtpMailer) send(ctx context.Context, to, msg string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrap(err, "failed to connect to SMTP server")
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return errors.Wrap(err, "failed to create SMTP client")
	}
	defer client.Close()

	if m.cfg.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: m.cfg.Host,
			MinVersion: tls.VersionTLS12,
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return errors.Wrap(err, "failed to start TLS")
		}
	}

	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return errors.Wrap(err, "SMTP authentication failed")
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return errors.Wrap(err, "failed to set sender")
	}
	if err := client.Rcpt(to); err != nil {
		return errors.Wrap(err, "failed to set recipient")
	}

	writer, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "failed to start message")
	}
	if _, err := writer.Write([]byte(msg)); err != nil {
		return errors.Wrap(err, "failed to write message")
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "failed to close message")
	}

	// A failed QUIT after a successful DATA is not a delivery failure.
	_ = client.Quit()

	return nil
}

// logMailer logs the code instead of sending it.
type logMailer struct {
	log logger.Logger
}

func (m *logMailer) SendResetCode(_ context.Context, to, code string) error {
	m.log.Info("password reset code (smtp disabled)", logger.Data{"to": to, "code": code})
	return nil
}
