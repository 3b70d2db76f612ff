package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/nimbuslabs/nimbus/pkg/slogx"
)

// Config holds the SMTP connection settings.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// SMTPSender delivers messages over plain SMTP with AUTH PLAIN and STARTTLS
// as negotiated by net/smtp.
type SMTPSender struct {
	cfg Config
}

// NewSender returns an SMTP-backed sender, or a LogSender when no SMTP
// credentials are configured so local development works without a mail
// account.
func NewSender(cfg Config) Sender {
	if cfg.Username == "" || cfg.Password == "" {
		return &LogSender{}
	}
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTMLBody)
	b.WriteString("\r\n")

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

// LogSender writes message metadata to the log instead of delivering it.
// Used in development and as the default when SMTP is not configured.
type LogSender struct{}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	slogx.FromContext(ctx).Info("email delivery skipped (no smtp configured)",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
