package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rizalfahlevi/intern-outreach/internal/config"
	mail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type Attachment struct {
	Filename string
	Content  []byte
}

type OutboundMessage struct {
	From        string
	To          []string
	ReplyTo     string
	Subject     string
	HTMLBody    string
	MessageID   string
	InReplyTo   string
	References  string
	ThreadID    string
	Attachments []Attachment
}

type MailServiceInterface interface {
	Send(ctx context.Context, msg *OutboundMessage) error
}

type MailService struct {
	client *mail.Client
	log    *zap.Logger
}

func NewMailService(log *zap.Logger) (*MailService, error) {
	cfg := config.LoadMailConfig()
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST not set")
	}
	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUser),
		mail.WithPassword(cfg.SMTPPass),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &MailService{client: client, log: log}, nil
}

// Send delivers one message and returns only after the SMTP dialog has
// finished, so callers persist logs strictly after a confirmed send.
func (s *MailService) Send(ctx context.Context, msg *OutboundMessage) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients")
	}

	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return fmt.Errorf("invalid sender %q: %w", msg.From, err)
	}
	if err := m.To(msg.To...); err != nil {
		return fmt.Errorf("invalid recipients %v: %w", msg.To, err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("invalid reply-to %q: %w", msg.ReplyTo, err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)

	if msg.MessageID != "" {
		m.SetMessageIDWithValue(msg.MessageID)
	}
	if msg.InReplyTo != "" {
		m.SetGenHeader(mail.HeaderInReplyTo, msg.InReplyTo)
	}
	if msg.References != "" {
		m.SetGenHeader(mail.HeaderReferences, msg.References)
	}
	if msg.ThreadID != "" {
		m.SetGenHeader("X-Thread-ID", msg.ThreadID)
	}

	for _, att := range msg.Attachments {
		if err := m.AttachReader(att.Filename, bytes.NewReader(att.Content)); err != nil {
			return fmt.Errorf("attach %s: %w", att.Filename, err)
		}
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	s.log.Info("email sent",
		zap.String("subject", msg.Subject),
		zap.Strings("to", msg.To),
		zap.String("message_id", msg.MessageID))
	return nil
}
