// Package email formats and sends owner notifications over SMTP.
package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"unicode"

	"github.com/marsadembi/portfolio/internal/comment"
)

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// IsConfigured returns true if SMTP settings are present.
func (c SMTPConfig) IsConfigured() bool {
	return c.Host != "" && c.From != ""
}

// implicitTLS reports whether the server expects TLS from the first byte (SMTPS).
func (c SMTPConfig) implicitTLS() bool {
	return c.Port == "465"
}

// SendFunc delivers one message. Send is the production implementation.
type SendFunc func(ctx context.Context, cfg SMTPConfig, to []string, subject, body string) error

// Notifier emails the site owner about new comments.
type Notifier struct {
	cfg     SMTPConfig
	to      string
	baseURL string
	send    SendFunc
}

// NewNotifier returns a notifier, or nil when SMTP or the owner address
// is not configured.
func NewNotifier(cfg SMTPConfig, owner, baseURL string) *Notifier {
	if !cfg.IsConfigured() || owner == "" {
		return nil
	}
	return &Notifier{cfg: cfg, to: owner, baseURL: baseURL, send: Send}
}

// NotifyNewComment implements comment.Notifier. The send is bounded by ctx.
func (n *Notifier) NotifyNewComment(ctx context.Context, c *comment.Comment) error {
	subject, body := FormatNotification(c, n.baseURL)
	return n.send(ctx, n.cfg, []string{n.to}, subject, body)
}

// FormatNotification builds the subject and plain-text body for a new comment.
// The subject is a single header line, RFC 2047 encoded when it is not ASCII.
func FormatNotification(c *comment.Comment, baseURL string) (string, string) {
	subject := mime.QEncoding.Encode("utf-8", "New comment from "+headerText(c.Name))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s <%s> left a comment", c.Name, c.Email)
	if c.Rating != nil {
		fmt.Fprintf(&buf, " and rated %d / 5", *c.Rating)
	}
	fmt.Fprintf(&buf, ":\n\n")

	for _, line := range strings.Split(c.Message, "\n") {
		fmt.Fprintf(&buf, "> %s\n", line)
	}

	fmt.Fprintf(&buf, "\nPosted %s\n", c.CreatedAt.Format("2006-01-02 15:04 MST"))
	if baseURL != "" {
		fmt.Fprintf(&buf, "%s/#contact\n", strings.TrimRight(baseURL, "/"))
	}

	return subject, buf.String()
}

// headerText replaces control characters so s cannot end a header line.
func headerText(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// Send sends an email via SMTP.
// Supports both port 465 (implicit TLS) and port 587 (STARTTLS).
// Dialing and every exchange with the server stop at ctx's deadline or
// cancellation.
func Send(ctx context.Context, cfg SMTPConfig, to []string, subject, body string) (err error) {
	if !cfg.IsConfigured() {
		return fmt.Errorf("SMTP not configured")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		cfg.From,
		strings.Join(to, ", "),
		headerText(subject),
		body,
	)

	c, stop, err := dial(ctx, cfg, cfg.implicitTLS())
	if err != nil {
		return err
	}
	defer stop()
	defer func() {
		if quitErr := c.Quit(); quitErr != nil && err == nil {
			err = fmt.Errorf("quit: %w", quitErr)
		}
	}()

	if !cfg.implicitTLS() {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: cfg.Host}); err != nil {
				return contextErr(ctx, fmt.Errorf("starttls: %w", err))
			}
		}
	}

	if err := deliver(c, cfg, to, msg); err != nil {
		return contextErr(ctx, err)
	}
	return nil
}

// dial connects to the server and reads its greeting. The returned stop
// func releases the cancellation hook and closes the connection.
func dial(ctx context.Context, cfg SMTPConfig, implicitTLS bool) (*smtp.Client, func(), error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)

	var d net.Dialer
	raw, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("dialing %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := raw.SetDeadline(deadline); err != nil {
			_ = raw.Close()
			return nil, nil, fmt.Errorf("setting deadline: %w", err)
		}
	}
	release := context.AfterFunc(ctx, func() { _ = raw.Close() })
	stop := func() {
		release()
		_ = raw.Close()
	}

	conn := raw
	if implicitTLS {
		conn = tls.Client(raw, &tls.Config{ServerName: cfg.Host})
	}

	c, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		stop()
		return nil, nil, contextErr(ctx, fmt.Errorf("creating SMTP client: %w", err))
	}
	return c, stop, nil
}

func deliver(c *smtp.Client, cfg SMTPConfig, to []string, msg string) error {
	if cfg.User != "" {
		auth := smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt to %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data: %w", err)
	}

	return nil
}

// contextErr marks err with ctx's error when ctx ended the exchange.
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return fmt.Errorf("%w: %w", ctxErr, err)
	}
	return err
}
