// Package emailer delivers the rendered report over SMTP.
package emailer

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/jonesrussell/keyraces/internal/config"
	"github.com/jonesrussell/keyraces/internal/logger"
)

// ErrNoRecipients indicates the email configuration lists nobody to
// send to.
var ErrNoRecipients = errors.New("no email recipients configured")

// sendFunc matches smtp.SendMail, injected for testing.
type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Emailer sends reports to the configured recipients. The plain text
// and HTML renderings go out as one multipart/alternative message.
type Emailer struct {
	cfg  config.EmailConfig
	send sendFunc
	log  logger.Interface
}

// New creates an emailer from the given configuration.
func New(cfg config.EmailConfig, log logger.Interface) *Emailer {
	return &Emailer{
		cfg:  cfg,
		send: smtp.SendMail,
		log:  log.WithComponent("emailer"),
	}
}

// Send delivers the report body to every configured recipient. STARTTLS
// is negotiated by the transport when the server offers it.
func (e *Emailer) Send(subject, textBody, htmlBody string) error {
	if len(e.cfg.Recipients) == 0 {
		return ErrNoRecipients
	}

	msg, err := buildMessage(e.cfg.SMTP.From, e.cfg.Recipients, subject, textBody, htmlBody)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", e.cfg.SMTP.Host, e.cfg.SMTP.Port)
	auth := smtp.PlainAuth("", e.cfg.SMTP.User, e.cfg.SMTP.Password, e.cfg.SMTP.Host)

	if err := e.send(addr, auth, e.cfg.SMTP.From, e.cfg.Recipients, msg); err != nil {
		return fmt.Errorf("send report email: %w", err)
	}

	e.log.Info("report emailed",
		"recipients", len(e.cfg.Recipients),
		"subject", subject,
	)
	return nil
}

// buildMessage assembles a multipart/alternative MIME message with the
// text part first, so clients that cannot render HTML fall back to it.
func buildMessage(from string, to []string, subject, textBody, htmlBody string) ([]byte, error) {
	var b strings.Builder
	body := &strings.Builder{}
	writer := multipart.NewWriter(body)

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", writer.Boundary())
	b.WriteString("\r\n")

	if err := writePart(writer, "text/plain; charset=utf-8", textBody); err != nil {
		return nil, err
	}
	if htmlBody != "" {
		if err := writePart(writer, "text/html; charset=utf-8", htmlBody); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finish mime message: %w", err)
	}

	b.WriteString(body.String())
	return []byte(b.String()), nil
}

func writePart(writer *multipart.Writer, contentType, content string) error {
	header := textproto.MIMEHeader{"Content-Type": {contentType}}
	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create mime part: %w", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		return fmt.Errorf("write mime part: %w", err)
	}
	return nil
}
