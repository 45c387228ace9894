package contact

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig holds mail server credentials. To is the owner's inbox.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// SMTPRelay delivers messages straight through an SMTP server instead of a
// relay service.
type SMTPRelay struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPRelay(cfg SMTPConfig) *SMTPRelay {
	return &SMTPRelay{cfg: cfg, send: smtp.SendMail}
}

var ErrSMTPNotConfigured = errors.New("SMTP credentials not configured")

// Deliver sends one mail. smtp.SendMail takes no context, so ctx is only
// checked before dialing.
func (r *SMTPRelay) Deliver(ctx context.Context, msg Message) error {
	if r.cfg.User == "" || r.cfg.Pass == "" || r.cfg.To == "" {
		return ErrSMTPNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", r.cfg.User, r.cfg.Pass, r.cfg.Host)
	if err := r.send(r.cfg.Host+":"+r.cfg.Port, auth, r.cfg.User, []string{r.cfg.To}, r.compose(msg)); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

func (r *SMTPRelay) compose(msg Message) []byte {
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, headerSafe(msg.Name), headerSafe(msg.Email), msg.Message)

	var b strings.Builder
	b.WriteString("To: " + r.cfg.To + "\r\n")
	b.WriteString("Subject: " + headerSafe(msg.Subject) + "\r\n")
	b.WriteString("From: " + r.cfg.User + "\r\n")
	b.WriteString("Reply-To: " + headerSafe(msg.Email) + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")
	return []byte(b.String())
}

// headerSafe strips line breaks from single-line fields so visitor input
// cannot add headers or fake lines in the body.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
