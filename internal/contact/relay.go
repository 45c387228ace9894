package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Message is what a Relay delivers: the visitor's fields plus fixed
// metadata for the relay service.
type Message struct {
	Name    string
	Email   string
	Message string
	Subject string
	// Template is the relay's formatting template, e.g. "table".
	Template string
	// Captcha enables the relay's own captcha step. Submissions reaching
	// the relay already passed the honeypot, so it is normally off.
	Captcha bool
}

// Relay delivers a message to the site owner.
type Relay interface {
	Deliver(ctx context.Context, msg Message) error
}

// RelayError is returned when the relay answers with a non-2xx status.
type RelayError struct {
	StatusCode int
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("relay rejected message: HTTP %d", e.StatusCode)
}

// FormSubmitRelay posts messages to a FormSubmit AJAX endpoint such as
// https://formsubmit.co/ajax/<address>. It never retries.
type FormSubmitRelay struct {
	endpoint string
	client   *http.Client
}

// NewFormSubmitRelay returns a relay for endpoint. A nil client gets a
// default one with the given timeout.
func NewFormSubmitRelay(endpoint string, client *http.Client, timeout time.Duration) *FormSubmitRelay {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &FormSubmitRelay{endpoint: endpoint, client: client}
}

type formSubmitPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	Subject  string `json:"_subject"`
	Template string `json:"_template"`
	Captcha  string `json:"_captcha"`
}

func (r *FormSubmitRelay) Deliver(ctx context.Context, msg Message) error {
	body, err := json.Marshal(formSubmitPayload{
		Name:     msg.Name,
		Email:    msg.Email,
		Message:  msg.Message,
		Subject:  msg.Subject,
		Template: msg.Template,
		Captcha:  fmt.Sprint(msg.Captcha),
	})
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to relay: %w", err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused; the body itself is not used.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RelayError{StatusCode: resp.StatusCode}
	}
	return nil
}
