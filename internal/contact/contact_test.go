package contact

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRelay records deliveries and the submitter state seen mid-call.
type fakeRelay struct {
	mu      sync.Mutex
	err     error
	calls   []Message
	during  []State
	sub     *Submitter
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeRelay) Deliver(ctx context.Context, msg Message) error {
	f.mu.Lock()
	f.calls = append(f.calls, msg)
	if f.sub != nil {
		f.during = append(f.during, f.sub.State())
	}
	f.mu.Unlock()
	if f.entered != nil {
		close(f.entered)
	}
	if f.block != nil {
		<-f.block
	}
	return f.err
}

func (f *fakeRelay) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var testMeta = Metadata{Subject: "New message from cesarkdiab.com", Template: "table"}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func filled(t *testing.T, s *Submitter) {
	t.Helper()
	require.NoError(t, s.Update(FieldName, "Jane Doe"))
	require.NoError(t, s.Update(FieldEmail, "jane@example.com"))
	require.NoError(t, s.Update(FieldMessage, "Hello there"))
}

func newSubmitter(relay *fakeRelay) (*Submitter, *[]State) {
	s := NewSubmitter(relay, testMeta, quietLogger())
	relay.sub = s
	var states []State
	s.OnTransition(func(st State) { states = append(states, st) })
	return s, &states
}

func TestForm_Apply(t *testing.T) {
	var f Form
	f, err := f.Apply(FieldName, "Jane")
	require.NoError(t, err)
	f, err = f.Apply(FieldEmail, "jane@example.com")
	require.NoError(t, err)
	f, err = f.Apply(FieldMessage, "hi")
	require.NoError(t, err)
	f, err = f.Apply(FieldHoney, "")
	require.NoError(t, err)
	assert.Equal(t, Form{Name: "Jane", Email: "jane@example.com", Message: "hi"}, f)

	orig := Form{Name: "Jane"}
	updated, err := orig.Apply(FieldName, "John")
	require.NoError(t, err)
	assert.Equal(t, "Jane", orig.Name, "Apply does not mutate the receiver")
	assert.Equal(t, "John", updated.Name)

	_, err = orig.Apply("phone", "555")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestForm_Validate(t *testing.T) {
	assert.NoError(t, Form{Name: "a", Email: "a@b.co", Message: "m"}.Validate())

	err := Form{Email: "not-an-email"}.Validate()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, ValidationErrors{
		FieldName:    "This field is required.",
		FieldEmail:   "Enter a valid email address.",
		FieldMessage: "This field is required.",
	}, verrs)
}

func TestSubmit_Success(t *testing.T) {
	relay := &fakeRelay{}
	s, states := newSubmitter(relay)
	filled(t, s)
	require.Equal(t, StateIdle, s.State())

	st, attempted := s.Submit(context.Background())

	require.True(t, attempted)
	assert.Equal(t, Status{OK: true, Msg: MsgSent}, st)
	assert.Equal(t, []State{StateSending, StateSucceeded}, *states)
	assert.Equal(t, []State{StateSending}, relay.during)
	assert.Equal(t, Form{}, s.Form(), "fields are cleared after success")
	require.Len(t, relay.calls, 1)
	assert.Equal(t, Message{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Message:  "Hello there",
		Subject:  "New message from cesarkdiab.com",
		Template: "table",
	}, relay.calls[0])
}

func TestSubmit_Failure(t *testing.T) {
	relay := &fakeRelay{err: &RelayError{StatusCode: http.StatusInternalServerError}}
	s, states := newSubmitter(relay)
	filled(t, s)

	st, attempted := s.Submit(context.Background())

	require.True(t, attempted)
	assert.Equal(t, Status{OK: false, Msg: MsgFailed}, st)
	assert.NotContains(t, st.Msg, "500")
	assert.Equal(t, []State{StateSending, StateFailed}, *states)
	assert.Equal(t, StateFailed, s.State())
	assert.Equal(t, Form{Name: "Jane Doe", Email: "jane@example.com", Message: "Hello there"}, s.Form(), "fields are kept after failure")
}

func TestSubmit_HoneypotIsSilent(t *testing.T) {
	relay := &fakeRelay{}
	s, states := newSubmitter(relay)
	filled(t, s)
	require.NoError(t, s.Update(FieldHoney, "http://spam.example"))

	st, attempted := s.Submit(context.Background())

	assert.False(t, attempted)
	assert.Equal(t, Status{}, st)
	assert.Equal(t, Status{}, s.Status())
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, *states)
	assert.Zero(t, relay.callCount())
}

func TestSubmit_HoneypotKeepsPriorStatus(t *testing.T) {
	relay := &fakeRelay{err: errors.New("offline")}
	s, _ := newSubmitter(relay)
	filled(t, s)
	s.Submit(context.Background())
	require.Equal(t, MsgFailed, s.Status().Msg)

	require.NoError(t, s.Update(FieldHoney, "bot"))
	st, attempted := s.Submit(context.Background())

	assert.False(t, attempted)
	assert.Equal(t, MsgFailed, st.Msg)
	assert.Equal(t, StateFailed, s.State())
	assert.Equal(t, 1, relay.callCount())
}

func TestSubmit_RetryAfterFailureStartsOver(t *testing.T) {
	relay := &fakeRelay{err: errors.New("offline")}
	s, states := newSubmitter(relay)
	filled(t, s)
	s.Submit(context.Background())

	relay.err = nil
	st, attempted := s.Submit(context.Background())

	require.True(t, attempted)
	assert.True(t, st.OK)
	assert.Equal(t, []State{StateSending, StateFailed, StateIdle, StateSending, StateSucceeded}, *states)
	assert.Equal(t, 2, relay.callCount())
}

func TestSubmit_IgnoredWhileSending(t *testing.T) {
	relay := &fakeRelay{block: make(chan struct{}), entered: make(chan struct{})}
	s, _ := newSubmitter(relay)
	filled(t, s)

	done := make(chan bool)
	go func() {
		_, attempted := s.Submit(context.Background())
		done <- attempted
	}()
	<-relay.entered
	require.Equal(t, StateSending, s.State())

	_, attempted := s.Submit(context.Background())
	assert.False(t, attempted)

	close(relay.block)
	assert.True(t, <-done)
	assert.Equal(t, StateSucceeded, s.State())
	assert.Equal(t, 1, relay.callCount())
}

func TestSubmit_OnDelivered(t *testing.T) {
	relay := &fakeRelay{}
	s, _ := newSubmitter(relay)
	filled(t, s)

	var got []error
	s.OnDelivered(func(err error, took time.Duration) {
		got = append(got, err)
		assert.GreaterOrEqual(t, took, time.Duration(0))
	})
	s.Submit(context.Background())

	assert.Equal(t, []error{nil}, got)
}

func TestSubmit_ObserverAddedMidAttempt(t *testing.T) {
	relay := &fakeRelay{}
	s, states := newSubmitter(relay)
	filled(t, s)

	var late []State
	s.OnTransition(func(st State) {
		if st == StateSending {
			s.OnTransition(func(st State) { late = append(late, st) })
		}
	})

	_, attempted := s.Submit(context.Background())
	require.True(t, attempted)
	assert.Equal(t, []State{StateSending, StateSucceeded}, *states)
	assert.Equal(t, []State{StateSucceeded}, late)
}

func TestFormSubmitRelay_Deliver(t *testing.T) {
	var gotBody map[string]string
	var gotHeader http.Header
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotHeader = r.Method, r.URL.Path, r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":"true"}`))
	}))
	defer srv.Close()

	relay := NewFormSubmitRelay(srv.URL+"/ajax/owner@example.com", srv.Client(), time.Second)
	err := relay.Deliver(context.Background(), Message{
		Name: "Jane", Email: "jane@example.com", Message: "hi",
		Subject: "New message", Template: "table",
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/ajax/owner@example.com", gotPath)
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, "application/json", gotHeader.Get("Accept"))
	assert.Equal(t, map[string]string{
		"name":      "Jane",
		"email":     "jane@example.com",
		"message":   "hi",
		"_subject":  "New message",
		"_template": "table",
		"_captcha":  "false",
	}, gotBody)
}

func TestFormSubmitRelay_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := NewFormSubmitRelay(srv.URL, srv.Client(), time.Second).Deliver(context.Background(), Message{})

	var rerr *RelayError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusForbidden, rerr.StatusCode)
}

func TestFormSubmitRelay_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	relay := NewFormSubmitRelay(srv.URL, nil, 50*time.Millisecond)
	err := relay.Deliver(context.Background(), Message{})
	assert.Error(t, err)
}

func TestFormSubmitRelay_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewFormSubmitRelay(url, nil, time.Second).Deliver(context.Background(), Message{})
	assert.Error(t, err)
}

func TestSMTPRelay_Deliver(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	relay := NewSMTPRelay(SMTPConfig{Host: "smtp.example.com", Port: "587", User: "me@example.com", Pass: "secret", To: "owner@example.com"})
	relay.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := relay.Deliver(context.Background(), Message{
		Name: "Jane", Email: "jane@example.com\r\nBcc: x@evil.example", Message: "hi", Subject: "New message",
	})

	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "me@example.com", gotFrom)
	assert.Equal(t, []string{"owner@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: New message\r\n")
	assert.Contains(t, string(gotMsg), "Reply-To: jane@example.comBcc: x@evil.example\r\n")
	assert.NotContains(t, string(gotMsg), "\r\nBcc:")
	assert.NotContains(t, string(gotMsg), "\nBcc:")
	assert.Contains(t, string(gotMsg), "Email: jane@example.comBcc: x@evil.example\n")
}

func TestSMTPRelay_KeepsMessageLines(t *testing.T) {
	var gotMsg []byte
	relay := NewSMTPRelay(SMTPConfig{Host: "smtp.example.com", Port: "587", User: "me@example.com", Pass: "secret", To: "owner@example.com"})
	relay.send = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotMsg = msg
		return nil
	}

	err := relay.Deliver(context.Background(), Message{Name: "Jane\nDoe", Email: "jane@example.com", Message: "line one\nline two"})

	require.NoError(t, err)
	assert.Contains(t, string(gotMsg), "Name: JaneDoe\n")
	assert.Contains(t, string(gotMsg), "line one\nline two")
}

func TestSMTPRelay_NotConfigured(t *testing.T) {
	err := NewSMTPRelay(SMTPConfig{Host: "smtp.example.com", Port: "587"}).Deliver(context.Background(), Message{})
	assert.ErrorIs(t, err, ErrSMTPNotConfigured)
}
