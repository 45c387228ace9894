package contact

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Metadata is attached to every outbound message.
type Metadata struct {
	Subject  string
	Template string
	Captcha  bool
}

// Submitter owns one contact form instance and drives
// Idle -> Sending -> Succeeded|Failed. The next Submit starts over.
type Submitter struct {
	relay  Relay
	meta   Metadata
	logger *slog.Logger

	mu           sync.Mutex
	form         Form
	state        State
	status       Status
	onTransition []func(State)
	onDelivered  []func(err error, took time.Duration)
}

func NewSubmitter(relay Relay, meta Metadata, logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{relay: relay, meta: meta, logger: logger}
}

// Update applies one field edit.
func (s *Submitter) Update(field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.form.Apply(field, value)
	if err != nil {
		return err
	}
	s.form = f
	return nil
}

func (s *Submitter) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Submitter) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// OnTransition registers fn to run on every state change.
func (s *Submitter) OnTransition(fn func(State)) {
	s.mu.Lock()
	s.onTransition = append(s.onTransition, fn)
	s.mu.Unlock()
}

// OnDelivered registers fn to run after each relay call with its result and
// duration.
func (s *Submitter) OnDelivered(fn func(err error, took time.Duration)) {
	s.mu.Lock()
	s.onDelivered = append(s.onDelivered, fn)
	s.mu.Unlock()
}

// Submit sends the current form through the relay and reports whether an
// attempt was made. It returns false without touching any state when the
// honeypot is filled or another attempt is still sending. Relay failures are
// logged and turned into the generic failure status; they are never returned.
func (s *Submitter) Submit(ctx context.Context) (Status, bool) {
	s.mu.Lock()
	if s.form.IsBot() || s.state == StateSending {
		st := s.status
		s.mu.Unlock()
		return st, false
	}
	form := s.form
	s.status = Status{}
	var starting []func()
	if s.state.Settled() {
		starting = append(starting, s.setState(StateIdle))
	}
	starting = append(starting, s.setState(StateSending))
	s.mu.Unlock()
	for _, notify := range starting {
		notify()
	}

	id := uuid.NewString()
	start := time.Now()
	err := s.relay.Deliver(ctx, Message{
		Name:     form.Name,
		Email:    form.Email,
		Message:  form.Message,
		Subject:  s.meta.Subject,
		Template: s.meta.Template,
		Captcha:  s.meta.Captcha,
	})
	took := time.Since(start)

	var notify func()
	s.mu.Lock()
	if err != nil {
		s.logger.Warn("contact relay failed", "submission", id, "took", took, "error", err)
		s.status = Status{OK: false, Msg: MsgFailed}
		notify = s.setState(StateFailed)
	} else {
		s.logger.Info("contact message sent", "submission", id, "took", took)
		s.status = Status{OK: true, Msg: MsgSent}
		s.form = Form{}
		notify = s.setState(StateSucceeded)
	}
	st := s.status
	delivered := slices.Clone(s.onDelivered)
	s.mu.Unlock()

	for _, fn := range delivered {
		fn(err, took)
	}
	notify()
	return st, true
}

// setState must be called with mu held. The returned func runs the
// observers and must be called after unlocking.
func (s *Submitter) setState(st State) func() {
	s.state = st
	fns := slices.Clone(s.onTransition)
	return func() {
		for _, fn := range fns {
			fn(st)
		}
	}
}
