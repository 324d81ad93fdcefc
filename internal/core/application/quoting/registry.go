package quoting

import (
	"log/slog"
	"sync"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"

	"github.com/google/uuid"
)

// SessionGauge receives the number of open sessions after every change.
type SessionGauge interface {
	SetQuoteSessions(n int)
}

type nopSessionGauge struct{}

func (nopSessionGauge) SetQuoteSessions(int) {}

// Registry owns the quote sessions of all connected forms, keyed by a
// client-chosen UUID.
type Registry struct {
	calc   Calculator
	window time.Duration
	clock  kernel.Clock
	gauge  SessionGauge
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewRegistry(calc Calculator, window time.Duration, clock kernel.Clock, gauge SessionGauge, logger *slog.Logger) *Registry {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	if gauge == nil {
		gauge = nopSessionGauge{}
	}
	return &Registry{
		calc:     calc,
		window:   window,
		clock:    clock,
		gauge:    gauge,
		logger:   logger.With("component", "quote_session_registry"),
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Session returns the session for id, creating it on first use.
func (r *Registry) Session(id string) (*Session, error) {
	key, err := parseSessionID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[key]; ok {
		return s, nil
	}
	s := NewSession(r.calc, r.window, r.clock, r.logger.With("session_id", key.String()))
	r.sessions[key] = s
	r.gauge.SetQuoteSessions(len(r.sessions))
	return s, nil
}

// Lookup returns an existing session without creating one.
func (r *Registry) Lookup(id string) (*Session, error) {
	key, err := parseSessionID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[key]
	if !ok {
		return nil, errs.NewObjectNotFoundError("sessionID", key)
	}
	return s, nil
}

// EvictIdle closes every session without a Submit for longer than ttl and
// returns how many were closed.
func (r *Registry) EvictIdle(ttl time.Duration) int {
	cutoff := r.clock.Now().Add(-ttl)

	r.mu.Lock()
	var idle []*Session
	for id, s := range r.sessions {
		if s.LastActivity().Before(cutoff) {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	r.gauge.SetQuoteSessions(len(r.sessions))
	r.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	return len(idle)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close closes every session.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[uuid.UUID]*Session)
	r.gauge.SetQuoteSessions(0)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

func parseSessionID(id string) (uuid.UUID, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, errs.NewValueIsInvalidErrorWithCause("sessionID", err)
	}
	if key == uuid.Nil {
		return uuid.Nil, errs.NewValueIsRequiredError("sessionID")
	}
	return key, nil
}
