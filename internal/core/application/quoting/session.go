package quoting

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/decoration"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/pricing"
)

// DefaultDebounceWindow is how long a Session waits for input to settle.
const DefaultDebounceWindow = 300 * time.Millisecond

// ErrSessionClosed is reported by Submit on a closed session.
var ErrSessionClosed = errors.New("quote session closed")

// Calculator prices a single query.
type Calculator interface {
	Handle(ctx context.Context, query queries.CalculatePricingQuery) (pricing.Result, error)
}

// Snapshot is the latest applied outcome of a Session.
//
// Result is nil when the submission had no quantity or could not be priced;
// Err then tells which.
type Snapshot struct {
	Seq       uint64
	Result    *pricing.Result
	Err       error
	AppliedAt time.Time
}

// Session debounces and sequences quote requests for one form.
type Session struct {
	calc   Calculator
	window time.Duration
	clock  kernel.Clock
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu           sync.Mutex
	issued       uint64
	applied      uint64
	timer        *time.Timer
	latest       Snapshot
	hasLatest    bool
	closed       bool
	lastActivity time.Time
}

// NewSession creates a session. A window of 0 prices every submission
// immediately.
func NewSession(calc Calculator, window time.Duration, clock kernel.Clock, logger *slog.Logger) *Session {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		calc:         calc,
		window:       window,
		clock:        clock,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
		lastActivity: clock.Now(),
	}
}

// Submit queues params for pricing and returns its sequence number. A pending
// submission that has not started yet is dropped in favour of this one.
//
// A quantity of 0 or less clears the quote at once without calling the
// pricing service. Submit returns 0 and ErrSessionClosed after Close.
func (s *Session) Submit(ctx context.Context, params decoration.RequestParams) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrSessionClosed
	}

	s.issued++
	seq := s.issued
	s.lastActivity = s.clock.Now()

	if s.timer != nil && s.timer.Stop() {
		s.wg.Done()
	}
	s.timer = nil

	if params.Quantity <= 0 {
		s.applyLocked(seq, nil, nil)
		return seq, nil
	}

	// values such as request ids survive, cancellation comes from the session
	runCtx := context.WithoutCancel(ctx)

	s.wg.Add(1)
	if s.window <= 0 {
		go s.run(runCtx, seq, params)
		return seq, nil
	}
	s.timer = time.AfterFunc(s.window, func() {
		s.run(runCtx, seq, params)
	})
	return seq, nil
}

// Latest returns the most recently applied snapshot, if any.
func (s *Session) Latest() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.hasLatest
}

// LastActivity is the time of the last Submit, or of creation.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Close drops any pending submission, cancels in-flight calculations and
// waits for them to return. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil && s.timer.Stop() {
		s.wg.Done()
	}
	s.timer = nil
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Session) run(ctx context.Context, seq uint64, params decoration.RequestParams) {
	defer s.wg.Done()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	unlink := context.AfterFunc(s.ctx, cancel)
	defer unlink()

	result, err := s.calculate(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.applyLocked(seq, result, err) {
		s.logger.DebugContext(ctx, "Discarded stale quote", "seq", seq, "applied", s.applied)
	}
}

func (s *Session) calculate(ctx context.Context, params decoration.RequestParams) (*pricing.Result, error) {
	req, err := decoration.NewRequest(params)
	if err != nil {
		return nil, err
	}
	query, err := queries.NewCalculatePricingQuery(req)
	if err != nil {
		return nil, err
	}
	result, err := s.calc.Handle(ctx, query)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// applyLocked stores the outcome of seq unless a newer one is already applied.
func (s *Session) applyLocked(seq uint64, result *pricing.Result, err error) bool {
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	s.latest = Snapshot{Seq: seq, Result: result, Err: err, AppliedAt: s.clock.Now()}
	s.hasLatest = true
	return true
}
