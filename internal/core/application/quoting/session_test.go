package quoting_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"printshop/internal/core/application/quoting"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/decoration"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCalculator prices a request at 1.00 per unit. Quantities listed in
// gates block until their channel is closed.
type fakeCalculator struct {
	mu    sync.Mutex
	calls []int
	gates map[int]chan struct{}
}

func newFakeCalculator() *fakeCalculator {
	return &fakeCalculator{gates: map[int]chan struct{}{}}
}

func (f *fakeCalculator) gate(qty int) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[qty] = ch
	return ch
}

func (f *fakeCalculator) Handle(ctx context.Context, q queries.CalculatePricingQuery) (pricing.Result, error) {
	qty := q.Request().Quantity()

	f.mu.Lock()
	f.calls = append(f.calls, qty)
	gate := f.gates[qty]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
		}
	}

	total := kernel.MoneyFromInt(int64(qty))
	return pricing.Result{
		UnitPrice:  pricing.UnitPriceOf(total, qty),
		TotalPrice: total,
		Subtotal:   total,
		Source:     pricing.SourceRemote,
	}, nil
}

func (f *fakeCalculator) Calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.calls...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func params(qty int) decoration.RequestParams {
	return decoration.RequestParams{
		Method:     "screen-printing",
		Quantity:   qty,
		ColorCount: 1,
		Locations:  []string{"front-center"},
	}
}

func latestSeq(s *quoting.Session) func() uint64 {
	return func() uint64 {
		snap, _ := s.Latest()
		return snap.Seq
	}
}

func TestSession_LastRequestWins(t *testing.T) {
	calc := newFakeCalculator()
	slow := calc.gate(10)
	s := quoting.NewSession(calc, 0, nil, discardLogger())

	first, err := s.Submit(t.Context(), params(10))
	require.NoError(t, err)
	second, err := s.Submit(t.Context(), params(50))
	require.NoError(t, err)
	require.Greater(t, second, first)

	require.Eventually(t, func() bool { return latestSeq(s)() == second }, time.Second, time.Millisecond)

	// the response for 10 arrives after the one for 50
	close(slow)
	s.Close()

	snap, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, second, snap.Seq)
	require.NotNil(t, snap.Result)
	assert.Equal(t, "50.00", snap.Result.TotalPrice.String())
	assert.ElementsMatch(t, []int{10, 50}, calc.Calls())
}

func TestSession_Debounce(t *testing.T) {
	calc := newFakeCalculator()
	s := quoting.NewSession(calc, 50*time.Millisecond, nil, discardLogger())
	defer s.Close()

	var last uint64
	for _, qty := range []int{1, 12, 120} {
		seq, err := s.Submit(t.Context(), params(qty))
		require.NoError(t, err)
		last = seq
	}

	require.Eventually(t, func() bool { return latestSeq(s)() == last }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{120}, calc.Calls())

	snap, _ := s.Latest()
	assert.Equal(t, "120.00", snap.Result.TotalPrice.String())
}

func TestSession_NoQuantityClearsImmediately(t *testing.T) {
	calc := newFakeCalculator()
	s := quoting.NewSession(calc, time.Hour, nil, discardLogger())
	defer s.Close()

	_, err := s.Submit(t.Context(), params(10))
	require.NoError(t, err)
	seq, err := s.Submit(t.Context(), params(0))
	require.NoError(t, err)

	snap, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, seq, snap.Seq)
	assert.Nil(t, snap.Result)
	require.NoError(t, snap.Err)
	assert.Empty(t, calc.Calls())
}

func TestSession_MalformedInput(t *testing.T) {
	s := quoting.NewSession(newFakeCalculator(), 0, nil, discardLogger())
	defer s.Close()

	p := params(10)
	p.Locations = nil
	seq, err := s.Submit(t.Context(), p)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return latestSeq(s)() == seq }, time.Second, time.Millisecond)
	snap, _ := s.Latest()
	assert.Nil(t, snap.Result)
	assert.ErrorIs(t, snap.Err, decoration.ErrMalformedInput)
}

func TestSession_Close(t *testing.T) {
	calc := newFakeCalculator()
	calc.gate(10)
	s := quoting.NewSession(calc, 0, nil, discardLogger())

	_, err := s.Submit(t.Context(), params(10))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(calc.Calls()) == 1 }, time.Second, time.Millisecond)

	// Close cancels the blocked calculation and waits for it
	s.Close()
	s.Close()

	_, err = s.Submit(t.Context(), params(20))
	assert.ErrorIs(t, err, quoting.ErrSessionClosed)
}

func TestSession_SubmitOutlivesRequestContext(t *testing.T) {
	calc := newFakeCalculator()
	s := quoting.NewSession(calc, 10*time.Millisecond, nil, discardLogger())
	defer s.Close()

	ctx, cancel := context.WithCancel(t.Context())
	seq, err := s.Submit(ctx, params(5))
	require.NoError(t, err)
	cancel()

	require.Eventually(t, func() bool { return latestSeq(s)() == seq }, time.Second, time.Millisecond)
	snap, _ := s.Latest()
	require.NotNil(t, snap.Result)
}
