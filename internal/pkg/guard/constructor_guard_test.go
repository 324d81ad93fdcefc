package guard_test

import (
	"errors"
	"sync"
	"testing"

	"printshop/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errQuoteNotConstructed = errors.New("quote must be created via newQuote")

type quote struct {
	quantity int
	guard    guard.ConstructorGuard
}

func newQuote(quantity int) (quote, error) {
	if quantity <= 0 {
		return quote{}, errors.New("quantity must be positive")
	}
	return quote{quantity: quantity, guard: guard.NewConstructorGuard()}, nil
}

func (q quote) Validate() error {
	return q.guard.Validate(errQuoteNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	t.Run("constructor_built_value_is_valid", func(t *testing.T) {
		q, err := newQuote(100)

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.Equal(t, 100, q.quantity)
	})

	t.Run("literal_value_is_rejected", func(t *testing.T) {
		q := quote{quantity: 100}

		require.ErrorIs(t, q.Validate(), errQuoteNotConstructed)
	})

	t.Run("copies_keep_the_mark", func(t *testing.T) {
		q, err := newQuote(5)
		require.NoError(t, err)

		cp := q

		require.NoError(t, cp.Validate())
	})
}

func TestConstructorGuard_Concurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(validationError))
		}()
	}
	wg.Wait()
}
