package exchangerate

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingResolver struct {
	calls int
	rate  decimal.Decimal
	err   error
}

func (r *countingResolver) Resolve(ctx context.Context, date time.Time, from, to string) (decimal.Decimal, error) {
	r.calls++
	return r.rate, r.err
}

func TestMemoResolvesEachPairOnce(t *testing.T) {
	next := &countingResolver{rate: decimal.RequireFromString("1.1")}
	memo := NewMemo(next)
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		rate, err := memo.Resolve(context.Background(), date, "EUR", "USD")
		require.NoError(t, err)
		assert.True(t, rate.Equal(next.rate))
	}
	assert.Equal(t, 1, next.calls)

	_, err := memo.Resolve(context.Background(), date, "GBP", "USD")
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestMemoDoesNotCacheFailures(t *testing.T) {
	next := &countingResolver{err: ErrRateUnavailable}
	memo := NewMemo(next)
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := memo.Resolve(context.Background(), date, "EUR", "USD")
	assert.ErrorIs(t, err, ErrRateUnavailable)
	_, err = memo.Resolve(context.Background(), date, "EUR", "USD")
	assert.ErrorIs(t, err, ErrRateUnavailable)
	assert.Equal(t, 2, next.calls)
}
