package exchangerate

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type memoKey struct {
	date string
	from string
	to   string
}

// Memo caches resolved rates for the lifetime of a single invoice generation,
// so each distinct (date, from, to) is looked up at most once. A fresh Memo
// must be created per operation; it is never shared across requests.
type Memo struct {
	next Resolver

	mu    sync.Mutex
	rates map[memoKey]decimal.Decimal
}

func NewMemo(next Resolver) *Memo {
	return &Memo{
		next:  next,
		rates: make(map[memoKey]decimal.Decimal),
	}
}

func (m *Memo) Resolve(ctx context.Context, date time.Time, from, to string) (decimal.Decimal, error) {
	key := memoKey{date: date.UTC().Format("2006-01-02"), from: from, to: to}

	m.mu.Lock()
	cached, ok := m.rates[key]
	m.mu.Unlock()
	if ok {
		return cached, nil
	}

	rate, err := m.next.Resolve(ctx, date, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	m.mu.Lock()
	m.rates[key] = rate
	m.mu.Unlock()
	return rate, nil
}
