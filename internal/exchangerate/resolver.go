// Package exchangerate resolves currency conversion rates from a
// frankfurter-compatible date-indexed rate service.
package exchangerate

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrRateUnavailable means the service answered but has no rate for the
	// requested pair/date.
	ErrRateUnavailable = errors.New("rate_unavailable")
	// ErrRateService means the service itself failed (transport, non-2xx,
	// malformed body). Never retried here; the caller aborts.
	ErrRateService = errors.New("rate_service_error")
)

// Resolver resolves the conversion rate between two currency codes as of a
// given date. A zero date asks for the service's latest available rate.
type Resolver interface {
	Resolve(ctx context.Context, date time.Time, from, to string) (decimal.Decimal, error)
}

var one = decimal.NewFromInt(1)
