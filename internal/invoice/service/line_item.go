package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/involine/involine/internal/billing/duration"
	invoicedomain "github.com/involine/involine/internal/invoice/domain"
	itemdomain "github.com/involine/involine/internal/item/domain"
	ledgerdomain "github.com/involine/involine/internal/ledgerentry/domain"
)

var hundred = decimal.NewFromInt(100)

// computeLine turns one matched ledger entry into an invoice line in the
// target currency. Pure: no I/O, deterministic for a given entry and rate.
func computeLine(entry ledgerdomain.LedgerEntry, rate decimal.Decimal, targetCurrency string) (invoicedomain.InvoiceItem, error) {
	item := entry.Item
	if item == nil || item.Currency == "" {
		return invoicedomain.InvoiceItem{}, fmt.Errorf("%w: entry %s has no item snapshot", invoicedomain.ErrInvalidEntryData, entry.ID)
	}
	if entry.RecordedPrice.IsNegative() || entry.RecordedVAT.IsNegative() || entry.Quantity <= 0 {
		return invoicedomain.InvoiceItem{}, fmt.Errorf("%w: entry %s has negative or zero snapshot data", invoicedomain.ErrInvalidEntryData, entry.ID)
	}
	if entry.StartDate.IsZero() {
		return invoicedomain.InvoiceItem{}, fmt.Errorf("%w: entry %s has no start date", invoicedomain.ErrInvalidEntryData, entry.ID)
	}

	// Point-in-time entries bill as if they ended when they started.
	end := entry.StartDate
	if entry.EndDate != nil {
		end = *entry.EndDate
	}

	multiplier := 1
	durationUnit := ""
	fallback := false
	if item.DurationType != nil {
		switch *item.DurationType {
		case itemdomain.DurationNight:
			if nights, ok := duration.Nights(entry.StartDate, end); ok {
				multiplier = nights
				durationUnit = "nights"
			} else {
				fallback = true
			}
		case itemdomain.DurationDay:
			if days, ok := duration.DaysInclusive(entry.StartDate, end); ok {
				multiplier = days
				durationUnit = "days"
			} else {
				fallback = true
			}
		}
	}

	convertedUnitPrice := entry.RecordedPrice.Mul(rate).Round(2)
	effectiveQuantity := decimal.NewFromInt(entry.Quantity).Mul(decimal.NewFromInt(int64(multiplier)))
	lineTotal := convertedUnitPrice.Mul(effectiveQuantity).Round(2)
	lineVAT := lineTotal.Mul(entry.RecordedVAT).Div(hundred).Round(2)

	line := invoicedomain.InvoiceItem{
		Description:       describeLine(item, entry.Quantity, multiplier, durationUnit),
		Quantity:          effectiveQuantity,
		Unit:              item.Unit,
		OriginalUnitPrice: entry.RecordedPrice,
		OriginalCurrency:  item.Currency,
		OriginalVATRate:   entry.RecordedVAT,
		UnitPrice:         convertedUnitPrice,
		VATRate:           entry.RecordedVAT,
		LineTotal:         lineTotal,
		LineVAT:           lineVAT,
		LineTotalVAT:      lineTotal.Add(lineVAT),
		DurationFallback:  fallback,
	}
	if item.Currency != targetCurrency {
		rateUsed := rate
		line.ExchangeRateUsed = &rateUsed
	}
	return line, nil
}

func describeLine(item *itemdomain.Item, quantity int64, multiplier int, durationUnit string) string {
	switch {
	case durationUnit != "":
		return fmt.Sprintf("%s (%d x %d %s)", item.Name, quantity, multiplier, durationUnit)
	case quantity != 1:
		return fmt.Sprintf("%s (%d %s)", item.Name, quantity, item.Unit)
	default:
		return item.Name
	}
}
