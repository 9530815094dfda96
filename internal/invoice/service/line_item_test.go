package service

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invoicedomain "github.com/involine/involine/internal/invoice/domain"
	itemdomain "github.com/involine/involine/internal/item/domain"
	ledgerdomain "github.com/involine/involine/internal/ledgerentry/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func nightItem(price string, vat string) *itemdomain.Item {
	dt := itemdomain.DurationNight
	return &itemdomain.Item{
		Name:         "Room",
		Unit:         itemdomain.UnitNight,
		DurationType: &dt,
		UnitPrice:    decimal.RequireFromString(price),
		Currency:     "EUR",
		VATRate:      decimal.RequireFromString(vat),
	}
}

func TestComputeLine_NightStay(t *testing.T) {
	node, _ := snowflake.NewNode(1)
	entry := ledgerdomain.LedgerEntry{
		ID:            node.Generate(),
		Quantity:      1,
		StartDate:     date(2024, time.June, 1),
		EndDate:       datePtr(2024, time.June, 4),
		RecordedPrice: decimal.RequireFromString("100.00"),
		RecordedVAT:   decimal.RequireFromString("21"),
		Item:          nightItem("100.00", "21"),
	}

	line, err := computeLine(entry, decimal.NewFromInt(1), "EUR")
	require.NoError(t, err)

	assert.Equal(t, "Room (1 x 3 nights)", line.Description)
	assert.True(t, line.Quantity.Equal(decimal.NewFromInt(3)), "quantity %s", line.Quantity)
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, line.LineTotal.Equal(decimal.RequireFromString("300.00")), "total %s", line.LineTotal)
	assert.True(t, line.LineVAT.Equal(decimal.RequireFromString("63.00")), "vat %s", line.LineVAT)
	assert.True(t, line.LineTotalVAT.Equal(decimal.RequireFromString("363.00")))
	assert.Nil(t, line.ExchangeRateUsed, "same-currency line must not carry a rate")
	assert.False(t, line.DurationFallback)
}

func TestComputeLine_CurrencyConversion(t *testing.T) {
	node, _ := snowflake.NewNode(1)
	entry := ledgerdomain.LedgerEntry{
		ID:            node.Generate(),
		Quantity:      1,
		StartDate:     date(2024, time.June, 1),
		EndDate:       datePtr(2024, time.June, 4),
		RecordedPrice: decimal.RequireFromString("100.00"),
		RecordedVAT:   decimal.RequireFromString("21"),
		Item:          nightItem("100.00", "21"),
	}

	rate := decimal.RequireFromString("1.10")
	line, err := computeLine(entry, rate, "USD")
	require.NoError(t, err)

	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("110.00")), "unit price %s", line.UnitPrice)
	assert.True(t, line.LineTotal.Equal(decimal.RequireFromString("330.00")))
	assert.True(t, line.LineVAT.Equal(decimal.RequireFromString("69.30")))
	assert.True(t, line.LineTotalVAT.Equal(decimal.RequireFromString("399.30")))
	require.NotNil(t, line.ExchangeRateUsed)
	assert.True(t, line.ExchangeRateUsed.Equal(rate))
	assert.True(t, line.OriginalUnitPrice.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, "EUR", line.OriginalCurrency)
}

func TestComputeLine_DayInclusive(t *testing.T) {
	node, _ := snowflake.NewNode(1)
	dt := itemdomain.DurationDay
	entry := ledgerdomain.LedgerEntry{
		ID:            node.Generate(),
		Quantity:      2,
		StartDate:     date(2024, time.January, 1),
		EndDate:       datePtr(2024, time.January, 3),
		RecordedPrice: decimal.RequireFromString("50.00"),
		RecordedVAT:   decimal.RequireFromString("9"),
		Item: &itemdomain.Item{
			Name:         "Car rental",
			Unit:         itemdomain.UnitDay,
			DurationType: &dt,
			UnitPrice:    decimal.RequireFromString("50.00"),
			Currency:     "EUR",
			VATRate:      decimal.RequireFromString("9"),
		},
	}

	line, err := computeLine(entry, decimal.NewFromInt(1), "EUR")
	require.NoError(t, err)

	assert.Equal(t, "Car rental (2 x 3 days)", line.Description)
	assert.True(t, line.Quantity.Equal(decimal.NewFromInt(6)))
	assert.True(t, line.LineTotal.Equal(decimal.RequireFromString("300.00")))
	assert.False(t, line.DurationFallback)
}

func TestComputeLine_DurationFallback(t *testing.T) {
	node, _ := snowflake.NewNode(1)
	entry := ledgerdomain.LedgerEntry{
		ID:            node.Generate(),
		Quantity:      1,
		StartDate:     date(2024, time.June, 1),
		EndDate:       nil, // open-ended night stay has no computable night count
		RecordedPrice: decimal.RequireFromString("100.00"),
		RecordedVAT:   decimal.RequireFromString("21"),
		Item:          nightItem("100.00", "21"),
	}

	line, err := computeLine(entry, decimal.NewFromInt(1), "EUR")
	require.NoError(t, err)

	assert.True(t, line.DurationFallback)
	assert.True(t, line.Quantity.Equal(decimal.NewFromInt(1)), "fallback bills the raw quantity")
	assert.True(t, line.LineTotal.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, "Room", line.Description)
}

func TestComputeLine_PlainItemDescription(t *testing.T) {
	node, _ := snowflake.NewNode(1)
	entry := ledgerdomain.LedgerEntry{
		ID:            node.Generate(),
		Quantity:      3,
		StartDate:     date(2024, time.June, 1),
		RecordedPrice: decimal.RequireFromString("2.50"),
		RecordedVAT:   decimal.RequireFromString("21"),
		Item: &itemdomain.Item{
			Name:      "Bottled water",
			Unit:      itemdomain.UnitPiece,
			UnitPrice: decimal.RequireFromString("2.50"),
			Currency:  "EUR",
			VATRate:   decimal.RequireFromString("21"),
		},
	}

	line, err := computeLine(entry, decimal.NewFromInt(1), "EUR")
	require.NoError(t, err)

	assert.Equal(t, "Bottled water (3 pcs)", line.Description)
	assert.True(t, line.Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, line.LineTotal.Equal(decimal.RequireFromString("7.50")))
}

func TestComputeLine_InvalidEntryData(t *testing.T) {
	node, _ := snowflake.NewNode(1)

	t.Run("missing item snapshot", func(t *testing.T) {
		entry := ledgerdomain.LedgerEntry{
			ID:        node.Generate(),
			Quantity:  1,
			StartDate: date(2024, time.June, 1),
		}
		_, err := computeLine(entry, decimal.NewFromInt(1), "EUR")
		assert.ErrorIs(t, err, invoicedomain.ErrInvalidEntryData)
	})

	t.Run("zero quantity", func(t *testing.T) {
		entry := ledgerdomain.LedgerEntry{
			ID:            node.Generate(),
			Quantity:      0,
			StartDate:     date(2024, time.June, 1),
			RecordedPrice: decimal.RequireFromString("100.00"),
			RecordedVAT:   decimal.RequireFromString("21"),
			Item:          nightItem("100.00", "21"),
		}
		_, err := computeLine(entry, decimal.NewFromInt(1), "EUR")
		assert.ErrorIs(t, err, invoicedomain.ErrInvalidEntryData)
	})
}
