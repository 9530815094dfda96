package pdf

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/involine/involine/internal/config"
	customerdomain "github.com/involine/involine/internal/customer/domain"
	invoicedomain "github.com/involine/involine/internal/invoice/domain"
	itemdomain "github.com/involine/involine/internal/item/domain"
)

func sampleItem() invoicedomain.InvoiceItem {
	rate := decimal.RequireFromString("1.10")
	return invoicedomain.InvoiceItem{
		Description:       "Sea view room (2 x 3 nights)",
		Quantity:          decimal.NewFromInt(6),
		Unit:              itemdomain.UnitNight,
		OriginalUnitPrice: decimal.RequireFromString("100.00"),
		OriginalCurrency:  "USD",
		OriginalVATRate:   decimal.RequireFromString("21.00"),
		ExchangeRateUsed:  &rate,
		UnitPrice:         decimal.RequireFromString("110.00"),
		VATRate:           decimal.RequireFromString("21.00"),
		LineTotal:         decimal.RequireFromString("660.00"),
		LineVAT:           decimal.RequireFromString("138.60"),
		LineTotalVAT:      decimal.RequireFromString("798.60"),
	}
}

func TestLineCells_ConvertedLine(t *testing.T) {
	cells := lineCells(sampleItem(), "EUR")

	assert.Equal(t, "Sea view room (2 x 3 nights)", cells[0])
	assert.Equal(t, "6", cells[1])
	assert.Equal(t, "night", cells[2])
	assert.Equal(t, "100.00 USD", cells[3])
	assert.Equal(t, "1.1", cells[4])
	assert.Equal(t, "110.00", cells[5])
	assert.Equal(t, "21", cells[6])
	assert.Equal(t, "660.00 EUR", cells[7])
}

func TestLineCells_SameCurrencyLeavesRateBlank(t *testing.T) {
	item := sampleItem()
	item.ExchangeRateUsed = nil
	item.OriginalCurrency = "EUR"
	item.UnitPrice = item.OriginalUnitPrice
	item.LineTotal = decimal.RequireFromString("600.00")

	cells := lineCells(item, "EUR")

	assert.Equal(t, "100.00 EUR", cells[3])
	assert.Empty(t, cells[4])
	assert.Equal(t, "100.00", cells[5])
	assert.Equal(t, "600.00 EUR", cells[7])
}

func TestRender_ProducesPDF(t *testing.T) {
	issue := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	invoice := invoicedomain.Invoice{
		InvoiceNumber: "INV-000042",
		IssueDate:     issue,
		Subtotal:      decimal.RequireFromString("660.00"),
		TotalVAT:      decimal.RequireFromString("138.60"),
		GrandTotal:    decimal.RequireFromString("798.60"),
		Currency:      "EUR",
		Status:        invoicedomain.InvoiceStatusIssued,
		Customer: &customerdomain.Customer{
			Name:    "Acme BV",
			Address: "1 Canal Street, Amsterdam",
		},
		Items: []invoicedomain.InvoiceItem{sampleItem()},
	}
	profile := config.BusinessProfile{
		BusinessName:    "Involine BV",
		Address:         "2 Harbour Road, Rotterdam",
		Email:           "billing@involine.example",
		VATID:           "NL123456789B01",
		DefaultCurrency: "EUR",
	}

	out, err := NewRenderer().Render(invoice, profile)
	require.NoError(t, err)

	data, err := io.ReadAll(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}
