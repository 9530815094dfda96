package pdf

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotocfg "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/involine/involine/internal/config"
	invoicedomain "github.com/involine/involine/internal/invoice/domain"
)

const dateLayout = "2006-01-02"

// Renderer lays out a finalized invoice as a PDF document. The document is
// generated fully in memory before any byte is handed to the caller, so a
// rendering failure never leaves a truncated response behind.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(invoice invoicedomain.Invoice, profile config.BusinessProfile) (io.Reader, error) {
	cfg := marotocfg.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Invoice "+invoice.InvoiceNumber, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(16,
		col.New(6).Add(
			text.New("Invoice number: "+invoice.InvoiceNumber, props.Text{Top: 0, Size: 9}),
			text.New("Date of issue: "+invoice.IssueDate.Format(dateLayout), props.Text{Top: 4, Size: 9}),
			text.New("Date due: "+formatOptionalDate(invoice.DueDate), props.Text{Top: 8, Size: 9}),
			text.New("Status: "+string(invoice.Status), props.Text{Top: 12, Size: 9}),
		),
		col.New(6),
	)

	m.AddRow(40,
		col.New(6).Add(
			text.New(profile.BusinessName, props.Text{Style: fontstyle.Bold}),
			text.New(profile.Address, props.Text{Top: 5, Size: 9}),
			text.New(profile.Email, props.Text{Top: 14, Size: 9}),
			text.New("VAT ID: "+profile.VATID, props.Text{Top: 18, Size: 9}),
		),
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold}),
			text.New(billToName(invoice), props.Text{Top: 5, Size: 9}),
			text.New(billToAddress(invoice), props.Text{Top: 9, Size: 9}),
			text.New(billToVAT(invoice), props.Text{Top: 18, Size: 9}),
		),
	)

	m.AddRow(10,
		text.NewCol(3, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Unit", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Original price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "VAT %", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range invoice.Items {
		cells := lineCells(item, invoice.Currency)
		m.AddRow(12,
			text.NewCol(3, cells[0], props.Text{Size: 9}),
			text.NewCol(1, cells[1], props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, cells[2], props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, cells[3], props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, cells[4], props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, cells[5], props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, cells[6], props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, cells[7], props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, money(invoice.Subtotal.StringFixed(2), invoice.Currency), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Total VAT", props.Text{Size: 9}),
		text.NewCol(2, money(invoice.TotalVAT.StringFixed(2), invoice.Currency), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Grand total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, money(invoice.GrandTotal.StringFixed(2), invoice.Currency), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	if invoice.Notes != "" {
		m.AddRow(16,
			text.NewCol(12, "Notes: "+invoice.Notes, props.Text{Size: 9, Top: 4}),
		)
	}

	if profile.BankDetails != "" {
		m.AddRow(20,
			text.NewCol(12, profile.BankDetails, props.Text{Size: 9, Top: 4}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func money(amount, currency string) string {
	return amount + " " + currency
}

// lineCells flattens one invoice line into the table's column order:
// description, quantity, unit, original price with its currency, conversion
// rate (blank when none was applied), converted unit price, VAT rate, amount.
func lineCells(item invoicedomain.InvoiceItem, invoiceCurrency string) [8]string {
	rate := ""
	if item.ExchangeRateUsed != nil {
		rate = item.ExchangeRateUsed.String()
	}
	return [8]string{
		item.Description,
		item.Quantity.String(),
		string(item.Unit),
		money(item.OriginalUnitPrice.StringFixed(2), item.OriginalCurrency),
		rate,
		item.UnitPrice.StringFixed(2),
		item.VATRate.String(),
		money(item.LineTotal.StringFixed(2), invoiceCurrency),
	}
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}

func billToName(invoice invoicedomain.Invoice) string {
	if invoice.Customer == nil {
		return ""
	}
	if invoice.Customer.CompanyName != "" {
		return invoice.Customer.CompanyName
	}
	return invoice.Customer.Name
}

func billToAddress(invoice invoicedomain.Invoice) string {
	if invoice.Customer == nil {
		return ""
	}
	return invoice.Customer.Address
}

func billToVAT(invoice invoicedomain.Invoice) string {
	if invoice.Customer == nil || invoice.Customer.VATID == "" {
		return ""
	}
	return "VAT ID: " + invoice.Customer.VATID
}
