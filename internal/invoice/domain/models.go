// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	customerdomain "github.com/involine/involine/internal/customer/domain"
	itemdomain "github.com/involine/involine/internal/item/domain"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoid   InvoiceStatus = "void"
)

// Invoice is a finalized bill in a single target currency. Financial fields
// are written once at generation and never edited in place.
type Invoice struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"uniqueIndex;not null" json:"invoice_number"`
	CustomerID    snowflake.ID    `gorm:"not null;index" json:"customer_id"`
	IssueDate     time.Time       `gorm:"type:date;not null" json:"issue_date"`
	DueDate       *time.Time      `gorm:"type:date" json:"due_date,omitempty"`
	Subtotal      decimal.Decimal `gorm:"column:subtotal_without_vat;type:numeric(12,2);not null" json:"subtotal_without_vat"`
	TotalVAT      decimal.Decimal `gorm:"column:total_vat_amount;type:numeric(12,2);not null" json:"total_vat_amount"`
	GrandTotal    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"grand_total"`
	Currency      string          `gorm:"type:varchar(3);not null" json:"currency"`
	Status        InvoiceStatus   `gorm:"type:text;not null;default:'issued'" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	// Carries the billing period the invoice was generated for.
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null" json:"updated_at"`

	Customer *customerdomain.Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []InvoiceItem            `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is one line on an invoice. Quantity is the effective quantity
// (base quantity times duration multiplier); original price/currency/VAT are
// kept alongside the converted figures for auditability.
type InvoiceItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID    `gorm:"not null;index" json:"invoice_id"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"quantity"`
	Unit        itemdomain.Unit `gorm:"type:text;not null" json:"unit"`

	OriginalUnitPrice decimal.Decimal `gorm:"column:original_unit_price_without_vat;type:numeric(12,2);not null" json:"original_unit_price_without_vat"`
	OriginalCurrency  string          `gorm:"type:varchar(3);not null" json:"original_currency"`
	OriginalVATRate   decimal.Decimal `gorm:"column:original_vat_rate;type:numeric(5,2);not null" json:"original_vat_rate"`

	// Null when no conversion happened (original currency == invoice currency).
	ExchangeRateUsed *decimal.Decimal `gorm:"type:numeric(18,8)" json:"exchange_rate_used,omitempty"`

	UnitPrice decimal.Decimal `gorm:"column:unit_price_without_vat;type:numeric(12,2);not null" json:"unit_price_without_vat"`
	VATRate   decimal.Decimal `gorm:"column:vat_rate;type:numeric(5,2);not null" json:"vat_rate"`

	LineTotal    decimal.Decimal `gorm:"column:line_total_without_vat;type:numeric(12,2);not null" json:"line_total_without_vat"`
	LineVAT      decimal.Decimal `gorm:"column:line_vat_amount;type:numeric(12,2);not null" json:"line_vat_amount"`
	LineTotalVAT decimal.Decimal `gorm:"column:line_total_with_vat;type:numeric(12,2);not null" json:"line_total_with_vat"`

	// Set when a duration-typed item could not produce a valid nights/days
	// count and the line was billed with multiplier 1 instead.
	DurationFallback bool `gorm:"not null;default:false" json:"duration_fallback,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }

// InvoiceSequence is the counter feeding invoice numbers. Incremented inside
// the generation transaction so numbers stay unique under concurrency.
type InvoiceSequence struct {
	ID   int64 `gorm:"primaryKey"`
	Next int64 `gorm:"not null"`
}

// TableName sets the database table name.
func (InvoiceSequence) TableName() string { return "invoice_sequences" }
