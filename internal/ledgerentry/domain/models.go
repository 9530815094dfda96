// Package domain contains the usage ledger models: one row per consumption of
// a billable item by a customer over a time span.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"

	itemdomain "github.com/involine/involine/internal/item/domain"
)

// BillingStatus is the lifecycle tag of a ledger entry.
type BillingStatus string

const (
	BillingStatusUnbilled BillingStatus = "unbilled"
	BillingStatusBilled   BillingStatus = "billed"
	BillingStatusPaid     BillingStatus = "paid"
)

// LedgerEntry records consumption of one item by one customer. Price and VAT
// rate are snapshotted from the item at creation time so later catalog edits
// never change what gets billed. Entries are only ever mutated by the billing
// transition (unbilled -> billed, invoice id set) and are never deleted once
// billed.
type LedgerEntry struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id"`
	CustomerID    snowflake.ID    `gorm:"not null;index" json:"customer_id"`
	ItemID        snowflake.ID    `gorm:"not null;index" json:"item_id"`
	Quantity      int64           `gorm:"not null" json:"quantity"`
	StartDate     time.Time       `gorm:"not null;index" json:"start_date"`
	EndDate       *time.Time      `gorm:"index" json:"end_date,omitempty"`
	RecordedPrice decimal.Decimal `gorm:"column:recorded_price_without_vat;type:numeric(12,2);not null" json:"recorded_price_without_vat"`
	RecordedVAT   decimal.Decimal `gorm:"column:recorded_vat_rate;type:numeric(5,2);not null" json:"recorded_vat_rate"`
	BillingStatus BillingStatus   `gorm:"type:text;not null;default:'unbilled';index" json:"billing_status"`
	InvoiceID     *snowflake.ID   `gorm:"index" json:"invoice_id,omitempty"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`

	Item *itemdomain.Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName sets the database table name.
func (LedgerEntry) TableName() string { return "ledger_entries" }
