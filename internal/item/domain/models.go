// Package domain contains the billable item catalog models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Unit enumerates how an item is counted.
type Unit string

const (
	UnitPiece   Unit = "pcs"
	UnitNight   Unit = "night"
	UnitDay     Unit = "day"
	UnitHour    Unit = "hour"
	UnitKg      Unit = "kg"
	UnitLitre   Unit = "litre"
	UnitService Unit = "service"
	UnitOther   Unit = "other"
)

// AllowedUnits lists every valid unit value.
var AllowedUnits = []Unit{UnitPiece, UnitNight, UnitDay, UnitHour, UnitKg, UnitLitre, UnitService, UnitOther}

// DurationType marks items whose quantity scales with the entry's time span.
type DurationType string

const (
	DurationNight DurationType = "night"
	DurationDay   DurationType = "day"
)

// Item is a billable catalog entry. Price changes never rewrite history:
// ledger entries snapshot price and VAT rate at creation time.
type Item struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`
	SKU          *string         `gorm:"uniqueIndex" json:"sku,omitempty"`
	Unit         Unit            `gorm:"type:text;not null;default:'pcs'" json:"unit"`
	DurationType *DurationType   `gorm:"type:text" json:"duration_type,omitempty"`
	UnitPrice    decimal.Decimal `gorm:"column:unit_price_without_vat;type:numeric(12,2);not null" json:"unit_price_without_vat"`
	Currency     string          `gorm:"type:varchar(3);not null" json:"currency"`
	VATRate      decimal.Decimal `gorm:"column:vat_rate;type:numeric(5,2);not null" json:"vat_rate"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Item) TableName() string { return "items" }

// ValidUnit reports whether the given unit is allowed.
func ValidUnit(unit Unit) bool {
	for _, allowed := range AllowedUnits {
		if unit == allowed {
			return true
		}
	}
	return false
}

// ValidDurationType reports whether the given duration type is allowed.
func ValidDurationType(dt DurationType) bool {
	return dt == DurationNight || dt == DurationDay
}
