package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	SKU          string          `json:"sku"`
	Unit         string          `json:"unit"`
	DurationType string          `json:"duration_type"`
	UnitPrice    decimal.Decimal `json:"unit_price_without_vat"`
	Currency     string          `json:"currency"`
	VATRate      decimal.Decimal `json:"vat_rate"`
}

type Service interface {
	Create(ctx context.Context, req CreateItemRequest) (Item, error)
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id string) (Item, error)
}

var (
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidUnit         = errors.New("invalid_unit")
	ErrInvalidDurationType = errors.New("invalid_duration_type")
	ErrInvalidPrice        = errors.New("invalid_price")
	ErrInvalidCurrency     = errors.New("invalid_currency")
	ErrInvalidVATRate      = errors.New("invalid_vat_rate")
	ErrInvalidID           = errors.New("invalid_id")
	ErrSKUExists           = errors.New("sku_exists")
	ErrNotFound            = errors.New("not_found")
)
