package domain

import (
	"context"
	"errors"
	"time"
)

type CreateEntryRequest struct {
	CustomerID string     `json:"customer_id"`
	ItemID     string     `json:"item_id"`
	Quantity   int64      `json:"quantity"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Notes      string     `json:"notes"`
}

type ListEntriesRequest struct {
	CustomerID    string
	BillingStatus string
}

type Service interface {
	Create(ctx context.Context, req CreateEntryRequest) (LedgerEntry, error)
	List(ctx context.Context, req ListEntriesRequest) ([]LedgerEntry, error)
	GetByID(ctx context.Context, id string) (LedgerEntry, error)
}

var (
	ErrInvalidCustomerID = errors.New("invalid_customer_id")
	ErrInvalidItemID     = errors.New("invalid_item_id")
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrInvalidStartDate  = errors.New("invalid_start_date")
	ErrInvalidEndDate    = errors.New("invalid_end_date")
	ErrInvalidID         = errors.New("invalid_id")
	ErrCustomerNotFound  = errors.New("customer_not_found")
	ErrItemNotFound      = errors.New("item_not_found")
	ErrNotFound          = errors.New("not_found")
)
