package domain

import (
	"context"
	"errors"
	"time"
)

// GenerateRequest asks for all unbilled entries of one customer overlapping
// [StartDate, EndDate] to be billed in TargetCurrency as of IssueDate.
type GenerateRequest struct {
	CustomerID     string     `json:"customer_id"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	IssueDate      time.Time  `json:"issue_date"`
	DueDate        *time.Time `json:"due_date"`
	Notes          string     `json:"notes"`
	TargetCurrency string     `json:"target_currency"`
}

type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (Invoice, error)
	List(ctx context.Context) ([]Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
}

var (
	// Request validation (HTTP 400).
	ErrInvalidCustomerID = errors.New("invalid_customer_id")
	ErrInvalidPeriod     = errors.New("invalid_period")
	ErrInvalidIssueDate  = errors.New("invalid_issue_date")
	ErrInvalidCurrency   = errors.New("invalid_currency")
	ErrInvalidID         = errors.New("invalid_id")

	// Lookup failures (HTTP 404).
	ErrCustomerNotFound = errors.New("customer_not_found")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
	ErrNoEntriesFound   = errors.New("no_entries_found")

	// Integrity failures (HTTP 500).
	ErrBusinessProfileMissing = errors.New("business_profile_missing")
	ErrInvalidEntryData       = errors.New("invalid_entry_data")

	// Concurrent generation claimed some matched entries first; nothing was
	// persisted by this run.
	ErrEntriesAlreadyBilled = errors.New("entries_already_billed")
)
