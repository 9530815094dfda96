package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	customerdomain "github.com/involine/involine/internal/customer/domain"
	"github.com/involine/involine/internal/exchangerate"
	invoicedomain "github.com/involine/involine/internal/invoice/domain"
	itemdomain "github.com/involine/involine/internal/item/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"validation sentinel", invoicedomain.ErrInvalidPeriod, http.StatusBadRequest, "validation_error"},
		{"bad currency", invoicedomain.ErrInvalidCurrency, http.StatusBadRequest, "validation_error"},
		{"item validation", itemdomain.ErrInvalidUnit, http.StatusBadRequest, "validation_error"},
		{"customer missing", invoicedomain.ErrCustomerNotFound, http.StatusNotFound, "not_found"},
		{"invoice missing", invoicedomain.ErrInvoiceNotFound, http.StatusNotFound, "not_found"},
		{"nothing to bill", invoicedomain.ErrNoEntriesFound, http.StatusNotFound, "not_found"},
		{"catalog missing", customerdomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"already billed", invoicedomain.ErrEntriesAlreadyBilled, http.StatusConflict, "conflict"},
		{"duplicate sku", itemdomain.ErrSKUExists, http.StatusConflict, "conflict"},
		{"rate unavailable", exchangerate.ErrRateUnavailable, http.StatusBadRequest, "rate_unavailable"},
		{"rate service down", exchangerate.ErrRateService, http.StatusInternalServerError, "rate_service_error"},
		{"profile missing", invoicedomain.ErrBusinessProfileMissing, http.StatusInternalServerError, "internal_error"},
		{"entry integrity", invoicedomain.ErrInvalidEntryData, http.StatusInternalServerError, "internal_error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, payload := mapError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantType, payload.Type)
		})
	}
}

func TestMapError_ValidationPayload(t *testing.T) {
	status, payload := mapError(newValidationError("start_date", "invalid_period", "invalid start_date"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", payload.Type)
	if assert.Len(t, payload.Errors, 1) {
		assert.Equal(t, "start_date", payload.Errors[0].Field)
		assert.Equal(t, "invalid_period", payload.Errors[0].Code)
	}
}

func TestMapError_WrappedSentinel(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), invoicedomain.ErrInvalidEntryData)
	status, _ := mapError(wrapped)
	assert.Equal(t, http.StatusInternalServerError, status)
}
