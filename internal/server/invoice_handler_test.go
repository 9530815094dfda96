package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/involine/involine/internal/config"
	customerdomain "github.com/involine/involine/internal/customer/domain"
	invoicedomain "github.com/involine/involine/internal/invoice/domain"
	invoicepdf "github.com/involine/involine/internal/invoice/pdf"
	itemdomain "github.com/involine/involine/internal/item/domain"
)

type stubInvoiceService struct {
	generateErr error
	invoice     invoicedomain.Invoice
}

func (s *stubInvoiceService) Generate(ctx context.Context, req invoicedomain.GenerateRequest) (invoicedomain.Invoice, error) {
	if s.generateErr != nil {
		return invoicedomain.Invoice{}, s.generateErr
	}
	return s.invoice, nil
}

func (s *stubInvoiceService) List(ctx context.Context) ([]invoicedomain.Invoice, error) {
	return []invoicedomain.Invoice{s.invoice}, nil
}

func (s *stubInvoiceService) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	return s.invoice, nil
}

func sampleInvoice(t *testing.T) invoicedomain.Invoice {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return invoicedomain.Invoice{
		ID:            node.Generate(),
		InvoiceNumber: "INV-000007",
		Subtotal:      decimal.RequireFromString("300.00"),
		TotalVAT:      decimal.RequireFromString("63.00"),
		GrandTotal:    decimal.RequireFromString("363.00"),
		Currency:      "EUR",
		Status:        invoicedomain.InvoiceStatusIssued,
		Customer: &customerdomain.Customer{
			Name:    "Guest",
			Address: "Main Street 5",
		},
		Items: []invoicedomain.InvoiceItem{
			{
				Description:       "Room (1 x 3 nights)",
				Quantity:          decimal.NewFromInt(3),
				Unit:              itemdomain.UnitNight,
				OriginalUnitPrice: decimal.RequireFromString("100.00"),
				OriginalCurrency:  "EUR",
				OriginalVATRate:   decimal.RequireFromString("21"),
				UnitPrice:         decimal.RequireFromString("100.00"),
				VATRate:           decimal.RequireFromString("21"),
				LineTotal:         decimal.RequireFromString("300.00"),
				LineVAT:           decimal.RequireFromString("63.00"),
				LineTotalVAT:      decimal.RequireFromString("363.00"),
			},
		},
	}
}

func newHandlerTestServer(t *testing.T, svc invoicedomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	s := &Server{
		engine:      engine,
		profile:     config.NewStaticBusinessProfileHolder(config.BusinessProfile{BusinessName: "Involine BV", DefaultCurrency: "EUR"}),
		invoiceSvc:  svc,
		pdfRenderer: invoicepdf.NewRenderer(),
	}
	s.engine.POST("/api/invoices/generate", s.GenerateInvoice)
	s.engine.GET("/api/invoices/:id", s.GetInvoiceByID)
	s.engine.GET("/api/invoices/:id/pdf", s.DownloadInvoicePDF)
	return s
}

func TestGenerateInvoiceHandler(t *testing.T) {
	invoice := sampleInvoice(t)
	s := newHandlerTestServer(t, &stubInvoiceService{invoice: invoice})

	body := `{
		"customer_id": "123",
		"start_date": "2024-06-01",
		"end_date": "2024-06-30",
		"issue_date": "2024-07-01",
		"target_currency": "EUR"
	}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/invoices/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data invoicedomain.Invoice `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INV-000007", resp.Data.InvoiceNumber)
}

func TestGenerateInvoiceHandler_BadDates(t *testing.T) {
	s := newHandlerTestServer(t, &stubInvoiceService{})

	body := `{
		"customer_id": "123",
		"start_date": "junk",
		"end_date": "2024-06-30",
		"issue_date": "2024-07-01",
		"target_currency": "EUR"
	}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/invoices/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_period")
}

func TestGenerateInvoiceHandler_NoEntries(t *testing.T) {
	s := newHandlerTestServer(t, &stubInvoiceService{generateErr: invoicedomain.ErrNoEntriesFound})

	body := `{
		"customer_id": "123",
		"start_date": "2024-06-01",
		"end_date": "2024-06-30",
		"issue_date": "2024-07-01",
		"target_currency": "EUR"
	}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/invoices/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadInvoicePDFHandler(t *testing.T) {
	invoice := sampleInvoice(t)
	s := newHandlerTestServer(t, &stubInvoiceService{invoice: invoice})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/invoices/"+invoice.ID.String()+"/pdf", nil)
	s.engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `Invoice-INV-000007.pdf`)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"), "body must be a PDF document")
}
