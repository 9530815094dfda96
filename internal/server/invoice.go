package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/involine/involine/internal/invoice/domain"
)

const dateLayout = "2006-01-02"

type generateInvoiceRequest struct {
	CustomerID     string `json:"customer_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	IssueDate      string `json:"issue_date"`
	DueDate        string `json:"due_date"`
	Notes          string `json:"notes"`
	TargetCurrency string `json:"target_currency"`
}

func (s *Server) GenerateInvoice(c *gin.Context) {
	var req generateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_period", "invalid start_date"))
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		AbortWithError(c, newValidationError("end_date", "invalid_period", "invalid end_date"))
		return
	}
	issueDate, err := parseDate(req.IssueDate)
	if err != nil {
		AbortWithError(c, newValidationError("issue_date", "invalid_issue_date", "invalid issue_date"))
		return
	}

	var dueDate *time.Time
	if strings.TrimSpace(req.DueDate) != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
			return
		}
		dueDate = &due
	}

	resp, err := s.invoiceSvc.Generate(c.Request.Context(), invoicedomain.GenerateRequest{
		CustomerID:     strings.TrimSpace(req.CustomerID),
		StartDate:      startDate,
		EndDate:        endDate,
		IssueDate:      issueDate,
		DueDate:        dueDate,
		Notes:          strings.TrimSpace(req.Notes),
		TargetCurrency: strings.TrimSpace(req.TargetCurrency),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	resp, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// DownloadInvoicePDF renders the document fully in memory before writing the
// first response byte, so rendering failures still produce a JSON error.
func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	invoice, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdfRenderer.Render(invoice, s.profile.Get())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := io.ReadAll(doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filename := invoice.InvoiceNumber
	if filename == "" {
		filename = invoice.ID.String()
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "Invoice-"+filename+".pdf"))
	c.Data(http.StatusOK, "application/pdf", data)
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
