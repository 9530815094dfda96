package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	ledgerdomain "github.com/involine/involine/internal/ledgerentry/domain"
)

type createLedgerEntryRequest struct {
	CustomerID string     `json:"customer_id"`
	ItemID     string     `json:"item_id"`
	Quantity   int64      `json:"quantity"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Notes      string     `json:"notes"`
}

func (s *Server) CreateLedgerEntry(c *gin.Context) {
	var req createLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ledgerSvc.Create(c.Request.Context(), ledgerdomain.CreateEntryRequest{
		CustomerID: strings.TrimSpace(req.CustomerID),
		ItemID:     strings.TrimSpace(req.ItemID),
		Quantity:   req.Quantity,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Notes:      strings.TrimSpace(req.Notes),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListLedgerEntries(c *gin.Context) {
	var query struct {
		CustomerID    string `form:"customer_id"`
		BillingStatus string `form:"billing_status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ledgerSvc.List(c.Request.Context(), ledgerdomain.ListEntriesRequest{
		CustomerID:    strings.TrimSpace(query.CustomerID),
		BillingStatus: strings.TrimSpace(query.BillingStatus),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetLedgerEntryByID(c *gin.Context) {
	resp, err := s.ledgerSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isLedgerEntryValidationError(err error) bool {
	switch err {
	case ledgerdomain.ErrInvalidCustomerID,
		ledgerdomain.ErrInvalidItemID,
		ledgerdomain.ErrInvalidQuantity,
		ledgerdomain.ErrInvalidStartDate,
		ledgerdomain.ErrInvalidEndDate,
		ledgerdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
