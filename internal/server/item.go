package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	itemdomain "github.com/involine/involine/internal/item/domain"
)

type createItemRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	SKU          string          `json:"sku"`
	Unit         string          `json:"unit"`
	DurationType string          `json:"duration_type"`
	UnitPrice    decimal.Decimal `json:"unit_price_without_vat"`
	Currency     string          `json:"currency"`
	VATRate      decimal.Decimal `json:"vat_rate"`
}

func (s *Server) CreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.itemSvc.Create(c.Request.Context(), itemdomain.CreateItemRequest{
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		SKU:          strings.TrimSpace(req.SKU),
		Unit:         strings.TrimSpace(req.Unit),
		DurationType: strings.TrimSpace(req.DurationType),
		UnitPrice:    req.UnitPrice,
		Currency:     strings.TrimSpace(req.Currency),
		VATRate:      req.VATRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListItems(c *gin.Context) {
	resp, err := s.itemSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetItemByID(c *gin.Context) {
	resp, err := s.itemSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isItemValidationError(err error) bool {
	switch err {
	case itemdomain.ErrInvalidName,
		itemdomain.ErrInvalidUnit,
		itemdomain.ErrInvalidDurationType,
		itemdomain.ErrInvalidPrice,
		itemdomain.ErrInvalidCurrency,
		itemdomain.ErrInvalidVATRate,
		itemdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
