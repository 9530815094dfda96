package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/involine/involine/internal/customer/domain"
	itemdomain "github.com/involine/involine/internal/item/domain"
	"github.com/involine/involine/internal/ledgerentry/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("ledgerentry.service"),
		genID: p.GenID,
	}
}

// Create records a usage entry, snapshotting the item's current price and VAT
// rate so later catalog changes never affect it.
func (s *Service) Create(ctx context.Context, req domain.CreateEntryRequest) (domain.LedgerEntry, error) {
	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil {
		return domain.LedgerEntry{}, domain.ErrInvalidCustomerID
	}
	itemID, err := snowflake.ParseString(strings.TrimSpace(req.ItemID))
	if err != nil {
		return domain.LedgerEntry{}, domain.ErrInvalidItemID
	}
	if req.Quantity <= 0 {
		return domain.LedgerEntry{}, domain.ErrInvalidQuantity
	}
	if req.StartDate.IsZero() {
		return domain.LedgerEntry{}, domain.ErrInvalidStartDate
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return domain.LedgerEntry{}, domain.ErrInvalidEndDate
	}

	var entry domain.LedgerEntry
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer customerdomain.Customer
		if err := tx.First(&customer, "id = ?", customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCustomerNotFound
			}
			return err
		}

		var item itemdomain.Item
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrItemNotFound
			}
			return err
		}

		now := time.Now().UTC()
		entry = domain.LedgerEntry{
			ID:            s.genID.Generate(),
			CustomerID:    customerID,
			ItemID:        itemID,
			Quantity:      req.Quantity,
			StartDate:     req.StartDate.UTC(),
			RecordedPrice: item.UnitPrice,
			RecordedVAT:   item.VATRate,
			BillingStatus: domain.BillingStatusUnbilled,
			Notes:         strings.TrimSpace(req.Notes),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if req.EndDate != nil {
			end := req.EndDate.UTC()
			entry.EndDate = &end
		}
		entry.Item = &item

		return tx.Omit("Item").Create(&entry).Error
	})
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	return entry, nil
}

func (s *Service) List(ctx context.Context, req domain.ListEntriesRequest) ([]domain.LedgerEntry, error) {
	query := s.db.WithContext(ctx).Preload("Item").Order("start_date desc")

	if raw := strings.TrimSpace(req.CustomerID); raw != "" {
		customerID, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidCustomerID
		}
		query = query.Where("customer_id = ?", customerID)
	}
	if status := strings.TrimSpace(req.BillingStatus); status != "" {
		query = query.Where("billing_status = ?", status)
	}

	var entries []domain.LedgerEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.LedgerEntry, error) {
	entryID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.LedgerEntry{}, domain.ErrInvalidID
	}

	var entry domain.LedgerEntry
	if err := s.db.WithContext(ctx).Preload("Item").First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LedgerEntry{}, domain.ErrNotFound
		}
		return domain.LedgerEntry{}, err
	}
	return entry, nil
}
