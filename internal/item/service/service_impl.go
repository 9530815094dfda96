package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/involine/involine/internal/item/domain"
	"github.com/involine/involine/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var currencyRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

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
		log:   p.Log.Named("item.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateItemRequest) (domain.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Item{}, domain.ErrInvalidName
	}

	unit := domain.Unit(strings.TrimSpace(req.Unit))
	if unit == "" {
		unit = domain.UnitPiece
	}
	if !domain.ValidUnit(unit) {
		return domain.Item{}, domain.ErrInvalidUnit
	}

	var durationType *domain.DurationType
	if raw := strings.TrimSpace(req.DurationType); raw != "" {
		dt := domain.DurationType(raw)
		if !domain.ValidDurationType(dt) {
			return domain.Item{}, domain.ErrInvalidDurationType
		}
		durationType = &dt
	}

	if req.UnitPrice.IsNegative() {
		return domain.Item{}, domain.ErrInvalidPrice
	}
	if req.VATRate.IsNegative() {
		return domain.Item{}, domain.ErrInvalidVATRate
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if !currencyRe.MatchString(currency) {
		return domain.Item{}, domain.ErrInvalidCurrency
	}

	now := time.Now().UTC()
	item := domain.Item{
		ID:           s.genID.Generate(),
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		Unit:         unit,
		DurationType: durationType,
		UnitPrice:    req.UnitPrice.Round(2),
		Currency:     currency,
		VATRate:      req.VATRate.Round(2),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if sku := strings.TrimSpace(req.SKU); sku != "" {
		item.SKU = &sku
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Item{}, domain.ErrSKUExists
		}
		return domain.Item{}, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	if err := s.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Item, error) {
	itemID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Item{}, domain.ErrInvalidID
	}

	var item domain.Item
	if err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Item{}, domain.ErrNotFound
		}
		return domain.Item{}, err
	}
	return item, nil
}
