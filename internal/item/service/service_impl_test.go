package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/involine/involine/internal/item/domain"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Item{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{DB: db, Log: zap.NewNop(), GenID: node})
}

func TestCreateItem(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.Create(context.Background(), domain.CreateItemRequest{
		Name:         "Room",
		Unit:         "night",
		DurationType: "night",
		UnitPrice:    decimal.RequireFromString("100.005"),
		Currency:     "eur",
		VATRate:      decimal.RequireFromString("21"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.UnitNight, item.Unit)
	require.NotNil(t, item.DurationType)
	assert.Equal(t, domain.DurationNight, *item.DurationType)
	assert.Equal(t, "EUR", item.Currency, "currency is normalized to upper case")
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("100.01")), "price rounds to cents")

	got, err := svc.GetByID(context.Background(), item.ID.String())
	require.NoError(t, err)
	assert.Equal(t, item.Name, got.Name)
}

func TestCreateItem_DefaultsUnitToPieces(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.Create(context.Background(), domain.CreateItemRequest{
		Name:      "Bottled water",
		UnitPrice: decimal.RequireFromString("2.50"),
		Currency:  "EUR",
		VATRate:   decimal.RequireFromString("9"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UnitPiece, item.Unit)
	assert.Nil(t, item.DurationType)
}

func TestCreateItem_Validation(t *testing.T) {
	svc := newTestService(t)
	valid := domain.CreateItemRequest{
		Name:      "Room",
		Unit:      "night",
		UnitPrice: decimal.RequireFromString("100.00"),
		Currency:  "EUR",
		VATRate:   decimal.RequireFromString("21"),
	}

	tests := []struct {
		name    string
		mutate  func(*domain.CreateItemRequest)
		wantErr error
	}{
		{"empty name", func(r *domain.CreateItemRequest) { r.Name = "  " }, domain.ErrInvalidName},
		{"bad unit", func(r *domain.CreateItemRequest) { r.Unit = "furlong" }, domain.ErrInvalidUnit},
		{"bad duration type", func(r *domain.CreateItemRequest) { r.DurationType = "week" }, domain.ErrInvalidDurationType},
		{"negative price", func(r *domain.CreateItemRequest) { r.UnitPrice = decimal.RequireFromString("-1") }, domain.ErrInvalidPrice},
		{"negative vat", func(r *domain.CreateItemRequest) { r.VATRate = decimal.RequireFromString("-1") }, domain.ErrInvalidVATRate},
		{"bad currency", func(r *domain.CreateItemRequest) { r.Currency = "EURO" }, domain.ErrInvalidCurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateItem_DuplicateSKU(t *testing.T) {
	svc := newTestService(t)
	req := domain.CreateItemRequest{
		Name:      "Room",
		SKU:       "ROOM-STD",
		Unit:      "night",
		UnitPrice: decimal.RequireFromString("100.00"),
		Currency:  "EUR",
		VATRate:   decimal.RequireFromString("21"),
	}

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrSKUExists)
}

func TestGetItemByID_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByID(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	node, _ := snowflake.NewNode(9)
	_, err = svc.GetByID(context.Background(), node.Generate().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
