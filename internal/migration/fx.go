package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/involine/involine/internal/config"
	customerdomain "github.com/involine/involine/internal/customer/domain"
	invoicedomain "github.com/involine/involine/internal/invoice/domain"
	itemdomain "github.com/involine/involine/internal/item/domain"
	ledgerdomain "github.com/involine/involine/internal/ledgerentry/domain"
	"github.com/involine/involine/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql are dev/test conveniences; AutoMigrate keeps
			// them in sync without maintaining per-dialect SQL.
			if err := conn.AutoMigrate(
				&customerdomain.Customer{},
				&itemdomain.Item{},
				&ledgerdomain.LedgerEntry{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceItem{},
				&invoicedomain.InvoiceSequence{},
			); err != nil {
				return err
			}
		}
		return seed.EnsureInvoiceSequence(conn)
	}),
)
