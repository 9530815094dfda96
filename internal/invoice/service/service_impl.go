package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/involine/involine/internal/config"
	customerdomain "github.com/involine/involine/internal/customer/domain"
	"github.com/involine/involine/internal/exchangerate"
	invoicedomain "github.com/involine/involine/internal/invoice/domain"
	ledgerdomain "github.com/involine/involine/internal/ledgerentry/domain"
)

var currencyRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Rates   exchangerate.Resolver
	Profile *config.BusinessProfileHolder
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	rates   exchangerate.Resolver
	profile *config.BusinessProfileHolder
}

func New(p Params) invoicedomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("invoice.service"),
		genID:   p.GenID,
		rates:   p.Rates,
		profile: p.Profile,
	}
}

// Generate bills every unbilled ledger entry of the customer overlapping the
// requested period, in one transaction: match entries, resolve one rate per
// source currency as of the issue date, compute lines, persist the invoice
// and flip the entries to billed. Any failure rolls the whole thing back.
func (s *Service) Generate(ctx context.Context, req invoicedomain.GenerateRequest) (invoicedomain.Invoice, error) {
	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidCustomerID
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() || req.EndDate.Before(req.StartDate) {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidPeriod
	}
	if req.IssueDate.IsZero() {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidIssueDate
	}
	targetCurrency := strings.ToUpper(strings.TrimSpace(req.TargetCurrency))
	if !currencyRe.MatchString(targetCurrency) {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidCurrency
	}

	periodStart := midnight(req.StartDate)
	periodEnd := midnight(req.EndDate).Add(24*time.Hour - time.Nanosecond)
	issueDate := midnight(req.IssueDate)

	profile := s.profile.Get()
	if strings.TrimSpace(profile.BusinessName) == "" || !currencyRe.MatchString(profile.DefaultCurrency) {
		return invoicedomain.Invoice{}, invoicedomain.ErrBusinessProfileMissing
	}

	var invoiceID snowflake.ID
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer customerdomain.Customer
		if err := tx.First(&customer, "id = ?", customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invoicedomain.ErrCustomerNotFound
			}
			return err
		}

		entries, err := s.matchUnbilled(tx, customerID, periodStart, periodEnd)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return invoicedomain.ErrNoEntriesFound
		}

		rates, err := s.resolveRates(ctx, entries, issueDate, targetCurrency)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		invoiceID = s.genID.Generate()

		subtotal := decimal.Zero
		totalVAT := decimal.Zero
		items := make([]invoicedomain.InvoiceItem, 0, len(entries))
		for _, entry := range entries {
			line, err := computeLine(entry, rates[entry.Item.Currency], targetCurrency)
			if err != nil {
				return err
			}
			if line.DurationFallback {
				s.log.Warn("duration calculation failed, billing without multiplier",
					zap.String("entry_id", entry.ID.String()),
				)
			}
			line.ID = s.genID.Generate()
			line.InvoiceID = invoiceID
			line.CreatedAt = now
			subtotal = subtotal.Add(line.LineTotal)
			totalVAT = totalVAT.Add(line.LineVAT)
			items = append(items, line)
		}

		invoiceNumber, err := s.nextInvoiceNumber(tx)
		if err != nil {
			return err
		}

		invoice := invoicedomain.Invoice{
			ID:            invoiceID,
			InvoiceNumber: invoiceNumber,
			CustomerID:    customerID,
			IssueDate:     issueDate,
			Subtotal:      subtotal,
			TotalVAT:      totalVAT,
			GrandTotal:    subtotal.Add(totalVAT),
			Currency:      targetCurrency,
			Status:        invoicedomain.InvoiceStatusIssued,
			Notes:         strings.TrimSpace(req.Notes),
			Metadata: datatypes.JSONMap{
				"period_start": periodStart.Format("2006-01-02"),
				"period_end":   midnight(req.EndDate).Format("2006-01-02"),
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if req.DueDate != nil {
			due := midnight(*req.DueDate)
			invoice.DueDate = &due
		}

		if err := tx.Omit("Customer", "Items").Create(&invoice).Error; err != nil {
			return err
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		// Compare-and-set on billing_status: a concurrent generation that
		// claimed any matched entry first makes the count short, and this
		// whole transaction rolls back instead of double billing.
		entryIDs := make([]snowflake.ID, 0, len(entries))
		for _, entry := range entries {
			entryIDs = append(entryIDs, entry.ID)
		}
		res := tx.Model(&ledgerdomain.LedgerEntry{}).
			Where("id IN ? AND billing_status = ?", entryIDs, ledgerdomain.BillingStatusUnbilled).
			Updates(map[string]any{
				"billing_status": ledgerdomain.BillingStatusBilled,
				"invoice_id":     invoiceID,
				"updated_at":     now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(entryIDs)) {
			return invoicedomain.ErrEntriesAlreadyBilled
		}

		return nil
	})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	s.log.Info("invoice generated",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("customer_id", customerID.String()),
		zap.String("currency", targetCurrency),
	)

	return s.loadHydrated(ctx, invoiceID)
}

func (s *Service) List(ctx context.Context) ([]invoicedomain.Invoice, error) {
	var invoices []invoicedomain.Invoice
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Order("issue_date desc").
		Order("invoice_number desc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidID
	}
	return s.loadHydrated(ctx, invoiceID)
}

func (s *Service) loadHydrated(ctx context.Context, id snowflake.ID) (invoicedomain.Invoice, error) {
	var invoice invoicedomain.Invoice
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invoicedomain.Invoice{}, invoicedomain.ErrInvoiceNotFound
		}
		return invoicedomain.Invoice{}, err
	}
	return invoice, nil
}

// matchUnbilled mirrors ledgerdomain.Overlaps: entries overlapping the period,
// including open-ended ones, still unbilled, joined with their item.
func (s *Service) matchUnbilled(tx *gorm.DB, customerID snowflake.ID, periodStart, periodEnd time.Time) ([]ledgerdomain.LedgerEntry, error) {
	var entries []ledgerdomain.LedgerEntry
	err := tx.Preload("Item").
		Where("customer_id = ? AND billing_status = ?", customerID, ledgerdomain.BillingStatusUnbilled).
		Where("start_date <= ? AND (end_date >= ? OR end_date IS NULL)", periodEnd, periodStart).
		Order("start_date asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// resolveRates resolves one rate per distinct source currency for the issue
// date. A single failed lookup aborts the whole generation.
func (s *Service) resolveRates(ctx context.Context, entries []ledgerdomain.LedgerEntry, issueDate time.Time, targetCurrency string) (map[string]decimal.Decimal, error) {
	memo := exchangerate.NewMemo(s.rates)
	rates := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		if entry.Item == nil || entry.Item.Currency == "" {
			return nil, fmt.Errorf("%w: entry %s has no item currency", invoicedomain.ErrInvalidEntryData, entry.ID)
		}
		source := entry.Item.Currency
		if _, ok := rates[source]; ok {
			continue
		}
		rate, err := memo.Resolve(ctx, issueDate, source, targetCurrency)
		if err != nil {
			return nil, err
		}
		rates[source] = rate
	}
	return rates, nil
}

// nextInvoiceNumber increments the sequence row inside the transaction; the
// row lock taken by the UPDATE serializes concurrent generations.
func (s *Service) nextInvoiceNumber(tx *gorm.DB) (string, error) {
	res := tx.Exec(`UPDATE invoice_sequences SET next = next + 1 WHERE id = 1`)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Exec(`INSERT INTO invoice_sequences (id, next) VALUES (1, 1)`).Error; err != nil {
			return "", err
		}
	}

	var next int64
	if err := tx.Raw(`SELECT next FROM invoice_sequences WHERE id = 1`).Scan(&next).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%06d", next), nil
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
