// Package seed bootstraps the rows the service cannot run without.
package seed

import (
	"errors"

	"gorm.io/gorm"

	invoicedomain "github.com/involine/involine/internal/invoice/domain"
)

const sequenceRowID = 1

// EnsureInvoiceSequence makes sure the invoice number counter row exists.
// Idempotent; an existing counter is never reset.
func EnsureInvoiceSequence(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var seq invoicedomain.InvoiceSequence
		err := tx.First(&seq, "id = ?", sequenceRowID).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&invoicedomain.InvoiceSequence{ID: sequenceRowID, Next: 0}).Error
	})
}
