// Package normalizer turns raw bank statement records into canonical bank
// transactions. Statement extracts arrive in two shapes, lowercase
// (date/description/debit/credit/amount) and uppercase
// (DATE/DESCRIPTION/DEBITS/CREDITS/BALANCE), sometimes mixed in one batch.
// Normalization collapses both onto one transaction type, drops placeholder
// and amount-less rows, and rejects batches with nothing left to process.
package normalizer

import (
	"strings"

	"github.com/shopspring/decimal"

	"bank-gl-reconciliation-service/internal/models"
	"bank-gl-reconciliation-service/pkg/errors"
	"bank-gl-reconciliation-service/pkg/logger"
)

// PlaceholderMarker identifies synthetic rows injected upstream when a
// statement extract produced no usable data.
const PlaceholderMarker = "Default transaction - please replace with actual data"

// Normalizer canonicalizes raw bank statement batches.
type Normalizer struct {
	logger logger.Logger
}

// New creates a Normalizer.
func New(log logger.Logger) *Normalizer {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Normalizer{logger: log.WithComponent("normalizer")}
}

// Normalize converts a raw statement batch into canonical bank transactions.
// Placeholder rows and rows without any positive amount are dropped. A batch
// consisting entirely of placeholders, or left empty after filtering, is
// rejected rather than silently producing an empty run.
func (n *Normalizer) Normalize(records []models.RawBankRecord) ([]models.BankTransaction, error) {
	if len(records) == 0 {
		return nil, errors.InputError(errors.CodeEmptyBatch, "bank statement batch is empty")
	}

	if allPlaceholders(records) {
		return nil, errors.InputError(errors.CodePlaceholderOnly, "")
	}

	transactions := make([]models.BankTransaction, 0, len(records))
	dropped := 0
	for i := range records {
		rec := &records[i]
		if isPlaceholder(rec.Description) {
			dropped++
			continue
		}
		if !hasAnyAmount(rec) {
			dropped++
			continue
		}
		transactions = append(transactions, canonicalize(rec))
	}

	if dropped > 0 {
		n.logger.WithFields(logger.Fields{
			"received": len(records),
			"dropped":  dropped,
			"kept":     len(transactions),
		}).Info("Filtered bank statement batch")
	}

	if len(transactions) == 0 {
		return nil, errors.InputError(errors.CodeEmptyBatch,
			"no transactions with usable amounts after filtering")
	}

	return transactions, nil
}

func isPlaceholder(description string) bool {
	return strings.Contains(description, PlaceholderMarker)
}

func allPlaceholders(records []models.RawBankRecord) bool {
	for i := range records {
		if !isPlaceholder(records[i].Description) {
			return false
		}
	}
	return true
}

func hasAnyAmount(rec *models.RawBankRecord) bool {
	return rec.Debit.IsPositive() ||
		rec.Credit.IsPositive() ||
		rec.Amount.IsPositive() ||
		rec.Debits.IsPositive() ||
		rec.Credits.IsPositive()
}

// canonicalize maps a raw record onto a bank transaction. The lowercase shape
// takes precedence over the uppercase one within each leg; a record carrying
// positive amounts on both legs is settled by resolveLegs.
func canonicalize(rec *models.RawBankRecord) models.BankTransaction {
	tx := models.BankTransaction{
		Date:        rec.Date,
		Description: rec.Description,
	}

	debit := firstPositive(rec.Debit, rec.Debits)
	credit := firstPositive(rec.Credit, rec.Credits)
	if debit != nil && credit != nil {
		if resolveLegs(rec.Description, *debit, *credit) == legDebit {
			credit = nil
		} else {
			debit = nil
		}
	}
	if debit != nil {
		tx.DebitAmount = debit
	}
	if credit != nil {
		tx.CreditAmount = credit
	}

	switch {
	case debit != nil:
		tx.TotalAmount = *debit
	case credit != nil:
		tx.TotalAmount = *credit
	case rec.Amount.Present:
		tx.TotalAmount = rec.Amount.Value
	default:
		tx.TotalAmount = decimal.Zero
	}

	return tx
}

func firstPositive(amounts ...models.FlexAmount) *decimal.Decimal {
	for _, a := range amounts {
		if a.IsPositive() {
			v := a.Value
			return &v
		}
	}
	return nil
}
