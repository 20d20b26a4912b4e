package matcher

import (
	"fmt"
	"strings"

	"bank-gl-reconciliation-service/internal/models"
	"bank-gl-reconciliation-service/internal/vendors"
)

// directDepositPrefix marks ledger check numbers that are really ACH/direct
// deposit references rather than physical checks.
const directDepositPrefix = "DD"

// assignDocumentNumber derives the upload document number for one bank
// transaction. Check-style payees get physical check numbers: the explicit
// number from the description when present, a vendor's reserved number
// cycled by batch position otherwise, or a synthetic series number as the
// last resort. Everything else gets a CHK or DD reference, reusing the
// matched ledger entry's check number when its prefix already agrees.
func (e *Engine) assignDocumentNumber(description string, index int, best *models.LedgerTransaction) string {
	if e.rules.IsCheckStyle(description) {
		if number := vendors.ExtractCheckNumber(description); number != "" {
			return number
		}
		for i := range e.rules.KnownVendors {
			kv := &e.rules.KnownVendors[i]
			if kv.Matches(description) && len(kv.CheckNumbers) > 0 {
				return kv.ReservedCheckNumber(index)
			}
		}
		return e.rules.SyntheticCheckNumber(index)
	}

	descLower := strings.ToLower(description)
	mentionsCheck := strings.Contains(descLower, "check") ||
		strings.Contains(descLower, "cheque") ||
		strings.Contains(descLower, "chk")

	ledgerCheckNumber := ""
	if best != nil {
		ledgerCheckNumber = best.CheckNumber
	}
	ledgerHasPhysicalCheck := ledgerCheckNumber != "" &&
		!strings.HasPrefix(ledgerCheckNumber, directDepositPrefix)

	if mentionsCheck || ledgerHasPhysicalCheck {
		if ledgerHasPhysicalCheck {
			return ledgerCheckNumber
		}
		return fmt.Sprintf("CHK%03d", index+1)
	}

	if strings.HasPrefix(ledgerCheckNumber, directDepositPrefix) {
		return ledgerCheckNumber
	}
	return fmt.Sprintf("DD%03d", index+1)
}
