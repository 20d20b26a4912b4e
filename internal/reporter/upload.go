// Package reporter turns reconciliation results into their output artifacts:
// the accounting upload CSV and operator-facing summary reports.
package reporter

import (
	"fmt"
	"regexp"
	"strings"

	"bank-gl-reconciliation-service/internal/models"
	"bank-gl-reconciliation-service/internal/vendors"
	"bank-gl-reconciliation-service/pkg/errors"
	"bank-gl-reconciliation-service/pkg/logger"
)

// uploadHeader is the check register import schema expected by the accounting
// system. Row values are emitted in exactly this column order.
var uploadHeader = []string{
	"Vendor ID",
	"Vendor Name",
	"Check Name",
	"Check Address-Line One",
	"Check Address-Line Two",
	"Check City",
	"Check State",
	"Check Zipcode",
	"Check Country",
	"Check Number",
	"Date",
	"Memo",
	"Cash Account",
	"Total Paid on Invoice(s)",
	"Discount Account",
	"Prepayment",
	"Customer Payment",
	"AP Date Cleared in Bank Rec",
	"Detailed Payments",
	"Number of Distributions",
	"Invoice Paid",
	"Discount Amount",
	"Quantity",
	"Stocking Quantity",
	"Item ID",
	"Serial Number",
	"U/M ID",
	"U/M No. of Stocking Units",
	"Description",
	"G/L Account",
	"Unit Price",
	"Stocking Unit Price",
	"UPC / SKU",
	"Weight",
	"Amount",
	"Job ID",
	"Used for Reimbursable Expense",
	"Transaction Period",
	"Transaction Number",
	"Voided by Transaction",
	"Recur Number",
	"Recur Frequency",
	"Payment Method",
}

// checkPayeeFallback is the narrower payee net used only when a result
// arrives without a document number and a check number series must be
// synthesized for it.
var checkPayeeFallback = regexp.MustCompile(`(?i)sunil|maria|city|kumar|tadamatta|tch`)

// Generator assembles the upload CSV from match results using the same
// vendor knowledge base the matching engine ran with.
type Generator struct {
	rules  *vendors.RuleSet
	logger logger.Logger
}

// NewGenerator creates a Generator. Nil arguments fall back to production
// defaults.
func NewGenerator(rules *vendors.RuleSet, log logger.Logger) *Generator {
	if rules == nil {
		rules = vendors.DefaultRuleSet()
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Generator{
		rules:  rules,
		logger: log.WithComponent("reporter"),
	}
}

// GenerateUploadCSV renders match results as the upload CSV. Duplicate rows
// (same date, description and amount) are dropped after their first
// occurrence but keep their transaction number slot, so numbering stays
// aligned with the full result list. Values are joined without quoting, as
// the import side expects raw comma-separated fields.
func (g *Generator) GenerateUploadCSV(results []models.MatchResult) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.WithField("panic", fmt.Sprint(r)).Error("Upload row generation panicked")
			out = ""
			err = errors.GenerationError("upload row assembly", fmt.Errorf("panic: %v", r))
		}
	}()

	lines := make([]string, 0, len(results)+1)
	lines = append(lines, strings.Join(uploadHeader, ","))

	seen := make(map[string]bool, len(results))
	emitted := 0
	for index := range results {
		row, ok := g.uploadRow(&results[index], index, seen)
		if !ok {
			continue
		}
		lines = append(lines, strings.Join(row, ","))
		emitted++
	}

	g.logger.WithFields(logger.Fields{
		"results": len(results),
		"rows":    emitted,
	}).Info("Generated upload rows")

	return strings.Join(lines, "\n"), nil
}

// uploadRow renders one match result. ok is false for duplicate rows.
func (g *Generator) uploadRow(result *models.MatchResult, index int, seen map[string]bool) ([]string, bool) {
	bankTx := result.BankTransaction
	glTx := result.MatchedLedgerTransaction

	description := bankTx.Description
	amount := bankTx.TotalAmount.Abs().StringFixed(2)
	formattedDate, period := models.CollapseStatementDate(bankTx.Date)

	key := formattedDate + "-" + description + "-" + amount
	if seen[key] {
		return nil, false
	}
	seen[key] = true

	var vendorID, vendorName, checkName, glAccount string
	if glTx != nil {
		vendorID = glTx.VendorID
		vendorName = glTx.VendorName
		checkName = glTx.CheckName
		glAccount = glTx.GLAccount
	}

	if sv := g.rules.FindSpecialCase(description); sv != nil {
		vendorID = sv.VendorID
		vendorName = sv.VendorName
		checkName = sv.CheckName
		glAccount = sv.GLAccount
	} else if vendorName == "" {
		vendorID = g.rules.DetermineVendorID(description)
		if dn, ok := g.rules.ResolveDisplayName(vendorID); ok {
			vendorName = dn.VendorName
			checkName = dn.VendorName
			if dn.GLAccount != "" {
				glAccount = dn.GLAccount
			}
		} else {
			vendorName = fallbackVendorName(description)
			checkName = vendorName
		}
	}

	if glAccount == "" {
		glAccount = g.rules.DetermineGLAccount(description)
	}

	documentNumber := result.DocumentNumber
	if documentNumber == "" {
		if checkPayeeFallback.MatchString(description) {
			documentNumber = g.rules.SyntheticCheckNumber(index)
		} else {
			documentNumber = fmt.Sprintf("DD%03d", index+1)
		}
	}

	return []string{
		vendorID,
		vendorName,
		checkName,
		"", // Check Address-Line One
		"", // Check Address-Line Two
		"", // Check City
		"", // Check State
		"", // Check Zipcode
		"", // Check Country
		documentNumber,
		formattedDate,
		"", // Memo
		"10000",
		"0", // Total Paid on Invoice(s)
		"", // Discount Account
		"FALSE",
		"FALSE",
		formattedDate, // AP Date Cleared in Bank Rec
		"Yes",
		"1", // Number of Distributions
		"", // Invoice Paid
		"0",
		"0",
		"0",
		"", // Item ID
		"", // Serial Number
		"", // U/M ID
		"1", // U/M No. of Stocking Units
		description,
		glAccount,
		"0",
		"0",
		"", // UPC / SKU
		"0",
		amount,
		"", // Job ID
		"FALSE",
		period,
		fmt.Sprintf("%d", index+1),
		"", // Voided by Transaction
		"0",
		"0",
		"Check",
	}, true
}

// fallbackVendorName derives a payee name from the first three words of the
// description.
func fallbackVendorName(description string) string {
	words := strings.Fields(description)
	if len(words) == 0 {
		return "Unknown Vendor"
	}
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, " ")
}
