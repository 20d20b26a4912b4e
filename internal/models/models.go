// Package models defines the core record types flowing through the
// reconciliation pipeline: bank statement lines, general-ledger (AP) entries,
// and the match results pairing them.
//
// All monetary values are held as shopspring decimals. Records are created
// once per run from the input batches and treated as immutable afterwards.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MatchStatus classifies the outcome of matching one bank transaction.
type MatchStatus string

const (
	// MatchStatusMatched means the final score reached the match threshold.
	MatchStatusMatched MatchStatus = "Matched"
	// MatchStatusUnmatched means no ledger candidate scored high enough.
	MatchStatusUnmatched MatchStatus = "Unmatched"
)

// String returns the string representation of MatchStatus.
func (s MatchStatus) String() string {
	return string(s)
}

// IsValid checks if the match status is one of the known values.
func (s MatchStatus) IsValid() bool {
	return s == MatchStatusMatched || s == MatchStatusUnmatched
}

// BankTransaction is one normalized bank statement line. Exactly one of
// DebitAmount/CreditAmount is set after normalization; TotalAmount is the
// absolute magnitude used for matching.
type BankTransaction struct {
	Date         string           `json:"date"`
	Description  string           `json:"description"`
	DebitAmount  *decimal.Decimal `json:"debit,omitempty"`
	CreditAmount *decimal.Decimal `json:"credit,omitempty"`
	TotalAmount  decimal.Decimal  `json:"amount"`
}

// NewBankTransaction creates a BankTransaction with TotalAmount derived from
// whichever leg is populated.
func NewBankTransaction(date, description string, debit, credit *decimal.Decimal) *BankTransaction {
	tx := &BankTransaction{
		Date:         date,
		Description:  description,
		DebitAmount:  debit,
		CreditAmount: credit,
	}
	if debit != nil && debit.IsPositive() {
		tx.TotalAmount = debit.Abs()
	} else if credit != nil {
		tx.TotalAmount = credit.Abs()
	}
	return tx
}

// Validate performs basic validation on the BankTransaction.
func (t *BankTransaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("bank transaction description cannot be empty")
	}
	if t.TotalAmount.IsZero() {
		return fmt.Errorf("bank transaction amount cannot be zero")
	}
	if t.DebitAmount != nil && t.CreditAmount != nil {
		return fmt.Errorf("bank transaction cannot carry both debit and credit legs")
	}
	return nil
}

// IsDebit returns true if the debit leg is populated.
func (t *BankTransaction) IsDebit() bool {
	return t.DebitAmount != nil
}

// IsCredit returns true if the credit leg is populated.
func (t *BankTransaction) IsCredit() bool {
	return t.CreditAmount != nil
}

// DedupKey returns the key used to drop duplicate bank lines within a run:
// the description joined with the amount at fixed two-decimal precision.
func (t *BankTransaction) DedupKey() string {
	return t.Description + "-" + t.TotalAmount.StringFixed(2)
}

// String returns a string representation of the BankTransaction.
func (t *BankTransaction) String() string {
	return fmt.Sprintf("BankTransaction{Date: %s, Description: %s, Amount: %s}",
		t.Date, t.Description, t.TotalAmount.StringFixed(2))
}

// LedgerTransaction is one accounts-payable entry from the general-ledger
// export. The field set mirrors the 43-column check register schema; columns
// not used by matching are carried verbatim so output rows can reproduce the
// original record for audit.
type LedgerTransaction struct {
	VendorID            string          `json:"vendorId"`
	VendorName          string          `json:"vendorName"`
	CheckName           string          `json:"checkName"`
	CheckAddressLine1   string          `json:"checkAddressLine1"`
	CheckAddressLine2   string          `json:"checkAddressLine2"`
	CheckCity           string          `json:"checkCity"`
	CheckState          string          `json:"checkState"`
	CheckZipcode        string          `json:"checkZipcode"`
	CheckCountry        string          `json:"checkCountry"`
	CheckNumber         string          `json:"checkNumber"`
	Date                string          `json:"date"`
	Memo                string          `json:"memo"`
	CashAccount         string          `json:"cashAccount"`
	TotalPaid           string          `json:"totalPaid"`
	DiscountAccount     string          `json:"discountAccount"`
	Prepayment          string          `json:"prepayment"`
	CustomerPayment     string          `json:"customerPayment"`
	APDateCleared       string          `json:"apDateCleared"`
	DetailedPayments    string          `json:"detailedPayments"`
	NumDistributions    string          `json:"numberOfDistributions"`
	InvoicePaid         string          `json:"invoicePaid"`
	DiscountAmount      string          `json:"discountAmount"`
	Quantity            string          `json:"quantity"`
	StockingQuantity    string          `json:"stockingQuantity"`
	ItemID              string          `json:"itemId"`
	SerialNumber        string          `json:"serialNumber"`
	UMID                string          `json:"umId"`
	UMStockingUnits     string          `json:"umNoOfStockingUnits"`
	Description         string          `json:"description"`
	GLAccount           string          `json:"glAccount"`
	UnitPrice           string          `json:"unitPrice"`
	StockingUnitPrice   string          `json:"stockingUnitPrice"`
	UPCSKU              string          `json:"upcSku"`
	Weight              string          `json:"weight"`
	Amount              decimal.Decimal `json:"amount"`
	JobID               string          `json:"jobId"`
	UsedForReimbursable string          `json:"usedForReimbursableExpense"`
	TransactionPeriod   string          `json:"transactionPeriod"`
	TransactionNumber   string          `json:"transactionNumber"`
	VoidedByTransaction string          `json:"voidedByTransaction"`
	RecurNumber         string          `json:"recurNumber"`
	RecurFrequency      string          `json:"recurFrequency"`
	PaymentMethod       string          `json:"paymentMethod"`

	// OriginalRow preserves the raw source row for audit.
	OriginalRow string `json:"originalRow,omitempty"`
}

// String returns a string representation of the LedgerTransaction.
func (t *LedgerTransaction) String() string {
	return fmt.Sprintf("LedgerTransaction{Vendor: %s (%s), Check: %s, Amount: %s}",
		t.VendorName, t.VendorID, t.CheckNumber, t.Amount.StringFixed(2))
}

// MatchResult pairs one bank transaction with its ledger match.
// MatchedLedgerTransaction is nil whenever MatchStatus is Unmatched; a
// below-threshold candidate seen during scoring is never reported.
type MatchResult struct {
	BankTransaction          *BankTransaction   `json:"bankTransaction"`
	MatchedLedgerTransaction *LedgerTransaction `json:"matchedLedgerTransaction,omitempty"`
	MatchStatus              MatchStatus        `json:"matchStatus"`
	DocumentNumber           string             `json:"documentNumber"`
}

// IsMatched returns true if the result carries a committed ledger match.
func (r *MatchResult) IsMatched() bool {
	return r.MatchStatus == MatchStatusMatched
}

// RawBankRecord is the wire shape of one bank transaction as delivered by
// the statement extraction collaborator. Two field-naming conventions are
// accepted: the canonical lower-case form (date/description/debit/credit/
// amount) and the upper-case extraction form (DATE/DESCRIPTION/DEBITS/
// CREDITS/BALANCE). encoding/json matches names case-insensitively, so DATE
// and DESCRIPTION bind to the lower-case tags; the differently named amount
// legs get their own fields.
type RawBankRecord struct {
	Date        string     `json:"date"`
	Description string     `json:"description"`
	Debit       FlexAmount `json:"debit"`
	Credit      FlexAmount `json:"credit"`
	Amount      FlexAmount `json:"amount"`
	Debits      FlexAmount `json:"DEBITS"`
	Credits     FlexAmount `json:"CREDITS"`
	Balance     FlexAmount `json:"BALANCE"`
}

// HasUppercaseAmounts reports whether the record arrived in the extraction
// form carrying DEBITS/CREDITS legs.
func (r *RawBankRecord) HasUppercaseAmounts() bool {
	return r.Debits.Present || r.Credits.Present
}

// FlexAmount is a monetary field that may arrive as a JSON number, a string
// with currency noise ("$1,234.56"), or be absent entirely.
type FlexAmount struct {
	Value   decimal.Decimal
	Present bool
}

// UnmarshalJSON accepts numbers, numeric strings, and null.
func (f *FlexAmount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		d, err := ParseDecimalFromString(str)
		if err != nil {
			// Unparseable amounts degrade to absent rather than failing the record.
			return nil
		}
		f.Value = d
		f.Present = true
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	f.Value = decimal.NewFromFloat(num)
	f.Present = true
	return nil
}

// MarshalJSON renders the amount as a plain decimal string.
func (f FlexAmount) MarshalJSON() ([]byte, error) {
	if !f.Present {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value.String())
}

// IsPositive reports whether the amount is present and greater than zero.
func (f FlexAmount) IsPositive() bool {
	return f.Present && f.Value.IsPositive()
}

// ParseDecimalFromString parses a decimal value from a string, stripping
// currency symbols and thousand separators first.
func ParseDecimalFromString(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount string cannot be empty")
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("no numeric content in amount '%s'", s)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal format '%s': %w", s, err)
	}
	return d, nil
}

// ParseAmountOrZero parses an amount string, falling back to zero on any
// parse failure so one bad ledger amount cannot fail a whole batch.
func ParseAmountOrZero(s string) decimal.Decimal {
	d, err := ParseDecimalFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDateLoose attempts to parse a date using the formats seen in bank
// statements and ledger exports.
func ParseDateLoose(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date string cannot be empty")
	}

	formats := []string{
		"1/2/2006",
		"01/02/2006",
		"1/2/06",
		"01/02/06",
		"2006-01-02",
		"2006/01/02",
		"Jan 2, 2006",
		"January 2, 2006",
		time.RFC3339,
	}

	var lastErr error
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date '%s': %w", s, lastErr)
}

// CompareAmountsWithTolerance reports whether two amounts differ by strictly
// less than the tolerance.
func CompareAmountsWithTolerance(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(tolerance)
}

// DaysBetween returns the absolute whole-day difference between two dates.
func DaysBetween(a, b time.Time) int {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24)
}

// Statement period constants for the two reporting buckets.
const (
	DecemberStatementDate = "12/31/2024"
	DecemberPeriod        = "26"
	JanuaryStatementDate  = "1/31/2025"
	JanuaryPeriod         = "27"
)

// CollapseStatementDate folds a raw transaction date onto one of the two
// statement-period end dates. Anything mentioning "12/" is December;
// otherwise "1/" or "jan" means January; unrecognized dates default to
// December. The "12/" check runs first since December dates also contain
// "1/".
func CollapseStatementDate(raw string) (formatted, period string) {
	switch {
	case strings.Contains(raw, "12/"):
		return DecemberStatementDate, DecemberPeriod
	case strings.Contains(raw, "1/") || strings.Contains(strings.ToLower(raw), "jan"):
		return JanuaryStatementDate, JanuaryPeriod
	default:
		return DecemberStatementDate, DecemberPeriod
	}
}
