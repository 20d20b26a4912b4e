// Package vendors holds the vendor knowledge base: known vendor patterns with
// reserved check numbers, special-case payees for upload rows, description
// keyword tables for vendor identity and G/L account inference, and the
// catalog built from ledger data. All tables are data so deployments with a
// different vendor population can swap them without touching the engine.
package vendors

import (
	"regexp"
	"strconv"
	"strings"

	"bank-gl-reconciliation-service/internal/models"
)

// KnownVendor describes a payee recognized directly from a bank description.
// A non-empty CheckNumbers list reserves physical check numbers for payees
// paid by check.
type KnownVendor struct {
	Pattern      *regexp.Regexp
	VendorID     string
	VendorName   string
	GLAccount    string
	CheckNumbers []string
}

// Matches reports whether the description names this vendor.
func (kv KnownVendor) Matches(description string) bool {
	return description != "" && kv.Pattern.MatchString(description)
}

// SpecialCaseVendor describes a payee whose upload-row identity overrides
// whatever the matched ledger entry carries.
type SpecialCaseVendor struct {
	Pattern    *regexp.Regexp
	VendorID   string
	VendorName string
	CheckName  string
	GLAccount  string
}

// Matches reports whether the description names this payee.
func (sv SpecialCaseVendor) Matches(description string) bool {
	return description != "" && sv.Pattern.MatchString(description)
}

// RuleSet bundles every vendor table the pipeline consults. The matching
// engine and the report generator both take a RuleSet so the tables stay
// swappable as one unit.
type RuleSet struct {
	KnownVendors []KnownVendor
	SpecialCases []SpecialCaseVendor

	// DisplayNames maps an inferred vendor ID to the payee name printed on
	// upload rows. A non-empty GLAccount also overrides the account.
	DisplayNames map[string]DisplayName

	// KeyInfoRules and GLRules drive identity and account inference from
	// raw descriptions. Both are evaluated in order, first hit wins.
	KeyInfoRules []KeyInfoRule
	GLRules      []GLRule

	// DefaultGLAccount is assigned when no GL rule fires.
	DefaultGLAccount string

	// CheckStylePattern flags bank descriptions that name a check payee,
	// which switches document numbering to physical check numbers.
	CheckStylePattern *regexp.Regexp

	// CheckDetailPattern is the wider payee net used when regenerating
	// document numbers during upload-row assembly.
	CheckDetailPattern *regexp.Regexp

	// CheckSeriesBase and CheckSeriesSpan define the synthetic check number
	// series used when a check-style description carries no explicit number
	// and no vendor reserves one.
	CheckSeriesBase int
	CheckSeriesSpan int
}

// DisplayName is the printable identity for an inferred vendor ID.
type DisplayName struct {
	VendorName string
	GLAccount  string
}

var (
	checkTokenPattern = regexp.MustCompile(`\b(1\d{3})\b`)
	checkSeriesToken  = regexp.MustCompile(`^1\d{3}$`)
)

// ExtractCheckNumber returns the explicit check number token (1000-1999)
// embedded in a description, or "" when none is present.
func ExtractCheckNumber(description string) string {
	m := checkTokenPattern.FindStringSubmatch(description)
	if m == nil {
		return ""
	}
	return m[1]
}

// IsCheckSeriesNumber reports whether a document number is a bare physical
// check number in the 1000-1999 series.
func IsCheckSeriesNumber(documentNumber string) bool {
	return checkSeriesToken.MatchString(documentNumber)
}

// IsCheckStyle reports whether the description names a check payee.
func (rs *RuleSet) IsCheckStyle(description string) bool {
	return rs.CheckStylePattern.MatchString(description)
}

// IsCheckDetail reports whether an upload row represents a check detail,
// either by its document number or by its description.
func (rs *RuleSet) IsCheckDetail(description, documentNumber string) bool {
	return IsCheckSeriesNumber(documentNumber) || rs.CheckDetailPattern.MatchString(description)
}

// FindKnownVendor returns the first known vendor whose pattern matches the
// description, or nil.
func (rs *RuleSet) FindKnownVendor(description string) *KnownVendor {
	for i := range rs.KnownVendors {
		if rs.KnownVendors[i].Matches(description) {
			return &rs.KnownVendors[i]
		}
	}
	return nil
}

// FindSpecialCase returns the first special-case payee whose pattern matches
// the description, or nil.
func (rs *RuleSet) FindSpecialCase(description string) *SpecialCaseVendor {
	for i := range rs.SpecialCases {
		if rs.SpecialCases[i].Matches(description) {
			return &rs.SpecialCases[i]
		}
	}
	return nil
}

// SyntheticCheckNumber returns the synthetic check number for a transaction's
// position in the batch, cycling through the configured series.
func (rs *RuleSet) SyntheticCheckNumber(index int) string {
	n := rs.CheckSeriesBase + index%rs.CheckSeriesSpan
	return strconv.Itoa(n)
}

// ReservedCheckNumber picks a reserved check number for a known vendor,
// cycling by the transaction's position in the batch.
func (kv *KnownVendor) ReservedCheckNumber(index int) string {
	if len(kv.CheckNumbers) == 0 {
		return ""
	}
	return kv.CheckNumbers[index%len(kv.CheckNumbers)]
}

// SyntheticLedgerMatch builds a ledger-shaped entry for a bank transaction
// that names a known vendor but has no counterpart in the uploaded ledger.
// The entry carries the vendor's identity and the bank transaction's own
// description, amount and date, with upload-row fillers preset.
func (kv *KnownVendor) SyntheticLedgerMatch(bankTx *models.BankTransaction) *models.LedgerTransaction {
	return &models.LedgerTransaction{
		VendorID:            kv.VendorID,
		VendorName:          kv.VendorName,
		CheckName:           kv.VendorName,
		GLAccount:           kv.GLAccount,
		Description:         bankTx.Description,
		Amount:              bankTx.TotalAmount,
		Date:                bankTx.Date,
		APDateCleared:       bankTx.Date,
		CashAccount:         "10000",
		TotalPaid:           "0",
		Prepayment:          "FALSE",
		CustomerPayment:     "FALSE",
		DetailedPayments:    "Yes",
		NumDistributions:    "1",
		DiscountAmount:      "0",
		Quantity:            "0",
		StockingQuantity:    "0",
		UMStockingUnits:     "1",
		UnitPrice:           "0",
		StockingUnitPrice:   "0",
		Weight:              "0",
		UsedForReimbursable: "FALSE",
		RecurNumber:         "0",
		RecurFrequency:      "0",
		PaymentMethod:       "Check",
	}
}

// DefaultRuleSet returns the production vendor knowledge base.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		KnownVendors: []KnownVendor{
			{
				Pattern:    regexp.MustCompile(`(?i)sunil\s+kumar\s+tadamatta\s+christop(h)?er`),
				VendorName: "Sunil Kumar Tadamatta Christopher",
				GLAccount:  "62500",
				CheckNumbers: []string{
					"1339", "1689", "1690", "1692", "1695", "1697", "1701", "1704", "1705",
				},
			},
			{
				Pattern:      regexp.MustCompile(`(?i)maria\s+torres`),
				VendorName:   "Maria Torres",
				GLAccount:    "62500",
				CheckNumbers: []string{"1693", "1696", "1700", "1702", "1706"},
			},
			{
				Pattern:      regexp.MustCompile(`(?i)sunil\s+tch`),
				VendorName:   "Sunil TCH",
				GLAccount:    "62000",
				CheckNumbers: []string{"1340"},
			},
			{
				Pattern:      regexp.MustCompile(`(?i)city\s+of\s+barnwell`),
				VendorID:     "CIT",
				VendorName:   "CITY OF BARNWELL ACC TAX",
				GLAccount:    "75000",
				CheckNumbers: []string{"1694", "1703"},
			},
			{
				Pattern:    regexp.MustCompile(`(?i)loan\s+\$?490`),
				VendorID:   "LOA 5358",
				VendorName: "LOAN $490",
				GLAccount:  "29000",
			},
			{
				Pattern:    regexp.MustCompile(`(?i)booking(?:\.com)?`),
				VendorID:   "BOO",
				VendorName: "BOOKING.COM",
				GLAccount:  "62520",
			},
			{
				Pattern:    regexp.MustCompile(`(?i)exp(?:edia)?(?:\s|,|\.|\*|inc)`),
				VendorID:   "EXP",
				VendorName: "EXPEDIA INC.",
				GLAccount:  "62520",
			},
		},
		SpecialCases: []SpecialCaseVendor{
			{
				Pattern:    regexp.MustCompile(`(?i)sunil\s+kumar\s+tadamatta\s+christop(h)?er`),
				VendorName: "Sunil Kumar Tadamatta Christopher",
				CheckName:  "Sunil Kumar Tadamatta Christopher",
				GLAccount:  "62500",
			},
			{
				Pattern:    regexp.MustCompile(`(?i)maria\s+torres`),
				VendorName: "Maria Torres",
				CheckName:  "Maria Torres",
				GLAccount:  "62500",
			},
			{
				Pattern:    regexp.MustCompile(`(?i)sunil\s+tch`),
				VendorName: "Sunil TCH",
				CheckName:  "Sunil TCH",
				GLAccount:  "62000",
			},
			{
				Pattern:    regexp.MustCompile(`(?i)city\s+of\s+barnwell`),
				VendorID:   "CIT",
				VendorName: "CITY OF BARNWELL ACC TAX",
				CheckName:  "CITY OF BARNWELL ACC TAX",
				GLAccount:  "75000",
			},
		},
		DisplayNames: map[string]DisplayName{
			"LOA":       {VendorName: "LOAN $490"},
			"BAN":       {VendorName: "BANK CHARGES"},
			"GRO":       {VendorName: "GROW FINANCIAL GROW OLB"},
			"DOM":       {VendorName: "DOMINION ENERGY"},
			"AME":       {VendorName: "AMERICAN EXPRESS"},
			"IRS":       {VendorName: "IRS USA TAX"},
			"SC DOR WH": {VendorName: "SC DOR WITHHOLDING"},
			"BOO":       {VendorName: "BOOKING.COM", GLAccount: "62520"},
			"EXP":       {VendorName: "EXPEDIA INC.", GLAccount: "62520"},
			"NEW":       {VendorName: "NEW YORK LIFE"},
			"SBA":       {VendorName: "SBA LOAN PAYMENT"},
		},
		KeyInfoRules:     defaultKeyInfoRules(),
		GLRules:          defaultGLRules(),
		DefaultGLAccount: "99999",

		CheckStylePattern:  regexp.MustCompile(`(?i)sunil|maria|city|tadamatta|torres|christop(h)?er|tch`),
		CheckDetailPattern: regexp.MustCompile(`(?i)sunil|maria|city|kumar|tadamatta|christopher|tch|torres`),

		CheckSeriesBase: 1339,
		CheckSeriesSpan: 30,
	}
}

// containsAny reports whether descLower contains at least one keyword.
func containsAny(descLower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(descLower, kw) {
			return true
		}
	}
	return false
}
