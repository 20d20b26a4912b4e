package vendors

import (
	"regexp"
	"strings"
)

// KeyInfo carries vendor identity pulled directly from a bank description.
type KeyInfo struct {
	VendorID   string
	VendorName string
	GLAccount  string
	LoanNumber string
}

// KeyInfoRule recognizes one vendor identity in a description. AnyOf matches
// when any keyword occurs; AllOf requires a hit in every keyword group;
// Pattern is an alternative trigger alongside AnyOf.
type KeyInfoRule struct {
	VendorID   string
	VendorName string
	GLAccount  string
	AnyOf      []string
	AllOf      [][]string
	Pattern    *regexp.Regexp
}

func (r KeyInfoRule) matches(descLower string) bool {
	if len(r.AllOf) > 0 {
		for _, group := range r.AllOf {
			if !containsAny(descLower, group) {
				return false
			}
		}
		return true
	}
	if containsAny(descLower, r.AnyOf) {
		return true
	}
	return r.Pattern != nil && r.Pattern.MatchString(descLower)
}

var loanNumberPattern = regexp.MustCompile(`(?i)loan\s*#?\s*(\d+)`)

// ExtractKeyInfo pulls vendor identity from a bank description by scanning
// the key-info rules in order. The first matching rule wins. A loan number,
// when present, is captured independently of the vendor rules.
func (rs *RuleSet) ExtractKeyInfo(description string) KeyInfo {
	var info KeyInfo
	if description == "" {
		return info
	}

	if m := loanNumberPattern.FindStringSubmatch(description); m != nil {
		info.LoanNumber = m[1]
	}

	descLower := strings.ToLower(description)
	for _, rule := range rs.KeyInfoRules {
		if rule.matches(descLower) {
			info.VendorID = rule.VendorID
			info.VendorName = rule.VendorName
			info.GLAccount = rule.GLAccount
			break
		}
	}
	return info
}

// DetermineVendorID infers a vendor ID from a bank description: key-info
// rules first, then a few fixed payee patterns, then the first three
// characters of the first word uppercased, else "".
func (rs *RuleSet) DetermineVendorID(description string) string {
	if description == "" {
		return ""
	}

	if info := rs.ExtractKeyInfo(description); info.VendorID != "" {
		return info.VendorID
	}

	descLower := strings.ToLower(description)
	switch {
	case strings.Contains(descLower, "payroll"):
		return "PAY"
	case strings.Contains(descLower, "city of barnwell"):
		return "CIT"
	case strings.Contains(descLower, "mcgregor"):
		return "McG"
	}

	fields := strings.Fields(description)
	if len(fields) > 0 && len(fields[0]) >= 3 {
		return strings.ToUpper(fields[0][:3])
	}
	return ""
}

// ResolveDisplayName maps an inferred vendor ID to its printable payee name
// and optional G/L account override.
func (rs *RuleSet) ResolveDisplayName(vendorID string) (DisplayName, bool) {
	dn, ok := rs.DisplayNames[vendorID]
	return dn, ok
}

func defaultKeyInfoRules() []KeyInfoRule {
	return []KeyInfoRule{
		{
			VendorID:   "AME",
			VendorName: "AMERICAN EXPRESS",
			AnyOf:      []string{"american express", "amex"},
		},
		{
			VendorID:   "EXP",
			VendorName: "EXPEDIA INC.",
			GLAccount:  "62520",
			AnyOf:      []string{"expedia"},
			Pattern:    regexp.MustCompile(`exp(?:edia)?(?:\s|,|\.|\*|inc)`),
		},
		{
			VendorID:   "BAN",
			VendorName: "BANK CHARGES",
			AllOf: [][]string{
				{"bank", "bankcard"},
				{"charge", "fee", "disc"},
			},
		},
		{
			VendorID:   "DOM",
			VendorName: "DOMINION ENERGY",
			AnyOf:      []string{"dominion energy", "dominion"},
		},
		{
			VendorID:   "BOO",
			VendorName: "BOOKING.COM",
			GLAccount:  "62520",
			AnyOf:      []string{"booking.com", "booking"},
			Pattern:    regexp.MustCompile(`boo(?:king)?(?:\.|com|\s)`),
		},
		{
			VendorID:   "IRS",
			VendorName: "IRS USA TAX",
			AnyOf:      []string{"irs"},
			Pattern:    regexp.MustCompile(`tax.*payment|payment.*tax`),
		},
		{
			VendorID:   "LOA",
			VendorName: "LOAN",
			AnyOf:      []string{"loan"},
		},
		{
			VendorID:   "SC DOR",
			VendorName: "SC DOR WITHHOLDING",
			AnyOf:      []string{"sc dep", "sc dor"},
		},
		{
			VendorID:   "NEW",
			VendorName: "NEW YORK LIFE",
			AnyOf:      []string{"new york life", "ny life"},
		},
		{
			VendorID:   "SBA",
			VendorName: "SBA LOAN PAYMENT",
			AnyOf:      []string{"sba loan"},
		},
		{
			VendorID:   "GRO",
			VendorName: "GROW FINANCIAL",
			AnyOf:      []string{"grow financial"},
		},
	}
}
