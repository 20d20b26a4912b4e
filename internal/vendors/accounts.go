package vendors

import (
	"regexp"
	"strings"
)

// GLRule maps description keywords to a general ledger account. AnyOf matches
// when any keyword occurs; AllOf requires a hit in every keyword group;
// Pattern is an alternative trigger alongside AnyOf.
type GLRule struct {
	Account string
	AnyOf   []string
	AllOf   [][]string
	Pattern *regexp.Regexp
}

func (r GLRule) matches(descLower string) bool {
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

// DetermineGLAccount infers a G/L account from a bank description by scanning
// the GL rules in order. The first matching rule wins; unrecognized
// descriptions land on the default suspense account.
func (rs *RuleSet) DetermineGLAccount(description string) string {
	if description == "" {
		return rs.DefaultGLAccount
	}

	descLower := strings.ToLower(description)
	for _, rule := range rs.GLRules {
		if rule.matches(descLower) {
			return rule.Account
		}
	}
	return rs.DefaultGLAccount
}

func defaultGLRules() []GLRule {
	return []GLRule{
		{Account: "29000", AnyOf: []string{"loan payment", "loan # "}},
		{Account: "62250", AllOf: [][]string{
			{"bank", "bankcard"},
			{"charge", "fee", "disc"},
		}},
		{
			Account: "62500",
			AnyOf:   []string{"payroll", "salary"},
			Pattern: regexp.MustCompile(`\b(maria|torres|sunil|kumar|christoper|shakenna|emily|staricia|nakia|aleyah)\b`),
		},
		{Account: "75400", AnyOf: []string{"usataxpymt", "sc dept revenue", "tax"}},
		{Account: "68300", AnyOf: []string{"dominion energy", "energy", "power"}},
		{
			Account: "62520",
			AnyOf:   []string{"booking", "booking.com", "expedia", "hotel", "travel", "flight"},
			Pattern: regexp.MustCompile(`boo(?:king)?(?:\.|com|\s)|exp(?:edia)?(?:\s|,|\.|\*|inc)`),
		},
		{Account: "61300", AnyOf: []string{"insurance", "premium", "insura"}},
		{Account: "61350", AnyOf: []string{"life", "york life"}},
		{Account: "62000", AnyOf: []string{"maintenance", "repair"}},
		{Account: "75500", AnyOf: []string{"property", "land", "treasurer"}},
		{Account: "75000", AnyOf: []string{"city", "acc tax", "barnwell"}},
		{Account: "61500", AnyOf: []string{"accounting", "mcgregor"}},
		{Account: "20025", AnyOf: []string{"sba loan"}},
		{Account: "20005", AnyOf: []string{"amex", "american express"}},
		{Account: "39003-2", AnyOf: []string{"online transfer"}},
		{Account: "10900", AnyOf: []string{"bank"}},
		{Account: "67000", AnyOf: []string{"apartment rent", "rent"}},
	}
}
