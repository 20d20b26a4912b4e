package similarity

import "regexp"

// Features captures the semantic categories detected in a transaction
// description. Each flag is set when the description mentions that category.
type Features struct {
	Payment    bool
	Deposit    bool
	Transfer   bool
	Fee        bool
	Tax        bool
	Utility    bool
	Insurance  bool
	Payroll    bool
	Rent       bool
	Loan       bool
	Travel     bool
	CreditCard bool
}

var featurePatterns = []struct {
	set func(*Features)
	re  *regexp.Regexp
}{
	{func(f *Features) { f.Payment = true }, regexp.MustCompile(`(?i)payment|paid|pay|remit`)},
	{func(f *Features) { f.Deposit = true }, regexp.MustCompile(`(?i)deposit|credit|received`)},
	{func(f *Features) { f.Transfer = true }, regexp.MustCompile(`(?i)transfer|move|xfer|wire`)},
	{func(f *Features) { f.Fee = true }, regexp.MustCompile(`(?i)fee|charge|service charge|disc`)},
	{func(f *Features) { f.Tax = true }, regexp.MustCompile(`(?i)tax|irs|revenue|treasury`)},
	{func(f *Features) { f.Utility = true }, regexp.MustCompile(`(?i)utility|electric|water|gas|energy|power|dominion`)},
	{func(f *Features) { f.Insurance = true }, regexp.MustCompile(`(?i)insurance|premium|policy|life|coverage`)},
	{func(f *Features) { f.Payroll = true }, regexp.MustCompile(`(?i)payroll|salary|wage|employee|staff`)},
	{func(f *Features) { f.Rent = true }, regexp.MustCompile(`(?i)rent|lease|property`)},
	{func(f *Features) { f.Loan = true }, regexp.MustCompile(`(?i)loan|mortgage|debt|finance|financing`)},
	{func(f *Features) { f.Travel = true }, regexp.MustCompile(`(?i)travel|booking|expedia|hotel|flight|airline`)},
	{func(f *Features) { f.CreditCard = true }, regexp.MustCompile(`(?i)credit card|cc payment|visa|mastercard|amex|express`)},
}

// ExtractFeatures detects the semantic categories present in a description.
func ExtractFeatures(description string) Features {
	var f Features
	for _, fp := range featurePatterns {
		if fp.re.MatchString(description) {
			fp.set(&f)
		}
	}
	return f
}

func (f Features) flags() []bool {
	return []bool{
		f.Payment, f.Deposit, f.Transfer, f.Fee, f.Tax, f.Utility,
		f.Insurance, f.Payroll, f.Rent, f.Loan, f.Travel, f.CreditCard,
	}
}

// CompareFeatures returns the overlap ratio between two feature sets:
// the number of categories both share divided by the number either has.
// Two feature-less descriptions score 0.
func CompareFeatures(f1, f2 Features) float64 {
	flags1 := f1.flags()
	flags2 := f2.flags()

	both := 0
	either := 0
	for i := range flags1 {
		if flags1[i] && flags2[i] {
			both++
		}
		if flags1[i] || flags2[i] {
			either++
		}
	}
	if either == 0 {
		return 0.0
	}
	return float64(both) / float64(either)
}
