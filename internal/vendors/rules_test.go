package vendors

import (
	"testing"

	"github.com/shopspring/decimal"

	"bank-gl-reconciliation-service/internal/models"
)

func TestFindKnownVendor(t *testing.T) {
	rs := DefaultRuleSet()

	tests := []struct {
		name       string
		desc       string
		wantVendor string
	}{
		{"full payee name", "Check to Sunil Kumar Tadamatta Christopher", "Sunil Kumar Tadamatta Christopher"},
		{"misspelled christoper", "sunil kumar tadamatta christoper", "Sunil Kumar Tadamatta Christopher"},
		{"maria torres", "MARIA TORRES payroll", "Maria Torres"},
		{"sunil tch", "Sunil TCH check", "Sunil TCH"},
		{"city of barnwell", "CITY OF BARNWELL utilities", "CITY OF BARNWELL ACC TAX"},
		{"loan 490", "LOAN $490 monthly", "LOAN $490"},
		{"loan 490 without dollar sign", "loan 490", "LOAN $490"},
		{"booking", "BOOKING.COM charge", "BOOKING.COM"},
		{"expedia", "EXPEDIA INC travel", "EXPEDIA INC."},
		{"exp abbreviation", "EXP* HOTELS", "EXPEDIA INC."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := rs.FindKnownVendor(tt.desc)
			if kv == nil {
				t.Fatalf("expected known vendor for %q", tt.desc)
			}
			if kv.VendorName != tt.wantVendor {
				t.Errorf("got vendor %q, want %q", kv.VendorName, tt.wantVendor)
			}
		})
	}

	if kv := rs.FindKnownVendor("GROCERY STORE PURCHASE"); kv != nil {
		t.Errorf("unexpected known vendor %q for grocery purchase", kv.VendorName)
	}
	if kv := rs.FindKnownVendor(""); kv != nil {
		t.Error("empty description must not match any vendor")
	}
}

func TestReservedCheckNumberCycles(t *testing.T) {
	rs := DefaultRuleSet()
	maria := rs.FindKnownVendor("maria torres")
	if maria == nil {
		t.Fatal("expected maria torres vendor")
	}

	if got := maria.ReservedCheckNumber(0); got != "1693" {
		t.Errorf("index 0: got %s, want 1693", got)
	}
	if got := maria.ReservedCheckNumber(5); got != "1693" {
		t.Errorf("index 5 should wrap to first number, got %s", got)
	}
	if got := maria.ReservedCheckNumber(4); got != "1706" {
		t.Errorf("index 4: got %s, want 1706", got)
	}

	booking := rs.FindKnownVendor("booking.com")
	if got := booking.ReservedCheckNumber(0); got != "" {
		t.Errorf("vendor without reserved numbers should return empty, got %s", got)
	}
}

func TestSyntheticCheckNumber(t *testing.T) {
	rs := DefaultRuleSet()
	if got := rs.SyntheticCheckNumber(0); got != "1339" {
		t.Errorf("index 0: got %s, want 1339", got)
	}
	if got := rs.SyntheticCheckNumber(29); got != "1368" {
		t.Errorf("index 29: got %s, want 1368", got)
	}
	if got := rs.SyntheticCheckNumber(30); got != "1339" {
		t.Errorf("index 30 should wrap, got %s", got)
	}
}

func TestSyntheticLedgerMatch(t *testing.T) {
	rs := DefaultRuleSet()
	kv := rs.FindKnownVendor("city of barnwell water")
	bankTx := &models.BankTransaction{
		Date:        "12/15/2024",
		Description: "city of barnwell water",
		TotalAmount: decimal.NewFromFloat(210.55),
	}

	entry := kv.SyntheticLedgerMatch(bankTx)
	if entry.VendorID != "CIT" {
		t.Errorf("got vendor ID %q, want CIT", entry.VendorID)
	}
	if entry.GLAccount != "75000" {
		t.Errorf("got GL account %q, want 75000", entry.GLAccount)
	}
	if entry.CheckName != entry.VendorName {
		t.Error("check name should mirror vendor name")
	}
	if !entry.Amount.Equal(bankTx.TotalAmount) {
		t.Errorf("amount should carry over, got %s", entry.Amount)
	}
	if entry.CashAccount != "10000" || entry.PaymentMethod != "Check" {
		t.Error("expected upload-row fillers preset")
	}
	if entry.APDateCleared != bankTx.Date {
		t.Error("AP cleared date should mirror transaction date")
	}
}

func TestFindSpecialCase(t *testing.T) {
	rs := DefaultRuleSet()

	sv := rs.FindSpecialCase("check 1694 CITY OF BARNWELL")
	if sv == nil {
		t.Fatal("expected special case for city of barnwell")
	}
	if sv.VendorID != "CIT" || sv.GLAccount != "75000" {
		t.Errorf("unexpected special case identity: %+v", sv)
	}

	if sv := rs.FindSpecialCase("EXPEDIA INC"); sv != nil {
		t.Error("expedia is a known vendor but not a special-case payee")
	}
}

func TestExtractCheckNumber(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"Check 1339 to Sunil", "1339"},
		{"check no 1706 maria", "1706"},
		{"check 2345 out of series", ""},
		{"reference 13390 too long", ""},
		{"no number here", ""},
	}
	for _, tt := range tests {
		if got := ExtractCheckNumber(tt.desc); got != tt.want {
			t.Errorf("ExtractCheckNumber(%q) = %q, want %q", tt.desc, got, tt.want)
		}
	}
}

func TestIsCheckStyle(t *testing.T) {
	rs := DefaultRuleSet()

	checkStyle := []string{
		"Check to Maria Torres",
		"sunil payment",
		"CITY OF BARNWELL",
		"tadamatta wire",
		"Sunil TCH",
	}
	for _, desc := range checkStyle {
		if !rs.IsCheckStyle(desc) {
			t.Errorf("expected %q to be check-style", desc)
		}
	}

	plain := []string{
		"DOMINION ENERGY payment",
		"AMEX EPAYMENT",
		"online transfer",
	}
	for _, desc := range plain {
		if rs.IsCheckStyle(desc) {
			t.Errorf("did not expect %q to be check-style", desc)
		}
	}
}

func TestIsCheckDetail(t *testing.T) {
	rs := DefaultRuleSet()

	if !rs.IsCheckDetail("anything", "1450") {
		t.Error("bare 1000-series document number marks a check detail")
	}
	if rs.IsCheckDetail("anything", "DD001") {
		t.Error("DD document number without payee is not a check detail")
	}
	if !rs.IsCheckDetail("kumar payment", "DD001") {
		t.Error("kumar in description marks a check detail")
	}
}
