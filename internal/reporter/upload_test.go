package reporter

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"bank-gl-reconciliation-service/internal/models"
)

func matchedResult(date, description, amount, documentNumber string, glTx *models.LedgerTransaction) models.MatchResult {
	status := models.MatchStatusUnmatched
	if glTx != nil {
		status = models.MatchStatusMatched
	}
	return models.MatchResult{
		BankTransaction: &models.BankTransaction{
			Date:        date,
			Description: description,
			TotalAmount: decimal.RequireFromString(amount),
		},
		MatchedLedgerTransaction: glTx,
		MatchStatus:              status,
		DocumentNumber:           documentNumber,
	}
}

func generateRows(t *testing.T, results []models.MatchResult) []string {
	t.Helper()
	out, err := NewGenerator(nil, nil).GenerateUploadCSV(results)
	if err != nil {
		t.Fatalf("GenerateUploadCSV returned error: %v", err)
	}
	return strings.Split(out, "\n")
}

func TestGenerateUploadCSVHeader(t *testing.T) {
	lines := generateRows(t, nil)
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}

	columns := strings.Split(lines[0], ",")
	if len(columns) != 43 {
		t.Fatalf("header has %d columns, want 43", len(columns))
	}
	if columns[0] != "Vendor ID" || columns[42] != "Payment Method" {
		t.Errorf("unexpected header boundaries: %q ... %q", columns[0], columns[42])
	}
}

func TestGenerateUploadCSVMatchedRow(t *testing.T) {
	glTx := &models.LedgerTransaction{
		VendorID:   "DOM",
		VendorName: "DOMINION ENERGY",
		CheckName:  "DOMINION ENERGY",
		GLAccount:  "68300",
	}
	lines := generateRows(t, []models.MatchResult{
		matchedResult("12/10/2024", "DOMINION ENERGY PAYMENT", "185.25", "DD017", glTx),
	})
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}

	fields := strings.Split(lines[1], ",")
	checks := map[int]string{
		0:  "DOM",
		1:  "DOMINION ENERGY",
		2:  "DOMINION ENERGY",
		9:  "DD017",
		10: "12/31/2024",
		12: "10000",
		17: "12/31/2024",
		18: "Yes",
		28: "DOMINION ENERGY PAYMENT",
		29: "68300",
		34: "185.25",
		37: "26",
		38: "1",
		42: "Check",
	}
	for col, want := range checks {
		if fields[col] != want {
			t.Errorf("column %d (%s) = %q, want %q", col, uploadHeader[col], fields[col], want)
		}
	}
}

func TestGenerateUploadCSVSpecialCaseOverridesLedger(t *testing.T) {
	glTx := &models.LedgerTransaction{
		VendorID:   "XYZ",
		VendorName: "Whoever",
		CheckName:  "Whoever",
		GLAccount:  "11111",
	}
	lines := generateRows(t, []models.MatchResult{
		matchedResult("12/02/2024", "Maria Torres weekly", "100", "1693", glTx),
	})

	fields := strings.Split(lines[1], ",")
	if fields[0] != "" {
		t.Errorf("vendor id = %q, want empty", fields[0])
	}
	if fields[1] != "Maria Torres" || fields[2] != "Maria Torres" {
		t.Errorf("vendor/check name = %q/%q, want Maria Torres", fields[1], fields[2])
	}
	if fields[29] != "62500" {
		t.Errorf("GL account = %q, want 62500", fields[29])
	}
}

func TestGenerateUploadCSVInfersVendorForUnmatched(t *testing.T) {
	lines := generateRows(t, []models.MatchResult{
		matchedResult("1/05/2025", "DOMINION ENERGY BILL PAY", "210.40", "DD002", nil),
	})

	fields := strings.Split(lines[1], ",")
	if fields[0] != "DOM" {
		t.Errorf("vendor id = %q, want DOM", fields[0])
	}
	if fields[1] != "DOMINION ENERGY" {
		t.Errorf("vendor name = %q, want DOMINION ENERGY", fields[1])
	}
	if fields[29] != "68300" {
		t.Errorf("GL account = %q, want 68300", fields[29])
	}
	if fields[10] != "1/31/2025" || fields[37] != "27" {
		t.Errorf("date/period = %q/%q, want January bucket", fields[10], fields[37])
	}
}

func TestGenerateUploadCSVDisplayNameOverridesGL(t *testing.T) {
	lines := generateRows(t, []models.MatchResult{
		matchedResult("12/15/2024", "BOOKING.COM RESERVATION", "412.00", "DD001", nil),
	})

	fields := strings.Split(lines[1], ",")
	if fields[0] != "BOO" || fields[1] != "BOOKING.COM" {
		t.Errorf("vendor = %q/%q, want BOO/BOOKING.COM", fields[0], fields[1])
	}
	if fields[29] != "62520" {
		t.Errorf("GL account = %q, want the travel account override", fields[29])
	}
}

func TestGenerateUploadCSVFallbackVendorName(t *testing.T) {
	lines := generateRows(t, []models.MatchResult{
		matchedResult("12/20/2024", "RANDOM STUFF HERE NOW", "33.00", "", nil),
	})

	fields := strings.Split(lines[1], ",")
	if fields[1] != "RANDOM STUFF HERE" {
		t.Errorf("vendor name = %q, want first three words", fields[1])
	}
	if fields[29] != "99999" {
		t.Errorf("GL account = %q, want the suspense default", fields[29])
	}
	if fields[9] != "DD001" {
		t.Errorf("document number = %q, want DD001", fields[9])
	}
}

func TestGenerateUploadCSVDedupKeepsNumbering(t *testing.T) {
	results := []models.MatchResult{
		matchedResult("12/10/2024", "DOMINION ENERGY PAYMENT", "185.25", "DD001", nil),
		matchedResult("12/10/2024", "DOMINION ENERGY PAYMENT", "185.25", "DD002", nil),
		matchedResult("12/11/2024", "OFFICE SUPPLY STORE", "44.10", "DD003", nil),
	}
	lines := generateRows(t, results)
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}

	// The duplicate is dropped but the surviving third row keeps its
	// original transaction number slot.
	last := strings.Split(lines[2], ",")
	if last[38] != "3" {
		t.Errorf("transaction number = %q, want 3", last[38])
	}
}

func TestFallbackVendorName(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"ACME SUPPLY CO INVOICE 42", "ACME SUPPLY CO"},
		{"TWO WORDS", "TWO WORDS"},
		{"", "Unknown Vendor"},
	}
	for _, tt := range tests {
		if got := fallbackVendorName(tt.description); got != tt.want {
			t.Errorf("fallbackVendorName(%q) = %q, want %q", tt.description, got, tt.want)
		}
	}
}
