package reconciler

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"bank-gl-reconciliation-service/internal/models"
	"bank-gl-reconciliation-service/internal/normalizer"
	"bank-gl-reconciliation-service/pkg/errors"
)

func debitRecord(date, description, amount string) models.RawBankRecord {
	return models.RawBankRecord{
		Date:        date,
		Description: description,
		Debit: models.FlexAmount{
			Value:   decimal.RequireFromString(amount),
			Present: true,
		},
	}
}

func ledgerEntry(vendorID, vendorName, date, description, glAccount, amount string) models.LedgerTransaction {
	return models.LedgerTransaction{
		VendorID:    vendorID,
		VendorName:  vendorName,
		Date:        date,
		Description: description,
		GLAccount:   glAccount,
		Amount:      decimal.RequireFromString(amount),
	}
}

func TestReconcileEndToEnd(t *testing.T) {
	service := NewService(nil)

	request := &Request{
		CompanyName: "Barnwell Hospitality",
		BankRecords: []models.RawBankRecord{
			debitRecord("12/10/2024", "DOMINION ENERGY PAYMENT", "185.25"),
			debitRecord("12/02/2024", "Maria Torres", "100"),
		},
		Ledger: []models.LedgerTransaction{
			ledgerEntry("DOM", "DOMINION ENERGY", "12/10/2024", "DOMINION ENERGY PAYMENT", "68300", "185.25"),
		},
	}

	result, err := service.Reconcile(context.Background(), request)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	if result.CompanyName != "Barnwell Hospitality" {
		t.Errorf("company name = %q", result.CompanyName)
	}
	if len(result.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(result.Results))
	}

	summary := result.Summary
	if summary.TotalBankTransactions != 2 {
		t.Errorf("total bank = %d, want 2", summary.TotalBankTransactions)
	}
	if summary.TotalLedgerTransactions != 1 {
		t.Errorf("total ledger = %d, want 1", summary.TotalLedgerTransactions)
	}
	if summary.MatchedTransactions != 2 {
		t.Errorf("matched = %d, want 2", summary.MatchedTransactions)
	}
	if summary.UnmatchedTransactions != 0 {
		t.Errorf("unmatched = %d, want 0", summary.UnmatchedTransactions)
	}

	if result.Catalog.Size() != 1 {
		t.Errorf("catalog size = %d, want 1", result.Catalog.Size())
	}
}

func TestReconcileRejectsEmptyRequest(t *testing.T) {
	service := NewService(nil)

	tests := []struct {
		name    string
		request *Request
	}{
		{"nil request", nil},
		{"no bank records", &Request{Ledger: []models.LedgerTransaction{ledgerEntry("VEN", "V", "", "x", "", "1")}}},
		{"no ledger", &Request{BankRecords: []models.RawBankRecord{debitRecord("", "x", "1")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Reconcile(context.Background(), tt.request)
			if err == nil {
				t.Fatal("expected an error")
			}
			recErr, ok := errors.AsReconcilerError(err)
			if !ok {
				t.Fatalf("expected a categorized error, got %T", err)
			}
			if recErr.Category != errors.CategoryInput {
				t.Errorf("category = %s, want %s", recErr.Category, errors.CategoryInput)
			}
		})
	}
}

func TestReconcilePlaceholderOnlyBatch(t *testing.T) {
	service := NewService(nil)

	request := &Request{
		BankRecords: []models.RawBankRecord{
			{Description: normalizer.PlaceholderMarker},
			{Description: normalizer.PlaceholderMarker},
		},
		Ledger: []models.LedgerTransaction{
			ledgerEntry("VEN", "V", "12/01/2024", "entry", "99999", "10"),
		},
	}

	_, err := service.Reconcile(context.Background(), request)
	if err == nil {
		t.Fatal("expected an error for a placeholder-only batch")
	}
	recErr, ok := errors.AsReconcilerError(err)
	if !ok {
		t.Fatalf("expected a categorized error, got %T", err)
	}
	if recErr.Code != errors.CodePlaceholderOnly {
		t.Errorf("code = %s, want %s", recErr.Code, errors.CodePlaceholderOnly)
	}
}

func TestReconcileCancelledContext(t *testing.T) {
	service := NewService(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	request := &Request{
		BankRecords: []models.RawBankRecord{
			debitRecord("12/10/2024", "DOMINION ENERGY PAYMENT", "185.25"),
		},
		Ledger: []models.LedgerTransaction{
			ledgerEntry("DOM", "DOMINION ENERGY", "12/10/2024", "DOMINION ENERGY PAYMENT", "68300", "185.25"),
		},
	}

	if _, err := service.Reconcile(ctx, request); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestSummaryMatchRate(t *testing.T) {
	s := Summary{TotalBankTransactions: 4, MatchedTransactions: 3}
	if got := s.MatchRate(); got != 75 {
		t.Errorf("match rate = %v, want 75", got)
	}
	var empty Summary
	if got := empty.MatchRate(); got != 0 {
		t.Errorf("empty match rate = %v, want 0", got)
	}
}
