package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"bank-gl-reconciliation-service/internal/models"
	"bank-gl-reconciliation-service/internal/reconciler"
)

// SummaryReport is the structured operator view of one reconciliation run.
type SummaryReport struct {
	CompanyName string             `json:"company_name,omitempty"`
	ProcessedAt time.Time          `json:"processed_at"`
	Stats       reconciler.Summary `json:"stats"`
	MatchRate   float64            `json:"match_rate_percent"`
	Unmatched   []UnmatchedItem    `json:"unmatched_transactions,omitempty"`
}

// UnmatchedItem describes one bank transaction that found no ledger
// counterpart.
type UnmatchedItem struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// BuildSummaryReport compiles the operator summary from a reconciliation
// result.
func BuildSummaryReport(result *reconciler.Result) *SummaryReport {
	report := &SummaryReport{
		CompanyName: result.CompanyName,
		ProcessedAt: result.ProcessedAt,
		Stats:       result.Summary,
		MatchRate:   result.Summary.MatchRate(),
	}
	for i := range result.Results {
		r := &result.Results[i]
		if r.MatchStatus != models.MatchStatusUnmatched {
			continue
		}
		report.Unmatched = append(report.Unmatched, UnmatchedItem{
			Date:        r.BankTransaction.Date,
			Description: r.BankTransaction.Description,
			Amount:      r.BankTransaction.TotalAmount.StringFixed(2),
		})
	}
	return report
}

// WriteConsoleSummary renders the summary for terminal display.
func WriteConsoleSummary(w io.Writer, result *reconciler.Result) error {
	report := BuildSummaryReport(result)

	var b strings.Builder
	b.WriteString("Reconciliation Summary\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	if report.CompanyName != "" {
		fmt.Fprintf(&b, "Company:             %s\n", report.CompanyName)
	}
	fmt.Fprintf(&b, "Bank transactions:   %d\n", report.Stats.TotalBankTransactions)
	fmt.Fprintf(&b, "Ledger transactions: %d\n", report.Stats.TotalLedgerTransactions)
	fmt.Fprintf(&b, "Matched:             %d\n", report.Stats.MatchedTransactions)
	fmt.Fprintf(&b, "Unmatched:           %d\n", report.Stats.UnmatchedTransactions)
	fmt.Fprintf(&b, "Match rate:          %.1f%%\n", report.MatchRate)

	if len(report.Unmatched) > 0 {
		b.WriteString("\nUnmatched transactions:\n")
		for _, item := range report.Unmatched {
			fmt.Fprintf(&b, "  %-12s %-50s %12s\n", item.Date, truncate(item.Description, 50), item.Amount)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// MarshalJSONSummary renders the summary as indented JSON for programmatic
// consumption.
func MarshalJSONSummary(result *reconciler.Result) ([]byte, error) {
	return json.MarshalIndent(BuildSummaryReport(result), "", "  ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
