package reconciler

import (
	"context"

	"bank-gl-reconciliation-service/internal/parsers"
	"bank-gl-reconciliation-service/pkg/logger"
)

// FileRequest names the input files for a file-based reconciliation run.
type FileRequest struct {
	CompanyName string

	// BankFile is the extracted bank statement batch (JSON).
	BankFile string

	// LedgerFile is the general ledger export (CSV).
	LedgerFile string
}

// ReconcileFiles parses both input files and runs the pipeline. Parse
// failures come back as CategoryFile or CategoryParse errors so the CLI can
// map them to exit codes.
func (s *Service) ReconcileFiles(ctx context.Context, request *FileRequest) (*Result, error) {
	bankParser := parsers.NewBankParser()
	records, err := bankParser.ParseBankFile(request.BankFile)
	if err != nil {
		return nil, err
	}

	ledgerParser := parsers.NewLedgerParser(nil)
	ledger, stats, err := ledgerParser.ParseLedgerFile(request.LedgerFile)
	if err != nil {
		return nil, err
	}
	if stats != nil && stats.ErrorCount > 0 {
		s.logger.WithFields(logger.Fields{
			"file":   request.LedgerFile,
			"errors": stats.ErrorCount,
			"parsed": stats.RecordsParsed,
		}).Warn("Ledger file parsed with errors")
	}

	return s.Reconcile(ctx, &Request{
		CompanyName: request.CompanyName,
		BankRecords: records,
		Ledger:      ledger,
	})
}
