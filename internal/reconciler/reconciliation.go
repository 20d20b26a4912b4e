// Package reconciler orchestrates the reconciliation pipeline: bank statement
// normalization, vendor catalog construction, transaction matching, and
// summary compilation. The reporter package turns the Result produced here
// into the upload CSV and operator reports.
package reconciler

import (
	"context"
	"fmt"
	"time"

	"bank-gl-reconciliation-service/internal/matcher"
	"bank-gl-reconciliation-service/internal/models"
	"bank-gl-reconciliation-service/internal/normalizer"
	"bank-gl-reconciliation-service/internal/vendors"
	"bank-gl-reconciliation-service/pkg/errors"
	"bank-gl-reconciliation-service/pkg/logger"
)

// Service runs complete reconciliation passes. One Service can serve many
// runs; all per-run state lives inside the matching engine's Match call.
type Service struct {
	normalizer *normalizer.Normalizer
	engine     *matcher.Engine
	rules      *vendors.RuleSet
	config     *Config
	logger     logger.Logger
}

// Config holds configuration for the reconciliation service.
type Config struct {
	// Matching configures the scoring engine. Nil means production scoring.
	Matching *matcher.Config

	// Rules is the vendor knowledge base shared by matching and reporting.
	// Nil means the production tables.
	Rules *vendors.RuleSet
}

// DefaultConfig returns the production reconciliation configuration.
func DefaultConfig() *Config {
	return &Config{
		Matching: matcher.DefaultConfig(),
		Rules:    vendors.DefaultRuleSet(),
	}
}

// Request carries the inputs for one reconciliation run.
type Request struct {
	// CompanyName labels the run in the result metadata.
	CompanyName string

	// BankRecords is the raw statement batch, either field casing.
	BankRecords []models.RawBankRecord

	// Ledger is the parsed general ledger export.
	Ledger []models.LedgerTransaction
}

// Validate checks that the request can be processed at all. Content-level
// problems (placeholder batches, amount-less rows) surface later from the
// normalizer.
func (r *Request) Validate() error {
	if len(r.BankRecords) == 0 {
		return errors.InputError(errors.CodeEmptyBatch, "no bank statement records provided")
	}
	if len(r.Ledger) == 0 {
		return errors.InputError(errors.CodeEmptyBatch, "no ledger transactions provided")
	}
	return nil
}

// Result is the outcome of one reconciliation run.
type Result struct {
	CompanyName string              `json:"company_name,omitempty"`
	Results     []models.MatchResult `json:"comparison_results"`
	Summary     Summary             `json:"stats"`
	ProcessedAt time.Time           `json:"processed_at"`

	// Catalog is the vendor view of the ledger, kept for reporting.
	Catalog vendors.Catalog `json:"-"`
}

// Summary mirrors the stats block reported to operators.
type Summary struct {
	TotalBankTransactions   int `json:"total_bank_transactions"`
	TotalLedgerTransactions int `json:"total_ledger_transactions"`
	MatchedTransactions     int `json:"matched_transactions"`
	UnmatchedTransactions   int `json:"unmatched_transactions"`
}

// MatchRate returns the matched fraction in percent.
func (s Summary) MatchRate() float64 {
	if s.TotalBankTransactions == 0 {
		return 0
	}
	return float64(s.MatchedTransactions) / float64(s.TotalBankTransactions) * 100
}

// NewService creates a reconciliation service. A nil config selects the
// production configuration.
func NewService(config *Config) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Rules == nil {
		config.Rules = vendors.DefaultRuleSet()
	}

	log := logger.GetGlobalLogger().WithComponent("reconciler")
	return &Service{
		normalizer: normalizer.New(log),
		engine:     matcher.NewEngine(config.Matching, config.Rules, log),
		rules:      config.Rules,
		config:     config,
		logger:     log,
	}
}

// Rules exposes the vendor knowledge base so the reporter works from the
// same tables the engine matched with.
func (s *Service) Rules() *vendors.RuleSet {
	return s.rules
}

// Reconcile runs the full pipeline for one request. Input problems return
// CategoryInput errors; a panic inside matching is converted to a
// CategoryMatching error so one poisoned batch cannot take the process down.
func (s *Service) Reconcile(ctx context.Context, request *Request) (*Result, error) {
	if request == nil {
		return nil, errors.InputError(errors.CodeEmptyBatch, "nil reconciliation request")
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	op := logger.NewOperationLogger("reconcile", s.logger).WithFields(logger.Fields{
		"company":        request.CompanyName,
		"bank_records":   len(request.BankRecords),
		"ledger_entries": len(request.Ledger),
	})

	op.Step("normalize")
	bankTxs, err := s.normalizer.Normalize(request.BankRecords)
	if err != nil {
		op.Error(err, "Statement normalization failed")
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, errors.CodeUnexpectedError,
			"reconciliation cancelled")
	}

	op.Step("catalog")
	catalog := vendors.BuildCatalog(request.Ledger)
	s.logger.WithFields(logger.Fields{
		"vendors": catalog.Size(),
		"entries": len(request.Ledger),
	}).Debug("Built vendor catalog from ledger")

	op.Step("match")
	results, err := s.matchSafely(bankTxs, request.Ledger)
	if err != nil {
		op.Error(err, "Transaction matching failed")
		return nil, err
	}

	summary := summarize(results, len(request.Ledger))
	op.WithFields(logger.Fields{
		"matched":   summary.MatchedTransactions,
		"unmatched": summary.UnmatchedTransactions,
	}).Success("Reconciliation run complete")

	return &Result{
		CompanyName: request.CompanyName,
		Results:     results,
		Summary:     summary,
		ProcessedAt: time.Now(),
		Catalog:     catalog,
	}, nil
}

// matchSafely runs the matching engine with panic containment at the batch
// boundary.
func (s *Service) matchSafely(bankTxs []models.BankTransaction, ledger []models.LedgerTransaction) (results []models.MatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", fmt.Sprint(r)).Error("Matching panicked")
			err = errors.MatchingError("batch matching", fmt.Errorf("panic: %v", r))
			results = nil
		}
	}()
	return s.engine.Match(bankTxs, ledger), nil
}

func summarize(results []models.MatchResult, ledgerCount int) Summary {
	summary := Summary{
		TotalBankTransactions:   len(results),
		TotalLedgerTransactions: ledgerCount,
	}
	for i := range results {
		if results[i].IsMatched() {
			summary.MatchedTransactions++
		} else {
			summary.UnmatchedTransactions++
		}
	}
	return summary
}
