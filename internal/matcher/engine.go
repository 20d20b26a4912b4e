// Package matcher pairs bank statement transactions with general ledger
// entries. Candidates are scored through five explicit stages, each only
// consulted while the running best score sits below the match threshold:
//
//  1. known-vendor recognition, which fabricates a ledger-shaped match for
//     payees the knowledge base recognizes directly from the description
//  2. explicit check-number lookup for check-style transactions
//  3. weighted scoring over amount, description similarity, vendor mentions,
//     date proximity and semantic features
//  4. relaxed scoring over close amounts, shared words and vendor-name
//     similarity
//  5. signal combination, which adds the single best supporting-evidence
//     increment (vendor ID, G/L account, features, broad amount) on top of
//     the running score
//
// Each ledger entry is consumed by at most one confirmed match. Ties between
// equally scored candidates go to the smaller absolute amount difference,
// then to scan order.
package matcher

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"bank-gl-reconciliation-service/internal/models"
	"bank-gl-reconciliation-service/internal/similarity"
	"bank-gl-reconciliation-service/internal/vendors"
	"bank-gl-reconciliation-service/pkg/logger"
)

// Engine scores bank transactions against ledger entries.
type Engine struct {
	config *Config
	rules  *vendors.RuleSet
	logger logger.Logger
}

// NewEngine creates an Engine with the given configuration and vendor
// knowledge base. Nil arguments fall back to production defaults.
func NewEngine(config *Config, rules *vendors.RuleSet, log logger.Logger) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	if rules == nil {
		rules = vendors.DefaultRuleSet()
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Engine{
		config: config,
		rules:  rules,
		logger: log.WithComponent("matcher"),
	}
}

// runState tracks consumption within a single Match call so the engine
// itself stays stateless across runs.
type runState struct {
	usedLedger map[int]bool
	seenKeys   map[string]bool
}

func newRunState() *runState {
	return &runState{
		usedLedger: make(map[int]bool),
		seenKeys:   make(map[string]bool),
	}
}

// candidate is a scored ledger entry under consideration for one bank
// transaction. index is -1 for fabricated known-vendor matches, which
// consume no ledger entry.
type candidate struct {
	entry *models.LedgerTransaction
	index int
	score int
}

// Match pairs each bank transaction with its best ledger entry. Duplicate
// bank transactions (same description and amount) are dropped after their
// first occurrence but still advance the batch position used for document
// numbering. Result dates are collapsed onto statement-period end dates.
func (e *Engine) Match(bankTxs []models.BankTransaction, ledger []models.LedgerTransaction) []models.MatchResult {
	state := newRunState()
	results := make([]models.MatchResult, 0, len(bankTxs))

	e.logger.WithFields(logger.Fields{
		"bank_transactions":   len(bankTxs),
		"ledger_transactions": len(ledger),
	}).Info("Starting transaction matching")

	for i := range bankTxs {
		bankTx := &bankTxs[i]

		key := bankTx.DedupKey()
		if state.seenKeys[key] {
			e.logger.WithField("key", key).Debug("Skipping duplicate bank transaction")
			continue
		}
		state.seenKeys[key] = true

		best := e.matchOne(bankTx, i, ledger, state)

		status := models.MatchStatusUnmatched
		matched := best.entry
		if best.score >= e.config.MatchThreshold {
			status = models.MatchStatusMatched
			if best.index >= 0 {
				state.usedLedger[best.index] = true
			}
		} else {
			// A near-miss candidate still informs document numbering but
			// is never reported as a match.
			matched = nil
		}

		documentNumber := e.assignDocumentNumber(bankTx.Description, i, best.entry)

		collapsed, _ := models.CollapseStatementDate(bankTx.Date)
		resultTx := *bankTx
		resultTx.Date = collapsed

		results = append(results, models.MatchResult{
			BankTransaction:          &resultTx,
			MatchedLedgerTransaction: matched,
			MatchStatus:              status,
			DocumentNumber:           documentNumber,
		})

		e.logger.WithFields(logger.Fields{
			"description":     bankTx.Description,
			"amount":          bankTx.TotalAmount.StringFixed(2),
			"score":           best.score,
			"status":          status,
			"document_number": documentNumber,
		}).Debug("Scored bank transaction")
	}

	return results
}

// matchOne runs the stage ladder for one bank transaction.
func (e *Engine) matchOne(bankTx *models.BankTransaction, index int, ledger []models.LedgerTransaction, state *runState) candidate {
	desc := bankTx.Description
	features := similarity.ExtractFeatures(desc)
	keyInfo := e.rules.ExtractKeyInfo(desc)
	checkStyle := e.rules.IsCheckStyle(desc)

	best := candidate{index: -1}

	// Stage 1: known-vendor recognition.
	if kv := e.rules.FindKnownVendor(desc); kv != nil {
		best = candidate{
			entry: kv.SyntheticLedgerMatch(bankTx),
			index: -1,
			score: 10,
		}
	}

	// Stage 2: explicit check-number lookup.
	if checkStyle && best.entry == nil {
		if number := vendors.ExtractCheckNumber(desc); number != "" {
			for i := range ledger {
				if state.usedLedger[i] {
					continue
				}
				if ledger[i].CheckNumber == number {
					best = candidate{entry: &ledger[i], index: i, score: 10}
					break
				}
			}
		}
	}

	// Stage 3: weighted scoring.
	if best.score < e.config.MatchThreshold {
		best = e.scoreWeighted(bankTx, features, ledger, state, best)
	}

	// Stage 4: relaxed scoring.
	if best.score < e.config.MatchThreshold {
		best = e.scoreRelaxed(bankTx, keyInfo, ledger, state, best)
	}

	// Stage 5: signal combination.
	if best.score < e.config.MatchThreshold {
		best = e.combineSignals(bankTx, features, ledger, state, best)
	}

	return best
}

// scoreWeighted scans unused ledger entries with the full scoring model and
// keeps the best candidate found so far.
func (e *Engine) scoreWeighted(bankTx *models.BankTransaction, features similarity.Features, ledger []models.LedgerTransaction, state *runState, best candidate) candidate {
	desc := bankTx.Description

	for i := range ledger {
		if state.usedLedger[i] {
			continue
		}
		glTx := &ledger[i]
		score := 0

		if models.CompareAmountsWithTolerance(bankTx.TotalAmount, glTx.Amount, e.config.AmountTolerance) {
			score += 5
		}

		descSim := textSimilarity(desc, glTx.Description)
		switch {
		case descSim > e.config.HighSimilarity:
			score += 4
		case descSim > e.config.MediumSimilarity:
			score += 3
		case descSim > e.config.LowSimilarity:
			score += 2
		}

		if similarity.ContainsFold(desc, glTx.VendorName) {
			score += 3
		}
		if similarity.ContainsFold(desc, glTx.VendorID) {
			score += 3
		}

		score += e.dateProximityPoints(bankTx.Date, glTx.Date)

		glFeatures := similarity.ExtractFeatures(glTx.Description)
		score += int(math.Round(similarity.CompareFeatures(features, glFeatures) * 3))

		best = e.takeIfBetter(best, candidate{entry: glTx, index: i, score: score}, bankTx.TotalAmount)
	}
	return best
}

// scoreRelaxed scans unused ledger entries with looser criteria: close
// amounts, shared words and vendor-name similarity.
func (e *Engine) scoreRelaxed(bankTx *models.BankTransaction, keyInfo vendors.KeyInfo, ledger []models.LedgerTransaction, state *runState, best candidate) candidate {
	desc := bankTx.Description

	bankVendor := keyInfo.VendorName
	if bankVendor == "" {
		bankVendor = e.rules.DetermineVendorID(desc)
	}

	for i := range ledger {
		if state.usedLedger[i] {
			continue
		}
		glTx := &ledger[i]
		score := 0

		if relativeAmountDiff(bankTx.TotalAmount, glTx.Amount) < e.config.CloseAmountRatio {
			score += 4
		}

		shared := len(similarity.SharedWords(desc, glTx.Description, e.config.SharedWordMinLen))
		if shared > e.config.SharedWordCap {
			shared = e.config.SharedWordCap
		}
		score += shared

		score += int(math.Round(textSimilarity(bankVendor, glTx.VendorName) * 3))

		best = e.takeIfBetter(best, candidate{entry: glTx, index: i, score: score}, bankTx.TotalAmount)
	}
	return best
}

// combineSignals finds the unused ledger entry with the strongest supporting
// evidence and adds that single increment onto the running score. Evidence
// from multiple candidates is never stacked.
func (e *Engine) combineSignals(bankTx *models.BankTransaction, features similarity.Features, ledger []models.LedgerTransaction, state *runState, best candidate) candidate {
	desc := bankTx.Description
	bankVendorID := e.rules.DetermineVendorID(desc)
	bankGLAccount := e.rules.DetermineGLAccount(desc)

	strongest := candidate{index: -1}
	for i := range ledger {
		if state.usedLedger[i] {
			continue
		}
		glTx := &ledger[i]
		increment := 0

		if bankVendorID != "" && glTx.VendorID != "" {
			if bankVendorID == glTx.VendorID {
				increment += 3
			} else if textSimilarity(bankVendorID, glTx.VendorID) > 0.5 {
				increment += 2
			}
		}

		if bankGLAccount != "" && glTx.GLAccount != "" {
			if bankGLAccount == glTx.GLAccount {
				increment += 3
			} else if accountPrefixesOverlap(bankGLAccount, glTx.GLAccount) {
				increment += 2
			}
		}

		glFeatures := similarity.ExtractFeatures(glTx.Description)
		increment += int(math.Round(similarity.CompareFeatures(features, glFeatures) * 3))

		if relativeAmountDiff(bankTx.TotalAmount, glTx.Amount) < e.config.BroadAmountRatio {
			increment += 2
		}

		strongest = e.takeIfBetter(strongest, candidate{entry: glTx, index: i, score: increment}, bankTx.TotalAmount)
	}

	if strongest.score > 0 {
		return candidate{
			entry: strongest.entry,
			index: strongest.index,
			score: best.score + strongest.score,
		}
	}
	return best
}

// takeIfBetter keeps the stronger of two candidates. Equal scores are broken
// by the smaller absolute amount difference against the bank transaction,
// then by scan order (the incumbent wins).
func (e *Engine) takeIfBetter(current, challenger candidate, bankAmount decimal.Decimal) candidate {
	if challenger.score > current.score {
		return challenger
	}
	if challenger.score == current.score && challenger.score > 0 && current.entry != nil && challenger.entry != nil {
		currentDiff := bankAmount.Sub(current.entry.Amount).Abs()
		challengerDiff := bankAmount.Sub(challenger.entry.Amount).Abs()
		if challengerDiff.LessThan(currentDiff) {
			return challenger
		}
	}
	return current
}

// dateProximityPoints awards points for how close two dates fall. Dates that
// fail to parse contribute nothing.
func (e *Engine) dateProximityPoints(bankDate, glDate string) int {
	if bankDate == "" || glDate == "" {
		return 0
	}
	bd, err := models.ParseDateLoose(bankDate)
	if err != nil {
		return 0
	}
	gd, err := models.ParseDateLoose(glDate)
	if err != nil {
		return 0
	}

	switch days := models.DaysBetween(bd, gd); {
	case days == 0:
		return 3
	case days <= e.config.NearDateDays:
		return 2
	case days <= e.config.FarDateDays:
		return 1
	default:
		return 0
	}
}

// textSimilarity is string similarity with the engine's empty-input rule:
// a blank on either side means no evidence, not a perfect match.
func textSimilarity(a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}
	return similarity.StringSimilarity(a, b)
}

// relativeAmountDiff returns |a-b| relative to the larger amount. A zero
// ledger amount is replaced by 1 so the ratio stays defined.
func relativeAmountDiff(a, b decimal.Decimal) float64 {
	diff := a.Sub(b).Abs()
	if b.IsZero() {
		b = decimal.NewFromInt(1)
	}
	denom := decimal.Max(a, b)
	if denom.IsZero() {
		return math.Inf(1)
	}
	return diff.Div(denom).InexactFloat64()
}

// accountPrefixesOverlap reports whether either account starts with the
// first three characters of the other.
func accountPrefixesOverlap(a, b string) bool {
	return strings.HasPrefix(a, prefix3(b)) || strings.HasPrefix(b, prefix3(a))
}

func prefix3(s string) string {
	if len(s) > 3 {
		return s[:3]
	}
	return s
}
