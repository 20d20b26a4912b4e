package matcher

import "github.com/shopspring/decimal"

// Config holds the scoring knobs for the matching engine. The defaults
// reproduce the production scoring model; tests tighten or loosen individual
// knobs to isolate stages.
type Config struct {
	// MatchThreshold is the minimum score for a candidate to count as a
	// confirmed match. Transactions below it are reported Unmatched.
	MatchThreshold int

	// AmountTolerance is the absolute difference under which two amounts
	// are considered equal.
	AmountTolerance decimal.Decimal

	// CloseAmountRatio and BroadAmountRatio are the relative differences
	// used by the relaxed and signal-combination stages.
	CloseAmountRatio float64
	BroadAmountRatio float64

	// Description similarity thresholds for the weighted scoring stage.
	HighSimilarity   float64
	MediumSimilarity float64
	LowSimilarity    float64

	// Date proximity windows in days.
	NearDateDays int
	FarDateDays  int

	// SharedWordMinLen is the minimum word length counted by the relaxed
	// stage; SharedWordCap bounds the points from shared words.
	SharedWordMinLen int
	SharedWordCap    int
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() *Config {
	return &Config{
		MatchThreshold:   5,
		AmountTolerance:  decimal.NewFromFloat(0.01),
		CloseAmountRatio: 0.05,
		BroadAmountRatio: 0.10,
		HighSimilarity:   0.8,
		MediumSimilarity: 0.6,
		LowSimilarity:    0.4,
		NearDateDays:     3,
		FarDateDays:      7,
		SharedWordMinLen: 3,
		SharedWordCap:    3,
	}
}
