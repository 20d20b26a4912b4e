// Package config assembles the runtime configurations the CLI hands to the
// reconciliation pipeline.
package config

import (
	"github.com/shopspring/decimal"

	"bank-gl-reconciliation-service/internal/matcher"
	"bank-gl-reconciliation-service/internal/reconciler"
	"bank-gl-reconciliation-service/internal/vendors"
)

// CreateMatchingConfig builds a scoring configuration from CLI overrides on
// top of the production defaults.
func CreateMatchingConfig(matchThreshold int, amountTolerance float64) *matcher.Config {
	config := matcher.DefaultConfig()
	config.MatchThreshold = matchThreshold
	config.AmountTolerance = decimal.NewFromFloat(amountTolerance)
	return config
}

// CreateServiceConfig builds the reconciliation service configuration with
// the production vendor knowledge base.
func CreateServiceConfig(matchThreshold int, amountTolerance float64) *reconciler.Config {
	return &reconciler.Config{
		Matching: CreateMatchingConfig(matchThreshold, amountTolerance),
		Rules:    vendors.DefaultRuleSet(),
	}
}
