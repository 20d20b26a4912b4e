package normalizer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Statement extracts occasionally populate both the debit and credit leg of
// one row. Section headings carried into the description settle it first,
// then direction keywords, then the larger amount.

var creditSectionMarkers = []string{
	"deposits and additions", "deposit addition",
}

var debitSectionMarkers = []string{
	"checks paid", "atm & debit card withdrawals",
	"electronic withdrawals", "atm and debit card withdrawals",
}

var debitKeywords = []string{
	"payment", "withdrawal", "debit", "purchase", "fee", "charge", "transfer to",
	"ach debit", "check", "cheque", "withdrawal fee", "service charge", "overdraft",
	"pos purchase", "atm withdrawal", "monthly fee", "maintenance fee", "wire transfer out",
	"checks paid", "atm & debit card withdrawals", "electronic withdrawals",
	"debit card", "atm transaction", "electronic payment", "online payment",
	"bill payment", "automatic payment", "ach withdrawal", "pos transaction",
}

var creditKeywords = []string{
	"deposit", "credit", "transfer from", "refund", "interest", "reversal",
	"ach credit", "direct deposit", "incoming transfer", "credit adjustment",
	"returned item", "refund credit", "interest credit", "cash deposit",
	"wire transfer in", "mobile deposit", "deposit adjustment", "credit memo",
	"deposits and additions", "deposit addition", "incoming ach", "payroll deposit",
	"electronic deposit", "automatic deposit", "credit transfer", "deposit credit",
}

type legChoice int

const (
	legDebit legChoice = iota
	legCredit
)

// resolveLegs decides which leg survives when a record carries a positive
// amount on both.
func resolveLegs(description string, debit, credit decimal.Decimal) legChoice {
	descLower := strings.ToLower(description)

	if containsAnyKeyword(descLower, creditSectionMarkers) {
		return legCredit
	}
	if containsAnyKeyword(descLower, debitSectionMarkers) {
		return legDebit
	}

	likelyDebit := containsAnyKeyword(descLower, debitKeywords)
	likelyCredit := containsAnyKeyword(descLower, creditKeywords)
	if likelyDebit && !likelyCredit {
		return legDebit
	}
	if likelyCredit && !likelyDebit {
		return legCredit
	}

	if debit.GreaterThanOrEqual(credit) {
		return legDebit
	}
	return legCredit
}

func containsAnyKeyword(descLower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(descLower, kw) {
			return true
		}
	}
	return false
}
