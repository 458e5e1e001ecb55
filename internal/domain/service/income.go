package service

import (
	"regexp"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Income heuristic – keyword scan over extracted bank-statement text
// ---------------------------------------------------------------------------

const (
	// MatchConfidence is the fixed confidence reported when at least one
	// income-like amount is retained. The heuristic is binary by design of the
	// predecessor system; it does not scale with match count.
	MatchConfidence = 0.9

	// Amounts at or below minIncomeAmount (small fees) and at or above
	// maxIncomeAmount are discarded.
	minIncomeAmount = 1_000.0
	maxIncomeAmount = 1_000_000.0
)

// incomeKeywords qualify a statement line for amount extraction. Lines are
// uppercased before the substring test.
var incomeKeywords = []string{"SALARY", "WAGES", "PAYROLL", "EARNINGS"}

// amountPattern matches currency-like tokens: comma-grouped thousands or a
// plain digit run, with an optional two-decimal fraction.
var amountPattern = regexp.MustCompile(`(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d{2})?`)

// IncomeMatch is one retained amount and the statement line it came from.
type IncomeMatch struct {
	Line   string
	Amount float64
}

// IncomeAnalysis is the result of scanning statement text for income signals.
// Zero matches is a valid outcome, not an error: EstimatedIncome is 0 and
// Confidence is 0.
type IncomeAnalysis struct {
	Matches         []IncomeMatch
	EstimatedIncome float64
	Confidence      float64
}

// AnalyzeStatementText estimates monthly income from free-form text extracted
// from a bank statement. For every line containing an income keyword, all
// currency-like tokens strictly between 1,000 and 1,000,000 are summed.
func AnalyzeStatementText(text string) IncomeAnalysis {
	var analysis IncomeAnalysis

	for _, line := range strings.Split(text, "\n") {
		upper := strings.ToUpper(line)
		if !containsIncomeKeyword(upper) {
			continue
		}

		for _, token := range amountPattern.FindAllString(line, -1) {
			value, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", ""), 64)
			if err != nil {
				continue
			}
			if value <= minIncomeAmount || value >= maxIncomeAmount {
				continue
			}
			analysis.Matches = append(analysis.Matches, IncomeMatch{
				Line:   strings.TrimSpace(line),
				Amount: value,
			})
			analysis.EstimatedIncome += value
		}
	}

	if len(analysis.Matches) > 0 {
		analysis.Confidence = MatchConfidence
	}
	return analysis
}

func containsIncomeKeyword(upperLine string) bool {
	for _, kw := range incomeKeywords {
		if strings.Contains(upperLine, kw) {
			return true
		}
	}
	return false
}
