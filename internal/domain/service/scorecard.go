package service

import "strings"

// ---------------------------------------------------------------------------
// Verification scorecard – additive income/employment rules
// ---------------------------------------------------------------------------

const (
	verificationBaseScore    = 300
	verificationMaxScore     = 1000
	verificationQualifyScore = 600
)

// ScoreFactor is one line of the verification score breakdown.
type ScoreFactor struct {
	Factor string `json:"factor"`
	Points int    `json:"points"`
}

// VerificationScore is the outcome of the income/employment scorecard used to
// gate admin approval. It is informational: a human reviewer makes the call.
type VerificationScore struct {
	Breakdown   []ScoreFactor `json:"breakdown"`
	Score       int           `json:"score"`
	IsQualified bool          `json:"is_qualified"`
}

// ScoreVerification combines self-reported monthly income and employment type
// into a single additive score capped at 1000. An applicant qualifies at 600.
func ScoreVerification(income float64, employmentType string) VerificationScore {
	score := verificationBaseScore
	breakdown := []ScoreFactor{{Factor: "base", Points: verificationBaseScore}}

	var incomePoints int
	switch {
	case income > 15_000:
		incomePoints = 200
	case income > 5_000:
		incomePoints = 100
	}
	if incomePoints > 0 {
		breakdown = append(breakdown, ScoreFactor{Factor: "income", Points: incomePoints})
		score += incomePoints
	}

	var employmentPoints int
	employment := strings.ToLower(employmentType)
	switch {
	case strings.Contains(employment, "government"):
		employmentPoints = 200
	case strings.Contains(employment, "permanent"):
		employmentPoints = 150
	case strings.Contains(employment, "contract"):
		employmentPoints = 50
	}
	if employmentPoints > 0 {
		breakdown = append(breakdown, ScoreFactor{Factor: "employment", Points: employmentPoints})
		score += employmentPoints
	}

	if score > verificationMaxScore {
		score = verificationMaxScore
	}

	return VerificationScore{
		Score:       score,
		IsQualified: score >= verificationQualifyScore,
		Breakdown:   breakdown,
	}
}
