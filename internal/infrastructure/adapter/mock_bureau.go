package adapter

import (
	"context"
	"fmt"

	"github.com/kasicash/kasi/internal/domain/port"
	"github.com/kasicash/kasi/internal/domain/valueobject"
)

// Compile-time interface check.
var _ port.CreditBureau = (*MockBureau)(nil)

// MockBureau is a stand-in for a real credit-bureau integration. It derives a
// fully deterministic synthetic report from the national ID: identical input
// always yields an identical report, which makes review flows repeatable in
// development and testing. It must not be mistaken for real bureau data in
// any decision path; the review UI treats it as informational only.
type MockBureau struct{}

// NewMockBureau creates the deterministic bureau adapter.
func NewMockBureau() *MockBureau {
	return &MockBureau{}
}

var (
	accountProviders = []string{
		"African Bank", "Capitec", "FNB", "Standard Bank", "Nedbank", "Absa",
	}
	accountTypes = []string{
		"Personal Loan", "Credit Card", "Store Account", "Vehicle Finance",
	}
)

// PullReport generates the synthetic report for a national ID.
//
// The seed is the digit-sum of the ID (non-digits contribute zero) and every
// derived field is modular arithmetic on it, keeping the output stable across
// calls and deployments.
func (b *MockBureau) PullReport(_ context.Context, nationalID string) (valueobject.CreditReport, error) {
	if nationalID == "" {
		return valueobject.CreditReport{}, fmt.Errorf("national ID is required")
	}

	seed := digitSum(nationalID)
	score := 300 + (seed*137)%551 // range [300, 850]

	report := valueobject.CreditReport{
		NationalID: nationalID,
		Score:      score,
		RiskBand:   riskBand(score),
		Habits:     habits(score, seed),
	}

	numAccounts := seed%4 + 1
	for i := 0; i < numAccounts; i++ {
		accSeed := seed + i
		report.History = append(report.History, valueobject.CreditAccount{
			Provider: accountProviders[accSeed%len(accountProviders)],
			Type:     accountTypes[accSeed%len(accountTypes)],
			Status:   accountStatus(score, accSeed),
			Balance:  (accSeed * 1000) % 50_000,
		})
	}

	report.Summary = summarize(report.History, seed)
	return report, nil
}

// digitSum sums the numeric value of every digit character in s.
func digitSum(s string) int {
	sum := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sum += int(r - '0')
		}
	}
	return sum
}

func riskBand(score int) string {
	switch {
	case score < 500:
		return "Very High"
	case score < 600:
		return "High"
	case score < 660:
		return "Medium"
	case score < 720:
		return "Low"
	default:
		return "Very Low"
	}
}

func habits(score, seed int) []string {
	var tags []string
	if score > 700 {
		tags = append(tags, "Consistent Payer")
	}
	if score < 550 {
		tags = append(tags, "Recent Defaults")
	}
	if seed%2 == 0 {
		tags = append(tags, "Frequent Borrower")
	}
	if seed%3 == 0 {
		tags = append(tags, "High Utilization")
	}
	if score > 600 && seed%2 == 1 {
		tags = append(tags, "Long Credit History")
	}
	return tags
}

// accountStatus skews toward healthy statuses above a 600 score and toward
// defaults below it.
func accountStatus(score, accSeed int) string {
	if score > 600 {
		if accSeed%3 == 0 {
			return "Paid"
		}
		return "Active"
	}
	if accSeed%3 == 0 {
		return "Active"
	}
	return "Defaulted"
}

func summarize(history []valueobject.CreditAccount, seed int) valueobject.CreditSummary {
	s := valueobject.CreditSummary{
		EnquiriesLast6Months: seed % 5,
	}
	for _, acc := range history {
		switch acc.Status {
		case "Active":
			s.ActiveAccounts++
			s.TotalDebt += acc.Balance
		case "Defaulted":
			s.OverdueAccounts++
			s.TotalDebt += acc.Balance
		}
	}
	return s
}
