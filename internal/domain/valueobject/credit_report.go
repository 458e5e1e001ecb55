package valueobject

// ---------------------------------------------------------------------------
// Credit report – bureau payload attached to an application for review
// ---------------------------------------------------------------------------

// CreditAccount is one tradeline in a credit report history.
type CreditAccount struct {
	Provider string `json:"provider"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Balance  int    `json:"balance"`
}

// CreditSummary aggregates the report history.
type CreditSummary struct {
	TotalDebt            int `json:"total_debt"`
	ActiveAccounts       int `json:"active_accounts"`
	OverdueAccounts      int `json:"overdue_accounts"`
	EnquiriesLast6Months int `json:"enquiries_last_6_months"`
}

// CreditReport is the full bureau response for an applicant. Reports are
// informational in the review flow; no automated decision keys off them.
type CreditReport struct {
	NationalID string          `json:"national_id"`
	RiskBand   string          `json:"risk_band"`
	Habits     []string        `json:"habits"`
	History    []CreditAccount `json:"history"`
	Summary    CreditSummary   `json:"summary"`
	Score      int             `json:"score"`
}
