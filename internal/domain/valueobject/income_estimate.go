package valueobject

// IncomeEstimate is the outcome of the bank-statement income heuristic,
// attached to an application or statement document as reviewer metadata.
// A zero-value estimate means no analysis has run yet.
type IncomeEstimate struct {
	Source          string
	EstimatedIncome float64
	Confidence      float64
}

// HasSignal reports whether the heuristic retained at least one match.
func (e IncomeEstimate) HasSignal() bool { return e.Confidence > 0 }
