package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// LoanType – immutable value object
// ---------------------------------------------------------------------------

// LoanType distinguishes the two fee schedules offered by the platform.
type LoanType struct {
	value string
}

const (
	loanTypePayday = "payday"
	loanTypeTerm   = "term"
)

var (
	LoanTypePayday = LoanType{value: loanTypePayday}
	LoanTypeTerm   = LoanType{value: loanTypeTerm}
)

var validLoanTypes = map[string]LoanType{
	loanTypePayday: LoanTypePayday,
	loanTypeTerm:   LoanTypeTerm,
}

// NewLoanType creates a LoanType from a raw string.
func NewLoanType(s string) (LoanType, error) {
	v, ok := validLoanTypes[s]
	if !ok {
		return LoanType{}, fmt.Errorf("invalid loan type: %q", s)
	}
	return v, nil
}

// String returns the string representation of the loan type.
func (t LoanType) String() string { return t.value }

// IsZero returns true if the loan type has not been initialised.
func (t LoanType) IsZero() bool { return t.value == "" }

// Equal returns true when both loan types carry the same value.
func (t LoanType) Equal(other LoanType) bool { return t.value == other.value }
