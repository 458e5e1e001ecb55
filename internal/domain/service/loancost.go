package service

import (
	"math"

	"github.com/kasicash/kasi/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan cost calculator – pure fee-schedule arithmetic
// ---------------------------------------------------------------------------

const (
	// PaydayFeeRate is the flat fee charged on a payday loan.
	// NOTE: a legacy verification script in the predecessor system used 0.30;
	// 0.25 is the production rate. See DESIGN.md.
	PaydayFeeRate = 0.25

	// PaydayNominalAPR is the fixed rate reported for payday loans. It mirrors
	// the fee rate and is deliberately not recomputed from the term.
	PaydayNominalAPR = 25.0

	// TermAnnualRate is the simple (non-amortizing) annual interest rate for
	// term loans.
	TermAnnualRate = 0.18

	// TermInitiationFeeRate is the once-off initiation fee on term loans.
	TermInitiationFeeRate = 0.15

	// TermMonthlyServiceFee is the fixed recurring service fee per month.
	TermMonthlyServiceFee = 50.0
)

// LoanQuote is the derived cost of a loan. It carries unrounded figures;
// rounding happens only at display time via DisplayTotal.
type LoanQuote struct {
	LoanType       valueobject.LoanType
	Principal      float64
	TermMonths     int
	TotalRepayment float64
	MonthlyPayment float64
	EffectiveAPR   float64
}

// DisplayTotal returns the total repayment rounded up to the next whole
// currency unit, as shown to the borrower.
func (q LoanQuote) DisplayTotal() float64 {
	return math.Ceil(q.TotalRepayment)
}

// CalculatePaydayLoan quotes a single-instalment flat-fee loan.
// The reported APR is the nominal fee rate, independent of term.
func CalculatePaydayLoan(amount float64, months int) LoanQuote {
	fee := amount * PaydayFeeRate
	total := amount + fee

	return LoanQuote{
		LoanType:       valueobject.LoanTypePayday,
		Principal:      amount,
		TermMonths:     months,
		TotalRepayment: total,
		MonthlyPayment: total / float64(months),
		EffectiveAPR:   PaydayNominalAPR,
	}
}

// CalculateTermLoan quotes a multi-instalment loan with simple interest, a
// once-off initiation fee, and a monthly service fee. Interest accrues on the
// full principal for every month of the term; it does not amortize down.
func CalculateTermLoan(amount float64, months int) LoanQuote {
	monthlyInterest := amount * TermAnnualRate / 12
	totalInterest := monthlyInterest * float64(months)
	initiationFee := amount * TermInitiationFeeRate
	totalServiceFees := TermMonthlyServiceFee * float64(months)

	total := amount + totalInterest + initiationFee + totalServiceFees
	apr := ((total - amount) / amount) * (12 / float64(months)) * 100

	return LoanQuote{
		LoanType:       valueobject.LoanTypeTerm,
		Principal:      amount,
		TermMonths:     months,
		TotalRepayment: total,
		MonthlyPayment: total / float64(months),
		EffectiveAPR:   apr,
	}
}

// Quote dispatches on the loan type.
func Quote(amount float64, months int, loanType valueobject.LoanType) LoanQuote {
	if loanType.Equal(valueobject.LoanTypePayday) {
		return CalculatePaydayLoan(amount, months)
	}
	return CalculateTermLoan(amount, months)
}
