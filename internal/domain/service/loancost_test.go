package service_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasicash/kasi/internal/domain/service"
	"github.com/kasicash/kasi/internal/domain/valueobject"
)

func TestCalculatePaydayLoan(t *testing.T) {
	t.Run("flat fee of 25 percent on principal", func(t *testing.T) {
		q := service.CalculatePaydayLoan(10_000, 1)

		assert.InDelta(t, 12_500, q.TotalRepayment, 1e-9)
		assert.InDelta(t, 12_500, q.MonthlyPayment, 1e-9)
		assert.Equal(t, 25.0, q.EffectiveAPR)
	})

	t.Run("APR stays nominal regardless of term", func(t *testing.T) {
		one := service.CalculatePaydayLoan(5_000, 1)
		three := service.CalculatePaydayLoan(5_000, 3)

		assert.Equal(t, one.EffectiveAPR, three.EffectiveAPR)
		assert.InDelta(t, one.TotalRepayment, three.TotalRepayment, 1e-9)
		assert.InDelta(t, one.TotalRepayment/3, three.MonthlyPayment, 1e-9)
	})
}

func TestCalculateTermLoan(t *testing.T) {
	t.Run("reference quote 10000 over 12 months", func(t *testing.T) {
		q := service.CalculateTermLoan(10_000, 12)

		// 10000 + 1800 interest + 1500 initiation + 600 service fees.
		assert.InDelta(t, 13_900, q.TotalRepayment, 1e-9)
		assert.InDelta(t, 1158.33, q.MonthlyPayment, 0.01)
		assert.Equal(t, 1159.0, math.Ceil(q.MonthlyPayment))
		assert.InDelta(t, 39.0, q.EffectiveAPR, 1e-9)
	})

	t.Run("reference quote 50000 over 36 months", func(t *testing.T) {
		q := service.CalculateTermLoan(50_000, 36)

		// 50000 + 27000 interest + 7500 initiation + 1800 service fees.
		assert.InDelta(t, 86_300, q.TotalRepayment, 1e-9)
		assert.InDelta(t, 24.2, q.EffectiveAPR, 0.01)
	})

	t.Run("monthly payment times term equals total before rounding", func(t *testing.T) {
		amounts := []float64{1_000, 2_500, 10_000, 37_450, 50_000}
		terms := []int{1, 3, 6, 12, 24, 36}

		for _, amount := range amounts {
			for _, months := range terms {
				q := service.CalculateTermLoan(amount, months)
				assert.InEpsilon(t, q.TotalRepayment, q.MonthlyPayment*float64(months), 1e-9,
					"amount=%v months=%d", amount, months)
			}
		}
	})
}

func TestLoanQuoteDisplayTotal(t *testing.T) {
	q := service.LoanQuote{TotalRepayment: 13_899.01}
	assert.Equal(t, 13_900.0, q.DisplayTotal())

	q = service.LoanQuote{TotalRepayment: 13_900.0}
	assert.Equal(t, 13_900.0, q.DisplayTotal())
}

func TestQuoteDispatch(t *testing.T) {
	payday := service.Quote(10_000, 1, valueobject.LoanTypePayday)
	require.True(t, payday.LoanType.Equal(valueobject.LoanTypePayday))
	assert.InDelta(t, 12_500, payday.TotalRepayment, 1e-9)

	term := service.Quote(10_000, 12, valueobject.LoanTypeTerm)
	require.True(t, term.LoanType.Equal(valueobject.LoanTypeTerm))
	assert.InDelta(t, 13_900, term.TotalRepayment, 1e-9)
}
