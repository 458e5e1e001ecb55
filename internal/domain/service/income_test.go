package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasicash/kasi/internal/domain/service"
)

func TestAnalyzeStatementText(t *testing.T) {
	t.Run("single salary line", func(t *testing.T) {
		got := service.AnalyzeStatementText("SALARY: 15,000.00\nGROCERIES 1,200.00")

		assert.InDelta(t, 15_000, got.EstimatedIncome, 1e-9)
		assert.Equal(t, 0.9, got.Confidence)
		require.Len(t, got.Matches, 1)
		assert.Equal(t, "SALARY: 15,000.00", got.Matches[0].Line)
	})

	t.Run("no keyword lines yields zero income at zero confidence", func(t *testing.T) {
		got := service.AnalyzeStatementText("RENT 8,500.00\nGROCERIES 1,200.00")

		assert.Zero(t, got.EstimatedIncome)
		assert.Zero(t, got.Confidence)
		assert.Empty(t, got.Matches)
	})

	t.Run("sums across qualifying lines and is case-insensitive", func(t *testing.T) {
		text := "salary deposit 12,000.00\nACME PAYROLL 3,500.50\nwages 2000"
		got := service.AnalyzeStatementText(text)

		assert.InDelta(t, 17_500.50, got.EstimatedIncome, 1e-9)
		assert.Len(t, got.Matches, 3)
	})

	t.Run("filters amounts outside the plausible range", func(t *testing.T) {
		// 250.50 is a fee-sized amount, 2,500,000.00 is implausibly large,
		// 1000 is the exclusive lower bound.
		text := "SALARY FEE 250.50\nSALARY BONUS 2,500,000.00\nSALARY ADJ 1000"
		got := service.AnalyzeStatementText(text)

		assert.Zero(t, got.EstimatedIncome)
		assert.Zero(t, got.Confidence)
	})

	t.Run("plain digit amounts without separators parse", func(t *testing.T) {
		got := service.AnalyzeStatementText("EARNINGS 1500")

		assert.InDelta(t, 1_500, got.EstimatedIncome, 1e-9)
		assert.Equal(t, 0.9, got.Confidence)
	})

	t.Run("multiple amounts on one line all count", func(t *testing.T) {
		got := service.AnalyzeStatementText("SALARY 12,000.00 BAL 14,500.00")

		assert.InDelta(t, 26_500, got.EstimatedIncome, 1e-9)
		assert.Len(t, got.Matches, 2)
	})

	t.Run("empty input", func(t *testing.T) {
		got := service.AnalyzeStatementText("")

		assert.Zero(t, got.EstimatedIncome)
		assert.Zero(t, got.Confidence)
	})
}
