package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kasicash/kasi/internal/domain/port"
	"github.com/kasicash/kasi/internal/domain/valueobject"
)

// ErrNationalIDRequired is returned when a credit check is requested without
// a national ID.
var ErrNationalIDRequired = errors.New("National ID is required")

// CreditCheckUseCase pulls a credit report for a national ID.
type CreditCheckUseCase struct {
	bureau port.CreditBureau
	logger *slog.Logger
}

// NewCreditCheckUseCase wires dependencies.
func NewCreditCheckUseCase(bureau port.CreditBureau, logger *slog.Logger) *CreditCheckUseCase {
	return &CreditCheckUseCase{bureau: bureau, logger: logger}
}

// Execute pulls the report.
func (uc *CreditCheckUseCase) Execute(ctx context.Context, nationalID string) (valueobject.CreditReport, error) {
	if nationalID == "" {
		return valueobject.CreditReport{}, ErrNationalIDRequired
	}

	report, err := uc.bureau.PullReport(ctx, nationalID)
	if err != nil {
		return valueobject.CreditReport{}, err
	}

	uc.logger.Info("credit report pulled",
		"score", report.Score,
		"risk_band", report.RiskBand,
	)
	return report, nil
}
