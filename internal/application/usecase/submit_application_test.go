package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasicash/kasi/internal/application/dto"
	"github.com/kasicash/kasi/internal/application/usecase"
	"github.com/kasicash/kasi/internal/domain/model"
	"github.com/kasicash/kasi/internal/domain/valueobject"
)

func validSubmitRequest() dto.SubmitApplicationRequest {
	return dto.SubmitApplicationRequest{
		ApplicantName:  "Thabo Mokoena",
		ApplicantEmail: "thabo@example.com",
		NationalID:     "9001015009087",
		Amount:         decimal.NewFromInt(10000),
		TermMonths:     12,
		LoanType:       "term",
		Purpose:        "school fees",
		MonthlyIncome:  decimal.NewFromInt(18000),
		EmploymentType: "Permanent - full time",
	}
}

func TestSubmitApplication_Success(t *testing.T) {
	appRepo := &mockApplicationRepository{}
	publisher := &mockEventPublisher{}
	bureau := &mockCreditBureau{
		pullReportFunc: func(_ context.Context, nationalID string) (valueobject.CreditReport, error) {
			return valueobject.CreditReport{NationalID: nationalID, Score: 710, RiskBand: "Low"}, nil
		},
	}

	uc := usecase.NewSubmitApplicationUseCase(appRepo, bureau, publisher, discardLogger())
	resp, err := uc.Execute(context.Background(), validSubmitRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "UNDER_REVIEW", resp.Status)
	assert.Equal(t, 710, resp.CreditScore)
	assert.Equal(t, "Low", resp.CreditRiskBand)
	// 300 base + 200 income + 150 permanent
	assert.Equal(t, 650, resp.VerificationScore)

	require.Len(t, appRepo.savedApps, 1)
	assert.NotEmpty(t, publisher.publishedEvents)
}

func TestSubmitApplication_RecomputesQuoteOnResponse(t *testing.T) {
	uc := usecase.NewSubmitApplicationUseCase(
		&mockApplicationRepository{}, &mockCreditBureau{}, &mockEventPublisher{}, discardLogger())

	resp, err := uc.Execute(context.Background(), validSubmitRequest())
	require.NoError(t, err)

	// 10000 principal, 12 months term loan: 1800 interest + 1500 initiation + 600 service
	assert.InDelta(t, 13900.0, resp.Quote.TotalRepayment, 1e-9)
	assert.InDelta(t, 39.0, resp.Quote.EffectiveAPR, 1e-9)
}

func TestSubmitApplication_AmountBounds(t *testing.T) {
	uc := usecase.NewSubmitApplicationUseCase(
		&mockApplicationRepository{}, &mockCreditBureau{}, &mockEventPublisher{}, discardLogger())

	for _, amount := range []int64{999, 50001} {
		t.Run(fmt.Sprintf("amount_%d", amount), func(t *testing.T) {
			req := validSubmitRequest()
			req.Amount = decimal.NewFromInt(amount)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorContains(t, err, "amount must be between")
		})
	}
}

func TestSubmitApplication_InvalidLoanType(t *testing.T) {
	uc := usecase.NewSubmitApplicationUseCase(
		&mockApplicationRepository{}, &mockCreditBureau{}, &mockEventPublisher{}, discardLogger())

	req := validSubmitRequest()
	req.LoanType = "balloon"
	_, err := uc.Execute(context.Background(), req)
	assert.Error(t, err)
}

func TestSubmitApplication_BureauFailurePropagates(t *testing.T) {
	bureau := &mockCreditBureau{
		pullReportFunc: func(context.Context, string) (valueobject.CreditReport, error) {
			return valueobject.CreditReport{}, fmt.Errorf("bureau unavailable")
		},
	}
	appRepo := &mockApplicationRepository{}
	uc := usecase.NewSubmitApplicationUseCase(appRepo, bureau, &mockEventPublisher{}, discardLogger())

	_, err := uc.Execute(context.Background(), validSubmitRequest())
	assert.ErrorContains(t, err, "pull credit report")
	assert.Empty(t, appRepo.savedApps)
}

func TestSubmitApplication_SaveFailurePropagates(t *testing.T) {
	appRepo := &mockApplicationRepository{
		saveFunc: func(context.Context, model.LoanApplication) error {
			return fmt.Errorf("connection reset")
		},
	}
	publisher := &mockEventPublisher{}
	uc := usecase.NewSubmitApplicationUseCase(appRepo, &mockCreditBureau{}, publisher, discardLogger())

	_, err := uc.Execute(context.Background(), validSubmitRequest())
	assert.ErrorContains(t, err, "save application")
	assert.Empty(t, publisher.publishedEvents)
}
