package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kasicash/kasi/internal/application/dto"
	"github.com/kasicash/kasi/internal/domain/model"
	"github.com/kasicash/kasi/internal/domain/port"
	"github.com/kasicash/kasi/internal/domain/service"
	"github.com/kasicash/kasi/internal/domain/valueobject"
)

// Product bounds enforced at submission. The calculators themselves do not
// range-check; offers outside these bounds are never created.
var (
	minLoanAmount = decimal.NewFromInt(1_000)
	maxLoanAmount = decimal.NewFromInt(50_000)
)

// SubmitApplicationUseCase creates an application, pulls the credit snapshot
// and scores the applicant in one pass.
type SubmitApplicationUseCase struct {
	appRepo   port.ApplicationRepository
	bureau    port.CreditBureau
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewSubmitApplicationUseCase wires dependencies.
func NewSubmitApplicationUseCase(
	appRepo port.ApplicationRepository,
	bureau port.CreditBureau,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *SubmitApplicationUseCase {
	return &SubmitApplicationUseCase{
		appRepo:   appRepo,
		bureau:    bureau,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute validates and persists a new application.
func (uc *SubmitApplicationUseCase) Execute(
	ctx context.Context,
	req dto.SubmitApplicationRequest,
) (dto.ApplicationResponse, error) {
	now := time.Now().UTC()

	if req.Amount.LessThan(minLoanAmount) || req.Amount.GreaterThan(maxLoanAmount) {
		return dto.ApplicationResponse{}, fmt.Errorf("amount must be between %s and %s",
			minLoanAmount.StringFixed(0), maxLoanAmount.StringFixed(0))
	}
	loanType, err := valueobject.NewLoanType(req.LoanType)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	// 1. Create the aggregate in SUBMITTED status.
	app, err := model.NewLoanApplication(
		req.ApplicantName, req.ApplicantEmail, req.NationalID,
		req.Amount, req.TermMonths, loanType, req.Purpose,
		req.MonthlyIncome, req.EmploymentType,
		now,
	)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("create application: %w", err)
	}

	// 2. Move it under review and attach the credit snapshot.
	app, err = app.SubmitForReview(now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("submit for review: %w", err)
	}

	report, err := uc.bureau.PullReport(ctx, app.NationalID())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("pull credit report: %w", err)
	}
	app, err = app.AttachCreditSnapshot(report.Score, report.RiskBand, now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("attach credit snapshot: %w", err)
	}

	// 3. Score the applicant from self-reported figures.
	income, _ := app.MonthlyIncome().Float64()
	verification := service.ScoreVerification(income, app.EmploymentType())
	app, err = app.AttachVerificationScore(verification.Score, now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("attach verification score: %w", err)
	}

	// 4. Persist and publish.
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.Info("loan application submitted",
		"application_id", app.ID(),
		"loan_type", app.LoanType().String(),
		"credit_score", app.CreditScore(),
		"verification_score", app.VerificationScore(),
	)
	return dto.FromApplication(app), nil
}
