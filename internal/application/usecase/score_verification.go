package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kasicash/kasi/internal/application/dto"
	"github.com/kasicash/kasi/internal/domain/service"
)

// ScoreVerificationUseCase runs the income/employment scorecard and tags the
// result with a trace ID for audit.
type ScoreVerificationUseCase struct {
	logger *slog.Logger
}

// NewScoreVerificationUseCase wires dependencies.
func NewScoreVerificationUseCase(logger *slog.Logger) *ScoreVerificationUseCase {
	return &ScoreVerificationUseCase{logger: logger}
}

// Execute scores the applicant.
func (uc *ScoreVerificationUseCase) Execute(
	_ context.Context,
	req dto.VerificationScoreRequest,
) dto.VerificationScoreResponse {
	result := service.ScoreVerification(req.Income, req.EmploymentType)
	traceID := uuid.New().String()

	uc.logger.Info("verification scored",
		"score", result.Score,
		"is_qualified", result.IsQualified,
		"trace_id", traceID,
	)
	return dto.VerificationScoreResponse{
		Verified:    true,
		Score:       result.Score,
		IsQualified: result.IsQualified,
		Breakdown:   result.Breakdown,
		TraceID:     traceID,
	}
}
