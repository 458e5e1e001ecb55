package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kasicash/kasi/internal/application/dto"
	"github.com/kasicash/kasi/internal/domain/port"
	"github.com/kasicash/kasi/internal/domain/service"
)

// AnalyzeIncomeUseCase extracts text from an uploaded bank statement and runs
// the income heuristic over it. It is stateless: nothing is persisted.
type AnalyzeIncomeUseCase struct {
	extractor port.StatementTextExtractor
	logger    *slog.Logger
}

// NewAnalyzeIncomeUseCase wires dependencies.
func NewAnalyzeIncomeUseCase(extractor port.StatementTextExtractor, logger *slog.Logger) *AnalyzeIncomeUseCase {
	return &AnalyzeIncomeUseCase{extractor: extractor, logger: logger}
}

// Execute analyzes a statement. Extraction failures surface as errors with no
// retry or fallback.
func (uc *AnalyzeIncomeUseCase) Execute(
	ctx context.Context,
	r io.ReaderAt,
	size int64,
) (dto.IncomeAnalysisResponse, error) {
	text, err := uc.extractor.ExtractText(ctx, r, size)
	if err != nil {
		return dto.IncomeAnalysisResponse{}, fmt.Errorf("extract statement text: %w", err)
	}

	analysis := service.AnalyzeStatementText(text)

	uc.logger.Info("statement analyzed",
		"matches", len(analysis.Matches),
		"estimated_income", analysis.EstimatedIncome,
		"confidence", analysis.Confidence,
	)
	return dto.IncomeAnalysisResponse{
		EstimatedIncome:    analysis.EstimatedIncome,
		IncomeConfidence:   analysis.Confidence,
		VerificationSource: "bank_statement",
	}, nil
}
