package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/kasicash/kasi/internal/application/dto"
	"github.com/kasicash/kasi/internal/domain/event"
	"github.com/kasicash/kasi/internal/domain/model"
	"github.com/kasicash/kasi/internal/domain/port"
	"github.com/kasicash/kasi/internal/domain/service"
	"github.com/kasicash/kasi/internal/domain/valueobject"
)

// UploadDocumentRequest carries an uploaded statement and its metadata.
type UploadDocumentRequest struct {
	ApplicationID string
	Filename      string
	ContentType   string
	Size          int64
	Content       io.ReaderAt
}

// UploadDocumentUseCase stores bank statement metadata against an application,
// runs the income heuristic over the extracted text and attaches the estimate.
type UploadDocumentUseCase struct {
	appRepo   port.ApplicationRepository
	docRepo   port.DocumentRepository
	extractor port.StatementTextExtractor
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewUploadDocumentUseCase wires dependencies.
func NewUploadDocumentUseCase(
	appRepo port.ApplicationRepository,
	docRepo port.DocumentRepository,
	extractor port.StatementTextExtractor,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *UploadDocumentUseCase {
	return &UploadDocumentUseCase{
		appRepo:   appRepo,
		docRepo:   docRepo,
		extractor: extractor,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute processes the upload.
func (uc *UploadDocumentUseCase) Execute(
	ctx context.Context,
	req UploadDocumentRequest,
) (dto.DocumentResponse, error) {
	now := time.Now().UTC()

	// 1. The application must exist and still be open.
	app, err := uc.appRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.DocumentResponse{}, err
	}

	// 2. Extract text and run the heuristic.
	text, err := uc.extractor.ExtractText(ctx, req.Content, req.Size)
	if err != nil {
		return dto.DocumentResponse{}, fmt.Errorf("extract statement text: %w", err)
	}
	analysis := service.AnalyzeStatementText(text)
	estimate := valueobject.IncomeEstimate{
		Source:          "bank_statement",
		EstimatedIncome: analysis.EstimatedIncome,
		Confidence:      analysis.Confidence,
	}

	// 3. Record document metadata.
	doc, err := model.NewDocument(
		req.ApplicationID, valueobject.DocumentKindBankStatement,
		req.Filename, req.ContentType, req.Size, now,
	)
	if err != nil {
		return dto.DocumentResponse{}, fmt.Errorf("create document: %w", err)
	}
	doc = doc.WithIncomeEstimate(estimate)
	if err := uc.docRepo.Save(ctx, doc); err != nil {
		return dto.DocumentResponse{}, fmt.Errorf("save document: %w", err)
	}

	// 4. Attach the estimate to the application and persist.
	app, err = app.AttachIncomeEstimate(estimate, now)
	if err != nil {
		return dto.DocumentResponse{}, fmt.Errorf("attach income estimate: %w", err)
	}
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.DocumentResponse{}, fmt.Errorf("save application: %w", err)
	}

	// 5. Publish aggregate events plus the upload event.
	events := append(app.DomainEvents(), event.NewDocumentUploaded(
		doc.ID, doc.ApplicationID, doc.Kind.String(), doc.Filename, doc.SizeBytes,
	))
	if err := uc.publisher.Publish(ctx, events...); err != nil {
		return dto.DocumentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.Info("statement uploaded",
		"application_id", req.ApplicationID,
		"document_id", doc.ID,
		"estimated_income", analysis.EstimatedIncome,
	)
	return dto.FromDocument(doc), nil
}
