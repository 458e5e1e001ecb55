package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kasicash/kasi/internal/application/dto"
	"github.com/kasicash/kasi/internal/domain/event"
	"github.com/kasicash/kasi/internal/domain/model"
	"github.com/kasicash/kasi/internal/domain/port"
	"github.com/kasicash/kasi/internal/domain/valueobject"
)

// VerifySelfieRequest carries the selfie and the ID document photo to compare.
type VerifySelfieRequest struct {
	ApplicationID string
	Selfie        []byte
	IDPhoto       []byte
	Filename      string
}

// VerifySelfieUseCase compares a selfie to an ID photo through the face-match
// provider and records the outcome as a selfie document.
type VerifySelfieUseCase struct {
	appRepo   port.ApplicationRepository
	docRepo   port.DocumentRepository
	matcher   port.FaceMatcher
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewVerifySelfieUseCase wires dependencies.
func NewVerifySelfieUseCase(
	appRepo port.ApplicationRepository,
	docRepo port.DocumentRepository,
	matcher port.FaceMatcher,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *VerifySelfieUseCase {
	return &VerifySelfieUseCase{
		appRepo:   appRepo,
		docRepo:   docRepo,
		matcher:   matcher,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute runs the comparison and stores the result.
func (uc *VerifySelfieUseCase) Execute(
	ctx context.Context,
	req VerifySelfieRequest,
) (dto.SelfieVerifyResponse, error) {
	now := time.Now().UTC()

	app, err := uc.appRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.SelfieVerifyResponse{}, err
	}

	result, err := uc.matcher.Compare(ctx, req.Selfie, req.IDPhoto)
	if err != nil {
		return dto.SelfieVerifyResponse{}, fmt.Errorf("face comparison: %w", err)
	}

	doc, err := model.NewDocument(
		app.ID(), valueobject.DocumentKindSelfie,
		req.Filename, "image/jpeg", int64(len(req.Selfie)), now,
	)
	if err != nil {
		return dto.SelfieVerifyResponse{}, fmt.Errorf("create document: %w", err)
	}
	doc = doc.WithFaceMatch(result.Match, result.Similarity)
	if err := uc.docRepo.Save(ctx, doc); err != nil {
		return dto.SelfieVerifyResponse{}, fmt.Errorf("save document: %w", err)
	}

	if err := uc.publisher.Publish(ctx, event.NewSelfieVerified(app.ID(), result.Match, result.Similarity)); err != nil {
		return dto.SelfieVerifyResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.Info("selfie verified",
		"application_id", app.ID(),
		"match", result.Match,
		"similarity", result.Similarity,
	)
	return dto.SelfieVerifyResponse{
		ApplicationID: app.ID(),
		Match:         result.Match,
		Similarity:    result.Similarity,
	}, nil
}
