package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasicash/kasi/internal/application/usecase"
	"github.com/kasicash/kasi/internal/domain/model"
	"github.com/kasicash/kasi/internal/domain/port"
)

func TestVerifySelfie_MatchStored(t *testing.T) {
	app := underReviewApplication(t)
	appRepo := &mockApplicationRepository{
		findByIDFunc: func(context.Context, string) (model.LoanApplication, error) { return app, nil },
	}
	docRepo := &mockDocumentRepository{}
	publisher := &mockEventPublisher{}
	matcher := &mockFaceMatcher{
		compareFunc: func(context.Context, []byte, []byte) (port.FaceMatchResult, error) {
			return port.FaceMatchResult{Match: true, Similarity: 97.2}, nil
		},
	}

	uc := usecase.NewVerifySelfieUseCase(appRepo, docRepo, matcher, publisher, discardLogger())
	resp, err := uc.Execute(context.Background(), usecase.VerifySelfieRequest{
		ApplicationID: app.ID(),
		Selfie:        []byte("selfie-bytes"),
		IDPhoto:       []byte("id-bytes"),
		Filename:      "selfie.jpg",
	})
	require.NoError(t, err)

	assert.True(t, resp.Match)
	assert.InDelta(t, 97.2, resp.Similarity, 1e-9)

	require.Len(t, docRepo.savedDocs, 1)
	assert.Equal(t, "selfie", docRepo.savedDocs[0].Kind.String())
	assert.True(t, docRepo.savedDocs[0].FaceMatch)

	require.Len(t, publisher.publishedEvents, 1)
	assert.Equal(t, "lending.application.selfie_verified", publisher.publishedEvents[0].EventType())
}

func TestVerifySelfie_ProviderFailure(t *testing.T) {
	app := underReviewApplication(t)
	appRepo := &mockApplicationRepository{
		findByIDFunc: func(context.Context, string) (model.LoanApplication, error) { return app, nil },
	}
	matcher := &mockFaceMatcher{
		compareFunc: func(context.Context, []byte, []byte) (port.FaceMatchResult, error) {
			return port.FaceMatchResult{}, fmt.Errorf("provider 503")
		},
	}

	uc := usecase.NewVerifySelfieUseCase(appRepo, &mockDocumentRepository{}, matcher, &mockEventPublisher{}, discardLogger())
	_, err := uc.Execute(context.Background(), usecase.VerifySelfieRequest{
		ApplicationID: app.ID(), Selfie: []byte("s"), IDPhoto: []byte("i"), Filename: "selfie.jpg",
	})
	assert.ErrorContains(t, err, "face comparison")
}

func TestVerifySelfie_UnknownApplication(t *testing.T) {
	uc := usecase.NewVerifySelfieUseCase(
		&mockApplicationRepository{}, &mockDocumentRepository{}, &mockFaceMatcher{},
		&mockEventPublisher{}, discardLogger())

	_, err := uc.Execute(context.Background(), usecase.VerifySelfieRequest{
		ApplicationID: "missing", Selfie: []byte("s"), IDPhoto: []byte("i"),
	})
	assert.ErrorIs(t, err, port.ErrApplicationNotFound)
}
