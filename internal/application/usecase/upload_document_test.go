package usecase_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasicash/kasi/internal/application/usecase"
	"github.com/kasicash/kasi/internal/domain/model"
	"github.com/kasicash/kasi/internal/domain/valueobject"
)

func underReviewApplication(t *testing.T) model.LoanApplication {
	t.Helper()
	now := time.Now().UTC()
	app, err := model.NewLoanApplication(
		"Thabo Mokoena", "thabo@example.com", "9001015009087",
		decimal.NewFromInt(10000), 12, valueobject.LoanTypeTerm, "school fees",
		decimal.NewFromInt(18000), "Permanent - full time",
		now,
	)
	require.NoError(t, err)
	app, err = app.SubmitForReview(now)
	require.NoError(t, err)
	return app.ClearEvents()
}

func TestUploadDocument_AttachesIncomeEstimate(t *testing.T) {
	app := underReviewApplication(t)
	appRepo := &mockApplicationRepository{
		findByIDFunc: func(_ context.Context, id string) (model.LoanApplication, error) {
			return app, nil
		},
	}
	docRepo := &mockDocumentRepository{}
	publisher := &mockEventPublisher{}
	extractor := &mockExtractor{
		extractFunc: func(context.Context, io.ReaderAt, int64) (string, error) {
			return "SALARY PAYMENT 15,000.00\nGROCERIES 450.00", nil
		},
	}

	uc := usecase.NewUploadDocumentUseCase(appRepo, docRepo, extractor, publisher, discardLogger())
	content := bytes.NewReader([]byte("%PDF-1.4 fake"))
	resp, err := uc.Execute(context.Background(), usecase.UploadDocumentRequest{
		ApplicationID: app.ID(),
		Filename:      "statement.pdf",
		ContentType:   "application/pdf",
		Size:          content.Size(),
		Content:       content,
	})
	require.NoError(t, err)

	assert.Equal(t, "bank_statement", resp.Kind)
	assert.InDelta(t, 15000.0, resp.EstimatedIncome, 1e-9)
	assert.InDelta(t, 0.9, resp.IncomeConfidence, 1e-9)

	require.Len(t, docRepo.savedDocs, 1)
	require.Len(t, appRepo.savedApps, 1)
	saved := appRepo.savedApps[0]
	assert.InDelta(t, 15000.0, saved.IncomeEstimate().EstimatedIncome, 1e-9)

	var types []string
	for _, evt := range publisher.publishedEvents {
		types = append(types, evt.EventType())
	}
	assert.Contains(t, types, "lending.application.income_analyzed")
	assert.Contains(t, types, "lending.document.uploaded")
}

func TestUploadDocument_NoSignalStillStored(t *testing.T) {
	app := underReviewApplication(t)
	appRepo := &mockApplicationRepository{
		findByIDFunc: func(context.Context, string) (model.LoanApplication, error) { return app, nil },
	}
	docRepo := &mockDocumentRepository{}
	extractor := &mockExtractor{
		extractFunc: func(context.Context, io.ReaderAt, int64) (string, error) {
			return "GROCERIES 450.00\nFUEL 800.00", nil
		},
	}

	uc := usecase.NewUploadDocumentUseCase(appRepo, docRepo, extractor, &mockEventPublisher{}, discardLogger())
	content := bytes.NewReader([]byte("x"))
	resp, err := uc.Execute(context.Background(), usecase.UploadDocumentRequest{
		ApplicationID: app.ID(), Filename: "statement.pdf", Size: 1, Content: content,
	})
	require.NoError(t, err)

	assert.Zero(t, resp.EstimatedIncome)
	assert.Zero(t, resp.IncomeConfidence)
	assert.Len(t, docRepo.savedDocs, 1)
}

func TestUploadDocument_ExtractionFailure(t *testing.T) {
	app := underReviewApplication(t)
	appRepo := &mockApplicationRepository{
		findByIDFunc: func(context.Context, string) (model.LoanApplication, error) { return app, nil },
	}
	docRepo := &mockDocumentRepository{}
	extractor := &mockExtractor{
		extractFunc: func(context.Context, io.ReaderAt, int64) (string, error) {
			return "", fmt.Errorf("malformed xref table")
		},
	}

	uc := usecase.NewUploadDocumentUseCase(appRepo, docRepo, extractor, &mockEventPublisher{}, discardLogger())
	content := bytes.NewReader([]byte("not a pdf"))
	_, err := uc.Execute(context.Background(), usecase.UploadDocumentRequest{
		ApplicationID: app.ID(), Filename: "statement.pdf", Size: 9, Content: content,
	})

	assert.ErrorContains(t, err, "extract statement text")
	assert.Empty(t, docRepo.savedDocs)
}

func TestUploadDocument_UnknownApplication(t *testing.T) {
	uc := usecase.NewUploadDocumentUseCase(
		&mockApplicationRepository{}, &mockDocumentRepository{}, &mockExtractor{},
		&mockEventPublisher{}, discardLogger())

	content := bytes.NewReader([]byte("x"))
	_, err := uc.Execute(context.Background(), usecase.UploadDocumentRequest{
		ApplicationID: "missing", Filename: "statement.pdf", Size: 1, Content: content,
	})
	assert.Error(t, err)
}
