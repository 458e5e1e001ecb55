package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasicash/kasi/internal/application/usecase"
	"github.com/kasicash/kasi/internal/domain/model"
	"github.com/kasicash/kasi/internal/domain/port"
	"github.com/kasicash/kasi/internal/domain/valueobject"
)

func TestGetApplication_WithDocuments(t *testing.T) {
	app := underReviewApplication(t)
	doc, err := model.NewDocument(app.ID(), valueobject.DocumentKindBankStatement,
		"statement.pdf", "application/pdf", 2048, time.Now().UTC())
	require.NoError(t, err)

	appRepo := &mockApplicationRepository{
		findByIDFunc: func(context.Context, string) (model.LoanApplication, error) { return app, nil },
	}
	docRepo := &mockDocumentRepository{
		findFunc: func(context.Context, string) ([]model.Document, error) {
			return []model.Document{doc}, nil
		},
	}

	uc := usecase.NewGetApplicationUseCase(appRepo, docRepo)
	resp, docs, err := uc.Execute(context.Background(), app.ID())
	require.NoError(t, err)

	assert.Equal(t, app.ID(), resp.ID)
	assert.Equal(t, "UNDER_REVIEW", resp.Status)
	require.Len(t, docs, 1)
	assert.Equal(t, "statement.pdf", docs[0].Filename)

	// Derived figures are computed on read.
	assert.InDelta(t, 13900.0, resp.Quote.TotalRepayment, 1e-9)
	assert.InDelta(t, 13900.0, resp.Quote.DisplayTotal, 1e-9)
}

func TestGetApplication_NotFound(t *testing.T) {
	uc := usecase.NewGetApplicationUseCase(&mockApplicationRepository{}, &mockDocumentRepository{})

	_, _, err := uc.Execute(context.Background(), "missing")
	assert.ErrorIs(t, err, port.ErrApplicationNotFound)
}

func TestListApplications_FiltersByStatus(t *testing.T) {
	app := underReviewApplication(t)
	var gotStatus string
	appRepo := &mockApplicationRepository{
		listFunc: func(_ context.Context, status string) ([]model.LoanApplication, error) {
			gotStatus = status
			return []model.LoanApplication{app}, nil
		},
	}

	uc := usecase.NewListApplicationsUseCase(appRepo)
	resp, err := uc.Execute(context.Background(), "UNDER_REVIEW")
	require.NoError(t, err)

	assert.Equal(t, "UNDER_REVIEW", gotStatus)
	require.Len(t, resp, 1)
	assert.Equal(t, app.ID(), resp[0].ID)
}

func TestListApplications_EmptyResult(t *testing.T) {
	uc := usecase.NewListApplicationsUseCase(&mockApplicationRepository{})

	resp, err := uc.Execute(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, resp)
}
