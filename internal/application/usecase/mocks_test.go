package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kasicash/kasi/internal/domain/event"
	"github.com/kasicash/kasi/internal/domain/model"
	"github.com/kasicash/kasi/internal/domain/port"
	"github.com/kasicash/kasi/internal/domain/valueobject"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Mock implementations ---

type mockApplicationRepository struct {
	saveFunc     func(ctx context.Context, app model.LoanApplication) error
	findByIDFunc func(ctx context.Context, id string) (model.LoanApplication, error)
	listFunc     func(ctx context.Context, status string) ([]model.LoanApplication, error)
	savedApps    []model.LoanApplication
}

func (m *mockApplicationRepository) Save(ctx context.Context, app model.LoanApplication) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, app)
	}
	m.savedApps = append(m.savedApps, app)
	return nil
}

func (m *mockApplicationRepository) FindByID(ctx context.Context, id string) (model.LoanApplication, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.LoanApplication{}, port.ErrApplicationNotFound
}

func (m *mockApplicationRepository) List(ctx context.Context, status string) ([]model.LoanApplication, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, status)
	}
	return nil, nil
}

type mockDocumentRepository struct {
	saveFunc  func(ctx context.Context, doc model.Document) error
	findFunc  func(ctx context.Context, applicationID string) ([]model.Document, error)
	savedDocs []model.Document
}

func (m *mockDocumentRepository) Save(ctx context.Context, doc model.Document) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, doc)
	}
	m.savedDocs = append(m.savedDocs, doc)
	return nil
}

func (m *mockDocumentRepository) FindByApplicationID(ctx context.Context, applicationID string) ([]model.Document, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, applicationID)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockCreditBureau struct {
	pullReportFunc func(ctx context.Context, nationalID string) (valueobject.CreditReport, error)
}

func (m *mockCreditBureau) PullReport(ctx context.Context, nationalID string) (valueobject.CreditReport, error) {
	if m.pullReportFunc != nil {
		return m.pullReportFunc(ctx, nationalID)
	}
	return valueobject.CreditReport{
		NationalID: nationalID,
		Score:      650,
		RiskBand:   "Medium",
	}, nil
}

type mockExtractor struct {
	extractFunc func(ctx context.Context, r io.ReaderAt, size int64) (string, error)
}

func (m *mockExtractor) ExtractText(ctx context.Context, r io.ReaderAt, size int64) (string, error) {
	if m.extractFunc != nil {
		return m.extractFunc(ctx, r, size)
	}
	return "", fmt.Errorf("no extractor configured")
}

type mockFaceMatcher struct {
	compareFunc func(ctx context.Context, selfie, idPhoto []byte) (port.FaceMatchResult, error)
}

func (m *mockFaceMatcher) Compare(ctx context.Context, selfie, idPhoto []byte) (port.FaceMatchResult, error) {
	if m.compareFunc != nil {
		return m.compareFunc(ctx, selfie, idPhoto)
	}
	return port.FaceMatchResult{Match: true, Similarity: 98.7}, nil
}

type mockMailer struct {
	sendFunc func(ctx context.Context, msg port.MailMessage) error
	sent     []port.MailMessage
}

func (m *mockMailer) Send(ctx context.Context, msg port.MailMessage) error {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, msg)
	}
	m.sent = append(m.sent, msg)
	return nil
}
