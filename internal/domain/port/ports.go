package port

import (
	"context"
	"errors"
	"io"

	"github.com/kasicash/kasi/internal/domain/event"
	"github.com/kasicash/kasi/internal/domain/model"
	"github.com/kasicash/kasi/internal/domain/valueobject"
)

// ErrApplicationNotFound is returned by repositories when no application
// matches the given identifier.
var ErrApplicationNotFound = errors.New("loan application not found")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ApplicationRepository persists and retrieves loan applications.
type ApplicationRepository interface {
	Save(ctx context.Context, app model.LoanApplication) error
	FindByID(ctx context.Context, id string) (model.LoanApplication, error)
	// List returns applications, newest first. An empty status matches all.
	List(ctx context.Context, status string) ([]model.LoanApplication, error)
}

// DocumentRepository persists document metadata. Document bytes are not
// stored here; object storage is an external collaborator.
type DocumentRepository interface {
	Save(ctx context.Context, doc model.Document) error
	FindByApplicationID(ctx context.Context, applicationID string) ([]model.Document, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// CreditBureau produces a credit report for a national ID.
type CreditBureau interface {
	PullReport(ctx context.Context, nationalID string) (valueobject.CreditReport, error)
}

// StatementTextExtractor turns an uploaded statement into plain text.
// Extraction failures (corrupt or encrypted files) surface as errors with no
// OCR fallback or retry.
type StatementTextExtractor interface {
	ExtractText(ctx context.Context, r io.ReaderAt, size int64) (string, error)
}

// FaceMatchResult is the outcome of a face comparison.
type FaceMatchResult struct {
	Match      bool
	Similarity float64
}

// FaceMatcher compares a selfie against an ID document photo.
type FaceMatcher interface {
	Compare(ctx context.Context, selfie, idPhoto []byte) (FaceMatchResult, error)
}

// MailMessage is a transactional email.
type MailMessage struct {
	To       string
	Subject  string
	TextBody string
}

// Mailer delivers transactional email through an external provider.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}
