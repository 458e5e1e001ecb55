package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kasicash/kasi/internal/domain/valueobject"
)

// Document is metadata for an uploaded file attached to an application.
// The file bytes live in external object storage; only metadata and analysis
// results are kept here.
type Document struct {
	ID             string
	ApplicationID  string
	Kind           valueobject.DocumentKind
	Filename       string
	ContentType    string
	SizeBytes      int64
	IncomeEstimate valueobject.IncomeEstimate
	FaceMatch      bool
	FaceSimilarity float64
	CreatedAt      time.Time
}

// NewDocument creates document metadata for an upload.
func NewDocument(
	applicationID string,
	kind valueobject.DocumentKind,
	filename, contentType string,
	sizeBytes int64,
	now time.Time,
) (Document, error) {
	if applicationID == "" {
		return Document{}, errors.New("application ID is required")
	}
	if kind.IsZero() {
		return Document{}, errors.New("document kind is required")
	}
	if filename == "" {
		return Document{}, errors.New("filename is required")
	}
	if sizeBytes <= 0 {
		return Document{}, errors.New("document size must be positive")
	}

	return Document{
		ID:            uuid.New().String(),
		ApplicationID: applicationID,
		Kind:          kind,
		Filename:      filename,
		ContentType:   contentType,
		SizeBytes:     sizeBytes,
		CreatedAt:     now,
	}, nil
}

// WithIncomeEstimate returns a copy carrying the statement analysis result.
func (d Document) WithIncomeEstimate(est valueobject.IncomeEstimate) Document {
	next := d
	next.IncomeEstimate = est
	return next
}

// WithFaceMatch returns a copy carrying the selfie comparison result.
func (d Document) WithFaceMatch(match bool, similarity float64) Document {
	next := d
	next.FaceMatch = match
	next.FaceSimilarity = similarity
	return next
}
