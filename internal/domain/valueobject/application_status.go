package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// ApplicationStatus – immutable value object
// ---------------------------------------------------------------------------

// ApplicationStatus represents the lifecycle stage of a loan application.
type ApplicationStatus struct {
	value string
}

const (
	appStatusSubmitted   = "SUBMITTED"
	appStatusUnderReview = "UNDER_REVIEW"
	appStatusApproved    = "APPROVED"
	appStatusRejected    = "REJECTED"
)

var (
	ApplicationStatusSubmitted   = ApplicationStatus{value: appStatusSubmitted}
	ApplicationStatusUnderReview = ApplicationStatus{value: appStatusUnderReview}
	ApplicationStatusApproved    = ApplicationStatus{value: appStatusApproved}
	ApplicationStatusRejected    = ApplicationStatus{value: appStatusRejected}
)

var validApplicationStatuses = map[string]ApplicationStatus{
	appStatusSubmitted:   ApplicationStatusSubmitted,
	appStatusUnderReview: ApplicationStatusUnderReview,
	appStatusApproved:    ApplicationStatusApproved,
	appStatusRejected:    ApplicationStatusRejected,
}

// NewApplicationStatus creates an ApplicationStatus from a raw string.
func NewApplicationStatus(s string) (ApplicationStatus, error) {
	v, ok := validApplicationStatuses[s]
	if !ok {
		return ApplicationStatus{}, fmt.Errorf("invalid application status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ApplicationStatus) Equal(other ApplicationStatus) bool {
	return s.value == other.value
}

// ---------------------------------------------------------------------------
// DocumentKind – immutable value object
// ---------------------------------------------------------------------------

// DocumentKind classifies an uploaded document.
type DocumentKind struct {
	value string
}

const (
	docKindBankStatement = "bank_statement"
	docKindIDDocument    = "id_document"
	docKindSelfie        = "selfie"
)

var (
	DocumentKindBankStatement = DocumentKind{value: docKindBankStatement}
	DocumentKindIDDocument    = DocumentKind{value: docKindIDDocument}
	DocumentKindSelfie        = DocumentKind{value: docKindSelfie}
)

var validDocumentKinds = map[string]DocumentKind{
	docKindBankStatement: DocumentKindBankStatement,
	docKindIDDocument:    DocumentKindIDDocument,
	docKindSelfie:        DocumentKindSelfie,
}

// NewDocumentKind creates a DocumentKind from a raw string.
func NewDocumentKind(s string) (DocumentKind, error) {
	v, ok := validDocumentKinds[s]
	if !ok {
		return DocumentKind{}, fmt.Errorf("invalid document kind: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (k DocumentKind) String() string { return k.value }

// IsZero returns true when not initialised.
func (k DocumentKind) IsZero() bool { return k.value == "" }

// Equal returns true when both kinds match.
func (k DocumentKind) Equal(other DocumentKind) bool { return k.value == other.value }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
