package event

import (
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Loan Application Events
// ---------------------------------------------------------------------------

// ApplicationSubmitted is raised when a new application enters the system.
type ApplicationSubmitted struct {
	BaseEvent
	ApplicantEmail  string          `json:"applicant_email"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	LoanType        string          `json:"loan_type"`
	Purpose         string          `json:"purpose"`
	TermMonths      int             `json:"term_months"`
}

func NewApplicationSubmitted(
	applicationID, applicantEmail string,
	amount decimal.Decimal, loanType string,
	termMonths int, purpose string,
) ApplicationSubmitted {
	return ApplicationSubmitted{
		BaseEvent:       NewBaseEvent("lending.application.submitted", applicationID, "LoanApplication"),
		ApplicantEmail:  applicantEmail,
		RequestedAmount: amount,
		LoanType:        loanType,
		TermMonths:      termMonths,
		Purpose:         purpose,
	}
}

// ApplicationApproved is raised when a reviewer approves an application.
type ApplicationApproved struct {
	BaseEvent
	ApplicantEmail string `json:"applicant_email"`
	Reason         string `json:"reason"`
	CreditScore    int    `json:"credit_score"`
}

func NewApplicationApproved(applicationID, applicantEmail, reason string, creditScore int) ApplicationApproved {
	return ApplicationApproved{
		BaseEvent:      NewBaseEvent("lending.application.approved", applicationID, "LoanApplication"),
		ApplicantEmail: applicantEmail,
		Reason:         reason,
		CreditScore:    creditScore,
	}
}

// ApplicationRejected is raised when a reviewer rejects an application.
type ApplicationRejected struct {
	BaseEvent
	ApplicantEmail string `json:"applicant_email"`
	Reason         string `json:"reason"`
}

func NewApplicationRejected(applicationID, applicantEmail, reason string) ApplicationRejected {
	return ApplicationRejected{
		BaseEvent:      NewBaseEvent("lending.application.rejected", applicationID, "LoanApplication"),
		ApplicantEmail: applicantEmail,
		Reason:         reason,
	}
}

// ---------------------------------------------------------------------------
// Document / verification events
// ---------------------------------------------------------------------------

// DocumentUploaded is raised when a document is attached to an application.
type DocumentUploaded struct {
	BaseEvent
	ApplicationID string `json:"application_id"`
	Kind          string `json:"kind"`
	Filename      string `json:"filename"`
	SizeBytes     int64  `json:"size_bytes"`
}

func NewDocumentUploaded(documentID, applicationID, kind, filename string, sizeBytes int64) DocumentUploaded {
	return DocumentUploaded{
		BaseEvent:     NewBaseEvent("lending.document.uploaded", documentID, "Document"),
		ApplicationID: applicationID,
		Kind:          kind,
		Filename:      filename,
		SizeBytes:     sizeBytes,
	}
}

// IncomeAnalyzed is raised when the statement income heuristic has run for an
// application.
type IncomeAnalyzed struct {
	BaseEvent
	EstimatedIncome float64 `json:"estimated_income"`
	Confidence      float64 `json:"confidence"`
	Source          string  `json:"source"`
}

func NewIncomeAnalyzed(applicationID string, estimatedIncome, confidence float64, source string) IncomeAnalyzed {
	return IncomeAnalyzed{
		BaseEvent:       NewBaseEvent("lending.application.income_analyzed", applicationID, "LoanApplication"),
		EstimatedIncome: estimatedIncome,
		Confidence:      confidence,
		Source:          source,
	}
}

// SelfieVerified is raised when a face-match comparison completes.
type SelfieVerified struct {
	BaseEvent
	Match      bool    `json:"match"`
	Similarity float64 `json:"similarity"`
}

func NewSelfieVerified(applicationID string, match bool, similarity float64) SelfieVerified {
	return SelfieVerified{
		BaseEvent:  NewBaseEvent("lending.application.selfie_verified", applicationID, "LoanApplication"),
		Match:      match,
		Similarity: similarity,
	}
}
