package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kasicash/kasi/internal/domain/model"
	"github.com/kasicash/kasi/internal/domain/service"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// SubmitApplicationRequest carries the data needed to submit a new loan application.
type SubmitApplicationRequest struct {
	ApplicantName  string          `json:"applicant_name"`
	ApplicantEmail string          `json:"applicant_email"`
	NationalID     string          `json:"national_id"`
	Amount         decimal.Decimal `json:"amount"`
	TermMonths     int             `json:"term_months"`
	LoanType       string          `json:"loan_type"`
	Purpose        string          `json:"purpose"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	EmploymentType string          `json:"employment_type"`
}

// CreditCheckRequest identifies the person to pull a report for.
type CreditCheckRequest struct {
	NationalID string `json:"national_id"`
}

// VerificationScoreRequest carries the scorecard inputs.
type VerificationScoreRequest struct {
	Income         float64 `json:"income"`
	EmploymentType string  `json:"employment_type"`
}

// ReviewApplicationRequest carries an admin decision.
type ReviewApplicationRequest struct {
	ApplicationID string `json:"application_id"`
	Reason        string `json:"reason"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// LoanQuoteResponse is the derived cost of a loan, recomputed on every read.
type LoanQuoteResponse struct {
	LoanType       string  `json:"loan_type"`
	Principal      float64 `json:"principal"`
	TermMonths     int     `json:"term_months"`
	TotalRepayment float64 `json:"total_repayment"`
	DisplayTotal   float64 `json:"display_total"`
	MonthlyPayment float64 `json:"monthly_payment"`
	EffectiveAPR   float64 `json:"effective_apr"`
}

// ApplicationResponse is the external representation of a loan application.
type ApplicationResponse struct {
	ID                string            `json:"id"`
	ApplicantName     string            `json:"applicant_name"`
	ApplicantEmail    string            `json:"applicant_email"`
	NationalID        string            `json:"national_id"`
	Amount            decimal.Decimal   `json:"amount"`
	TermMonths        int               `json:"term_months"`
	LoanType          string            `json:"loan_type"`
	Purpose           string            `json:"purpose,omitempty"`
	MonthlyIncome     decimal.Decimal   `json:"monthly_income"`
	EmploymentType    string            `json:"employment_type"`
	EstimatedIncome   float64           `json:"estimated_income"`
	IncomeConfidence  float64           `json:"income_confidence"`
	IncomeSource      string            `json:"income_source,omitempty"`
	VerificationScore int               `json:"verification_score"`
	CreditScore       int               `json:"credit_score"`
	CreditRiskBand    string            `json:"credit_risk_band,omitempty"`
	Status            string            `json:"status"`
	DecisionReason    string            `json:"decision_reason,omitempty"`
	Quote             LoanQuoteResponse `json:"quote"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// IncomeAnalysisResponse is the income heuristic result for an uploaded
// statement.
type IncomeAnalysisResponse struct {
	EstimatedIncome    float64 `json:"estimated_income"`
	IncomeConfidence   float64 `json:"income_confidence"`
	VerificationSource string  `json:"verification_source"`
}

// VerificationScoreResponse is the scorecard result with its audit trace.
type VerificationScoreResponse struct {
	Verified    bool                  `json:"verified"`
	Score       int                   `json:"score"`
	IsQualified bool                  `json:"is_qualified"`
	Breakdown   []service.ScoreFactor `json:"breakdown"`
	TraceID     string                `json:"trace_id"`
}

// DocumentResponse is the external representation of stored document metadata.
type DocumentResponse struct {
	ID               string    `json:"id"`
	ApplicationID    string    `json:"application_id"`
	Kind             string    `json:"kind"`
	Filename         string    `json:"filename"`
	ContentType      string    `json:"content_type,omitempty"`
	SizeBytes        int64     `json:"size_bytes"`
	EstimatedIncome  float64   `json:"estimated_income,omitempty"`
	IncomeConfidence float64   `json:"income_confidence,omitempty"`
	FaceMatch        bool      `json:"face_match,omitempty"`
	FaceSimilarity   float64   `json:"face_similarity,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// SelfieVerifyResponse is the outcome of a selfie-to-ID comparison.
type SelfieVerifyResponse struct {
	ApplicationID string  `json:"application_id"`
	Match         bool    `json:"match"`
	Similarity    float64 `json:"similarity"`
}

// ---------------------------------------------------------------------------
// Mappers
// ---------------------------------------------------------------------------

// FromApplication maps an aggregate to its response, recomputing the quote.
func FromApplication(app model.LoanApplication) ApplicationResponse {
	amount, _ := app.RequestedAmount().Float64()
	quote := service.Quote(amount, app.TermMonths(), app.LoanType())
	est := app.IncomeEstimate()

	return ApplicationResponse{
		ID:                app.ID(),
		ApplicantName:     app.ApplicantName(),
		ApplicantEmail:    app.ApplicantEmail(),
		NationalID:        app.NationalID(),
		Amount:            app.RequestedAmount(),
		TermMonths:        app.TermMonths(),
		LoanType:          app.LoanType().String(),
		Purpose:           app.Purpose(),
		MonthlyIncome:     app.MonthlyIncome(),
		EmploymentType:    app.EmploymentType(),
		EstimatedIncome:   est.EstimatedIncome,
		IncomeConfidence:  est.Confidence,
		IncomeSource:      est.Source,
		VerificationScore: app.VerificationScore(),
		CreditScore:       app.CreditScore(),
		CreditRiskBand:    app.CreditRiskBand(),
		Status:            app.Status().String(),
		DecisionReason:    app.DecisionReason(),
		Quote: LoanQuoteResponse{
			LoanType:       quote.LoanType.String(),
			Principal:      quote.Principal,
			TermMonths:     quote.TermMonths,
			TotalRepayment: quote.TotalRepayment,
			DisplayTotal:   quote.DisplayTotal(),
			MonthlyPayment: quote.MonthlyPayment,
			EffectiveAPR:   quote.EffectiveAPR,
		},
		CreatedAt: app.CreatedAt(),
		UpdatedAt: app.UpdatedAt(),
	}
}

// FromDocument maps document metadata to its response.
func FromDocument(doc model.Document) DocumentResponse {
	return DocumentResponse{
		ID:               doc.ID,
		ApplicationID:    doc.ApplicationID,
		Kind:             doc.Kind.String(),
		Filename:         doc.Filename,
		ContentType:      doc.ContentType,
		SizeBytes:        doc.SizeBytes,
		EstimatedIncome:  doc.IncomeEstimate.EstimatedIncome,
		IncomeConfidence: doc.IncomeEstimate.Confidence,
		FaceMatch:        doc.FaceMatch,
		FaceSimilarity:   doc.FaceSimilarity,
		CreatedAt:        doc.CreatedAt,
	}
}
