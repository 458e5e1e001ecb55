package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kasicash/kasi/internal/domain/event"
	"github.com/kasicash/kasi/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LoanApplication aggregate root
// ---------------------------------------------------------------------------

// LoanApplication is an immutable aggregate. Every mutation returns a new copy.
// Only principal and term are persisted for loan cost purposes; derived
// repayment figures are recomputed wherever displayed.
type LoanApplication struct {
	id                string
	applicantName     string
	applicantEmail    string
	nationalID        string
	requestedAmount   decimal.Decimal
	termMonths        int
	loanType          valueobject.LoanType
	purpose           string
	monthlyIncome     decimal.Decimal
	employmentType    string
	incomeEstimate    valueobject.IncomeEstimate
	verificationScore int
	creditScore       int
	creditRiskBand    string
	status            valueobject.ApplicationStatus
	decisionReason    string
	version           int
	createdAt         time.Time
	updatedAt         time.Time
	domainEvents      []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoanApplication creates a brand-new application in SUBMITTED status.
func NewLoanApplication(
	applicantName, applicantEmail, nationalID string,
	requestedAmount decimal.Decimal,
	termMonths int,
	loanType valueobject.LoanType,
	purpose string,
	monthlyIncome decimal.Decimal,
	employmentType string,
	now time.Time,
) (LoanApplication, error) {
	if applicantName == "" {
		return LoanApplication{}, errors.New("applicant name is required")
	}
	if applicantEmail == "" {
		return LoanApplication{}, errors.New("applicant email is required")
	}
	if nationalID == "" {
		return LoanApplication{}, errors.New("national ID is required")
	}
	if requestedAmount.LessThanOrEqual(decimal.Zero) {
		return LoanApplication{}, errors.New("requested amount must be positive")
	}
	if termMonths <= 0 {
		return LoanApplication{}, errors.New("term months must be positive")
	}
	if loanType.IsZero() {
		return LoanApplication{}, errors.New("loan type is required")
	}

	id := uuid.New().String()
	app := LoanApplication{
		id:              id,
		applicantName:   applicantName,
		applicantEmail:  applicantEmail,
		nationalID:      nationalID,
		requestedAmount: requestedAmount,
		termMonths:      termMonths,
		loanType:        loanType,
		purpose:         purpose,
		monthlyIncome:   monthlyIncome,
		employmentType:  employmentType,
		status:          valueobject.ApplicationStatusSubmitted,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}

	app.domainEvents = append(app.domainEvents, event.NewApplicationSubmitted(
		id, applicantEmail, requestedAmount, loanType.String(), termMonths, purpose,
	))
	return app, nil
}

// ReconstructLoanApplication rebuilds an aggregate from persistence without
// side-effects.
func ReconstructLoanApplication(
	id, applicantName, applicantEmail, nationalID string,
	requestedAmount decimal.Decimal,
	termMonths int,
	loanType valueobject.LoanType,
	purpose string,
	monthlyIncome decimal.Decimal,
	employmentType string,
	incomeEstimate valueobject.IncomeEstimate,
	verificationScore, creditScore int,
	creditRiskBand string,
	status valueobject.ApplicationStatus,
	decisionReason string,
	version int,
	createdAt, updatedAt time.Time,
) LoanApplication {
	return LoanApplication{
		id:                id,
		applicantName:     applicantName,
		applicantEmail:    applicantEmail,
		nationalID:        nationalID,
		requestedAmount:   requestedAmount,
		termMonths:        termMonths,
		loanType:          loanType,
		purpose:           purpose,
		monthlyIncome:     monthlyIncome,
		employmentType:    employmentType,
		incomeEstimate:    incomeEstimate,
		verificationScore: verificationScore,
		creditScore:       creditScore,
		creditRiskBand:    creditRiskBand,
		status:            status,
		decisionReason:    decisionReason,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// SubmitForReview transitions SUBMITTED -> UNDER_REVIEW.
func (a LoanApplication) SubmitForReview(now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusSubmitted) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusUnderReview
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// AttachCreditSnapshot records the bureau score and risk band on the
// application for reviewer display.
func (a LoanApplication) AttachCreditSnapshot(score int, riskBand string, now time.Time) (LoanApplication, error) {
	if a.isDecided() {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.creditScore = score
	next.creditRiskBand = riskBand
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// AttachVerificationScore records the scorecard result.
func (a LoanApplication) AttachVerificationScore(score int, now time.Time) (LoanApplication, error) {
	if a.isDecided() {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.verificationScore = score
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// AttachIncomeEstimate records the statement income heuristic result and
// emits IncomeAnalyzed.
func (a LoanApplication) AttachIncomeEstimate(est valueobject.IncomeEstimate, now time.Time) (LoanApplication, error) {
	if a.isDecided() {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.incomeEstimate = est
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewIncomeAnalyzed(
		a.id, est.EstimatedIncome, est.Confidence, est.Source,
	))
	return next, nil
}

// Approve transitions UNDER_REVIEW -> APPROVED and emits ApplicationApproved.
func (a LoanApplication) Approve(reason string, now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusUnderReview) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusApproved
	next.decisionReason = reason
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewApplicationApproved(
		a.id, a.applicantEmail, reason, a.creditScore,
	))
	return next, nil
}

// Reject transitions UNDER_REVIEW -> REJECTED and emits ApplicationRejected.
func (a LoanApplication) Reject(reason string, now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusUnderReview) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusRejected
	next.decisionReason = reason
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewApplicationRejected(
		a.id, a.applicantEmail, reason,
	))
	return next, nil
}

func (a LoanApplication) isDecided() bool {
	return a.status.Equal(valueobject.ApplicationStatusApproved) ||
		a.status.Equal(valueobject.ApplicationStatusRejected)
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a LoanApplication) ID() string                                 { return a.id }
func (a LoanApplication) ApplicantName() string                      { return a.applicantName }
func (a LoanApplication) ApplicantEmail() string                     { return a.applicantEmail }
func (a LoanApplication) NationalID() string                         { return a.nationalID }
func (a LoanApplication) RequestedAmount() decimal.Decimal           { return a.requestedAmount }
func (a LoanApplication) TermMonths() int                            { return a.termMonths }
func (a LoanApplication) LoanType() valueobject.LoanType             { return a.loanType }
func (a LoanApplication) Purpose() string                            { return a.purpose }
func (a LoanApplication) MonthlyIncome() decimal.Decimal             { return a.monthlyIncome }
func (a LoanApplication) EmploymentType() string                     { return a.employmentType }
func (a LoanApplication) IncomeEstimate() valueobject.IncomeEstimate { return a.incomeEstimate }
func (a LoanApplication) VerificationScore() int                     { return a.verificationScore }
func (a LoanApplication) CreditScore() int                           { return a.creditScore }
func (a LoanApplication) CreditRiskBand() string                     { return a.creditRiskBand }
func (a LoanApplication) Status() valueobject.ApplicationStatus      { return a.status }
func (a LoanApplication) DecisionReason() string                     { return a.decisionReason }
func (a LoanApplication) Version() int                               { return a.version }
func (a LoanApplication) CreatedAt() time.Time                       { return a.createdAt }
func (a LoanApplication) UpdatedAt() time.Time                       { return a.updatedAt }
func (a LoanApplication) DomainEvents() []event.DomainEvent          { return a.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a LoanApplication) ClearEvents() LoanApplication {
	next := a
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
