package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kasicash/kasi/internal/domain/model"
	"github.com/kasicash/kasi/internal/domain/port"
	"github.com/kasicash/kasi/internal/domain/valueobject"
)

// ApplicationRepo implements port.ApplicationRepository.
type ApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewApplicationRepo creates a new repository backed by PostgreSQL.
func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

const applicationColumns = `
	id, applicant_name, applicant_email, national_id,
	requested_amount, term_months, loan_type, purpose,
	monthly_income, employment_type,
	estimated_income, income_confidence, income_source,
	verification_score, credit_score, credit_risk_band,
	status, decision_reason, version, created_at, updated_at
`

// Save persists an application (upsert by ID with optimistic locking).
func (r *ApplicationRepo) Save(ctx context.Context, app model.LoanApplication) error {
	query := `
		INSERT INTO loan_applications (
			id, applicant_name, applicant_email, national_id,
			requested_amount, term_months, loan_type, purpose,
			monthly_income, employment_type,
			estimated_income, income_confidence, income_source,
			verification_score, credit_score, credit_risk_band,
			status, decision_reason, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		ON CONFLICT (id) DO UPDATE SET
			estimated_income   = EXCLUDED.estimated_income,
			income_confidence  = EXCLUDED.income_confidence,
			income_source      = EXCLUDED.income_source,
			verification_score = EXCLUDED.verification_score,
			credit_score       = EXCLUDED.credit_score,
			credit_risk_band   = EXCLUDED.credit_risk_band,
			status             = EXCLUDED.status,
			decision_reason    = EXCLUDED.decision_reason,
			version            = loan_applications.version + 1,
			updated_at         = EXCLUDED.updated_at
		WHERE loan_applications.version = $19
	`
	est := app.IncomeEstimate()
	tag, err := r.pool.Exec(ctx, query,
		app.ID(), app.ApplicantName(), app.ApplicantEmail(), app.NationalID(),
		app.RequestedAmount(), app.TermMonths(), app.LoanType().String(), app.Purpose(),
		app.MonthlyIncome(), app.EmploymentType(),
		est.EstimatedIncome, est.Confidence, est.Source,
		app.VerificationScore(), app.CreditScore(), app.CreditRiskBand(),
		app.Status().String(), app.DecisionReason(),
		app.Version(), app.CreatedAt(), app.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on loan application")
	}
	return nil
}

// FindByID retrieves a single application.
func (r *ApplicationRepo) FindByID(ctx context.Context, id string) (model.LoanApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM loan_applications WHERE id = $1`

	app, err := scanApplication(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.LoanApplication{}, port.ErrApplicationNotFound
	}
	return app, err
}

// List retrieves applications, newest first, optionally filtered by status.
func (r *ApplicationRepo) List(ctx context.Context, status string) ([]model.LoanApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM loan_applications`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loan applications: %w", err)
	}
	defer rows.Close()

	var result []model.LoanApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func scanApplication(s scannable) (model.LoanApplication, error) {
	var (
		id, applicantName, applicantEmail, nationalID string
		requestedAmount, monthlyIncome                decimal.Decimal
		termMonths                                    int
		loanTypeStr, purpose, employmentType          string
		estimatedIncome, incomeConfidence             float64
		incomeSource                                  string
		verificationScore, creditScore                int
		creditRiskBand                                string
		statusStr, decisionReason                     string
		version                                       int
		createdAt, updatedAt                          time.Time
	)

	err := s.Scan(
		&id, &applicantName, &applicantEmail, &nationalID,
		&requestedAmount, &termMonths, &loanTypeStr, &purpose,
		&monthlyIncome, &employmentType,
		&estimatedIncome, &incomeConfidence, &incomeSource,
		&verificationScore, &creditScore, &creditRiskBand,
		&statusStr, &decisionReason, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LoanApplication{}, err
		}
		return model.LoanApplication{}, fmt.Errorf("scan loan application: %w", err)
	}

	loanType, err := valueobject.NewLoanType(loanTypeStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("parse loan type: %w", err)
	}
	status, err := valueobject.NewApplicationStatus(statusStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("parse status: %w", err)
	}

	return model.ReconstructLoanApplication(
		id, applicantName, applicantEmail, nationalID,
		requestedAmount, termMonths, loanType, purpose,
		monthlyIncome, employmentType,
		valueobject.IncomeEstimate{
			EstimatedIncome: estimatedIncome,
			Confidence:      incomeConfidence,
			Source:          incomeSource,
		},
		verificationScore, creditScore, creditRiskBand,
		status, decisionReason,
		version, createdAt, updatedAt,
	), nil
}
