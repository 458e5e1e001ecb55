package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasicash/kasi/internal/domain/model"
	"github.com/kasicash/kasi/internal/domain/valueobject"
)

// DocumentRepo implements port.DocumentRepository.
type DocumentRepo struct {
	pool *pgxpool.Pool
}

// NewDocumentRepo creates a new repository backed by PostgreSQL.
func NewDocumentRepo(pool *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{pool: pool}
}

// Save persists document metadata (insert-only; documents are immutable).
func (r *DocumentRepo) Save(ctx context.Context, doc model.Document) error {
	query := `
		INSERT INTO documents (
			id, application_id, kind, filename, content_type, size_bytes,
			estimated_income, income_confidence, income_source,
			face_match, face_similarity, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			estimated_income  = EXCLUDED.estimated_income,
			income_confidence = EXCLUDED.income_confidence,
			income_source     = EXCLUDED.income_source,
			face_match        = EXCLUDED.face_match,
			face_similarity   = EXCLUDED.face_similarity
	`
	_, err := r.pool.Exec(ctx, query,
		doc.ID, doc.ApplicationID, doc.Kind.String(), doc.Filename, doc.ContentType, doc.SizeBytes,
		doc.IncomeEstimate.EstimatedIncome, doc.IncomeEstimate.Confidence, doc.IncomeEstimate.Source,
		doc.FaceMatch, doc.FaceSimilarity, doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// FindByApplicationID retrieves all documents for an application, oldest first.
func (r *DocumentRepo) FindByApplicationID(ctx context.Context, applicationID string) ([]model.Document, error) {
	query := `
		SELECT id, application_id, kind, filename, content_type, size_bytes,
		       estimated_income, income_confidence, income_source,
		       face_match, face_similarity, created_at
		FROM documents
		WHERE application_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var result []model.Document
	for rows.Next() {
		var (
			doc     model.Document
			kindStr string
			created time.Time
		)
		err := rows.Scan(
			&doc.ID, &doc.ApplicationID, &kindStr, &doc.Filename, &doc.ContentType, &doc.SizeBytes,
			&doc.IncomeEstimate.EstimatedIncome, &doc.IncomeEstimate.Confidence, &doc.IncomeEstimate.Source,
			&doc.FaceMatch, &doc.FaceSimilarity, &created,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		kind, err := valueobject.NewDocumentKind(kindStr)
		if err != nil {
			return nil, fmt.Errorf("parse document kind: %w", err)
		}
		doc.Kind = kind
		doc.CreatedAt = created
		result = append(result, doc)
	}
	return result, rows.Err()
}
