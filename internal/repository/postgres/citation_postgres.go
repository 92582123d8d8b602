package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"dataroom/internal/model"
	"dataroom/internal/repository"
)

// CitationPostgres stores externally produced source citations.
type CitationPostgres struct {
	db *sql.DB
}

// NewCitationPostgres creates a new CitationPostgres repository.
func NewCitationPostgres(db *sql.DB) *CitationPostgres {
	return &CitationPostgres{db: db}
}

var _ repository.CitationRepository = (*CitationPostgres)(nil)

// Replace deletes the question's citations and inserts cs in one transaction.
func (r *CitationPostgres) Replace(ctx context.Context, questionID string, cs []model.SourceCitation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM question_citations WHERE question_id = $1`, questionID); err != nil {
		return err
	}

	const ins = `
		INSERT INTO question_citations (question_id, document_id, document_name, excerpt, similarity_score, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, c := range cs {
		if _, err := tx.ExecContext(ctx, ins,
			questionID,
			c.DocumentID,
			c.DocumentName,
			c.Excerpt,
			c.SimilarityScore,
			c.RecordedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListByQuestion returns citations ordered by similarity, best first.
func (r *CitationPostgres) ListByQuestion(ctx context.Context, questionID string) ([]model.SourceCitation, error) {
	const q = `
		SELECT question_id, document_id, document_name, excerpt, similarity_score, recorded_at
		FROM question_citations
		WHERE question_id = $1
		ORDER BY similarity_score DESC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.SourceCitation, 0)
	for rows.Next() {
		var c model.SourceCitation
		if err := rows.Scan(
			&c.QuestionID,
			&c.DocumentID,
			&c.DocumentName,
			&c.Excerpt,
			&c.SimilarityScore,
			&c.RecordedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
