package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"dataroom/internal/model"
	"dataroom/internal/repository"
)

// QuestionPostgres is a PostgreSQL implementation of repository.QuestionRepository.
// Lifecycle writes are guarded by a compare-and-swap on the version column.
type QuestionPostgres struct {
	db *sql.DB
}

// NewQuestionPostgres creates a new QuestionPostgres repository.
func NewQuestionPostgres(db *sql.DB) *QuestionPostgres {
	return &QuestionPostgres{db: db}
}

var _ repository.QuestionRepository = (*QuestionPostgres)(nil)

const questionColumns = `id, title, content, asked_by, asked_at, priority, tags, status, answer, answered_by, answered_at, related_documents, version`

// Create inserts a new question row and returns the stored record.
func (r *QuestionPostgres) Create(ctx context.Context, q *model.Question) (*model.Question, error) {
	tags, err := encodeStrings(q.Tags)
	if err != nil {
		return nil, err
	}
	related, err := encodeStrings(q.RelatedDocuments)
	if err != nil {
		return nil, err
	}
	const stmt = `
		INSERT INTO questions (id, title, content, asked_by, asked_at, priority, tags, status, answer, answered_by, answered_at, related_documents, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10, $11, $12::jsonb, $13)
		RETURNING ` + questionColumns
	row := r.db.QueryRowContext(ctx, stmt,
		q.ID,
		q.Title,
		q.Content,
		q.AskedBy,
		q.AskedAt,
		string(q.Priority),
		tags,
		string(q.Status),
		nullString(q.Answer),
		nullString(q.AnsweredBy),
		nullTime(q.AnsweredAt),
		related,
		q.Version,
	)
	return scanQuestion(row)
}

// FindByID fetches a single question by its ID.
func (r *QuestionPostgres) FindByID(ctx context.Context, id string) (*model.Question, error) {
	const stmt = `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`
	q, err := scanQuestion(r.db.QueryRowContext(ctx, stmt, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return q, nil
}

// List returns questions newest first using LIMIT/OFFSET pagination and a total count.
func (r *QuestionPostgres) List(ctx context.Context, f repository.QuestionFilter) (*repository.PageResult[model.Question], error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, "status = "+placeholder(len(args)))
	}
	if f.AskedBy != "" {
		args = append(args, f.AskedBy)
		conds = append(conds, "asked_by = "+placeholder(len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	stmt := `SELECT ` + questionColumns + ` FROM questions` + where +
		` ORDER BY asked_at DESC, id DESC LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	rows, err := r.db.QueryContext(ctx, stmt, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectQuestions(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Question]{Items: items, Total: total}, nil
}

// ListAll returns every question in submission order.
func (r *QuestionPostgres) ListAll(ctx context.Context) ([]model.Question, error) {
	const stmt = `SELECT ` + questionColumns + ` FROM questions ORDER BY asked_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuestions(rows)
}

// Update stores the lifecycle fields of q when the row is still at expectedVersion.
func (r *QuestionPostgres) Update(ctx context.Context, q *model.Question, expectedVersion int64) (*model.Question, error) {
	related, err := encodeStrings(q.RelatedDocuments)
	if err != nil {
		return nil, err
	}
	const stmt = `
		UPDATE questions
		SET status = $3, answer = $4, answered_by = $5, answered_at = $6, related_documents = $7::jsonb, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING ` + questionColumns
	out, err := scanQuestion(r.db.QueryRowContext(ctx, stmt,
		q.ID,
		expectedVersion,
		string(q.Status),
		nullString(q.Answer),
		nullString(q.AnsweredBy),
		nullTime(q.AnsweredAt),
		related,
	))
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// Nothing matched: tell a missing row apart from a stale version.
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM questions WHERE id = $1)`, q.ID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, repository.ErrNotFound
	}
	return nil, repository.ErrVersionConflict
}

func scanQuestion(s scanner) (*model.Question, error) {
	var (
		q          model.Question
		priority   string
		status     string
		tags       []byte
		related    []byte
		answer     sql.NullString
		answeredBy sql.NullString
		answeredAt sql.NullTime
	)
	if err := s.Scan(
		&q.ID,
		&q.Title,
		&q.Content,
		&q.AskedBy,
		&q.AskedAt,
		&priority,
		&tags,
		&status,
		&answer,
		&answeredBy,
		&answeredAt,
		&related,
		&q.Version,
	); err != nil {
		return nil, err
	}

	var err error
	if q.Tags, err = decodeStrings(tags); err != nil {
		return nil, err
	}
	if q.RelatedDocuments, err = decodeStrings(related); err != nil {
		return nil, err
	}
	q.Priority = model.Priority(priority)
	q.Status = model.QuestionStatus(status)
	q.Answer = answer.String
	q.AnsweredBy = answeredBy.String
	if answeredAt.Valid {
		t := answeredAt.Time
		q.AnsweredAt = &t
	}
	return &q, nil
}

func collectQuestions(rows *sql.Rows) ([]model.Question, error) {
	items := make([]model.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
