package postgres

import (
	"context"
	"database/sql"
	"errors"

	"dataroom/internal/model"
	"dataroom/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, name, tags, storage_path, size, content_type, uploaded_by, uploaded_at`

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	tags, err := encodeStrings(doc.Tags)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO documents (id, name, tags, storage_path, size, content_type, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7, $8)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Name,
		tags,
		doc.StoragePath,
		doc.Size,
		doc.ContentType,
		doc.UploadedBy,
		doc.UploadedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// List returns documents using LIMIT/OFFSET pagination and a total count.
// With tags set, only documents carrying at least one of them are returned.
func (r *DocumentPostgres) List(ctx context.Context, f repository.DocumentFilter) (*repository.PageResult[model.Document], error) {
	where := ""
	args := []any{}
	if len(f.Tags) > 0 {
		tags, err := encodeStrings(f.Tags)
		if err != nil {
			return nil, err
		}
		where = ` WHERE tags ?| ARRAY(SELECT jsonb_array_elements_text($1::jsonb))`
		args = append(args, tags)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := `SELECT ` + documentColumns + ` FROM documents` + where +
		` ORDER BY uploaded_at DESC, id DESC LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	rows, err := r.db.QueryContext(ctx, qList, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectDocuments(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// ListAll returns the whole corpus in upload order.
func (r *DocumentPostgres) ListAll(ctx context.Context) ([]model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents ORDER BY uploaded_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

// UpdateTags replaces the tag set of a document.
func (r *DocumentPostgres) UpdateTags(ctx context.Context, id string, tags []string) (*model.Document, error) {
	enc, err := encodeStrings(tags)
	if err != nil {
		return nil, err
	}
	const q = `UPDATE documents SET tags = $2::jsonb WHERE id = $1 RETURNING ` + documentColumns
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id, enc))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
// Questions citing the document keep the dangling ID.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func scanDocument(s scanner) (*model.Document, error) {
	var (
		d    model.Document
		tags []byte
	)
	if err := s.Scan(
		&d.ID,
		&d.Name,
		&tags,
		&d.StoragePath,
		&d.Size,
		&d.ContentType,
		&d.UploadedBy,
		&d.UploadedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if d.Tags, err = decodeStrings(tags); err != nil {
		return nil, err
	}
	return &d, nil
}

func collectDocuments(rows *sql.Rows) ([]model.Document, error) {
	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
