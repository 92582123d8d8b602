// Package migration creates the data room schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is the last table the steps create; its presence means the schema is complete.
const sentinelTable = "public.question_citations"

// Ids are opaque strings, so id columns are TEXT rather than UUID.
var steps = []migrationStep{
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id           TEXT        PRIMARY KEY,
  name         TEXT        NOT NULL,
  tags         JSONB       NOT NULL DEFAULT '[]'::jsonb,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  uploaded_by  TEXT        NOT NULL,
  uploaded_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_uploaded_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_uploaded_at ON documents (uploaded_at, id);`,
	},
	{
		Name: "create_index_documents_tags",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_tags ON documents USING GIN (tags);`,
	},
	{
		Name: "create_table_questions",
		SQL: `CREATE TABLE IF NOT EXISTS questions (
  id                TEXT        PRIMARY KEY,
  title             TEXT        NOT NULL,
  content           TEXT        NOT NULL DEFAULT '',
  asked_by          TEXT        NOT NULL,
  asked_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  priority          TEXT        NOT NULL CHECK (priority IN ('low', 'medium', 'high')),
  tags              JSONB       NOT NULL DEFAULT '[]'::jsonb,
  status            TEXT        NOT NULL CHECK (status IN ('pending', 'needs_documents', 'answered')),
  answer            TEXT,
  answered_by       TEXT,
  answered_at       TIMESTAMPTZ,
  related_documents JSONB       NOT NULL DEFAULT '[]'::jsonb,
  version           BIGINT      NOT NULL DEFAULT 1,
  CHECK ((status = 'answered') = (answered_at IS NOT NULL))
);`,
	},
	{
		Name: "create_index_questions_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_questions_status ON questions (status);`,
	},
	{
		Name: "create_index_questions_asked_by",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_questions_asked_by ON questions (asked_by);`,
	},
	{
		Name: "create_index_questions_asked_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_questions_asked_at ON questions (asked_at, id);`,
	},
	{
		Name: "create_table_question_citations",
		SQL: `CREATE TABLE IF NOT EXISTS question_citations (
  id               BIGSERIAL        PRIMARY KEY,
  question_id      TEXT             NOT NULL REFERENCES questions (id),
  document_id      TEXT             NOT NULL,
  document_name    TEXT             NOT NULL DEFAULT '',
  excerpt          TEXT             NOT NULL DEFAULT '',
  similarity_score DOUBLE PRECISION NOT NULL CHECK (similarity_score >= 0 AND similarity_score <= 1),
  recorded_at      TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_question_citations_question_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_question_citations_question_id ON question_citations (question_id);`,
	},
}

// EnsureMigrated runs every step unless the sentinel table already exists.
// Steps are idempotent, so a run interrupted halfway is safe to repeat.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("component", "database"))
	start := time.Now()

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists); err != nil {
		log.Error("db_migration_failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return fmt.Errorf("check sentinel table: %w", err)
	}
	if exists {
		log.Info("db_migration_skip", zap.String("reason", "schema already exists"))
		return nil
	}

	log.Info("db_migration_start", zap.Int("steps", len(steps)))
	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Duration("duration", time.Since(start)),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Debug("db_migration_step",
			zap.String("migration_step", step.Name),
			zap.Duration("step_duration", time.Since(stepStart)),
		)
	}

	log.Info("db_migration_success", zap.Duration("duration", time.Since(start)))
	return nil
}
