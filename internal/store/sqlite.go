package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/sourcing-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS evaluations (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	summary    TEXT NOT NULL,
	input      TEXT NOT NULL,
	output     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_evaluations_kind ON evaluations(kind);
CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const sqliteInsert = `INSERT INTO evaluations (id, kind, summary, input, output, created_at) VALUES (?, ?, ?, ?, ?, ?)`

func (s *SQLiteStore) SaveEvaluation(ctx context.Context, e *model.Evaluation) error {
	stamp(e)
	_, err := s.db.ExecContext(ctx, sqliteInsert,
		e.ID, string(e.Kind), e.Summary, string(e.Input), string(e.Output), e.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert evaluation")
}

// SaveEvaluations inserts evals in a single transaction.
func (s *SQLiteStore) SaveEvaluations(ctx context.Context, evals []*model.Evaluation) (int64, error) {
	if len(evals) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, sqliteInsert)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close() //nolint:errcheck

	for _, e := range evals {
		stamp(e)
		if _, err := stmt.ExecContext(ctx,
			e.ID, string(e.Kind), e.Summary, string(e.Input), string(e.Output), e.CreatedAt,
		); err != nil {
			return 0, eris.Wrap(err, "sqlite: insert evaluation")
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit tx")
	}
	return int64(len(evals)), nil
}

func (s *SQLiteStore) GetEvaluation(ctx context.Context, id string) (*model.Evaluation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, summary, input, output, created_at FROM evaluations WHERE id = ?`,
		id,
	)
	e, err := scanEvaluation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: get evaluation %s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get evaluation")
	}
	return e, nil
}

func (s *SQLiteStore) ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]model.Evaluation, error) {
	query := `SELECT id, kind, summary, input, output, created_at FROM evaluations WHERE 1=1`
	var args []any

	if filter.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(filter.Kind))
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, filter.limit())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list evaluations")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan evaluation")
		}
		out = append(out, *e)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list evaluations iterate")
}

type scannable interface {
	Scan(dest ...any) error
}

// scanEvaluation reads one row. Input and output are scanned as strings so
// the same helper serves TEXT and JSONB columns.
func scanEvaluation(row scannable) (*model.Evaluation, error) {
	var (
		e           model.Evaluation
		kind        string
		input, outp string
	)
	if err := row.Scan(&e.ID, &kind, &e.Summary, &input, &outp, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Kind = model.EvaluationKind(kind)
	e.Input = []byte(input)
	e.Output = []byte(outp)
	return &e, nil
}
