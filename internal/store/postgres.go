package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/sourcing-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock pools satisfy it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(4)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS evaluations (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	kind       TEXT NOT NULL,
	summary    TEXT NOT NULL,
	input      JSONB NOT NULL,
	output     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_evaluations_kind ON evaluations(kind);
CREATE INDEX IF NOT EXISTS idx_evaluations_kind_created ON evaluations(kind, created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveEvaluation(ctx context.Context, e *model.Evaluation) error {
	stamp(e)
	_, err := s.pool.Exec(ctx,
		`INSERT INTO evaluations (id, kind, summary, input, output, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, string(e.Kind), e.Summary, []byte(e.Input), []byte(e.Output), e.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert evaluation")
}

// SaveEvaluations bulk-inserts evals with the COPY protocol.
func (s *PostgresStore) SaveEvaluations(ctx context.Context, evals []*model.Evaluation) (int64, error) {
	if len(evals) == 0 {
		return 0, nil
	}

	rows := make([][]any, len(evals))
	for i, e := range evals {
		stamp(e)
		rows[i] = []any{e.ID, string(e.Kind), e.Summary, []byte(e.Input), []byte(e.Output), e.CreatedAt}
	}
	n, err := s.pool.CopyFrom(ctx, pgx.Identifier{"evaluations"}, evaluationColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, eris.Wrap(err, "postgres: COPY INTO evaluations")
	}
	return n, nil
}

func (s *PostgresStore) GetEvaluation(ctx context.Context, id string) (*model.Evaluation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, kind, summary, input::text, output::text, created_at FROM evaluations WHERE id = $1`,
		id,
	)
	e, err := scanEvaluation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: get evaluation %s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get evaluation")
	}
	return e, nil
}

func (s *PostgresStore) ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]model.Evaluation, error) {
	query := `SELECT id, kind, summary, input::text, output::text, created_at FROM evaluations`
	var args []any

	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		query += ` WHERE kind = $1`
	}
	args = append(args, filter.limit())
	if filter.Kind != "" {
		query += ` ORDER BY created_at DESC LIMIT $2`
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1`
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list evaluations")
	}
	defer rows.Close()

	var out []model.Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan evaluation")
		}
		out = append(out, *e)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list evaluations iterate")
}
