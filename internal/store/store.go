// Package store persists evaluation history.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/sourcing-cli/internal/model"
)

// ErrNotFound is returned when an evaluation ID does not exist.
var ErrNotFound = eris.New("evaluation not found")

// Store drivers.
const (
	DriverNone     = "none"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultListLimit caps ListEvaluations when the filter sets no limit.
const DefaultListLimit = 50

// EvaluationFilter specifies criteria for listing evaluations.
type EvaluationFilter struct {
	Kind  model.EvaluationKind `json:"kind,omitempty"`
	Limit int                  `json:"limit,omitempty"`
}

func (f EvaluationFilter) limit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}

var evaluationColumns = []string{"id", "kind", "summary", "input", "output", "created_at"}

// stamp assigns a new ID and the current UTC time.
func stamp(e *model.Evaluation) {
	e.ID = uuid.New().String()
	e.CreatedAt = time.Now().UTC()
}

// Store defines the persistence interface for evaluation history.
type Store interface {
	// SaveEvaluation assigns an ID and timestamp to e and inserts it.
	SaveEvaluation(ctx context.Context, e *model.Evaluation) error
	// SaveEvaluations inserts many evaluations in one round trip and returns
	// the number written.
	SaveEvaluations(ctx context.Context, evals []*model.Evaluation) (int64, error)
	GetEvaluation(ctx context.Context, id string) (*model.Evaluation, error)
	// ListEvaluations returns the newest evaluations first.
	ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]model.Evaluation, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open connects to the store selected by driver and applies migrations.
// The none driver returns a nil Store and no error. poolCfg only applies to
// postgres and may be nil.
func Open(ctx context.Context, driver, dsn string, poolCfg *PoolConfig) (Store, error) {
	var (
		s   Store
		err error
	)
	switch driver {
	case "", DriverNone:
		return nil, nil
	case DriverSQLite:
		if dsn == "" {
			dsn = "sourcing.db"
		}
		s, err = NewSQLite(dsn)
	case DriverPostgres:
		if dsn == "" {
			return nil, eris.New("store: postgres driver requires store.database_url")
		}
		s, err = NewPostgres(ctx, dsn, poolCfg)
	default:
		return nil, eris.Errorf("store: unsupported driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}
