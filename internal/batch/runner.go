package batch

import (
	"context"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/sourcing-cli/internal/model"
	"github.com/sells-group/sourcing-cli/internal/negotiation"
	"github.com/sells-group/sourcing-cli/internal/supplier"
)

// DefaultConcurrency is used when a Runner has no positive limit.
const DefaultConcurrency = 4

// Recorder saves evaluations in bulk. store.Store satisfies it.
type Recorder interface {
	SaveEvaluations(ctx context.Context, evals []*model.Evaluation) (int64, error)
}

// Result is the outcome of one row. Exactly one of Verdict, Score or Error is set.
type Result struct {
	Line    int                `json:"line"`
	Verdict *model.Verdict     `json:"verdict,omitempty"`
	Score   *model.ScoreReport `json:"score,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// OK reports whether the row evaluated without error.
func (r Result) OK() bool {
	return r.Error == ""
}

// Runner evaluates rows concurrently.
type Runner struct {
	Concurrency int
	Scorer      *supplier.Scorer
	// Recorder is optional. Successful rows are saved once the run finishes;
	// save failures are logged and do not fail the run.
	Recorder Recorder
}

// Summary counts row outcomes.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Run evaluates every row as kind. Results are in input order. Row errors are
// recorded on the result; only cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, kind model.EvaluationKind, rows []Row) ([]Result, Summary, error) {
	if !kind.Valid() {
		return nil, Summary{}, eris.Errorf("batch: unknown kind %q", kind)
	}
	scorer := r.Scorer
	if scorer == nil {
		scorer = supplier.NewScorer()
	}
	limit := r.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	zap.L().Info("batch: evaluating rows",
		zap.String("kind", string(kind)),
		zap.Int("rows", len(rows)),
		zap.Int("concurrency", limit),
	)

	results := make([]Result, len(rows))
	evals := make([]*model.Evaluation, len(rows))
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, row := range rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, e := r.evaluate(kind, scorer, row)
			results[i] = res
			evals[i] = e
			if !res.OK() {
				failed.Add(1)
				zap.L().Warn("batch: row rejected", zap.Int("line", row.Line), zap.String("error", res.Error))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Summary{}, eris.Wrap(err, "batch: run")
	}

	r.record(ctx, evals)

	sum := Summary{Total: len(rows), Failed: int(failed.Load())}
	sum.Succeeded = sum.Total - sum.Failed
	zap.L().Info("batch: complete",
		zap.Int("total", sum.Total),
		zap.Int("succeeded", sum.Succeeded),
		zap.Int("failed", sum.Failed),
	)
	return results, sum, nil
}

func (r *Runner) evaluate(kind model.EvaluationKind, scorer *supplier.Scorer, row Row) (Result, *model.Evaluation) {
	res := Result{Line: row.Line}
	switch kind {
	case model.KindNegotiation:
		in, err := NegotiationInput(row)
		if err != nil {
			res.Error = err.Error()
			return res, nil
		}
		v := negotiation.Evaluate(in)
		res.Verdict = &v
		return res, r.evaluation(kind, string(v.Case), in, v)
	default:
		in, err := SupplierInput(row)
		if err != nil {
			res.Error = err.Error()
			return res, nil
		}
		rep := scorer.Evaluate(in)
		res.Score = &rep
		return res, r.evaluation(kind, string(rep.Grade), in, rep)
	}
}

func (r *Runner) evaluation(kind model.EvaluationKind, summary string, in, out any) *model.Evaluation {
	if r.Recorder == nil {
		return nil
	}
	e, err := model.NewEvaluation(kind, summary, in, out)
	if err != nil {
		zap.L().Warn("batch: encode evaluation", zap.Error(err))
		return nil
	}
	return e
}

// record saves the evaluations of successful rows in input order.
func (r *Runner) record(ctx context.Context, evals []*model.Evaluation) {
	if r.Recorder == nil {
		return
	}
	saved := make([]*model.Evaluation, 0, len(evals))
	for _, e := range evals {
		if e != nil {
			saved = append(saved, e)
		}
	}
	if len(saved) == 0 {
		return
	}
	n, err := r.Recorder.SaveEvaluations(ctx, saved)
	if err != nil {
		zap.L().Warn("batch: save evaluations", zap.Int("evaluations", len(saved)), zap.Error(err))
		return
	}
	zap.L().Info("batch: saved evaluations", zap.Int64("evaluations", n))
}
