package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/sourcing-cli/internal/model"
	"github.com/sells-group/sourcing-cli/internal/outreach"
	"github.com/sells-group/sourcing-cli/internal/store"
	"github.com/sells-group/sourcing-cli/internal/supplier"
	"github.com/sells-group/sourcing-cli/pkg/anthropic"
)

// initStore opens the history store. A nil Store means history is disabled.
func initStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, &store.PoolConfig{
		MaxConns: cfg.Store.MaxConns,
		MinConns: cfg.Store.MinConns,
	})
}

func initScorer() (*supplier.Scorer, error) {
	policy, err := supplier.ParseMidBandPolicy(cfg.Supplier.MidBandPolicy)
	if err != nil {
		return nil, err
	}
	return supplier.NewScorer(supplier.WithMidBandPolicy(policy)), nil
}

// initPolisher returns nil when no Anthropic key is configured.
func initPolisher() outreach.Polisher {
	if cfg.Anthropic.Key == "" {
		return nil
	}
	return outreach.NewClaudePolisher(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
}

// record saves one evaluation when history is enabled. Failures are logged
// and never fail the command.
func record(ctx context.Context, kind model.EvaluationKind, summary string, in, out any) {
	st, err := initStore(ctx)
	if err != nil {
		zap.L().Warn("history: open store", zap.Error(err))
		return
	}
	if st == nil {
		return
	}
	defer st.Close() //nolint:errcheck

	e, err := model.NewEvaluation(kind, summary, in, out)
	if err == nil {
		err = st.SaveEvaluation(ctx, e)
	}
	if err != nil {
		zap.L().Warn("history: save evaluation", zap.String("kind", string(kind)), zap.Error(err))
		return
	}
	zap.L().Debug("history: saved evaluation", zap.String("id", e.ID))
}

var errHistoryDisabled = eris.New("history is disabled; set store.driver to sqlite or postgres")
