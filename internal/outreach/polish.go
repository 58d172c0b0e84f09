// Package outreach optionally rewrites templated supplier emails with Claude.
package outreach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/sourcing-cli/internal/model"
	"github.com/sells-group/sourcing-cli/internal/resilience"
	"github.com/sells-group/sourcing-cli/pkg/anthropic"
)

// Polisher rewrites the drafted email of a score report.
type Polisher interface {
	Polish(ctx context.Context, in model.SupplierInput, r model.ScoreReport) (string, error)
}

const systemPrompt = `You edit B2B sourcing emails written by an importer to an overseas agricultural supplier.
Rewrite the draft so it reads naturally and professionally.
Rules:
- Keep every fact, product name, company name and request in the draft.
- Keep the requested tone.
- Do not add prices, volumes, dates, commitments or claims that are not in the draft.
- Keep the greeting line.
- Reply with the email body only, no subject line and no commentary.`

// ClaudePolisher polishes emails through the Anthropic messages API.
type ClaudePolisher struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	retry     resilience.RetryConfig
	breaker   *resilience.Breaker
}

// NewClaudePolisher creates a polisher. After repeated failures the polisher
// stops calling the API for a minute.
func NewClaudePolisher(client anthropic.Client, modelID string, maxTokens int64) *ClaudePolisher {
	retry := resilience.DefaultRetryConfig()
	retry.ShouldRetry = retryable
	retry.OnRetry = resilience.RetryLogger("anthropic", "polish_email")
	return &ClaudePolisher{
		client:    client,
		model:     modelID,
		maxTokens: maxTokens,
		retry:     retry,
		breaker:   resilience.NewBreaker(3, time.Minute),
	}
}

func retryable(err error) bool {
	return resilience.IsTransient(err) || resilience.IsTransientHTTPStatus(anthropic.StatusCode(err))
}

func prompt(in model.SupplierInput, r model.ScoreReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Supplier: %s\n", orUnknown(in.SupplierName))
	fmt.Fprintf(&b, "Product: %s\n", orUnknown(in.TargetSpec))
	fmt.Fprintf(&b, "Supplier grade: %s\n", r.GradeTitle)
	fmt.Fprintf(&b, "Strategy: %s. %s\n", r.StrategyTitle, r.StrategyDesc)
	fmt.Fprintf(&b, "Requested tone: %s\n\n", r.EmailTone)
	b.WriteString("Draft:\n")
	b.WriteString(r.EmailBody)
	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(not given)"
	}
	return s
}

// Polish returns the rewritten email body.
func (p *ClaudePolisher) Polish(ctx context.Context, in model.SupplierInput, r model.ScoreReport) (string, error) {
	req := anthropic.Prompt{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		System:    systemPrompt,
		User:      prompt(in, r),
	}

	resp, err := resilience.Call(ctx, p.breaker, func(ctx context.Context) (*anthropic.Completion, error) {
		return resilience.DoVal(ctx, p.retry, func(ctx context.Context) (*anthropic.Completion, error) {
			return p.client.Complete(ctx, req)
		})
	})
	if err != nil {
		return "", eris.Wrap(err, "outreach: polish email")
	}
	resp.Usage.Log(p.model, "polish_email")

	body := strings.TrimSpace(resp.Text)
	if body == "" {
		return "", eris.New("outreach: polish email: empty response")
	}
	if resp.Truncated {
		return "", eris.New("outreach: polish email: response truncated")
	}
	return body, nil
}

// Apply replaces r's email with a polished one when p is set. Any failure
// leaves the templated email in place. C/F suppliers are not contacted, so
// their email is never polished.
func Apply(ctx context.Context, p Polisher, in model.SupplierInput, r *model.ScoreReport) {
	if p == nil || r.Grade == model.GradeCF {
		return
	}
	body, err := p.Polish(ctx, in, *r)
	if err != nil {
		zap.L().Warn("outreach: keeping templated email",
			zap.String("supplier", in.SupplierName),
			zap.String("grade", string(r.Grade)),
			zap.Error(err),
		)
		return
	}
	r.EmailBody = body
	r.Polished = true
}
