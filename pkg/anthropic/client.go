// Package anthropic is a thin single-turn completion client over the
// Anthropic SDK.
package anthropic

import (
	"context"
	"errors"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Client completes one prompt.
type Client interface {
	Complete(ctx context.Context, p Prompt) (*Completion, error)
}

// Prompt is a single user turn with an optional system prompt.
type Prompt struct {
	Model       string
	MaxTokens   int64
	System      string
	User        string
	Temperature *float64
}

// Completion is the text answer to a Prompt.
type Completion struct {
	ID    string
	Model string
	Text  string
	// Truncated is set when generation hit MaxTokens.
	Truncated bool
	Usage     Usage
}

// Usage counts tokens billed for one completion.
type Usage struct {
	Input  int64
	Output int64
}

// USD per million tokens, input then output.
var pricing = map[string][2]float64{
	"claude-haiku-4-5-20251001":  {0.80, 4.00},
	"claude-sonnet-4-5-20250929": {3.00, 15.00},
}

// Cost estimates the USD cost of u on model, or 0 when the model is unknown.
func (u Usage) Cost(model string) float64 {
	p, ok := pricing[model]
	if !ok {
		return 0
	}
	return float64(u.Input)/1e6*p[0] + float64(u.Output)/1e6*p[1]
}

// Log records u against operation.
func (u Usage) Log(model, operation string) {
	zap.L().Info("anthropic: usage",
		zap.String("model", model),
		zap.String("operation", operation),
		zap.Int64("input_tokens", u.Input),
		zap.Int64("output_tokens", u.Output),
		zap.Float64("estimated_cost_usd", u.Cost(model)),
	)
}

// StatusCode returns the HTTP status of an API error in err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

type sdkClient struct {
	client sdk.Client
}

// NewClient returns an SDK-backed Client. The SDK's own retries are off;
// callers retry through internal/resilience.
func NewClient(apiKey string, opts ...option.RequestOption) Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	return &sdkClient{client: sdk.NewClient(opts...)}
}

func (c *sdkClient) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(p.Model),
		MaxTokens: p.MaxTokens,
		Messages:  []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(p.User))},
	}
	if p.System != "" {
		params.System = []sdk.TextBlockParam{{Text: p.System}}
	}
	if p.Temperature != nil {
		params.Temperature = sdk.Float(*p.Temperature)
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, eris.Wrap(err, "anthropic: complete")
	}
	return completion(msg), nil
}

func completion(msg *sdk.Message) *Completion {
	var text strings.Builder
	for _, b := range msg.Content {
		if b.Type == "text" {
			text.WriteString(b.Text)
		}
	}
	return &Completion{
		ID:        msg.ID,
		Model:     string(msg.Model),
		Text:      text.String(),
		Truncated: msg.StopReason == sdk.StopReasonMaxTokens,
		Usage:     Usage{Input: msg.Usage.InputTokens, Output: msg.Usage.OutputTokens},
	}
}
