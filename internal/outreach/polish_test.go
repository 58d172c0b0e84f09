package outreach

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sourcing-cli/internal/model"
	"github.com/sells-group/sourcing-cli/internal/resilience"
	"github.com/sells-group/sourcing-cli/internal/supplier"
	"github.com/sells-group/sourcing-cli/pkg/anthropic"
)

// MockClient implements anthropic.Client for testing.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Complete(ctx context.Context, p anthropic.Prompt) (*anthropic.Completion, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.Completion), args.Error(1)
}

func textResponse(s string) *anthropic.Completion {
	return &anthropic.Completion{Text: s}
}

func testInput() model.SupplierInput {
	return model.SupplierInput{
		SupplierName:  "ABC Export Co.",
		TargetSpec:    "Organic Cavendish Banana",
		VolumeTrend:   model.VolumeGrowth,
		Destinations:  []model.Destination{model.DestinationHighStandard},
		BuyerTier:     model.BuyerTier1,
		ExportHistory: model.ExportRecent,
		Dependency:    model.DependencyLow,
	}
}

func newTestPolisher(c anthropic.Client) *ClaudePolisher {
	p := NewClaudePolisher(c, "claude-sonnet-4-5-20250929", 1024)
	p.retry.InitialBackoff = 1
	p.retry.MaxBackoff = 1
	return p
}

func TestClaudePolisher_Polish(t *testing.T) {
	in := testInput()
	r := supplier.NewScorer().Evaluate(in)

	c := &MockClient{}
	c.On("Complete", mock.Anything, mock.MatchedBy(func(req anthropic.Prompt) bool {
		return req.System == systemPrompt &&
			req.MaxTokens == 1024 &&
			strings.Contains(req.User, "Requested tone: Respectful partnership proposal") &&
			strings.Contains(req.User, r.EmailBody)
	})).Return(textResponse("  Dear ABC Export Co. team,\n\nPolished.  "), nil).Once()

	body, err := newTestPolisher(c).Polish(context.Background(), in, r)
	require.NoError(t, err)
	assert.Equal(t, "Dear ABC Export Co. team,\n\nPolished.", body)
	c.AssertExpectations(t)
}

func TestClaudePolisher_RetriesTransient(t *testing.T) {
	c := &MockClient{}
	c.On("Complete", mock.Anything, mock.Anything).
		Return(nil, resilience.NewTransientError(errors.New("overloaded"), 529)).Once()
	c.On("Complete", mock.Anything, mock.Anything).
		Return(textResponse("ok"), nil).Once()

	in := testInput()
	body, err := newTestPolisher(c).Polish(context.Background(), in, supplier.NewScorer().Evaluate(in))
	require.NoError(t, err)
	assert.Equal(t, "ok", body)
	c.AssertExpectations(t)
}

func TestClaudePolisher_PermanentErrorNotRetried(t *testing.T) {
	c := &MockClient{}
	c.On("Complete", mock.Anything, mock.Anything).
		Return(nil, errors.New("401 invalid x-api-key")).Once()

	in := testInput()
	_, err := newTestPolisher(c).Polish(context.Background(), in, supplier.NewScorer().Evaluate(in))
	require.Error(t, err)
	c.AssertNumberOfCalls(t, "Complete", 1)
}

func TestClaudePolisher_RejectsEmptyAndTruncated(t *testing.T) {
	in := testInput()
	r := supplier.NewScorer().Evaluate(in)

	c := &MockClient{}
	c.On("Complete", mock.Anything, mock.Anything).Return(textResponse("   "), nil).Once()
	_, err := newTestPolisher(c).Polish(context.Background(), in, r)
	assert.Error(t, err)

	truncated := textResponse("Dear")
	truncated.Truncated = true
	c2 := &MockClient{}
	c2.On("Complete", mock.Anything, mock.Anything).Return(truncated, nil).Once()
	_, err = newTestPolisher(c2).Polish(context.Background(), in, r)
	assert.Error(t, err)
}

func TestClaudePolisher_BreakerShedsAfterFailures(t *testing.T) {
	c := &MockClient{}
	c.On("Complete", mock.Anything, mock.Anything).Return(nil, errors.New("bad request"))

	p := newTestPolisher(c)
	in := testInput()
	r := supplier.NewScorer().Evaluate(in)
	for range 5 {
		_, err := p.Polish(context.Background(), in, r)
		assert.Error(t, err)
	}
	c.AssertNumberOfCalls(t, "Complete", 3)
}

type stubPolisher struct {
	body string
	err  error
}

func (s stubPolisher) Polish(context.Context, model.SupplierInput, model.ScoreReport) (string, error) {
	return s.body, s.err
}

func TestApply(t *testing.T) {
	in := testInput()
	template := supplier.NewScorer().Evaluate(in)

	r := template
	Apply(context.Background(), nil, in, &r)
	assert.Equal(t, template.EmailBody, r.EmailBody)
	assert.False(t, r.Polished)

	r = template
	Apply(context.Background(), stubPolisher{err: errors.New("down")}, in, &r)
	assert.Equal(t, template.EmailBody, r.EmailBody)
	assert.False(t, r.Polished)

	r = template
	Apply(context.Background(), stubPolisher{body: "Polished body"}, in, &r)
	assert.Equal(t, "Polished body", r.EmailBody)
	assert.True(t, r.Polished)
}

func TestApply_SkipsDoNotTrade(t *testing.T) {
	in := testInput()
	in.VolumeTrend = model.VolumeDecline
	in.Destinations = nil
	in.BuyerTier = model.BuyerTierUnknown
	in.ExportHistory = model.ExportNone
	in.Dependency = model.DependencyHigh
	r := supplier.NewScorer().Evaluate(in)
	require.Equal(t, model.GradeCF, r.Grade)

	Apply(context.Background(), stubPolisher{body: "nope"}, in, &r)
	assert.False(t, r.Polished)
}
