package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sourcing-cli/internal/model"
	"github.com/sells-group/sourcing-cli/internal/negotiation"
	"github.com/sells-group/sourcing-cli/internal/supplier"
)

func greedInput() model.NegotiationInput {
	return model.NegotiationInput{
		ForecastTrend:     model.ForecastStable,
		ForecastPrice:     0.55,
		MarketTrend:       model.MarketDrop,
		MarketAvgPrice:    0.50,
		OfferPrice:        0.58,
		SupplierMarginPct: 5,
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.50", Money(0.5))
	assert.Equal(t, "-$0.08", Money(-0.08))
	assert.Equal(t, "$1,250.00", Money(1250))
	assert.Equal(t, "+$0.10", SignedMoney(0.1))
	assert.Equal(t, "-$0.10", SignedMoney(-0.1))
	assert.Equal(t, "12.5%", Percent(12.5))
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four five", 9)
	assert.Equal(t, []string{"one two", "three", "four five"}, lines)
	assert.Empty(t, wrap("   ", 10))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
}

func TestShouldCostChart_WithBubble(t *testing.T) {
	in := greedInput()
	v := negotiation.Evaluate(in)

	c := ShouldCostChart(in, v)
	require.Len(t, c.Segments, 3)
	assert.Equal(t, "Market Base", c.Segments[0].Name)
	assert.Equal(t, "Allowed Premium", c.Segments[1].Name)
	assert.Equal(t, "Negotiation Target", c.Segments[2].Name)
	assert.True(t, strings.HasPrefix(c.Segments[2].Label, "GAP: "))
	assert.Equal(t, 0.58, c.OfferLine)
}

func TestShouldCostChart_NoBubble(t *testing.T) {
	in := greedInput()
	in.OfferPrice = 0.50
	v := negotiation.Evaluate(in)

	c := ShouldCostChart(in, v)
	assert.Len(t, c.Segments, 2)
}

func TestAnalysis(t *testing.T) {
	in := greedInput()
	lines := Analysis(in, negotiation.Evaluate(in))
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "$0.50")
	assert.Contains(t, lines[1], "5%")
	assert.Contains(t, lines[2], "Negotiation target")

	in.OfferPrice = 0.52
	lines = Analysis(in, negotiation.Evaluate(in))
	assert.Contains(t, lines[2], "non-price terms")
}

func TestWriteVerdict(t *testing.T) {
	in := greedInput()
	v := negotiation.Evaluate(in)

	var buf bytes.Buffer
	require.NoError(t, WriteVerdict(&buf, in, v))
	out := buf.String()

	assert.Contains(t, out, "(Greed)")
	assert.Contains(t, out, "Target price")
	assert.Contains(t, out, "Buyer advantage")
	assert.Contains(t, out, "Gap analysis")
	assert.Contains(t, out, "What-if")
	assert.Contains(t, out, "Negotiation Target")
	assert.NotContains(t, out, "Target range")
}

func TestWriteVerdict_TargetRange(t *testing.T) {
	in := greedInput()
	in.MarketTrend = model.MarketStable
	in.RiskFactors = []model.RiskFactor{model.RiskLogisticsCongestion}
	v := negotiation.Evaluate(in)
	require.Equal(t, model.CaseLogisticsRisk, v.Case)

	var buf bytes.Buffer
	require.NoError(t, WriteVerdict(&buf, in, v))
	assert.Contains(t, buf.String(), "Target range")
}

func TestVerdictMarkdown(t *testing.T) {
	in := greedInput()
	md := VerdictMarkdown(in, negotiation.Evaluate(in))
	assert.True(t, strings.HasPrefix(md, "## "))
	assert.Contains(t, md, "| Case | Greed |")
	assert.Contains(t, md, "### What-if")
}

func TestCaseLabel(t *testing.T) {
	assert.Equal(t, "Golden Time", CaseLabel(model.CaseGoldenTime))
	assert.Equal(t, "mystery", CaseLabel(model.NegotiationCase("mystery")))
}

func bestSupplier() model.SupplierInput {
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

func TestWriteScore(t *testing.T) {
	r := supplier.NewScorer().Evaluate(bestSupplier())

	var buf bytes.Buffer
	require.NoError(t, WriteScore(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "ABC Export Co.: Grade S")
	assert.Contains(t, out, "100")
	assert.Contains(t, out, "Volume trend")
	assert.Contains(t, out, "+30")
	assert.Contains(t, out, "Strategy: Lock-in & Grow")
	assert.Contains(t, out, "  Dear ABC Export Co. team,")
}

func TestWriteScore_UnnamedAndPenalty(t *testing.T) {
	in := bestSupplier()
	in.SupplierName = ""
	in.Dependency = model.DependencyHigh
	r := supplier.NewScorer().Evaluate(in)

	var buf bytes.Buffer
	require.NoError(t, WriteScore(&buf, r))
	out := buf.String()
	assert.Contains(t, out, "Unnamed supplier")
	assert.Contains(t, out, "-20")
}

func TestScoreMarkdown(t *testing.T) {
	md := ScoreMarkdown(supplier.NewScorer().Evaluate(bestSupplier()))
	assert.Contains(t, md, "## Grade S (Strategic Partner)")
	assert.Contains(t, md, "| Buyer tier | tier1 | +30 |")
	assert.Contains(t, md, "```")
}

func TestWriteEvaluations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEvaluations(&buf, nil))
	assert.Equal(t, "No saved evaluations.\n", buf.String())

	buf.Reset()
	evals := []model.Evaluation{
		{ID: "6f1c2d7e-0000-4000-8000-000000000001", Kind: model.KindNegotiation, Summary: "greed", CreatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)},
		{ID: "6f1c2d7e-0000-4000-8000-000000000002", Kind: model.KindSupplier, Summary: "A-", CreatedAt: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)},
	}
	require.NoError(t, WriteEvaluations(&buf, evals))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID "))
	assert.Contains(t, lines[1], "negotiation")
	assert.True(t, strings.HasSuffix(lines[1], "greed"))
	assert.Contains(t, lines[2], "supplier")
	assert.True(t, strings.HasSuffix(lines[2], "A-"))
}
