// Package negotiation classifies a supplier quote into a negotiation stance.
package negotiation

import (
	"fmt"
	"math"

	"github.com/sells-group/sourcing-cli/internal/model"
)

// Price multipliers applied to the baseline for cases that concede or push.
const (
	LogisticsConcessionLow  = 1.03
	LogisticsConcessionHigh = 1.05
	BearDiscountLow         = 0.80
	BearDiscountHigh        = 0.90

	// GreedGapPct is the gap over fair price, in percent, above which a quote
	// in a falling market is treated as unjustified.
	GreedGapPct = 10.0
)

// Facts are the values derived from an input that the rules read.
type Facts struct {
	Input            model.NegotiationInput
	FairPrice        float64
	Gap              float64
	GapPct           float64
	HasSupplyRisk    bool
	HasLogisticsRisk bool
	HasBumper        bool
}

// Derive computes the facts for in. It never fails: a zero fair price yields
// a zero gap percentage.
func Derive(in model.NegotiationInput) Facts {
	fair := in.MarketAvgPrice * (1 + float64(in.SupplierMarginPct)/100)
	gap := in.OfferPrice - fair
	var gapPct float64
	if fair > 0 {
		gapPct = gap / fair * 100
	}
	return Facts{
		Input:     in,
		FairPrice: fair,
		Gap:       gap,
		GapPct:    gapPct,
		HasSupplyRisk: in.HasRisk(model.RiskSupplyDisruption) ||
			in.HasRisk(model.RiskDisease) ||
			in.HasRisk(model.RiskTariffRegulation),
		HasLogisticsRisk: in.HasRisk(model.RiskLogisticsCongestion),
		HasBumper:        in.HasOpportunity(model.OpportunityBumperCrop),
	}
}

// Rule selects Case when Match holds.
type Rule struct {
	Case  model.NegotiationCase
	Match func(f Facts) bool
}

// Rules is evaluated top to bottom and the first match wins. The predicates
// overlap, so the order is part of the contract.
var Rules = []Rule{
	{model.CaseSupplyShortage, func(f Facts) bool {
		return f.HasSupplyRisk || f.Input.MarketTrend == model.MarketSurge
	}},
	{model.CaseLogisticsRisk, func(f Facts) bool {
		return f.HasLogisticsRisk
	}},
	{model.CaseGreed, func(f Facts) bool {
		return f.Input.MarketTrend == model.MarketDrop && f.GapPct > GreedGapPct
	}},
	{model.CaseGoldenTime, func(f Facts) bool {
		return f.Input.MarketTrend == model.MarketDrop && f.Input.ForecastTrend == model.ForecastRise
	}},
	{model.CaseBearMarket, func(f Facts) bool {
		return f.Input.ForecastTrend == model.ForecastFall || f.HasBumper
	}},
	{model.CaseGeneral, func(Facts) bool { return true }},
}

// Classify returns the case of the first rule that matches f.
func Classify(f Facts) model.NegotiationCase {
	for _, r := range Rules {
		if r.Match(f) {
			return r.Case
		}
	}
	return model.CaseGeneral
}

// Decompose splits the offer into market base, accepted premium and the
// bubble above fair price. The bubble is the positive part of f.Gap.
func Decompose(f Facts) model.PriceDecomposition {
	return model.PriceDecomposition{
		Base:    f.Input.MarketAvgPrice,
		Premium: f.FairPrice - f.Input.MarketAvgPrice,
		Bubble:  math.Max(0, f.Gap),
	}
}

// Evaluate classifies in and builds its verdict. It assumes in is valid;
// use ValidateAndEvaluate at input boundaries.
func Evaluate(in model.NegotiationInput) model.Verdict {
	f := Derive(in)
	c := Classify(f)
	p := playbook[c]
	target, low, high := p.target(f)
	d := Decompose(f)

	var bubbleShare float64
	if in.OfferPrice > 0 {
		bubbleShare = d.Bubble / in.OfferPrice * 100
	}

	return model.Verdict{
		Case:           c,
		Title:          p.title,
		Narrative:      p.narrative,
		TargetPrice:    target,
		TargetLow:      low,
		TargetHigh:     high,
		TargetDelta:    target - in.OfferPrice,
		Timing:         p.timing,
		Leverage:       p.leverage,
		Advantage:      p.advantage,
		StrategyPoint:  p.strategy,
		FairPrice:      f.FairPrice,
		Gap:            f.Gap,
		GapPct:         f.GapPct,
		Decomposition:  d,
		BubbleSharePct: bubbleShare,
		WhatIf:         whatIf(in),
	}
}

// ValidateAndEvaluate rejects invalid input before evaluating it.
func ValidateAndEvaluate(in model.NegotiationInput) (model.Verdict, error) {
	if err := in.Validate(); err != nil {
		return model.Verdict{}, err
	}
	return Evaluate(in), nil
}

func whatIf(in model.NegotiationInput) string {
	when := "in about two weeks"
	if in.TargetDate != "" {
		when = "at " + in.TargetDate
	}
	return fmt.Sprintf(
		"Option 1 (wait): expected price %s is $%.2f/kg per the forecast. "+
			"Option 2 (switch origin): check the average unit price from alternative origins such as the Philippines or Vietnam.",
		when, in.ForecastPrice)
}
