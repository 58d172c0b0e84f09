package model

import (
	"math"
	"slices"
)

// ForecastTrend is the forecast price direction at the planned purchase date.
type ForecastTrend string

// Forecast trends.
const (
	ForecastRise   ForecastTrend = "rise"
	ForecastStable ForecastTrend = "stable"
	ForecastFall   ForecastTrend = "fall"
)

// Valid reports whether t is a known forecast trend.
func (t ForecastTrend) Valid() bool {
	switch t {
	case ForecastRise, ForecastStable, ForecastFall:
		return true
	}
	return false
}

// UnmarshalText rejects unknown tags while decoding JSON or YAML.
func (t *ForecastTrend) UnmarshalText(b []byte) error {
	v, err := parseEnum[ForecastTrend]("forecast_trend", string(b))
	*t = v
	return err
}

// ParseForecastTrend parses a forecast trend tag.
func ParseForecastTrend(s string) (ForecastTrend, error) {
	return parseEnum[ForecastTrend]("forecast_trend", s)
}

// MarketTrend is the recent wholesale / farmgate price direction.
type MarketTrend string

// Market trends.
const (
	MarketSurge  MarketTrend = "surge"
	MarketRise   MarketTrend = "rise"
	MarketStable MarketTrend = "stable"
	MarketDrop   MarketTrend = "drop"
)

// Valid reports whether t is a known market trend.
func (t MarketTrend) Valid() bool {
	switch t {
	case MarketSurge, MarketRise, MarketStable, MarketDrop:
		return true
	}
	return false
}

// UnmarshalText rejects unknown tags while decoding JSON or YAML.
func (t *MarketTrend) UnmarshalText(b []byte) error {
	v, err := parseEnum[MarketTrend]("market_trend", string(b))
	*t = v
	return err
}

// ParseMarketTrend parses a market trend tag.
func ParseMarketTrend(s string) (MarketTrend, error) {
	return parseEnum[MarketTrend]("market_trend", s)
}

// RiskFactor is a news item pushing prices up.
type RiskFactor string

// Risk factors.
const (
	RiskSupplyDisruption    RiskFactor = "supply_disruption"
	RiskDisease             RiskFactor = "disease"
	RiskLogisticsCongestion RiskFactor = "logistics_congestion"
	RiskTariffRegulation    RiskFactor = "tariff_regulation"
	RiskInputCostRise       RiskFactor = "input_cost_rise"
)

// AllRiskFactors lists every risk factor in display order.
var AllRiskFactors = []RiskFactor{
	RiskSupplyDisruption, RiskDisease, RiskLogisticsCongestion, RiskTariffRegulation, RiskInputCostRise,
}

// Valid reports whether f is a known risk factor.
func (f RiskFactor) Valid() bool {
	switch f {
	case RiskSupplyDisruption, RiskDisease, RiskLogisticsCongestion, RiskTariffRegulation, RiskInputCostRise:
		return true
	}
	return false
}

// UnmarshalText rejects unknown tags while decoding JSON or YAML.
func (f *RiskFactor) UnmarshalText(b []byte) error {
	v, err := parseEnum[RiskFactor]("risk_factors", string(b))
	*f = v
	return err
}

// ParseRiskFactors parses a comma-separated list of risk factor tags.
func ParseRiskFactors(s string) ([]RiskFactor, error) {
	return parseEnumList[RiskFactor]("risk_factors", s)
}

// OpportunityFactor is a news item pushing prices down.
type OpportunityFactor string

// Opportunity factors.
const (
	OpportunityBumperCrop      OpportunityFactor = "bumper_crop"
	OpportunityDemandSlump     OpportunityFactor = "demand_slump"
	OpportunityFxTailwind      OpportunityFactor = "fx_tailwind"
	OpportunityNewSupplySource OpportunityFactor = "new_supply_source"
)

// AllOpportunityFactors lists every opportunity factor in display order.
var AllOpportunityFactors = []OpportunityFactor{
	OpportunityBumperCrop, OpportunityDemandSlump, OpportunityFxTailwind, OpportunityNewSupplySource,
}

// Valid reports whether f is a known opportunity factor.
func (f OpportunityFactor) Valid() bool {
	switch f {
	case OpportunityBumperCrop, OpportunityDemandSlump, OpportunityFxTailwind, OpportunityNewSupplySource:
		return true
	}
	return false
}

// UnmarshalText rejects unknown tags while decoding JSON or YAML.
func (f *OpportunityFactor) UnmarshalText(b []byte) error {
	v, err := parseEnum[OpportunityFactor]("opportunity_factors", string(b))
	*f = v
	return err
}

// ParseOpportunityFactors parses a comma-separated list of opportunity factor tags.
func ParseOpportunityFactors(s string) ([]OpportunityFactor, error) {
	return parseEnumList[OpportunityFactor]("opportunity_factors", s)
}

// MaxSupplierMarginPct is the largest premium a buyer may grant over the market average.
const MaxSupplierMarginPct = 20

// NegotiationInput holds everything the buyer enters for a price negotiation.
// Prices are USD per kg.
type NegotiationInput struct {
	TargetDate         string              `json:"target_date,omitempty" yaml:"target_date"`
	ForecastTrend      ForecastTrend       `json:"forecast_trend" yaml:"forecast_trend"`
	ForecastPrice      float64             `json:"forecast_price" yaml:"forecast_price"`
	MarketTrend        MarketTrend         `json:"market_trend" yaml:"market_trend"`
	MarketAvgPrice     float64             `json:"market_avg_price" yaml:"market_avg_price"`
	OfferPrice         float64             `json:"offer_price" yaml:"offer_price"`
	SupplierMarginPct  int                 `json:"supplier_margin_pct" yaml:"supplier_margin_pct"`
	RiskFactors        []RiskFactor        `json:"risk_factors,omitempty" yaml:"risk_factors"`
	OpportunityFactors []OpportunityFactor `json:"opportunity_factors,omitempty" yaml:"opportunity_factors"`
}

// HasRisk reports whether f was selected.
func (in *NegotiationInput) HasRisk(f RiskFactor) bool {
	return slices.Contains(in.RiskFactors, f)
}

// HasOpportunity reports whether f was selected.
func (in *NegotiationInput) HasOpportunity(f OpportunityFactor) bool {
	return slices.Contains(in.OpportunityFactors, f)
}

// Validate checks every field against its domain. The returned error wraps
// ErrInvalidInput.
func (in *NegotiationInput) Validate() error {
	if !in.ForecastTrend.Valid() {
		return invalid("forecast_trend: unknown value %q", in.ForecastTrend)
	}
	if !in.MarketTrend.Valid() {
		return invalid("market_trend: unknown value %q", in.MarketTrend)
	}
	prices := []struct {
		name string
		v    float64
	}{
		{"forecast_price", in.ForecastPrice},
		{"market_avg_price", in.MarketAvgPrice},
		{"offer_price", in.OfferPrice},
	}
	for _, p := range prices {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			return invalid("%s: must be a finite number", p.name)
		}
		if p.v < 0 {
			return invalid("%s: must be >= 0, got %g", p.name, p.v)
		}
	}
	if in.SupplierMarginPct < 0 || in.SupplierMarginPct > MaxSupplierMarginPct {
		return invalid("supplier_margin_pct: must be between 0 and %d, got %d", MaxSupplierMarginPct, in.SupplierMarginPct)
	}
	for _, f := range in.RiskFactors {
		if !f.Valid() {
			return invalid("risk_factors: unknown value %q", f)
		}
	}
	for _, f := range in.OpportunityFactors {
		if !f.Valid() {
			return invalid("opportunity_factors: unknown value %q", f)
		}
	}
	return nil
}

// NegotiationCase is the situation a negotiation is classified into.
type NegotiationCase string

// Negotiation cases, in rule precedence order.
const (
	CaseSupplyShortage NegotiationCase = "supply_shortage"
	CaseLogisticsRisk  NegotiationCase = "logistics_risk"
	CaseGreed          NegotiationCase = "greed"
	CaseGoldenTime     NegotiationCase = "golden_time"
	CaseBearMarket     NegotiationCase = "bear_market"
	CaseGeneral        NegotiationCase = "general"
)

// Advantage names the party holding negotiating power.
type Advantage string

// Advantages.
const (
	AdvantageBuyer    Advantage = "buyer"
	AdvantageSupplier Advantage = "supplier"
	AdvantageNeutral  Advantage = "neutral"
)

// PriceDecomposition splits an offer into the market base, the premium the
// buyer accepts, and the unexplained bubble above fair price. The segments
// are always computed regardless of the negotiation case.
type PriceDecomposition struct {
	Base    float64 `json:"base"`
	Premium float64 `json:"premium"`
	Bubble  float64 `json:"bubble"`
}

// Total returns the stacked height of all segments.
func (d PriceDecomposition) Total() float64 {
	return d.Base + d.Premium + d.Bubble
}

// Verdict is the outcome of a negotiation evaluation.
type Verdict struct {
	Case           NegotiationCase    `json:"case"`
	Title          string             `json:"title"`
	Narrative      string             `json:"narrative"`
	TargetPrice    float64            `json:"target_price"`
	TargetLow      float64            `json:"target_low"`
	TargetHigh     float64            `json:"target_high"`
	TargetDelta    float64            `json:"target_delta"`
	Timing         string             `json:"timing"`
	Leverage       string             `json:"leverage"`
	Advantage      Advantage          `json:"advantage"`
	StrategyPoint  string             `json:"strategy_point"`
	FairPrice      float64            `json:"fair_price"`
	Gap            float64            `json:"gap"`
	GapPct         float64            `json:"gap_pct"`
	Decomposition  PriceDecomposition `json:"decomposition"`
	BubbleSharePct float64            `json:"bubble_share_pct"`
	WhatIf         string             `json:"what_if"`
}
