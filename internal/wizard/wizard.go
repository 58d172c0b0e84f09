// Package wizard collects negotiation and supplier inputs through interactive forms.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rotisserie/eris"
	"golang.org/x/term"

	"github.com/sells-group/sourcing-cli/internal/model"
)

// Form defaults.
const (
	DefaultMarketAvgPrice = "0.50"
	DefaultOfferPrice     = "0.58"
	DefaultMarginPct      = "5"
	DefaultSupplierName   = "ABC Export Co."
	DefaultTargetSpec     = "Organic Cavendish Banana"
)

// negotiationAnswers holds raw form values before conversion.
type negotiationAnswers struct {
	targetDate    string
	forecastTrend string
	forecastPrice string
	marketTrend   string
	marketAvg     string
	offer         string
	margin        string
	risks         []string
	opportunities []string
}

func defaultNegotiationAnswers() negotiationAnswers {
	return negotiationAnswers{
		forecastTrend: string(model.ForecastRise),
		forecastPrice: DefaultOfferPrice,
		marketTrend:   string(model.MarketDrop),
		marketAvg:     DefaultMarketAvgPrice,
		offer:         DefaultOfferPrice,
		margin:        DefaultMarginPct,
	}
}

func (a negotiationAnswers) toInput() (model.NegotiationInput, error) {
	in := model.NegotiationInput{
		TargetDate:    strings.TrimSpace(a.targetDate),
		ForecastTrend: model.ForecastTrend(a.forecastTrend),
		MarketTrend:   model.MarketTrend(a.marketTrend),
	}

	var err error
	if in.ForecastPrice, err = parsePrice("forecast price", a.forecastPrice); err != nil {
		return in, err
	}
	if in.MarketAvgPrice, err = parsePrice("market average price", a.marketAvg); err != nil {
		return in, err
	}
	if in.OfferPrice, err = parsePrice("offer price", a.offer); err != nil {
		return in, err
	}
	if in.SupplierMarginPct, err = parseMargin(a.margin); err != nil {
		return in, err
	}
	for _, r := range a.risks {
		in.RiskFactors = append(in.RiskFactors, model.RiskFactor(r))
	}
	for _, o := range a.opportunities {
		in.OpportunityFactors = append(in.OpportunityFactors, model.OpportunityFactor(o))
	}
	return in, in.Validate()
}

func parsePrice(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, eris.Wrapf(model.ErrInvalidInput, "%s: %q is not a number", field, s)
	}
	if v < 0 {
		return 0, eris.Wrapf(model.ErrInvalidInput, "%s: must not be negative", field)
	}
	return v, nil
}

func parseMargin(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 || v > model.MaxSupplierMarginPct {
		return 0, eris.Wrapf(model.ErrInvalidInput, "supplier margin: want a whole number from 0 to %d, got %q",
			model.MaxSupplierMarginPct, s)
	}
	return v, nil
}

func validatePrice(field string) func(string) error {
	return func(s string) error {
		_, err := parsePrice(field, s)
		return err
	}
}

func accessible(form *huh.Form, in io.Reader) *huh.Form {
	// Piped input and tests get line-based prompts.
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return form.WithAccessible(true)
	}
	return form
}

// RunNegotiation asks for a negotiation scenario and returns the validated input.
func RunNegotiation(in io.Reader, out io.Writer) (model.NegotiationInput, error) {
	a := defaultNegotiationAnswers()

	riskOpts := make([]huh.Option[string], 0, len(model.AllRiskFactors))
	for _, r := range model.AllRiskFactors {
		riskOpts = append(riskOpts, huh.NewOption(riskLabels[r], string(r)))
	}
	oppOpts := make([]huh.Option[string], 0, len(model.AllOpportunityFactors))
	for _, o := range model.AllOpportunityFactors {
		oppOpts = append(oppOpts, huh.NewOption(opportunityLabels[o], string(o)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target date").
				Description("Purchase date the forecast refers to (optional)").
				Placeholder("2025-10-01").
				Value(&a.targetDate),
			huh.NewSelect[string]().
				Title("Forecast trend").
				Options(
					huh.NewOption("Rise", string(model.ForecastRise)),
					huh.NewOption("Stable", string(model.ForecastStable)),
					huh.NewOption("Fall", string(model.ForecastFall)),
				).
				Value(&a.forecastTrend),
			huh.NewInput().
				Title("Forecast price ($/kg)").
				Value(&a.forecastPrice).
				Validate(validatePrice("forecast price")),
		).Title("Outlook"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Recent farmgate price trend").
				Options(
					huh.NewOption("Surge", string(model.MarketSurge)),
					huh.NewOption("Rise", string(model.MarketRise)),
					huh.NewOption("Stable", string(model.MarketStable)),
					huh.NewOption("Drop", string(model.MarketDrop)),
				).
				Value(&a.marketTrend),
			huh.NewInput().
				Title("Market average price ($/kg)").
				Value(&a.marketAvg).
				Validate(validatePrice("market average price")),
		).Title("Market"),
		huh.NewGroup(
			huh.NewInput().
				Title("Supplier offer ($/kg)").
				Value(&a.offer).
				Validate(validatePrice("offer price")),
			huh.NewInput().
				Title("Allowed supplier margin (%)").
				Description(fmt.Sprintf("Premium you accept for brand and quality, 0 to %d", model.MaxSupplierMarginPct)).
				Value(&a.margin).
				Validate(func(s string) error {
					_, err := parseMargin(s)
					return err
				}),
		).Title("Offer"),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Risk factors").
				Options(riskOpts...).
				Value(&a.risks),
			huh.NewMultiSelect[string]().
				Title("Opportunity factors").
				Options(oppOpts...).
				Value(&a.opportunities),
		).Title("Context"),
	).
		WithInput(in).
		WithOutput(out)

	if err := accessible(form, in).Run(); err != nil {
		return model.NegotiationInput{}, eris.Wrap(err, "wizard: negotiation form")
	}
	return a.toInput()
}

var riskLabels = map[model.RiskFactor]string{
	model.RiskSupplyDisruption:    "Supply disruption (weather, strikes)",
	model.RiskDisease:             "Disease or pests at origin",
	model.RiskLogisticsCongestion: "Logistics congestion",
	model.RiskTariffRegulation:    "Tariff or regulation change",
	model.RiskInputCostRise:       "Input cost rise (fertilizer, energy)",
}

var opportunityLabels = map[model.OpportunityFactor]string{
	model.OpportunityBumperCrop:      "Bumper crop at origin",
	model.OpportunityDemandSlump:     "Demand slump",
	model.OpportunityFxTailwind:      "Favorable exchange rate",
	model.OpportunityNewSupplySource: "New supply source available",
}

// supplierAnswers holds raw form values before conversion.
type supplierAnswers struct {
	name         string
	spec         string
	specMatch    bool
	volume       string
	destinations []string
	tier         string
	history      string
	dependency   string
}

func defaultSupplierAnswers() supplierAnswers {
	return supplierAnswers{
		name:       DefaultSupplierName,
		spec:       DefaultTargetSpec,
		specMatch:  true,
		volume:     string(model.VolumeGrowth),
		tier:       string(model.BuyerTier1),
		history:    string(model.ExportRecent),
		dependency: string(model.DependencyLow),
	}
}

func (a supplierAnswers) toInput() (model.SupplierInput, error) {
	in := model.SupplierInput{
		SupplierName:  strings.TrimSpace(a.name),
		TargetSpec:    strings.TrimSpace(a.spec),
		SpecMatch:     model.SpecMatchUnknown,
		VolumeTrend:   model.VolumeTrend(a.volume),
		BuyerTier:     model.BuyerTier(a.tier),
		ExportHistory: model.ExportHistory(a.history),
		Dependency:    model.Dependency(a.dependency),
	}
	if a.specMatch {
		in.SpecMatch = model.SpecMatchYes
	}
	for _, d := range a.destinations {
		in.Destinations = append(in.Destinations, model.Destination(d))
	}
	return in, in.Validate()
}

// RunSupplier asks for a supplier audit and returns the validated input.
func RunSupplier(in io.Reader, out io.Writer) (model.SupplierInput, error) {
	a := defaultSupplierAnswers()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Supplier name").
				Value(&a.name),
			huh.NewInput().
				Title("Target spec").
				Value(&a.spec),
			huh.NewConfirm().
				Title("Does the supplier profile match the spec?").
				Affirmative("Yes").
				Negative("Not sure").
				Value(&a.specMatch),
		).Title("Supplier"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Export volume trend (last 12 months)").
				Options(
					huh.NewOption("Growth", string(model.VolumeGrowth)),
					huh.NewOption("Stable", string(model.VolumeStable)),
					huh.NewOption("Decline", string(model.VolumeDecline)),
				).
				Value(&a.volume),
			huh.NewMultiSelect[string]().
				Title("Main destinations").
				Options(
					huh.NewOption("High-standard markets (US, EU, Japan)", string(model.DestinationHighStandard)),
					huh.NewOption("Middle markets", string(model.DestinationMiddle)),
					huh.NewOption("Low-standard markets", string(model.DestinationLow)),
				).
				Value(&a.destinations),
		).Title("Performance"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Main buyers").
				Options(
					huh.NewOption("Tier 1 (global retailers)", string(model.BuyerTier1)),
					huh.NewOption("Tier 2 (regional distributors)", string(model.BuyerTier2)),
					huh.NewOption("Unknown", string(model.BuyerTierUnknown)),
				).
				Value(&a.tier),
			huh.NewSelect[string]().
				Title("Exports to your country").
				Options(
					huh.NewOption("Recent (within a year)", string(model.ExportRecent)),
					huh.NewOption("In the past", string(model.ExportPast)),
					huh.NewOption("Never", string(model.ExportNone)),
				).
				Value(&a.history),
			huh.NewSelect[string]().
				Title("Dependency on one buyer or country").
				Options(
					huh.NewOption("Low (diversified)", string(model.DependencyLow)),
					huh.NewOption("High (over 50% to one country)", string(model.DependencyHigh)),
				).
				Value(&a.dependency),
		).Title("Reputation and risk"),
	).
		WithInput(in).
		WithOutput(out)

	if err := accessible(form, in).Run(); err != nil {
		return model.SupplierInput{}, eris.Wrap(err, "wizard: supplier form")
	}
	return a.toInput()
}
