package batch

import (
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/sourcing-cli/internal/model"
)

// NegotiationInput converts a row using the JSON field names as columns.
func NegotiationInput(r Row) (model.NegotiationInput, error) {
	var (
		in  model.NegotiationInput
		err error
	)
	in.TargetDate = r.Get("target_date")
	if in.ForecastTrend, err = model.ParseForecastTrend(r.Get("forecast_trend")); err != nil {
		return in, err
	}
	if in.MarketTrend, err = model.ParseMarketTrend(r.Get("market_trend")); err != nil {
		return in, err
	}
	if in.ForecastPrice, err = optionalFloat(r, "forecast_price"); err != nil {
		return in, err
	}
	if in.MarketAvgPrice, err = requiredFloat(r, "market_avg_price"); err != nil {
		return in, err
	}
	if in.OfferPrice, err = requiredFloat(r, "offer_price"); err != nil {
		return in, err
	}
	if in.SupplierMarginPct, err = requiredInt(r, "supplier_margin_pct"); err != nil {
		return in, err
	}
	if in.RiskFactors, err = model.ParseRiskFactors(r.Get("risk_factors")); err != nil {
		return in, err
	}
	if in.OpportunityFactors, err = model.ParseOpportunityFactors(r.Get("opportunity_factors")); err != nil {
		return in, err
	}
	return in, in.Validate()
}

// SupplierInput converts a row using the JSON field names as columns.
func SupplierInput(r Row) (model.SupplierInput, error) {
	var (
		in  model.SupplierInput
		err error
	)
	in.SupplierName = r.Get("supplier_name")
	in.TargetSpec = r.Get("target_spec")
	if in.SpecMatch, err = model.ParseSpecMatch(r.Get("spec_match")); err != nil {
		return in, err
	}
	if in.VolumeTrend, err = model.ParseVolumeTrend(r.Get("volume_trend")); err != nil {
		return in, err
	}
	if in.Destinations, err = model.ParseDestinations(r.Get("destinations")); err != nil {
		return in, err
	}
	if in.BuyerTier, err = model.ParseBuyerTier(r.Get("buyer_tier")); err != nil {
		return in, err
	}
	if in.ExportHistory, err = model.ParseExportHistory(r.Get("export_history")); err != nil {
		return in, err
	}
	if in.Dependency, err = model.ParseDependency(r.Get("dependency")); err != nil {
		return in, err
	}
	return in, in.Validate()
}

func requiredFloat(r Row, field string) (float64, error) {
	s := r.Get(field)
	if s == "" {
		return 0, eris.Wrapf(model.ErrInvalidInput, "%s: required", field)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Wrapf(model.ErrInvalidInput, "%s: %q is not a number", field, s)
	}
	return v, nil
}

func optionalFloat(r Row, field string) (float64, error) {
	if r.Get(field) == "" {
		return 0, nil
	}
	return requiredFloat(r, field)
}

func requiredInt(r Row, field string) (int, error) {
	s := r.Get(field)
	if s == "" {
		return 0, eris.Wrapf(model.ErrInvalidInput, "%s: required", field)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, eris.Wrapf(model.ErrInvalidInput, "%s: %q is not a whole number", field, s)
	}
	return v, nil
}
