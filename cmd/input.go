package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/sourcing-cli/internal/batch"
	"github.com/sells-group/sourcing-cli/internal/model"
)

var negotiationFields = []struct{ name, usage string }{
	{"target_date", "delivery month, e.g. 2026-03"},
	{"forecast_trend", "production forecast: rise, stable, fall"},
	{"forecast_price", "forecast price ($/kg), informational"},
	{"market_trend", "market price trend: surge, rise, stable, drop"},
	{"market_avg_price", "market average price ($/kg)"},
	{"offer_price", "supplier's quoted price ($/kg)"},
	{"supplier_margin_pct", "assumed supplier margin, 0-20"},
	{"risk_factors", "comma-separated: supply_disruption, disease, logistics_congestion, tariff_regulation, input_cost_rise"},
	{"opportunity_factors", "comma-separated: bumper_crop, demand_slump, fx_tailwind, new_supply_source"},
}

var supplierFields = []struct{ name, usage string }{
	{"supplier_name", "supplier company name"},
	{"target_spec", "product specification sought"},
	{"spec_match", "profile matches the target spec: yes, unknown"},
	{"volume_trend", "export volume trend: growth, stable, decline"},
	{"destinations", "comma-separated: high_standard, middle, low"},
	{"buyer_tier", "main customers: tier1, tier2, unknown"},
	{"export_history", "exports to your country: recent, past, none"},
	{"dependency", "trade concentration: low, high"},
}

func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

func addFieldFlags(cmd *cobra.Command, fields []struct{ name, usage string }) {
	for _, f := range fields {
		cmd.Flags().String(flagName(f.name), "", f.usage)
	}
	cmd.Flags().String("file", "", "read input from a JSON or YAML file instead of flags")
}

// rowFromFlags collects field flags into a batch row so flags parse exactly
// like file columns.
func rowFromFlags(cmd *cobra.Command, fields []struct{ name, usage string }) batch.Row {
	row := batch.Row{Fields: make(map[string]string, len(fields))}
	for _, f := range fields {
		v, _ := cmd.Flags().GetString(flagName(f.name))
		row.Fields[f.name] = v
	}
	return row
}

// decodeFile reads a JSON or YAML document into dst. JSON is checked against
// validate first so every violation is reported at once.
func decodeFile(path string, validate func([]byte) []string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrap(err, "read input file")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return eris.Wrap(yaml.Unmarshal(data, dst), "decode yaml input")
	default:
		if problems := validate(data); len(problems) > 0 {
			return eris.Wrapf(model.ErrInvalidInput, "%s", strings.Join(problems, "; "))
		}
		return eris.Wrap(json.Unmarshal(data, dst), "decode json input")
	}
}
