package model

import "slices"

// VolumeTrend is the supplier's export volume trend over the last year.
type VolumeTrend string

// Volume trends.
const (
	VolumeGrowth  VolumeTrend = "growth"
	VolumeStable  VolumeTrend = "stable"
	VolumeDecline VolumeTrend = "decline"
)

// Valid reports whether v is a known volume trend.
func (v VolumeTrend) Valid() bool {
	switch v {
	case VolumeGrowth, VolumeStable, VolumeDecline:
		return true
	}
	return false
}

// UnmarshalText rejects unknown tags while decoding JSON or YAML.
func (v *VolumeTrend) UnmarshalText(b []byte) error {
	p, err := parseEnum[VolumeTrend]("volume_trend", string(b))
	*v = p
	return err
}

// ParseVolumeTrend parses a volume trend tag.
func ParseVolumeTrend(s string) (VolumeTrend, error) {
	return parseEnum[VolumeTrend]("volume_trend", s)
}

// Destination is a class of export market.
type Destination string

// Destinations.
const (
	DestinationHighStandard Destination = "high_standard"
	DestinationMiddle       Destination = "middle"
	DestinationLow          Destination = "low"
)

// AllDestinations lists every destination class in display order.
var AllDestinations = []Destination{DestinationHighStandard, DestinationMiddle, DestinationLow}

// Valid reports whether d is a known destination class.
func (d Destination) Valid() bool {
	switch d {
	case DestinationHighStandard, DestinationMiddle, DestinationLow:
		return true
	}
	return false
}

// UnmarshalText rejects unknown tags while decoding JSON or YAML.
func (d *Destination) UnmarshalText(b []byte) error {
	p, err := parseEnum[Destination]("destinations", string(b))
	*d = p
	return err
}

// ParseDestinations parses a comma-separated list of destination tags.
func ParseDestinations(s string) ([]Destination, error) {
	return parseEnumList[Destination]("destinations", s)
}

// BuyerTier is the level of the supplier's main customers.
type BuyerTier string

// Buyer tiers.
const (
	BuyerTier1       BuyerTier = "tier1"
	BuyerTier2       BuyerTier = "tier2"
	BuyerTierUnknown BuyerTier = "unknown"
)

// Valid reports whether t is a known buyer tier.
func (t BuyerTier) Valid() bool {
	switch t {
	case BuyerTier1, BuyerTier2, BuyerTierUnknown:
		return true
	}
	return false
}

// UnmarshalText rejects unknown tags while decoding JSON or YAML.
func (t *BuyerTier) UnmarshalText(b []byte) error {
	p, err := parseEnum[BuyerTier]("buyer_tier", string(b))
	*t = p
	return err
}

// ParseBuyerTier parses a buyer tier tag.
func ParseBuyerTier(s string) (BuyerTier, error) {
	return parseEnum[BuyerTier]("buyer_tier", s)
}

// ExportHistory describes past exports to the buyer's country.
type ExportHistory string

// Export histories.
const (
	ExportRecent ExportHistory = "recent"
	ExportPast   ExportHistory = "past"
	ExportNone   ExportHistory = "none"
)

// Valid reports whether h is a known export history.
func (h ExportHistory) Valid() bool {
	switch h {
	case ExportRecent, ExportPast, ExportNone:
		return true
	}
	return false
}

// UnmarshalText rejects unknown tags while decoding JSON or YAML.
func (h *ExportHistory) UnmarshalText(b []byte) error {
	p, err := parseEnum[ExportHistory]("export_history", string(b))
	*h = p
	return err
}

// ParseExportHistory parses an export history tag.
func ParseExportHistory(s string) (ExportHistory, error) {
	return parseEnum[ExportHistory]("export_history", s)
}

// Dependency is how concentrated the supplier's trade is on one buyer or country.
type Dependency string

// Dependencies.
const (
	DependencyLow  Dependency = "low"
	DependencyHigh Dependency = "high"
)

// Valid reports whether d is a known dependency level.
func (d Dependency) Valid() bool {
	switch d {
	case DependencyLow, DependencyHigh:
		return true
	}
	return false
}

// UnmarshalText rejects unknown tags while decoding JSON or YAML.
func (d *Dependency) UnmarshalText(b []byte) error {
	p, err := parseEnum[Dependency]("dependency", string(b))
	*d = p
	return err
}

// ParseDependency parses a dependency tag.
func ParseDependency(s string) (Dependency, error) {
	return parseEnum[Dependency]("dependency", s)
}

// SpecMatch records whether the supplier profile matches the target spec.
// It is informational and never scored.
type SpecMatch string

// Spec match answers.
const (
	SpecMatchYes     SpecMatch = "yes"
	SpecMatchUnknown SpecMatch = "unknown"
)

// Valid reports whether m is a known answer.
func (m SpecMatch) Valid() bool {
	switch m {
	case SpecMatchYes, SpecMatchUnknown:
		return true
	}
	return false
}

// UnmarshalText rejects unknown tags while decoding JSON or YAML.
func (m *SpecMatch) UnmarshalText(b []byte) error {
	p, err := parseEnum[SpecMatch]("spec_match", string(b))
	*m = p
	return err
}

// ParseSpecMatch parses a spec match answer. An empty string means unknown.
func ParseSpecMatch(s string) (SpecMatch, error) {
	if s == "" {
		return SpecMatchUnknown, nil
	}
	return parseEnum[SpecMatch]("spec_match", s)
}

// SupplierInput holds the audit answers for one supplier.
type SupplierInput struct {
	SupplierName  string        `json:"supplier_name" yaml:"supplier_name"`
	TargetSpec    string        `json:"target_spec" yaml:"target_spec"`
	SpecMatch     SpecMatch     `json:"spec_match,omitempty" yaml:"spec_match"`
	VolumeTrend   VolumeTrend   `json:"volume_trend" yaml:"volume_trend"`
	Destinations  []Destination `json:"destinations,omitempty" yaml:"destinations"`
	BuyerTier     BuyerTier     `json:"buyer_tier" yaml:"buyer_tier"`
	ExportHistory ExportHistory `json:"export_history" yaml:"export_history"`
	Dependency    Dependency    `json:"dependency" yaml:"dependency"`
}

// ShipsTo reports whether d is among the supplier's destinations.
func (in *SupplierInput) ShipsTo(d Destination) bool {
	return slices.Contains(in.Destinations, d)
}

// Validate checks every categorical field. The returned error wraps ErrInvalidInput.
func (in *SupplierInput) Validate() error {
	if !in.VolumeTrend.Valid() {
		return invalid("volume_trend: unknown value %q", in.VolumeTrend)
	}
	for _, d := range in.Destinations {
		if !d.Valid() {
			return invalid("destinations: unknown value %q", d)
		}
	}
	if !in.BuyerTier.Valid() {
		return invalid("buyer_tier: unknown value %q", in.BuyerTier)
	}
	if !in.ExportHistory.Valid() {
		return invalid("export_history: unknown value %q", in.ExportHistory)
	}
	if !in.Dependency.Valid() {
		return invalid("dependency: unknown value %q", in.Dependency)
	}
	if in.SpecMatch != "" && !in.SpecMatch.Valid() {
		return invalid("spec_match: unknown value %q", in.SpecMatch)
	}
	return nil
}

// Grade is the supplier trust bucket.
type Grade string

// Grades.
const (
	GradeS      Grade = "S"
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeCF     Grade = "C/F"
)

// ScoreComponent is the points one factor contributed.
type ScoreComponent struct {
	Factor string `json:"factor"`
	Value  string `json:"value"`
	Points int    `json:"points"`
}

// ScoreReport is the outcome of a supplier evaluation. Score is signed and
// unclamped; the reachable range is [-20, 100].
type ScoreReport struct {
	SupplierName  string           `json:"supplier_name"`
	Score         int              `json:"score"`
	Grade         Grade            `json:"grade"`
	GradeTitle    string           `json:"grade_title"`
	StrategyTitle string           `json:"strategy_title"`
	StrategyDesc  string           `json:"strategy_desc"`
	EmailTone     string           `json:"email_tone"`
	EmailBody     string           `json:"email_body"`
	Polished      bool             `json:"polished,omitempty"`
	RiskStatus    string           `json:"risk_status"`
	Breakdown     []ScoreComponent `json:"breakdown"`
}
