// Package supplier scores a supplier's trustworthiness and drafts an opening email.
package supplier

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/sourcing-cli/internal/model"
)

// MidBandPolicy decides how scores in [50, 70) are graded.
type MidBandPolicy string

const (
	// MidBandSplit grades B+ when the supplier has never exported to the
	// buyer's country, and B otherwise.
	MidBandSplit MidBandPolicy = "split"
	// MidBandSingle grades every mid-band score B.
	MidBandSingle MidBandPolicy = "single"

	// DefaultMidBandPolicy is the policy used when none is configured.
	DefaultMidBandPolicy = MidBandSplit
)

// Valid reports whether p is a known policy.
func (p MidBandPolicy) Valid() bool {
	return p == MidBandSplit || p == MidBandSingle
}

// ParseMidBandPolicy parses a policy name. Empty selects the default.
func ParseMidBandPolicy(s string) (MidBandPolicy, error) {
	if s == "" {
		return DefaultMidBandPolicy, nil
	}
	p := MidBandPolicy(s)
	if !p.Valid() {
		return "", eris.Errorf("supplier: unknown mid band policy %q (want split or single)", s)
	}
	return p, nil
}

// Grade band thresholds.
const (
	ThresholdS            = 90
	ThresholdA            = 70
	ThresholdB            = 50
	PenaltyHighDependency = -20
)

var volumePoints = map[model.VolumeTrend]int{
	model.VolumeGrowth:  30,
	model.VolumeStable:  20,
	model.VolumeDecline: 0,
}

var tierPoints = map[model.BuyerTier]int{
	model.BuyerTier1:       30,
	model.BuyerTier2:       15,
	model.BuyerTierUnknown: 0,
}

var historyPoints = map[model.ExportHistory]int{
	model.ExportRecent: 20,
	model.ExportPast:   10,
	model.ExportNone:   0,
}

const highStandardPoints = 20

// Score sums the points of every factor. The total is not clamped.
func Score(in model.SupplierInput) (int, []model.ScoreComponent) {
	dest := 0
	if in.ShipsTo(model.DestinationHighStandard) {
		dest = highStandardPoints
	}
	dep := 0
	if in.Dependency == model.DependencyHigh {
		dep = PenaltyHighDependency
	}

	breakdown := []model.ScoreComponent{
		{Factor: "volume_trend", Value: string(in.VolumeTrend), Points: volumePoints[in.VolumeTrend]},
		{Factor: "destinations", Value: destinationsValue(in), Points: dest},
		{Factor: "buyer_tier", Value: string(in.BuyerTier), Points: tierPoints[in.BuyerTier]},
		{Factor: "export_history", Value: string(in.ExportHistory), Points: historyPoints[in.ExportHistory]},
		{Factor: "dependency", Value: string(in.Dependency), Points: dep},
	}

	var total int
	for _, c := range breakdown {
		total += c.Points
	}
	return total, breakdown
}

func destinationsValue(in model.SupplierInput) string {
	if in.ShipsTo(model.DestinationHighStandard) {
		return string(model.DestinationHighStandard)
	}
	if len(in.Destinations) == 0 {
		return "none"
	}
	return string(in.Destinations[0])
}

// Scorer grades suppliers under a mid band policy.
type Scorer struct {
	policy MidBandPolicy
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithMidBandPolicy sets the mid band policy. Unknown policies are ignored.
func WithMidBandPolicy(p MidBandPolicy) Option {
	return func(s *Scorer) {
		if p.Valid() {
			s.policy = p
		}
	}
}

// NewScorer creates a Scorer using DefaultMidBandPolicy unless overridden.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{policy: DefaultMidBandPolicy}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Policy returns the configured mid band policy.
func (s *Scorer) Policy() MidBandPolicy {
	return s.policy
}

// Grade maps a score to a grade. High dependency downgrades the A band to A-.
func (s *Scorer) Grade(score int, in model.SupplierInput) model.Grade {
	switch {
	case score >= ThresholdS:
		return model.GradeS
	case score >= ThresholdA:
		if in.Dependency == model.DependencyHigh {
			return model.GradeAMinus
		}
		return model.GradeA
	case score >= ThresholdB:
		if s.policy == MidBandSplit && in.ExportHistory == model.ExportNone {
			return model.GradeBPlus
		}
		return model.GradeB
	default:
		return model.GradeCF
	}
}

// Evaluate scores and grades in and drafts the opening email. It assumes in
// is valid; use ValidateAndEvaluate at input boundaries.
func (s *Scorer) Evaluate(in model.SupplierInput) model.ScoreReport {
	score, breakdown := Score(in)
	g := s.Grade(score, in)
	p := profiles[g]

	risk := "stable"
	if in.Dependency == model.DependencyHigh {
		risk = "at risk (high dependency)"
	}

	return model.ScoreReport{
		SupplierName:  in.SupplierName,
		Score:         score,
		Grade:         g,
		GradeTitle:    p.title,
		StrategyTitle: p.strategyTitle,
		StrategyDesc:  p.strategyDesc,
		EmailTone:     p.emailTone,
		EmailBody:     DraftEmail(g, in),
		RiskStatus:    risk,
		Breakdown:     breakdown,
	}
}

// ValidateAndEvaluate rejects invalid input before evaluating it.
func (s *Scorer) ValidateAndEvaluate(in model.SupplierInput) (model.ScoreReport, error) {
	if err := in.Validate(); err != nil {
		return model.ScoreReport{}, err
	}
	return s.Evaluate(in), nil
}

type profile struct {
	title         string
	strategyTitle string
	strategyDesc  string
	emailTone     string
}

var profiles = map[model.Grade]profile{
	model.GradeS: {
		title:         "Grade S (Strategic Partner)",
		strategyTitle: "Lock-in & Grow",
		strategyDesc:  "Growth, quality and stability are all excellent. Prioritize securing volume and a long-term contract over unit price.",
		emailTone:     "Respectful partnership proposal",
	},
	model.GradeAMinus: {
		title:         "Grade A- (Conditional Partner)",
		strategyTitle: "Penalty & Assurance",
		strategyDesc:  "Capable but busy. Your volume may be pushed back, so always include a delivery guarantee clause.",
		emailTone:     "Emphasize delivery and stability",
	},
	model.GradeA: {
		title:         "Grade A (Preferred Partner)",
		strategyTitle: "Competition",
		strategyDesc:  "A dependable standard supplier. Run competitive bidding to drive unit price down.",
		emailTone:     "Standard request for quotation",
	},
	model.GradeBPlus: {
		title:         "Grade B+ (Quarantine Caution)",
		strategyTitle: "Quality First, Safety Check",
		strategyDesc:  "Good product for demanding markets, but this would be a first shipment to your country. Require sample testing to avoid quarantine failures.",
		emailTone:     "Quarantine procedure briefing and sample request",
	},
	model.GradeB: {
		title:         "Grade B (Backup Partner)",
		strategyTitle: "Quality First, Safety Check",
		strategyDesc:  "Not strong enough to be a main supplier. Require sample testing and keep them as leverage if the main negotiation fails.",
		emailTone:     "Market survey approach",
	},
	model.GradeCF: {
		title:         "Grade C/F (High Risk)",
		strategyTitle: "Do Not Trade",
		strategyDesc:  "High risk of default. Exclude from sourcing or add to the blacklist.",
		emailTone:     "Decline or no response",
	},
}
