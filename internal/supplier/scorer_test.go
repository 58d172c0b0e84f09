package supplier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sourcing-cli/internal/model"
)

func bestInput() model.SupplierInput {
	return model.SupplierInput{
		SupplierName:  "ABC Export Co.",
		TargetSpec:    "Organic Cavendish Banana",
		VolumeTrend:   model.VolumeGrowth,
		Destinations:  []model.Destination{model.DestinationHighStandard, model.DestinationMiddle},
		BuyerTier:     model.BuyerTier1,
		ExportHistory: model.ExportRecent,
		Dependency:    model.DependencyLow,
	}
}

func TestScore_Components(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *model.SupplierInput)
		want   int
	}{
		{"maximum", func(in *model.SupplierInput) {}, 100},
		{"stable volume", func(in *model.SupplierInput) { in.VolumeTrend = model.VolumeStable }, 90},
		{"declining volume", func(in *model.SupplierInput) { in.VolumeTrend = model.VolumeDecline }, 70},
		{"no high standard", func(in *model.SupplierInput) {
			in.Destinations = []model.Destination{model.DestinationMiddle, model.DestinationLow}
		}, 80},
		{"tier2", func(in *model.SupplierInput) { in.BuyerTier = model.BuyerTier2 }, 85},
		{"unknown tier", func(in *model.SupplierInput) { in.BuyerTier = model.BuyerTierUnknown }, 70},
		{"past exports", func(in *model.SupplierInput) { in.ExportHistory = model.ExportPast }, 90},
		{"no exports", func(in *model.SupplierInput) { in.ExportHistory = model.ExportNone }, 80},
		{"high dependency", func(in *model.SupplierInput) { in.Dependency = model.DependencyHigh }, 80},
		{"minimum is negative", func(in *model.SupplierInput) {
			in.VolumeTrend = model.VolumeDecline
			in.Destinations = nil
			in.BuyerTier = model.BuyerTierUnknown
			in.ExportHistory = model.ExportNone
			in.Dependency = model.DependencyHigh
		}, -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := bestInput()
			tt.mutate(&in)
			got, breakdown := Score(in)
			assert.Equal(t, tt.want, got)

			var sum int
			for _, c := range breakdown {
				sum += c.Points
			}
			assert.Equal(t, got, sum)
		})
	}
}

func TestGrade_Bands(t *testing.T) {
	s := NewScorer()
	low := model.SupplierInput{Dependency: model.DependencyLow, ExportHistory: model.ExportRecent}
	high := model.SupplierInput{Dependency: model.DependencyHigh, ExportHistory: model.ExportRecent}
	first := model.SupplierInput{Dependency: model.DependencyLow, ExportHistory: model.ExportNone}

	tests := []struct {
		name  string
		score int
		in    model.SupplierInput
		want  model.Grade
	}{
		{"100 is S", 100, low, model.GradeS},
		{"90 is S", 90, high, model.GradeS},
		{"89 low dependency is A", 89, low, model.GradeA},
		{"70 low dependency is A", 70, low, model.GradeA},
		{"80 high dependency is A-", 80, high, model.GradeAMinus},
		{"69 is B", 69, low, model.GradeB},
		{"50 first export is B+", 50, first, model.GradeBPlus},
		{"49 is C/F", 49, low, model.GradeCF},
		{"negative is C/F", -20, high, model.GradeCF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Grade(tt.score, tt.in))
		})
	}
}

func TestGrade_SingleMidBandPolicy(t *testing.T) {
	s := NewScorer(WithMidBandPolicy(MidBandSingle))
	assert.Equal(t, MidBandSingle, s.Policy())
	first := model.SupplierInput{Dependency: model.DependencyLow, ExportHistory: model.ExportNone}
	assert.Equal(t, model.GradeB, s.Grade(60, first))
}

func TestWithMidBandPolicy_IgnoresUnknown(t *testing.T) {
	s := NewScorer(WithMidBandPolicy("bogus"))
	assert.Equal(t, DefaultMidBandPolicy, s.Policy())
}

func TestParseMidBandPolicy(t *testing.T) {
	p, err := ParseMidBandPolicy("")
	require.NoError(t, err)
	assert.Equal(t, MidBandSplit, p)

	p, err = ParseMidBandPolicy("single")
	require.NoError(t, err)
	assert.Equal(t, MidBandSingle, p)

	_, err = ParseMidBandPolicy("triple")
	assert.Error(t, err)
}

func TestEvaluate_Examples(t *testing.T) {
	s := NewScorer()

	t.Run("perfect supplier is S", func(t *testing.T) {
		r := s.Evaluate(bestInput())
		assert.Equal(t, 100, r.Score)
		assert.Equal(t, model.GradeS, r.Grade)
		assert.Equal(t, "Lock-in & Grow", r.StrategyTitle)
		assert.Equal(t, "stable", r.RiskStatus)
		assert.Contains(t, r.EmailBody, "Dear ABC Export Co. team,")
		assert.Contains(t, r.EmailBody, "'Organic Cavendish Banana'")
		assert.Contains(t, r.EmailBody, "MOU")
	})

	t.Run("high dependency is A-", func(t *testing.T) {
		in := bestInput()
		in.Dependency = model.DependencyHigh
		r := s.Evaluate(in)
		assert.Equal(t, 80, r.Score)
		assert.Equal(t, model.GradeAMinus, r.Grade)
		assert.Equal(t, "Penalty & Assurance", r.StrategyTitle)
		assert.Equal(t, "at risk (high dependency)", r.RiskStatus)
		assert.Contains(t, r.EmailBody, "priority shipping")
	})

	t.Run("low dependency 70-89 is A with generic letter", func(t *testing.T) {
		in := bestInput()
		in.ExportHistory = model.ExportNone
		r := s.Evaluate(in)
		assert.Equal(t, 80, r.Score)
		assert.Equal(t, model.GradeA, r.Grade)
		assert.Equal(t, "Competition", r.StrategyTitle)
		assert.Contains(t, r.EmailBody, "FOB quotation")
	})

	t.Run("first time exporter in mid band is B+", func(t *testing.T) {
		in := bestInput()
		in.BuyerTier = model.BuyerTierUnknown
		in.ExportHistory = model.ExportNone
		r := s.Evaluate(in)
		assert.Equal(t, 50, r.Score)
		assert.Equal(t, model.GradeBPlus, r.Grade)
		assert.Equal(t, "Quality First, Safety Check", r.StrategyTitle)
		assert.Contains(t, r.EmailBody, "quarantine standards")
	})

	t.Run("weak supplier is C/F", func(t *testing.T) {
		in := model.SupplierInput{
			TargetSpec:    "Mango",
			VolumeTrend:   model.VolumeDecline,
			BuyerTier:     model.BuyerTierUnknown,
			ExportHistory: model.ExportNone,
			Dependency:    model.DependencyHigh,
		}
		r := s.Evaluate(in)
		assert.Equal(t, -20, r.Score)
		assert.Equal(t, model.GradeCF, r.Grade)
		assert.Equal(t, "Do Not Trade", r.StrategyTitle)
		assert.Contains(t, r.EmailBody, "Dear Sir or Madam,")
		assert.Contains(t, r.EmailBody, "'Mango'")
	})
}

func TestEvaluate_EveryGradeHasProfile(t *testing.T) {
	for _, g := range []model.Grade{
		model.GradeS, model.GradeA, model.GradeAMinus, model.GradeB, model.GradeBPlus, model.GradeCF,
	} {
		p, ok := profiles[g]
		require.True(t, ok, "grade %s", g)
		assert.NotEmpty(t, p.title)
		assert.NotEmpty(t, p.strategyTitle)
		assert.NotEmpty(t, p.emailTone)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	s := NewScorer()
	in := bestInput()
	in.Dependency = model.DependencyHigh
	assert.Equal(t, s.Evaluate(in), s.Evaluate(in))
}

func TestValidateAndEvaluate(t *testing.T) {
	s := NewScorer()
	in := bestInput()
	in.BuyerTier = "tier9"
	_, err := s.ValidateAndEvaluate(in)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	r, err := s.ValidateAndEvaluate(bestInput())
	require.NoError(t, err)
	assert.Equal(t, model.GradeS, r.Grade)
}

func TestDraftEmail_LetterSelection(t *testing.T) {
	in := bestInput()
	assert.Contains(t, DraftEmail(model.GradeS, in), "key account")
	assert.Contains(t, DraftEmail(model.GradeAMinus, in), "priority shipping")
	assert.Contains(t, DraftEmail(model.GradeBPlus, in), "sample test")
	for _, g := range []model.Grade{model.GradeA, model.GradeB, model.GradeCF} {
		assert.Contains(t, DraftEmail(g, in), "FOB quotation", "grade %s", g)
	}
}
