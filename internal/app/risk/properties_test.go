package risk_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

func genSuicidal(ideation int, plan, means, intent, timeline bool, protective, riskCount int) *domain.SuicidalAssessment {
	var pf, rf []string
	for i := 0; i < protective; i++ {
		pf = append(pf, "protective")
	}
	for i := 0; i < riskCount; i++ {
		rf = append(rf, "risk")
	}
	return &domain.SuicidalAssessment{
		Present:           ideation > 0,
		Ideation:          domain.IdeationType(ideation),
		HasPlan:           plan,
		HasMeans:          means,
		HasIntent:         intent,
		HasTimeline:       timeline,
		ProtectiveFactors: pf,
		RiskFactors:       rf,
	}
}

// Raising only the ideation severity, with everything else fixed, never
// lowers the resulting risk level.
func TestStratifyMonotonicityProperty(t *testing.T) {
	e := newTestEngine(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("higher ideation never lowers the level", prop.ForAll(
		func(lo, hi int, plan, means, intent, timeline bool, protective, riskCount int) bool {
			if lo > hi {
				lo, hi = hi, lo
			}

			violence := &domain.ViolenceAssessment{}
			childHarm := &domain.ChildHarmAssessment{}

			a := e.Stratify(genSuicidal(lo, plan, means, intent, timeline, protective, riskCount), violence, childHarm, nil)
			b := e.Stratify(genSuicidal(hi, plan, means, intent, timeline, protective, riskCount), violence, childHarm, nil)

			return b.Level >= a.Level
		},
		gen.IntRange(0, 5),
		gen.IntRange(0, 5),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
		gen.IntRange(0, 4),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}

// Adding protective factors never raises the risk level.
func TestStratifyProtectiveDampeningProperty(t *testing.T) {
	e := newTestEngine(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("more protective factors never raise the level", prop.ForAll(
		func(ideation int, plan, means, intent, timeline bool, protective, extra, riskCount int) bool {
			violence := &domain.ViolenceAssessment{}
			childHarm := &domain.ChildHarmAssessment{}

			fewer := e.Stratify(genSuicidal(ideation, plan, means, intent, timeline, protective, riskCount), violence, childHarm, nil)
			more := e.Stratify(genSuicidal(ideation, plan, means, intent, timeline, protective+extra, riskCount), violence, childHarm, nil)

			return more.Level <= fewer.Level
		},
		gen.IntRange(0, 5),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
		gen.IntRange(0, 3),
		gen.IntRange(0, 3),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}

// A high or critical child-harm screening resolves to CRITICAL no matter what
// the other assessments say.
func TestStratifyShortCircuitProperty(t *testing.T) {
	e := newTestEngine(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	severities := []domain.ChildHarmSeverity{domain.ChildHarmHigh, domain.ChildHarmCritical}
	threats := []domain.ThreatType{domain.ThreatEmotionalDischarge, domain.ThreatWithPlan, domain.ThreatImminentDanger}

	properties.Property("severe child harm always short-circuits", prop.ForAll(
		func(ideation, sevIdx, threatIdx int, violencePresent, prevAttempt bool) bool {
			suicidal := genSuicidal(ideation, true, true, true, true, 0, 5)
			violence := &domain.ViolenceAssessment{
				Present:    violencePresent,
				ThreatType: threats[threatIdx%len(threats)],
			}
			childHarm := &domain.ChildHarmAssessment{
				Present:  true,
				Severity: severities[sevIdx%len(severities)],
			}
			history := &domain.UserHistory{PreviousSuicideAttempt: prevAttempt}

			out := e.Stratify(suicidal, violence, childHarm, history)
			return out.Level == domain.RiskCritical &&
				out.ImmediateInterventionRequired &&
				out.Protocol == domain.ProtocolChildProtection
		},
		gen.IntRange(0, 5),
		gen.IntRange(0, 10),
		gen.IntRange(0, 10),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Stratify is a pure function: identical inputs give identical verdicts.
func TestStratifyDeterminismProperty(t *testing.T) {
	e := newTestEngine(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("identical inputs give identical verdicts", prop.ForAll(
		func(ideation int, plan, means, intent, timeline bool, protective, riskCount int, prevAttempt bool) bool {
			suicidal := genSuicidal(ideation, plan, means, intent, timeline, protective, riskCount)
			violence := &domain.ViolenceAssessment{}
			childHarm := &domain.ChildHarmAssessment{}
			history := &domain.UserHistory{PreviousSuicideAttempt: prevAttempt}

			a := e.Stratify(suicidal, violence, childHarm, history)
			b := e.Stratify(suicidal, violence, childHarm, history)

			if a.Level != b.Level ||
				a.RecommendedAction != b.RecommendedAction ||
				a.Protocol != b.Protocol ||
				a.Monitoring != b.Monitoring ||
				len(a.Reasoning) != len(b.Reasoning) {
				return false
			}
			for i := range a.Reasoning {
				if a.Reasoning[i] != b.Reasoning[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 5),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
		gen.IntRange(0, 4),
		gen.IntRange(0, 5),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
