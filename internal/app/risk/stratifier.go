package risk

import (
	"fmt"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

// Composite score thresholds. score >= highThreshold (or an immediate
// intervention flag) resolves to RiskHigh, and so on down the table.
const (
	highThreshold     = 8
	moderateThreshold = 5
	lowThreshold      = 2
)

// Stratify folds the leaf assessments into one terminal verdict.
//
// A child-harm assessment at high or critical severity short-circuits to
// RiskCritical before any scoring. Otherwise an integer composite score is
// accumulated; subtractive terms are clamped individually before summing
// (protective factors cap at -2) and the running total is never clamped,
// which matters at boundary scores. Identical inputs always produce identical
// output except for the timestamp.
func (e *Engine) Stratify(
	suicidal *domain.SuicidalAssessment,
	violence *domain.ViolenceAssessment,
	childHarm *domain.ChildHarmAssessment,
	history *domain.UserHistory,
) *domain.ComprehensiveAssessment {

	if childHarm != nil && childHarm.Present &&
		(childHarm.Severity == domain.ChildHarmHigh || childHarm.Severity == domain.ChildHarmCritical) {
		return &domain.ComprehensiveAssessment{
			Level:                         domain.RiskCritical,
			Suicidal:                      suicidal,
			Violence:                      violence,
			ChildHarm:                     childHarm,
			RecommendedAction:             domain.ActionEmergencyEscalation,
			ImmediateInterventionRequired: true,
			Protocol:                      domain.ProtocolChildProtection,
			Monitoring:                    domain.MonitorImmediate,
			Reasoning: []string{
				fmt.Sprintf("threat to a dependent minor detected (%s severity): child protection protocol activated", childHarm.Severity),
			},
			Timestamp: e.now(),
		}
	}

	score := 0
	immediate := false
	var reasons []string

	if suicidal != nil {
		if w := suicidal.Ideation.SeverityWeight(); w > 0 {
			score += w
			reasons = append(reasons, fmt.Sprintf("suicidal ideation: %s (+%d)", suicidal.Ideation, w))
		}
		if suicidal.HasIntent && suicidal.HasPlan {
			score += 3
			reasons = append(reasons, "stated intent combined with a plan (+3)")
		}
		if suicidal.HasMeans {
			score += 2
			reasons = append(reasons, "access to means referenced (+2)")
		}
		if suicidal.HasTimeline {
			score += 2
			reasons = append(reasons, "immediate timeline indicated (+2)")
		}
		if n := len(suicidal.ProtectiveFactors); n > 0 {
			d := n
			if d > 2 {
				d = 2
			}
			score -= d
			reasons = append(reasons, fmt.Sprintf("%d protective factor(s) present (-%d)", n, d))
		}
		if n := len(suicidal.RiskFactors); n >= 3 {
			score++
			reasons = append(reasons, fmt.Sprintf("%d contextual risk factors (+1)", n))
		}
	}

	if history != nil && history.PreviousSuicideAttempt {
		score += 2
		reasons = append(reasons, "history of a previous suicide attempt (+2)")
	}

	if violence != nil && violence.Present {
		switch violence.ThreatType {
		case domain.ThreatImminentDanger:
			score += 4
			immediate = true
			reasons = append(reasons, "violence threat classified as imminent danger (+4)")
		case domain.ThreatWithPlan:
			score += 3
			reasons = append(reasons, "violence threat with a plan (+3)")
		case domain.ThreatEmotionalDischarge:
			score++
			reasons = append(reasons, "violent language consistent with emotional discharge (+1)")
		}
	}

	out := &domain.ComprehensiveAssessment{
		Suicidal:  suicidal,
		Violence:  violence,
		ChildHarm: childHarm,
		Reasoning: reasons,
		Timestamp: e.now(),
	}

	switch {
	case score >= highThreshold || immediate:
		out.Level = domain.RiskHigh
		out.RecommendedAction = domain.ActionCrisisIntervention
		out.ImmediateInterventionRequired = true
		out.Protocol = domain.ProtocolHighRisk
		out.Monitoring = domain.MonitorImmediate
	case score >= moderateThreshold:
		out.Level = domain.RiskModerate
		out.RecommendedAction = domain.ActionSafetyPlanning
		out.Protocol = domain.ProtocolMediumRisk
		out.Monitoring = domain.MonitorDaily
	case score >= lowThreshold:
		out.Level = domain.RiskLow
		out.RecommendedAction = domain.ActionSupportiveMonitoring
		out.Protocol = domain.ProtocolLowRisk
		out.Monitoring = domain.MonitorWeekly
	default:
		out.Level = domain.RiskNone
		out.RecommendedAction = domain.ActionContinueConversation
		out.Protocol = domain.ProtocolNone
		out.Monitoring = domain.MonitorAsNeeded
	}

	if len(out.Reasoning) == 0 {
		out.Reasoning = []string{"No significant risk detected"}
	}

	return out
}
