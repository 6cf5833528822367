package risk

import (
	"math"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

// threatRule pairs a predicate over the extracted violence features with the
// threat type it resolves to. Rules run top-down, first match wins. The
// imminent-danger rows sit above every discharge row so genuine danger is
// never masked by ambiguous emotional language.
type threatRule struct {
	matches func(f violenceFeatures) bool
	result  domain.ThreatType
}

type violenceFeatures struct {
	explicit        bool
	planIndicator   bool
	target          bool
	timeline        bool
	means           bool
	history         bool
	specificity     float64
	intensity       float64
	isThreat        bool
	patternsMatched int
	protectiveCount int
}

var threatRules = []threatRule{
	{
		matches: func(f violenceFeatures) bool {
			return f.specificity >= 0.7 && f.timeline && f.means
		},
		result: domain.ThreatImminentDanger,
	},
	{
		matches: func(f violenceFeatures) bool {
			return f.history && f.specificity >= 0.5 && f.target
		},
		result: domain.ThreatImminentDanger,
	},
	{
		matches: func(f violenceFeatures) bool {
			return f.specificity >= 0.5 && f.means && f.target
		},
		result: domain.ThreatWithPlan,
	},
	{
		matches: func(f violenceFeatures) bool {
			return f.intensity >= 0.6 && f.specificity < 0.5
		},
		result: domain.ThreatEmotionalDischarge,
	},
	{
		matches: func(f violenceFeatures) bool {
			return f.explicit && !f.means && !f.timeline
		},
		result: domain.ThreatEmotionalDischarge,
	},
	{
		matches: func(f violenceFeatures) bool { return f.isThreat },
		result:  domain.ThreatWithPlan,
	},
	{
		matches: func(f violenceFeatures) bool { return true },
		result:  domain.ThreatEmotionalDischarge,
	},
}

// AssessViolence scores how specific and how emotionally charged the violent
// language is, then classifies the threat. The scoring separates venting from
// genuine threat: high intensity with low specificity caps confidence at 0.3.
func (l *Lexicon) AssessViolence(text string, history *domain.UserHistory) domain.ViolenceAssessment {
	tokens := tokenize(text)

	explicitMatches := l.violenceExplicit.matches(tokens)
	planMatches := l.violencePlan.matches(tokens)
	protective := l.protective.matches(tokens)

	f := violenceFeatures{
		explicit:        len(explicitMatches) > 0,
		planIndicator:   len(planMatches) > 0,
		target:          l.violenceTargets.any(tokens),
		timeline:        l.immediacyProbe.any(tokens),
		means:           l.meansProbe.any(tokens),
		patternsMatched: len(explicitMatches) + len(planMatches),
		protectiveCount: len(protective),
	}
	if history != nil {
		f.history = history.ViolenceHistory
	}

	f.specificity = 0
	if f.explicit {
		f.specificity += 0.4
	}
	if f.planIndicator {
		f.specificity += 0.3
	}
	if f.target {
		f.specificity += 0.2
	}
	if f.timeline {
		f.specificity += 0.1
	}
	f.specificity = math.Min(f.specificity, 1.0)

	f.intensity = 0.5
	if l.violenceDischarge.any(tokens) {
		f.intensity += 0.3
	}
	if l.violenceExplicit.occurrences(tokens) > 2 {
		f.intensity += 0.2
	}
	f.intensity = math.Min(f.intensity, 1.0)

	f.isThreat = f.explicit || (f.planIndicator && f.target)

	var threatType domain.ThreatType
	for _, rule := range threatRules {
		if rule.matches(f) {
			threatType = rule.result
			break
		}
	}

	confidence := 0.7 * f.specificity
	if f.patternsMatched > 1 {
		confidence += 0.1
	}
	if f.target && f.means {
		confidence += 0.1
	}
	confidence -= 0.1 * math.Min(float64(f.protectiveCount), 2)
	confidence = math.Max(0, math.Min(confidence, 1.0))

	// Venting clamp: strong emotion without a specific threat is not treated
	// as a confident signal.
	if f.intensity > 0.7 && f.specificity < 0.4 {
		confidence = math.Min(confidence, 0.3)
	}

	return domain.ViolenceAssessment{
		Present:           f.isThreat,
		ThreatType:        threatType,
		TargetMentioned:   f.target,
		MeansAvailable:    f.means,
		HistoryOfViolence: f.history,
		ProtectiveFactors: protective,
		Confidence:        confidence,
	}
}
