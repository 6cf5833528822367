package risk

import "github.com/PabloGalante/farum-sentinel/internal/domain"

// ScreenChildHarm matches a small high-precision phrase set expressing
// explicit intent or outcome of harm to a dependent minor. The screener is
// deliberately conservative: a false positive triggers a human-reviewed
// protocol, never an automated action, so a match reports high severity at
// 0.8 confidence rather than attempting finer grading.
func (l *Lexicon) ScreenChildHarm(text string) domain.ChildHarmAssessment {
	matched := l.childHarm.any(tokenize(text))
	if !matched {
		return domain.ChildHarmAssessment{
			Present:    false,
			Severity:   domain.ChildHarmNone,
			Confidence: 0.1,
		}
	}
	return domain.ChildHarmAssessment{
		Present:        true,
		Severity:       domain.ChildHarmHigh,
		SpecificThreat: true,
		Confidence:     0.8,
	}
}
