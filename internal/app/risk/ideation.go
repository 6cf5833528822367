package risk

import "github.com/PabloGalante/farum-sentinel/internal/domain"

// ideationRule pairs a predicate with the type it resolves to. Rules are
// evaluated top-down, most severe first, and the first match wins: a message
// carrying both plan and passive markers classifies at the higher severity.
type ideationRule struct {
	matches func(l *Lexicon, tokens []string) bool
	result  domain.IdeationType
}

var ideationRules = []ideationRule{
	{
		matches: func(l *Lexicon, t []string) bool {
			return l.ideationActive.any(t) && l.planProbe.any(t)
		},
		result: domain.IdeationActiveWithPlan,
	},
	{
		matches: func(l *Lexicon, t []string) bool {
			return l.ideationActive.any(t) && l.intentProbe.any(t)
		},
		result: domain.IdeationActiveWithIntent,
	},
	{
		matches: func(l *Lexicon, t []string) bool {
			return l.ideationActive.any(t) && l.meansProbe.any(t)
		},
		result: domain.IdeationActiveWithMethod,
	},
	{
		matches: func(l *Lexicon, t []string) bool {
			return l.ideationActive.any(t)
		},
		result: domain.IdeationActiveNoIntent,
	},
	{
		matches: func(l *Lexicon, t []string) bool {
			return l.ideationPassive.any(t)
		},
		result: domain.IdeationPassive,
	},
}

// ClassifyIdeation maps text to the most severe ideation type it matches.
// Empty or neutral text resolves to IdeationNone.
func (l *Lexicon) ClassifyIdeation(text string) domain.IdeationType {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return domain.IdeationNone
	}
	for _, rule := range ideationRules {
		if rule.matches(l, tokens) {
			return rule.result
		}
	}
	return domain.IdeationNone
}
