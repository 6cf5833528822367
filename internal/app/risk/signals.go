package risk

// ScanSignals is the fast lexical path: a positive match is always trusted as
// high-confidence, but a miss never vetoes the slower classification path.
func (l *Lexicon) ScanSignals(text string) (bool, []string) {
	matched := l.signals.matches(tokenize(text))
	return len(matched) > 0, matched
}

// The four probes are independent on purpose: a message can reference means
// without intent. Combining them is the stratifier's job.

func (l *Lexicon) HasPlan(text string) bool {
	return l.planProbe.any(tokenize(text))
}

func (l *Lexicon) HasMeans(text string) bool {
	return l.meansProbe.any(tokenize(text))
}

func (l *Lexicon) HasIntent(text string) bool {
	return l.intentProbe.any(tokenize(text))
}

func (l *Lexicon) HasTimeline(text string) bool {
	return l.immediacyProbe.any(tokenize(text))
}

// ProtectiveFactors returns the matched protective-lexicon phrases. Matches
// are reported per category without deduplication: the same phrase may also
// appear in another table. Factors only ever adjust the score, they never
// gate a classification.
func (l *Lexicon) ProtectiveFactors(text string) []string {
	return l.protective.matches(tokenize(text))
}

// RiskFactors returns the matched risk-lexicon phrases.
func (l *Lexicon) RiskFactors(text string) []string {
	return l.riskwords.matches(tokenize(text))
}
