package risk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

func TestAssessViolenceNeutralText(t *testing.T) {
	lex := mustLoadLexicons(t).ForLanguage("en")

	a := lex.AssessViolence("we had dinner and watched a movie", nil)

	assert.False(t, a.Present)
	assert.False(t, a.TargetMentioned)
	assert.False(t, a.MeansAvailable)
}

func TestAssessViolenceDischargeVsThreat(t *testing.T) {
	lex := mustLoadLexicons(t).ForLanguage("en")

	// Explicit keyword plus a discharge marker, but no means and no timeline:
	// venting, not a credible threat.
	a := lex.AssessViolence("I could kill him but I'd never do it", nil)

	assert.True(t, a.Present)
	assert.Equal(t, domain.ThreatEmotionalDischarge, a.ThreatType)
	assert.True(t, a.TargetMentioned)
	assert.False(t, a.MeansAvailable)
	assert.NotEmpty(t, a.ProtectiveFactors)
	assert.Less(t, a.Confidence, 0.5)
}

func TestAssessViolenceImminentDanger(t *testing.T) {
	lex := mustLoadLexicons(t).ForLanguage("en")

	a := lex.AssessViolence("I know where my ex lives, I'm going to shoot her with my gun tonight", nil)

	assert.True(t, a.Present)
	assert.Equal(t, domain.ThreatImminentDanger, a.ThreatType)
	assert.True(t, a.TargetMentioned)
	assert.True(t, a.MeansAvailable)
	assert.GreaterOrEqual(t, a.Confidence, 0.7)
}

func TestAssessViolenceThreatWithPlan(t *testing.T) {
	lex := mustLoadLexicons(t).ForLanguage("en")

	// Explicit keyword, target and means, but no timeline marker.
	a := lex.AssessViolence("I'm going to shoot my boss with my gun", nil)

	assert.True(t, a.Present)
	assert.Equal(t, domain.ThreatWithPlan, a.ThreatType)
	assert.True(t, a.MeansAvailable)
}

func TestAssessViolenceHistoryEscalates(t *testing.T) {
	lex := mustLoadLexicons(t).ForLanguage("en")
	text := "I'm going to hurt him, I have a knife"

	calm := lex.AssessViolence(text, nil)
	assert.Equal(t, domain.ThreatWithPlan, calm.ThreatType)
	assert.False(t, calm.HistoryOfViolence)

	// The same words from a user with a documented history of violence
	// resolve one row higher in the decision table.
	prior := lex.AssessViolence(text, &domain.UserHistory{ViolenceHistory: true})
	assert.Equal(t, domain.ThreatImminentDanger, prior.ThreatType)
	assert.True(t, prior.HistoryOfViolence)
}

func TestAssessViolenceVentingClamp(t *testing.T) {
	lex := mustLoadLexicons(t).ForLanguage("en")

	// High intensity, no explicit threat pattern: confidence stays low.
	a := lex.AssessViolence("I'm so angry, I hate this, I'm fed up with everything", nil)

	assert.False(t, a.Present)
	assert.Equal(t, domain.ThreatEmotionalDischarge, a.ThreatType)
	assert.LessOrEqual(t, a.Confidence, 0.3)
}
