package risk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

func TestClassifyIdeation(t *testing.T) {
	lex := mustLoadLexicons(t).ForLanguage("en")

	tests := []struct {
		name string
		text string
		want domain.IdeationType
	}{
		{
			name: "neutral text",
			text: "I had a pretty good day at work",
			want: domain.IdeationNone,
		},
		{
			name: "empty text",
			text: "",
			want: domain.IdeationNone,
		},
		{
			name: "passive only",
			text: "I don't want to live anymore",
			want: domain.IdeationPassive,
		},
		{
			name: "active without intent",
			text: "sometimes I think about how to end my life",
			want: domain.IdeationActiveNoIntent,
		},
		{
			name: "active with method",
			text: "I think about killing myself with pills",
			want: domain.IdeationActiveWithMethod,
		},
		{
			name: "active with intent",
			text: "I will end my life, I mean it",
			want: domain.IdeationActiveWithIntent,
		},
		{
			name: "active with plan",
			text: "I'm going to kill myself, I have a plan",
			want: domain.IdeationActiveWithPlan,
		},
		{
			name: "plan outranks passive markers in the same message",
			text: "I don't want to live and I'm going to kill myself",
			want: domain.IdeationActiveWithPlan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lex.ClassifyIdeation(tt.text))
		})
	}
}

func TestClassifyIdeationSpanish(t *testing.T) {
	lex := mustLoadLexicons(t).ForLanguage("es")

	assert.Equal(t, domain.IdeationPassive, lex.ClassifyIdeation("ya no quiero vivir"))
	assert.Equal(t, domain.IdeationActiveWithPlan, lex.ClassifyIdeation("me voy a matar esta noche"))
	assert.Equal(t, domain.IdeationNone, lex.ClassifyIdeation("hoy fue un buen día"))
}

func TestSeverityWeightOrdering(t *testing.T) {
	// Weights are the ideation type's position in the severity ladder.
	assert.Equal(t, 0, domain.IdeationNone.SeverityWeight())
	assert.Equal(t, 1, domain.IdeationPassive.SeverityWeight())
	assert.Equal(t, 2, domain.IdeationActiveNoIntent.SeverityWeight())
	assert.Equal(t, 3, domain.IdeationActiveWithMethod.SeverityWeight())
	assert.Equal(t, 4, domain.IdeationActiveWithIntent.SeverityWeight())
	assert.Equal(t, 5, domain.IdeationActiveWithPlan.SeverityWeight())
}
