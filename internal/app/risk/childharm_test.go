package risk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

func TestScreenChildHarm(t *testing.T) {
	lex := mustLoadLexicons(t).ForLanguage("en")

	t.Run("no match", func(t *testing.T) {
		a := lex.ScreenChildHarm("my kids are doing great at school")
		assert.False(t, a.Present)
		assert.Equal(t, domain.ChildHarmNone, a.Severity)
		assert.False(t, a.SpecificThreat)
		assert.InDelta(t, 0.1, a.Confidence, 1e-9)
	})

	t.Run("explicit phrase", func(t *testing.T) {
		a := lex.ScreenChildHarm("I'm afraid I'll hurt the baby when it cries")
		assert.True(t, a.Present)
		assert.Equal(t, domain.ChildHarmHigh, a.Severity)
		assert.True(t, a.SpecificThreat)
		assert.InDelta(t, 0.8, a.Confidence, 1e-9)
	})

	t.Run("spanish phrase", func(t *testing.T) {
		lexES := mustLoadLexicons(t).ForLanguage("es")
		a := lexES.ScreenChildHarm("tengo miedo de lastimar al bebé")
		assert.True(t, a.Present)
		assert.Equal(t, domain.ChildHarmHigh, a.Severity)
	})
}
