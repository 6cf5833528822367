package risk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-sentinel/internal/app/risk"
)

func mustLoadLexicons(t *testing.T) *risk.LexiconSet {
	t.Helper()
	set, err := risk.LoadLexicons()
	require.NoError(t, err)
	return set
}

func TestLoadLexicons(t *testing.T) {
	set := mustLoadLexicons(t)
	assert.Equal(t, []string{"en", "es"}, set.Languages())
}

func TestForLanguageResolution(t *testing.T) {
	set := mustLoadLexicons(t)

	tests := []struct {
		tag  string
		want string
	}{
		{"en", "en"},
		{"en-GB", "en"},
		{"es", "es"},
		{"es-AR", "es"},
		{"es-419", "es"},
		// Unknown or malformed tags fall back to English.
		{"", "en"},
		{"fr", "en"},
		{"zz-not-a-tag", "en"},
	}

	for _, tt := range tests {
		lex := set.ForLanguage(tt.tag)
		require.NotNil(t, lex, "tag %q", tt.tag)
		assert.Equal(t, tt.want, lex.Language, "tag %q", tt.tag)
	}
}
