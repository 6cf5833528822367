package risk

import (
	"strings"
	"unicode"
)

// tokenize lowercases the text and splits it into letter/digit runs.
// Apostrophes and other punctuation act as separators, so "don't" becomes
// ["don", "t"] on both the lexicon side and the message side, and short
// entries like "her" never match inside "there".
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// phraseSet is a compiled keyword table: every entry is stored both raw (for
// reporting matched phrases back to the caller) and tokenized (for matching).
type phraseSet struct {
	raw  []string
	toks [][]string
}

func newPhraseSet(entries []string) phraseSet {
	ps := phraseSet{
		raw:  make([]string, 0, len(entries)),
		toks: make([][]string, 0, len(entries)),
	}
	for _, e := range entries {
		t := tokenize(e)
		if len(t) == 0 {
			continue
		}
		ps.raw = append(ps.raw, e)
		ps.toks = append(ps.toks, t)
	}
	return ps
}

// matches returns the raw entries whose token sequence occurs in tokens,
// preserving the lexicon's order so output stays deterministic.
func (ps phraseSet) matches(tokens []string) []string {
	var out []string
	for i, phrase := range ps.toks {
		if containsSeq(tokens, phrase) {
			out = append(out, ps.raw[i])
		}
	}
	return out
}

func (ps phraseSet) any(tokens []string) bool {
	for _, phrase := range ps.toks {
		if containsSeq(tokens, phrase) {
			return true
		}
	}
	return false
}

// occurrences counts every position where any entry matches, counting
// repeated phrases each time they appear.
func (ps phraseSet) occurrences(tokens []string) int {
	n := 0
	for _, phrase := range ps.toks {
		for i := 0; i+len(phrase) <= len(tokens); i++ {
			if seqAt(tokens, phrase, i) {
				n++
			}
		}
	}
	return n
}

func containsSeq(tokens, phrase []string) bool {
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		if seqAt(tokens, phrase, i) {
			return true
		}
	}
	return false
}

func seqAt(tokens, phrase []string, at int) bool {
	for j, p := range phrase {
		if tokens[at+j] != p {
			return false
		}
	}
	return true
}
