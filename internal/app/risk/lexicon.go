// Package risk implements the deterministic risk stratification and
// crisis-escalation engine: lexical signal detection, suicidal ideation
// classification, violence threat analysis, child-harm screening, and the
// stratifier that folds the leaf assessments into one graded verdict.
//
// Every component is a pure function of its inputs. Keyword tables are loaded
// once from embedded YAML and shared read-only across evaluations.
package risk

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed lexicons/*.yaml
var lexiconFS embed.FS

// lexiconFile mirrors the YAML schema of one per-language lexicon.
type lexiconFile struct {
	Language       string   `yaml:"language"`
	LexicalSignals []string `yaml:"lexical_signals"`
	Ideation       struct {
		Active  []string `yaml:"active"`
		Passive []string `yaml:"passive"`
	} `yaml:"ideation"`
	Probes struct {
		Plan      []string `yaml:"plan"`
		Means     []string `yaml:"means"`
		Intent    []string `yaml:"intent"`
		Immediacy []string `yaml:"immediacy"`
	} `yaml:"probes"`
	Factors struct {
		Protective []string `yaml:"protective"`
		Risk       []string `yaml:"risk"`
	} `yaml:"factors"`
	Violence struct {
		Explicit       []string `yaml:"explicit"`
		PlanIndicators []string `yaml:"plan_indicators"`
		Targets        []string `yaml:"targets"`
		Discharge      []string `yaml:"discharge"`
	} `yaml:"violence"`
	ChildHarm []string `yaml:"child_harm"`
}

// Lexicon holds the compiled keyword tables for one language.
type Lexicon struct {
	Language string

	signals         phraseSet
	ideationActive  phraseSet
	ideationPassive phraseSet

	planProbe      phraseSet
	meansProbe     phraseSet
	intentProbe    phraseSet
	immediacyProbe phraseSet

	protective phraseSet
	riskwords  phraseSet

	violenceExplicit  phraseSet
	violencePlan      phraseSet
	violenceTargets   phraseSet
	violenceDischarge phraseSet

	childHarm phraseSet
}

func compileLexicon(f *lexiconFile) (*Lexicon, error) {
	if f.Language == "" {
		return nil, fmt.Errorf("lexicon is missing a language tag")
	}
	if len(f.LexicalSignals) == 0 || len(f.ChildHarm) == 0 {
		return nil, fmt.Errorf("lexicon %q is missing required categories", f.Language)
	}

	return &Lexicon{
		Language:          f.Language,
		signals:           newPhraseSet(f.LexicalSignals),
		ideationActive:    newPhraseSet(f.Ideation.Active),
		ideationPassive:   newPhraseSet(f.Ideation.Passive),
		planProbe:         newPhraseSet(f.Probes.Plan),
		meansProbe:        newPhraseSet(f.Probes.Means),
		intentProbe:       newPhraseSet(f.Probes.Intent),
		immediacyProbe:    newPhraseSet(f.Probes.Immediacy),
		protective:        newPhraseSet(f.Factors.Protective),
		riskwords:         newPhraseSet(f.Factors.Risk),
		violenceExplicit:  newPhraseSet(f.Violence.Explicit),
		violencePlan:      newPhraseSet(f.Violence.PlanIndicators),
		violenceTargets:   newPhraseSet(f.Violence.Targets),
		violenceDischarge: newPhraseSet(f.Violence.Discharge),
		childHarm:         newPhraseSet(f.ChildHarm),
	}, nil
}

// LexiconSet holds every loaded lexicon plus a BCP-47 matcher that resolves
// caller-supplied tags ("es-AR", "en-GB") to the closest supported language.
// English is the fallback for unknown tags.
type LexiconSet struct {
	byTag    map[string]*Lexicon
	tags     []language.Tag
	matcher  language.Matcher
	fallback *Lexicon
}

// LoadLexicons decodes and compiles every embedded lexicon file.
func LoadLexicons() (*LexiconSet, error) {
	entries, err := fs.Glob(lexiconFS, "lexicons/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("globbing lexicons: %w", err)
	}
	sort.Strings(entries)

	set := &LexiconSet{byTag: make(map[string]*Lexicon)}

	for _, name := range entries {
		data, err := lexiconFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading lexicon %s: %w", name, err)
		}

		var f lexiconFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decoding lexicon %s: %w", name, err)
		}

		lex, err := compileLexicon(&f)
		if err != nil {
			return nil, fmt.Errorf("compiling lexicon %s: %w", name, err)
		}

		tag, err := language.Parse(lex.Language)
		if err != nil {
			return nil, fmt.Errorf("lexicon %s has invalid language %q: %w", name, lex.Language, err)
		}

		set.byTag[lex.Language] = lex
		set.tags = append(set.tags, tag)
	}

	if len(set.byTag) == 0 {
		return nil, fmt.Errorf("no lexicons embedded")
	}

	// English first in the matcher so it wins for unmatchable tags.
	sort.Slice(set.tags, func(i, j int) bool {
		if set.tags[i] == language.English {
			return set.tags[j] != language.English
		}
		return false
	})
	set.matcher = language.NewMatcher(set.tags)

	if en, ok := set.byTag["en"]; ok {
		set.fallback = en
	} else {
		set.fallback = set.byTag[set.tags[0].String()]
	}

	return set, nil
}

// Languages lists the supported base language tags.
func (s *LexiconSet) Languages() []string {
	out := make([]string, 0, len(s.byTag))
	for tag := range s.byTag {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// ForLanguage resolves a caller-supplied BCP-47 tag to the closest supported
// lexicon. Empty or unparseable tags fall back to English.
func (s *LexiconSet) ForLanguage(tag string) *Lexicon {
	if tag == "" {
		return s.fallback
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return s.fallback
	}
	matched, _, conf := s.matcher.Match(parsed)
	if conf == language.No {
		return s.fallback
	}
	base, _ := matched.Base()
	if lex, ok := s.byTag[base.String()]; ok {
		return lex
	}
	return s.fallback
}
