package risk

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
	"github.com/PabloGalante/farum-sentinel/internal/observability"
)

const (
	// Confidence attached when the lexical fast path fires.
	fastPathConfidence = 0.95

	// Lexical-only substitutes used when no external classifier is
	// configured or the classifier call fails.
	lexicalPositiveConfidence = 0.9
	lexicalNegativeConfidence = 0.1

	defaultClassifierTimeout = 2 * time.Second
)

// Engine evaluates one message at a time. It holds no per-user state: history
// is caller-supplied and read-only, and every assessment is built fresh. The
// optional external classifier is the engine's single suspend point; its call
// is bounded by a timeout and always degrades to the lexical path.
type Engine struct {
	lexicons          *LexiconSet
	classifier        domain.SeverityClassifier
	classifierTimeout time.Duration
	now               func() time.Time
}

type Option func(*Engine)

// WithClassifier attaches an external confidence classifier. A timeout of
// zero keeps the default budget.
func WithClassifier(c domain.SeverityClassifier, timeout time.Duration) Option {
	return func(e *Engine) {
		e.classifier = c
		if timeout > 0 {
			e.classifierTimeout = timeout
		}
	}
}

// WithClock overrides the clock, mainly for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(lexicons *LexiconSet, opts ...Option) *Engine {
	e := &Engine{
		lexicons:          lexicons,
		classifierTimeout: defaultClassifierTimeout,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EvaluateInput carries one message through a full evaluation.
type EvaluateInput struct {
	Text     string
	Language string // BCP-47 tag; empty falls back to English
	History  *domain.UserHistory
}

// Evaluate runs the five leaf components and the stratifier for one message.
// It never returns an error: empty input yields a NONE verdict at confidence
// zero, and a failing classifier falls back to lexical confidence.
func (e *Engine) Evaluate(ctx context.Context, in EvaluateInput) *domain.ComprehensiveAssessment {
	if strings.TrimSpace(in.Text) == "" {
		return &domain.ComprehensiveAssessment{
			Level:             domain.RiskNone,
			RecommendedAction: domain.ActionContinueConversation,
			Protocol:          domain.ProtocolNone,
			Monitoring:        domain.MonitorAsNeeded,
			Reasoning:         []string{"No assessable input"},
			Timestamp:         e.now(),
		}
	}

	lex := e.lexicons.ForLanguage(in.Language)

	suicidal := e.AssessSuicideRisk(ctx, in.Text, lex)
	violence := lex.AssessViolence(in.Text, in.History)
	childHarm := lex.ScreenChildHarm(in.Text)

	return e.Stratify(&suicidal, &violence, &childHarm, in.History)
}

// AssessSuicideRisk builds the self-harm leaf assessment. A lexical signal
// match short-circuits confidence to the fast-path value; it never suppresses
// the classification path or forces a negative outcome.
func (e *Engine) AssessSuicideRisk(ctx context.Context, text string, lex *Lexicon) domain.SuicidalAssessment {
	matched, signals := lex.ScanSignals(text)
	ideation := lex.ClassifyIdeation(text)

	a := domain.SuicidalAssessment{
		Present:           matched || ideation != domain.IdeationNone,
		Ideation:          ideation,
		HasPlan:           lex.HasPlan(text),
		HasMeans:          lex.HasMeans(text),
		HasIntent:         lex.HasIntent(text),
		HasTimeline:       lex.HasTimeline(text),
		ProtectiveFactors: lex.ProtectiveFactors(text),
		RiskFactors:       lex.RiskFactors(text),
		MatchedSignals:    signals,
		Timestamp:         e.now(),
	}

	a.Confidence = e.confidence(ctx, text, matched, a.Present)
	return a
}

func (e *Engine) confidence(ctx context.Context, text string, lexicalMatch, present bool) float64 {
	if lexicalMatch {
		return fastPathConfidence
	}

	if e.classifier != nil {
		cctx, cancel := context.WithTimeout(ctx, e.classifierTimeout)
		defer cancel()

		c, err := e.classifier.Confidence(cctx, text)
		if err == nil {
			return math.Max(0, math.Min(c, 1))
		}
		observability.LoggerFromContext(ctx).Warn("severity classifier unavailable, using lexical confidence",
			"error", err)
	}

	if present {
		return lexicalPositiveConfidence
	}
	return lexicalNegativeConfidence
}

// Lexicons exposes the loaded lexicon set, mainly so callers can resolve a
// language once and reuse it across leaf calls.
func (e *Engine) Lexicons() *LexiconSet {
	return e.lexicons
}
