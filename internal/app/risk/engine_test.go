package risk_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-sentinel/internal/app/risk"
	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

type stubClassifier struct {
	score float64
	err   error
	calls int
}

func (s *stubClassifier) Confidence(ctx context.Context, text string) (float64, error) {
	s.calls++
	return s.score, s.err
}

func TestEvaluateEmptyInput(t *testing.T) {
	e := newTestEngine(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		out := e.Evaluate(context.Background(), risk.EvaluateInput{Text: text})

		assert.Equal(t, domain.RiskNone, out.Level, "text %q", text)
		assert.Equal(t, domain.ActionContinueConversation, out.RecommendedAction)
		assert.Equal(t, domain.ProtocolNone, out.Protocol)
		assert.Equal(t, []string{"No assessable input"}, out.Reasoning)
		assert.Nil(t, out.Suicidal)
	}
}

func TestEvaluatePassiveIdeationIsNone(t *testing.T) {
	e := newTestEngine(t)

	out := e.Evaluate(context.Background(), risk.EvaluateInput{
		Text: "I don't want to live anymore",
	})

	require.NotNil(t, out.Suicidal)
	assert.Equal(t, domain.IdeationPassive, out.Suicidal.Ideation)
	assert.Equal(t, domain.RiskNone, out.Level)
	assert.Equal(t, domain.ProtocolNone, out.Protocol)
}

func TestEvaluateCrisisMessageIsHigh(t *testing.T) {
	e := newTestEngine(t)

	out := e.Evaluate(context.Background(), risk.EvaluateInput{
		Text: "I'm going to kill myself tonight, I have the pills",
	})

	require.NotNil(t, out.Suicidal)
	assert.Equal(t, domain.IdeationActiveWithPlan, out.Suicidal.Ideation)
	assert.True(t, out.Suicidal.HasPlan)
	assert.True(t, out.Suicidal.HasMeans)
	assert.True(t, out.Suicidal.HasIntent)
	assert.True(t, out.Suicidal.HasTimeline)

	assert.Equal(t, domain.RiskHigh, out.Level)
	assert.Equal(t, domain.ProtocolHighRisk, out.Protocol)
	assert.Equal(t, domain.MonitorImmediate, out.Monitoring)
	assert.True(t, out.ImmediateInterventionRequired)
}

func TestEvaluateChildHarmShortCircuit(t *testing.T) {
	e := newTestEngine(t)

	out := e.Evaluate(context.Background(), risk.EvaluateInput{
		Text: "I'm afraid I'll hurt the baby",
	})

	assert.Equal(t, domain.RiskCritical, out.Level)
	assert.Equal(t, domain.ProtocolChildProtection, out.Protocol)
	assert.True(t, out.ImmediateInterventionRequired)
}

func TestEvaluateSpanishLexicon(t *testing.T) {
	e := newTestEngine(t)

	out := e.Evaluate(context.Background(), risk.EvaluateInput{
		Text:     "me voy a matar esta noche, tengo las pastillas",
		Language: "es-AR",
	})

	require.NotNil(t, out.Suicidal)
	assert.Equal(t, domain.IdeationActiveWithPlan, out.Suicidal.Ideation)
	assert.Equal(t, domain.RiskHigh, out.Level)
}

func TestConfidenceFastPath(t *testing.T) {
	stub := &stubClassifier{score: 0.42}
	e := newTestEngine(t, risk.WithClassifier(stub, time.Second))

	// A lexical signal match short-circuits to the fast-path confidence and
	// never consults the classifier.
	out := e.Evaluate(context.Background(), risk.EvaluateInput{
		Text: "I want to die",
	})

	require.NotNil(t, out.Suicidal)
	assert.InDelta(t, 0.95, out.Suicidal.Confidence, 1e-9)
	assert.Zero(t, stub.calls)
}

func TestConfidenceClassifierPath(t *testing.T) {
	stub := &stubClassifier{score: 0.42}
	e := newTestEngine(t, risk.WithClassifier(stub, time.Second))

	// Passive phrasing outside the signal table: present, but resolved
	// through the classifier.
	out := e.Evaluate(context.Background(), risk.EvaluateInput{
		Text: "I wish I was dead",
	})

	require.NotNil(t, out.Suicidal)
	assert.True(t, out.Suicidal.Present)
	assert.InDelta(t, 0.42, out.Suicidal.Confidence, 1e-9)
	assert.Equal(t, 1, stub.calls)
}

func TestConfidenceClassifierErrorFallsBack(t *testing.T) {
	stub := &stubClassifier{err: errors.New("model unavailable")}
	e := newTestEngine(t, risk.WithClassifier(stub, time.Second))

	out := e.Evaluate(context.Background(), risk.EvaluateInput{
		Text: "I wish I was dead",
	})

	require.NotNil(t, out.Suicidal)
	assert.InDelta(t, 0.9, out.Suicidal.Confidence, 1e-9)
}

func TestConfidenceLexicalOnlyNegative(t *testing.T) {
	e := newTestEngine(t)

	out := e.Evaluate(context.Background(), risk.EvaluateInput{
		Text: "I had a lovely walk in the park",
	})

	require.NotNil(t, out.Suicidal)
	assert.False(t, out.Suicidal.Present)
	assert.InDelta(t, 0.1, out.Suicidal.Confidence, 1e-9)
	assert.Equal(t, domain.RiskNone, out.Level)
}

func TestConfidenceClassifierResultIsClamped(t *testing.T) {
	stub := &stubClassifier{score: 1.7}
	e := newTestEngine(t, risk.WithClassifier(stub, time.Second))

	out := e.Evaluate(context.Background(), risk.EvaluateInput{
		Text: "I wish I was dead",
	})

	require.NotNil(t, out.Suicidal)
	assert.InDelta(t, 1.0, out.Suicidal.Confidence, 1e-9)
}

func TestEvaluateUsesHistory(t *testing.T) {
	e := newTestEngine(t)
	in := risk.EvaluateInput{
		// 1 (passive): NONE without history, LOW with a previous attempt
		// on record.
		Text: "I don't want to live anymore",
	}

	base := e.Evaluate(context.Background(), in)
	assert.Equal(t, domain.RiskNone, base.Level)

	in.History = &domain.UserHistory{PreviousSuicideAttempt: true}
	flagged := e.Evaluate(context.Background(), in)
	assert.Equal(t, domain.RiskLow, flagged.Level)
}
