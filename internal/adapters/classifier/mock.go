package classifier

import "context"

// MockClassifier returns a fixed confidence, useful for local mode and tests.
type MockClassifier struct {
	score float64
}

func NewMockClassifier(score float64) *MockClassifier {
	return &MockClassifier{score: score}
}

func (m *MockClassifier) Confidence(ctx context.Context, text string) (float64, error) {
	return m.score, nil
}
