package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

// GenerateReply gives Farum just enough personality for local development.
func (m *MockLLM) GenerateReply(ctx context.Context, userMessage string, convCtx domain.ConversationContext) (string, error) {
	if strings.HasPrefix(strings.ToLower(convCtx.Language), "es") {
		return fmt.Sprintf("Te escucho. Dijiste %q. Contame un poco más sobre cómo te hace sentir eso.", userMessage), nil
	}
	return fmt.Sprintf("I hear you. You said %q. Tell me a bit more about how that makes you feel.", userMessage), nil
}
