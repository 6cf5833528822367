// Package classifier adapts external models to domain.SeverityClassifier.
// The risk engine treats these as best-effort: any failure here degrades to
// the engine's lexical confidence path.
package classifier

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"google.golang.org/genai"
)

const scoringPrompt = `You are a triage scoring model. Given a user message, answer with ONLY a decimal number between 0.0 and 1.0: the probability that the message expresses self-harm or suicidal ideation. No words, no explanation, just the number.`

// VertexClassifier asks a Gemini model for a self-harm confidence score.
type VertexClassifier struct {
	client    *genai.Client
	modelName string
}

// NewVertexClassifier creates a classifier backed by Vertex AI.
// Reuses the same project/region environment as the LLM adapter.
func NewVertexClassifier(ctx context.Context) (*VertexClassifier, error) {
	projectID := os.Getenv("SENTINEL_GCP_PROJECT")
	location := os.Getenv("SENTINEL_GCP_LOCATION")
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("SENTINEL_GCP_PROJECT and SENTINEL_GCP_LOCATION must be set")
	}

	modelName := os.Getenv("SENTINEL_CLASSIFIER_MODEL")
	if modelName == "" {
		modelName = "gemini-2.5-flash-lite"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &VertexClassifier{
		client:    client,
		modelName: modelName,
	}, nil
}

// Confidence implements domain.SeverityClassifier.
func (v *VertexClassifier) Confidence(ctx context.Context, text string) (float64, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	// Deterministic decoding: this is a scorer, not a writer.
	temp := float32(0.0)
	outputTokens := int32(8)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(scoringPrompt, genai.RoleUser),
		Temperature:       &temp,
		MaxOutputTokens:   outputTokens,
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		return 0, fmt.Errorf("vertex classifier: %w", err)
	}

	raw := strings.TrimSpace(res.Text())
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("vertex classifier returned non-numeric score %q: %w", raw, err)
	}
	if score < 0 || score > 1 {
		return 0, fmt.Errorf("vertex classifier returned out-of-range score %v", score)
	}

	return score, nil
}
