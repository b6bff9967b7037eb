package classifier

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"lead_triage_backend/internal/leads/transport"
)

// GeminiConfig configures the Gemini classifier backend.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// GeminiClassifier labels leads through the Gemini API.
type GeminiClassifier struct {
	config GeminiConfig
	client *genai.Client
}

func NewGeminiClassifier(ctx context.Context, cfg GeminiConfig) (*GeminiClassifier, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClassifier{config: cfg, client: client}, nil
}

func (g *GeminiClassifier) Classify(ctx context.Context, lead transport.Lead) (transport.Intent, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(BuildPrompt(lead)), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0),
		MaxOutputTokens: 150,
	})
	if err != nil {
		return transport.Intent{}, err
	}

	intent, ok := ParseIntent(resp.Text())
	if !ok {
		return transport.Intent{}, fmt.Errorf("classifier returned no parseable intent")
	}
	return intent, nil
}
