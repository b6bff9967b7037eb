package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"lead_triage_backend/internal/leads/transport"
)

// OpenAIConfig configures any OpenAI-compatible chat completions endpoint
// (Groq, Moonshot, OpenAI itself).
type OpenAIConfig struct {
	APIURL string
	APIKey string
	Model  string
}

// OpenAIClassifier calls an OpenAI-compatible chat completions API.
type OpenAIClassifier struct {
	config OpenAIConfig
	client *http.Client
}

func NewOpenAIClassifier(cfg OpenAIConfig) *OpenAIClassifier {
	if cfg.Model == "" {
		cfg.Model = "llama-3.3-70b-versatile"
	}
	return &OpenAIClassifier{
		config: cfg,
		client: &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error any `json:"error"`
}

func (c *OpenAIClassifier) Classify(ctx context.Context, lead transport.Lead) (transport.Intent, error) {
	payload := chatRequest{
		Model:       c.config.Model,
		Messages:    []chatMessage{{Role: "user", Content: BuildPrompt(lead)}},
		MaxTokens:   150,
		Temperature: 0,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return transport.Intent{}, fmt.Errorf("encode classifier request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return transport.Intent{}, fmt.Errorf("build classifier request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return transport.Intent{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return transport.Intent{}, fmt.Errorf("classifier api returned %d", resp.StatusCode)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return transport.Intent{}, fmt.Errorf("decode classifier response: %w", err)
	}
	if result.Error != nil {
		return transport.Intent{}, fmt.Errorf("classifier api error: %v", result.Error)
	}
	if len(result.Choices) == 0 {
		return transport.Intent{}, fmt.Errorf("classifier api error: empty choices")
	}

	intent, ok := ParseIntent(result.Choices[0].Message.Content)
	if !ok {
		return transport.Intent{}, fmt.Errorf("classifier returned no parseable intent")
	}
	return intent, nil
}
