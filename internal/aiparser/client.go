package aiparser

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client abstracts the generative model backend so the parser can be tested
// without network access.
type Client interface {
	// Generate sends the prompt to the named model and returns its raw text
	// response.
	Generate(ctx context.Context, model, prompt string) (string, error)
	// Close releases the underlying connection.
	Close() error
}

// geminiClient is the production Client backed by the Gemini API.
type geminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a Gemini-backed Client. The API key is required;
// callers should fail fast before reading any document when it is missing.
func NewGeminiClient(ctx context.Context, apiKey string) (Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiClient{client: client}, nil
}

func (c *geminiClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	m := c.client.GenerativeModel(model)
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("model %s: %w", model, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model %s: empty response", model)
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", fmt.Errorf("model %s: response carried no text part", model)
	}
	return out, nil
}

func (c *geminiClient) Close() error {
	return c.client.Close()
}
