package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// maxEmbedChars bounds the text sent to the embedding model (roughly the
// model's token budget).
const maxEmbedChars = 40000

type GeminiService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

// geminiService wraps a single genai client. The client is safe for
// concurrent use; one instance is shared by all batch workers.
type geminiService struct {
	client     *genai.Client
	textModel  string
	embedModel string

	maxRetries   int
	initialDelay time.Duration

	logger *zap.Logger
}

func NewGeminiService(ctx context.Context, apiKey, textModel, embedModel string, maxRetries int, initialDelay time.Duration, logger *zap.Logger) (GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if maxRetries < 1 {
		maxRetries = 1
	}

	return &geminiService{
		client:       client,
		textModel:    textModel,
		embedModel:   embedModel,
		maxRetries:   maxRetries,
		initialDelay: initialDelay,
		logger:       logger,
	}, nil
}

// Embed implements EmbeddingProvider. Transient provider errors are retried
// with exponential backoff; after exhaustion the last error is returned so the
// caller can surface it instead of a zero score.
func (g *geminiService) Embed(ctx context.Context, text string) ([]float32, error) {
	text = truncateRunes(text, maxEmbedChars)

	var lastErr error
	delay := g.initialDelay

	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
		if err == nil {
			if result == nil || len(result.Embeddings) == 0 {
				return nil, fmt.Errorf("empty embedding result")
			}
			return result.Embeddings[0].Values, nil
		}

		lastErr = err
		if attempt < g.maxRetries {
			g.logger.Warn("embedding attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", delay),
				zap.Error(err),
			)

			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", g.maxRetries, lastErr)
}

// truncateRunes cuts text to at most max runes, never mid-sequence in a
// multi-byte character.
func truncateRunes(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.textModel, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}
