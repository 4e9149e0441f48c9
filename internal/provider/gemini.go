package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"meeting-insights-go/internal/logger"
)

// Gemini calls the Gemini API, rotating through the supplied API keys when a
// key is rate limited or out of quota. One instance is shared by all workers,
// so the rotation cursor is mutex-guarded.
type Gemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
}

func NewGemini(apiKeys []string, model string) *Gemini {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Gemini{apiKeys: apiKeys, model: model}
}

func (g *Gemini) Name() string { return "gemini" }

// Generate sends the prompt to Gemini. Quota errors rotate to the next key
// before giving up.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("gemini: no API keys configured")
	}
	log := logger.New().WithField("provider", g.Name())

	var lastErr error
	for range g.apiKeys {
		key := g.takeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			if isQuotaError(err) {
				log.WithError(err).Warn("key rate limited, rotating")
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				text.WriteString(part.Text)
			}
			return text.String(), nil
		}
		return "", fmt.Errorf("empty response from gemini")
	}

	return "", fmt.Errorf("all gemini API keys exhausted: %w", lastErr)
}

func (g *Gemini) takeKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey]
}

func (g *Gemini) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
