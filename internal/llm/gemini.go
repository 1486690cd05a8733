package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/medscribe/scribe-flow/internal/logger"
)

type implGemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

func newGemini(apiKeys []string, model string, log logger.Logger) Provider {
	return &implGemini{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

// Complete sends one prompt to Gemini. Rotates API keys on 429 / quota
// errors before giving up.
func (g *implGemini) Complete(ctx context.Context, system, user string) (string, error) {
	prompt := user
	if system != "" {
		prompt = system + "\n\n" + user
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key := g.nextKey(false)

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.nextKey(true)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			lastErr = err
			msg := err.Error()
			if strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Gemini key rate limited, rotating")
				g.nextKey(true)
				continue
			}
			return "", fmt.Errorf("gemini completion: %w", err)
		}

		return result.Text(), nil
	}

	return "", fmt.Errorf("gemini completion: all keys exhausted: %w", lastErr)
}

// nextKey returns the current key, advancing first when rotate is set.
func (g *implGemini) nextKey(rotate bool) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if rotate {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
	return g.apiKeys[g.currentKey]
}
