package llm

import (
	"fmt"

	"github.com/medscribe/scribe-flow/internal/config"
	"github.com/medscribe/scribe-flow/internal/logger"
)

// New builds the configured Provider, or nil when llm.provider is "none"
// (the pipeline then runs on heuristics alone and skips summarization).
func New(cfg config.LLMConfig, log logger.Logger) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return newOpenAI(cfg.APIKey, cfg.Model), nil
	case "gemini":
		return newGemini(cfg.GeminiAPIKeys, cfg.Model, log), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
