package oracle

import (
	"fmt"

	"github.com/backsoul/guesshuman/pkg/config"
)

// Endpoint compatible con OpenAI de Gemini (proveedor por defecto)
const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// NewFromConfig crea el oráculo según el proveedor configurado
func NewFromConfig(cfg *config.Config) (Oracle, error) {
	if cfg.OracleAPIKey == "" {
		return nil, fmt.Errorf("ORACLE_API_KEY no está configurada")
	}

	var c completer
	switch cfg.OracleProvider {
	case "gemini":
		model := cfg.OracleModel
		if model == "" {
			model = "gemini-2.5-flash-lite"
		}
		baseURL := cfg.OracleBaseURL
		if baseURL == "" {
			baseURL = geminiBaseURL
		}
		c = newOpenAICompleter(cfg.OracleAPIKey, model, baseURL)

	case "openai":
		model := cfg.OracleModel
		if model == "" {
			model = "gpt-4o-mini"
		}
		c = newOpenAICompleter(cfg.OracleAPIKey, model, cfg.OracleBaseURL)

	case "anthropic":
		model := cfg.OracleModel
		if model == "" {
			model = "claude-3-5-haiku-latest"
		}
		c = newAnthropicCompleter(cfg.OracleAPIKey, model)

	default:
		return nil, fmt.Errorf("proveedor de oráculo desconocido: %s (soportados: gemini, openai, anthropic)", cfg.OracleProvider)
	}

	return NewLLMOracle(c, cfg.OracleTimeout, cfg.OracleTemperature, cfg.OracleMaxTokens, nil), nil
}
