package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	LLMProvider     string
	LLMModel        string
	OpenAIAPIKey    string
	LLMTimeoutSecs  int
	PromptVersion   string
	MaxUploadBytes  int64
}

const (
	defaultModel       = "gpt-4-turbo"
	defaultTimeoutSecs = 120
	defaultMaxUpload   = 5 << 20
)

// Load reads configuration from environment variables with sensible defaults.
// An optional YAML file named by DOLOSX_CONFIG is applied first; environment
// variables win over file values.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	cfg := Config{
		Port:            "8080",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LLMProvider:     "openai",
		LLMModel:        defaultModel,
		LLMTimeoutSecs:  defaultTimeoutSecs,
		PromptVersion:   "v1",
		MaxUploadBytes:  defaultMaxUpload,
	}

	if path := strings.TrimSpace(os.Getenv("DOLOSX_CONFIG")); path != "" {
		applyFile(&cfg, path)
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = normalizeEnv(getEnv("ENV", cfg.Env))
	if raw := os.Getenv("CORS_ALLOW_ORIGINS"); raw != "" {
		cfg.CORSAllowOrigin = splitAndTrim(raw)
	}
	cfg.LLMProvider = normalizeProvider(getEnv("LLM_PROVIDER", cfg.LLMProvider))
	cfg.LLMModel = getEnv("LLM_MODEL", cfg.LLMModel)
	cfg.OpenAIAPIKey = getEnv("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.PromptVersion = getEnv("PROMPT_VERSION", cfg.PromptVersion)
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			cfg.LLMTimeoutSecs = parsed
		}
	}
	if raw := strings.TrimSpace(os.Getenv("MAX_UPLOAD_BYTES")); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			cfg.MaxUploadBytes = parsed
		}
	}

	return cfg
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return "openai"
	}
	return trimmed
}
