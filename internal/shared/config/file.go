package config

import (
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Server struct {
		Port string `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	CORS struct {
		AllowOrigins []string `yaml:"allowOrigins"`
	} `yaml:"cors"`

	LLM struct {
		Provider       string `yaml:"provider"`
		Model          string `yaml:"model"`
		APIKey         string `yaml:"apiKey"`
		TimeoutSeconds int    `yaml:"timeoutSeconds"`
		PromptVersion  string `yaml:"promptVersion"`
	} `yaml:"llm"`

	Uploads struct {
		MaxBytes int64 `yaml:"maxBytes"`
	} `yaml:"uploads"`
}

// applyFile overlays values from a YAML config file onto cfg. Missing files
// and parse errors are logged and otherwise ignored; env vars still apply on
// top of whatever the file provided.
func applyFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("config: skip file %s: %v", path, err)
		return
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		log.Printf("config: parse %s: %v", path, err)
		return
	}

	if v := strings.TrimSpace(fc.Server.Port); v != "" {
		cfg.Port = v
	}
	if v := strings.TrimSpace(fc.Server.Env); v != "" {
		cfg.Env = normalizeEnv(v)
	}
	if len(fc.CORS.AllowOrigins) > 0 {
		cfg.CORSAllowOrigin = fc.CORS.AllowOrigins
	}
	if v := strings.TrimSpace(fc.LLM.Provider); v != "" {
		cfg.LLMProvider = normalizeProvider(v)
	}
	if v := strings.TrimSpace(fc.LLM.Model); v != "" {
		cfg.LLMModel = v
	}
	if v := strings.TrimSpace(fc.LLM.APIKey); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if fc.LLM.TimeoutSeconds > 0 {
		cfg.LLMTimeoutSecs = fc.LLM.TimeoutSeconds
	}
	if v := strings.TrimSpace(fc.LLM.PromptVersion); v != "" {
		cfg.PromptVersion = v
	}
	if fc.Uploads.MaxBytes > 0 {
		cfg.MaxUploadBytes = fc.Uploads.MaxBytes
	}
}
