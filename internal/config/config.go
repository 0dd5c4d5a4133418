package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"docbot/internal/storage"
)

// Answer modes accepted by ANSWER_MODE.
const (
	ModeKeyword = "keyword"
	ModeLLM     = "llm"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort       string
	LogLevel      slog.Level
	LogFormat     string
	DBPath        string
	UploadDir     string
	MaxUploadMB   int64
	AnswerMode    string
	LLMBaseURL    string
	LLMAPIKey     string
	LLMModelName  string
	LLMTimeout    time.Duration
	PublicBaseURL string
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// fileConfig is the optional YAML file named by CONFIG_FILE. Every key can
// still be overridden by its environment variable.
type fileConfig struct {
	APIPort       int    `yaml:"api_port"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
	DBPath        string `yaml:"db_path"`
	UploadDir     string `yaml:"upload_dir"`
	MaxUploadMB   int64  `yaml:"max_upload_mb"`
	AnswerMode    string `yaml:"answer_mode"`
	LLMBaseURL    string `yaml:"llm_base_url"`
	LLMAPIKey     string `yaml:"llm_api_key"`
	LLMModel      string `yaml:"llm_model"`
	LLMTimeout    string `yaml:"llm_timeout"`
	PublicBaseURL string `yaml:"public_base_url"`
}

// defaults holds the values used when neither the YAML file nor the
// environment sets a key. ANSWER_MODE has no static default.
var defaults = map[string]string{
	"API_PORT":      "8000",
	"LOG_LEVEL":     "info",
	"LOG_FORMAT":    "text",
	"DB_PATH":       storage.MemoryPath,
	"UPLOAD_DIR":    "uploads",
	"MAX_UPLOAD_MB": "20",
	"LLM_BASE_URL":  "https://api.openai.com/v1",
	"LLM_MODEL":     "gpt-3.5-turbo",
	"LLM_TIMEOUT":   "60s",
}

// Load reads configuration from environment variables and returns a Config struct.
// If a .env file exists in the current directory or a parent directory, it is
// loaded first; variables already set take precedence over .env values.
// When CONFIG_FILE names a YAML file, its values replace the defaults and are
// in turn overridden by the environment.
func Load() (*Config, error) {
	loadDotEnv()

	values := make(map[string]string, len(defaults))
	for k, v := range defaults {
		values[k] = v
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(values, path); err != nil {
			return nil, err
		}
	}

	for k := range values {
		values[k] = getEnv(k, values[k])
	}
	for _, k := range []string{"ANSWER_MODE", "LLM_API_KEY", "PUBLIC_BASE_URL"} {
		values[k] = getEnv(k, values[k])
	}

	cfg := &Config{
		APIPort:       values["API_PORT"],
		LogFormat:     strings.ToLower(values["LOG_FORMAT"]),
		DBPath:        values["DB_PATH"],
		UploadDir:     values["UPLOAD_DIR"],
		AnswerMode:    strings.ToLower(values["ANSWER_MODE"]),
		LLMBaseURL:    values["LLM_BASE_URL"],
		LLMAPIKey:     values["LLM_API_KEY"],
		LLMModelName:  values["LLM_MODEL"],
		PublicBaseURL: strings.TrimRight(values["PUBLIC_BASE_URL"], "/"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(values["LOG_LEVEL"])); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}

	maxUpload, err := strconv.ParseInt(values["MAX_UPLOAD_MB"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be a valid integer: %w", err)
	}
	cfg.MaxUploadMB = maxUpload

	timeout, err := time.ParseDuration(values["LLM_TIMEOUT"])
	if err != nil {
		return nil, fmt.Errorf("LLM_TIMEOUT must be a duration such as 60s: %w", err)
	}
	cfg.LLMTimeout = timeout

	if cfg.AnswerMode == "" {
		cfg.AnswerMode = ModeKeyword
		if cfg.LLMAPIKey != "" {
			cfg.AnswerMode = ModeLLM
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Create the database directory for file-backed databases
	if !storage.IsMemory(cfg.DBPath) {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// Validate checks field values that Load cannot repair.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.APIPort); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("API_PORT must be a port number, got %q", c.APIPort)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be greater than 0")
	}
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be greater than 0")
	}

	switch c.AnswerMode {
	case ModeKeyword:
	case ModeLLM:
		if c.LLMAPIKey == "" {
			return fmt.Errorf("LLM_API_KEY is required when ANSWER_MODE is %s", ModeLLM)
		}
		if c.LLMBaseURL == "" {
			return fmt.Errorf("LLM_BASE_URL is required when ANSWER_MODE is %s", ModeLLM)
		}
	default:
		return fmt.Errorf("ANSWER_MODE must be %s or %s, got %q", ModeKeyword, ModeLLM, c.AnswerMode)
	}

	return nil
}

// loadDotEnv loads .env from the current directory or the closest parent that
// has one. Errors are ignored because the file is optional.
func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		_ = godotenv.Load()
		return
	}

	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// applyFile overlays the non-empty values of the YAML file at path.
func applyFile(values map[string]string, path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	set := func(key, value string) {
		if value != "" {
			values[key] = value
		}
	}
	if fc.APIPort != 0 {
		set("API_PORT", strconv.Itoa(fc.APIPort))
	}
	if fc.MaxUploadMB != 0 {
		set("MAX_UPLOAD_MB", strconv.FormatInt(fc.MaxUploadMB, 10))
	}
	set("LOG_LEVEL", fc.LogLevel)
	set("LOG_FORMAT", fc.LogFormat)
	set("DB_PATH", fc.DBPath)
	set("UPLOAD_DIR", fc.UploadDir)
	set("ANSWER_MODE", fc.AnswerMode)
	set("LLM_BASE_URL", fc.LLMBaseURL)
	set("LLM_API_KEY", fc.LLMAPIKey)
	set("LLM_MODEL", fc.LLMModel)
	set("LLM_TIMEOUT", fc.LLMTimeout)
	set("PUBLIC_BASE_URL", fc.PublicBaseURL)
	return nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
