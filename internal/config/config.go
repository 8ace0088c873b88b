package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the relay
type Config struct {
	// Server configuration
	ServerPort      string
	ShutdownTimeout time.Duration

	// OpenAI configuration
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// UpstreamStatus maps completion failures to distinct HTTP status codes.
	// When false every failure is reported with 200 and an "error" key.
	UpstreamStatus bool
}

// LoadConfig loads configuration from environment variables and command-line flags.
// Flags take precedence over environment variables.
//
// A missing API key is not an error: the first completion call fails with an
// authentication error instead.
func LoadConfig(args []string) (*Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	serverPort := fs.String("server-port", getEnv("SERVER_PORT", "8000"), "Server port")
	shutdownTimeout := fs.Duration("shutdown-timeout", getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second), "Graceful shutdown timeout")
	openAIKey := fs.String("openai-key", getEnv("OPENAI_API_KEY", ""), "OpenAI API key")
	openAIModel := fs.String("openai-model", getEnv("OPENAI_MODEL", "gpt-3.5-turbo"), "OpenAI model for chat completions")
	openAIBaseURL := fs.String("openai-base-url", getEnv("OPENAI_BASE_URL", ""), "Base URL of an OpenAI-compatible API (empty for the default)")
	upstreamStatus := fs.Bool("upstream-status", getEnvAsBool("UPSTREAM_STATUS", false), "Report completion failures with non-2xx status codes")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	cfg := &Config{
		ServerPort:      *serverPort,
		ShutdownTimeout: *shutdownTimeout,
		OpenAIAPIKey:    *openAIKey,
		OpenAIModel:     *openAIModel,
		OpenAIBaseURL:   *openAIBaseURL,
		UpstreamStatus:  *upstreamStatus,
	}

	if cfg.ServerPort == "" {
		return nil, fmt.Errorf("server port must not be empty")
	}
	if cfg.OpenAIModel == "" {
		return nil, fmt.Errorf("OPENAI_MODEL must not be empty (set via environment variable or -openai-model flag)")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
