package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis (optional; enables the shared rate-limit window)
	RedisURL string

	// AI provider
	Provider      string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	Model         string

	// Inbound rate limit for /api/chat (requests per minute per IP)
	ChatRateLimit int

	// Frontend
	FrontendURL string

	// Static client files served at /, if the directory exists
	StaticDir string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		Env:           getEnvOrDefault("ENV", "development"),
		DatabaseURL:   mustGetEnv("DATABASE_URL"),
		RedisURL:      getEnvOrDefault("REDIS_URL", ""),
		Provider:      getEnvOrDefault("AI_PROVIDER", ProviderGemini),
		OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", ""),
		ChatRateLimit: getEnvAsIntOrDefault("CHAT_RATE_LIMIT", 20),
		FrontendURL:   getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
		StaticDir:     getEnvOrDefault("STATIC_DIR", "./public"),
	}

	// Only the selected provider's key is required.
	switch cfg.Provider {
	case ProviderGemini:
		cfg.GeminiAPIKey = mustGetEnv("GEMINI_API_KEY")
		cfg.Model = getEnvOrDefault("AI_MODEL", "gemini-2.0-flash")
	case ProviderOpenAI:
		cfg.OpenAIAPIKey = mustGetEnv("OPENAI_API_KEY")
		cfg.Model = getEnvOrDefault("AI_MODEL", "gpt-4o-mini")
	default:
		panic(fmt.Sprintf("unknown AI_PROVIDER %q (expected %q or %q)", cfg.Provider, ProviderGemini, ProviderOpenAI))
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
