package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	BackfillTopic      string // Watermill topic for backfill jobs
	SchedulerCron      string // Empty disables the nightly backfill
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
	Debug      bool
}

type AuthConfig struct {
	ProviderURL     string // e.g. https://<project>.supabase.co
	AnonKey         string
	ServiceKey      string
	JwtSecret       string // When set, bearer tokens are verified locally
	TokenCacheTTL   int    // Seconds
	SecureCookies   bool
	ProviderTimeout int // Seconds
}

type AIConfig struct {
	LLMProvider    string // "openai" or "ollama"
	LLMModel       string
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OllamaBaseURL  string
	TimeoutSeconds int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	env := getEnv("GO_ENV", "development")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        env,
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			BackfillTopic:      getEnv("BACKFILL_TOPIC_NAME", "BACKFILL_USER_SUMMARIES"),
			SchedulerCron:      getEnv("SCHEDULER_CRON", ""),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Debug:      getEnvAsBool("DB_DEBUG", env != "production"),
		},
		Auth: AuthConfig{
			ProviderURL:     strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
			AnonKey:         getEnv("SUPABASE_KEY", ""),
			ServiceKey:      getEnv("SUPABASE_SERVICE_KEY", ""),
			JwtSecret:       getEnv("SUPABASE_JWT_SECRET", ""),
			TokenCacheTTL:   getEnvAsInt("TOKEN_CACHE_TTL_SECONDS", 300),
			SecureCookies:   getEnvAsBool("SECURE_COOKIES", env == "production"),
			ProviderTimeout: getEnvAsInt("AUTH_PROVIDER_TIMEOUT_SECONDS", 15),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "openai"),
			LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),
			OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			TimeoutSeconds: getEnvAsInt("LLM_TIMEOUT_SECONDS", 120),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
