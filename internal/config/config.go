package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Jwt      JwtConfig
	Chat     ChatConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	MongoURI    string
	MongoDBName string
}

type JwtConfig struct {
	Secret        string
	Algorithm     string
	ExpiryMinutes int
}

type ChatConfig struct {
	// MaxQueryLength bounds inbound queries; longer queries are rejected
	// before any model call.
	MaxQueryLength int
	// ResponseTimeout bounds every LLM invocation.
	ResponseTimeout time.Duration
}

type AIConfig struct {
	Provider       string // "openai" or "ollama"
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OllamaBaseURL  string
	DashboardModel string
	SettingsModel  string
	ExtensionModel string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001"),
		},
		Database: DatabaseConfig{
			MongoURI:    getEnv("MONGODB_URL", "mongodb://localhost:27017"),
			MongoDBName: getEnv("MONGODB_DB_NAME", "goodlife"),
		},
		Jwt: JwtConfig{
			Secret:        getEnv("JWT_SECRET_KEY", "secret_key"),
			Algorithm:     getEnv("JWT_ALGORITHM", "HS256"),
			ExpiryMinutes: getEnvAsInt("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 1440),
		},
		Chat: ChatConfig{
			MaxQueryLength:  getEnvAsInt("MAX_QUERY_LENGTH", 500),
			ResponseTimeout: time.Duration(getEnvAsInt("DEFAULT_RESPONSE_TIMEOUT", 30)) * time.Second,
		},
		Ai: AIConfig{
			Provider:       getEnv("LLM_PROVIDER", "openai"),
			OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			DashboardModel: getEnv("DASHBOARD_MODEL", "gpt-4o"),
			SettingsModel:  getEnv("SETTINGS_MODEL", "gpt-3.5-turbo"),
			ExtensionModel: getEnv("EXTENSION_MODEL", "gpt-3.5-turbo-0125"),
		},
	}
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
