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
	Media    MediaConfig
	Legacy   LegacyConfig
	Events   EventsConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type MediaConfig struct {
	StorageRoot   string
	SigningSecret string
	SignedURLTTL  time.Duration
}

type LegacyConfig struct {
	SourceDir     string
	ImportWorkers int
}

type EventsConfig struct {
	PostContentTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Media: MediaConfig{
			StorageRoot:   getEnv("MEDIA_STORAGE_ROOT", "./storage/media"),
			SigningSecret: getEnv("MEDIA_SIGNING_SECRET", ""),
			SignedURLTTL:  time.Duration(getEnvAsInt("MEDIA_SIGNED_URL_TTL_MINUTES", 60)) * time.Minute,
		},
		Legacy: LegacyConfig{
			SourceDir:     getEnv("LEGACY_SOURCE_DIR", "./legacy-export"),
			ImportWorkers: getEnvAsInt("LEGACY_IMPORT_WORKERS", 4),
		},
		Events: EventsConfig{
			PostContentTopic: getEnv("POST_CONTENT_TOPIC_NAME", "POST_CONTENT_CHANGED"),
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
