package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries the environment-driven settings for the service.
type Config struct {
	Port            string
	GeminiAPIKey    string
	GeminiTextModel string
	GeminiImgModel  string
	LogFile         string
	SeedDemoData    bool
}

// Load reads .env (if present) and resolves the configuration with defaults.
func Load() Config {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiTextModel: getEnv("GEMINI_TEXT_MODEL", "gemini-3-flash-preview"),
		GeminiImgModel:  getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		LogFile:         getEnv("LOG_FILE", "./logs/app.log"),
		SeedDemoData:    getEnv("SEED_DEMO_DATA", "true") == "true",
	}
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
