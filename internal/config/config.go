package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	Environment string
	SkipAuth    bool

	// MongoURI enables the durable audit sink when set. Entity state itself
	// is always in-memory and reseeded on restart.
	MongoURI string
	DBName   string

	// Gemini-style generative AI endpoint used by the assistant feature.
	AIAPIKey  string
	AIBaseURL string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		Environment: getEnv("ENVIRONMENT", "development"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		MongoURI:    getEnv("MONGO_URI", ""),
		DBName:      getEnv("DB_NAME", "kliernav-crm"),
		AIAPIKey:    getEnv("GEMINI_API_KEY", ""),
		AIBaseURL:   getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
