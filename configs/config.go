package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

func ConfigOr(key, fallback string) string {
	if val := Config(key); val != "" {
		return val
	}
	return fallback
}

// MustConfig aborts startup when a required key is absent. Webhook secrets
// and API keys must never fall back to an insecure default.
func MustConfig(key string) string {
	val := Config(key)
	if val == "" {
		log.Fatalf("🔥 Missing required configuration: %s", key)
	}
	return val
}
