package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	APIBaseURL  string
	UploadsURL  string
	SessionFile string
	Env         string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		APIBaseURL:  getEnv("API_BASE_URL", "https://mera.dubaivisionhub.com/api"),
		UploadsURL:  getEnv("UPLOADS_URL", "https://mera.dubaivisionhub.com"),
		SessionFile: getEnv("SESSION_FILE", defaultSessionFile()),
		Env:         getEnv("ENV", "development"),
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".adminpanel/session.json"
	}
	return filepath.Join(home, ".adminpanel", "session.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
