package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Env          string
	DBPath       string
	PhotoDir     string
	DefaultImage string
	APIToken     string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRefreshToken string
}

var AppConfig *Config

func Load() {
	_ = godotenv.Load()

	AppConfig = &Config{
		Port:         GetEnv("PORT", "3000"),
		Env:          GetEnv("ENV", "development"),
		DBPath:       GetEnv("DB_PATH", "./data/contacts.db"),
		PhotoDir:     GetEnv("PHOTO_DIR", "./data/photos"),
		DefaultImage: GetEnv("DEFAULT_IMAGE", "./static/default-avatar.jpg"),
		APIToken:     GetEnv("API_TOKEN", ""),

		GoogleClientID:     GetEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: GetEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRefreshToken: GetEnv("GOOGLE_REFRESH_TOKEN", ""),
	}
}

// BackupEnabled reports whether Drive credentials are configured
func (c *Config) BackupEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRefreshToken != ""
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
