package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults used when neither the environment nor a flag sets a value
const (
	DefaultInput  = "data/raw"
	DefaultOutput = "data/state_health_data.json"
	DefaultPort   = "8080"
)

// Config holds file and data locations for both commands
type Config struct {
	// Input is a directory, a .json/.xlsx file, or a postgres:// DSN
	Input  string
	Output string
	WebDir string
	Port   string
}

// Load reads .env files (when present) and then the environment
func Load(files ...string) *Config {
	if err := godotenv.Load(files...); err != nil {
		log.Println("config: no .env file found, using system environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only
func FromEnv() *Config {
	return &Config{
		Input:  getEnv("HEALTHDASH_INPUT", DefaultInput),
		Output: getEnv("HEALTHDASH_OUTPUT", DefaultOutput),
		WebDir: getEnv("HEALTHDASH_WEB_DIR", ""),
		Port:   getEnv("PORT", DefaultPort),
	}
}

// IsDatabase reports whether Input names a PostgreSQL DSN
func (c *Config) IsDatabase() bool {
	return strings.HasPrefix(c.Input, "postgres://") || strings.HasPrefix(c.Input, "postgresql://")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
