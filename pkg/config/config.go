package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string
}

type SheetAPIConfig struct {
	// URL of the sheet-backed store endpoint (Apps Script web app).
	URL     string
	Timeout time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

type AuthConfig struct {
	DefaultAdminID       string
	DefaultAdminPassword string
}

type TranslatorConfig struct {
	// Empty URL disables remote translation; text is echoed back.
	URL string
}

type Config struct {
	Server     ServerConfig
	SheetAPI   SheetAPIConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Auth       AuthConfig
	Translator TranslatorConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		SheetAPI: SheetAPIConfig{
			URL:     getEnv("SHEET_API_URL", "http://localhost:9090/exec"),
			Timeout: getDuration("SHEET_API_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET_KEY", "2F8E1C9B4A7D5E3F6C8B1A9D7E5F3C1B"),
			AccessTokenTTL: getDuration("JWT_ACCESS_TTL", 24*time.Hour),
		},
		Auth: AuthConfig{
			DefaultAdminID:       getEnv("DEFAULT_ADMIN_ID", "Admin"),
			DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "123"),
		},
		Translator: TranslatorConfig{
			URL: getEnv("TRANSLATOR_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration in %s, using default %s", key, fallback)
	}
	return fallback
}
