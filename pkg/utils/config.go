package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Token     TokenConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr string
}

// StorageConfig selects the store backend: memory, postgres, or redis.
type StorageConfig struct {
	Backend string
}

type TokenConfig struct {
	ExpiryMinutes int
}

// Expiry returns the token lifetime as a duration.
func (c TokenConfig) Expiry() time.Duration {
	return time.Duration(c.ExpiryMinutes) * time.Minute
}

type RateLimitConfig struct {
	PerMinute int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "qr-attendance")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("STORAGE_BACKEND", "memory")
	viper.SetDefault("TOKEN_EXPIRY_MINUTES", 5)
	viper.SetDefault("RATE_LIMIT_PER_MIN", 120)

	// .env is optional; environment variables still apply without it
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr: viper.GetString("REDIS_ADDR"),
		},
		Storage: StorageConfig{
			Backend: viper.GetString("STORAGE_BACKEND"),
		},
		Token: TokenConfig{
			ExpiryMinutes: viper.GetInt("TOKEN_EXPIRY_MINUTES"),
		},
		RateLimit: RateLimitConfig{
			PerMinute: viper.GetInt("RATE_LIMIT_PER_MIN"),
		},
	}

	return config, nil
}
