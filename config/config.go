package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port    string `mapstructure:"port"`
		BaseURL string `mapstructure:"base_url"` // used to build plan view_url links
	} `mapstructure:"server"`
	Database struct {
		Driver string `mapstructure:"driver"` // "sqlite" or "postgres"
		DSN    string `mapstructure:"dsn"`    // "memory", a file path, or a postgres DSN
	} `mapstructure:"database"`
	Redis struct {
		Addr     string `mapstructure:"addr"` // empty disables redis-backed token revocation
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Auth struct {
		JWTSecret     string `mapstructure:"jwt_secret"`
		TokenTTLHours int    `mapstructure:"token_ttl_hours"`
	} `mapstructure:"auth"`
}

// AppConfig is the global configuration instance.
var AppConfig Config

// LoadConfig loads configuration from .env, config.yaml and environment variables.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: [Config] No .env file found, using system environment variables.")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../config") // for running from locations like tests

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.base_url", "http://localhost:8080")
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "memory")
	viper.SetDefault("auth.token_ttl_hours", 24)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration into AppConfig struct: %v", err)
	}

	// Environment variable overrides
	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		AppConfig.Server.BaseURL = baseURL
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		AppConfig.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		AppConfig.Database.DSN = dsn
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		AppConfig.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		AppConfig.Redis.Password = password
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		AppConfig.Auth.JWTSecret = secret
	}

	if AppConfig.Auth.JWTSecret == "" {
		log.Println("WARN: [Config] JWT secret is not set (auth.jwt_secret / JWT_SECRET). Sessions will not be verifiable across restarts.")
	}
	log.Println("INFO: [Config] Configuration loading complete.")
}
