package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the environment configuration for the service.
type Config struct {
	DatabaseURL  string
	DatabaseName string
	Port         string
}

// Load reads configuration from the environment. A .env file is loaded
// first if present; it is optional and its absence is not an error.
func Load() *Config {
	_ = godotenv.Load()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_NAME", "vollara")
	viper.SetDefault("PORT", "8000")
	viper.AutomaticEnv()

	return &Config{
		DatabaseURL:  viper.GetString("DATABASE_URL"),
		DatabaseName: viper.GetString("DATABASE_NAME"),
		Port:         viper.GetString("PORT"),
	}
}
