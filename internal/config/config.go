package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port    string
	DBDSN   string
	AMQPURL string
	LogFile string
}

// Load reads configuration from environment variables with sane defaults.
// AMQP_URL may be empty, in which case event publishing is disabled.
func Load() Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DSN", "sutradhar.db")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("LOG_FILE", "")
	viper.AutomaticEnv()

	cfg := Config{
		Port:    viper.GetString("APP_PORT"),
		DBDSN:   viper.GetString("DB_DSN"),
		AMQPURL: viper.GetString("AMQP_URL"),
		LogFile: viper.GetString("LOG_FILE"),
	}
	log.Printf("[config] APP_PORT=%s DB_DSN=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.LogFile)
	return cfg
}
