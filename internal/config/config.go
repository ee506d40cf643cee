package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration, loaded from a .env file
// and/or environment variables.
type Config struct {
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	DBDSN    string `mapstructure:"DB_DSN"`

	// Reply generator selection ("random" or "echo").
	ReplyProvider string `mapstructure:"REPLY_PROVIDER"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	RabbitURL   string `mapstructure:"RABBIT_URL"`
	RabbitQueue string `mapstructure:"RABBIT_QUEUE"`

	WorkerConcurrency int `mapstructure:"WORKER_CONCURRENCY"`
}

// Load reads configuration from ./.env (if present) and the environment.
// RedisAddr and RabbitURL are optional; when empty the stats pipeline is
// disabled and the core API runs standalone.
func Load() Config {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("DB_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=postgres port=5432 sslmode=disable")
	viper.SetDefault("REPLY_PROVIDER", "random")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RABBIT_URL", "")
	viper.SetDefault("RABBIT_QUEUE", "message_events")
	viper.SetDefault("WORKER_CONCURRENCY", 2)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("unable to decode config: %v", err)
	}
	return cfg
}
