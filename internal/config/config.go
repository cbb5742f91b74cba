package config

import "github.com/spf13/viper"

type Config struct {
	ServerPort     string `mapstructure:"SERVER_PORT"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	LogFormat      string `mapstructure:"LOG_FORMAT"`
	MetricsEnabled bool   `mapstructure:"METRICS_ENABLED"`
}

func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SERVER_PORT", ":8080")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("METRICS_ENABLED", true)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}
