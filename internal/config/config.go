package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Data      DataConfig      `mapstructure:"data"`
	API       APIConfig       `mapstructure:"api"`
	Stats     StatsConfig     `mapstructure:"stats"`
	Deadlines DeadlinesConfig `mapstructure:"deadlines"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

// DataConfig points at the scraped feed and the optional saved
// user-state overlay.
type DataConfig struct {
	FeedPath        string `mapstructure:"feed_path"`
	PreferencesPath string `mapstructure:"preferences_path"`
}

type APIConfig struct {
	RateLimit        float64  `mapstructure:"rate_limit"`
	RateBurst        int      `mapstructure:"rate_burst"`
	CacheMaxAge      int      `mapstructure:"cache_max_age"`
	CORSAllowOrigins []string `mapstructure:"cors_allow_origins"`
}

type StatsConfig struct {
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

type DeadlinesConfig struct {
	WindowDays int `mapstructure:"window_days"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("data.feed_path", "data/notifications.json")
	viper.SetDefault("data.preferences_path", "data/preferences.json")
	viper.SetDefault("api.rate_limit", 50)
	viper.SetDefault("api.rate_burst", 100)
	viper.SetDefault("api.cache_max_age", 30)
	viper.SetDefault("stats.cache_ttl_seconds", 60)
	viper.SetDefault("deadlines.window_days", 30)

	if err := viper.ReadInConfig(); err != nil {
		// Defaults plus environment are enough to run.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
