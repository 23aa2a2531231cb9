package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from
// environment variables or a .env file.
type Config struct {
	Server     ServerConfig
	Postgres   PostgresConfig
	Indicators IndicatorsConfig
	Narration  NarrationConfig
	Scheduler  SchedulerConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// PostgresConfig defines connection details for the result store.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// IndicatorsConfig holds the upstream data-source endpoints and the
// analysis window.
type IndicatorsConfig struct {
	IndexURL      string
	SentimentURL  string
	CurrencyURL   string
	APIKey        string
	LookbackHours int
}

// NarrationConfig holds the language-model endpoint settings.
type NarrationConfig struct {
	BaseURL  string
	APIKey   string
	Model    string
	Provider string
}

// SchedulerConfig controls the periodic analysis loop.
type SchedulerConfig struct {
	Enabled  bool
	Interval time.Duration
}

// AppConfig is the globally accessible configuration instance,
// populated once via LoadConfig().
var AppConfig Config

// LoadConfig initializes AppConfig from defaults, an optional .env
// file, and environment variables (highest precedence). Missing
// required values terminate the process.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "macro_indicators")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("SP500_API_URL", "https://data.blackswan.wtf/v1/sp500/history")
	viper.SetDefault("FEAR_GREED_API_URL", "https://api.alternative.me/fng/")
	viper.SetDefault("CURRENCY_API_URL", "https://data.blackswan.wtf/v1/currency/history")
	viper.SetDefault("INDICATOR_API_KEY", "")
	viper.SetDefault("LOOKBACK_HOURS", 168)

	viper.SetDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	viper.SetDefault("OPENROUTER_MODEL", "openai/gpt-4o-mini")
	viper.SetDefault("NARRATION_PROVIDER", "openrouter")

	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("ANALYSIS_INTERVAL_MINUTES", 60)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Indicators: IndicatorsConfig{
			IndexURL:      viper.GetString("SP500_API_URL"),
			SentimentURL:  viper.GetString("FEAR_GREED_API_URL"),
			CurrencyURL:   viper.GetString("CURRENCY_API_URL"),
			APIKey:        viper.GetString("INDICATOR_API_KEY"),
			LookbackHours: viper.GetInt("LOOKBACK_HOURS"),
		},
		Narration: NarrationConfig{
			BaseURL:  viper.GetString("OPENROUTER_BASE_URL"),
			APIKey:   viper.GetString("OPENROUTER_API_KEY"),
			Model:    viper.GetString("OPENROUTER_MODEL"),
			Provider: viper.GetString("NARRATION_PROVIDER"),
		},
		Scheduler: SchedulerConfig{
			Enabled:  viper.GetBool("SCHEDULER_ENABLED"),
			Interval: time.Duration(viper.GetInt("ANALYSIS_INTERVAL_MINUTES")) * time.Minute,
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// validateConfig terminates the application when required variables
// are missing, so misconfiguration fails at startup rather than
// mid-cycle.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if AppConfig.Indicators.IndexURL == "" {
		missing = append(missing, "SP500_API_URL")
	}
	if AppConfig.Indicators.SentimentURL == "" {
		missing = append(missing, "FEAR_GREED_API_URL")
	}
	if AppConfig.Indicators.CurrencyURL == "" {
		missing = append(missing, "CURRENCY_API_URL")
	}
	if AppConfig.Indicators.LookbackHours <= 0 {
		missing = append(missing, "LOOKBACK_HOURS")
	}
	if AppConfig.Narration.BaseURL == "" {
		missing = append(missing, "OPENROUTER_BASE_URL")
	}
	if AppConfig.Narration.Model == "" {
		missing = append(missing, "OPENROUTER_MODEL")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
