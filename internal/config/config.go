package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the service reads from the environment (or an
// optional config file). Thresholds are deployment constants, not
// user-adjustable at runtime.
type Config struct {
	HTTPAddr     string
	DatabaseURL  string
	RedisAddr    string
	JWTSecret    string
	QueryTimeout time.Duration

	Thresholds Thresholds
	SMTP       SMTPConfig
	PayPal     PayPalConfig
}

// Thresholds drive the notification selector.
type Thresholds struct {
	LowStock    int
	HighStock   int
	LowRevenue  float64
	HighRevenue float64
}

type SMTPConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	From         string
	To           string
	AuthDisabled bool
}

type PayPalConfig struct {
	ClientID string
	Secret   string
	Mode     string // sandbox or live
}

// Load reads configuration from environment variables (SALESPILOT_ prefix)
// with an optional salespilot.yaml next to the binary taking lower precedence.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SALESPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("query.timeout", "3s")
	v.SetDefault("thresholds.low_stock", 10)
	v.SetDefault("thresholds.high_stock", 1000)
	v.SetDefault("thresholds.low_revenue", 1000)
	v.SetDefault("thresholds.high_revenue", 10000)
	v.SetDefault("paypal.mode", "sandbox")

	v.SetConfigName("salespilot")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		HTTPAddr:     v.GetString("http.addr"),
		DatabaseURL:  v.GetString("database.url"),
		RedisAddr:    v.GetString("redis.addr"),
		JWTSecret:    v.GetString("jwt.secret"),
		QueryTimeout: v.GetDuration("query.timeout"),
		Thresholds: Thresholds{
			LowStock:    v.GetInt("thresholds.low_stock"),
			HighStock:   v.GetInt("thresholds.high_stock"),
			LowRevenue:  v.GetFloat64("thresholds.low_revenue"),
			HighRevenue: v.GetFloat64("thresholds.high_revenue"),
		},
		SMTP: SMTPConfig{
			Host:         v.GetString("smtp.host"),
			Port:         v.GetString("smtp.port"),
			User:         v.GetString("smtp.user"),
			Password:     v.GetString("smtp.pass"),
			From:         v.GetString("smtp.from"),
			To:           v.GetString("smtp.to"),
			AuthDisabled: v.GetBool("smtp.auth_disabled"),
		},
		PayPal: PayPalConfig{
			ClientID: v.GetString("paypal.client_id"),
			Secret:   v.GetString("paypal.secret"),
			Mode:     v.GetString("paypal.mode"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with before any
// connection is opened.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("SALESPILOT_DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("SALESPILOT_JWT_SECRET is required")
	}
	if c.Thresholds.LowStock < 0 || c.Thresholds.HighStock <= c.Thresholds.LowStock {
		return fmt.Errorf("invalid stock thresholds: low=%d high=%d", c.Thresholds.LowStock, c.Thresholds.HighStock)
	}
	if c.Thresholds.LowRevenue < 0 || c.Thresholds.HighRevenue <= c.Thresholds.LowRevenue {
		return fmt.Errorf("invalid revenue thresholds: low=%.2f high=%.2f", c.Thresholds.LowRevenue, c.Thresholds.HighRevenue)
	}
	return nil
}
