package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const devSessionSecret = "cafedir-development-secret"

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Currency CurrencyConfig
}

type AppConfig struct {
	Env  string
	Port string
}

type DatabaseConfig struct {
	Driver string // sqlite or postgres
	DSN    string
}

type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

type LogConfig struct {
	Level  string
	Format string
}

type HTTPConfig struct {
	CORSAllowOrigins []string
}

type CurrencyConfig struct {
	Symbol string
}

// Load reads configuration from an optional config.toml, an optional .env file
// and CAFE_* environment variables, in increasing order of priority.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("CAFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Driver: v.GetString("database.driver"),
			DSN:    v.GetString("database.dsn"),
		},
		Session: SessionConfig{
			Secret:     v.GetString("session.secret"),
			TTL:        v.GetDuration("session.ttl"),
			CookieName: v.GetString("session.cookie_name"),
			Secure:     v.GetBool("session.secure"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		HTTP: HTTPConfig{
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
		},
		Currency: CurrencyConfig{
			Symbol: v.GetString("currency.symbol"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8083"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "cafes.db"
	}
	if cfg.Session.Secret == "" && !cfg.IsProduction() {
		cfg.Session.Secret = devSessionSecret
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 12 * time.Hour
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "session"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.IsProduction() {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if len(cfg.HTTP.CORSAllowOrigins) == 0 {
		cfg.HTTP.CORSAllowOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Currency.Symbol == "" {
		cfg.Currency.Symbol = "£"
	}
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Session.Secret == "" {
		return errors.New("session.secret is required in production")
	}

	if c.Session.TTL < time.Minute {
		return fmt.Errorf("session.ttl %s is too short", c.Session.TTL)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
