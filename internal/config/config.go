package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the full runtime configuration. Values come from an optional yaml
// file overridden by STOREFRONT_* environment variables (double underscore
// for nesting, e.g. STOREFRONT_BACKEND__BASE_URL).
type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout     time.Duration `koanf:"read_timeout"`
		WriteTimeout    time.Duration `koanf:"write_timeout"`
		IdleTimeout     time.Duration `koanf:"idle_timeout"`
		RequestTimeout  time.Duration `koanf:"request_timeout"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	} `koanf:"http"`

	Backend struct {
		BaseURL string        `koanf:"base_url"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"backend"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Auth struct {
		AutoLoginOnRegister bool          `koanf:"auto_login_on_register"`
		CookieSecret        string        `koanf:"cookie_secret"`
		VisitorTTL          time.Duration `koanf:"visitor_ttl"`
	} `koanf:"auth"`
}

func defaults() Config {
	var c Config
	c.App.Name = "storefront"
	c.App.HTTPAddr = ":8080"
	c.App.LogLevel = "info"
	c.HTTP.ReadTimeout = 10 * time.Second
	c.HTTP.WriteTimeout = 10 * time.Second
	c.HTTP.IdleTimeout = 60 * time.Second
	c.HTTP.RequestTimeout = 30 * time.Second
	c.HTTP.ShutdownTimeout = 10 * time.Second
	c.Backend.BaseURL = "http://localhost:5555"
	c.Backend.Timeout = 15 * time.Second
	c.Auth.AutoLoginOnRegister = true
	c.Auth.CookieSecret = "dev-secret-change-me"
	c.Auth.VisitorTTL = 12 * time.Hour
	return c
}

// Load reads configuration from path (skipped when empty or missing) and the
// environment, on top of built-in defaults.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("STOREFRONT_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "STOREFRONT_")
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load env config: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
