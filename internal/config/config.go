package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Redis   RedisConfig
	Token   TokenConfig
	Session SessionConfig
	Notify  NotifyConfig
	Log     LogConfig
}

type AppConfig struct {
	Port string
	Env  string
}

// APIConfig points at the banking REST API every page delegates to.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RedisConfig is optional; an empty Addr keeps all client state in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type TokenConfig struct {
	Key   string // storage key of the bearer token
	Value string // static token for the in-memory store
}

type SessionConfig struct {
	TTL time.Duration
}

type NotifyConfig struct {
	TTL time.Duration
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8090")
	v.SetDefault("app.env", "development")
	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("token.key", "token")
	v.SetDefault("token.value", "")
	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("notify.ttl", 5*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}

// Load reads console.yaml when present and lets CONSOLE_* environment
// variables override it, e.g. CONSOLE_API_BASE_URL.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("console")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/eagle-console")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("CONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Port: v.GetString("app.port"),
			Env:  v.GetString("app.env"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(v.GetString("api.base_url"), "/"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Token: TokenConfig{
			Key:   v.GetString("token.key"),
			Value: v.GetString("token.value"),
		},
		Session: SessionConfig{
			TTL: v.GetDuration("session.ttl"),
		},
		Notify: NotifyConfig{
			TTL: v.GetDuration("notify.ttl"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	if c.Token.Key == "" {
		return fmt.Errorf("token.key must not be empty")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
