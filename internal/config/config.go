// Package config loads the service configuration from the environment and
// holds the complaint domain constants.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/ulule/limiter/v3"
	"golang.org/x/crypto/bcrypt"
)

// DatabaseOptions describes the PostgreSQL connection.
type DatabaseOptions struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"user"`
	Password string `env:"DB_PASSWORD" envDefault:"password"`
	Name     string `env:"DB_NAME" envDefault:"complaintbox"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// DSN returns DATABASE_URL when set, otherwise a key=value connection string.
func (d DatabaseOptions) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisOptions describes the optional redis connection. An empty Addr disables redis.
type RedisOptions struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Enabled reports whether a redis address was configured.
func (r RedisOptions) Enabled() bool {
	return r.Addr != ""
}

// SessionOptions controls the admin session cookie.
type SessionOptions struct {
	Secret       string        `env:"SESSION_SECRET"`
	TTL          time.Duration `env:"SESSION_TTL" envDefault:"8h"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

// RateLimitOptions are ulule/limiter formatted rates, e.g. "20-M".
type RateLimitOptions struct {
	Track string `env:"TRACK_RATE_LIMIT" envDefault:"20-M"`
	Login string `env:"LOGIN_RATE_LIMIT" envDefault:"10-M"`
}

// TelegramOptions enables new-complaint notifications when both fields are set.
type TelegramOptions struct {
	BotToken    string `env:"TELEGRAM_BOT_TOKEN"`
	AdminChatID int64  `env:"TELEGRAM_ADMIN_CHAT_ID"`
	Lang        string `env:"TELEGRAM_LANG" envDefault:"en"`
}

// Enabled reports whether notifications should be sent.
func (t TelegramOptions) Enabled() bool {
	return t.BotToken != "" && t.AdminChatID != 0
}

type Config struct {
	HTTPAddr    string   `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	BcryptCost  int      `env:"BCRYPT_COST" envDefault:"10"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
	MetricsPath string   `env:"METRICS_PATH" envDefault:"/metrics"`

	Database  DatabaseOptions
	Redis     RedisOptions
	Session   SessionOptions
	RateLimit RateLimitOptions
	Telegram  TelegramOptions
}

// ToolConfig is the part of the configuration the operator CLI needs. It
// does not require a session secret.
type ToolConfig struct {
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"10"`

	Database DatabaseOptions
}

func loadEnvFiles(envFiles []string) error {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// Load reads the optional env files and parses the environment into a Config.
// A missing env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTool is Load for the operator CLI.
func LoadTool(envFiles ...string) (*ToolConfig, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	cfg := &ToolConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted safely.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Session.Secret) == "" {
		return errors.New("SESSION_SECRET must be set")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.Session.TTL)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	if _, err := limiter.NewRateFromFormatted(c.RateLimit.Track); err != nil {
		return fmt.Errorf("invalid TRACK_RATE_LIMIT %q: %w", c.RateLimit.Track, err)
	}
	if _, err := limiter.NewRateFromFormatted(c.RateLimit.Login); err != nil {
		return fmt.Errorf("invalid LOGIN_RATE_LIMIT %q: %w", c.RateLimit.Login, err)
	}
	for _, origin := range c.CORSOrigins {
		if _, err := url.ParseRequestURI(origin); err != nil {
			return fmt.Errorf("invalid CORS origin %q: %w", origin, err)
		}
	}
	return nil
}
