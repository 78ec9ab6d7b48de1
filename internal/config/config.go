package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction   = "production"
	DefaultTokenTTL = 30 * 24 * time.Hour
)

type Config struct {
	AppEnv        string         `yaml:"app_env"`
	Port          string         `yaml:"port"`
	Database      DatabaseConfig `yaml:"database"`
	RedisAddr     string         `yaml:"redis_addr"`
	KafkaBroker   string         `yaml:"kafka_broker"`
	JWTSecret     string         `yaml:"jwt_secret"`
	TokenTTL      time.Duration  `yaml:"-"`
	TokenTTLRaw   string         `yaml:"token_ttl"`
	CORSOrigins   []string       `yaml:"cors_allowed_origins"`
	MigrationsDir string         `yaml:"migrations_dir"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

// Load reads .env (if present), then the optional YAML file named by
// CONFIG_FILE, then lets environment variables override both.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	cfg.applyEnv(os.LookupEnv)
	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set("APP_ENV", &c.AppEnv)
	set("PORT", &c.Port)
	set("DB_HOST", &c.Database.Host)
	set("DB_PORT", &c.Database.Port)
	set("DB_USER", &c.Database.User)
	set("DB_PASSWORD", &c.Database.Password)
	set("DB_NAME", &c.Database.Name)
	set("DB_SSLMODE", &c.Database.SSLMode)
	set("REDIS_ADDR", &c.RedisAddr)
	set("KAFKA_BROKER", &c.KafkaBroker)
	set("JWT_SECRET", &c.JWTSecret)
	set("TOKEN_TTL", &c.TokenTTLRaw)
	set("MIGRATIONS_DIR", &c.MigrationsDir)

	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		c.CORSOrigins = splitList(v)
	}
}

func (c *Config) validateAndNormalize() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET must be set")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("config: DB_HOST must be set")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("config: DB_NAME must be set")
	}

	if c.AppEnv == "" {
		c.AppEnv = "development"
	}
	if c.Port == "" {
		c.Port = "3000"
	}
	if c.Database.Port == "" {
		c.Database.Port = "5432"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.MigrationsDir == "" {
		c.MigrationsDir = "migrations"
	}

	c.TokenTTL = DefaultTokenTTL
	if c.TokenTTLRaw != "" {
		ttl, err := time.ParseDuration(c.TokenTTLRaw)
		if err != nil {
			return fmt.Errorf("config: TOKEN_TTL: %w", err)
		}
		if ttl <= 0 {
			return fmt.Errorf("config: TOKEN_TTL must be positive")
		}
		c.TokenTTL = ttl
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// DSN is the key/value form used by the gorm postgres driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// URL is the form the golang-migrate pgx/v5 driver expects.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IntFromEnv is used by entrypoints for optional numeric knobs.
func IntFromEnv(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
