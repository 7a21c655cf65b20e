package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"dev"`
	Port int    `env:"PORT" envDefault:"8080"`

	SessionSecret string         `env:"SESSION_SECRET"`
	SessionMaxAge int            `env:"SESSION_MAX_AGE" envDefault:"86400"`
	JWTSecret     string         `env:"JWT_SECRET"`
	CORSOrigins   []string       `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000"`
	LogJSON       bool           `env:"LOG_JSON" envDefault:"false"`
	Admin         AdminConfig    `envPrefix:"ADMIN_"`
	Catalog       CatalogConfig  `envPrefix:"CATALOG_"`
	Redis         RedisConfig    `envPrefix:"REDIS_"`
	MinIO         MinIOConfig    `envPrefix:"MINIO_"`
	SMTP          SMTPConfig     `envPrefix:"SMTP_"`
	Snapshot      SnapshotConfig `envPrefix:"SNAPSHOT_"`
}

type AdminConfig struct {
	Username     string `env:"USERNAME" envDefault:"admin"`
	Password     string `env:"PASSWORD"`
	PasswordHash string `env:"PASSWORD_HASH"`
}

type CatalogConfig struct {
	Size int   `env:"SIZE" envDefault:"100"`
	Seed int64 `env:"SEED" envDefault:"0"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type MinIOConfig struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"order-snapshots"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

type SMTPConfig struct {
	Host        string `env:"HOST"`
	Port        int    `env:"PORT" envDefault:"587"`
	Username    string `env:"USERNAME"`
	Password    string `env:"PASSWORD"`
	From        string `env:"FROM" envDefault:"noreply@furniture.example"`
	ShopAddress string `env:"SHOP_ADDRESS"` // receives new-order notifications
}

type SnapshotConfig struct {
	// Renderer is "chrome" or "none".
	Renderer string `env:"RENDERER" envDefault:"chrome"`
	Width    int    `env:"WIDTH" envDefault:"900"`
}

func (c Config) IsProd() bool { return c.Env == "prod" }

// Load reads .env when present and parses the environment into a Config.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using the process environment")
	} else {
		log.Println("✅ .env loaded")
	}
	return Parse()
}

// Parse reads the environment only. Missing secrets are generated outside
// prod and rejected in prod.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	if err := c.fillSecrets(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) validate() error {
	switch {
	case c.Catalog.Size < 1:
		return fmt.Errorf("CATALOG_SIZE must be at least 1, got %d", c.Catalog.Size)
	case c.SessionMaxAge < 1:
		return fmt.Errorf("SESSION_MAX_AGE must be at least 1 second, got %d", c.SessionMaxAge)
	case c.Port < 1 || c.Port > 65535:
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

func (c *Config) fillSecrets() error {
	var missing []string
	if c.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		missing = append(missing, "ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}
	if len(missing) == 0 {
		return nil
	}
	if c.IsProd() {
		return errors.New("missing required settings: " + strings.Join(missing, ", "))
	}

	if c.SessionSecret == "" {
		c.SessionSecret = randomSecret()
	}
	if c.JWTSecret == "" {
		c.JWTSecret = randomSecret()
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		c.Admin.Password = "admin"
		log.Println("⚠️  ADMIN_PASSWORD not set, using the dev default")
	}
	return nil
}

func randomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
