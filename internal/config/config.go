package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/logger"
)

const (
	defaultPort         = "3001"
	defaultDatabaseName = "scholar_stream_db"
	defaultDBHost       = "cluster0.l2cobj0.mongodb.net"
	defaultRoleCacheTTL = time.Minute
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port         string
	MongoURI     string
	DatabaseName string

	// FirebaseServiceKey is the base64-encoded service account JSON.
	FirebaseServiceKey string
	// JWTSecret enables local HS256 token verification when no Firebase key is set.
	JWTSecret string

	StripeSecret string
	SiteDomain   string

	RedisURL     string
	RoleCacheTTL time.Duration

	LogLevel  string
	LogPretty bool
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn().Err(err).Msg("could not load .env, using process environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", defaultPort),
		DatabaseName:       getEnv("DB_NAME", defaultDatabaseName),
		FirebaseServiceKey: os.Getenv("FB_SERVICE_KEY"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		StripeSecret:       os.Getenv("STRIPE_SECRET"),
		SiteDomain:         strings.TrimRight(os.Getenv("SITE_DOMAIN"), "/"),
		RedisURL:           os.Getenv("REDIS_URL"),
		RoleCacheTTL:       defaultRoleCacheTTL,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	cfg.MongoURI = os.Getenv("MONGODB_URI")
	if cfg.MongoURI == "" {
		user, pass := os.Getenv("DB_USER"), os.Getenv("DB_PASS")
		if user != "" && pass != "" {
			cfg.MongoURI = BuildMongoURI(user, pass, getEnv("DB_HOST", defaultDBHost))
		}
	}

	if raw := os.Getenv("ROLE_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid ROLE_CACHE_TTL %q: %w", raw, err)
		}
		cfg.RoleCacheTTL = ttl
	}

	if raw := os.Getenv("LOG_PRETTY"); raw != "" {
		pretty, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_PRETTY %q: %w", raw, err)
		}
		cfg.LogPretty = pretty
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGODB_URI or DB_USER/DB_PASS must be set"))
	}
	if c.FirebaseServiceKey == "" && c.JWTSecret == "" {
		errs = append(errs, errors.New("FB_SERVICE_KEY or JWT_SECRET must be set"))
	}
	if c.StripeSecret == "" {
		errs = append(errs, errors.New("STRIPE_SECRET must be set"))
	}
	if c.SiteDomain == "" {
		errs = append(errs, errors.New("SITE_DOMAIN must be set"))
	}
	return errors.Join(errs...)
}

// BuildMongoURI composes an Atlas SRV connection string.
func BuildMongoURI(user, pass, host string) string {
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?appName=Cluster0",
		url.QueryEscape(user), url.QueryEscape(pass), host)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
