package config

import (
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

type Config struct {
	Port    string
	BaseURL string

	StoreDriver   string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string

	UploadDir   string
	MaxUploadMB int

	SessionSecret string
	BcryptCost    int

	FeedCacheSize int
	FeedCacheTTL  time.Duration

	SlowQuery time.Duration
	LogLevel  string
	Timezone string
}

// Load reads settings from the environment, falling back to local-dev defaults.
func Load() *Config {
	return &Config{
		Port:          GetEnvAsString("PORT", "3525"),
		BaseURL:       GetEnvAsString("BASE_URL", "http://localhost"),
		StoreDriver:   GetEnvAsString("STORE_DRIVER", DriverPostgres),
		DatabaseURL:   GetEnvAsString("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=socialfeed port=5432 sslmode=disable"),
		MongoURI:      GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: GetEnvAsString("MONGO_DATABASE", "socialfeed"),
		UploadDir:     GetEnvAsString("UPLOAD_DIR", "./uploads"),
		MaxUploadMB:   GetEnvAsInt("MAX_UPLOAD_MB", 50),
		SessionSecret: GetEnvAsString("SESSION_SECRET", "secret_key_change_me"),
		BcryptCost:    GetEnvAsInt("BCRYPT_COST", 10),
		FeedCacheSize: GetEnvAsInt("FEED_CACHE_SIZE", 256),
		FeedCacheTTL:  GetEnvAsDuration("FEED_CACHE_TTL", 30*time.Second),
		SlowQuery:     GetEnvAsDuration("SLOW_QUERY_THRESHOLD", 300*time.Millisecond),
		LogLevel:      GetEnvAsString("LOG_LEVEL", "info"),
		Timezone:      GetEnvAsString("TIMEZONE", "Local"),
	}
}

// RegisterFlags exposes every setting as a flag; the current values act as defaults.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Port, "port", c.Port, "http listen port")
	fs.StringVar(&c.BaseURL, "base-url", c.BaseURL, "public base url, used in logs")
	fs.StringVar(&c.StoreDriver, "store", c.StoreDriver, "storage backend: postgres, sqlite or mongo")
	fs.StringVar(&c.DatabaseURL, "database-url", c.DatabaseURL, "postgres dsn or sqlite file path")
	fs.StringVar(&c.MongoURI, "mongo-uri", c.MongoURI, "mongodb connection uri")
	fs.StringVar(&c.MongoDatabase, "mongo-database", c.MongoDatabase, "mongodb database name")
	fs.StringVar(&c.UploadDir, "upload-dir", c.UploadDir, "directory for uploaded media")
	fs.IntVar(&c.MaxUploadMB, "max-upload-mb", c.MaxUploadMB, "maximum upload size in megabytes")
	fs.StringVar(&c.SessionSecret, "session-secret", c.SessionSecret, "cookie session secret")
	fs.IntVar(&c.BcryptCost, "bcrypt-cost", c.BcryptCost, "bcrypt cost for password hashing")
	fs.IntVar(&c.FeedCacheSize, "feed-cache-size", c.FeedCacheSize, "number of cached feed listings")
	fs.DurationVar(&c.FeedCacheTTL, "feed-cache-ttl", c.FeedCacheTTL, "feed listing cache ttl, 0 disables")
	fs.DurationVar(&c.SlowQuery, "slow-query", c.SlowQuery, "warn about sql statements slower than this, 0 disables")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&c.Timezone, "timezone", c.Timezone, "timezone for absolute dates")
}

func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}

// Location falls back to time.Local when the zone name cannot be loaded.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetEnvAsInt gets environment variable as int with default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsDuration gets environment variable as duration with default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetEnvAsString gets environment variable as string with default value
func GetEnvAsString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
