// Package config loads service settings from the environment and an optional .env file.
package config

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting of the catalog service.
type Config struct {
	AppPort        string
	StoreDriver    string
	DataFile       string
	DatabaseDSN    string
	UploadDir      string
	MaxUploadBytes int64
	CacheDriver    string
	CacheTTL       time.Duration
	RedisURL       string
	RabbitMQURL    string
	TracingExport  string
	OTLPEndpoint   string
	ServiceName    string
	SeedDemoData   bool
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("STORE_DRIVER", "json")
	v.SetDefault("DATA_FILE", "data/products.json")
	v.SetDefault("DATABASE_DSN", "file:katalog.db")
	v.SetDefault("UPLOAD_DIR", "public/images")
	v.SetDefault("MAX_UPLOAD_BYTES", 5*1024*1024)
	v.SetDefault("CACHE_DRIVER", "memory")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("TRACING_EXPORTER", "none")
	v.SetDefault("OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("SERVICE_NAME", "katalog")
	v.SetDefault("SEED_DEMO_DATA", false)
}

// Load reads .env if present, then the environment, over the defaults.
func Load() Config {
	if err := LoadDotEnv(".env"); err != nil {
		log.Printf("[config] ignoring .env: %v", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := FromViper(v)
	log.Printf("[config] APP_PORT=%s STORE_DRIVER=%s CACHE_DRIVER=%s", cfg.AppPort, cfg.StoreDriver, cfg.CacheDriver)
	if cfg.StoreDriver == "json" {
		log.Printf("[config] DATA_FILE=%s", cfg.DataFile)
	}
	return cfg
}

// LoadDotEnv exports the variables of the given env files without overriding
// ones already set. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) Config {
	ttl := v.GetDuration("CACHE_TTL")
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return Config{
		AppPort:        v.GetString("APP_PORT"),
		StoreDriver:    v.GetString("STORE_DRIVER"),
		DataFile:       v.GetString("DATA_FILE"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		UploadDir:      v.GetString("UPLOAD_DIR"),
		MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
		CacheDriver:    v.GetString("CACHE_DRIVER"),
		CacheTTL:       ttl,
		RedisURL:       v.GetString("REDIS_URL"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		TracingExport:  v.GetString("TRACING_EXPORTER"),
		OTLPEndpoint:   v.GetString("OTLP_ENDPOINT"),
		ServiceName:    v.GetString("SERVICE_NAME"),
		SeedDemoData:   v.GetBool("SEED_DEMO_DATA"),
	}
}
