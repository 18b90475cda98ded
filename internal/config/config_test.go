package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"katalog/internal/config"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg := config.FromViper(v)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "json", cfg.StoreDriver)
	assert.Equal(t, "data/products.json", cfg.DataFile)
	assert.Equal(t, "public/images", cfg.UploadDir)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, "memory", cfg.CacheDriver)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "", cfg.RabbitMQURL)
	assert.Equal(t, "none", cfg.TracingExport)
	assert.False(t, cfg.SeedDemoData)
}

func TestFromViper_Environment(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	v := viper.New()
	config.SetDefaults(v)
	v.AutomaticEnv()

	cfg := config.FromViper(v)
	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.SeedDemoData)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
}

func TestFromViper_InvalidTTLFallsBack(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("CACHE_TTL", "soon")

	assert.Equal(t, 5*time.Minute, config.FromViper(v).CacheTTL)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, config.LoadDotEnv(filepath.Join(dir, "missing.env")))

	bad := filepath.Join(dir, "bad.env")
	require.NoError(t, os.WriteFile(bad, []byte("KATALOG_BAD=\"unterminated\n"), 0o644))
	assert.Error(t, config.LoadDotEnv(bad))

	good := filepath.Join(dir, "good.env")
	require.NoError(t, os.WriteFile(good, []byte("KATALOG_DOTENV_TEST=from-file\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("KATALOG_DOTENV_TEST") })
	require.NoError(t, config.LoadDotEnv(good))
	assert.Equal(t, "from-file", os.Getenv("KATALOG_DOTENV_TEST"))
}
