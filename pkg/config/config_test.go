package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "levels.db", cfg.Database.Path)
	assert.Equal(t, 10, cfg.Search.DefaultPageSize)
	assert.Equal(t, "./save", cfg.Saves.Dir)
	assert.Equal(t, 10*time.Minute, cfg.Saves.CacheTTL)
	assert.Equal(t, "https://geometrydashfiles.b-cdn.net/music", cfg.Songs.CDNBaseURL)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("SEARCH_MAX_PAGE_SIZE", "50")
	t.Setenv("SONG_HTTP_TIMEOUT", "bogus")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 50, cfg.Search.MaxPageSize)
	assert.Equal(t, 15*time.Second, cfg.Songs.HTTPTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}
