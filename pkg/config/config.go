package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Search   SearchConfig
	Saves    SavesConfig
	Songs    SongsConfig
	Metrics  MetricsConfig
}

type DatabaseConfig struct {
	Driver       string
	Path         string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SearchConfig bounds level search pagination.
type SearchConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// SavesConfig points at the raw level save files used for GMD export.
type SavesConfig struct {
	Dir       string
	CacheSize int
	CacheTTL  time.Duration
}

// SongsConfig configures the music library bootstrap and song resolution.
type SongsConfig struct {
	LibraryURL   string
	LibraryFile  string
	CDNBaseURL   string
	InfoURL      string
	InfoSecret   string
	HTTPTimeout  time.Duration
	CacheEnabled bool
	CacheTTL     time.Duration
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
		Path:         v.GetString("DB_PATH"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Search = SearchConfig{
		DefaultPageSize: v.GetInt("SEARCH_DEFAULT_PAGE_SIZE"),
		MaxPageSize:     v.GetInt("SEARCH_MAX_PAGE_SIZE"),
	}

	cfg.Saves = SavesConfig{
		Dir:       v.GetString("SAVE_DIR"),
		CacheSize: v.GetInt("GMD_CACHE_SIZE"),
		CacheTTL:  parseDuration(v.GetString("GMD_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Songs = SongsConfig{
		LibraryURL:   v.GetString("MUSIC_LIBRARY_URL"),
		LibraryFile:  v.GetString("MUSIC_LIBRARY_FILE"),
		CDNBaseURL:   strings.TrimRight(v.GetString("SONG_CDN_BASE_URL"), "/"),
		InfoURL:      v.GetString("SONG_INFO_URL"),
		InfoSecret:   v.GetString("SONG_INFO_SECRET"),
		HTTPTimeout:  parseDuration(v.GetString("SONG_HTTP_TIMEOUT"), 15*time.Second),
		CacheEnabled: v.GetBool("ENABLE_SONG_CACHE"),
		CacheTTL:     parseDuration(v.GetString("SONG_CACHE_TTL"), time.Hour),
	}

	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("ENABLE_METRICS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "levels.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "levels")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SEARCH_DEFAULT_PAGE_SIZE", 10)
	v.SetDefault("SEARCH_MAX_PAGE_SIZE", 500)

	v.SetDefault("SAVE_DIR", "./save")
	v.SetDefault("GMD_CACHE_SIZE", 256)
	v.SetDefault("GMD_CACHE_TTL", "10m")

	v.SetDefault("MUSIC_LIBRARY_URL", "https://geometrydashfiles.b-cdn.net/music/musiclibrary_02.dat")
	v.SetDefault("MUSIC_LIBRARY_FILE", "musiclibrary.dat")
	v.SetDefault("SONG_CDN_BASE_URL", "https://geometrydashfiles.b-cdn.net/music")
	v.SetDefault("SONG_INFO_URL", "http://www.boomlings.com/database/getGJSongInfo.php")
	v.SetDefault("SONG_INFO_SECRET", "Wmfd2893gb7")
	v.SetDefault("SONG_HTTP_TIMEOUT", "15s")
	v.SetDefault("ENABLE_SONG_CACHE", false)
	v.SetDefault("SONG_CACHE_TTL", "1h")

	v.SetDefault("ENABLE_METRICS", true)
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
