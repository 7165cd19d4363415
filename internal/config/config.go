package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DataPath       string
	MediaPath      string
	ListenAddr     string
	DBBusyTimeout  time.Duration
	MaxUploadBytes int64
	LogLevel       string
	LogPretty      bool
}

const defaultMaxUploadBytes = 10 << 20 // 10 MB

// Load reads configuration from the environment, after loading a .env
// file if one is present. Missing values fall back to defaults; the
// media path defaults to a subtree of the data path.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		DataPath:   envOr("WIKI_DATA_PATH", "data"),
		MediaPath:  os.Getenv("WIKI_MEDIA_PATH"),
		ListenAddr: envOr("WIKI_LISTEN_ADDR", "127.0.0.1:8080"),
		LogLevel:   os.Getenv("WIKI_LOG_LEVEL"),
		LogPretty:  boolEnv("WIKI_LOG_PRETTY"),
	}
	if cfg.MediaPath == "" {
		cfg.MediaPath = cfg.DataPath + "/projects"
	}
	cfg.DBBusyTimeout = parseDurationOr("WIKI_DB_BUSY_TIMEOUT", 5*time.Second)
	cfg.MaxUploadBytes = parseInt64Or("WIKI_MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolEnv(key string) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes":
		return true
	}
	return false
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func parseInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
