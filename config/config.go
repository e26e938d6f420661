package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	e "github.com/julianlk522/tryon/error"
)

const (
	DEFAULT_ADDR             = ":5000"
	DEFAULT_API_URL          = "https://virtual-try-on2.p.rapidapi.com/clothes-virtual-tryon"
	DEFAULT_API_HOST         = "virtual-try-on2.p.rapidapi.com"
	DEFAULT_UPLOAD_DIR       = "uploads"
	DEFAULT_MAX_UPLOAD_BYTES = 10 << 20
)

type Config struct {
	Addr           string
	APIURL         string
	APIKey         string
	APIHost        string
	UploadDir      string
	MaxUploadBytes int64
	ErrLogFile     string
	AllowedOrigins []string
}

// Load reads config from the environment, after .env if one exists.
// The upload dir is created if missing.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Print(".env not found, using process environment")
	}

	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:       getEnv("TRYON_ADDR", DEFAULT_ADDR),
		APIURL:     getEnv("TRYON_API_URL", DEFAULT_API_URL),
		APIKey:     os.Getenv("TRYON_API_KEY"),
		APIHost:    getEnv("TRYON_API_HOST", DEFAULT_API_HOST),
		UploadDir:  getEnv("TRYON_UPLOAD_DIR", DEFAULT_UPLOAD_DIR),
		ErrLogFile: os.Getenv("TRYON_ERR_LOG_FILE"),
	}

	if cfg.APIKey == "" {
		return nil, e.ErrNoAPIKey
	}

	max_upload_bytes := getEnv("TRYON_MAX_UPLOAD_BYTES", strconv.Itoa(DEFAULT_MAX_UPLOAD_BYTES))
	n, err := strconv.ParseInt(max_upload_bytes, 10, 64)
	if err != nil || n <= 0 {
		return nil, e.ErrInvalidConfigValue("TRYON_MAX_UPLOAD_BYTES", max_upload_bytes)
	}
	cfg.MaxUploadBytes = n

	for _, origin := range strings.Split(getEnv("TRYON_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, default_val string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return default_val
}
