package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config carries all process-wide settings. It is built once in main
// and passed by reference into every component.
type Config struct {
	SecretKey      string
	TokenTTL       time.Duration
	DBPath         string
	Port           string
	UploadDir      string
	MaxImageSizeMB int
	ThumbnailEdge  int
	AvatarMaxBytes int64

	DefaultAdminUsername string
	DefaultAdminPassword string
	DefaultAdminDOB      string

	GeocodeBaseURL string
	GeocodeTimeout time.Duration
}

func Load() *Config {
	tokenMinutes := getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30000)

	return &Config{
		SecretKey:      getEnv("SECRET_KEY", "change_me_in_production"),
		TokenTTL:       time.Duration(tokenMinutes) * time.Minute,
		DBPath:         getEnv("DB_PATH", filepath.Join("data", "memento.db")),
		Port:           getEnv("PORT", "8000"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MaxImageSizeMB: getEnvInt("MAX_IMAGE_SIZE_MB", 10),
		ThumbnailEdge:  getEnvInt("THUMBNAIL_MAX_SIZE", 800),
		AvatarMaxBytes: 5 * 1024 * 1024,

		DefaultAdminUsername: getEnv("DEFAULT_ADMIN_USERNAME", "admin"),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "admin123"),
		DefaultAdminDOB:      getEnv("DEFAULT_ADMIN_DOB", "1990-01-01"),

		GeocodeBaseURL: getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocodeTimeout: 5 * time.Second,
	}
}

func (config *Config) OriginalsDir() string {
	return filepath.Join(config.UploadDir, "originals")
}

func (config *Config) ThumbnailsDir() string {
	return filepath.Join(config.UploadDir, "thumbnails")
}

func (config *Config) AvatarsDir() string {
	return filepath.Join(config.UploadDir, "avatars")
}

func (config *Config) MaxImageBytes() int64 {
	return int64(config.MaxImageSizeMB) * 1024 * 1024
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
