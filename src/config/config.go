package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// const dsn = "host=localhost user=postgres password=password dbname=dropzone port=5432 sslmode=disable TimeZone=Europe/Moscow"

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const (
	DATE_FORMAT       = "2006-01-02"
	CLOCK_TIME_FORMAT = "15:04:05"

	MEDIA_BACKEND_LOCAL = "local"
	MEDIA_BACKEND_S3    = "s3"
)

// GetString returns the variable or fallback when it is unset or blank.
func GetString(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func GetInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return fallback
	}
	return i
}

func GetInt64(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	i, err := cast.ToInt64E(v)
	if err != nil {
		return fallback
	}
	return i
}

func GetBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return fallback
	}
	return b
}

// GetDuration accepts Go duration strings ("90m") or plain seconds.
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if secs, err := cast.ToInt64E(v); err == nil {
		if secs <= 0 {
			return fallback
		}
		return time.Duration(secs) * time.Second
	}
	d, err := cast.ToDurationE(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func GetList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func APIEnv() string {
	return GetString("API_ENV", "local")
}

func IsProd() bool {
	return APIEnv() == "production"
}

func Port() string {
	return GetString("PORT", "8000")
}

func MaintenanceMode() bool {
	return GetBool("MAINTENANCE_MODE", false)
}

func MediaBackend() string {
	return strings.ToLower(GetString("MEDIA_BACKEND", MEDIA_BACKEND_LOCAL))
}

func MediaRoot() string {
	return GetString("MEDIA_ROOT", "media")
}

// MediaURL always ends with a slash.
func MediaURL() string {
	u := GetString("MEDIA_URL", "/media/")
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}

func MaxUploadSize() int64 {
	return GetInt64("MAX_UPLOAD_SIZE", 5<<20)
}

func BookingRateLimit() int64 {
	return GetInt64("BOOKING_RATE_LIMIT", 5)
}

func BookingRateWindow() time.Duration {
	return GetDuration("BOOKING_RATE_WINDOW", time.Hour)
}

// S3URLExpiry is the lifetime of presigned media URLs.
func S3URLExpiry() time.Duration {
	return GetDuration("S3_URL_EXPIRY", time.Hour)
}
