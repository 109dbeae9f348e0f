package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when the environment is silent or invalid.
const (
	DefaultAddr           = ":10888"
	DefaultRequestTimeout = 30 * time.Second
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	RequestTimeout time.Duration
	PrettyJSON     bool
	MetricsEnabled bool
	// EnforceTitleMax also rejects titles longer than the length named in
	// the validation message.
	EnforceTitleMax bool
	LogLevel        string
	LogFormat       string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:            stringEnv("FLIMS_ADDR", DefaultAddr),
		RequestTimeout:  durationEnv("FLIMS_REQUEST_TIMEOUT", DefaultRequestTimeout),
		PrettyJSON:      boolEnv("FLIMS_PRETTY_JSON", true),
		MetricsEnabled:  boolEnv("FLIMS_METRICS_ENABLED", true),
		EnforceTitleMax: boolEnv("FLIMS_ENFORCE_TITLE_MAX", false),
		LogLevel:        strings.ToLower(stringEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:       strings.ToLower(stringEnv("LOG_FORMAT", DefaultLogFormat)),
	}
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
