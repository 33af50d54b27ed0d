// Package config reads service settings from the environment, loading a .env
// file first when one exists.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	NERBackend     string
	MLServiceURL   string
	LanguageCreds  string
	Translator     string
	TranslateURL   string
	OpenAIKey      string
	OpenAIBaseURL  string
	WikiURL        string
	NewsURL        string
	NewsKey        string
	MapsCreds      string
	FirebaseCreds  string
	CallTimeout    time.Duration
	ModelTimeout   time.Duration
	BlockThreshold float64
	BlueskyFeeds   []string
	IngestSchedule string
	HealthSchedule string
}

// Load reads the environment into a Config. A missing .env file is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using system environment variables")
	}

	cfg := Config{
		Port:           GetEnvString("PORT", "8080"),
		LogLevel:       GetEnvString("LOG_LEVEL", "info"),
		LogFormat:      GetEnvString("LOG_FORMAT", "json"),
		NERBackend:     GetEnvString("NER_BACKEND", "remote"),
		MLServiceURL:   os.Getenv("ML_SERVICE_URL"),
		LanguageCreds:  os.Getenv("NATURAL_LANGUAGE_CREDENTIALS"),
		Translator:     GetEnvString("TRANSLATOR", "google"),
		TranslateURL:   GetEnvString("TRANSLATE_URL", "https://translate.googleapis.com/translate_a/single"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
		WikiURL:        GetEnvString("WIKI_URL", "https://en.wikipedia.org/api/rest_v1"),
		NewsURL:        GetEnvString("NEWS_API_URL", "https://newsapi.org/v2"),
		NewsKey:        os.Getenv("NEWS_API_KEY"),
		MapsCreds:      os.Getenv("MAPS_CREDENTIALS"),
		FirebaseCreds:  os.Getenv("FIREBASE_CREDENTIALS"),
		BlueskyFeeds:   splitList(os.Getenv("BLUESKY_FEEDS")),
		IngestSchedule: GetEnvString("INGEST_SCHEDULE", "*/10 * * * *"),
		HealthSchedule: GetEnvString("HEALTH_SCHEDULE", "*/5 * * * *"),
	}

	var err error
	if cfg.CallTimeout, err = getEnvDuration("CALL_TIMEOUT", 3*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ModelTimeout, err = getEnvDuration("MODEL_TIMEOUT", 3*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.BlockThreshold, err = getEnvFloat("RISK_BLOCK_THRESHOLD", 0.6); err != nil {
		return Config{}, err
	}

	switch cfg.NERBackend {
	case "remote", "google", "prose":
	default:
		return Config{}, fmt.Errorf("NER_BACKEND: unknown backend %q", cfg.NERBackend)
	}
	switch cfg.Translator {
	case "google", "openai":
	default:
		return Config{}, fmt.Errorf("TRANSLATOR: unknown translator %q", cfg.Translator)
	}

	return cfg, nil
}

func GetEnvString(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, value)
	}
	return d, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
