package config

import (
	"log"
	"os"
	"time"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type Config struct {
	Mode Mode

	Port string

	GCPProjectID string
	GCPLocation  string
	ModelName    string

	StorageBackend string // "memory" o "firestore"
	UseMockLLM     bool   // true = use mock even on GCP

	// ClassifierBackend selects the optional severity classifier:
	// "none" (lexical confidence only), "mock", or "vertex".
	ClassifierBackend string
	ClassifierModel   string
	ClassifierTimeout time.Duration

	// DefaultLanguage is the BCP-47 tag used for sessions that do not
	// declare one.
	DefaultLanguage string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration in %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

// Load reads all env vars and builds the config
func Load() *Config {
	modeStr := getEnv("SENTINEL_MODE", "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	cfg := &Config{
		Mode: mode,

		Port: getEnv("SENTINEL_PORT", "8080"),

		GCPProjectID: getEnv("SENTINEL_GCP_PROJECT", ""),
		GCPLocation:  getEnv("SENTINEL_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("SENTINEL_MODEL_NAME", "gemini-2.5-flash-lite"),

		StorageBackend: getEnv("SENTINEL_STORAGE_BACKEND", "memory"),
		UseMockLLM:     getBoolEnv("SENTINEL_USE_MOCK_LLM", mode == ModeLocal),

		ClassifierBackend: getEnv("SENTINEL_CLASSIFIER_BACKEND", "none"),
		ClassifierModel:   getEnv("SENTINEL_CLASSIFIER_MODEL", "gemini-2.5-flash-lite"),
		ClassifierTimeout: getDurationEnv("SENTINEL_CLASSIFIER_TIMEOUT", 2*time.Second),

		DefaultLanguage: getEnv("SENTINEL_DEFAULT_LANGUAGE", "en"),
	}

	// Minimal validation in GCP mode
	if cfg.Mode == ModeGCP && cfg.GCPProjectID == "" {
		log.Fatal("SENTINEL_GCP_PROJECT must be set in gcp mode")
	}
	if cfg.ClassifierBackend == "vertex" && cfg.GCPProjectID == "" {
		log.Fatal("SENTINEL_GCP_PROJECT must be set when the vertex classifier is enabled")
	}

	return cfg
}
