package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config is built once at process start and handed into constructors.
// Business logic never reads the environment directly.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string
	TokenTTL  time.Duration

	UploadsDir     string
	MaxUploadBytes int64

	FfmpegBin      string
	PythonBin      string
	WhisperXScript string
	HFToken        string

	OllamaURL   string
	OllamaModel string

	NormalizeTimeout  time.Duration
	TranscribeTimeout time.Duration
	SummarizeTimeout  time.Duration
}

func Load() *Config {
	return &Config{
		Port:        envOrDefault("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  durationOrDefault("TOKEN_TTL", 7*24*time.Hour),

		UploadsDir:     envOrDefault("UPLOADS_DIR", "uploads"),
		MaxUploadBytes: int64OrDefault("MAX_UPLOAD_BYTES", 200_000_000),

		FfmpegBin:      envOrDefault("FFMPEG_BIN", "ffmpeg"),
		PythonBin:      envOrDefault("PYTHON_BIN", "python3"),
		WhisperXScript: envOrDefault("WHISPERX_SCRIPT", "scripts/whisperx_runner.py"),
		HFToken:        os.Getenv("HF_TOKEN"),

		OllamaURL:   envOrDefault("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel: envOrDefault("OLLAMA_MODEL", "llama3"),

		NormalizeTimeout:  durationOrDefault("NORMALIZE_TIMEOUT", 5*time.Minute),
		TranscribeTimeout: durationOrDefault("TRANSCRIBE_TIMEOUT", 30*time.Minute),
		SummarizeTimeout:  durationOrDefault("SUMMARIZE_TIMEOUT", 5*time.Minute),
	}
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func int64OrDefault(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
