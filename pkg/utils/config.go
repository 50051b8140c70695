package utils

import (
	"os"
	"strconv"
	"time"
)

type ServerConfig struct {
	Port              int
	ModelDir          string
	UploadDir         string
	ClassifierURL     string
	ClassifierTimeout time.Duration
}

func LoadServerConfig() ServerConfig {
	cfg := ServerConfig{
		Port:              10000,
		ModelDir:          "modelo",
		UploadDir:         "static/uploads",
		ClassifierURL:     "http://localhost:8501/v1/clasificar",
		ClassifierTimeout: 30 * time.Second,
	}

	if p := os.Getenv("PORT"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			cfg.Port = n
		}
	}

	if dir := os.Getenv("MERCAML_MODEL_DIR"); dir != "" {
		cfg.ModelDir = dir
	}

	if dir := os.Getenv("MERCAML_UPLOAD_DIR"); dir != "" {
		cfg.UploadDir = dir
	}

	if url := os.Getenv("MERCAML_CLASSIFIER_URL"); url != "" {
		cfg.ClassifierURL = url
	}

	// timeout env is plain seconds; anything unparseable keeps the default
	if raw := os.Getenv("MERCAML_CLASSIFIER_TIMEOUT_SECONDS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.ClassifierTimeout = time.Duration(n) * time.Second
		}
	}

	return cfg
}
