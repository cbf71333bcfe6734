package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-mdpages/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MDPAGES_CONFIG: config file name or path
	Pipeline   string        // MDPAGES_PIPELINE: pipeline name or "all"
	DocsDir    string        // MDPAGES_DOCS_DIR: source documents directory
	OutputDir  string        // MDPAGES_OUTPUT_DIR: output directory
	BaseURL    string        // MDPAGES_BASE_URL: prefix of the "View at" links
	PandocBin  string        // MDPAGES_PANDOC_BIN: pandoc executable
	PDFTimeout time.Duration // MDPAGES_PDF_TIMEOUT: per page PDF render timeout
}

// knownEnvVars lists valid MDPAGES_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDPAGES_CONFIG":      true,
	"MDPAGES_PIPELINE":    true,
	"MDPAGES_DOCS_DIR":    true,
	"MDPAGES_OUTPUT_DIR":  true,
	"MDPAGES_BASE_URL":    true,
	"MDPAGES_PANDOC_BIN":  true,
	"MDPAGES_PDF_TIMEOUT": true,
	"MDPAGES_CONTAINER":   true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDPAGES_CONFIG"),
		Pipeline:   os.Getenv("MDPAGES_PIPELINE"),
		DocsDir:    os.Getenv("MDPAGES_DOCS_DIR"),
		OutputDir:  os.Getenv("MDPAGES_OUTPUT_DIR"),
		BaseURL:    os.Getenv("MDPAGES_BASE_URL"),
		PandocBin:  os.Getenv("MDPAGES_PANDOC_BIN"),
	}

	// Invalid or non-positive durations are ignored
	if timeout := os.Getenv("MDPAGES_PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.PDFTimeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDPAGES_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDPAGES_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies set environment values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.DocsDir != "" {
		cfg.DocsDir = env.DocsDir
	}
	if env.OutputDir != "" {
		setOutputDir(cfg, env.OutputDir)
	}
	if env.BaseURL != "" {
		cfg.BaseURL = env.BaseURL
	}
	if env.PandocBin != "" {
		cfg.Pandoc.Bin = env.PandocBin
	}
	if env.PDFTimeout > 0 {
		cfg.PDF.Timeout = env.PDFTimeout
	}
}

// setOutputDir points every pipeline at dir, dropping per-pipeline overrides.
func setOutputDir(cfg *config.Config, dir string) {
	cfg.OutputDir = dir
	for i := range cfg.Pipelines {
		cfg.Pipelines[i].OutputDir = ""
	}
}
