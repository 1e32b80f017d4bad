package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-mdenrich/internal/config"
)

// envPrefix marks the variables read by mdenrich.
const envPrefix = "MDENRICH_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDENRICH_CONFIG
	Style      string // MDENRICH_STYLE
	InputDir   string // MDENRICH_INPUT_DIR
	OutputDir  string // MDENRICH_OUTPUT_DIR
	Pattern    string // MDENRICH_PATTERN
	Workers    int    // MDENRICH_WORKERS

	GitHubRepo      string // MDENRICH_GITHUB_REPO
	IssueBaseURL    string // MDENRICH_ISSUE_BASE_URL
	MentionsBaseURL string // MDENRICH_MENTIONS_BASE_URL
	TagsBaseURL     string // MDENRICH_TAGS_BASE_URL

	CachePath string // MDENRICH_CACHE_PATH
}

// knownEnvVars lists valid MDENRICH_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDENRICH_CONFIG":            true,
	"MDENRICH_STYLE":             true,
	"MDENRICH_INPUT_DIR":         true,
	"MDENRICH_OUTPUT_DIR":        true,
	"MDENRICH_PATTERN":           true,
	"MDENRICH_WORKERS":           true,
	"MDENRICH_GITHUB_REPO":       true,
	"MDENRICH_ISSUE_BASE_URL":    true,
	"MDENRICH_MENTIONS_BASE_URL": true,
	"MDENRICH_TAGS_BASE_URL":     true,
	"MDENRICH_CACHE_PATH":        true,
}

// readEnvVars collects MDENRICH_* variables from the process environment
// and, when envFile is set, from a dotenv file. Process variables win.
func readEnvVars(environ []string, envFile string) (map[string]string, error) {
	vars := make(map[string]string)

	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("reading env file: %w", err)
		}
		for k, v := range fileVars {
			if strings.HasPrefix(k, envPrefix) {
				vars[k] = v
			}
		}
	}

	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, envPrefix) {
			vars[k] = v
		}
	}
	return vars, nil
}

// loadEnvConfig maps recognized variables to an envConfig. An invalid
// MDENRICH_WORKERS is ignored.
func loadEnvConfig(vars map[string]string) *envConfig {
	cfg := &envConfig{
		ConfigPath:      vars["MDENRICH_CONFIG"],
		Style:           vars["MDENRICH_STYLE"],
		InputDir:        vars["MDENRICH_INPUT_DIR"],
		OutputDir:       vars["MDENRICH_OUTPUT_DIR"],
		Pattern:         vars["MDENRICH_PATTERN"],
		GitHubRepo:      vars["MDENRICH_GITHUB_REPO"],
		IssueBaseURL:    vars["MDENRICH_ISSUE_BASE_URL"],
		MentionsBaseURL: vars["MDENRICH_MENTIONS_BASE_URL"],
		TagsBaseURL:     vars["MDENRICH_TAGS_BASE_URL"],
		CachePath:       vars["MDENRICH_CACHE_PATH"],
	}

	if workers := vars["MDENRICH_WORKERS"]; workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized MDENRICH_*
// variable, in name order.
func warnUnknownEnvVars(logger *slog.Logger, vars map[string]string) {
	var unknown []string
	for name := range vars {
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		logger.Warn("unknown environment variable (typo?)", "name", name)
	}
}

// applyEnvConfig applies set environment values over the config file.
// CLI flags are merged afterwards: flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setString(&cfg.Render.Style, env.Style)
	setString(&cfg.Input.DefaultDir, env.InputDir)
	setString(&cfg.Output.DefaultDir, env.OutputDir)
	setString(&cfg.Input.Pattern, env.Pattern)
	if env.Workers > 0 {
		cfg.Render.Workers = env.Workers
	}

	setString(&cfg.Enrich.GitHubRepo, env.GitHubRepo)
	setString(&cfg.Enrich.IssueBaseURL, env.IssueBaseURL)
	setString(&cfg.Enrich.MentionsBaseURL, env.MentionsBaseURL)
	setString(&cfg.Enrich.TagsBaseURL, env.TagsBaseURL)
	setString(&cfg.Cache.Path, env.CachePath)
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
