// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for zeste.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env files, environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - $ZESTE_CONFIG
//   - ~/.zeste/config.toml
//   - ~/.zeste/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/zeste-tui/internal/util"
)

// CurrentVersion is the config schema version written by SaveTOML.
const CurrentVersion = "1"

// DefaultSampleText is the document shown when the editor first opens.
const DefaultSampleText = "A NASA spacecraft set a new milestone Monday in cosmic exploration by entering orbit around an asteroid, Bennu, the smallest object ever to be circled by a human-made spaceship. The spacecraft, called OSIRIS-REx, is the first-ever US mission designed to visit an asteroid and return a sample of its dust back to Earth."

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete zeste configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// ZeSTE service connection
	Server ServerConfig `toml:"server" json:"server"`

	// Candidate label settings
	Labels LabelsConfig `toml:"labels" json:"labels"`

	// Explanation rendering
	Explain ExplainConfig `toml:"explain" json:"explain"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// ServerConfig locates the ZeSTE service.
type ServerConfig struct {
	// URL is prepended to /autocomplete and /predict
	URL string `toml:"url" json:"url"`

	// TimeoutSecs bounds a single request
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`

	// UserAgent sent with every request
	UserAgent string `toml:"user_agent" json:"user_agent"`
}

// LabelsConfig holds dataset and suggestion settings.
type LabelsConfig struct {
	// Datasets offered by the dataset selector
	Datasets []string `toml:"datasets" json:"datasets"`

	// DefaultDataset is selected on startup; must be one of Datasets
	DefaultDataset string `toml:"default_dataset" json:"default_dataset"`

	// DropStaleSuggestions discards an autocomplete response older than
	// one already shown
	DropStaleSuggestions bool `toml:"drop_stale_suggestions" json:"drop_stale_suggestions"`
}

// ExplainConfig controls how explanation terms are linked.
type ExplainConfig struct {
	// ConceptURL is the lookup page prefix for terms
	ConceptURL string `toml:"concept_url" json:"concept_url"`
}

// UIConfig contains UI settings.
type UIConfig struct {
	// Theme is "dark", "light" or "auto"
	Theme string `toml:"theme" json:"theme"`

	// SampleText prefills the document editor with a sample article
	SampleText bool `toml:"sample_text" json:"sample_text"`

	// Hyperlinks renders terms as terminal hyperlinks
	Hyperlinks bool `toml:"hyperlinks" json:"hyperlinks"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Server: ServerConfig{
			URL:         "http://localhost:5000",
			TimeoutSecs: 60,
			UserAgent:   "zeste-tui",
		},
		Labels: LabelsConfig{
			Datasets:             []string{"20NG", "AFP"},
			DefaultDataset:       "20NG",
			DropStaleSuggestions: true,
		},
		Explain: ExplainConfig{
			ConceptURL: "https://conceptnet.io/c/en/",
		},
		UI: UIConfig{
			Theme:      "auto",
			SampleText: true,
			Hyperlinks: true,
		},
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the zeste configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".zeste"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
// ZESTE_CONFIG takes precedence over the default location.
func ConfigPathTOML() (string, error) {
	if p := os.Getenv("ZESTE_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv reads .env from the working directory into the environment.
// Variables already set are left untouched. A missing file is not an error.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	var loadErr error
	if err := LoadDotEnv(); err != nil {
		loadErr = err
	}

	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg, err := LoadFromPath(tomlPath)
			if err == nil {
				return cfg, loadErr
			}
			loadErr = err
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			cfg, err := LoadFromPath(jsonPath)
			if err == nil {
				return cfg, loadErr
			}
			loadErr = err
		}
	}

	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	// Return defaults with any load error for informational purposes
	return cfg, loadErr
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
// Values missing from the file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	// Filled by SetDefaults from whatever datasets the file declares.
	cfg.Labels.DefaultDataset = ""

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish applies env overrides, migration, defaults and validation.
func (c *Config) finish() error {
	c.ApplyEnvOverrides()
	if err := c.Migrate(); err != nil {
		return fmt.Errorf("config migration failed: %w", err)
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# zeste configuration file\n")
	b.WriteString("# Generated by zeste - edit with care\n")
	b.WriteString("#\n")
	b.WriteString("# Environment overrides: ZESTE_SERVER_URL, ZESTE_TIMEOUT_SECS,\n")
	b.WriteString("# ZESTE_CONCEPT_URL, ZESTE_THEME\n\n")

	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if err := validateHTTPURL(c.Server.URL); err != nil {
		errs = append(errs, ValidationError{Field: "server.url", Message: err.Error()})
	}

	if c.Server.TimeoutSecs < 1 || c.Server.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "server.timeout_secs",
			Message: fmt.Sprintf("must be between 1 and 600, got %d", c.Server.TimeoutSecs),
		})
	}

	if len(c.Labels.Datasets) == 0 {
		errs = append(errs, ValidationError{Field: "labels.datasets", Message: "at least one dataset is required"})
	} else {
		found := false
		for _, d := range c.Labels.Datasets {
			if strings.TrimSpace(d) == "" {
				errs = append(errs, ValidationError{Field: "labels.datasets", Message: "dataset names cannot be empty"})
				break
			}
			if d == c.Labels.DefaultDataset {
				found = true
			}
		}
		if !found {
			errs = append(errs, ValidationError{
				Field:   "labels.default_dataset",
				Message: fmt.Sprintf("'%s' is not one of %v", c.Labels.DefaultDataset, c.Labels.Datasets),
			})
		}
	}

	if err := validateHTTPURL(c.Explain.ConceptURL); err != nil {
		errs = append(errs, ValidationError{Field: "explain.concept_url", Message: err.Error()})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL '%s': %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL '%s' must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL '%s' has no host", raw)
	}
	return nil
}

// SetDefaults fills zero values that have a sensible default.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Server.URL == "" {
		c.Server.URL = d.Server.URL
	}
	c.Server.URL = strings.TrimRight(c.Server.URL, "/")
	if c.Server.TimeoutSecs == 0 {
		c.Server.TimeoutSecs = d.Server.TimeoutSecs
	}
	if c.Server.UserAgent == "" {
		c.Server.UserAgent = d.Server.UserAgent
	}
	if len(c.Labels.Datasets) == 0 {
		c.Labels.Datasets = d.Labels.Datasets
	}
	if c.Labels.DefaultDataset == "" {
		c.Labels.DefaultDataset = c.Labels.Datasets[0]
	}
	if c.Explain.ConceptURL == "" {
		c.Explain.ConceptURL = d.Explain.ConceptURL
	}
	if !strings.HasSuffix(c.Explain.ConceptURL, "/") {
		c.Explain.ConceptURL += "/"
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
}

// Migrate upgrades older config files in place.
func (c *Config) Migrate() error {
	switch c.Version {
	case "", CurrentVersion:
		c.Version = CurrentVersion
		return nil
	default:
		return fmt.Errorf("unsupported config version %q", c.Version)
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - ZESTE_SERVER_URL: overrides server.url
//   - ZESTE_TIMEOUT_SECS: overrides server.timeout_secs
//   - ZESTE_CONCEPT_URL: overrides explain.concept_url
//   - ZESTE_THEME: overrides ui.theme
//   - ZESTE_NO_HYPERLINKS: set to "1" or "true" to disable terminal hyperlinks
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("ZESTE_SERVER_URL"); u != "" {
		c.Server.URL = u
	}

	if secs := os.Getenv("ZESTE_TIMEOUT_SECS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil {
			c.Server.TimeoutSecs = n
		} else {
			fmt.Fprintf(os.Stderr, "Warning: ignoring ZESTE_TIMEOUT_SECS=%q: %v\n", secs, err)
		}
	}

	if u := os.Getenv("ZESTE_CONCEPT_URL"); u != "" {
		c.Explain.ConceptURL = u
	}

	if theme := os.Getenv("ZESTE_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if v := os.Getenv("ZESTE_NO_HYPERLINKS"); v != "" {
		if v == "1" || strings.ToLower(v) == "true" {
			c.UI.Hyperlinks = false
		}
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "server.url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "server.url").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	if err := setFieldValue(field, value); err != nil {
		return err
	}
	if strings.EqualFold(key, "labels.datasets") {
		c.Labels.keepDefaultListed()
	}
	return nil
}

// keepDefaultListed moves DefaultDataset to the first dataset when a new
// list no longer contains it.
func (l *LabelsConfig) keepDefaultListed() {
	if len(l.Datasets) == 0 {
		return
	}
	for _, d := range l.Datasets {
		if d == l.DefaultDataset {
			return
		}
	}
	l.DefaultDataset = l.Datasets[0]
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			boolVal := strVal == "1" || strings.ToLower(strVal) == "true" || strings.ToLower(strVal) == "yes"
			field.SetBool(boolVal)
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				var items []string
				for _, s := range strings.Split(strVal, ",") {
					if s = strings.TrimSpace(s); s != "" {
						items = append(items, s)
					}
				}
				field.Set(reflect.ValueOf(items))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"server.url",
		"server.timeout_secs",
		"server.user_agent",
		"labels.datasets",
		"labels.default_dataset",
		"labels.drop_stale_suggestions",
		"explain.concept_url",
		"ui.theme",
		"ui.sample_text",
		"ui.hyperlinks",
	}
}
