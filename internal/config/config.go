// Package config loads and validates the rookery configuration file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/daikw/rookery/internal/datafile"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "config/config.json"

	// EnvConfigPath overrides DefaultPath.
	EnvConfigPath = "ROOKERY_CONFIG"
	// EnvAPIKey overrides api_key from the file.
	EnvAPIKey = "ROOKERY_API_KEY"
)

// RequiredKeys must be present in every configuration file.
var RequiredKeys = []string{"endpoint", "api_key", "max_tokens", "bird_data_path", "prompt_data_path"}

// Config is the validated configuration.
type Config struct {
	Endpoint       string `json:"endpoint" yaml:"endpoint"`
	APIKey         string `json:"api_key" yaml:"api_key"`
	MaxTokens      int    `json:"max_tokens" yaml:"max_tokens"`
	BirdDataPath   string `json:"bird_data_path" yaml:"bird_data_path"`
	PromptDataPath string `json:"prompt_data_path" yaml:"prompt_data_path"`
	Voice          *Voice `json:"voice,omitempty" yaml:"voice,omitempty"`
}

// Voice configures optional speech synthesis of generated phrases.
type Voice struct {
	Provider  string  `json:"provider" yaml:"provider"`
	Voice     string  `json:"voice,omitempty" yaml:"voice,omitempty"`
	Format    string  `json:"format,omitempty" yaml:"format,omitempty"`
	Region    string  `json:"region,omitempty" yaml:"region,omitempty"`
	Language  string  `json:"language,omitempty" yaml:"language,omitempty"`
	ProjectID string  `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	Speed     float64 `json:"speed,omitempty" yaml:"speed,omitempty"`
}

// ConfigError reports a missing, unreadable, malformed or invalid configuration.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ResolvePath returns path, or the ROOKERY_CONFIG value, or DefaultPath.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	return DefaultPath
}

// Validate checks a decoded configuration document.
func Validate(raw map[string]any) error {
	for _, key := range RequiredKeys {
		if _, ok := raw[key]; !ok {
			return &ConfigError{Err: fmt.Errorf("missing '%s' in configuration", key)}
		}
	}

	if !isInteger(raw["max_tokens"]) {
		return &ConfigError{Err: errors.New("'max_tokens' must be an integer")}
	}
	return nil
}

func isInteger(v any) bool {
	switch n := v.(type) {
	case int, int32, int64, uint, uint32, uint64:
		return true
	case json.Number:
		_, err := n.Int64()
		return err == nil
	default:
		return false
	}
}

// Load reads, expands, validates and decodes the configuration at path.
func Load(path string) (*Config, error) {
	log.Debug().Str("path", path).Msg("Loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigError{Path: path, Err: fmt.Errorf("configuration file not found: %w", err)}
		}
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("failed to read config file: %w", err)}
	}

	expanded := []byte(expandEnvVars(string(data)))
	yamlFile := datafile.IsYAML(path)

	raw, err := decodeRaw(expanded, yamlFile)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	if err := Validate(raw); err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			ce.Path = path
		}
		return nil, err
	}

	var cfg Config
	if yamlFile {
		err = yaml.Unmarshal(expanded, &cfg)
	} else {
		err = json.Unmarshal(expanded, &cfg)
	}
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("failed to parse config file: %w", err)}
	}

	if key := os.Getenv(EnvAPIKey); key != "" {
		log.Debug().Msg("Using API key from environment")
		cfg.APIKey = key
	}

	log.Debug().
		Str("endpoint", cfg.Endpoint).
		Int("max_tokens", cfg.MaxTokens).
		Str("bird_data_path", cfg.BirdDataPath).
		Str("prompt_data_path", cfg.PromptDataPath).
		Msg("Loaded configuration")
	return &cfg, nil
}

func decodeRaw(data []byte, yamlFile bool) (map[string]any, error) {
	var raw map[string]any
	if yamlFile {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid YAML format: %w", err)
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid JSON format: %w", err)
		}
	}
	if raw == nil {
		return nil, errors.New("configuration is empty")
	}
	return raw, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars substitutes ${NAME} references. Unset names become "".
func expandEnvVars(input string) string {
	unset := 0
	out := envVarPattern.ReplaceAllStringFunc(input, func(ref string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(ref, "${"), "}")
		value, ok := os.LookupEnv(name)
		if !ok {
			unset++
		}
		return value
	})
	if unset > 0 {
		// names stay out of the log, they may hint at secrets
		log.Debug().Int("unset", unset).Msg("Config references unset environment variables")
	}
	return out
}
