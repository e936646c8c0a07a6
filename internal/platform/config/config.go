package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultEnvFile             = ".env"
	defaultVDropPercent        = 5.0
	defaultFaultAtLoadFraction = 0.10
	defaultDisconnectionTimeS  = 0.4
	defaultLogLevel            = "info"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Engine  EngineConfig
	Logging LoggingConfig
}

// EngineConfig holds the tunable defaults applied by the sizing engine when
// a request leaves the corresponding field unset.
type EngineConfig struct {
	// DefaultVDropPercent is the allowable voltage drop used when neither an
	// explicit limit nor a load-type default applies.
	DefaultVDropPercent float64
	// FaultAtLoadFraction is the assumed fraction of the system fault
	// current present at the load end of the run.
	FaultAtLoadFraction float64
	// DisconnectionTimeS is the protection clearing time assumed by the
	// adiabatic short-circuit check when the request omits one.
	DisconnectionTimeS float64
}

// LoggingConfig configures structured log output.
type LoggingConfig struct {
	Level string
}

// ValidationError is returned when configuration fields are missing or out
// of range.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups.
// Values in the map take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided
// maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration by combining defaults, .env overrides and
// environment variables.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}

	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	cfg := Config{
		Engine: EngineConfig{
			DefaultVDropPercent: floatWithDefault(lookup, "CABLESIZER_DEFAULT_VDROP_PERCENT", defaultVDropPercent),
			FaultAtLoadFraction: floatWithDefault(lookup, "CABLESIZER_FAULT_AT_LOAD_FRACTION", defaultFaultAtLoadFraction),
			DisconnectionTimeS:  floatWithDefault(lookup, "CABLESIZER_DISCONNECTION_TIME_S", defaultDisconnectionTimeS),
		},
		Logging: LoggingConfig{
			Level: stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validateConfig(cfg Config) error {
	var invalid []string

	if cfg.Engine.DefaultVDropPercent <= 0 || cfg.Engine.DefaultVDropPercent > 100 {
		invalid = append(invalid, "Engine.DefaultVDropPercent")
	}
	if cfg.Engine.FaultAtLoadFraction < 0 || cfg.Engine.FaultAtLoadFraction > 1 {
		invalid = append(invalid, "Engine.FaultAtLoadFraction")
	}
	if cfg.Engine.DisconnectionTimeS <= 0 {
		invalid = append(invalid, "Engine.DisconnectionTimeS")
	}
	if strings.TrimSpace(cfg.Logging.Level) == "" {
		invalid = append(invalid, "Logging.Level")
	}

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		value = strings.Trim(value, "\"'")
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func floatWithDefault(lookup func(string) (string, bool), key string, fallback float64) float64 {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return parsed
		}
	}
	return fallback
}
