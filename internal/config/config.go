package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// LOGTRIAGE_ENGINE_WORKERS.
const EnvPrefix = "LOGTRIAGE"

// Config holds all logtriage configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source" mapstructure:"source"`
	Engine  EngineConfig  `yaml:"engine" mapstructure:"engine"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// SourceConfig selects where log lines are read from.
type SourceConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // file, stdin or http
	Path     string `yaml:"path" mapstructure:"path"`         // file path or URL
	Token    string `yaml:"token" mapstructure:"token"`       // bearer token for http
}

// EngineConfig holds extraction and classification settings.
type EngineConfig struct {
	Timezone          string   `yaml:"timezone" mapstructure:"timezone"`
	MinTokens         int      `yaml:"min_tokens" mapstructure:"min_tokens"`
	Workers           int      `yaml:"workers" mapstructure:"workers"`
	CriticalThreshold int      `yaml:"critical_threshold" mapstructure:"critical_threshold"`
	HighThreshold     int      `yaml:"high_threshold" mapstructure:"high_threshold"`
	HighKeywords      []string `yaml:"high_keywords" mapstructure:"high_keywords"`
	MediumKeywords    []string `yaml:"medium_keywords" mapstructure:"medium_keywords"`
}

// OutputConfig holds report rendering settings.
type OutputConfig struct {
	Format    string `yaml:"format" mapstructure:"format"`       // json, yaml, table
	Mode      string `yaml:"mode" mapstructure:"mode"`           // human, technical
	Verbosity string `yaml:"verbosity" mapstructure:"verbosity"` // minimal, standard, full
	Pretty    bool   `yaml:"pretty" mapstructure:"pretty"`
	Top       int    `yaml:"top" mapstructure:"top"`
	Path      string `yaml:"path" mapstructure:"path"` // optional NDJSON copy of the report
}

// LoggingConfig captures logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or console
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// SetDefaults registers every default on v. Exposed so the CLI can bind
// flags against the same keys.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source.provider", "file")
	v.SetDefault("source.path", "")
	v.SetDefault("source.token", "")

	v.SetDefault("engine.timezone", "UTC")
	v.SetDefault("engine.min_tokens", 3)
	v.SetDefault("engine.workers", 1)
	v.SetDefault("engine.critical_threshold", 5)
	v.SetDefault("engine.high_threshold", 3)
	v.SetDefault("engine.high_keywords", []string{})
	v.SetDefault("engine.medium_keywords", []string{})

	v.SetDefault("output.format", "json")
	v.SetDefault("output.mode", "human")
	v.SetDefault("output.verbosity", "standard")
	v.SetDefault("output.pretty", false)
	v.SetDefault("output.top", 0)
	v.SetDefault("output.path", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("metrics.file", "")
}

// Load reads configuration from the provided path and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	return LoadWith(v, configPath)
}

// LoadWith reads configuration into an existing viper instance, which may
// already carry bound flags.
func LoadWith(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("logtriage")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/logtriage")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Engine.MinTokens < 0 {
		errs = append(errs, fmt.Errorf("engine.min_tokens must be >= 0, got %d", c.Engine.MinTokens))
	}
	if c.Engine.Workers < 1 {
		errs = append(errs, fmt.Errorf("engine.workers must be >= 1, got %d", c.Engine.Workers))
	}
	if c.Engine.HighThreshold < 1 || c.Engine.CriticalThreshold < c.Engine.HighThreshold {
		errs = append(errs, fmt.Errorf("engine thresholds must satisfy 1 <= high (%d) <= critical (%d)",
			c.Engine.HighThreshold, c.Engine.CriticalThreshold))
	}
	switch c.Source.Provider {
	case "file", "stdin", "http":
	default:
		errs = append(errs, fmt.Errorf("source.provider must be file, stdin or http, got %q", c.Source.Provider))
	}
	if c.Output.Top < 0 {
		errs = append(errs, fmt.Errorf("output.top must be >= 0, got %d", c.Output.Top))
	}
	switch c.Output.Format {
	case "json", "yaml", "table":
	default:
		errs = append(errs, fmt.Errorf("output.format must be json, yaml or table, got %q", c.Output.Format))
	}
	switch c.Output.Mode {
	case "human", "technical":
	default:
		errs = append(errs, fmt.Errorf("output.mode must be human or technical, got %q", c.Output.Mode))
	}
	switch c.Output.Verbosity {
	case "minimal", "standard", "full":
	default:
		errs = append(errs, fmt.Errorf("output.verbosity must be minimal, standard or full, got %q", c.Output.Verbosity))
	}
	return errors.Join(errs...)
}
