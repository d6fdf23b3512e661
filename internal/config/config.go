package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the top-level aiready configuration.
type Config struct {
	DBPath         string      `mapstructure:"db_path"`
	DBMaxOpenConns int         `mapstructure:"db_max_open_conns"`
	Log            Log         `mapstructure:"log"`
	Provider       Provider    `mapstructure:"provider"`
	Cache          Cache       `mapstructure:"cache"`
	Engine         Engine      `mapstructure:"engine"`
	Blend          Blend       `mapstructure:"blend"`
	Rationalize    Rationalize `mapstructure:"rationalize"`
	Output         Output      `mapstructure:"output"`
}

// Log configures the logrus logger.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Provider configures the recommendation provider transport.
type Provider struct {
	Kind       string        `mapstructure:"kind"`
	APIKey     string        `mapstructure:"api_key"`
	Model      string        `mapstructure:"model"`
	Endpoint   string        `mapstructure:"endpoint"`
	Deployment string        `mapstructure:"deployment"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Cache configures the provider response cache.
type Cache struct {
	Size   int    `mapstructure:"size"`
	Policy string `mapstructure:"policy"`
}

// Engine configures the prioritization pipeline.
type Engine struct {
	TopN             int           `mapstructure:"top_n"`
	WriteConcurrency int           `mapstructure:"write_concurrency"`
	CallTimeout      time.Duration `mapstructure:"call_timeout"`
}

// Blend is the value/ease split of role scores.
type Blend struct {
	ValueWeight float64 `mapstructure:"value_weight"`
	EaseWeight  float64 `mapstructure:"ease_weight"`
}

// Rationalize configures the capability rationalizer.
type Rationalize struct {
	BatchSize int    `mapstructure:"batch_size"`
	Model     string `mapstructure:"model"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a validated Config with all defaults applied. A .env file in
// the working directory, if present, is loaded into the environment first.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()

	v.SetDefault("db_path", filepath.Join(DefaultConfigDir, DefaultDBName))
	v.SetDefault("db_max_open_conns", DefaultDBMaxOpenConns)
	v.SetDefault("log.level", DefaultLog.Level)
	v.SetDefault("log.format", DefaultLog.Format)
	v.SetDefault("provider.kind", DefaultProvider.Kind)
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.model", DefaultProvider.Model)
	v.SetDefault("provider.endpoint", "")
	v.SetDefault("provider.deployment", "")
	v.SetDefault("provider.timeout", DefaultProvider.Timeout)
	v.SetDefault("cache.size", DefaultCache.Size)
	v.SetDefault("cache.policy", DefaultCache.Policy)
	v.SetDefault("engine.top_n", DefaultEngine.TopN)
	v.SetDefault("engine.write_concurrency", DefaultEngine.WriteConcurrency)
	v.SetDefault("engine.call_timeout", DefaultEngine.CallTimeout)
	v.SetDefault("blend.value_weight", DefaultBlend.ValueWeight)
	v.SetDefault("blend.ease_weight", DefaultBlend.EaseWeight)
	v.SetDefault("rationalize.batch_size", DefaultRationalize.BatchSize)
	v.SetDefault("rationalize.model", DefaultRationalize.Model)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Missing config file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.DBPath = expandPath(cfg.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Provider.Kind {
	case ProviderAnthropic, ProviderAzure, ProviderNone:
	default:
		return fmt.Errorf("%w: unknown provider kind %q", ErrInvalidConfig, c.Provider.Kind)
	}
	if c.Engine.TopN <= 0 {
		return fmt.Errorf("%w: engine.top_n must be positive", ErrInvalidConfig)
	}
	if c.Engine.WriteConcurrency <= 0 {
		return fmt.Errorf("%w: engine.write_concurrency must be positive", ErrInvalidConfig)
	}
	if c.DBMaxOpenConns <= 0 {
		return fmt.Errorf("%w: db_max_open_conns must be positive", ErrInvalidConfig)
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("%w: cache.size must be positive", ErrInvalidConfig)
	}
	for name, w := range map[string]float64{"blend.value_weight": c.Blend.ValueWeight, "blend.ease_weight": c.Blend.EaseWeight} {
		if w < 0 || w > 1 {
			return fmt.Errorf("%w: %s must be within [0,1]", ErrInvalidConfig, name)
		}
	}
	return nil
}

// RationalizeBatchSize clamps the configured batch size to 10..50.
func (c *Config) RationalizeBatchSize() int {
	switch n := c.Rationalize.BatchSize; {
	case n < 10:
		return 10
	case n > 50:
		return 50
	default:
		return n
	}
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
