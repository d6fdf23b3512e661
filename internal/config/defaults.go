// Package config provides configuration loading and defaults for aiready.
package config

import "time"

// DefaultConfigDir is the default location for aiready configuration.
const DefaultConfigDir = "~/.config/aiready"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "aiready.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// EnvPrefix prefixes every environment override, e.g. AIREADY_PROVIDER_API_KEY.
const EnvPrefix = "AIREADY"

// Provider kinds.
const (
	ProviderAnthropic = "anthropic"
	ProviderAzure     = "azure"
	ProviderNone      = "none"
)

// DefaultLog holds the default logging settings.
var DefaultLog = Log{
	Level:  "info",
	Format: "text",
}

// DefaultProvider holds the default recommendation provider settings.
var DefaultProvider = Provider{
	Kind:    ProviderAnthropic,
	Model:   "claude-sonnet-4-20250514",
	Timeout: 60 * time.Second,
}

// DefaultCache holds the default response cache settings.
var DefaultCache = Cache{
	Size:   1000,
	Policy: "lru",
}

// DefaultEngine holds the default prioritization engine settings.
var DefaultEngine = Engine{
	TopN:             3,
	WriteConcurrency: 4,
	CallTimeout:      90 * time.Second,
}

// DefaultBlend is the canonical 60/40 value/ease split.
var DefaultBlend = Blend{
	ValueWeight: 0.6,
	EaseWeight:  0.4,
}

// DefaultRationalize holds the default rationalizer settings.
var DefaultRationalize = Rationalize{
	BatchSize: 25,
	Model:     "gpt-4-turbo",
}

// DefaultDBMaxOpenConns bounds the sql.DB pool.
const DefaultDBMaxOpenConns = 4

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
