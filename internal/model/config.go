package model

import "time"

// Config holds every tunable of a spell-check run
type Config struct {
	// Dictionary is the word-list path used when none is given on the command line
	Dictionary string `yaml:"dictionary" mapstructure:"dictionary"`

	// Encoding names the charset of the word list and the input files
	Encoding string `yaml:"encoding" mapstructure:"encoding"`

	// LogLevel sets diagnostic verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	Select      SelectConfig      `yaml:"select" mapstructure:"select"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Throttle    ThrottleConfig    `yaml:"throttle" mapstructure:"throttle"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// SelectConfig decides which files inside a directory get checked
type SelectConfig struct {
	Pattern    string `yaml:"pattern" mapstructure:"pattern"`         // substring the file path must contain
	SkipHidden bool   `yaml:"skip_hidden" mapstructure:"skip_hidden"` // skip entries whose name starts with "."
}

// ConcurrencyConfig bounds parallel file checks
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"` // 1 = sequential
}

// ThrottleConfig limits how fast files are opened under each root path
type ThrottleConfig struct {
	FilesPerSecond float64        `yaml:"files_per_second" mapstructure:"files_per_second"` // 0 = unlimited
	Burst          int            `yaml:"burst" mapstructure:"burst"`
	Roots          []RootThrottle `yaml:"roots" mapstructure:"roots"` // per-root overrides
}

// RootThrottle overrides the file rate for one command-line path
type RootThrottle struct {
	Path           string  `yaml:"path" mapstructure:"path"`
	FilesPerSecond float64 `yaml:"files_per_second" mapstructure:"files_per_second"` // 0 = unlimited
	Burst          int     `yaml:"burst" mapstructure:"burst"`                       // 0 = throttle.burst
}

// CacheConfig controls verdict memoization
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	JSON  string `yaml:"json" mapstructure:"json"`   // optional JSON report path
	Color string `yaml:"color" mapstructure:"color"` // auto, always, never
}

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() *Config {
	return &Config{
		Encoding: "utf-8",
		LogLevel: "warn",
		Select: SelectConfig{
			Pattern:    ".txt",
			SkipHidden: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 1,
		},
		Throttle: ThrottleConfig{
			FilesPerSecond: 0,
			Burst:          5,
			Roots:          []RootThrottle{},
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             30 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}
