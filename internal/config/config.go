package config

import (
	"fmt"
	"time"

	"github.com/dshills/charstr/internal/logging"
)

// Output formats.
const (
	FormatText = "text"
	FormatHex  = "hex"
)

// Config holds all charstr settings.
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Script ScriptConfig `toml:"script" yaml:"script"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// Prefix is written on every log line.
	Prefix string `toml:"prefix" yaml:"prefix"`
}

// OutputConfig configures how strings and characters are printed.
type OutputConfig struct {
	// Format is "text" or "hex".
	Format string `toml:"format" yaml:"format"`
	// Graphemes adds grapheme and display width columns to inspect output.
	Graphemes bool `toml:"graphemes" yaml:"graphemes"`
}

// ScriptConfig configures the Lua runtime.
type ScriptConfig struct {
	// InstructionLimit caps Lua instructions per run; 0 disables the cap.
	InstructionLimit int64 `toml:"instruction_limit" yaml:"instruction_limit"`
	// Timeout bounds a script run, e.g. "5s".
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// Duration is a time.Duration that decodes from strings like "1.5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Prefix: "charstr",
		},
		Output: OutputConfig{
			Format:    FormatText,
			Graphemes: true,
		},
		Script: ScriptConfig{
			InstructionLimit: 10_000_000,
			Timeout:          Duration{5 * time.Second},
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return &ValidationError{Path: "log.level", Value: c.Log.Level, Message: err.Error()}
	}

	switch c.Output.Format {
	case FormatText, FormatHex:
	default:
		return &ValidationError{
			Path:    "output.format",
			Value:   c.Output.Format,
			Message: fmt.Sprintf("must be %q or %q", FormatText, FormatHex),
		}
	}

	if c.Script.InstructionLimit < 0 {
		return &ValidationError{Path: "script.instruction_limit", Value: c.Script.InstructionLimit, Message: "must not be negative"}
	}
	if c.Script.Timeout.Duration < 0 {
		return &ValidationError{Path: "script.timeout", Value: c.Script.Timeout, Message: "must not be negative"}
	}
	return nil
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}
