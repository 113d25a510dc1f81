package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Supported file formats.
const (
	FileFormatTOML = "toml"
	FileFormatYAML = "yaml"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CHARSTR_"

// Override adjusts a Config after the file and environment have been
// applied. Command-line flags are passed to Load as overrides.
type Override func(*Config)

// Load builds a Config from defaults, the file at path (skipped when path is
// empty or the file does not exist), environment overrides and then
// overrides, and validates the result.
func Load(path string, overrides ...Override) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Missing file is not an error.
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			format, err := FormatFor(path)
			if err != nil {
				return nil, err
			}
			if err := decode(path, format, data, cfg); err != nil {
				return nil, err
			}
		}
	}

	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromReader decodes a Config in the given format on top of defaults.
// Environment variables are not consulted.
func LoadFromReader(r io.Reader, format string) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := decode("<reader>", format, data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FormatFor picks a file format from the extension of path.
func FormatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FileFormatTOML, nil
	case ".yaml", ".yml":
		return FileFormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// decode parses data into cfg, leaving unset fields at their current values.
func decode(source, format string, data []byte, cfg *Config) error {
	switch format {
	case FileFormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			perr := &ParseError{Path: source, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return perr
		}
	case FileFormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return &ParseError{Path: source, Message: err.Error(), Err: err}
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return nil
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides cfg from CHARSTR_* variables:
//
//	CHARSTR_LOG_LEVEL                 log.level
//	CHARSTR_LOG_PREFIX                log.prefix
//	CHARSTR_OUTPUT_FORMAT             output.format
//	CHARSTR_OUTPUT_GRAPHEMES          output.graphemes
//	CHARSTR_SCRIPT_INSTRUCTION_LIMIT  script.instruction_limit
//	CHARSTR_SCRIPT_TIMEOUT            script.timeout
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_PREFIX"); ok {
		cfg.Log.Prefix = v
	}
	if v, ok := lookup(EnvPrefix + "OUTPUT_FORMAT"); ok {
		cfg.Output.Format = v
	}
	if v, ok := lookup(EnvPrefix + "OUTPUT_GRAPHEMES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &ValidationError{Path: "output.graphemes", Value: v, Message: "must be a boolean"}
		}
		cfg.Output.Graphemes = b
	}
	if v, ok := lookup(EnvPrefix + "SCRIPT_INSTRUCTION_LIMIT"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return &ValidationError{Path: "script.instruction_limit", Value: v, Message: "must be an integer"}
		}
		cfg.Script.InstructionLimit = n
	}
	if v, ok := lookup(EnvPrefix + "SCRIPT_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &ValidationError{Path: "script.timeout", Value: v, Message: "must be a duration"}
		}
		cfg.Script.Timeout = Duration{d}
	}
	return nil
}
