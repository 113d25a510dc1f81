// Package config provides configuration for the charstr command.
//
// # Layers
//
// Settings are resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← applied by cmd/charstr
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← CHARSTR_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← charstr.toml / charstr.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// # File Formats
//
// The file format is chosen by extension: .toml files are decoded with
// go-toml, .yaml and .yml files with yaml.v3. Unknown keys are rejected in
// both formats.
//
//	[log]
//	level = "debug"
//
//	[output]
//	format = "hex"
//
//	[script]
//	instruction_limit = 1000000
//	timeout = "2s"
//
// # Errors
//
// Malformed files produce a *ParseError carrying the file path and, for TOML,
// the line and column. Out-of-range values produce a *ValidationError that
// unwraps to ErrValidationFailed.
package config
