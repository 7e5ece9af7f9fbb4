// Package logging builds the slog loggers used by lens tooling.
package logging

import (
	"fmt"
	"io"
	"os"
)

// Format selects the slog handler.
type Format string

const (
	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
	// FormatText writes logfmt-style key=value records.
	FormatText Format = "text"
)

// Config configures a logger.
type Config struct {
	// Level is the minimum level written. Unset means LevelInfo.
	Level Level

	// Format is json or text.
	Format Format

	// Output receives the records. Nil means stderr.
	Output io.Writer

	// AddSource adds the caller's file and line.
	AddSource bool

	// Redact masks sensitive attribute values.
	Redact bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: os.Stderr,
		Redact: true,
	}
}

// Validate fills zero fields and rejects unknown formats.
func (c *Config) Validate() error {
	if c.Output == nil {
		c.Output = os.Stderr
	}
	switch c.Format {
	case "":
		c.Format = FormatJSON
	case FormatJSON, FormatText:
	default:
		return fmt.Errorf("unknown log format %q", c.Format)
	}
	if c.Level < LevelDebug || c.Level > LevelError {
		return fmt.Errorf("unknown log level %d", c.Level)
	}
	return nil
}
