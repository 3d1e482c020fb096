package log

import (
	"io"
	"os"
)

// Format selects the log encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatText
)

func (f Format) String() string {
	if f == FormatText {
		return "text"
	}
	return "json"
}

// ParseFormat parses a format name. Unrecognized input falls back to JSON.
func ParseFormat(s string) Format {
	switch s {
	case "text", "TEXT", "console":
		return FormatText
	default:
		return FormatJSON
	}
}

// Output wraps the destination logs are written to.
type Output struct {
	writer io.Writer
}

func (o Output) Writer() io.Writer {
	return o.writer
}

func NewOutput(w io.Writer) Output {
	return Output{writer: w}
}

func OutputStdout() Output {
	return Output{writer: os.Stdout}
}

func OutputStderr() Output {
	return Output{writer: os.Stderr}
}

// OutputDiscard drops everything.
func OutputDiscard() Output {
	return Output{writer: io.Discard}
}

// OutputFile appends to a file, creating it user-readable only.
// Used when the terminal is owned by the full-screen UI.
func OutputFile(path string) (Output, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return Output{}, err
	}
	return Output{writer: f}, nil
}

// Config holds logger configuration resolved at startup.
type Config struct {
	// Level is the minimum level to emit.
	Level Level

	// Format is the output encoding.
	Format Format

	// Output is the destination.
	Output Output

	// AddSource includes source file and line in each entry.
	AddSource bool

	// ServiceName and ServiceVersion identify the binary in shared logs.
	ServiceName    string
	ServiceVersion string
}

// DefaultConfig logs at INFO in JSON to stdout.
func DefaultConfig() Config {
	return Config{
		Level:          LevelInfo,
		Format:         FormatJSON,
		Output:         OutputStdout(),
		ServiceName:    "cqnu",
		ServiceVersion: "dev",
	}
}
