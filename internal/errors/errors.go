package errors

import (
	"errors"
	"fmt"
)

// IOError represents a filesystem or process-spawn failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ExecutionError is returned when an external tool exits with a non-zero status.
type ExecutionError struct {
	Command  string
	ExitCode int
	Status   string
}

// Error implements the error interface
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("failed to execute %s\nstatus: %s", e.Command, e.Status)
}

// ParseError represents malformed JSON, TOML, timestamps or schema mismatches.
// Source names the offending file or input.
type ParseError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigurationError represents a missing required file or an unresolvable
// reference, such as a field absent from a tool's output.
type ConfigurationError struct {
	Message string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return e.Message
}

// UnknownBenchmarkError is returned for an unrecognized benchmark identifier.
type UnknownBenchmarkError struct {
	Name string
}

// Error implements the error interface
func (e *UnknownBenchmarkError) Error() string {
	return fmt.Sprintf("unknown benchmark: %s", e.Name)
}

// NewIOError creates a new IOError
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// NewParseError creates a new ParseError
func NewParseError(source string, err error) *ParseError {
	return &ParseError{Source: source, Err: err}
}

// Configurationf creates a ConfigurationError with a formatted message.
func Configurationf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// Chain flattens err and every error it wraps into a list of messages,
// outermost first. Each entry only carries the text its layer added.
func Chain(err error) []string {
	var msgs []string
	for err != nil {
		msg := err.Error()
		next := errors.Unwrap(err)
		if next != nil {
			inner := next.Error()
			if len(msg) > len(inner) && msg[len(msg)-len(inner):] == inner {
				msg = trimSeparator(msg[:len(msg)-len(inner)])
			}
		}
		if msg != "" {
			msgs = append(msgs, msg)
		}
		err = next
	}
	return msgs
}

func trimSeparator(s string) string {
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == ':') {
		s = s[:len(s)-1]
	}
	return s
}
