package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Every draft or scenario went through
	ExitFailure      = 1 // Some drafts failed to sync or resolve, or scenarios failed
	ExitCommandError = 2 // Command error (bad flags, unreadable input, database not found)
)

// Error codes carried in the JSON envelope.
const (
	CodeConfig        = "E_CONFIG"
	CodeDatabase      = "E_DATABASE"
	CodeInput         = "E_INPUT"
	CodeSeedFailed    = "E_SEED_FAILED"
	CodeResolveFailed = "E_RESOLVE_FAILED"
	CodeSyncFailed    = "E_SYNC_FAILED"
	CodeTestFailed    = "E_TEST_FAILED"
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int    // ExitFailure or ExitCommandError
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// TextRenderer is implemented by command results that have a human-readable
// form. Results without one are printed with fmt.
type TextRenderer interface {
	RenderText(w io.Writer, verbose bool)
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
}

// CLIResponse is the JSON envelope of every command.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // command result, also present on partial failure
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E_CONFIG", "E_SYNC_FAILED", ...
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	f.renderText(data)
	return nil
}

// Failure outputs a result whose run went through but reported failures, and
// returns the ExitFailure error the command should return.
func (f *OutputFormatter) Failure(code, message string, data any) error {
	if f.Format == "json" {
		if err := f.encode(CLIResponse{
			Status: "error",
			Data:   data,
			Error:  &CLIError{Code: code, Message: message},
		}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, message)
	}

	f.renderText(data)
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return NewExitError(ExitFailure, message)
}

// Error outputs a command error in the configured format and returns the
// ExitCommandError error the command should return.
func (f *OutputFormatter) Error(code, message string, cause error) error {
	var details any
	if cause != nil {
		details = cause.Error()
	}
	if f.Format == "json" {
		if err := f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
		if cause != nil {
			fmt.Fprintf(f.Writer, "Details: %v\n", cause)
		}
	}
	return WrapExitError(ExitCommandError, message, cause)
}

func (f *OutputFormatter) renderText(data any) {
	switch d := data.(type) {
	case nil:
	case TextRenderer:
		d.RenderText(f.Writer, f.Verbose)
	default:
		fmt.Fprintln(f.Writer, d)
	}
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	encoder := json.NewEncoder(f.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}
