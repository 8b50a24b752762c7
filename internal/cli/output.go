package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/stockroom/internal/inventory"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Generic failure (scenarios failed, unexpected errors)
	ExitCommandError = 2 // Command error (bad arguments, invalid config, unsupported backend)
	ExitValidation   = 3 // Invalid value: negative quantity, duplicate SKU, non-numeric input
	ExitNotFound     = 4 // SKU not in the catalog
	ExitPersistence  = 5 // Loading or saving the catalog failed
)

// Error codes reported in CLI output, one per exit code.
const (
	ErrCodeGeneric     = "E_GENERIC"
	ErrCodeUsage       = "E_USAGE"
	ErrCodeValidation  = "E_VALIDATION"
	ErrCodeNotFound    = "E_NOT_FOUND"
	ErrCodePersistence = "E_PERSISTENCE"
	ErrCodeTestFailed  = "E_TEST_FAILED"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (one of the Exit* constants)
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
// Catalog errors map to their own exit codes. Any other error that is not an
// ExitError comes from cobra's flag and argument checks or from settings
// loading, and yields ExitCommandError (2).
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if code, _ := classify(err); code != ExitFailure {
		return code
	}
	return ExitCommandError
}

// classify maps a catalog error to its exit code and output error code.
func classify(err error) (int, string) {
	switch inventory.CodeOf(err) {
	case inventory.ErrCodeValidation:
		return ExitValidation, ErrCodeValidation
	case inventory.ErrCodeNotFound:
		return ExitNotFound, ErrCodeNotFound
	case inventory.ErrCodePersistence:
		return ExitPersistence, ErrCodePersistence
	}
	return ExitFailure, ErrCodeGeneric
}

// errorCodeFor returns the output error code for an exit code.
func errorCodeFor(exit int) string {
	switch exit {
	case ExitCommandError:
		return ErrCodeUsage
	case ExitValidation:
		return ErrCodeValidation
	case ExitNotFound:
		return ErrCodeNotFound
	case ExitPersistence:
		return ErrCodePersistence
	}
	return ErrCodeGeneric
}

// reportError writes err through the formatter and returns an ExitError
// carrying the matching exit code. Callers return its result from RunE.
func reportError(f *OutputFormatter, err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		_ = f.Error(errorCodeFor(exitErr.Code), exitErr.Error(), nil)
		return exitErr
	}

	exit, code := classify(err)
	var details any
	var invErr *inventory.Error
	if errors.As(err, &invErr) {
		d := map[string]string{"op": invErr.Op}
		if invErr.SKU != "" {
			d["sku"] = invErr.SKU
		}
		details = d
	}
	_ = f.Error(code, err.Error(), details)
	return WrapExitError(exit, code, err)
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E_VALIDATION", "E_NOT_FOUND", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
