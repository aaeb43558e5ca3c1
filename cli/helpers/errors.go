package helpers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/beehive/jxunxo/pkg/jsonfmt"
	"github.com/beehive/jxunxo/pkg/shorthand"
	"github.com/charmbracelet/lipgloss"
)

// Error codes reported by the CLI
const (
	CodeEmptyInput  = "EMPTY_INPUT"
	CodeParse       = "PARSE_ERROR"
	CodeInvalidJSON = "INVALID_JSON"
	CodeConfig      = "CONFIG_ERROR"
	CodeIO          = "IO_ERROR"
	CodeInternal    = "INTERNAL_ERROR"
)

// CliError represents a CLI-specific error with enhanced context
type CliError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Cause   error  `json:"-"`
}

func (e *CliError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CliError) Unwrap() error {
	return e.Cause
}

// NewCliError creates a new CLI error
func NewCliError(code, message string, details ...string) *CliError {
	err := &CliError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// WithCause attaches the underlying error so errors.Is keeps working
func (e *CliError) WithCause(cause error) *CliError {
	e.Cause = cause
	return e
}

// FromError classifies err into a CliError.
func FromError(err error) *CliError {
	if err == nil {
		return nil
	}
	var cliErr *CliError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	switch {
	case errors.Is(err, shorthand.ErrEmptyInput):
		return NewCliError(CodeEmptyInput, "no shorthand given").WithCause(err)
	case errors.Is(err, shorthand.ErrParse),
		errors.Is(err, shorthand.ErrUnsupportedKey),
		errors.Is(err, shorthand.ErrNotMapping):
		return NewCliError(CodeParse, "could not parse shorthand", err.Error()).WithCause(err)
	case errors.Is(err, jsonfmt.ErrInvalidJSON):
		return NewCliError(CodeInvalidJSON, "output is not valid JSON", err.Error()).WithCause(err)
	default:
		return NewCliError(CodeInternal, err.Error()).WithCause(err)
	}
}

// FormatError renders err as an indented JSON object or as styled text
func FormatError(err error, asJSON bool) string {
	if err == nil {
		return ""
	}
	cliErr := FromError(err)
	if asJSON {
		return formatErrorJSON(cliErr)
	}
	return formatErrorText(cliErr)
}

func formatErrorJSON(cliErr *CliError) string {
	errorResponse := map[string]any{
		"error":   cliErr.Message,
		"code":    cliErr.Code,
		"details": cliErr.Details,
	}
	jsonBytes, err := json.MarshalIndent(errorResponse, "", "  ")
	if err != nil {
		return `{"error": "JSON marshaling failed", "details": ""}`
	}
	return string(jsonBytes)
}

func formatErrorText(cliErr *CliError) string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF6B6B")).
		Bold(true)
	result := style.Render(fmt.Sprintf("error: %s", cliErr.Message))
	if cliErr.Details != "" {
		detailStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)
		result += "\n" + detailStyle.Render(fmt.Sprintf("details: %s", cliErr.Details))
	}
	return result
}
