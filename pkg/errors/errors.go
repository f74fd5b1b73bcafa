package errors

import (
	"errors"
	"fmt"
)

// Error represents an lnxconfig error with context
type Error struct {
	// Code is the error code (e.g., "CONFIG_TOKEN_COUNT")
	Code string
	// Message is the human-readable error message
	Message string
	// Cause describes why the error occurred
	Cause string
	// Action suggests what the user should do
	Action string
	// Source names the input (usually a file path), empty if unknown
	Source string
	// Line is the 1-based line number the error refers to, 0 if none
	Line int
	// Text is the offending line as read from the input
	Text string
	// Underlying is the wrapped error
	Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	switch {
	case e.Line > 0 && e.Source != "":
		msg = fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Message)
	case e.Line > 0:
		msg = fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	if e.Underlying != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Underlying)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap implements errors.Unwrap
func (e *Error) Unwrap() error {
	return e.Underlying
}

// New creates a new Error
func New(code, message, cause, action string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
		Action:  action,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, code, message, cause, action string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Cause:      cause,
		Action:     action,
		Underlying: err,
	}
}

// AtLine attaches a line number and the line text to the error
func (e *Error) AtLine(line int, text string) *Error {
	e.Line = line
	e.Text = text
	return e
}

// Common error codes
const (
	// File access errors
	ErrCodeConfigNotFound   = "CONFIG_NOT_FOUND"
	ErrCodeConfigPermission = "CONFIG_PERMISSION_ERROR"
	ErrCodeConfigRead       = "CONFIG_READ_ERROR"

	// Directive errors
	ErrCodeTokenCount        = "CONFIG_TOKEN_COUNT"
	ErrCodeAddressFormat     = "CONFIG_ADDRESS_FORMAT"
	ErrCodeUnrecognizedValue = "CONFIG_UNRECOGNIZED_VALUE"
	ErrCodeNumberRange       = "CONFIG_NUMBER_RANGE"

	// Semantic errors
	ErrCodeConfigValidation = "CONFIG_VALIDATION_ERROR"

	// Tooling errors
	ErrCodeSettings = "SETTINGS_ERROR"
)

// Common error constructors

// ConfigNotFound creates a config not found error
func ConfigNotFound(path string, err error) *Error {
	return Wrap(
		err,
		ErrCodeConfigNotFound,
		fmt.Sprintf("Configuration file not found: %s", path),
		"The specified lnx file does not exist",
		"Check the file path passed to the simulator",
	)
}

// ConfigOpenError creates an error for a file that exists but cannot be opened
func ConfigOpenError(path string, err error) *Error {
	return Wrap(
		err,
		ErrCodeConfigPermission,
		fmt.Sprintf("Failed to open configuration file: %s", path),
		"Permission denied or file is not readable",
		"Check file permissions with 'ls -l' and ensure the file is readable",
	)
}

// ConfigReadError creates an error for an I/O failure while reading lines
func ConfigReadError(path string, line int, err error) *Error {
	e := Wrap(
		err,
		ErrCodeConfigRead,
		fmt.Sprintf("Failed to read configuration file: %s", path),
		"The file could not be read to the end",
		"Check that the file is a regular text file with lines of reasonable length",
	)
	e.Line = line
	return e
}

// TokenCount creates an error for a directive with the wrong number of fields
func TokenCount(directive string, want int) *Error {
	return New(
		ErrCodeTokenCount,
		fmt.Sprintf("Did not find enough tokens for '%s' (want %d)", directive, want),
		"The directive does not match its expected field layout",
		"Compare the line with the lnx directive grammar",
	)
}

// AddressFormat creates an error for a malformed IPv4 literal
func AddressFormat(field, value string, err error) *Error {
	return Wrap(
		err,
		ErrCodeAddressFormat,
		fmt.Sprintf("Failed to parse IP address for %s: %q", field, value),
		"Address fields must be dotted-quad IPv4 addresses",
		"Fix the address, e.g. 10.0.0.1",
	)
}

// UnrecognizedValue creates an error for an unknown keyword value
func UnrecognizedValue(what, value string) *Error {
	return New(
		ErrCodeUnrecognizedValue,
		fmt.Sprintf("Unrecognized %s: %q", what, value),
		"The value is not one of the supported keywords",
		"Use one of the keywords documented for this directive",
	)
}

// NumberRange creates an error for a numeric field outside its range
func NumberRange(field, value string, err error) *Error {
	return Wrap(
		err,
		ErrCodeNumberRange,
		fmt.Sprintf("Value out of range for %s: %s", field, value),
		"The number does not fit the field",
		"Use a smaller value",
	)
}

// ConfigValidation creates a semantic validation error wrapping all violations
func ConfigValidation(err error) *Error {
	return Wrap(
		err,
		ErrCodeConfigValidation,
		"Configuration validation failed",
		"The configuration parsed but is not internally consistent",
		"Review the listed problems and fix the lnx file",
	)
}

// HasCode reports whether err's chain contains an *Error with the given code
func HasCode(err error, code string) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
