package config

import (
	"errors"
	"fmt"

	"github.com/dshills/codepane/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed indicates a value is out of range or malformed.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidColor indicates a color string is not a hex color.
	ErrInvalidColor = errors.New("invalid color")

	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = loader.ErrNotFound

	// ErrUnsupportedFormat indicates the file extension has no decoder.
	ErrUnsupportedFormat = loader.ErrUnsupportedFormat
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
	// Err is the sentinel the error matches.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Message, e.Value)
}

// Unwrap returns the sentinel error.
func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrValidationFailed
	}
	return e.Err
}
