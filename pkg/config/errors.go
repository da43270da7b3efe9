package config

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigNotFound indicates the configuration file was not found.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidYAML indicates YAML parsing failed.
	ErrInvalidYAML = errors.New("invalid YAML syntax")

	// ErrValidationFailed indicates configuration validation failed.
	ErrValidationFailed = errors.New("configuration validation failed")

	// ErrWebhookNotFound indicates a referenced webhook destination does not
	// exist in the merged configuration.
	ErrWebhookNotFound = errors.New("webhook destination not found")

	// ErrMissingRequiredField indicates a required field is missing.
	ErrMissingRequiredField = errors.New("missing required field")
)

// ValidationError wraps a single configuration validation failure with
// enough context to point an operator at the offending field.
type ValidationError struct {
	Component string // e.g. "webhook", "cloud", "vectorStore", "llm"
	ID        string // name/provider of the component being validated
	Field     string // field name (optional)
	Err       error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s %q: field %q: %v", e.Component, e.ID, e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Component, e.ID, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error.
func NewValidationError(component, id, field string, err error) *ValidationError {
	return &ValidationError{Component: component, ID: id, Field: field, Err: err}
}

// LoadError wraps a configuration-loading failure with file context.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new load error.
func NewLoadError(file string, err error) *LoadError {
	return &LoadError{File: file, Err: err}
}
