// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrNoData           = errors.New("no data returned")
	ErrDeadlineExceeded = errors.New("fetch deadline exceeded")
	ErrRateLimited      = errors.New("rate limited")
)

// FetchError represents a failure from an external data source. The shell
// layers summarize these into the Snapshot error field; the decision core
// never sees them directly.
type FetchError struct {
	Source string
	Ticker string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Ticker != "" {
		return fmt.Sprintf("fetch error [%s] %s: %v", e.Source, e.Ticker, e.Err)
	}
	return fmt.Sprintf("fetch error [%s]: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError.
func NewFetchError(source, ticker string, err error) *FetchError {
	return &FetchError{Source: source, Ticker: ticker, Err: err}
}

// ScrapeError represents a failure parsing an external HTML or JSON payload.
type ScrapeError struct {
	Source  string
	Ticker  string
	Message string
	Err     error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scrape error [%s] %s: %s: %v", e.Source, e.Ticker, e.Message, e.Err)
	}
	return fmt.Sprintf("scrape error [%s] %s: %s", e.Source, e.Ticker, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(source, ticker, message string, err error) *ScrapeError {
	return &ScrapeError{Source: source, Ticker: ticker, Message: message, Err: err}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
