package repository

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a setting the client cannot run without.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("inventory index not configured: %s is empty", e.Setting)
}

// ErrNotConfigured is returned before any network call when the API key is missing.
var ErrNotConfigured = &ConfigurationError{Setting: "INVENTORY_API_KEY"}

// UpstreamError reports a failed call to the index.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("inventory index returned %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("inventory index request failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsConfigurationError reports whether err is a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsUpstreamError reports whether err is an *UpstreamError.
func IsUpstreamError(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr)
}
