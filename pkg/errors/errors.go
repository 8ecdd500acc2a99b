package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeFetch represents network, timeout, or unexpected-status errors
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeStorage represents state persistence errors
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeNotify represents notification dispatch errors
	ErrorTypeNotify ErrorType = "notify"
	// ErrorTypeCycle represents unexpected failures within one watch cycle
	ErrorTypeCycle ErrorType = "cycle"
	// ErrorTypeRateLimit represents rate limiting by the source site
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// WatchError represents a watcher-specific error
type WatchError struct {
	Type      ErrorType
	Component string
	Message   string
	Err       error
	Time      time.Time
}

// Error implements the error interface
func (e *WatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Component, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Component, e.Message)
}

// Unwrap returns the underlying error
func (e *WatchError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the next cycle may succeed without intervention
func (e *WatchError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeFetch:
		return true
	case ErrorTypeRateLimit:
		return false
	case ErrorTypeConfiguration:
		return false
	default:
		return false
	}
}

// New creates a new WatchError
func New(errType ErrorType, component, message string, err error) *WatchError {
	return &WatchError{
		Type:      errType,
		Component: component,
		Message:   message,
		Err:       err,
		Time:      time.Now(),
	}
}

// NewFetch creates a new fetch error
func NewFetch(component, message string, err error) *WatchError {
	return New(ErrorTypeFetch, component, message, err)
}

// NewStorage creates a new storage error
func NewStorage(component, message string, err error) *WatchError {
	return New(ErrorTypeStorage, component, message, err)
}

// NewNotify creates a new notification error
func NewNotify(component, message string, err error) *WatchError {
	return New(ErrorTypeNotify, component, message, err)
}

// NewCycle creates a new cycle error
func NewCycle(component, message string, err error) *WatchError {
	return New(ErrorTypeCycle, component, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(component string, duration time.Duration) *WatchError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, component, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(component, message string) *WatchError {
	return New(ErrorTypeConfiguration, component, message, nil)
}
