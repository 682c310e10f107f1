package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed    = fmt.Errorf("authentication failed")
	ErrUnauthorized  = fmt.Errorf("unauthorized")
	ErrTokenExpired  = fmt.Errorf("token expired")
	ErrTimeout       = fmt.Errorf("operation timed out")
	ErrStateMismatch = fmt.Errorf("oauth state mismatch")

	// API and transport errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrNetwork            = fmt.Errorf("network error")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrDecode             = fmt.Errorf("failed to decode response")

	// Input validation errors
	ErrInvalidURL      = fmt.Errorf("invalid URL")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
