package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// Reference errors
	ErrMalformedReference = fmt.Errorf("malformed reference")
	ErrUnknownKind        = fmt.Errorf("unknown content kind")
	ErrInvalidReference   = fmt.Errorf("invalid reference")

	// Remote service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrNotFound           = fmt.Errorf("resource not found")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Playback errors
	ErrEmptySearchResult = fmt.Errorf("no search results")
	ErrDeviceNotFound    = fmt.Errorf("device not found")
	ErrNoDevicesFound    = fmt.Errorf("no devices found")
	ErrMissingDeviceID   = fmt.Errorf("missing device id")
	ErrNoActivePlayback  = fmt.Errorf("no current playback")
	ErrQueueUnsupported  = fmt.Errorf("content cannot be queued")
	ErrQueueExpansion    = fmt.Errorf("queue expansion failed")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
