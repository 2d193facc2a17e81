package speaker

import "errors"

var (
	// ErrNotFound indicates a speaker or resource was not found
	ErrNotFound = errors.New("speaker not found")

	// ErrTimeout indicates an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrNotConnected indicates the speaker connection is down
	ErrNotConnected = errors.New("speaker not connected")

	// ErrUnsupported indicates an operation the speaker lacks a capability for
	ErrUnsupported = errors.New("operation not supported")

	// ErrValidation indicates a state payload failed schema validation
	ErrValidation = errors.New("validation error")

	// ErrBadPayload indicates a fetch result that could not be normalized
	// into a mapping
	ErrBadPayload = errors.New("malformed payload")
)
