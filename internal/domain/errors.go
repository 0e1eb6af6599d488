package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrInvalidReference indicates a ref is neither a branch, a tag, nor a SHA1
	ErrInvalidReference = errors.New("invalid reference")

	// ErrNoRepository indicates the project has no repositories
	ErrNoRepository = errors.New("no repository")

	// ErrAmbiguousRepository indicates the project has several repositories and none was chosen
	ErrAmbiguousRepository = errors.New("ambiguous repository")

	// ErrPathNotFound indicates the remote path does not exist at the requested version
	ErrPathNotFound = errors.New("path not found")

	// ErrDestinationConflict indicates a local file is in the way of a folder mirror
	ErrDestinationConflict = errors.New("destination conflict")

	// ErrUnsupportedOperation indicates the provider cannot serve the call
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// RemoteCallError wraps any failure of the source-control transport
type RemoteCallError struct {
	Op     string
	Target string
	Err    error
}

func (e *RemoteCallError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}

// NewRemoteCallError creates a new RemoteCallError
func NewRemoteCallError(op, target string, err error) *RemoteCallError {
	return &RemoteCallError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

// IsRemoteCall reports whether err came from the remote API
func IsRemoteCall(err error) bool {
	var remote *RemoteCallError
	return errors.As(err, &remote)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Kind classifies err for structured logging
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidReference):
		return "invalid_reference"
	case errors.Is(err, ErrNoRepository):
		return "no_repository"
	case errors.Is(err, ErrAmbiguousRepository):
		return "ambiguous_repository"
	case errors.Is(err, ErrPathNotFound):
		return "path_not_found"
	case errors.Is(err, ErrDestinationConflict):
		return "destination_conflict"
	case IsRemoteCall(err):
		return "remote_call"
	default:
		var validation *ValidationError
		if errors.As(err, &validation) {
			return "validation"
		}
		return "internal"
	}
}

// ExitCode maps an error to the process exit status.
// Every handled failure exits with 1; the kind is carried in the log instead.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
