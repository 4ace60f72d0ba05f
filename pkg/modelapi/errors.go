package modelapi

import (
	"errors"
	"fmt"
)

// invalidArgumentError reports a missing or blank required argument.
type invalidArgumentError struct{ name string }

func (e invalidArgumentError) Error() string { return "invalid argument: " + e.name + " is required" }

// ErrInvalidArgument constructs an invalid-argument error for the named parameter.
func ErrInvalidArgument(name string) error { return invalidArgumentError{name: name} }

// IsInvalidArgument reports whether err stems from a missing required argument.
func IsInvalidArgument(err error) bool {
	var e invalidArgumentError
	return errors.As(err, &e)
}

// fileNotFoundError signals that the model file to upload does not exist.
type fileNotFoundError struct{ path string }

func (e fileNotFoundError) Error() string { return "file [" + e.path + "] not found" }

// ErrFileNotFound constructs a not-found error for path.
func ErrFileNotFound(path string) error { return fileNotFoundError{path: path} }

// IsFileNotFound reports whether err indicates a missing local file.
func IsFileNotFound(err error) bool {
	var e fileNotFoundError
	return errors.As(err, &e)
}

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Op     string
	Code   int
	Reason string
	// Body holds the start of the response body, if any.
	Body string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: service responded %d %s", e.Op, e.Code, e.Reason)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// StatusCode returns the HTTP status of the rejected call.
func (e *StatusError) StatusCode() int { return e.Code }

// IsRemoteRejected reports whether err is a non-2xx response from the service.
func IsRemoteRejected(err error) bool {
	var e *StatusError
	return errors.As(err, &e)
}
