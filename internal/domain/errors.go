// Package domain contains the view link types and errors.
// Domain errors carry a stable Code that callers branch on; the message is for humans.
// They are infrastructure-agnostic and can be mapped to exit codes, HTTP statuses, etc by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Code identifies a single view link failure category.
// Values are stable and must never be renumbered.
type Code int

// Failure codes.
const (
	// CodeConfigNotFound indicates the settings provider returned nothing.
	CodeConfigNotFound Code = iota + 1

	// CodeInvalidConfig indicates the settings value is not an object.
	CodeInvalidConfig

	// CodeInvalidService indicates the service name is not a string.
	CodeInvalidService

	// CodeInvalidEntity indicates the entity name is not a string.
	CodeInvalidEntity

	// CodeInvalidEntityID indicates the entity ID is not a string.
	CodeInvalidEntityID

	// CodeInvalidParams indicates the query params are not an object.
	CodeInvalidParams

	// CodeInvalidEntries indicates the path entries are not a non-empty list.
	CodeInvalidEntries

	// CodeNoStageName indicates the stage environment variable is not set.
	CodeNoStageName

	// CodeInvalidHostsInConfig indicates the hosts entry is missing or not an object.
	CodeInvalidHostsInConfig

	// CodeHostNotFound indicates there is no host for the current stage.
	CodeHostNotFound

	// CodeURLError indicates the URL could not be built from the resolved host.
	CodeURLError
)

var codeNames = map[Code]string{
	CodeConfigNotFound:       "CONFIG_NOT_FOUND",
	CodeInvalidConfig:        "INVALID_CONFIG",
	CodeInvalidService:       "INVALID_SERVICE",
	CodeInvalidEntity:        "INVALID_ENTITY",
	CodeInvalidEntityID:      "INVALID_ENTITY_ID",
	CodeInvalidParams:        "INVALID_PARAMS",
	CodeInvalidEntries:       "INVALID_ENTRIES",
	CodeNoStageName:          "NO_STAGE_NAME",
	CodeInvalidHostsInConfig: "INVALID_HOSTS_IN_CONFIG",
	CodeHostNotFound:         "HOST_NOT_FOUND",
	CodeURLError:             "URL_ERROR",
}

// Codes returns every defined code in numeric order.
func Codes() []Code {
	codes := make([]Code, 0, len(codeNames))
	for c := CodeConfigNotFound; c <= CodeURLError; c++ {
		codes = append(codes, c)
	}

	return codes
}

// String returns the symbolic name of the code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return fmt.Sprintf("Code(%d)", int(c))
}

// Valid reports whether c is one of the defined codes.
func (c Code) Valid() bool {
	_, ok := codeNames[c]
	return ok
}

// Error lets a bare Code be used as an errors.Is target.
func (c Code) Error() string {
	return c.String()
}

// ViewLinkError is the only error type returned by link operations.
type ViewLinkError struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ViewLinkError) Error() string {
	return e.Message
}

// Unwrap returns the low-level cause, if any.
func (e *ViewLinkError) Unwrap() error {
	return e.Err
}

// Is matches another *ViewLinkError or a bare Code with the same code.
func (e *ViewLinkError) Is(target error) bool {
	switch t := target.(type) {
	case Code:
		return e.Code == t
	case *ViewLinkError:
		return t != nil && e.Code == t.Code
	default:
		return false
	}
}

// NewError creates a view link error with the given code.
func NewError(code Code, message string) error {
	return &ViewLinkError{Code: code, Message: message}
}

// WrapError creates a view link error that keeps err as its cause.
// The message defaults to the cause's message.
func WrapError(code Code, err error) error {
	msg := code.String()
	if err != nil {
		msg = err.Error()
	}

	return &ViewLinkError{Code: code, Message: msg, Err: err}
}

// CodeOf extracts the code from err. It returns false if err is not a view link error.
func CodeOf(err error) (Code, bool) {
	var vlErr *ViewLinkError
	if errors.As(err, &vlErr) {
		return vlErr.Code, true
	}

	return 0, false
}

// HasCode checks if err is a view link error carrying code.
func HasCode(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// IsConfigError checks if err is a configuration shape error.
func IsConfigError(err error) bool {
	c, ok := CodeOf(err)
	return ok && (c == CodeConfigNotFound || c == CodeInvalidConfig || c == CodeInvalidHostsInConfig)
}

// IsResolutionError checks if err is a stage or host resolution error.
func IsResolutionError(err error) bool {
	c, ok := CodeOf(err)
	return ok && (c == CodeNoStageName || c == CodeHostNotFound)
}

// IsValidationError checks if err is an input validation error.
func IsValidationError(err error) bool {
	c, ok := CodeOf(err)
	if !ok {
		return false
	}

	switch c {
	case CodeInvalidService, CodeInvalidEntity, CodeInvalidEntityID, CodeInvalidParams, CodeInvalidEntries:
		return true
	default:
		return false
	}
}
