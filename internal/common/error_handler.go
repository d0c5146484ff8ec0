package common

import (
	"errors"
	"strings"
)

// Errors cross package boundaries as prefixed strings so that callers can
// classify them without importing backend-specific error types. Every
// constructor keeps the offending value in the message so the HTTP layer
// can produce a precise response body.

const (
	prefixNotFound      = "404 Not Found: "
	prefixMalformed     = "400 Malformed Identifier: "
	prefixBadRequest    = "400 Bad Request: "
	prefixInvalidID     = "400 Invalid IdShort: "
	prefixDuplicateID   = "409 Duplicate IdShort: "
	prefixDenied        = "403 Denied: "
	prefixUnsupported   = "400 Unsupported Format: "
	prefixRenderFailure = "502 Render Failure: "
	prefixInternal      = "500 Internal Server Error: "
)

func NewErrNotFound(elementId string) error {
	return errors.New(prefixNotFound + elementId)
}

func NewErrMalformedIdentifier(token string) error {
	return errors.New(prefixMalformed + token)
}

func NewErrBadRequest(message string) error {
	return errors.New(prefixBadRequest + message)
}

func NewErrInvalidIdShort(message string) error {
	return errors.New(prefixInvalidID + message)
}

func NewErrDuplicateIdShort(idShort string) error {
	return errors.New(prefixDuplicateID + idShort)
}

// NewErrDenied signals that the role projector excludes access. The HTTP
// boundary answers it with a not-found response so that access decisions
// never reveal submodel existence.
func NewErrDenied(elementId string) error {
	return errors.New(prefixDenied + elementId)
}

func NewErrUnsupportedFormat(format string) error {
	return errors.New(prefixUnsupported + format)
}

func NewErrRenderFailure(message string) error {
	return errors.New(prefixRenderFailure + message)
}

func NewInternalServerError(message string) error {
	return errors.New(prefixInternal + message)
}

func IsErrNotFound(err error) bool {
	return hasPrefix(err, prefixNotFound)
}

func IsErrMalformedIdentifier(err error) bool {
	return hasPrefix(err, prefixMalformed)
}

func IsErrBadRequest(err error) bool {
	return hasPrefix(err, prefixBadRequest)
}

func IsErrInvalidIdShort(err error) bool {
	return hasPrefix(err, prefixInvalidID)
}

func IsErrDuplicateIdShort(err error) bool {
	return hasPrefix(err, prefixDuplicateID)
}

func IsErrDenied(err error) bool {
	return hasPrefix(err, prefixDenied)
}

func IsErrUnsupportedFormat(err error) bool {
	return hasPrefix(err, prefixUnsupported)
}

func IsErrRenderFailure(err error) bool {
	return hasPrefix(err, prefixRenderFailure)
}

func hasPrefix(err error, prefix string) bool {
	return err != nil && strings.HasPrefix(err.Error(), prefix)
}
