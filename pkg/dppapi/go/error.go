/*
 * Digital Product Passport | HTTP/REST | DPP Shell Service
 *
 * Shell repository, role-filtered passport views and graph visualization
 * for Digital Product Passports built on the Asset Administration Shell
 * metamodel.
 *
 * API version: 1.0.0
 */

package openapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dpp40/dpp-go-components/internal/common"
	"github.com/dpp40/dpp-go-components/internal/common/model"
)

var (
	// ErrTypeAssertionError is thrown when type an interface does not match the asserted type
	ErrTypeAssertionError = errors.New("unable to assert type")
)

// ParsingError indicates that an error has occurred when parsing request parameters
type ParsingError struct {
	Param string
	Err   error
}

func (e *ParsingError) Unwrap() error {
	return e.Err
}

func (e *ParsingError) Error() string {
	if e.Param == "" {
		return e.Err.Error()
	}

	return e.Param + ": " + e.Err.Error()
}

// RequiredError indicates that an error has occurred when parsing request parameters
type RequiredError struct {
	Field string
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("required field '%s' is zero value.", e.Field)
}

// ErrorHandler defines the required method for handling error. You may implement it and inject this into a controller if
// you would like errors to be handled differently from the DefaultErrorHandler
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error, result *model.ImplResponse)

// DefaultErrorHandler maps service errors onto the wire. Parsing errors
// become bad requests; the domain taxonomy is classified through the
// shared predicates. Denied and malformed identifiers are answered as
// not found so neither resource existence nor access rules leak.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error, _ *model.ImplResponse) {
	var parsingErr *ParsingError
	if ok := errors.As(err, &parsingErr); ok {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var requiredErr *RequiredError
	if ok := errors.As(err, &requiredErr); ok {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	code, text := classify(err)
	writeError(w, code, text)
}

func classify(err error) (int, string) {
	switch {
	case common.IsErrDenied(err), common.IsErrMalformedIdentifier(err):
		return http.StatusNotFound, "404 Not Found: requested resource"
	case common.IsErrNotFound(err):
		return http.StatusNotFound, err.Error()
	case common.IsErrInvalidIdShort(err),
		common.IsErrBadRequest(err),
		common.IsErrUnsupportedFormat(err):
		return http.StatusBadRequest, err.Error()
	case common.IsErrDuplicateIdShort(err):
		return http.StatusConflict, err.Error()
	case common.IsErrRenderFailure(err):
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func writeError(w http.ResponseWriter, code int, text string) {
	body := model.NewErrorResult(text, http.StatusText(code))
	_ = EncodeJSONResponse(body, &code, w)
}
