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
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dpp40/dpp-go-components/internal/common/model"
)

// Route defines the parameters for an API endpoint.
//
// It encapsulates the HTTP method, URL pattern, and handler function for a
// single API route in the DPP Shell Service.
type Route struct {
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// Routes is a map of defined API endpoints.
//
// The map key is a unique identifier for the route, and the value contains
// the route's method, pattern, and handler function.
type Routes map[string]Route

// Router defines the required methods for retrieving API routes.
type Router interface {
	Routes() Routes
}

// NewRouter creates a new chi router for any number of API routers.
//
// This function initializes a chi router with logging middleware, then
// registers all routes from the provided Router implementations.
func NewRouter(routers ...Router) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	for _, api := range routers {
		for _, route := range api.Routes() {
			var handler http.Handler = route.HandlerFunc
			router.Method(route.Method, route.Pattern, handler)
		}
	}

	return router
}

// EncodeJSONResponse encodes a response and writes it to the HTTP response
// writer. model.FileDownload payloads are written verbatim with their
// content type (rendered graphs, QR codes); everything else is encoded as
// JSON. A nil body writes the status code alone.
func EncodeJSONResponse(i interface{}, status *int, w http.ResponseWriter) error {
	wHeader := w.Header()

	if file, ok := i.(model.FileDownload); ok {
		wHeader.Set("Content-Type", file.ContentType)
		wHeader.Set("X-Content-Type-Options", "nosniff")
		if file.Filename != "" {
			wHeader.Set("Content-Disposition", "inline; filename=\""+file.Filename+"\"")
		}
		if status != nil {
			w.WriteHeader(*status)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_, err := w.Write(file.Content)
		return err
	}

	wHeader.Set("Content-Type", "application/json; charset=UTF-8")
	if status != nil {
		w.WriteHeader(*status)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if i == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(i)
}

// parseIntParameter parses an optional integer query parameter, returning
// the fallback when the parameter is absent.
func parseIntParameter(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ParsingError{Param: value, Err: err}
	}
	return n, nil
}
