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
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dpp40/dpp-go-components/internal/auth"
)

// VisualizationAPIController binds http requests to an api service and writes the service results to the http response
type VisualizationAPIController struct {
	service      VisualizationAPIServicer
	errorHandler ErrorHandler
	contextPath  string
}

// VisualizationAPIOption for how the controller is set up.
type VisualizationAPIOption func(*VisualizationAPIController)

// WithVisualizationAPIErrorHandler inject ErrorHandler into controller
func WithVisualizationAPIErrorHandler(h ErrorHandler) VisualizationAPIOption {
	return func(c *VisualizationAPIController) {
		c.errorHandler = h
	}
}

// NewVisualizationAPIController creates a default api controller
func NewVisualizationAPIController(s VisualizationAPIServicer, contextPath string, opts ...VisualizationAPIOption) *VisualizationAPIController {
	controller := &VisualizationAPIController{
		service:      s,
		errorHandler: DefaultErrorHandler,
		contextPath:  contextPath,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// Routes returns all the api routes for the VisualizationAPIController
func (c *VisualizationAPIController) Routes() Routes {
	return Routes{
		"GetQRCode": Route{
			strings.ToUpper("Get"),
			c.contextPath + "/visualization/qrcode/{aasIdentifier}",
			c.GetQRCode,
		},
		"GetSubmodelGraph": Route{
			strings.ToUpper("Get"),
			c.contextPath + "/visualization/submodel/{aasIdentifier}/{submodelIdShort}",
			c.GetSubmodelGraph,
		},
		"GetGraph": Route{
			strings.ToUpper("Get"),
			c.contextPath + "/visualization/{view}/{aasIdentifier}",
			c.GetGraph,
		},
	}
}

// GetGraph - Returns a rendered graph view for a shell
func (c *VisualizationAPIController) GetGraph(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	aasIdentifier := chi.URLParam(r, "aasIdentifier")
	format := r.URL.Query().Get("format")
	role := auth.RoleFromContext(r.Context())

	result, err := c.service.GetGraph(r.Context(), view, aasIdentifier, format, role)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	_ = EncodeJSONResponse(result.Body, &result.Code, w)
}

// GetSubmodelGraph - Returns a rendered view of a single submodel
func (c *VisualizationAPIController) GetSubmodelGraph(w http.ResponseWriter, r *http.Request) {
	aasIdentifier := chi.URLParam(r, "aasIdentifier")
	submodelIdShort := chi.URLParam(r, "submodelIdShort")
	format := r.URL.Query().Get("format")
	role := auth.RoleFromContext(r.Context())

	result, err := c.service.GetSubmodelGraph(r.Context(), aasIdentifier, submodelIdShort, format, role)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	_ = EncodeJSONResponse(result.Body, &result.Code, w)
}

// GetQRCode - Returns a QR code pointing at the shell's detail page
func (c *VisualizationAPIController) GetQRCode(w http.ResponseWriter, r *http.Request) {
	aasIdentifier := chi.URLParam(r, "aasIdentifier")
	size, err := parseIntParameter(r.URL.Query().Get("size"), 0)
	if err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}

	result, err := c.service.GetQRCode(r.Context(), aasIdentifier, size)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	_ = EncodeJSONResponse(result.Body, &result.Code, w)
}
