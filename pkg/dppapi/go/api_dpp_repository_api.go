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
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dpp40/dpp-go-components/internal/auth"
	"github.com/dpp40/dpp-go-components/internal/common/model"
)

// DPPRepositoryAPIController binds http requests to an api service and writes the service results to the http response
type DPPRepositoryAPIController struct {
	service      DPPRepositoryAPIServicer
	errorHandler ErrorHandler
	contextPath  string
}

// DPPRepositoryAPIOption for how the controller is set up.
type DPPRepositoryAPIOption func(*DPPRepositoryAPIController)

// WithDPPRepositoryAPIErrorHandler inject ErrorHandler into controller
func WithDPPRepositoryAPIErrorHandler(h ErrorHandler) DPPRepositoryAPIOption {
	return func(c *DPPRepositoryAPIController) {
		c.errorHandler = h
	}
}

// NewDPPRepositoryAPIController creates a default api controller
func NewDPPRepositoryAPIController(s DPPRepositoryAPIServicer, contextPath string, opts ...DPPRepositoryAPIOption) *DPPRepositoryAPIController {
	controller := &DPPRepositoryAPIController{
		service:      s,
		errorHandler: DefaultErrorHandler,
		contextPath:  contextPath,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// Routes returns all the api routes for the DPPRepositoryAPIController
func (c *DPPRepositoryAPIController) Routes() Routes {
	return Routes{
		"GetAllShells": Route{
			strings.ToUpper("Get"),
			c.contextPath + "/shells",
			c.GetAllShells,
		},
		"PostShell": Route{
			strings.ToUpper("Post"),
			c.contextPath + "/shells",
			c.PostShell,
		},
		"GetShellByID": Route{
			strings.ToUpper("Get"),
			c.contextPath + "/shells/{aasIdentifier}",
			c.GetShellByID,
		},
		"DeleteShellByID": Route{
			strings.ToUpper("Delete"),
			c.contextPath + "/shells/{aasIdentifier}",
			c.DeleteShellByID,
		},
		"GetSubmodelByIDShort": Route{
			strings.ToUpper("Get"),
			c.contextPath + "/shells/{aasIdentifier}/submodels/{submodelIdShort}",
			c.GetSubmodelByIDShort,
		},
		"PutSubmodelByIDShort": Route{
			strings.ToUpper("Put"),
			c.contextPath + "/shells/{aasIdentifier}/submodels/{submodelIdShort}",
			c.PutSubmodelByIDShort,
		},
		"PostSubmodelElement": Route{
			strings.ToUpper("Post"),
			c.contextPath + "/shells/{aasIdentifier}/submodels/{submodelIdShort}/elements",
			c.PostSubmodelElement,
		},
	}
}

// GetAllShells - Returns all shell summaries with pagination and search
func (c *DPPRepositoryAPIController) GetAllShells(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := parseIntParameter(query.Get("limit"), 0)
	if err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	offset, err := parseIntParameter(query.Get("offset"), 0)
	if err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}

	result, err := c.service.GetAllShells(r.Context(), limit, offset, query.Get("search"))
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	_ = EncodeJSONResponse(result.Body, &result.Code, w)
}

// PostShell - Creates a new shell seeded with the default submodels
func (c *DPPRepositoryAPIController) PostShell(w http.ResponseWriter, r *http.Request) {
	var req model.ShellCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}

	result, err := c.service.PostShell(r.Context(), req)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	_ = EncodeJSONResponse(result.Body, &result.Code, w)
}

// GetShellByID - Returns the role-filtered shell detail
func (c *DPPRepositoryAPIController) GetShellByID(w http.ResponseWriter, r *http.Request) {
	aasIdentifier := chi.URLParam(r, "aasIdentifier")
	role := auth.RoleFromContext(r.Context())

	result, err := c.service.GetShellByID(r.Context(), aasIdentifier, role)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	_ = EncodeJSONResponse(result.Body, &result.Code, w)
}

// DeleteShellByID - Deletes a shell with all contained submodels
func (c *DPPRepositoryAPIController) DeleteShellByID(w http.ResponseWriter, r *http.Request) {
	aasIdentifier := chi.URLParam(r, "aasIdentifier")

	result, err := c.service.DeleteShellByID(r.Context(), aasIdentifier)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	_ = EncodeJSONResponse(result.Body, &result.Code, w)
}

// GetSubmodelByIDShort - Returns one role-visible submodel
func (c *DPPRepositoryAPIController) GetSubmodelByIDShort(w http.ResponseWriter, r *http.Request) {
	aasIdentifier := chi.URLParam(r, "aasIdentifier")
	submodelIdShort := chi.URLParam(r, "submodelIdShort")
	role := auth.RoleFromContext(r.Context())

	result, err := c.service.GetSubmodelByIDShort(r.Context(), aasIdentifier, submodelIdShort, role)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	_ = EncodeJSONResponse(result.Body, &result.Code, w)
}

// PutSubmodelByIDShort - Replaces a submodel's content wholesale
func (c *DPPRepositoryAPIController) PutSubmodelByIDShort(w http.ResponseWriter, r *http.Request) {
	aasIdentifier := chi.URLParam(r, "aasIdentifier")
	submodelIdShort := chi.URLParam(r, "submodelIdShort")

	var submodel model.Submodel
	if err := json.NewDecoder(r.Body).Decode(&submodel); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}

	result, err := c.service.PutSubmodelByIDShort(r.Context(), aasIdentifier, submodelIdShort, submodel)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	_ = EncodeJSONResponse(result.Body, &result.Code, w)
}

// PostSubmodelElement - Appends an element to a submodel
func (c *DPPRepositoryAPIController) PostSubmodelElement(w http.ResponseWriter, r *http.Request) {
	aasIdentifier := chi.URLParam(r, "aasIdentifier")
	submodelIdShort := chi.URLParam(r, "submodelIdShort")

	var element model.SubmodelElement
	if err := json.NewDecoder(r.Body).Decode(&element); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}

	result, err := c.service.PostSubmodelElement(r.Context(), aasIdentifier, submodelIdShort, element)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	_ = EncodeJSONResponse(result.Body, &result.Code, w)
}
