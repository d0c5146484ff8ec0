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
	"context"
	"net/http"
	"strings"

	"github.com/dpp40/dpp-go-components/internal/common/model"
)

// DescriptionAPIService is a service that implements the logic for the DescriptionAPIServicer
type DescriptionAPIService struct {
}

// NewDescriptionAPIService creates a default api service
func NewDescriptionAPIService() *DescriptionAPIService {
	return &DescriptionAPIService{}
}

// GetDescription - Returns the self-describing information of a network resource (ServiceDescription)
func (s *DescriptionAPIService) GetDescription(_ context.Context) (model.ImplResponse, error) {
	return model.Response(http.StatusOK, model.ServiceDescription{
		Profiles: []string{
			"https://dpp40.org/api/1/0/DigitalProductPassportServiceSpecification/SSP-001",
		},
	}), nil
}

// DescriptionAPIController binds http requests to an api service and writes the service results to the http response
type DescriptionAPIController struct {
	service      DescriptionAPIServicer
	errorHandler ErrorHandler
	contextPath  string
}

// NewDescriptionAPIController creates a default api controller
func NewDescriptionAPIController(s DescriptionAPIServicer, contextPath string) *DescriptionAPIController {
	return &DescriptionAPIController{
		service:      s,
		errorHandler: DefaultErrorHandler,
		contextPath:  contextPath,
	}
}

// Routes returns all the api routes for the DescriptionAPIController
func (c *DescriptionAPIController) Routes() Routes {
	return Routes{
		"GetDescription": Route{
			strings.ToUpper("Get"),
			c.contextPath + "/description",
			c.GetDescription,
		},
	}
}

// GetDescription - Returns the self-describing information of a network resource (ServiceDescription)
func (c *DescriptionAPIController) GetDescription(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetDescription(r.Context())
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	_ = EncodeJSONResponse(result.Body, &result.Code, w)
}
