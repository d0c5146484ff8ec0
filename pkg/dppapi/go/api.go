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

	"github.com/dpp40/dpp-go-components/internal/common/model"
)

// DPPRepositoryAPIServicer defines the api actions for the DPPRepositoryAPI service
// This interface intended to stay up to date with the openapi yaml used to generate it,
// while the service implementation can be ignored with the .openapi-generator-ignore file
// and updated with the logic required for the API.
type DPPRepositoryAPIServicer interface {
	GetAllShells(ctx context.Context, limit int, offset int, search string) (model.ImplResponse, error)
	PostShell(ctx context.Context, req model.ShellCreateRequest) (model.ImplResponse, error)
	GetShellByID(ctx context.Context, aasIdentifier string, role model.Role) (model.ImplResponse, error)
	DeleteShellByID(ctx context.Context, aasIdentifier string) (model.ImplResponse, error)
	GetSubmodelByIDShort(ctx context.Context, aasIdentifier string, submodelIdShort string, role model.Role) (model.ImplResponse, error)
	PutSubmodelByIDShort(ctx context.Context, aasIdentifier string, submodelIdShort string, submodel model.Submodel) (model.ImplResponse, error)
	PostSubmodelElement(ctx context.Context, aasIdentifier string, submodelIdShort string, element model.SubmodelElement) (model.ImplResponse, error)
}

// VisualizationAPIServicer defines the api actions for the VisualizationAPI service
type VisualizationAPIServicer interface {
	GetGraph(ctx context.Context, view string, aasIdentifier string, format string, role model.Role) (model.ImplResponse, error)
	GetSubmodelGraph(ctx context.Context, aasIdentifier string, submodelIdShort string, format string, role model.Role) (model.ImplResponse, error)
	GetQRCode(ctx context.Context, aasIdentifier string, size int) (model.ImplResponse, error)
}

// DescriptionAPIServicer defines the api actions for the DescriptionAPI service
type DescriptionAPIServicer interface {
	GetDescription(ctx context.Context) (model.ImplResponse, error)
}
