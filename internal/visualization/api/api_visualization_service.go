// Package api implements the visualization service operations.
package api

import (
	"context"
	"net/http"

	"github.com/dpp40/dpp-go-components/internal/common"
	"github.com/dpp40/dpp-go-components/internal/common/model"
	"github.com/dpp40/dpp-go-components/internal/dppshell/persistence"
	"github.com/dpp40/dpp-go-components/internal/dppshell/projection"
	"github.com/dpp40/dpp-go-components/internal/visualization"
)

// VisualizationAPIService resolves shells, narrows them to the caller's
// role and hands the result to the graph derivation and rendering layer.
type VisualizationAPIService struct {
	db        persistence.ShellDatabase
	projector *projection.Projector
}

// NewVisualizationAPIService creates a visualization service on a store.
func NewVisualizationAPIService(db persistence.ShellDatabase, projector *projection.Projector) *VisualizationAPIService {
	return &VisualizationAPIService{db: db, projector: projector}
}

// GetGraph serves one of the fixed graph views for a shell. The format
// defaults to png; json returns the graph description itself.
func (s *VisualizationAPIService) GetGraph(ctx context.Context, viewSegment string, aasIdentifier string, format string, role model.Role) (model.ImplResponse, error) {
	view, err := model.ParseGraphView(viewSegment)
	if err != nil || view == model.GraphViewSubmodel {
		return model.ImplResponse{}, common.NewErrBadRequest("unknown graph view: " + viewSegment)
	}

	shell, err := s.loadProjected(ctx, aasIdentifier, role)
	if err != nil {
		return model.ImplResponse{}, err
	}

	graph := visualization.Derive(shell, view)
	graph.ProductID = aasIdentifier
	return respondGraph(graph, format)
}

// GetSubmodelGraph serves the single-submodel view. Hidden submodels are
// answered like missing ones.
func (s *VisualizationAPIService) GetSubmodelGraph(ctx context.Context, aasIdentifier string, submodelIdShort string, format string, role model.Role) (model.ImplResponse, error) {
	id, err := common.DecodeIdentifier(aasIdentifier)
	if err != nil {
		return model.ImplResponse{}, err
	}
	shell, err := s.db.Get(ctx, id)
	if err != nil {
		return model.ImplResponse{}, err
	}
	sm, err := s.projector.ProjectSubmodel(shell, submodelIdShort, role)
	if err != nil {
		return model.ImplResponse{}, err
	}

	graph := visualization.DeriveSubmodel(shell, sm)
	graph.ProductID = aasIdentifier
	return respondGraph(graph, format)
}

// GetQRCode serves a PNG QR code pointing at the shell's public detail
// page. The shell must exist; size zero selects the default edge length.
func (s *VisualizationAPIService) GetQRCode(ctx context.Context, aasIdentifier string, size int) (model.ImplResponse, error) {
	id, err := common.DecodeIdentifier(aasIdentifier)
	if err != nil {
		return model.ImplResponse{}, err
	}
	if _, err := s.db.Get(ctx, id); err != nil {
		return model.ImplResponse{}, err
	}

	png, err := visualization.RenderQR(aasIdentifier, size)
	if err != nil {
		return model.ImplResponse{}, err
	}
	return model.Response(http.StatusOK, model.FileDownload{
		Content:     png,
		ContentType: "image/png",
		Filename:    "qrcode.png",
	}), nil
}

func (s *VisualizationAPIService) loadProjected(ctx context.Context, aasIdentifier string, role model.Role) (*model.Shell, error) {
	id, err := common.DecodeIdentifier(aasIdentifier)
	if err != nil {
		return nil, err
	}
	shell, err := s.db.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.projector.ProjectShell(shell, role), nil
}

func respondGraph(graph *model.GraphDescription, format string) (model.ImplResponse, error) {
	if format == "" {
		format = visualization.FormatPNG
	}
	if format == visualization.FormatJSON {
		return model.Response(http.StatusOK, graph), nil
	}
	content, mediaType, err := visualization.Render(graph, format)
	if err != nil {
		return model.ImplResponse{}, err
	}
	return model.Response(http.StatusOK, model.FileDownload{
		Content:     content,
		ContentType: mediaType,
		Filename:    string(graph.View) + "." + format,
	}), nil
}
