// Package api implements the shell repository operations on top of the
// persistence boundary. All identifiers cross this layer in transport
// form; canonical identifiers never leave it.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dpp40/dpp-go-components/internal/common"
	"github.com/dpp40/dpp-go-components/internal/common/model"
	"github.com/dpp40/dpp-go-components/internal/dppshell/persistence"
	"github.com/dpp40/dpp-go-components/internal/dppshell/projection"
)

// defaultPageLimit caps listings when the client does not set a limit.
const defaultPageLimit = 50

// DPPRepositoryService implements shell lifecycle and submodel access.
type DPPRepositoryService struct {
	db            persistence.ShellDatabase
	projector     *projection.Projector
	uniqueIdShort bool

	now func() time.Time
}

// NewDPPRepositoryService creates a repository service. uniqueIdShort
// enforces case-insensitive idShort uniqueness across shells on create.
func NewDPPRepositoryService(db persistence.ShellDatabase, projector *projection.Projector, uniqueIdShort bool) *DPPRepositoryService {
	return &DPPRepositoryService{
		db:            db,
		projector:     projector,
		uniqueIdShort: uniqueIdShort,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// GetAllShells lists shell summaries, creation time ascending. The
// search filter narrows by idShort substring before pagination, so the
// returned total counts all matches, not just the page.
func (s *DPPRepositoryService) GetAllShells(ctx context.Context, limit int, offset int, search string) (model.ImplResponse, error) {
	shells, err := s.db.GetAll(ctx)
	if err != nil {
		return model.ImplResponse{}, err
	}

	if search != "" {
		needle := strings.ToLower(search)
		filtered := shells[:0]
		for _, shell := range shells {
			if strings.Contains(strings.ToLower(shell.IdShort), needle) {
				filtered = append(filtered, shell)
			}
		}
		shells = filtered
	}
	total := len(shells)

	if offset < 0 {
		offset = 0
	}
	if offset > len(shells) {
		offset = len(shells)
	}
	shells = shells[offset:]
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit < len(shells) {
		shells = shells[:limit]
	}

	summaries := make([]model.ShellSummary, 0, len(shells))
	for _, shell := range shells {
		summaries = append(summaries, toSummary(shell))
	}
	return model.Response(http.StatusOK, common.PagedResult{Result: summaries, Total: total}), nil
}

// PostShell creates a shell seeded with the default submodel skeleton.
// Optional nameplate fields become Nameplate elements.
func (s *DPPRepositoryService) PostShell(ctx context.Context, req model.ShellCreateRequest) (model.ImplResponse, error) {
	if err := model.ValidateIdShort(req.IdShort); err != nil {
		return model.ImplResponse{}, common.NewErrInvalidIdShort(err.Error())
	}
	if s.uniqueIdShort {
		taken, err := s.db.ExistsIdShort(ctx, req.IdShort)
		if err != nil {
			return model.ImplResponse{}, err
		}
		if taken {
			return model.ImplResponse{}, common.NewErrDuplicateIdShort(req.IdShort)
		}
	}

	now := s.now()
	shell := &model.Shell{
		ID:       "urn:dpp:aas:" + uuid.NewString(),
		IdShort:  req.IdShort,
		Created:  now,
		Modified: now,
	}
	for _, idShort := range model.DefaultSubmodelIdShorts {
		shell.Submodels = append(shell.Submodels, model.Submodel{
			ID:         newSubmodelID(idShort),
			IdShort:    idShort,
			SemanticID: model.DefaultSemanticIDs[idShort],
		})
	}
	seedNameplate(shell, req)

	if err := s.db.Insert(ctx, shell); err != nil {
		return model.ImplResponse{}, err
	}
	return model.Response(http.StatusCreated, toSummary(shell)), nil
}

// GetShellByID returns the role-filtered shell detail.
func (s *DPPRepositoryService) GetShellByID(ctx context.Context, aasIdentifier string, role model.Role) (model.ImplResponse, error) {
	shell, err := s.load(ctx, aasIdentifier)
	if err != nil {
		return model.ImplResponse{}, err
	}
	projected := s.projector.ProjectShell(shell, role)
	return model.Response(http.StatusOK, model.ShellView{
		ID:        aasIdentifier,
		IdShort:   projected.IdShort,
		Created:   projected.Created,
		Modified:  projected.Modified,
		Submodels: projected.SubmodelIdShorts(),
	}), nil
}

// DeleteShellByID removes the shell and everything it contains.
func (s *DPPRepositoryService) DeleteShellByID(ctx context.Context, aasIdentifier string) (model.ImplResponse, error) {
	id, err := common.DecodeIdentifier(aasIdentifier)
	if err != nil {
		return model.ImplResponse{}, err
	}
	if err := s.db.Delete(ctx, id); err != nil {
		return model.ImplResponse{}, err
	}
	return model.Response(http.StatusNoContent, nil), nil
}

// GetSubmodelByIDShort returns one role-visible submodel.
func (s *DPPRepositoryService) GetSubmodelByIDShort(ctx context.Context, aasIdentifier string, submodelIdShort string, role model.Role) (model.ImplResponse, error) {
	shell, err := s.load(ctx, aasIdentifier)
	if err != nil {
		return model.ImplResponse{}, err
	}
	sm, err := s.projector.ProjectSubmodel(shell, submodelIdShort, role)
	if err != nil {
		return model.ImplResponse{}, err
	}
	return model.Response(http.StatusOK, sm), nil
}

// PutSubmodelByIDShort replaces the submodel's content wholesale, or
// attaches it as a new extension submodel when the idShort is unknown.
// The path segment wins over any idShort in the body.
func (s *DPPRepositoryService) PutSubmodelByIDShort(ctx context.Context, aasIdentifier string, submodelIdShort string, submodel model.Submodel) (model.ImplResponse, error) {
	id, err := common.DecodeIdentifier(aasIdentifier)
	if err != nil {
		return model.ImplResponse{}, err
	}
	if err := model.ValidateIdShort(submodelIdShort); err != nil {
		return model.ImplResponse{}, common.NewErrInvalidIdShort(err.Error())
	}
	submodel.IdShort = submodelIdShort
	if err := model.AssertSubmodelConstraints(&submodel); err != nil {
		return model.ImplResponse{}, common.NewErrBadRequest(err.Error())
	}

	var result model.Submodel
	_, err = s.db.Update(ctx, id, func(shell *model.Shell) error {
		if existing, ok := shell.Submodel(submodelIdShort); ok {
			submodel.ID = existing.ID
			if submodel.SemanticID == "" {
				submodel.SemanticID = existing.SemanticID
			}
			*existing = submodel
		} else {
			if submodel.ID == "" {
				submodel.ID = newSubmodelID(submodelIdShort)
			}
			shell.Submodels = append(shell.Submodels, submodel)
		}
		shell.Touch(s.now())
		result = submodel.Clone()
		return nil
	})
	if err != nil {
		return model.ImplResponse{}, err
	}
	return model.Response(http.StatusOK, result), nil
}

// PostSubmodelElement appends one element to an existing submodel.
// Element idShorts are unique within the submodel.
func (s *DPPRepositoryService) PostSubmodelElement(ctx context.Context, aasIdentifier string, submodelIdShort string, element model.SubmodelElement) (model.ImplResponse, error) {
	id, err := common.DecodeIdentifier(aasIdentifier)
	if err != nil {
		return model.ImplResponse{}, err
	}
	if err := model.ValidateIdShort(element.IdShort); err != nil {
		return model.ImplResponse{}, common.NewErrInvalidIdShort(err.Error())
	}
	if err := model.AssertSubmodelElementConstraints(&element); err != nil {
		return model.ImplResponse{}, common.NewErrBadRequest(err.Error())
	}

	_, err = s.db.Update(ctx, id, func(shell *model.Shell) error {
		sm, ok := shell.Submodel(submodelIdShort)
		if !ok {
			return common.NewErrNotFound("submodel '" + submodelIdShort + "' in shell '" + shell.ID + "'")
		}
		if _, dup := sm.Element(element.IdShort); dup {
			return common.NewErrDuplicateIdShort(element.IdShort)
		}
		sm.Elements = append(sm.Elements, element)
		shell.Touch(s.now())
		return nil
	})
	if err != nil {
		return model.ImplResponse{}, err
	}
	return model.Response(http.StatusCreated, element), nil
}

func (s *DPPRepositoryService) load(ctx context.Context, aasIdentifier string) (*model.Shell, error) {
	id, err := common.DecodeIdentifier(aasIdentifier)
	if err != nil {
		return nil, err
	}
	return s.db.Get(ctx, id)
}

func toSummary(shell *model.Shell) model.ShellSummary {
	return model.ShellSummary{
		ID:       common.EncodeIdentifier(shell.ID),
		IdShort:  shell.IdShort,
		Created:  shell.Created,
		Modified: shell.Modified,
	}
}

func newSubmodelID(idShort string) string {
	return "urn:dpp:submodel:" + strings.ToLower(idShort) + ":" + uuid.NewString()
}

func seedNameplate(shell *model.Shell, req model.ShellCreateRequest) {
	nameplate, ok := shell.Submodel(model.SubmodelNameplate)
	if !ok {
		return
	}
	seed := []struct {
		idShort string
		value   string
	}{
		{"ManufacturerName", req.ManufacturerName},
		{"ManufacturerProductDesignation", req.ProductDesignation},
		{"YearOfConstruction", req.YearOfConstruction},
	}
	for _, el := range seed {
		if el.value == "" {
			continue
		}
		nameplate.Elements = append(nameplate.Elements, model.SubmodelElement{
			IdShort:   el.idShort,
			ValueType: model.ValueTypeString,
			Value:     el.value,
		})
	}
}
