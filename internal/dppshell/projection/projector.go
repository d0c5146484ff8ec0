// Package projection narrows a shell to what a requester role may see.
// Every read path runs through here before serialization or graph
// derivation, so hidden submodels never reach a response in any form.
package projection

import (
	"github.com/dpp40/dpp-go-components/internal/common"
	"github.com/dpp40/dpp-go-components/internal/common/model"
)

// visibility lists the submodel idShorts each role may read. The
// manufacturer entry is nil and means everything, extension submodels
// included. Roles without an entry see nothing.
var visibility = map[model.Role][]string{
	model.RoleManufacturer: nil,
	model.RoleRecycler:     {model.SubmodelMaterialComposition, model.SubmodelCircularityData},
	model.RoleConsumer:     {model.SubmodelNameplate},
	model.RoleAnonymous:    {model.SubmodelNameplate},
}

// ElementFilter decides element-level visibility inside an already
// visible submodel. The default keeps every element; the hook exists so
// a deployment can hide single data points without a new projector.
type ElementFilter func(role model.Role, submodelIdShort string, element model.SubmodelElement) bool

// Projector applies the role visibility matrix to shells and submodels.
type Projector struct {
	elementFilter ElementFilter
}

// NewProjector creates a projector with the default element policy.
func NewProjector() *Projector {
	return &Projector{}
}

// NewProjectorWithElementFilter creates a projector with an element hook.
func NewProjectorWithElementFilter(filter ElementFilter) *Projector {
	return &Projector{elementFilter: filter}
}

// Visible reports whether the role may read the submodel idShort.
func (p *Projector) Visible(role model.Role, submodelIdShort string) bool {
	allowed, known := visibility[role]
	if !known {
		allowed = visibility[model.RoleAnonymous]
	}
	if allowed == nil {
		return true
	}
	for _, idShort := range allowed {
		if idShort == submodelIdShort {
			return true
		}
	}
	return false
}

// ProjectShell returns a copy of the shell holding only the submodels
// the role may see. Submodel order is preserved; identity and timestamp
// fields pass through unchanged.
func (p *Projector) ProjectShell(shell *model.Shell, role model.Role) *model.Shell {
	out := shell.Clone()
	kept := out.Submodels[:0]
	for _, sm := range out.Submodels {
		if !p.Visible(role, sm.IdShort) {
			continue
		}
		kept = append(kept, p.filterElements(role, sm))
	}
	out.Submodels = kept
	return out
}

// ProjectSubmodel returns a copy of one submodel if the role may see it.
// A submodel that exists but is hidden yields a denied error, which the
// HTTP boundary answers exactly like a missing one.
func (p *Projector) ProjectSubmodel(shell *model.Shell, submodelIdShort string, role model.Role) (*model.Submodel, error) {
	sm, ok := shell.Submodel(submodelIdShort)
	if !ok {
		return nil, common.NewErrNotFound("submodel '" + submodelIdShort + "' in shell '" + shell.ID + "'")
	}
	if !p.Visible(role, submodelIdShort) {
		return nil, common.NewErrDenied("submodel '" + submodelIdShort + "' in shell '" + shell.ID + "'")
	}
	out := p.filterElements(role, sm.Clone())
	return &out, nil
}

func (p *Projector) filterElements(role model.Role, sm model.Submodel) model.Submodel {
	if p.elementFilter == nil {
		return sm
	}
	kept := sm.Elements[:0]
	for _, el := range sm.Elements {
		if p.elementFilter(role, sm.IdShort, el) {
			kept = append(kept, el)
		}
	}
	sm.Elements = kept
	return sm
}
