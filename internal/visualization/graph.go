// Package visualization derives read-only graph projections from shells
// and renders them. Derived graphs are disposable values; they never
// alias or feed back into stored state.
package visualization

import (
	"fmt"

	"github.com/dpp40/dpp-go-components/internal/common/model"
)

const (
	nodeTypeAAS      = "AAS"
	nodeTypeSubmodel = "Submodel"
	nodeTypeElement  = "Element"
	nodeTypeStage    = "Stage"
	nodeTypeActor    = "Actor"
)

// lifecycleStages is the fixed stage sequence of the lifecycle view.
var lifecycleStages = []string{
	"Raw Material",
	"Production",
	"Distribution",
	"Use",
	"End of Life",
}

// Derive builds the requested graph view from an already role-projected
// shell. Derivation is deterministic: node order follows the fixed stage
// and actor sequences, or submodel/element iteration order for the twin
// view. It never fails for an existing shell.
func Derive(shell *model.Shell, view model.GraphView) *model.GraphDescription {
	switch view {
	case model.GraphViewLifecycle:
		return deriveLifecycle(shell)
	case model.GraphViewValueChain:
		return deriveValueChain(shell)
	default:
		return deriveDigitalTwin(shell)
	}
}

// DeriveSubmodel builds the single-submodel view: the submodel as root
// with its elements as children.
func DeriveSubmodel(shell *model.Shell, sm *model.Submodel) *model.GraphDescription {
	g := &model.GraphDescription{
		View:      model.GraphViewSubmodel,
		ProductID: shell.ID,
		Nodes: []model.GraphNode{
			{ID: "submodel:" + sm.IdShort, Label: sm.IdShort, Type: nodeTypeSubmodel},
		},
	}
	for _, el := range sm.Elements {
		id := "element:" + sm.IdShort + "/" + el.IdShort
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:    id,
			Label: el.IdShort,
			Type:  nodeTypeElement,
			Value: el.Value,
		})
		g.Edges = append(g.Edges, model.GraphEdge{
			Source:   "submodel:" + sm.IdShort,
			Target:   id,
			Relation: "contains",
		})
	}
	return g
}

func deriveLifecycle(shell *model.Shell) *model.GraphDescription {
	g := &model.GraphDescription{
		View:      model.GraphViewLifecycle,
		ProductID: shell.ID,
	}
	labels := map[string]string{}
	if v, ok := elementValue(shell, model.SubmodelCircularityData, "RecycledContent", "recycled_content"); ok {
		labels["Raw Material"] = fmt.Sprintf("Raw Material (recycled content %v%%)", v)
	}
	if v, ok := elementValue(shell, model.SubmodelTechnicalData, "Lifespan", "lifespan"); ok {
		labels["Use"] = fmt.Sprintf("Use (lifespan %v)", v)
	}
	if v, ok := elementValue(shell, model.SubmodelCircularityData, "EndOfLifeOption", "end_of_life_option"); ok {
		labels["End of Life"] = fmt.Sprintf("End of Life (%v)", v)
	}

	for _, stage := range lifecycleStages {
		label := stage
		if enriched, ok := labels[stage]; ok {
			label = enriched
		}
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:    "stage:" + stage,
			Label: label,
			Type:  nodeTypeStage,
		})
	}
	for i := 1; i < len(lifecycleStages); i++ {
		g.Edges = append(g.Edges, model.GraphEdge{
			Source:   "stage:" + lifecycleStages[i-1],
			Target:   "stage:" + lifecycleStages[i],
			Relation: "next",
		})
	}
	// materials loop back from end of life into new raw material
	g.Edges = append(g.Edges, model.GraphEdge{
		Source:    "stage:" + lifecycleStages[len(lifecycleStages)-1],
		Target:    "stage:" + lifecycleStages[0],
		Relation:  "recycles-into",
		Recycling: true,
	})
	return g
}

func deriveValueChain(shell *model.Shell) *model.GraphDescription {
	g := &model.GraphDescription{
		View:      model.GraphViewValueChain,
		ProductID: shell.ID,
	}

	sourceLabel := "Material Source"
	if v, ok := elementValue(shell, model.SubmodelMaterialComposition, "MaterialSource", "material_source"); ok {
		sourceLabel = fmt.Sprintf("Material Source (%v)", v)
	}
	manufacturerLabel := "Manufacturer"
	if v, ok := elementValue(shell, model.SubmodelNameplate, "ManufacturerName", "manufacturer_name"); ok {
		manufacturerLabel = fmt.Sprintf("Manufacturer (%v)", v)
	}

	actors := []model.GraphNode{
		{ID: "actor:source", Label: sourceLabel, Type: nodeTypeActor},
		{ID: "actor:manufacturer", Label: manufacturerLabel, Type: nodeTypeActor},
		{ID: "actor:distributor", Label: "Distributor", Type: nodeTypeActor},
		{ID: "actor:consumer", Label: "Consumer", Type: nodeTypeActor},
	}
	g.Nodes = append(g.Nodes, actors...)
	for i := 1; i < len(actors); i++ {
		g.Edges = append(g.Edges, model.GraphEdge{
			Source:   actors[i-1].ID,
			Target:   actors[i].ID,
			Relation: "supplies",
		})
	}

	if recycledEvidence(shell) {
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID: "actor:recycler", Label: "Recycler", Type: nodeTypeActor,
		})
		g.Edges = append(g.Edges,
			model.GraphEdge{Source: "actor:consumer", Target: "actor:recycler", Relation: "returns"},
			model.GraphEdge{Source: "actor:recycler", Target: "actor:source", Relation: "recycles-into", Recycling: true},
		)
	}
	return g
}

func deriveDigitalTwin(shell *model.Shell) *model.GraphDescription {
	g := &model.GraphDescription{
		View:      model.GraphViewDigitalTwin,
		ProductID: shell.ID,
		Nodes: []model.GraphNode{
			{ID: shell.ID, Label: shell.IdShort, Type: nodeTypeAAS},
		},
	}
	for _, sm := range shell.Submodels {
		smID := "submodel:" + sm.IdShort
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:    smID,
			Label: sm.IdShort,
			Type:  nodeTypeSubmodel,
		})
		g.Edges = append(g.Edges, model.GraphEdge{
			Source:   shell.ID,
			Target:   smID,
			Relation: "contains",
		})
		for _, el := range sm.Elements {
			elID := "element:" + sm.IdShort + "/" + el.IdShort
			g.Nodes = append(g.Nodes, model.GraphNode{
				ID:    elID,
				Label: el.IdShort,
				Type:  nodeTypeElement,
				Value: el.Value,
			})
			g.Edges = append(g.Edges, model.GraphEdge{
				Source:   smID,
				Target:   elID,
				Relation: "contains",
			})
		}
	}
	return g
}

// elementValue looks up the first element matching one of the given
// idShorts inside the named submodel.
func elementValue(shell *model.Shell, submodelIdShort string, idShorts ...string) (any, bool) {
	sm, ok := shell.Submodel(submodelIdShort)
	if !ok {
		return nil, false
	}
	for _, name := range idShorts {
		if el, ok := sm.Element(name); ok && el.Value != nil {
			return el.Value, true
		}
	}
	return nil, false
}

// recycledEvidence reports whether the material data carries a positive
// recycled content share.
func recycledEvidence(shell *model.Shell) bool {
	v, ok := elementValue(shell, model.SubmodelMaterialComposition, "RecycledContent", "recycled_content")
	if !ok {
		v, ok = elementValue(shell, model.SubmodelCircularityData, "RecycledContent", "recycled_content")
	}
	if !ok {
		return false
	}
	switch n := v.(type) {
	case float64:
		return n > 0
	case int64:
		return n > 0
	default:
		return false
	}
}
