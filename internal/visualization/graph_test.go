//go:build unit

package visualization

import (
	"reflect"
	"testing"
	"time"

	"github.com/dpp40/dpp-go-components/internal/common/model"
)

func freshShell() *model.Shell {
	now := time.Now().UTC()
	shell := &model.Shell{
		ID:       "urn:dpp:aas:1",
		IdShort:  "pump-1",
		Created:  now,
		Modified: now,
	}
	for _, idShort := range model.DefaultSubmodelIdShorts {
		shell.Submodels = append(shell.Submodels, model.Submodel{
			ID:         "urn:dpp:submodel:" + idShort + ":1",
			IdShort:    idShort,
			SemanticID: model.DefaultSemanticIDs[idShort],
		})
	}
	return shell
}

func TestDigitalTwinFreshShell(t *testing.T) {
	g := Derive(freshShell(), model.GraphViewDigitalTwin)

	if len(g.Nodes) != 5 {
		t.Errorf("expected 5 nodes (shell + 4 submodels), got %d", len(g.Nodes))
	}
	if len(g.Edges) != 4 {
		t.Errorf("expected 4 containment edges, got %d", len(g.Edges))
	}
	if g.Nodes[0].Type != "AAS" || g.Nodes[0].ID != "urn:dpp:aas:1" {
		t.Errorf("expected shell root node first, got %+v", g.Nodes[0])
	}
	for _, e := range g.Edges {
		if e.Relation != "contains" {
			t.Errorf("expected contains relation, got %q", e.Relation)
		}
		if e.Source != "urn:dpp:aas:1" {
			t.Errorf("expected edges from shell root, got source %q", e.Source)
		}
	}
}

func TestDigitalTwinIncludesElements(t *testing.T) {
	shell := freshShell()
	sm, _ := shell.Submodel(model.SubmodelNameplate)
	sm.Elements = append(sm.Elements, model.SubmodelElement{
		IdShort: "ManufacturerName", ValueType: model.ValueTypeString, Value: "ACME",
	})

	g := Derive(shell, model.GraphViewDigitalTwin)
	if len(g.Nodes) != 6 {
		t.Fatalf("expected 6 nodes, got %d", len(g.Nodes))
	}
	if len(g.Edges) != 5 {
		t.Fatalf("expected 5 edges, got %d", len(g.Edges))
	}

	var elementNode *model.GraphNode
	for i := range g.Nodes {
		if g.Nodes[i].Type == "Element" {
			elementNode = &g.Nodes[i]
		}
	}
	if elementNode == nil {
		t.Fatal("expected an element node")
	}
	if elementNode.Value != "ACME" {
		t.Errorf("expected element value carried over, got %v", elementNode.Value)
	}
}

func TestDigitalTwinDeterminism(t *testing.T) {
	shell := freshShell()
	first := Derive(shell, model.GraphViewDigitalTwin)
	second := Derive(shell, model.GraphViewDigitalTwin)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated derivation produced different graphs")
	}
}

func TestLifecycleStagesAndRecyclingEdge(t *testing.T) {
	g := Derive(freshShell(), model.GraphViewLifecycle)

	if len(g.Nodes) != 5 {
		t.Fatalf("expected 5 stage nodes, got %d", len(g.Nodes))
	}
	want := []string{"Raw Material", "Production", "Distribution", "Use", "End of Life"}
	for i, n := range g.Nodes {
		if n.Label != want[i] {
			t.Errorf("stage %d: expected %q, got %q", i, want[i], n.Label)
		}
		if n.Type != "Stage" {
			t.Errorf("stage %d: expected Stage type, got %q", i, n.Type)
		}
	}

	if len(g.Edges) != 5 {
		t.Fatalf("expected 4 forward edges plus recycling back-edge, got %d", len(g.Edges))
	}
	last := g.Edges[len(g.Edges)-1]
	if !last.Recycling {
		t.Error("expected final edge flagged as recycling")
	}
	if last.Source != "stage:End of Life" || last.Target != "stage:Raw Material" {
		t.Errorf("unexpected recycling edge %+v", last)
	}
}

func TestLifecycleLabelEnrichment(t *testing.T) {
	shell := freshShell()
	sm, _ := shell.Submodel(model.SubmodelCircularityData)
	sm.Elements = append(sm.Elements, model.SubmodelElement{
		IdShort: "RecycledContent", ValueType: model.ValueTypeFloat, Value: 42.5,
	})

	g := Derive(shell, model.GraphViewLifecycle)
	if g.Nodes[0].Label != "Raw Material (recycled content 42.5%)" {
		t.Errorf("expected enriched raw material label, got %q", g.Nodes[0].Label)
	}
}

func TestValueChainBaseActors(t *testing.T) {
	g := Derive(freshShell(), model.GraphViewValueChain)

	if len(g.Nodes) != 4 {
		t.Fatalf("expected 4 actors without recycling evidence, got %d", len(g.Nodes))
	}
	if len(g.Edges) != 3 {
		t.Fatalf("expected 3 supply edges, got %d", len(g.Edges))
	}
	for _, e := range g.Edges {
		if e.Recycling {
			t.Error("no recycling edge expected without evidence")
		}
	}
}

func TestValueChainRecyclerActor(t *testing.T) {
	shell := freshShell()
	sm, _ := shell.Submodel(model.SubmodelMaterialComposition)
	sm.Elements = append(sm.Elements,
		model.SubmodelElement{IdShort: "MaterialSource", ValueType: model.ValueTypeString, Value: "Norsk Hydro"},
		model.SubmodelElement{IdShort: "RecycledContent", ValueType: model.ValueTypeFloat, Value: 30.0},
	)
	np, _ := shell.Submodel(model.SubmodelNameplate)
	np.Elements = append(np.Elements, model.SubmodelElement{
		IdShort: "ManufacturerName", ValueType: model.ValueTypeString, Value: "ACME",
	})

	g := Derive(shell, model.GraphViewValueChain)
	if len(g.Nodes) != 5 {
		t.Fatalf("expected recycler actor added, got %d nodes", len(g.Nodes))
	}
	if g.Nodes[0].Label != "Material Source (Norsk Hydro)" {
		t.Errorf("expected enriched source label, got %q", g.Nodes[0].Label)
	}
	if g.Nodes[1].Label != "Manufacturer (ACME)" {
		t.Errorf("expected enriched manufacturer label, got %q", g.Nodes[1].Label)
	}

	recycling := 0
	for _, e := range g.Edges {
		if e.Recycling {
			recycling++
			if e.Source != "actor:recycler" || e.Target != "actor:source" {
				t.Errorf("unexpected recycling edge %+v", e)
			}
		}
	}
	if recycling != 1 {
		t.Errorf("expected exactly one recycling edge, got %d", recycling)
	}
}

func TestDeriveSubmodelView(t *testing.T) {
	shell := freshShell()
	sm, _ := shell.Submodel(model.SubmodelTechnicalData)
	sm.Elements = append(sm.Elements,
		model.SubmodelElement{IdShort: "Weight", ValueType: model.ValueTypeFloat, Value: 12.4},
		model.SubmodelElement{IdShort: "Voltage", ValueType: model.ValueTypeInteger, Value: int64(230)},
	)

	g := DeriveSubmodel(shell, sm)
	if len(g.Nodes) != 3 {
		t.Fatalf("expected submodel root plus 2 elements, got %d nodes", len(g.Nodes))
	}
	if len(g.Edges) != 2 {
		t.Fatalf("expected 2 containment edges, got %d", len(g.Edges))
	}
	if g.Nodes[0].Type != "Submodel" {
		t.Errorf("expected submodel root first, got %+v", g.Nodes[0])
	}
	if g.View != model.GraphViewSubmodel {
		t.Errorf("expected submodel view, got %s", g.View)
	}
}
