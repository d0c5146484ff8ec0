//nolint:all
package model

import "fmt"

// GraphView selects one of the fixed graph derivations.
type GraphView string

const (
	GraphViewLifecycle   GraphView = "lifecycle"
	GraphViewValueChain  GraphView = "value-chain"
	GraphViewDigitalTwin GraphView = "digital-twin"
	GraphViewSubmodel    GraphView = "submodel"
)

// ParseGraphView maps a path segment onto a GraphView.
func ParseGraphView(s string) (GraphView, error) {
	switch GraphView(s) {
	case GraphViewLifecycle:
		return GraphViewLifecycle, nil
	case GraphViewValueChain:
		return GraphViewValueChain, nil
	case GraphViewDigitalTwin:
		return GraphViewDigitalTwin, nil
	case GraphViewSubmodel:
		return GraphViewSubmodel, nil
	}
	return "", fmt.Errorf("unknown graph view %q", s)
}

// GraphNode is one node of a derived graph. Type distinguishes node kinds
// per view ("AAS", "Submodel", "Element", "Stage", "Actor").
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Type  string `json:"type,omitempty"`
	Value any    `json:"value,omitempty"`
}

// GraphEdge is one directed edge of a derived graph.
type GraphEdge struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Relation  string `json:"relation,omitempty"`
	Recycling bool   `json:"recycling,omitempty"`
}

// GraphDescription is the disposable projection handed to the renderer or
// returned directly for the json format. It is never part of the owned
// model tree.
type GraphDescription struct {
	View      GraphView   `json:"view"`
	ProductID string      `json:"product_id"`
	Nodes     []GraphNode `json:"nodes"`
	Edges     []GraphEdge `json:"edges"`
}
