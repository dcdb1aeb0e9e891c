package domain

// Position is a canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a component placed on the canvas. TypeLabel is a free-form role
// tag such as "Load Balancer" or "RDBMS".
type Node struct {
	ID        string   `json:"id"`
	TypeLabel string   `json:"type"`
	Position  Position `json:"position"`
}

// Edge connects two nodes by id. Dangling ids are accepted as-is.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Diagram is the user's architecture drawing. Slice order is kept for stable
// round-tripping only.
type Diagram struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// EmptyDiagram returns a diagram whose nodes and edges encode as [] rather than null.
func EmptyDiagram() Diagram {
	return Diagram{Nodes: []Node{}, Edges: []Edge{}}
}

// Normalize replaces nil slices with empty ones.
func (d Diagram) Normalize() Diagram {
	if d.Nodes == nil {
		d.Nodes = []Node{}
	}
	if d.Edges == nil {
		d.Edges = []Edge{}
	}
	return d
}
