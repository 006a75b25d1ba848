package model

// Graph is a parsed curriculum graph. Every edge references only known nodes;
// edges with unknown endpoints are discarded at parse time.
type Graph struct {
	Nodes []Node                 `json:"nodes"`
	Edges []Edge                 `json:"edges"`
	Meta  map[string]interface{} `json:"meta,omitempty"`
}

// NodeIDSet returns the set of node ids present in the graph.
func (g *Graph) NodeIDSet() map[string]bool {
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}
	return ids
}

// PrereqEdges returns the prerequisite edges of the graph as endpoint pairs.
func (g *Graph) PrereqEdges() []PrereqEdge {
	edges := make([]PrereqEdge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if e.EdgeType != EdgeTypePrereq {
			continue
		}
		edges = append(edges, PrereqEdge{Source: e.Source, Target: e.Target})
	}
	return edges
}
