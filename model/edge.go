package model

// EdgeTypePrereq is the edge type of prerequisite relations.
const EdgeTypePrereq = "prereq"

// Edge represents a directed edge of the base curriculum graph.
type Edge struct {
	ID       string `json:"id,omitempty"`
	EdgeType string `json:"edgeType"`
	Source   string `json:"source"`
	Target   string `json:"target"`
}

// Origin is the layer that explains why an edge is currently in effect.
type Origin string

const (
	OriginBase     Origin = "base"
	OriginResearch Origin = "research"
	OriginManual   Origin = "manual"
)

// PrereqEdge identifies a prerequisite relation by its ordered endpoint pair.
// Direction matters and there are no multi-edges.
type PrereqEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Key returns the canonical deduplication key for the edge.
func (e PrereqEdge) Key() string {
	return e.Source + "\x00" + e.Target
}

// OriginEdge is a currently effective prerequisite edge tagged with its provenance.
type OriginEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Origin Origin `json:"origin"`
}
