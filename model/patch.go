package model

// SchemaVersionResearchPatch is the schema version of research patch documents.
const SchemaVersionResearchPatch = "research-patch-v1"

// PatchNode is a node addition proposed by a research patch.
type PatchNode struct {
	ID       string `json:"id"`
	NodeType string `json:"nodeType"`
	Label    string `json:"label"`
	Proposed bool   `json:"proposed,omitempty"`
	Note     string `json:"note,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// PatchEdge is an edge addition proposed by a research patch.
type PatchEdge struct {
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	EdgeType   string   `json:"edgeType"`
	Confidence *float64 `json:"confidence,omitempty"`
	Rationale  string   `json:"rationale,omitempty"`
}

// PatchEdgeRef references an existing edge for removal.
type PatchEdgeRef struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	EdgeType string `json:"edgeType,omitempty"`
}

// ResearchPatch is a structured document proposing node and edge additions
// and edge removals against a specific curriculum baseline.
type ResearchPatch struct {
	SchemaVersion string         `json:"schemaVersion,omitempty"`
	Researcher    string         `json:"researcher,omitempty"`
	Scope         string         `json:"scope,omitempty"`
	AddNodes      []PatchNode    `json:"add_nodes"`
	AddEdges      []PatchEdge    `json:"add_edges"`
	RemoveEdges   []PatchEdgeRef `json:"remove_edges"`
	Notes         []string       `json:"notes,omitempty"`
}
