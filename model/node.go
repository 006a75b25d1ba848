package model

// NodeTypeTextbookUnit is the node type of user- or research-proposed units.
const NodeTypeTextbookUnit = "textbookUnit"

// Node represents one unit of the base curriculum graph.
// Nodes are immutable once loaded from the base source.
type Node struct {
	ID         string `json:"id"`
	NodeType   string `json:"nodeType"`
	Label      string `json:"label"`
	GradeBand  string `json:"gradeBand,omitempty"`
	ParentID   string `json:"parentId,omitempty"`
	DomainCode string `json:"domainCode,omitempty"`
	Note       string `json:"note,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// NodeOrigin describes who created a proposed node.
type NodeOrigin string

const (
	NodeOriginManual   NodeOrigin = "manual"
	NodeOriginResearch NodeOrigin = "research"
)

// ProposedNode represents a textbook-unit node that is not part of the base
// curriculum yet, created either by the user or accepted from a research patch.
type ProposedNode struct {
	ID       string     `json:"id"`
	NodeType string     `json:"nodeType"`
	Label    string     `json:"label"`
	Proposed bool       `json:"proposed"`
	Origin   NodeOrigin `json:"origin"`
	Note     string     `json:"note,omitempty"`
	Reason   string     `json:"reason,omitempty"`
}
