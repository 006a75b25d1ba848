// Package research folds accepted research patches into an editing session
// and computes the exportable diff between the session and the base graph.
package research

import (
	"github.com/siherrmann/curriculab/core/editstate"
	"github.com/siherrmann/curriculab/helper"
	"github.com/siherrmann/curriculab/model"
)

// ApplyPatch merges an accepted research patch into the proposed-node list and
// the prerequisite edit state. Nodes are processed before edges because edge
// validity depends on the updated node-id set. Inputs are not mutated.
//
// Node entries are skipped unless their nodeType is "textbookUnit" and their
// id is unknown to both the base graph and the existing proposed nodes.
// Edge entries are skipped unless their edgeType is "prereq", both endpoints
// resolve against base or proposed ids, and their key is not already in the
// base, manual-added or research layers. The patch's remove_edges are
// validated upstream but deliberately not applied here; tombstoning an edge
// is a user action.
func ApplyPatch(
	proposed []model.ProposedNode,
	prereq editstate.State,
	baseNodeIDs map[string]bool,
	patch *model.ResearchPatch,
) ([]model.ProposedNode, editstate.State) {
	if patch == nil {
		return proposed, prereq
	}

	knownIDs := make(map[string]bool, len(baseNodeIDs)+len(proposed))
	for id := range baseNodeIDs {
		knownIDs[id] = true
	}
	for _, n := range proposed {
		knownIDs[n.ID] = true
	}

	nodes := make([]model.ProposedNode, 0, len(proposed)+len(patch.AddNodes))
	nodes = append(nodes, proposed...)
	for _, n := range patch.AddNodes {
		if n.NodeType != model.NodeTypeTextbookUnit {
			continue
		}
		if knownIDs[n.ID] {
			continue
		}
		knownIDs[n.ID] = true
		nodes = append(nodes, model.ProposedNode{
			ID:       n.ID,
			NodeType: model.NodeTypeTextbookUnit,
			Label:    n.Label,
			Proposed: true,
			Origin:   model.NodeOriginResearch,
			Reason:   n.Reason,
		})
	}
	nodes = helper.DedupeBy(nodes, func(n model.ProposedNode) string { return n.ID })

	state := prereq
	for _, e := range patch.AddEdges {
		if e.EdgeType != model.EdgeTypePrereq {
			continue
		}
		if !knownIDs[e.Source] || !knownIDs[e.Target] {
			continue
		}
		state = state.AddResearch(model.PrereqEdge{Source: e.Source, Target: e.Target})
	}

	return nodes, state
}
