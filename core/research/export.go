package research

import (
	"sort"
	"strings"

	"github.com/siherrmann/curriculab/core/editstate"
	"github.com/siherrmann/curriculab/helper"
	"github.com/siherrmann/curriculab/model"
)

// BuildExport computes the diff between the current edited state and the base
// graph as a canonical research patch document. For the same logical inputs
// the output is byte-identical regardless of insertion order: node entries
// are sorted by id, edge entries by (source, target, edgeType).
func BuildExport(
	prereq editstate.State,
	baseNodeIDs map[string]bool,
	proposed []model.ProposedNode,
) *model.ResearchPatch {
	knownIDs := make(map[string]bool, len(baseNodeIDs)+len(proposed))
	for id := range baseNodeIDs {
		knownIDs[id] = true
	}
	for _, n := range proposed {
		knownIDs[n.ID] = true
	}

	addNodes := make([]model.PatchNode, 0, len(proposed))
	for _, n := range proposed {
		if baseNodeIDs[n.ID] {
			continue
		}
		reason := n.Reason
		if reason == "" {
			reason = n.Note
		}
		addNodes = append(addNodes, model.PatchNode{
			ID:       n.ID,
			NodeType: model.NodeTypeTextbookUnit,
			Label:    n.Label,
			Proposed: true,
			Reason:   reason,
		})
	}
	addNodes = helper.DedupeBy(addNodes, func(n model.PatchNode) string { return n.ID })
	sort.Slice(addNodes, func(i, j int) bool { return addNodes[i].ID < addNodes[j].ID })

	baseKeys := prereq.BaseKeySet()
	addEdges := make([]model.PatchEdge, 0)
	for _, e := range prereq.Current() {
		key := model.PrereqEdge{Source: e.Source, Target: e.Target}.Key()
		if baseKeys[key] {
			continue
		}
		if !knownIDs[e.Source] || !knownIDs[e.Target] {
			continue
		}
		addEdges = append(addEdges, model.PatchEdge{
			Source:   e.Source,
			Target:   e.Target,
			EdgeType: model.EdgeTypePrereq,
		})
	}
	addEdges = helper.DedupeBy(addEdges, func(e model.PatchEdge) string {
		return e.EdgeType + "\x00" + e.Source + "\x00" + e.Target
	})
	sort.Slice(addEdges, func(i, j int) bool {
		if addEdges[i].Source != addEdges[j].Source {
			return addEdges[i].Source < addEdges[j].Source
		}
		if addEdges[i].Target != addEdges[j].Target {
			return addEdges[i].Target < addEdges[j].Target
		}
		return addEdges[i].EdgeType < addEdges[j].EdgeType
	})

	removeEdges := make([]model.PatchEdgeRef, 0)
	for _, e := range prereq.Removed() {
		if strings.TrimSpace(e.Source) == "" || strings.TrimSpace(e.Target) == "" {
			continue
		}
		removeEdges = append(removeEdges, model.PatchEdgeRef{
			Source:   e.Source,
			Target:   e.Target,
			EdgeType: model.EdgeTypePrereq,
		})
	}
	removeEdges = helper.DedupeBy(removeEdges, func(e model.PatchEdgeRef) string {
		return e.Source + "\x00" + e.Target
	})
	sort.Slice(removeEdges, func(i, j int) bool {
		if removeEdges[i].Source != removeEdges[j].Source {
			return removeEdges[i].Source < removeEdges[j].Source
		}
		if removeEdges[i].Target != removeEdges[j].Target {
			return removeEdges[i].Target < removeEdges[j].Target
		}
		return removeEdges[i].EdgeType < removeEdges[j].EdgeType
	})

	return &model.ResearchPatch{
		SchemaVersion: model.SchemaVersionResearchPatch,
		AddNodes:      addNodes,
		AddEdges:      addEdges,
		RemoveEdges:   removeEdges,
	}
}
