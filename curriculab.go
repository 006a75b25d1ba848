// Package curriculab is an authoring tool core for reconciling a base
// curriculum graph with research-proposed edits. An Editor holds one editing
// session: the immutable base graph, the layered prerequisite edit state, the
// proposed textbook-unit nodes and the per-suggestion decisions. All graph
// logic lives in the pure core packages; the Editor serializes transitions
// and talks to the key-value store.
package curriculab

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/siherrmann/curriculab/core/editstate"
	"github.com/siherrmann/curriculab/core/graph"
	"github.com/siherrmann/curriculab/core/ident"
	"github.com/siherrmann/curriculab/core/research"
	"github.com/siherrmann/curriculab/helper"
	"github.com/siherrmann/curriculab/model"
	"github.com/siherrmann/curriculab/store"
)

// Editor is one editing session over a base curriculum graph
type Editor struct {
	ID    uuid.UUID
	Graph *model.Graph
	// Session state
	baseNodeIDs map[string]bool
	track       model.Track
	proposed    []model.ProposedNode
	prereq      editstate.State
	decisions   model.Decisions
	// Persistence
	kv store.KV
	// Logging
	log *slog.Logger
}

// NewEditor creates an editing session over the given base graph.
// A nil kv falls back to an in-memory store, so an Editor is usable without
// any persistence setup.
func NewEditor(baseGraph *model.Graph, kv store.KV) (*Editor, error) {
	if baseGraph == nil {
		return nil, helper.NewError("base graph validation", fmt.Errorf("base graph is nil"))
	}

	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	if kv == nil {
		kv = store.NewMemoryStore()
	}

	editor := &Editor{
		ID:          uuid.New(),
		Graph:       baseGraph,
		baseNodeIDs: baseGraph.NodeIDSet(),
		track:       model.TrackT1,
		proposed:    []model.ProposedNode{},
		prereq:      editstate.New(baseGraph.PrereqEdges(), nil),
		decisions:   model.NewDecisions(),
		kv:          kv,
		log:         logger,
	}

	logger.Info("Initialized editor",
		slog.String("editor_id", editor.ID.String()),
		slog.Int("base_nodes", len(baseGraph.Nodes)),
		slog.Int("base_prereq_edges", len(editor.prereq.Base())),
	)

	return editor, nil
}

// SelectedTrack returns the currently selected research track.
func (e *Editor) SelectedTrack() model.Track {
	return e.track
}

// SelectTrack switches the session to another research track.
func (e *Editor) SelectTrack(track model.Track) error {
	for _, known := range model.Tracks() {
		if known == track {
			e.track = track
			e.log.Info("Selected research track", slog.String("track", string(track)))
			return nil
		}
	}
	return helper.NewError("select track", fmt.Errorf("unknown track %q", track))
}

// ProposedNodes returns a copy of the proposed textbook-unit nodes.
func (e *Editor) ProposedNodes() []model.ProposedNode {
	out := make([]model.ProposedNode, len(e.proposed))
	copy(out, e.proposed)
	return out
}

// AddProposedUnit creates a manual proposed textbook-unit node from a label.
// The id is derived from the label and made collision-free against all known
// node ids. Fails when the label yields an empty slug.
func (e *Editor) AddProposedUnit(label string, note string) (model.ProposedNode, error) {
	id, ok := ident.GenerateProposedNodeID(label, e.knownNodeIDs())
	if !ok {
		return model.ProposedNode{}, helper.NewError("generate proposed node id", fmt.Errorf("label %q yields an empty identifier", label))
	}

	node := model.ProposedNode{
		ID:       id,
		NodeType: model.NodeTypeTextbookUnit,
		Label:    label,
		Proposed: true,
		Origin:   model.NodeOriginManual,
		Note:     note,
	}
	e.proposed = append(e.proposed, node)

	e.log.Info("Added proposed unit", slog.String("node_id", id), slog.String("label", label))

	return node, nil
}

// AddPrereq introduces a prerequisite edge between two known nodes. Adding a
// present edge is a no-op; re-adding a previously removed base or research
// edge restores its original provenance.
func (e *Editor) AddPrereq(source, target string) error {
	known := e.knownNodeIDs()
	if !known[source] {
		return helper.NewError("add prereq", fmt.Errorf("unknown source node %q", source))
	}
	if !known[target] {
		return helper.NewError("add prereq", fmt.Errorf("unknown target node %q", target))
	}

	e.prereq = e.prereq.Add(model.PrereqEdge{Source: source, Target: target})

	e.log.Info("Added prereq edge", slog.String("source", source), slog.String("target", target))

	return nil
}

// RemovePrereq removes a prerequisite edge from the current view. Removing an
// absent edge is a no-op; base and research edges are tombstoned, manual
// edges deleted.
func (e *Editor) RemovePrereq(source, target string) {
	e.prereq = e.prereq.Remove(model.PrereqEdge{Source: source, Target: target})

	e.log.Info("Removed prereq edge", slog.String("source", source), slog.String("target", target))
}

// CurrentPrereqs returns the effective prerequisite edges with provenance.
func (e *Editor) CurrentPrereqs() []model.OriginEdge {
	return e.prereq.Current()
}

// DetectCycle checks the effective prerequisite edges for a directed cycle.
func (e *Editor) DetectCycle() graph.CycleResult {
	return graph.DetectCycle(e.prereq.CurrentPrereqs())
}

// AcceptResearchPatch merges a research patch into the session: valid
// textbook-unit nodes join the proposed list and valid prereq edges join the
// research layer. The patch's remove_edges are not applied.
func (e *Editor) AcceptResearchPatch(patch *model.ResearchPatch) {
	nodesBefore := len(e.proposed)
	edgesBefore := len(e.prereq.Research())

	e.proposed, e.prereq = research.ApplyPatch(e.proposed, e.prereq, e.baseNodeIDs, patch)

	e.log.Info("Accepted research patch",
		slog.Int("new_nodes", len(e.proposed)-nodesBefore),
		slog.Int("new_edges", len(e.prereq.Research())-edgesBefore),
	)
}

// AcceptSuggestedNode marks a proposed node as accepted.
func (e *Editor) AcceptSuggestedNode(id string) {
	e.decisions.AcceptNode(id)
}

// ExcludeSuggestedNode marks a proposed node as excluded.
func (e *Editor) ExcludeSuggestedNode(id string) {
	e.decisions.ExcludeNode(id)
}

// AcceptSuggestedEdge marks a suggested edge as accepted.
func (e *Editor) AcceptSuggestedEdge(source, target string) {
	e.decisions.AcceptEdge(model.PrereqEdge{Source: source, Target: target}.Key())
}

// ExcludeSuggestedEdge marks a suggested edge as excluded.
func (e *Editor) ExcludeSuggestedEdge(source, target string) {
	e.decisions.ExcludeEdge(model.PrereqEdge{Source: source, Target: target}.Key())
}

// NodeDecision returns the decision status of a proposed node.
func (e *Editor) NodeDecision(id string) model.DecisionStatus {
	return e.decisions.NodeStatus(id)
}

// EdgeDecision returns the decision status of a suggested edge.
func (e *Editor) EdgeDecision(source, target string) model.DecisionStatus {
	return e.decisions.EdgeStatus(model.PrereqEdge{Source: source, Target: target}.Key())
}

// Export builds the research patch describing the session's delta against the
// base graph. Output is deterministic for identical sessions.
func (e *Editor) Export() *model.ResearchPatch {
	return research.BuildExport(e.prereq, e.baseNodeIDs, e.proposed)
}

// ExportJSON serializes the export patch. With pretty set, the document is
// indented for human review.
func (e *Editor) ExportJSON(pretty bool) ([]byte, error) {
	patch := e.Export()

	var raw []byte
	var err error
	if pretty {
		raw, err = json.MarshalIndent(patch, "", "  ")
	} else {
		raw, err = json.Marshal(patch)
	}
	if err != nil {
		return nil, helper.NewError("marshal export patch", err)
	}
	return raw, nil
}

// Save persists the session and its suggestion decisions to the store.
func (e *Editor) Save(ctx context.Context) error {
	state := store.EditorState{
		SelectedTrack: e.track,
		ProposedNodes: e.ProposedNodes(),
		Prereq:        e.prereq,
	}
	if err := store.SaveEditorState(ctx, e.kv, state); err != nil {
		return helper.NewError("save editor state", err)
	}
	if err := store.SaveDecisions(ctx, e.kv, e.decisions); err != nil {
		return helper.NewError("save decisions", err)
	}

	e.log.Info("Saved editor session", slog.String("editor_id", e.ID.String()))

	return nil
}

// Load restores the session and its suggestion decisions from the store.
// Absent or unreadable documents reset the session to its defaults; the base
// layer always comes from the current base graph.
func (e *Editor) Load(ctx context.Context) {
	state := store.LoadEditorState(ctx, e.kv, e.Graph.PrereqEdges())
	e.track = state.SelectedTrack
	e.proposed = state.ProposedNodes
	e.prereq = state.Prereq
	e.decisions = store.LoadDecisions(ctx, e.kv)

	e.log.Info("Loaded editor session",
		slog.String("track", string(e.track)),
		slog.Int("proposed_nodes", len(e.proposed)),
	)
}

// knownNodeIDs returns the union of base and proposed node ids.
func (e *Editor) knownNodeIDs() map[string]bool {
	known := make(map[string]bool, len(e.baseNodeIDs)+len(e.proposed))
	for id := range e.baseNodeIDs {
		known[id] = true
	}
	for _, n := range e.proposed {
		known[n.ID] = true
	}
	return known
}
