package store

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/siherrmann/curriculab/core/editstate"
	"github.com/siherrmann/curriculab/helper"
	"github.com/siherrmann/curriculab/model"
)

// Storage keys of the two persisted session documents.
const (
	EditorStateKey = "curriculab/editor_state"
	DecisionsKey   = "curriculab/suggestion_decisions"
)

// EditorState is the persistent part of an editing session.
type EditorState struct {
	SelectedTrack model.Track
	ProposedNodes []model.ProposedNode
	Prereq        editstate.State
}

// storedEditorState is the JSON wire form of EditorState. The prerequisite
// layers are flattened so the document stays readable and diffable.
type storedEditorState struct {
	SelectedTrack      string               `json:"selectedTrack"`
	ProposedNodes      []model.ProposedNode `json:"proposedNodes"`
	Base               []model.PrereqEdge   `json:"base"`
	Research           []model.PrereqEdge   `json:"research"`
	Added              []model.PrereqEdge   `json:"added"`
	Removed            []model.PrereqEdge   `json:"removed"`
	SuppressedResearch []model.PrereqEdge   `json:"suppressedResearch"`
}

type storedDecisions struct {
	AcceptedNodes []string `json:"acceptedNodes"`
	AcceptedEdges []string `json:"acceptedEdges"`
	ExcludedNodes []string `json:"excludedNodes"`
	ExcludedEdges []string `json:"excludedEdges"`
}

// DefaultEditorState returns a fresh session over the given base edges.
func DefaultEditorState(base []model.PrereqEdge) EditorState {
	return EditorState{
		SelectedTrack: model.TrackT1,
		ProposedNodes: []model.ProposedNode{},
		Prereq:        editstate.New(base, nil),
	}
}

// SaveEditorState writes the session document. All collections are sorted so
// the stored JSON is deterministic for identical states.
func SaveEditorState(ctx context.Context, kv KV, state EditorState) error {
	doc := storedEditorState{
		SelectedTrack:      string(state.SelectedTrack),
		ProposedNodes:      sortedNodes(state.ProposedNodes),
		Base:               sortedEdges(state.Prereq.Base()),
		Research:           sortedEdges(state.Prereq.Research()),
		Added:              sortedEdges(state.Prereq.Added()),
		Removed:            sortedEdges(state.Prereq.Removed()),
		SuppressedResearch: sortedEdges(state.Prereq.SuppressedResearch()),
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return helper.NewError("marshal editor state", err)
	}
	if err := kv.Set(ctx, EditorStateKey, string(raw)); err != nil {
		return helper.NewError("persist editor state", err)
	}
	return nil
}

// LoadEditorState reads the session document, falling back to a fresh default
// state when the document is absent, unreadable or corrupted. The base layer
// always comes from the caller, never from the stored document, so a stale
// document cannot resurrect edges the base curriculum no longer has.
func LoadEditorState(ctx context.Context, kv KV, base []model.PrereqEdge) EditorState {
	raw, found, err := kv.Get(ctx, EditorStateKey)
	if err != nil || !found {
		return DefaultEditorState(base)
	}

	var doc storedEditorState
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return DefaultEditorState(base)
	}

	state := EditorState{
		SelectedTrack: model.TrackT1,
		ProposedNodes: helper.DedupeBy(doc.ProposedNodes, func(n model.ProposedNode) string { return n.ID }),
		Prereq:        editstate.NewLayers(base, doc.Research, doc.Added, doc.Removed, doc.SuppressedResearch),
	}
	for _, track := range model.Tracks() {
		if string(track) == doc.SelectedTrack {
			state.SelectedTrack = track
		}
	}
	return state
}

// SaveDecisions writes the suggestion decision document with sorted key lists.
func SaveDecisions(ctx context.Context, kv KV, decisions model.Decisions) error {
	doc := storedDecisions{
		AcceptedNodes: sortedKeys(decisions.Accepted.NodeIDs),
		AcceptedEdges: sortedKeys(decisions.Accepted.EdgeKeys),
		ExcludedNodes: sortedKeys(decisions.Excluded.NodeIDs),
		ExcludedEdges: sortedKeys(decisions.Excluded.EdgeKeys),
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return helper.NewError("marshal decisions", err)
	}
	if err := kv.Set(ctx, DecisionsKey, string(raw)); err != nil {
		return helper.NewError("persist decisions", err)
	}
	return nil
}

// LoadDecisions reads the suggestion decision document, falling back to an
// empty decision store when the document is absent, unreadable or corrupted.
func LoadDecisions(ctx context.Context, kv KV) model.Decisions {
	decisions := model.NewDecisions()

	raw, found, err := kv.Get(ctx, DecisionsKey)
	if err != nil || !found {
		return decisions
	}

	var doc storedDecisions
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return decisions
	}

	for _, id := range doc.AcceptedNodes {
		decisions.AcceptNode(id)
	}
	for _, key := range doc.AcceptedEdges {
		decisions.AcceptEdge(key)
	}
	for _, id := range doc.ExcludedNodes {
		decisions.ExcludeNode(id)
	}
	for _, key := range doc.ExcludedEdges {
		decisions.ExcludeEdge(key)
	}
	return decisions
}

func sortedEdges(edges []model.PrereqEdge) []model.PrereqEdge {
	out := make([]model.PrereqEdge, len(edges))
	copy(out, edges)
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

func sortedNodes(nodes []model.ProposedNode) []model.ProposedNode {
	out := make([]model.ProposedNode, len(nodes))
	copy(out, nodes)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
