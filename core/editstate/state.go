// Package editstate models the layered prerequisite edge set of an editing
// session. A State is an immutable snapshot; every transition returns a new
// value and never mutates its input, so readers of an old snapshot stay valid.
package editstate

import (
	"github.com/siherrmann/curriculab/helper"
	"github.com/siherrmann/curriculab/model"
)

// State holds five edge collections over the same (source, target) key space:
// the base curriculum edges, edges accepted from research patches, manually
// added edges, and two tombstone layers marking removed base edges and
// suppressed research edges. Each collection contains unique keys.
type State struct {
	base       []model.PrereqEdge
	research   []model.PrereqEdge
	added      []model.PrereqEdge
	removed    []model.PrereqEdge
	suppressed []model.PrereqEdge
}

// New creates a state from the base curriculum edges and an optional initial
// research layer. Both inputs are deduplicated by key, first occurrence wins.
func New(base, research []model.PrereqEdge) State {
	return NewLayers(base, research, nil, nil, nil)
}

// NewLayers reconstructs a state from all five layers, deduplicating each.
// Used when loading a persisted session, where stored data may carry duplicates.
func NewLayers(base, research, added, removed, suppressed []model.PrereqEdge) State {
	return State{
		base:       dedupe(base),
		research:   dedupe(research),
		added:      dedupe(added),
		removed:    dedupe(removed),
		suppressed: dedupe(suppressed),
	}
}

func dedupe(edges []model.PrereqEdge) []model.PrereqEdge {
	return helper.DedupeBy(edges, model.PrereqEdge.Key)
}

// Base returns a copy of the base layer.
func (s State) Base() []model.PrereqEdge { return copyEdges(s.base) }

// Research returns a copy of the research layer.
func (s State) Research() []model.PrereqEdge { return copyEdges(s.research) }

// Added returns a copy of the manually added layer.
func (s State) Added() []model.PrereqEdge { return copyEdges(s.added) }

// Removed returns a copy of the removed-base tombstone layer.
func (s State) Removed() []model.PrereqEdge { return copyEdges(s.removed) }

// SuppressedResearch returns a copy of the suppressed-research tombstone layer.
func (s State) SuppressedResearch() []model.PrereqEdge { return copyEdges(s.suppressed) }

// IsPresent reports whether the edge is currently in effect. The added layer
// wins first, then the removed tombstone, then base, then the suppressed
// tombstone, then research.
func (s State) IsPresent(edge model.PrereqEdge) bool {
	key := edge.Key()
	if containsKey(s.added, key) {
		return true
	}
	if containsKey(s.removed, key) {
		return false
	}
	if containsKey(s.base, key) {
		return true
	}
	if containsKey(s.suppressed, key) {
		return false
	}
	return containsKey(s.research, key)
}

// Add introduces an edge. Adding a present edge is a no-op. Adding a
// tombstoned base or research edge clears the tombstone so the edge regains
// its original provenance. Anything else becomes a manual edge.
func (s State) Add(edge model.PrereqEdge) State {
	if s.IsPresent(edge) {
		return s
	}
	key := edge.Key()
	if containsKey(s.removed, key) {
		next := s
		next.removed = withoutKey(s.removed, key)
		return next
	}
	if containsKey(s.suppressed, key) {
		next := s
		next.suppressed = withoutKey(s.suppressed, key)
		return next
	}
	next := s
	next.added = appendEdge(s.added, edge)
	return next
}

// Remove deletes an edge from the current view. Removing an absent edge is a
// no-op. Manual edges are deleted outright; base and research edges are
// tombstoned so they can be restored later.
func (s State) Remove(edge model.PrereqEdge) State {
	if !s.IsPresent(edge) {
		return s
	}
	key := edge.Key()
	if containsKey(s.added, key) {
		next := s
		next.added = withoutKey(s.added, key)
		return next
	}
	if containsKey(s.base, key) && !containsKey(s.removed, key) {
		next := s
		next.removed = appendEdge(s.removed, edge)
		return next
	}
	if containsKey(s.research, key) && !containsKey(s.suppressed, key) {
		next := s
		next.suppressed = appendEdge(s.suppressed, edge)
		return next
	}
	// Present but in no layer; unreachable under the invariants.
	return s
}

// AddResearch appends an edge to the research layer, skipping keys already
// known to the base, added or research layers. Tombstones are left alone: a
// suppressed research edge stays suppressed and a removed base edge stays
// removed.
func (s State) AddResearch(edge model.PrereqEdge) State {
	key := edge.Key()
	if containsKey(s.base, key) || containsKey(s.added, key) || containsKey(s.research, key) {
		return s
	}
	next := s
	next.research = appendEdge(s.research, edge)
	return next
}

// Current returns the effective edge set, each edge exactly once, tagged with
// the provenance of the layer it was drawn from. Priority order is
// base > research > manual.
func (s State) Current() []model.OriginEdge {
	removedKeys := keySet(s.removed)
	suppressedKeys := keySet(s.suppressed)
	baseKeys := keySet(s.base)
	researchKeys := keySet(s.research)

	out := make([]model.OriginEdge, 0, len(s.base)+len(s.research)+len(s.added))
	for _, e := range s.base {
		if removedKeys[e.Key()] {
			continue
		}
		out = append(out, model.OriginEdge{Source: e.Source, Target: e.Target, Origin: model.OriginBase})
	}
	for _, e := range s.research {
		key := e.Key()
		if suppressedKeys[key] || baseKeys[key] {
			continue
		}
		out = append(out, model.OriginEdge{Source: e.Source, Target: e.Target, Origin: model.OriginResearch})
	}
	for _, e := range s.added {
		key := e.Key()
		if baseKeys[key] || researchKeys[key] {
			continue
		}
		out = append(out, model.OriginEdge{Source: e.Source, Target: e.Target, Origin: model.OriginManual})
	}
	return out
}

// CurrentPrereqs returns the effective edge set without provenance tags.
func (s State) CurrentPrereqs() []model.PrereqEdge {
	current := s.Current()
	out := make([]model.PrereqEdge, 0, len(current))
	for _, e := range current {
		out = append(out, model.PrereqEdge{Source: e.Source, Target: e.Target})
	}
	return out
}

// BaseKeySet returns the key set of the base layer.
func (s State) BaseKeySet() map[string]bool {
	return keySet(s.base)
}

func containsKey(edges []model.PrereqEdge, key string) bool {
	for _, e := range edges {
		if e.Key() == key {
			return true
		}
	}
	return false
}

func keySet(edges []model.PrereqEdge) map[string]bool {
	set := make(map[string]bool, len(edges))
	for _, e := range edges {
		set[e.Key()] = true
	}
	return set
}

func copyEdges(edges []model.PrereqEdge) []model.PrereqEdge {
	out := make([]model.PrereqEdge, len(edges))
	copy(out, edges)
	return out
}

func appendEdge(edges []model.PrereqEdge, edge model.PrereqEdge) []model.PrereqEdge {
	out := make([]model.PrereqEdge, 0, len(edges)+1)
	out = append(out, edges...)
	return append(out, edge)
}

func withoutKey(edges []model.PrereqEdge, key string) []model.PrereqEdge {
	out := make([]model.PrereqEdge, 0, len(edges))
	for _, e := range edges {
		if e.Key() == key {
			continue
		}
		out = append(out, e)
	}
	return out
}
