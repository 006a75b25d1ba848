package curriculab

import (
	"context"
	"testing"

	"github.com/siherrmann/curriculab/model"
	"github.com/siherrmann/curriculab/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGraph() *model.Graph {
	return &model.Graph{
		Nodes: []model.Node{
			{ID: "counting", NodeType: "standard", Label: "Counting"},
			{ID: "addition", NodeType: "standard", Label: "Addition"},
			{ID: "multiplication", NodeType: "standard", Label: "Multiplication"},
		},
		Edges: []model.Edge{
			{EdgeType: "prereq", Source: "counting", Target: "addition"},
			{EdgeType: "prereq", Source: "addition", Target: "multiplication"},
		},
	}
}

func TestNewEditor(t *testing.T) {
	t.Run("Creates an editor over a base graph", func(t *testing.T) {
		editor, err := NewEditor(testGraph(), nil)

		require.NoError(t, err)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", editor.ID.String())
		assert.Equal(t, model.TrackT1, editor.SelectedTrack())
		assert.Len(t, editor.CurrentPrereqs(), 2)
	})

	t.Run("Fails with nil base graph", func(t *testing.T) {
		_, err := NewEditor(nil, nil)
		assert.Error(t, err)
	})
}

func TestEditorTrackSelection(t *testing.T) {
	editor, err := NewEditor(testGraph(), nil)
	require.NoError(t, err)

	t.Run("Selects a known track", func(t *testing.T) {
		require.NoError(t, editor.SelectTrack(model.TrackT3))
		assert.Equal(t, model.TrackT3, editor.SelectedTrack())
	})

	t.Run("Rejects an unknown track", func(t *testing.T) {
		err := editor.SelectTrack(model.Track("T9"))
		assert.Error(t, err)
		assert.Equal(t, model.TrackT3, editor.SelectedTrack(), "Expected the selection to stay unchanged")
	})
}

func TestEditorPrereqEditing(t *testing.T) {
	editor, err := NewEditor(testGraph(), nil)
	require.NoError(t, err)

	t.Run("Rejects edges with unknown endpoints", func(t *testing.T) {
		assert.Error(t, editor.AddPrereq("counting", "ghost"))
		assert.Error(t, editor.AddPrereq("ghost", "counting"))
		assert.Len(t, editor.CurrentPrereqs(), 2)
	})

	t.Run("Adds a manual edge between known nodes", func(t *testing.T) {
		require.NoError(t, editor.AddPrereq("counting", "multiplication"))

		current := editor.CurrentPrereqs()
		require.Len(t, current, 3)
		assert.Contains(t, current, model.OriginEdge{Source: "counting", Target: "multiplication", Origin: model.OriginManual})
	})

	t.Run("Removing and re-adding a base edge restores base provenance", func(t *testing.T) {
		editor.RemovePrereq("counting", "addition")
		assert.Len(t, editor.CurrentPrereqs(), 2)

		require.NoError(t, editor.AddPrereq("counting", "addition"))
		assert.Contains(t, editor.CurrentPrereqs(), model.OriginEdge{Source: "counting", Target: "addition", Origin: model.OriginBase})
	})

	t.Run("Removing an absent edge is a no-op", func(t *testing.T) {
		before := editor.CurrentPrereqs()
		editor.RemovePrereq("multiplication", "counting")
		assert.Equal(t, before, editor.CurrentPrereqs())
	})
}

func TestEditorCycleDetection(t *testing.T) {
	editor, err := NewEditor(testGraph(), nil)
	require.NoError(t, err)

	t.Run("Acyclic base graph reports no cycle", func(t *testing.T) {
		result := editor.DetectCycle()
		assert.False(t, result.HasCycle)
		assert.Nil(t, result.Path)
	})

	t.Run("Manual edge closing a loop reports the cycle path", func(t *testing.T) {
		require.NoError(t, editor.AddPrereq("multiplication", "counting"))

		result := editor.DetectCycle()
		require.True(t, result.HasCycle)
		assert.Equal(t, result.Path[0], result.Path[len(result.Path)-1], "Expected a closed path")
	})
}

func TestEditorProposedUnits(t *testing.T) {
	editor, err := NewEditor(testGraph(), nil)
	require.NoError(t, err)

	t.Run("Creates a proposed unit with a derived id", func(t *testing.T) {
		node, err := editor.AddProposedUnit("Solid Figures Bridge", "fills a gap")

		require.NoError(t, err)
		assert.Equal(t, "P_TU_solid_figures_bridge", node.ID)
		assert.Equal(t, model.NodeOriginManual, node.Origin)
		assert.True(t, node.Proposed)
	})

	t.Run("Colliding labels get numeric suffixes", func(t *testing.T) {
		node, err := editor.AddProposedUnit("Solid Figures Bridge!", "")

		require.NoError(t, err)
		assert.Equal(t, "P_TU_solid_figures_bridge_2", node.ID)
	})

	t.Run("Rejects labels without identifier content", func(t *testing.T) {
		_, err := editor.AddProposedUnit("***", "")
		assert.Error(t, err)
	})

	t.Run("Proposed units can be edge endpoints", func(t *testing.T) {
		assert.NoError(t, editor.AddPrereq("addition", "P_TU_solid_figures_bridge"))
	})
}

func TestEditorResearchPatch(t *testing.T) {
	editor, err := NewEditor(testGraph(), nil)
	require.NoError(t, err)

	patch := &model.ResearchPatch{
		SchemaVersion: model.SchemaVersionResearchPatch,
		AddNodes: []model.PatchNode{
			{ID: "P_TU_fractions", NodeType: model.NodeTypeTextbookUnit, Label: "Fractions", Reason: "missing unit"},
			{ID: "P_TU_skipped", NodeType: "standard", Label: "Skipped"},
		},
		AddEdges: []model.PatchEdge{
			{Source: "multiplication", Target: "P_TU_fractions", EdgeType: model.EdgeTypePrereq},
			{Source: "counting", Target: "addition", EdgeType: model.EdgeTypePrereq},
			{Source: "ghost", Target: "P_TU_fractions", EdgeType: model.EdgeTypePrereq},
		},
	}

	t.Run("Accepting a patch merges valid nodes and edges", func(t *testing.T) {
		editor.AcceptResearchPatch(patch)

		require.Len(t, editor.ProposedNodes(), 1)
		assert.Equal(t, model.NodeOriginResearch, editor.ProposedNodes()[0].Origin)
		assert.Contains(t, editor.CurrentPrereqs(), model.OriginEdge{Source: "multiplication", Target: "P_TU_fractions", Origin: model.OriginResearch})
		assert.Len(t, editor.CurrentPrereqs(), 3, "Expected the duplicate and unknown-endpoint edges to be skipped")
	})

	t.Run("Accepting the same patch twice changes nothing", func(t *testing.T) {
		before := editor.CurrentPrereqs()
		editor.AcceptResearchPatch(patch)

		assert.Equal(t, before, editor.CurrentPrereqs())
		assert.Len(t, editor.ProposedNodes(), 1)
	})

	t.Run("Suggestion decisions default to pending and toggle", func(t *testing.T) {
		assert.Equal(t, model.DecisionPending, editor.NodeDecision("P_TU_fractions"))

		editor.AcceptSuggestedNode("P_TU_fractions")
		assert.Equal(t, model.DecisionAccepted, editor.NodeDecision("P_TU_fractions"))

		editor.ExcludeSuggestedNode("P_TU_fractions")
		assert.Equal(t, model.DecisionExcluded, editor.NodeDecision("P_TU_fractions"))

		editor.AcceptSuggestedEdge("multiplication", "P_TU_fractions")
		assert.Equal(t, model.DecisionAccepted, editor.EdgeDecision("multiplication", "P_TU_fractions"))
		assert.Equal(t, model.DecisionPending, editor.EdgeDecision("counting", "addition"))
	})
}

func TestEditorExport(t *testing.T) {
	editor, err := NewEditor(testGraph(), nil)
	require.NoError(t, err)

	_, err = editor.AddProposedUnit("Fractions", "missing unit")
	require.NoError(t, err)
	require.NoError(t, editor.AddPrereq("multiplication", "P_TU_fractions"))
	editor.RemovePrereq("counting", "addition")

	t.Run("Export contains only the delta against base", func(t *testing.T) {
		patch := editor.Export()

		assert.Equal(t, model.SchemaVersionResearchPatch, patch.SchemaVersion)
		require.Len(t, patch.AddNodes, 1)
		assert.Equal(t, "P_TU_fractions", patch.AddNodes[0].ID)
		require.Len(t, patch.AddEdges, 1)
		assert.Equal(t, "multiplication", patch.AddEdges[0].Source)
		require.Len(t, patch.RemoveEdges, 1)
		assert.Equal(t, "counting", patch.RemoveEdges[0].Source)
	})

	t.Run("ExportJSON is deterministic", func(t *testing.T) {
		first, err := editor.ExportJSON(true)
		require.NoError(t, err)
		second, err := editor.ExportJSON(true)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestEditorPersistence(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()

	editor, err := NewEditor(testGraph(), kv)
	require.NoError(t, err)

	require.NoError(t, editor.SelectTrack(model.TrackT2))
	_, err = editor.AddProposedUnit("Fractions", "")
	require.NoError(t, err)
	require.NoError(t, editor.AddPrereq("multiplication", "P_TU_fractions"))
	editor.RemovePrereq("counting", "addition")
	editor.AcceptSuggestedNode("P_TU_fractions")

	t.Run("Save then Load restores the session", func(t *testing.T) {
		require.NoError(t, editor.Save(ctx))

		restored, err := NewEditor(testGraph(), kv)
		require.NoError(t, err)
		restored.Load(ctx)

		assert.Equal(t, model.TrackT2, restored.SelectedTrack())
		assert.Equal(t, editor.ProposedNodes(), restored.ProposedNodes())
		assert.ElementsMatch(t, editor.CurrentPrereqs(), restored.CurrentPrereqs())
		assert.Equal(t, model.DecisionAccepted, restored.NodeDecision("P_TU_fractions"))
	})

	t.Run("Load without stored documents resets to defaults", func(t *testing.T) {
		fresh, err := NewEditor(testGraph(), store.NewMemoryStore())
		require.NoError(t, err)
		fresh.Load(ctx)

		assert.Equal(t, model.TrackT1, fresh.SelectedTrack())
		assert.Empty(t, fresh.ProposedNodes())
		assert.Len(t, fresh.CurrentPrereqs(), 2)
	})
}
