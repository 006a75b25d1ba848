package main

import (
	"fmt"
	"log"

	"github.com/siherrmann/curriculab"
	"github.com/siherrmann/curriculab/model"
)

func main() {
	// A small base curriculum: counting -> addition -> multiplication
	baseGraph := &model.Graph{
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

	// nil store: the session lives in memory
	editor, err := curriculab.NewEditor(baseGraph, nil)
	if err != nil {
		log.Fatalf("Failed to create editor: %v", err)
	}

	// Accept a research patch proposing a new textbook unit and an edge to it
	editor.AcceptResearchPatch(&model.ResearchPatch{
		SchemaVersion: model.SchemaVersionResearchPatch,
		Researcher:    "example",
		AddNodes: []model.PatchNode{
			{ID: "P_TU_fractions", NodeType: "textbookUnit", Label: "Fractions", Reason: "missing unit between multiplication and ratios"},
		},
		AddEdges: []model.PatchEdge{
			{Source: "multiplication", Target: "P_TU_fractions", EdgeType: "prereq", Rationale: "fractions build on multiplication"},
		},
	})

	// Manually create another proposed unit and wire it in
	node, err := editor.AddProposedUnit("Solid Figures Bridge", "hands-on geometry unit")
	if err != nil {
		log.Fatalf("Failed to add proposed unit: %v", err)
	}
	if err := editor.AddPrereq("addition", node.ID); err != nil {
		log.Fatalf("Failed to add prereq: %v", err)
	}

	// Remove a base edge; it is tombstoned, not deleted
	editor.RemovePrereq("counting", "addition")

	fmt.Println("Current prerequisite edges:")
	for _, edge := range editor.CurrentPrereqs() {
		fmt.Printf("  %s -> %s (%s)\n", edge.Source, edge.Target, edge.Origin)
	}

	// Closing a loop is detected before export
	if err := editor.AddPrereq("P_TU_fractions", "counting"); err != nil {
		log.Fatalf("Failed to add prereq: %v", err)
	}
	if err := editor.AddPrereq("counting", "multiplication"); err != nil {
		log.Fatalf("Failed to add prereq: %v", err)
	}
	if cycle := editor.DetectCycle(); cycle.HasCycle {
		fmt.Printf("\nCycle detected: %v\n", cycle.Path)
		// Undo the offending edge
		editor.RemovePrereq("counting", "multiplication")
	}

	// Export the session delta as a research patch document
	raw, err := editor.ExportJSON(true)
	if err != nil {
		log.Fatalf("Failed to export: %v", err)
	}
	fmt.Printf("\nExported patch:\n%s\n", raw)
}
