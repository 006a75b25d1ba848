package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/siherrmann/curriculab"
	"github.com/siherrmann/curriculab/helper"
	"github.com/siherrmann/curriculab/model"
	"github.com/siherrmann/curriculab/store"
)

func main() {
	ctx := context.Background()

	// Start a test PostgreSQL container for the session store
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(ctx)

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		User:     "curriculab",
		Password: "curriculab",
		Name:     "curriculab_test",
		SSLMode:  "disable",
	}

	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelInfo},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))
	db := helper.NewDatabase("curriculab", dbConfig, logger)
	defer db.Instance.Close()

	kv, err := store.NewPostgresStore(db, false)
	if err != nil {
		log.Fatalf("Failed to create postgres store: %v", err)
	}

	baseGraph := &model.Graph{
		Nodes: []model.Node{
			{ID: "counting", NodeType: "standard", Label: "Counting"},
			{ID: "addition", NodeType: "standard", Label: "Addition"},
		},
		Edges: []model.Edge{
			{EdgeType: "prereq", Source: "counting", Target: "addition"},
		},
	}

	// First session: make some edits and persist them
	editor, err := curriculab.NewEditor(baseGraph, kv)
	if err != nil {
		log.Fatalf("Failed to create editor: %v", err)
	}
	if err := editor.SelectTrack(model.TrackT2); err != nil {
		log.Fatalf("Failed to select track: %v", err)
	}
	node, err := editor.AddProposedUnit("Place Value", "needed before multi-digit addition")
	if err != nil {
		log.Fatalf("Failed to add proposed unit: %v", err)
	}
	if err := editor.AddPrereq(node.ID, "addition"); err != nil {
		log.Fatalf("Failed to add prereq: %v", err)
	}
	if err := editor.Save(ctx); err != nil {
		log.Fatalf("Failed to save session: %v", err)
	}

	// Second session: restore everything from the store
	restored, err := curriculab.NewEditor(baseGraph, kv)
	if err != nil {
		log.Fatalf("Failed to create editor: %v", err)
	}
	restored.Load(ctx)

	fmt.Printf("Restored track: %s\n", restored.SelectedTrack())
	fmt.Println("Restored prerequisite edges:")
	for _, edge := range restored.CurrentPrereqs() {
		fmt.Printf("  %s -> %s (%s)\n", edge.Source, edge.Target, edge.Origin)
	}
}
