// Package main provides the curriculab CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/siherrmann/curriculab"
	"github.com/siherrmann/curriculab/core/graph"
	"github.com/siherrmann/curriculab/loader"
	"github.com/siherrmann/curriculab/model"
	"github.com/siherrmann/curriculab/schema"
	"github.com/siherrmann/curriculab/store"
)

var rootCmd = &cobra.Command{
	Use:   "curriculab",
	Short: "Curriculum prerequisite reconciliation tool",
	Long:  `Curriculab overlays research-proposed edits onto a base curriculum graph, checks the result for prerequisite cycles and exports the accumulated delta as a research patch document.`,
}

var validateCmd = &cobra.Command{
	Use:   "validate <graph|manifest|patch> <file>",
	Short: "Validate a JSON document against its schema",
	Args:  cobra.ExactArgs(2),
	RunE:  runValidate,
}

var checkCmd = &cobra.Command{
	Use:   "check <graph-file>",
	Short: "Check a curriculum graph for prerequisite cycles",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Fetch the base graph, apply the selected research patch and print the export patch",
	RunE:  runExport,
}

var (
	trackFlag  string
	prettyFlag bool
)

func init() {
	rootCmd.PersistentFlags().String("base-url", "", "Base URL the curriculum documents are fetched from")
	rootCmd.PersistentFlags().String("store", "", "Path of the SQLite session store (default: in-memory)")
	exportCmd.Flags().StringVar(&trackFlag, "track", "T1", "Research track to apply (T1, T2 or T3)")
	exportCmd.Flags().BoolVar(&prettyFlag, "pretty", true, "Indent the exported JSON")

	viper.SetEnvPrefix("CURRICULAB")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readDocument(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return doc, nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	kind, path := args[0], args[1]

	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	var issues []schema.Issue
	switch kind {
	case "graph":
		issues = schema.ValidateGraph(doc)
	case "manifest":
		issues = schema.ValidateManifest(doc)
	case "patch":
		issues = schema.ValidatePatch(doc)
	default:
		return fmt.Errorf("unknown document kind %q, expected graph, manifest or patch", kind)
	}

	if len(issues) == 0 {
		fmt.Printf("%s: valid %s document\n", path, kind)
		return nil
	}

	for _, issue := range issues {
		fmt.Printf("%s: %s: %s (%s)\n", path, issue.Path, issue.Message, issue.Code)
	}
	return fmt.Errorf("%d issue(s) found", len(issues))
}

func runCheck(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}

	parsed, err := schema.ParseGraph(doc)
	if err != nil {
		return err
	}

	result := graph.DetectCycle(parsed.PrereqEdges())
	if !result.HasCycle {
		fmt.Printf("%s: no prerequisite cycle (%d nodes, %d edges)\n", args[0], len(parsed.Nodes), len(parsed.Edges))
		return nil
	}

	fmt.Printf("%s: prerequisite cycle found:", args[0])
	for _, node := range result.Path {
		fmt.Printf(" %s", node)
	}
	fmt.Println()
	return fmt.Errorf("graph contains a prerequisite cycle")
}

func runExport(cmd *cobra.Command, args []string) error {
	baseURL := viper.GetString("base_url")
	if baseURL == "" {
		return fmt.Errorf("no base URL configured, set --base-url or CURRICULAB_BASE_URL")
	}

	track := model.Track(trackFlag)
	ctx := context.Background()
	fetcher := loader.NewHTTPFetcher(baseURL)

	baseGraph, err := loader.LoadGraph(ctx, fetcher)
	if err != nil {
		return err
	}
	manifest, err := loader.LoadManifest(ctx, fetcher)
	if err != nil {
		return err
	}
	patchPath, found := manifest.PatchByTrack[track]
	if !found {
		return fmt.Errorf("manifest has no patch for track %q", track)
	}
	patch, err := loader.LoadPatch(ctx, fetcher, patchPath)
	if err != nil {
		return err
	}

	var kv store.KV
	if storePath := viper.GetString("store"); storePath != "" {
		sqliteStore, err := store.NewSQLiteStore(storePath)
		if err != nil {
			return err
		}
		defer sqliteStore.Close()
		kv = sqliteStore
	}

	editor, err := curriculab.NewEditor(baseGraph, kv)
	if err != nil {
		return err
	}
	editor.Load(ctx)
	if err := editor.SelectTrack(track); err != nil {
		return err
	}
	editor.AcceptResearchPatch(patch)

	if cycle := editor.DetectCycle(); cycle.HasCycle {
		fmt.Fprintf(os.Stderr, "warning: effective graph contains a prerequisite cycle: %v\n", cycle.Path)
	}

	if err := editor.Save(ctx); err != nil {
		return err
	}

	raw, err := editor.ExportJSON(prettyFlag)
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}
