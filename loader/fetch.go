// Package loader fetches and parses the external JSON documents the editor
// consumes. Failures are surfaced as a single error whose message names the
// resource and distinguishes transport, HTTP-status, JSON-parse and schema
// failures; schema failures keep their structured issue list attached.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/siherrmann/curriculab/helper"
	"github.com/siherrmann/curriculab/model"
	"github.com/siherrmann/curriculab/schema"
)

// Fixed document paths. Any other path comes from the research manifest.
const (
	CurriculumGraphPath  = "/data/curriculum_math_2022.json"
	ResearchManifestPath = "/data/research/manifest.json"
)

// Fetcher retrieves the raw bytes of a document by path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// HTTPFetcher fetches documents from a base URL over HTTP.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher with a default timeout.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch retrieves a document, failing with the transport error or the HTTP
// status code embedded in the message.
func (f *HTTPFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %v: %w", path, err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %v: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %v: HTTP %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %v: %w", path, err)
	}

	return body, nil
}

// LoadGraph fetches and parses the base curriculum graph.
func LoadGraph(ctx context.Context, f Fetcher) (*model.Graph, error) {
	doc, err := fetchJSON(ctx, f, CurriculumGraphPath, "curriculum graph")
	if err != nil {
		return nil, err
	}
	graph, err := schema.ParseGraph(doc)
	if err != nil {
		return nil, helper.NewError("validate curriculum graph", err)
	}
	return graph, nil
}

// LoadManifest fetches and parses the research manifest.
func LoadManifest(ctx context.Context, f Fetcher) (*model.ResearchManifest, error) {
	doc, err := fetchJSON(ctx, f, ResearchManifestPath, "research manifest")
	if err != nil {
		return nil, err
	}
	manifest, err := schema.ParseManifest(doc)
	if err != nil {
		return nil, helper.NewError("validate research manifest", err)
	}
	return manifest, nil
}

// LoadPatch fetches and parses a research patch from a manifest-supplied path.
func LoadPatch(ctx context.Context, f Fetcher, path string) (*model.ResearchPatch, error) {
	doc, err := fetchJSON(ctx, f, path, "research patch")
	if err != nil {
		return nil, err
	}
	patch, err := schema.ParsePatch(doc)
	if err != nil {
		return nil, helper.NewError("validate research patch", err)
	}
	return patch, nil
}

func fetchJSON(ctx context.Context, f Fetcher, path, resource string) (any, error) {
	body, err := f.Fetch(ctx, path)
	if err != nil {
		return nil, helper.NewError(fmt.Sprintf("fetch %v", resource), err)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, helper.NewError(fmt.Sprintf("decode %v json", resource), err)
	}

	return doc, nil
}
