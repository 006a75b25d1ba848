package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/siherrmann/curriculab/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, found := routes[r.URL.Path]
		if !found {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLoadGraph(t *testing.T) {
	ctx := context.Background()

	t.Run("Loads a valid graph", func(t *testing.T) {
		server := newServer(t, map[string]string{
			CurriculumGraphPath: `{
				"nodes": [
					{"id": "a", "nodeType": "standard", "label": "A"},
					{"id": "b", "nodeType": "standard", "label": "B"}
				],
				"edges": [
					{"edgeType": "prereq", "source": "a", "target": "b"},
					{"edgeType": "prereq", "source": "a", "target": "ghost"}
				]
			}`,
		})

		graph, err := LoadGraph(ctx, NewHTTPFetcher(server.URL))

		require.NoError(t, err)
		assert.Len(t, graph.Nodes, 2)
		assert.Len(t, graph.Edges, 1, "Expected the edge with an unknown endpoint to be dropped")
	})

	t.Run("HTTP 404 is embedded in the error message", func(t *testing.T) {
		server := newServer(t, map[string]string{})

		_, err := LoadGraph(ctx, NewHTTPFetcher(server.URL))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 404")
	})

	t.Run("Transport failure names the resource", func(t *testing.T) {
		_, err := LoadGraph(ctx, NewHTTPFetcher("http://127.0.0.1:1"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "curriculum graph")
		assert.NotContains(t, err.Error(), "HTTP 4")
	})

	t.Run("Invalid JSON is distinct from HTTP failures", func(t *testing.T) {
		server := newServer(t, map[string]string{CurriculumGraphPath: `{not json`})

		_, err := LoadGraph(ctx, NewHTTPFetcher(server.URL))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "json")
		assert.NotContains(t, err.Error(), "HTTP")
	})

	t.Run("Schema failure carries structured issues", func(t *testing.T) {
		server := newServer(t, map[string]string{CurriculumGraphPath: `{"edges": []}`})

		_, err := LoadGraph(ctx, NewHTTPFetcher(server.URL))

		require.Error(t, err)
		var verr *schema.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.NotEmpty(t, verr.Issues)
		assert.NotContains(t, err.Error(), "HTTP")
	})
}

func TestLoadManifest(t *testing.T) {
	ctx := context.Background()

	t.Run("Loads a valid manifest", func(t *testing.T) {
		server := newServer(t, map[string]string{
			ResearchManifestPath: `{
				"schemaVersion": "research-manifest-v1",
				"patchByTrack": {"T1": "/data/research/t1.json", "T2": "/data/research/t2.json", "T3": "/data/research/t3.json"}
			}`,
		})

		manifest, err := LoadManifest(ctx, NewHTTPFetcher(server.URL))

		require.NoError(t, err)
		assert.Len(t, manifest.PatchByTrack, 3)
	})

	t.Run("Wrong schema version fails", func(t *testing.T) {
		server := newServer(t, map[string]string{
			ResearchManifestPath: `{"schemaVersion": "v0", "patchByTrack": {"T1": "a", "T2": "b", "T3": "c"}}`,
		})

		_, err := LoadManifest(ctx, NewHTTPFetcher(server.URL))

		assert.Error(t, err)
	})
}

func TestLoadPatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Loads a patch from a manifest path", func(t *testing.T) {
		server := newServer(t, map[string]string{
			"/data/research/t1.json": `{
				"schemaVersion": "research-patch-v1",
				"add_nodes": [{"id": "P_TU_x", "nodeType": "textbookUnit", "label": "X"}],
				"add_edges": []
			}`,
		})

		patch, err := LoadPatch(ctx, NewHTTPFetcher(server.URL), "/data/research/t1.json")

		require.NoError(t, err)
		assert.Len(t, patch.AddNodes, 1)
	})

	t.Run("Schema failure reports indexed element paths", func(t *testing.T) {
		server := newServer(t, map[string]string{
			"/data/research/t1.json": `{"add_edges": [{"source": "a"}]}`,
		})

		_, err := LoadPatch(ctx, NewHTTPFetcher(server.URL), "/data/research/t1.json")

		require.Error(t, err)
		var verr *schema.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "add_edges[0].target", verr.Issues[0].Path)
	})
}
