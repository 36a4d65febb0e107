package vector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQdrant serves just enough of the Qdrant HTTP surface for the
// client: readiness, collection lookup/create, point upsert and search.
type fakeQdrant struct {
	ready       bool
	collections map[string]bool
	points      []map[string]any
}

func (f *fakeQdrant) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !f.ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})
	// Method+wildcard mux patterns need Go 1.22; dispatch by hand so the
	// fake works on the 1.21 toolchain.
	mux.HandleFunc("/collections/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/collections/"), "/")
		name := parts[0]
		switch {
		case len(parts) == 1 && r.Method == http.MethodGet:
			if !f.collections[name] {
				w.WriteHeader(http.StatusNotFound)
			}
		case len(parts) == 1 && r.Method == http.MethodPut:
			f.collections[name] = true
		case len(parts) == 2 && parts[1] == "points" && r.Method == http.MethodPut:
			var body struct {
				Points []map[string]any `json:"points"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			f.points = append(f.points, body.Points...)
		case len(parts) == 3 && parts[1] == "points" && parts[2] == "search" && r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(map[string]any{
				"result": []map[string]any{
					{"id": "abc", "score": 0.9, "payload": map[string]any{"title": "hit"}},
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	return mux
}

func newFakeQdrant(t *testing.T, ready bool) (*fakeQdrant, *QdrantClient) {
	t.Helper()
	f := &fakeQdrant{ready: ready, collections: map[string]bool{}}
	server := httptest.NewServer(f.handler())
	t.Cleanup(server.Close)
	return f, NewQdrantClient(server.URL)
}

func TestCheckConnection(t *testing.T) {
	_, up := newFakeQdrant(t, true)
	assert.True(t, up.CheckConnection(context.Background()))

	_, down := newFakeQdrant(t, false)
	assert.False(t, down.CheckConnection(context.Background()))
}

func TestEnsureCollection_CreatesOnce(t *testing.T) {
	f, c := newFakeQdrant(t, true)
	ctx := context.Background()

	require.NoError(t, c.EnsureCollection(ctx))
	assert.True(t, f.collections[defaultCollection])

	// Second call finds the collection and does not recreate it.
	require.NoError(t, c.EnsureCollection(ctx))
}

func TestUpsertArticle(t *testing.T) {
	f, c := newFakeQdrant(t, true)

	err := c.UpsertArticle(context.Background(),
		"8b3e7f1a-0000-0000-0000-000000000001",
		"article body text",
		map[string]any{"title": "Article"})
	require.NoError(t, err)

	require.Len(t, f.points, 1)
	assert.Equal(t, "8b3e7f1a-0000-0000-0000-000000000001", f.points[0]["id"])
	vec, ok := f.points[0]["vector"].([]any)
	require.True(t, ok)
	assert.Len(t, vec, vectorSize)
}

func TestSearchSimilar(t *testing.T) {
	_, c := newFakeQdrant(t, true)

	results, err := c.SearchSimilar(context.Background(), "query text", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "abc", results[0].ID)
	assert.InDelta(t, 0.9, results[0].Score, 1e-9)
}

func TestPlaceholderEmbedding_Deterministic(t *testing.T) {
	a := placeholderEmbedding("same text")
	b := placeholderEmbedding("same text")
	other := placeholderEmbedding("different text")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.Len(t, a, vectorSize)
}
