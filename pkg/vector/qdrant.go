// Package vector talks to Qdrant over its HTTP API. Vector storage is a
// best-effort side channel: a sync run proceeds without it when the
// service is unreachable.
package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math/rand"
	"net/http"
	"time"
)

const (
	defaultCollection = "current_affairs"
	vectorSize        = 768
)

// QdrantClient is a minimal client for the point-upsert and search
// endpoints this system uses.
type QdrantClient struct {
	baseURL    string
	collection string
	http       *http.Client
}

// NewQdrantClient points a client at a Qdrant instance.
func NewQdrantClient(baseURL string) *QdrantClient {
	return &QdrantClient{
		baseURL:    baseURL,
		collection: defaultCollection,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

// CheckConnection reports whether the instance answers its readiness
// probe.
func (c *QdrantClient) CheckConnection(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/readyz", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// EnsureCollection creates the article collection if it does not exist.
func (c *QdrantClient) EnsureCollection(ctx context.Context) error {
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, c.collection)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if resp, err := c.http.Do(req); err == nil {
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return nil
		}
	}

	payload := map[string]any{
		"vectors": map[string]any{"size": vectorSize, "distance": "Cosine"},
	}
	return c.put(ctx, url, payload)
}

// UpsertArticle stores one article embedding with its metadata payload.
// The id must be a UUID; article ids from the durable store qualify.
func (c *QdrantClient) UpsertArticle(ctx context.Context, id, text string, payload map[string]any) error {
	body := map[string]any{
		"points": []map[string]any{
			{"id": id, "vector": placeholderEmbedding(text), "payload": payload},
		},
	}
	url := fmt.Sprintf("%s/collections/%s/points", c.baseURL, c.collection)
	return c.put(ctx, url, body)
}

// SearchResult is one hit from a similarity search.
type SearchResult struct {
	ID      string         `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

// SearchSimilar finds the closest stored articles to the query text.
func (c *QdrantClient) SearchSimilar(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	body := map[string]any{
		"vector":       placeholderEmbedding(query),
		"limit":        limit,
		"with_payload": true,
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", c.baseURL, c.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qdrant search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("qdrant search: status %d", resp.StatusCode)
	}

	var decoded struct {
		Result []SearchResult `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("qdrant search decode: %w", err)
	}
	return decoded.Result, nil
}

func (c *QdrantClient) put(ctx context.Context, url string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant put %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("qdrant put %s: status %d", url, resp.StatusCode)
	}
	return nil
}

// placeholderEmbedding derives a deterministic vector from the text so
// identical articles map to identical points. Stands in until a real
// embedding model is wired up.
func placeholderEmbedding(text string) []float64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	vec := make([]float64, vectorSize)
	for i := range vec {
		vec[i] = rng.NormFloat64()
	}
	return vec
}
