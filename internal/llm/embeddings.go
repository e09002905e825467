package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultBatchSize bounds how many texts go into one embeddings request.
const DefaultBatchSize = 64

// EmbeddingsClient is a client for an OpenAI-compatible embeddings API.
type EmbeddingsClient struct {
	BaseURL      string
	APIKey       string
	Model        string
	ExpectedSize int // Expected vector size; 0 disables validation
	BatchSize    int
	client       *http.Client
}

// NewEmbeddingsClient creates a new embeddings client.
// When expectedSize is positive every returned vector is validated against it.
func NewEmbeddingsClient(baseURL, apiKey, model string, expectedSize int) *EmbeddingsClient {
	return &EmbeddingsClient{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		APIKey:       apiKey,
		Model:        model,
		ExpectedSize: expectedSize,
		BatchSize:    DefaultBatchSize,
		client:       http.DefaultClient,
	}
}

// EmbeddingsRequest represents the request payload for embeddings API.
type EmbeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbeddingData represents a single embedding in the response.
type EmbeddingData struct {
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

// EmbeddingsResponse represents the response from the embeddings API.
type EmbeddingsResponse struct {
	Data []EmbeddingData `json:"data"`
}

// EmbedTexts generates embeddings for texts, one vector per text in input
// order. Large inputs are split into requests of at most BatchSize texts.
func (c *EmbeddingsClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	batch := c.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	result := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batch {
		end := min(start+batch, len(texts))
		vectors, err := c.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		result = append(result, vectors...)
	}
	return result, nil
}

func (c *EmbeddingsClient) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	url := fmt.Sprintf("%s/v1/embeddings", c.BaseURL)

	body, err := json.Marshal(EmbeddingsRequest{Model: c.Model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var embeddingsResp EmbeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&embeddingsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(embeddingsResp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embeddingsResp.Data))
	}

	// Servers may return data out of order; place each vector by its index.
	result := make([][]float32, len(texts))
	for i, data := range embeddingsResp.Data {
		pos := data.Index
		if pos < 0 || pos >= len(texts) || result[pos] != nil {
			pos = i
		}
		if c.ExpectedSize > 0 && len(data.Embedding) != c.ExpectedSize {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, len(data.Embedding), c.ExpectedSize)
		}

		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		result[pos] = vec
	}

	for i, vec := range result {
		if vec == nil {
			return nil, fmt.Errorf("missing embedding for input %d", i)
		}
	}

	return result, nil
}
