package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ModelLoader loads models into llama.cpp server via the /models/load endpoint.
type ModelLoader struct {
	baseURL      string
	client       *http.Client
	pollInterval time.Duration
	maxAttempts  int
}

// NewModelLoader creates a new model loader.
func NewModelLoader(baseURL string) *ModelLoader {
	return &ModelLoader{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       &http.Client{Timeout: 10 * time.Second},
		pollInterval: time.Second,
		maxAttempts:  60,
	}
}

// LoadModelRequest represents the request payload for loading a model.
type LoadModelRequest struct {
	Model     string   `json:"model"`
	ExtraArgs []string `json:"extra_args,omitempty"`
}

// LoadModelResponse represents the response from the load model endpoint.
type LoadModelResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ModelStatus represents the status of a model from the /models endpoint.
type ModelStatus struct {
	ID      string `json:"id"`
	InCache bool   `json:"in_cache"`
	Status  struct {
		Value    string `json:"value"`
		ExitCode *int   `json:"exit_code,omitempty"`
		Failed   *bool  `json:"failed,omitempty"`
	} `json:"status"`
}

// ModelsResponse represents the response from the /models endpoint.
type ModelsResponse struct {
	Data []ModelStatus `json:"data"`
}

// status returns the named model's status and whether the server knows it.
func (ml *ModelLoader) status(ctx context.Context, modelName string) (ModelStatus, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ml.baseURL+"/models", nil)
	if err != nil {
		return ModelStatus{}, false, fmt.Errorf("failed to create status request: %w", err)
	}

	resp, err := ml.client.Do(req)
	if err != nil {
		return ModelStatus{}, false, fmt.Errorf("failed to check model status: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return ModelStatus{}, false, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var modelsResp ModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return ModelStatus{}, false, fmt.Errorf("failed to decode models response: %w", err)
	}

	for _, model := range modelsResp.Data {
		if model.ID == modelName {
			return model, true, nil
		}
	}
	return ModelStatus{}, false, nil
}

// IsModelLoaded checks if a model is already loaded (in cache) in the llama.cpp server.
func (ml *ModelLoader) IsModelLoaded(ctx context.Context, modelName string) (bool, error) {
	st, found, err := ml.status(ctx, modelName)
	if err != nil {
		return false, err
	}
	return found && st.InCache, nil
}

// LoadModel loads a model unless it is already in cache, then polls until
// the server reports it loaded, failed, or the attempts run out.
func (ml *ModelLoader) LoadModel(ctx context.Context, modelName string, extraArgs []string) error {
	// A failed status check is treated as "not loaded"; the load call decides.
	if loaded, err := ml.IsModelLoaded(ctx, modelName); err == nil && loaded {
		return nil
	}

	body, err := json.Marshal(LoadModelRequest{Model: modelName, ExtraArgs: extraArgs})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ml.baseURL+"/models/load", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ml.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var loadResp LoadModelResponse
	if err := json.NewDecoder(resp.Body).Decode(&loadResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !loadResp.Success {
		return fmt.Errorf("model load failed: %s", loadResp.Error)
	}

	// /models/load returns before loading finishes
	for i := 0; i < ml.maxAttempts; i++ {
		st, found, err := ml.status(ctx, modelName)
		if err == nil && found {
			if st.InCache {
				return nil
			}
			if st.Status.Failed != nil && *st.Status.Failed {
				exitCode := 0
				if st.Status.ExitCode != nil {
					exitCode = *st.Status.ExitCode
				}
				return fmt.Errorf("model load failed with exit code %d", exitCode)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(ml.pollInterval):
		}
	}

	return fmt.Errorf("model did not load within timeout period")
}
