package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestLoader(url string) *ModelLoader {
	ml := NewModelLoader(url)
	ml.pollInterval = time.Millisecond
	ml.maxAttempts = 5
	return ml
}

func TestModelLoader_AlreadyLoaded(t *testing.T) {
	var loads int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/models":
			_ = json.NewEncoder(w).Encode(ModelsResponse{Data: []ModelStatus{{ID: "phi-3", InCache: true}}})
		case "/models/load":
			atomic.AddInt32(&loads, 1)
			_ = json.NewEncoder(w).Encode(LoadModelResponse{Success: true})
		}
	}))
	defer server.Close()

	if err := newTestLoader(server.URL).LoadModel(context.Background(), "phi-3", nil); err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}
	if loads != 0 {
		t.Errorf("LoadModel() issued %d load requests for a cached model", loads)
	}
}

func TestModelLoader_LoadsAndPolls(t *testing.T) {
	var polls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/models":
			n := atomic.AddInt32(&polls, 1)
			// first call is the pre-check, then report loaded on the second poll
			_ = json.NewEncoder(w).Encode(ModelsResponse{Data: []ModelStatus{{ID: "phi-3", InCache: n >= 3}}})
		case "/models/load":
			var req LoadModelRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Model != "phi-3" {
				t.Errorf("load request model = %s, want phi-3", req.Model)
			}
			_ = json.NewEncoder(w).Encode(LoadModelResponse{Success: true})
		}
	}))
	defer server.Close()

	if err := newTestLoader(server.URL).LoadModel(context.Background(), "phi-3", []string{"--ctx-size", "4096"}); err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}
}

func TestModelLoader_Failures(t *testing.T) {
	failed := true
	exitCode := 2

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "load rejected",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/models/load" {
					_ = json.NewEncoder(w).Encode(LoadModelResponse{Success: false, Error: "no such model"})
					return
				}
				_ = json.NewEncoder(w).Encode(ModelsResponse{})
			},
		},
		{
			name: "load failed while polling",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/models/load" {
					_ = json.NewEncoder(w).Encode(LoadModelResponse{Success: true})
					return
				}
				st := ModelStatus{ID: "phi-3"}
				st.Status.Failed = &failed
				st.Status.ExitCode = &exitCode
				_ = json.NewEncoder(w).Encode(ModelsResponse{Data: []ModelStatus{st}})
			},
		},
		{
			name: "never loads",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/models/load" {
					_ = json.NewEncoder(w).Encode(LoadModelResponse{Success: true})
					return
				}
				_ = json.NewEncoder(w).Encode(ModelsResponse{Data: []ModelStatus{{ID: "phi-3"}}})
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			if err := newTestLoader(server.URL).LoadModel(context.Background(), "phi-3", nil); err == nil {
				t.Error("LoadModel() expected error, got nil")
			}
		})
	}
}
