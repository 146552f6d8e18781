package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		name string
		repo string
		tag  string
	}{
		{"codellama", "library/codellama", "latest"},
		{"codellama:7b", "library/codellama", "7b"},
		{"llama3.2:latest", "library/llama3.2", "latest"},
		{"someuser/custom:13b", "someuser/custom", "13b"},
	}
	for _, tt := range tests {
		repo, tag := splitName(tt.name)
		assert.Equal(t, tt.repo, repo, tt.name)
		assert.Equal(t, tt.tag, tag, tt.name)
	}
}

func TestClient_FetchCard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/library/codellama/manifests/latest":
			assert.Equal(t, "application/vnd.docker.distribution.manifest.v2+json", r.Header.Get("Accept"))
			w.Write([]byte(`{
				"config": {"digest": "sha256:cfg", "size": 100},
				"layers": [{"size": 3825819519}, {"size": 120}]
			}`))
		case "/v2/library/codellama/blobs/sha256:cfg":
			w.Write([]byte(`{"model_family": "llama", "model_type": "7B", "model_format": "gguf"}`))
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	card, err := client.FetchCard(context.Background(), "codellama")
	require.NoError(t, err)
	assert.Equal(t, "codellama", card.Name)
	assert.Equal(t, "latest", card.Tag)
	assert.Equal(t, int64(3825819519+120+100), card.Size)
	assert.Equal(t, "llama", card.Family)
	assert.Equal(t, "7B", card.ParameterSize)
}

func TestClient_FetchCard_ConfigBlobUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/library/codellama/manifests/7b":
			w.Write([]byte(`{"config": {"digest": "sha256:cfg", "size": 50}, "layers": [{"size": 1000}]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	card, err := client.FetchCard(context.Background(), "codellama:7b")
	require.NoError(t, err)
	assert.Equal(t, int64(1050), card.Size)
	assert.Empty(t, card.Family)
	assert.Empty(t, card.ParameterSize)
}

func TestClient_FetchCard_UnknownModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchCard(context.Background(), "nosuchmodel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nosuchmodel")
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestClient_FetchCard_ConnectionRefused(t *testing.T) {
	client := NewClient("http://localhost:1")
	_, err := client.FetchCard(context.Background(), "codellama")
	require.Error(t, err)
}
