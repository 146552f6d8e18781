// Package ollama is a thin HTTP client for the parts of the Ollama REST API
// the generators need: version probing, local model listing, non-streaming
// generation, and model pulls with progress streaming.
package ollama

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

// DefaultBaseURL is the conventional address of a locally running Ollama server.
const DefaultBaseURL = "http://localhost:11434"

// ModelInfo describes a locally available Ollama model.
type ModelInfo struct {
	Name       string       `json:"name"`
	Size       int64        `json:"size"`
	ModifiedAt time.Time    `json:"modified_at"`
	Digest     string       `json:"digest"`
	Details    ModelDetails `json:"details"`
}

// ModelDetails holds the capability metadata Ollama reports per model.
type ModelDetails struct {
	Family            string `json:"family"`
	ParameterSize     string `json:"parameter_size"`
	QuantizationLevel string `json:"quantization_level"`
}

// ConnectionError is returned when the Ollama server is unreachable or
// answers with a non-success status. It always names the configured base URL
// so the user can tell which endpoint failed.
type ConnectionError struct {
	Op      string
	BaseURL string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: Ollama at %s: %v", e.Op, e.BaseURL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ModelNotFoundError is returned by Generate when the server rejects the
// request because the named model has not been pulled.
type ModelNotFoundError struct {
	Model string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("model %q is not available; pull it with: ollama pull %s", e.Model, e.Model)
}

// Client is a typed HTTP client for the Ollama REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new Ollama API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// BaseURL returns the server address this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Version returns the Ollama server version via GET /api/version.
func (c *Client) Version(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/version", nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &ConnectionError{Op: "checking version", BaseURL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &ConnectionError{Op: "checking version", BaseURL: c.baseURL, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	var result struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding version: %w", err)
	}
	return result.Version, nil
}

// ListModels returns locally available models via GET /api/tags.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ConnectionError{Op: "listing models", BaseURL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ConnectionError{Op: "listing models", BaseURL: c.baseURL, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	var result struct {
		Models []ModelInfo `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return result.Models, nil
}

// GenerateRequest is the body sent to POST /api/generate. Format "json" asks
// the model to emit valid JSON; Stream is always false here since the
// generators want one complete response.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Format string `json:"format,omitempty"`
	Stream bool   `json:"stream"`
}

// Generate sends a non-streaming generate request and returns the model's
// response text.
func (c *Client) Generate(ctx context.Context, genReq GenerateRequest) (string, error) {
	body, err := json.Marshal(genReq)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &ConnectionError{Op: "generating", BaseURL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		if isModelMissing(resp.Body) {
			return "", &ModelNotFoundError{Model: genReq.Model}
		}
		return "", &ConnectionError{Op: "generating", BaseURL: c.baseURL, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &ConnectionError{
			Op:      "generating",
			BaseURL: c.baseURL,
			Err:     fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ConnectionError{Op: "generating", BaseURL: c.baseURL, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return result.Response, nil
}

// isModelMissing reports whether a 404 body is the server's "model not found"
// error rather than a generic miss.
func isModelMissing(body io.Reader) bool {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&errResp); err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(errResp.Error), "not found")
}
