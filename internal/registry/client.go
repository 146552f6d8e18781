// Package registry fetches model metadata from the remote Ollama registry so
// the manager can describe a model before offering to download it.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public Ollama model registry.
const DefaultBaseURL = "https://registry.ollama.ai"

// ModelCard summarizes what a prospective download would fetch.
type ModelCard struct {
	Name          string
	Tag           string
	Size          int64
	Family        string
	ParameterSize string
}

// manifest mirrors the registry's image manifest for a model tag.
type manifest struct {
	Config struct {
		Digest string `json:"digest"`
		Size   int64  `json:"size"`
	} `json:"config"`
	Layers []struct {
		Size int64 `json:"size"`
	} `json:"layers"`
}

// configBlob mirrors the model metadata stored in the manifest's config blob.
type configBlob struct {
	ModelFamily string `json:"model_family"`
	ModelType   string `json:"model_type"`
}

// Client fetches model manifests from an Ollama-compatible registry.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a registry client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// splitName separates a model reference into repository and tag. Bare names
// resolve to the official library namespace and the latest tag, matching how
// Ollama itself resolves them.
func splitName(name string) (repo, tag string) {
	repo, tag = name, "latest"
	if i := strings.LastIndex(name, ":"); i >= 0 {
		repo, tag = name[:i], name[i+1:]
	}
	if !strings.Contains(repo, "/") {
		repo = "library/" + repo
	}
	return repo, tag
}

// FetchCard retrieves the manifest for the named model and builds a ModelCard.
// The total size is the manifest config plus all layer sizes. Family and
// parameter size come from the config blob; if that secondary fetch fails the
// card is returned with the size alone.
func (c *Client) FetchCard(ctx context.Context, name string) (*ModelCard, error) {
	repo, tag := splitName(name)

	var m manifest
	url := fmt.Sprintf("%s/v2/%s/manifests/%s", c.baseURL, repo, tag)
	if err := c.getJSON(ctx, url, "application/vnd.docker.distribution.manifest.v2+json", &m); err != nil {
		return nil, fmt.Errorf("fetching manifest for %q: %w", name, err)
	}

	card := &ModelCard{
		Name: name,
		Tag:  tag,
		Size: m.Config.Size,
	}
	for _, layer := range m.Layers {
		card.Size += layer.Size
	}

	if m.Config.Digest != "" {
		var blob configBlob
		url = fmt.Sprintf("%s/v2/%s/blobs/%s", c.baseURL, repo, m.Config.Digest)
		if err := c.getJSON(ctx, url, "", &blob); err == nil {
			card.Family = blob.ModelFamily
			card.ParameterSize = blob.ModelType
		}
	}

	return card, nil
}

func (c *Client) getJSON(ctx context.Context, url, accept string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
