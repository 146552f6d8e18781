package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// PullProgress is one status event from the NDJSON stream of POST /api/pull.
// Err is set when the server reports a failure for this event.
type PullProgress struct {
	Status    string
	Digest    string
	Completed int64
	Total     int64
	Err       error
}

// Success reports whether this is the terminal success event of a pull.
func (p PullProgress) Success() bool {
	return p.Status == "success"
}

// pullChunk mirrors one NDJSON line of the pull stream.
type pullChunk struct {
	Status    string `json:"status"`
	Digest    string `json:"digest"`
	Completed int64  `json:"completed"`
	Total     int64  `json:"total"`
	Error     string `json:"error"`
}

// Pull requests a model download and returns a channel of progress events.
// The channel is closed when the stream ends; the caller decides whether the
// stream terminated successfully by watching for a success event.
func (c *Client) Pull(ctx context.Context, name string) (<-chan PullProgress, error) {
	body, _ := json.Marshal(struct {
		Name string `json:"name"`
	}{Name: name})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Pulls run far longer than the default client timeout allows.
	httpClient := &http.Client{Transport: c.http.Transport}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{Op: "pulling model", BaseURL: c.baseURL, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &ConnectionError{
			Op:      "pulling model",
			BaseURL: c.baseURL,
			Err:     fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	ch := make(chan PullProgress)
	go c.processPullStream(ctx, resp.Body, ch)
	return ch, nil
}

// processPullStream reads NDJSON lines from the response body and sends
// PullProgress events. Malformed interim lines are skipped.
func (c *Client) processPullStream(ctx context.Context, body io.ReadCloser, ch chan<- PullProgress) {
	defer close(ch)
	defer body.Close()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var chunk pullChunk
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			continue
		}

		progress := PullProgress{
			Status:    chunk.Status,
			Digest:    chunk.Digest,
			Completed: chunk.Completed,
			Total:     chunk.Total,
		}
		if chunk.Error != "" {
			progress.Err = fmt.Errorf("%s", chunk.Error)
		}

		select {
		case ch <- progress:
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil {
		select {
		case ch <- PullProgress{Err: err}:
		case <-ctx.Done():
		}
	}
}
