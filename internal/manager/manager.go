// Package manager implements the model-managing flow: check whether the
// requested model is present locally, describe it from the remote registry,
// ask the user to confirm a download, and pull it with a progress display.
package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/julianshen/testgen/internal/ollama"
	"github.com/julianshen/testgen/internal/registry"
)

// minServerVersion is the oldest Ollama release whose generate API supports
// the JSON format option the generators rely on.
const minServerVersion = "0.1.9"

// ErrDeclined is returned when the user declines the download. It is a normal
// abort, not a failure.
var ErrDeclined = errors.New("model download declined")

// DownloadError is returned when the pull stream reports an error or ends
// without a success status.
type DownloadError struct {
	Model string
	Err   error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("downloading model %q: %v", e.Model, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ModelClient is the Ollama surface the manager depends on.
type ModelClient interface {
	Version(ctx context.Context) (string, error)
	ListModels(ctx context.Context) ([]ollama.ModelInfo, error)
	Pull(ctx context.Context, name string) (<-chan ollama.PullProgress, error)
}

// CardFetcher fetches remote registry metadata for a model.
type CardFetcher interface {
	FetchCard(ctx context.Context, name string) (*registry.ModelCard, error)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(title string) (bool, error)
}

// Manager walks the ensure-model sequence. All status output goes to out
// (stderr in the CLI) so stdout stays reserved for the rendered result.
type Manager struct {
	client   ModelClient
	registry CardFetcher
	confirm  Confirmer
	out      io.Writer
}

// New creates a Manager.
func New(client ModelClient, reg CardFetcher, confirm Confirmer, out io.Writer) *Manager {
	return &Manager{client: client, registry: reg, confirm: confirm, out: out}
}

// EnsureModel makes sure the named model is available locally, downloading it
// after interactive confirmation when absent. Returns ErrDeclined when the
// user says no.
func (m *Manager) EnsureModel(ctx context.Context, name string) error {
	version, err := m.client.Version(ctx)
	if err != nil {
		return err
	}
	m.warnIfOldServer(version)

	models, err := m.client.ListModels(ctx)
	if err != nil {
		return err
	}
	for _, model := range models {
		if model.Name == name {
			fmt.Fprintf(m.out, "Model %q is available locally.\n", name)
			return nil
		}
	}

	fmt.Fprintf(m.out, "Model %q is not available locally.\n", name)

	card, err := m.registry.FetchCard(ctx, name)
	if err != nil {
		fmt.Fprintf(m.out, "Could not fetch registry metadata: %v\n", err)
		fmt.Fprintln(m.out, "The model can still be downloaded without it.")
		card = nil
	}
	m.renderCard(card)

	ok, err := m.confirm.Confirm(fmt.Sprintf("Download %q now?", name))
	if err != nil {
		return fmt.Errorf("reading confirmation: %w", err)
	}
	if !ok {
		return ErrDeclined
	}

	return m.pull(ctx, name)
}

// warnIfOldServer compares the reported server version against the minimum
// supported one. Unparseable versions are ignored.
func (m *Manager) warnIfOldServer(version string) {
	current, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return
	}
	if current.LessThan(semver.MustParse(minServerVersion)) {
		fmt.Fprintf(m.out, "Warning: Ollama server %s is older than %s; JSON-formatted generation may be unavailable.\n",
			version, minServerVersion)
	}
}

// pull drives the download, rendering a single updating progress line until
// the stream reports success.
func (m *Manager) pull(ctx context.Context, name string) error {
	fmt.Fprintf(m.out, "Pulling model %q... This may take a few minutes.\n", name)

	ch, err := m.client.Pull(ctx, name)
	if err != nil {
		return err
	}

	line := newProgressLine(m.out)
	var pullErr error
	succeeded := false
	for progress := range ch {
		if progress.Err != nil {
			if pullErr == nil {
				pullErr = progress.Err
			}
			continue
		}
		if progress.Success() {
			succeeded = true
		}
		if pullErr == nil {
			line.render(progress)
		}
	}
	line.finish()

	if pullErr != nil {
		return &DownloadError{Model: name, Err: pullErr}
	}
	if !succeeded {
		// An interrupted pull ends the stream without a success event; that
		// is a cancellation, not a download failure.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &DownloadError{Model: name, Err: errors.New("pull stream ended without success")}
	}

	fmt.Fprintf(m.out, "Successfully pulled model %q.\n", name)
	return nil
}
