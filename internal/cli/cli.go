// Package cli holds the option resolution and generate-and-render flow shared
// by the testgen and testgen-manager binaries.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/julianshen/testgen/internal/config"
	"github.com/julianshen/testgen/internal/generator"
	"github.com/julianshen/testgen/internal/ollama"
	"github.com/julianshen/testgen/internal/output"
	"github.com/julianshen/testgen/internal/runner"
)

// Flags holds the raw flag values before resolution against the config file.
// Empty values fall back to the config file, then to the built-in defaults.
type Flags struct {
	ConfigPath string
	Model      string
	BaseURL    string
	Format     string
}

// Options is the fully resolved, validated input for one invocation.
type Options struct {
	Feature     string
	Model       string
	BaseURL     string
	RegistryURL string
	Format      output.Format
}

// Resolve validates the feature text and merges flags over the config file
// over defaults. All failures here are usage errors: nothing has touched the
// network yet.
func Resolve(flags *Flags, feature string) (*Options, error) {
	feature = strings.TrimSpace(feature)
	if feature == "" {
		return nil, runner.Usagef("feature description must not be empty")
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, runner.Usagef("%v", err)
	}

	opts := &Options{
		Feature:     feature,
		Model:       cfg.Generator.Model,
		BaseURL:     cfg.Generator.BaseURL,
		RegistryURL: cfg.Registry.BaseURL,
	}
	if flags.Model != "" {
		opts.Model = flags.Model
	}
	if flags.BaseURL != "" {
		opts.BaseURL = flags.BaseURL
	}

	rawFormat := cfg.Generator.Format
	if flags.Format != "" {
		rawFormat = flags.Format
	}
	format, err := output.ParseFormat(rawFormat)
	if err != nil {
		return nil, runner.Usagef("%v", err)
	}
	opts.Format = format

	return opts, nil
}

// RunGenerate prompts the model and writes the rendered result to stdout.
// Status lines go to stderr so stdout stays parseable.
func RunGenerate(ctx context.Context, opts *Options, client generator.TextGenerator, stdout, stderr io.Writer) error {
	fmt.Fprintf(stderr, "Generating test cases for: %s\n", opts.Feature)
	fmt.Fprintf(stderr, "Using model: %s\n", opts.Model)
	fmt.Fprintf(stderr, "Output format: %s\n", opts.Format)

	cases, err := generator.New(client).TestCases(ctx, opts.Model, opts.Feature)
	if err != nil {
		return err
	}

	rendered, err := output.New(opts.Format).Format(&output.Result{TestCases: cases})
	if err != nil {
		return err
	}

	fmt.Fprintln(stderr, "Generated test cases:")
	if _, err := stdout.Write(rendered); err != nil {
		return err
	}
	if len(rendered) == 0 || rendered[len(rendered)-1] != '\n' {
		if _, err := io.WriteString(stdout, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Hint returns follow-up guidance for well-known failure classes, or "".
func Hint(err error) string {
	var connErr *ollama.ConnectionError
	if errors.As(err, &connErr) {
		return "Make sure Ollama is running and accessible at the specified URL.\nYou can start it with: ollama serve"
	}
	var parseErr *generator.ParseError
	if errors.As(err, &parseErr) {
		return "The model response was not usable. Try running the command again."
	}
	return ""
}
