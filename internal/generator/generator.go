// Package generator turns a feature description into a list of suggested test
// cases by prompting a model on a local Ollama server and interpreting its
// response.
package generator

import (
	"context"
	"fmt"

	"github.com/julianshen/testgen/internal/ollama"
)

// promptTemplate is the fixed instruction sent to the model; the single
// substitution point is the feature description.
const promptTemplate = "You are a QA automation expert. Given the following feature description, " +
	"write a list of high-level test cases in JSON format. The JSON should have a single key " +
	"called 'test_cases'. The test cases should cover functional and edge cases. Feature: %s."

// BuildPrompt returns the generation prompt for a feature description.
func BuildPrompt(feature string) string {
	return fmt.Sprintf(promptTemplate, feature)
}

// TextGenerator is the Ollama surface the generator depends on.
type TextGenerator interface {
	Generate(ctx context.Context, req ollama.GenerateRequest) (string, error)
}

// Generator produces test cases for feature descriptions.
type Generator struct {
	client TextGenerator
}

// New creates a Generator backed by the given client.
func New(client TextGenerator) *Generator {
	return &Generator{client: client}
}

// TestCases prompts the model and returns the interpreted test-case list.
func (g *Generator) TestCases(ctx context.Context, model, feature string) ([]string, error) {
	raw, err := g.client.Generate(ctx, ollama.GenerateRequest{
		Model:  model,
		Prompt: BuildPrompt(feature),
		Format: "json",
	})
	if err != nil {
		return nil, err
	}
	return Interpret(raw)
}
