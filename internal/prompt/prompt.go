// Package prompt renders the relation-extraction prompt sent to the generator.
package prompt

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
)

// DefaultTemplate instructs the model to answer with a single JSON object
// carrying the triple, its evidence and a short reasoning trace.
const DefaultTemplate = `Task: extract one relation from the following biomedical text and explain the reasoning.
The output must be JSON with the following fields:
{
  "head": "...",
  "relation": "...",
  "tail": "...",
  "evidence": "...",
  "reasoning_trace": ["Step1: ...", "Step2: ..."]
}
Text: {{.Input}}
Output:
`

// Builder renders a fixed template with the input sentence interpolated
type Builder struct {
	tmpl *template.Template
}

// New parses text as a prompt template. The template sees one field, .Input.
func New(text string) (*Builder, error) {
	tmpl, err := template.New("relation").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}
	return &Builder{tmpl: tmpl}, nil
}

// Default returns a Builder for DefaultTemplate
func Default() *Builder {
	b, err := New(DefaultTemplate)
	if err != nil {
		panic(err)
	}
	return b
}

// FromFile loads a template from path, or returns Default when path is empty
func FromFile(path string) (*Builder, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt template: %w", err)
	}
	return New(string(data))
}

// Build substitutes input into the template. Any string is accepted.
func (b *Builder) Build(input string) (string, error) {
	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, struct{ Input string }{Input: input}); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}
