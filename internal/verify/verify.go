// Package verify checks a model-extracted triple against the reference knowledge table.
//
// The model output is expected to contain exactly one top-level JSON object.
// The object is located by taking the span from the first '{' to the last '}',
// so braces inside string values or several objects in one output are not
// handled: such output either fails to parse or is parsed as a different span.
//
// Relations are upper-cased with full Unicode case mapping (golang.org/x/text/cases),
// so multi-rune expansions apply: "straße" compares equal to "STRASSE".
package verify

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ppiankov/relcheck/internal/model"
)

// RequiredFields must all be present as keys in the extracted object
var RequiredFields = []string{"head", "relation", "tail", "evidence"}

// Verify parses rawOutput into a Triple and looks it up in knowledge.
// Relations are upper-cased before comparison; head and tail must match exactly.
func Verify(rawOutput string, knowledge []model.KnowledgeRow) Result {
	span, ok := objectSpan(rawOutput)
	if !ok {
		return parseError("No JSON structure detected.")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &fields); err != nil {
		return parseError("JSON parse error: %v", err)
	}

	missing := lo.Filter(RequiredFields, func(key string, _ int) bool {
		_, present := fields[key]
		return !present
	})
	if len(missing) > 0 {
		return missingFields("Missing required fields: " + strings.Join(missing, ", ") + ".")
	}

	triple, err := buildTriple(fields)
	if err != nil {
		return parseError("JSON parse error: %v", err)
	}

	if Match(triple, knowledge) {
		return verified(triple)
	}
	return notFound(triple)
}

// Match reports whether any knowledge row carries the same fact as t
func Match(t model.Triple, knowledge []model.KnowledgeRow) bool {
	// Casers are stateful: one per call
	relation := cases.Upper(language.Und).String(t.Relation)
	return lo.ContainsBy(knowledge, func(row model.KnowledgeRow) bool {
		return row.Head == t.Head && row.Relation == relation && row.Tail == t.Tail
	})
}

// objectSpan returns rawOutput from the first '{' to the last '}' inclusive
func objectSpan(rawOutput string) (string, bool) {
	start := strings.Index(rawOutput, "{")
	end := strings.LastIndex(rawOutput, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return rawOutput[start : end+1], true
}

func buildTriple(fields map[string]json.RawMessage) (model.Triple, error) {
	var t model.Triple
	targets := map[string]*string{
		"head":     &t.Head,
		"relation": &t.Relation,
		"tail":     &t.Tail,
		"evidence": &t.Evidence,
	}
	for _, key := range RequiredFields {
		if err := json.Unmarshal(fields[key], targets[key]); err != nil {
			return model.Triple{}, &fieldError{field: key, err: err}
		}
	}

	// reasoning_trace is advisory; a malformed trace is dropped rather than rejected
	if raw, ok := fields["reasoning_trace"]; ok {
		var trace []string
		if err := json.Unmarshal(raw, &trace); err == nil {
			t.ReasoningTrace = trace
		}
	}

	return t, nil
}

type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string {
	return "field " + e.field + ": " + e.err.Error()
}

func (e *fieldError) Unwrap() error {
	return e.err
}
