package verify

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/relcheck/internal/model"
)

var testKnowledge = []model.KnowledgeRow{
	{Head: "ASPIRIN", Relation: "INHIBITS", Tail: "COX-2"},
	{Head: "Aspirin", Relation: "TREATS", Tail: "inflammation"},
	{Head: "IBUPROFEN", Relation: "INHIBITS", Tail: "COX-1"},
}

func TestVerify_EndToEndScenarios(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   Status
	}{
		{
			name:   "known relation in lower case",
			output: `{"head":"ASPIRIN","relation":"inhibits","tail":"COX-2","evidence":"..."}`,
			want:   StatusVerified,
		},
		{
			name:   "unknown relation",
			output: `{"head":"ASPIRIN","relation":"activates","tail":"COX-2","evidence":"..."}`,
			want:   StatusNotFound,
		},
		{
			name:   "not json",
			output: `not json at all`,
			want:   StatusParseError,
		},
		{
			name:   "missing tail and evidence",
			output: `{"head":"ASPIRIN","relation":"inhibits"}`,
			want:   StatusMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Verify(tt.output, testKnowledge)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestVerify_NoBraces(t *testing.T) {
	for _, output := range []string{
		"",
		"the model refused",
		`"head": "ASPIRIN" }`,
		`{ "head": "ASPIRIN"`,
		"} reversed {",
	} {
		got := Verify(output, testKnowledge)
		assert.Equal(t, StatusParseError, got.Status, "output %q", output)
		assert.Nil(t, got.Triple)
		assert.Equal(t, "No JSON structure detected.", got.Message)
	}
}

func TestVerify_InvalidSpan(t *testing.T) {
	for _, output := range []string{
		"{not json}",
		`{"head": "ASPIRIN",}`,
		`prefix {"head": "A"} middle {"tail": "B"} suffix`,
	} {
		got := Verify(output, testKnowledge)
		assert.Equal(t, StatusParseError, got.Status, "output %q", output)
		assert.True(t, strings.HasPrefix(got.Message, "JSON parse error: "), got.Message)
	}
}

func TestVerify_WrongFieldType(t *testing.T) {
	got := Verify(`{"head":"ASPIRIN","relation":7,"tail":"COX-2","evidence":"x"}`, testKnowledge)
	assert.Equal(t, StatusParseError, got.Status)
	assert.Contains(t, got.Message, "field relation")
}

func TestVerify_MissingFieldsListed(t *testing.T) {
	tests := []struct {
		output  string
		missing string
	}{
		{`{}`, "head, relation, tail, evidence"},
		{`{"head":"A","relation":"R","tail":"T"}`, "evidence"},
		{`{"relation":"R","evidence":"E"}`, "head, tail"},
		{`{"head":"A","relation":"R","tail":"T","reasoning_trace":[]}`, "evidence"},
	}

	for _, tt := range tests {
		got := Verify(tt.output, testKnowledge)
		require.Equal(t, StatusMissingFields, got.Status, tt.output)
		assert.Equal(t, "Missing required fields: "+tt.missing+".", got.Message)
		assert.Nil(t, got.Triple)
	}
}

func TestVerify_RelationCaseInsensitive(t *testing.T) {
	for _, relation := range []string{"inhibits", "Inhibits", "INHIBITS", "iNhIbItS"} {
		output := `{"head":"ASPIRIN","relation":"` + relation + `","tail":"COX-2","evidence":"e"}`
		got := Verify(output, testKnowledge)
		assert.Equal(t, StatusVerified, got.Status, relation)
	}
}

func TestVerify_HeadTailCaseSensitive(t *testing.T) {
	got := Verify(`{"head":"aspirin","relation":"inhibits","tail":"COX-2","evidence":"e"}`, testKnowledge)
	assert.Equal(t, StatusNotFound, got.Status)

	got = Verify(`{"head":"ASPIRIN","relation":"inhibits","tail":"cox-2","evidence":"e"}`, testKnowledge)
	assert.Equal(t, StatusNotFound, got.Status)

	got = Verify(`{"head":"Aspirin","relation":"treats","tail":"inflammation","evidence":"e"}`, testKnowledge)
	assert.Equal(t, StatusVerified, got.Status)
}

func TestVerify_NoFuzzyMatching(t *testing.T) {
	for _, output := range []string{
		`{"head":"ASPIRIN ","relation":"inhibits","tail":"COX-2","evidence":"e"}`,
		`{"head":"ASPIRIN","relation":"inhibit","tail":"COX-2","evidence":"e"}`,
		`{"head":"ASPIRIN","relation":"inhibits","tail":"COX","evidence":"e"}`,
	} {
		assert.Equal(t, StatusNotFound, Verify(output, testKnowledge).Status, output)
	}
}

func TestVerify_TripleContents(t *testing.T) {
	output := `BioGPT says: {
  "head": "ASPIRIN",
  "relation": "inhibits",
  "tail": "COX-2",
  "evidence": "Aspirin reduces inflammation by inhibiting COX-2 enzyme.",
  "reasoning_trace": ["Step1: find drug", "Step2: find target"]
} trailing words`

	got := Verify(output, testKnowledge)
	require.Equal(t, StatusVerified, got.Status)
	require.NotNil(t, got.Triple)
	assert.Equal(t, "ASPIRIN", got.Triple.Head)
	assert.Equal(t, "inhibits", got.Triple.Relation, "relation is kept as written by the model")
	assert.Equal(t, "COX-2", got.Triple.Tail)
	assert.Equal(t, "Aspirin reduces inflammation by inhibiting COX-2 enzyme.", got.Triple.Evidence)
	assert.Equal(t, []string{"Step1: find drug", "Step2: find target"}, got.Triple.ReasoningTrace)
}

func TestVerify_MalformedReasoningTraceIgnored(t *testing.T) {
	got := Verify(`{"head":"ASPIRIN","relation":"inhibits","tail":"COX-2","evidence":"e","reasoning_trace":"one step"}`, testKnowledge)
	require.Equal(t, StatusVerified, got.Status)
	assert.Nil(t, got.Triple.ReasoningTrace)
}

func TestVerify_EmptyKnowledge(t *testing.T) {
	got := Verify(`{"head":"ASPIRIN","relation":"inhibits","tail":"COX-2","evidence":"e"}`, nil)
	assert.Equal(t, StatusNotFound, got.Status)
	require.NotNil(t, got.Triple)
}

func TestVerify_Deterministic(t *testing.T) {
	output := `{"head":"ASPIRIN","relation":"inhibits"`
	first := Verify(output, testKnowledge)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Verify(output, testKnowledge))
	}
}

func TestVerify_ConcurrentCalls(t *testing.T) {
	outputs := []string{
		`{"head":"ASPIRIN","relation":"inhibits","tail":"COX-2","evidence":"e"}`,
		`{"head":"IBUPROFEN","relation":"inhibits","tail":"COX-1","evidence":"e"}`,
		`{"head":"ASPIRIN","relation":"activates","tail":"COX-2","evidence":"e"}`,
	}
	want := []Status{StatusVerified, StatusVerified, StatusNotFound}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			got := Verify(outputs[idx%len(outputs)], testKnowledge)
			assert.Equal(t, want[idx%len(outputs)], got.Status)
		}(i)
	}
	wg.Wait()
}

func TestMatch(t *testing.T) {
	assert.True(t, Match(model.Triple{Head: "IBUPROFEN", Relation: "inhibits", Tail: "COX-1"}, testKnowledge))
	assert.False(t, Match(model.Triple{Head: "IBUPROFEN", Relation: "inhibits", Tail: "COX-2"}, testKnowledge))
}

func TestMatch_FullUnicodeUpperCase(t *testing.T) {
	knowledge := []model.KnowledgeRow{
		{Head: "Gen", Relation: "STRASSE", Tail: "Protein"},
		{Head: "ASPIRIN", Relation: "HEMMT", Tail: "COX-2"},
	}

	assert.True(t, Match(model.Triple{Head: "Gen", Relation: "straße", Tail: "Protein"}, knowledge))
	assert.True(t, Match(model.Triple{Head: "ASPIRIN", Relation: "hemmt", Tail: "COX-2"}, knowledge))

	out := `{"head":"Gen","relation":"Straße","tail":"Protein","evidence":"..."}`
	assert.Equal(t, StatusVerified, Verify(out, knowledge).Status)
}
