package model

// Triple is a (head, relation, tail) fact extracted from model output
type Triple struct {
	Head           string   `json:"head"`
	Relation       string   `json:"relation"`
	Tail           string   `json:"tail"`
	Evidence       string   `json:"evidence"`
	ReasoningTrace []string `json:"reasoning_trace,omitempty"` // Advisory, never used for matching
}

// KnowledgeRow is one accepted fact from the reference knowledge table
type KnowledgeRow struct {
	Head     string `json:"head"`
	Relation string `json:"relation"`
	Tail     string `json:"tail"`
}

// String formats the triple as "head --relation--> tail"
func (t Triple) String() string {
	return t.Head + " --" + t.Relation + "--> " + t.Tail
}
