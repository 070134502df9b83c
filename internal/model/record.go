package model

// RunRecord is the artifact persisted at the end of a run.
// The JSON shape is fixed: exactly these three string fields.
type RunRecord struct {
	Input        string `json:"input"`
	ModelOutput  string `json:"model_output"`
	Verification string `json:"verification"`
}
