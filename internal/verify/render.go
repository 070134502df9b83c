package verify

import "fmt"

// Render formats a Result as the human-readable verdict stored in the run record
func Render(r Result) string {
	switch r.Status {
	case StatusParseError:
		return "❌ " + r.Message
	case StatusMissingFields:
		return "⚠️ " + r.Message
	case StatusVerified:
		return fmt.Sprintf("✅ Verified: (%s)", r.Triple)
	case StatusNotFound:
		return fmt.Sprintf("⚠️ No matching relation found in knowledge base (%s).", r.Triple)
	default:
		return fmt.Sprintf("unknown verification status %d", int(r.Status))
	}
}

// String implements fmt.Stringer
func (r Result) String() string {
	return Render(r)
}
