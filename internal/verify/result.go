package verify

import (
	"fmt"

	"github.com/ppiankov/relcheck/internal/model"
)

// Status tags the outcome of a verification
type Status int

const (
	StatusParseError    Status = iota // No JSON object found, or it did not parse
	StatusMissingFields               // Parsed, but a required key is absent
	StatusVerified                    // Triple matches a knowledge row
	StatusNotFound                    // Triple is well-formed but unknown
)

func (s Status) String() string {
	switch s {
	case StatusParseError:
		return "parse_error"
	case StatusMissingFields:
		return "missing_fields"
	case StatusVerified:
		return "verified"
	case StatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// MarshalText lets Status appear as a string in JSON and YAML
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of Verify.
// Message is set for ParseError and MissingFields; Triple is set for Verified and NotFound.
type Result struct {
	Status  Status
	Message string
	Triple  *model.Triple
}

// OK reports whether the triple was found in the knowledge table
func (r Result) OK() bool {
	return r.Status == StatusVerified
}

func parseError(format string, args ...any) Result {
	return Result{Status: StatusParseError, Message: fmt.Sprintf(format, args...)}
}

func missingFields(message string) Result {
	return Result{Status: StatusMissingFields, Message: message}
}

func verified(t model.Triple) Result {
	return Result{Status: StatusVerified, Triple: &t}
}

func notFound(t model.Triple) Result {
	return Result{Status: StatusNotFound, Triple: &t}
}
