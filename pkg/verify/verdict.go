package verify

import (
	"encoding/json"
	"fmt"

	"github.com/PhucNguyen204/LineCheck_V2/pkg/checkfile"
)

// FailureKind classifies why a run failed. Run-time only: parse-time problems
// surface as errors from Compile, never as a Verdict.
type FailureKind int

const (
	// FailPatternNotFound: a CHECK had no matching line in the remaining input.
	FailPatternNotFound FailureKind = iota
	// FailAdjacentMismatch: the line at the cursor did not satisfy a CHECK-NEXT.
	FailAdjacentMismatch
	// FailSameLineMismatch: the anchor line did not satisfy a CHECK-SAME.
	FailSameLineMismatch
	// FailForbiddenFound: a CHECK-NOT pattern occurred inside its window.
	FailForbiddenFound
)

func (k FailureKind) String() string {
	switch k {
	case FailPatternNotFound:
		return "pattern_not_found"
	case FailAdjacentMismatch:
		return "adjacent_pattern_mismatch"
	case FailSameLineMismatch:
		return "same_line_mismatch"
	case FailForbiddenFound:
		return "forbidden_pattern_found"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

func (k FailureKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Diagnostic pinpoints the first unsatisfiable directive. Input line numbers
// are 1-based; SearchedFrom is the previous anchor's 1-based line, 0 when the
// search started at the top of the input.
type Diagnostic struct {
	Kind          FailureKind             `json:"kind"`
	Directive     checkfile.DirectiveKind `json:"directive"`
	DirectiveLine int                     `json:"directive_line"`
	Pattern       string                  `json:"pattern"`
	SearchedFrom  int                     `json:"searched_from,omitempty"`
	InputLine     int                     `json:"input_line,omitempty"`
	InputText     string                  `json:"input_text,omitempty"`
}

func (d *Diagnostic) String() string {
	at := fmt.Sprintf("%s at check line %d", d.Directive, d.DirectiveLine)
	switch d.Kind {
	case FailPatternNotFound:
		return fmt.Sprintf("%s: pattern %q not found after input line %d", at, d.Pattern, d.SearchedFrom)
	case FailAdjacentMismatch:
		return fmt.Sprintf("%s: mismatch at input line %d: expected %q, got %q", at, d.InputLine, d.Pattern, d.InputText)
	case FailSameLineMismatch:
		return fmt.Sprintf("%s: anchor line %d does not continue with %q: %q", at, d.InputLine, d.Pattern, d.InputText)
	case FailForbiddenFound:
		return fmt.Sprintf("%s: forbidden pattern %q found at input line %d: %q", at, d.Pattern, d.InputLine, d.InputText)
	default:
		return fmt.Sprintf("%s: failed with %q", at, d.Pattern)
	}
}

// Verdict is the outcome of one directive-sequence-against-input run: a
// boolean plus, on failure, the diagnostic for the first unsatisfiable
// directive. Counters are informational.
type Verdict struct {
	Pass           bool        `json:"pass"`
	Failure        *Diagnostic `json:"failure,omitempty"`
	DirectivesRun  int         `json:"directives_run"`
	InputLines     int         `json:"input_lines"`
	PrefilterSkips int         `json:"prefilter_skips,omitempty"`
}
