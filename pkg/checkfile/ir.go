package checkfile

import (
	"encoding/json"
	"fmt"
)

// DirectiveKind identifies one verification instruction extracted from a
// check file. The set is closed: dispatch in the matcher is a switch per
// kind, not open-ended.
type DirectiveKind int

const (
	// KindCheck anchors somewhere at-or-after the cursor (forward search).
	KindCheck DirectiveKind = iota
	// KindCheckNext must match exactly the line at the cursor, no slack.
	KindCheckNext
	// KindCheckSame must match on the previous anchor line, after the end
	// of the previous match.
	KindCheckSame
	// KindCheckNot must not match anywhere before the next anchor.
	KindCheckNot
)

func (k DirectiveKind) String() string {
	switch k {
	case KindCheck:
		return "CHECK"
	case KindCheckNext:
		return "CHECK-NEXT"
	case KindCheckSame:
		return "CHECK-SAME"
	case KindCheckNot:
		return "CHECK-NOT"
	default:
		return fmt.Sprintf("DirectiveKind(%d)", int(k))
	}
}

func (k DirectiveKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Anchoring reports whether a successful match of this directive consumes an
// input line as the new anchor. CHECK-NOT constrains a region and never moves
// the cursor.
func (k DirectiveKind) Anchoring() bool {
	return k != KindCheckNot
}

// Directive is one line of the check file, parsed and pattern-compiled.
// Immutable after parse.
type Directive struct {
	Kind       DirectiveKind
	RawPattern string
	// Line is the 1-based source line in the check file, for diagnostics.
	Line    int
	Pattern CompiledPattern
}

// CheckFile is the ordered directive sequence parsed from one check file.
type CheckFile struct {
	Name       string
	Directives []Directive
}
