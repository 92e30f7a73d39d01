package checkfile

import "fmt"

// MalformedDirectiveError reports a check file that is not well-formed:
// a directive appears somewhere it has no meaning (for example CHECK-NEXT
// with no prior anchor directive). Parse-time, aborts before any scanning.
type MalformedDirectiveError struct {
	Line   int
	Reason string
}

func (e *MalformedDirectiveError) Error() string {
	return fmt.Sprintf("check file line %d: malformed directive: %s", e.Line, e.Reason)
}

// InvalidPatternError reports a directive pattern that is syntactically
// invalid, e.g. an unbalanced or unsupported {{ }} wildcard marker.
type InvalidPatternError struct {
	Line   int
	Reason string
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("check file line %d: invalid pattern: %s", e.Line, e.Reason)
}
