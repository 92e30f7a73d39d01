package checkfile

import "strings"

// wildcardToken is the only non-literal construct the engine accepts.
// Anything else inside {{ }} is rejected at compile time instead of being
// silently matched as literal text; full regex blocks stay an extension point.
const wildcardToken = "{{.*}}"

// CompiledPattern is the matchable form of a directive's raw pattern: literal
// segments interleaved with wildcard gaps. A wildcard matches any, possibly
// empty, span of text and is non-greedy with respect to the literal that
// follows it. Immutable after compile.
type CompiledPattern struct {
	raw string
	// literals has one entry per literal segment; splitting the raw text on
	// the wildcard token yields n+1 literals around n wildcards. Entries may
	// be empty (zero-width).
	literals []string
}

// CompilePattern turns raw pattern text into a CompiledPattern. line is the
// 1-based check-file line, used only for the error.
func CompilePattern(raw string, line int) (CompiledPattern, error) {
	// Every "{{" must open the exact wildcard token. A single "{" or a bare
	// "}}" is ordinary literal text.
	rest := raw
	for {
		i := strings.Index(rest, "{{")
		if i < 0 {
			break
		}
		tail := rest[i:]
		if strings.HasPrefix(tail, wildcardToken) {
			rest = tail[len(wildcardToken):]
			continue
		}
		if strings.HasPrefix(tail, "{{.*") {
			return CompiledPattern{}, &InvalidPatternError{Line: line, Reason: `unbalanced wildcard marker: "{{.*" without closing "}}"`}
		}
		return CompiledPattern{}, &InvalidPatternError{Line: line, Reason: `unsupported expression after "{{": only the "{{.*}}" wildcard is accepted`}
	}
	return CompiledPattern{
		raw:      raw,
		literals: strings.Split(raw, wildcardToken),
	}, nil
}

// Raw returns the pattern text as written in the directive.
func (p CompiledPattern) Raw() string { return p.raw }

// MatchAt reports whether the pattern matches s at or after byte offset from,
// and returns the byte offset just past the matched span. Literal segments
// must occur as substrings in order, each found at its first occurrence after
// the previous one (shortest wildcard span). The pattern is unanchored: the
// first literal may start anywhere at or after from.
func (p CompiledPattern) MatchAt(s string, from int) (end int, ok bool) {
	if from > len(s) {
		return 0, false
	}
	pos := from
	for _, lit := range p.literals {
		if lit == "" {
			continue
		}
		i := strings.Index(s[pos:], lit)
		if i < 0 {
			return 0, false
		}
		pos += i + len(lit)
	}
	return pos, true
}

// MatchLine reports whether the pattern matches anywhere in the line.
func (p CompiledPattern) MatchLine(s string) bool {
	_, ok := p.MatchAt(s, 0)
	return ok
}

// AnchorLiteral returns the longest literal segment of the pattern, the best
// single substring a prefilter can key on. Empty when the pattern is all
// wildcards (or empty).
func (p CompiledPattern) AnchorLiteral() string {
	best := ""
	for _, lit := range p.literals {
		if len(lit) > len(best) {
			best = lit
		}
	}
	return best
}
