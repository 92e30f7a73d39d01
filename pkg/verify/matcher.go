package verify

import (
	"strings"

	"github.com/PhucNguyen204/LineCheck_V2/pkg/checkfile"
)

// Check is one compiled check file plus its optional literal prefilter.
// Immutable after Compile; safe for concurrent Verify calls, each run owns
// its own cursor.
type Check struct {
	file checkfile.CheckFile
	cfg  Config
	pre  *literalPrefilter
}

// Compile builds a runnable Check from a parsed check file.
func Compile(cf checkfile.CheckFile, cfg Config) *Check {
	return &Check{
		file: cf,
		cfg:  cfg,
		pre:  buildPrefilter(cf.Directives, cfg),
	}
}

func (c *Check) Name() string        { return c.file.Name }
func (c *Check) DirectiveCount() int { return len(c.file.Directives) }

func (c *Check) PrefilterStats() PrefilterStats { return c.pre.Stats() }

// SplitLines splits input text into lines: '\n' separated, tolerant of CRLF,
// with the empty tail after a final newline dropped.
func SplitLines(input string) []string {
	if input == "" {
		return nil
	}
	lines := strings.Split(input, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Verify runs the directive sequence against the input text and returns the
// verdict. The first unsatisfiable directive aborts the run; no partial
// credit, no continuation past a failure.
func (c *Check) Verify(input string) Verdict {
	return c.verify(SplitLines(input), input)
}

// VerifyLines is Verify for callers that already hold the input as lines.
func (c *Check) VerifyLines(lines []string) Verdict {
	if c.pre == nil {
		return c.verify(lines, "")
	}
	return c.verify(lines, strings.Join(lines, "\n"))
}

func (c *Check) verify(lines []string, joined string) Verdict {
	v := Verdict{InputLines: len(lines)}

	var present map[int]struct{}
	if c.pre != nil {
		present = c.pre.present(joined)
	}

	// Cursor state: cur is the 0-based index of the next candidate line, so
	// its value doubles as the previous anchor's 1-based line number when a
	// forward search fails. Never moves backward.
	cur := 0
	lastAnchor := -1
	lastEnd := 0

	// CHECK-NOT directives constrain the span of full lines strictly between
	// the surrounding anchors; they queue up here until the next anchor (or
	// end of input) closes the window.
	type pendingNot struct {
		d checkfile.Directive
	}
	var pending []pendingNot

	closeWindow := func(from, to int) *Diagnostic {
		for _, pn := range pending {
			for j := from; j < to; j++ {
				if pn.d.Pattern.MatchLine(lines[j]) {
					return &Diagnostic{
						Kind:          FailForbiddenFound,
						Directive:     pn.d.Kind,
						DirectiveLine: pn.d.Line,
						Pattern:       pn.d.RawPattern,
						InputLine:     j + 1,
						InputText:     lines[j],
					}
				}
			}
		}
		pending = pending[:0]
		return nil
	}

	fail := func(d *Diagnostic) Verdict {
		v.Pass = false
		v.Failure = d
		return v
	}

	for i, d := range c.file.Directives {
		switch d.Kind {
		case checkfile.KindCheckNot:
			if covered, hit := c.pre.covered(i, present); covered && !hit {
				// literal absent from the whole input: nothing to forbid
				v.PrefilterSkips++
				v.DirectivesRun++
				continue
			}
			pending = append(pending, pendingNot{d: d})
			v.DirectivesRun++

		case checkfile.KindCheck:
			if covered, hit := c.pre.covered(i, present); covered && !hit {
				v.PrefilterSkips++
				return fail(&Diagnostic{
					Kind:          FailPatternNotFound,
					Directive:     d.Kind,
					DirectiveLine: d.Line,
					Pattern:       d.RawPattern,
					SearchedFrom:  cur,
				})
			}
			j := cur
			end := 0
			found := false
			for ; j < len(lines); j++ {
				if e, ok := d.Pattern.MatchAt(lines[j], 0); ok {
					end = e
					found = true
					break
				}
			}
			if !found {
				return fail(&Diagnostic{
					Kind:          FailPatternNotFound,
					Directive:     d.Kind,
					DirectiveLine: d.Line,
					Pattern:       d.RawPattern,
					SearchedFrom:  cur,
				})
			}
			if diag := closeWindow(cur, j); diag != nil {
				return fail(diag)
			}
			lastAnchor, lastEnd = j, end
			cur = j + 1
			v.DirectivesRun++

		case checkfile.KindCheckNext:
			if cur >= len(lines) {
				return fail(&Diagnostic{
					Kind:          FailAdjacentMismatch,
					Directive:     d.Kind,
					DirectiveLine: d.Line,
					Pattern:       d.RawPattern,
					InputLine:     cur + 1,
					InputText:     "",
				})
			}
			end, ok := d.Pattern.MatchAt(lines[cur], 0)
			if !ok {
				return fail(&Diagnostic{
					Kind:          FailAdjacentMismatch,
					Directive:     d.Kind,
					DirectiveLine: d.Line,
					Pattern:       d.RawPattern,
					InputLine:     cur + 1,
					InputText:     lines[cur],
				})
			}
			// window between adjacent anchors holds no lines
			if diag := closeWindow(cur, cur); diag != nil {
				return fail(diag)
			}
			lastAnchor, lastEnd = cur, end
			cur++
			v.DirectivesRun++

		case checkfile.KindCheckSame:
			// the parser rejects CHECK-SAME before any anchor; a hand-built
			// directive list may still violate that
			if lastAnchor < 0 {
				return fail(&Diagnostic{
					Kind:          FailSameLineMismatch,
					Directive:     d.Kind,
					DirectiveLine: d.Line,
					Pattern:       d.RawPattern,
					InputLine:     0,
					InputText:     "",
				})
			}
			end, ok := d.Pattern.MatchAt(lines[lastAnchor], lastEnd)
			if !ok {
				return fail(&Diagnostic{
					Kind:          FailSameLineMismatch,
					Directive:     d.Kind,
					DirectiveLine: d.Line,
					Pattern:       d.RawPattern,
					InputLine:     lastAnchor + 1,
					InputText:     lines[lastAnchor],
				})
			}
			if diag := closeWindow(cur, cur); diag != nil {
				return fail(diag)
			}
			lastEnd = end
			v.DirectivesRun++
		}
	}

	// trailing CHECK-NOT window runs to end of input
	if diag := closeWindow(cur, len(lines)); diag != nil {
		return fail(diag)
	}

	v.Pass = true
	return v
}
