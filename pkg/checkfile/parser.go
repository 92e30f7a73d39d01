package checkfile

import "strings"

// Directive keywords, matched as case-sensitive prefixes of the trimmed line.
// Longer keywords are tried first so "CHECK-NEXT:" is never read as "CHECK"
// followed by junk.
var keywords = []struct {
	prefix string
	kind   DirectiveKind
}{
	{"CHECK-NEXT:", KindCheckNext},
	{"CHECK-SAME:", KindCheckSame},
	{"CHECK-NOT:", KindCheckNot},
	{"CHECK:", KindCheck},
}

// Parse turns raw check-file text into the ordered directive sequence.
//
// Blank lines and lines whose first non-whitespace byte is '#' are skipped.
// Lines that start with none of the directive keywords are ignored as well:
// check files are commonly source files with directives embedded between
// ordinary code, so an unrecognized line is content, not an error.
//
// CHECK-NEXT and CHECK-SAME relate to the previous anchor, so either of them
// appearing before any anchoring directive (first in the file, or right after
// a CHECK-NOT, which anchors nothing) is a MalformedDirectiveError. Patterns
// are compiled here so an invalid pattern aborts before any scanning begins.
func Parse(name string, text []byte) (CheckFile, error) {
	cf := CheckFile{Name: name}
	lastKind := KindCheckNot // sentinel: no anchor seen yet
	seenAny := false

	for i, line := range strings.Split(string(text), "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		kind, rawPattern, ok := splitDirective(trimmed)
		if !ok {
			continue
		}
		if kind == KindCheckNext || kind == KindCheckSame {
			if !seenAny {
				return CheckFile{}, &MalformedDirectiveError{
					Line:   lineNo,
					Reason: kind.String() + " requires a preceding directive to anchor from",
				}
			}
			if lastKind == KindCheckNot {
				return CheckFile{}, &MalformedDirectiveError{
					Line:   lineNo,
					Reason: kind.String() + " cannot follow CHECK-NOT, which anchors no line",
				}
			}
		}
		pat, err := CompilePattern(rawPattern, lineNo)
		if err != nil {
			return CheckFile{}, err
		}
		cf.Directives = append(cf.Directives, Directive{
			Kind:       kind,
			RawPattern: rawPattern,
			Line:       lineNo,
			Pattern:    pat,
		})
		seenAny = true
		lastKind = kind
	}
	return cf, nil
}

func splitDirective(line string) (DirectiveKind, string, bool) {
	for _, kw := range keywords {
		if strings.HasPrefix(line, kw.prefix) {
			return kw.kind, strings.TrimSpace(line[len(kw.prefix):]), true
		}
	}
	return 0, "", false
}
