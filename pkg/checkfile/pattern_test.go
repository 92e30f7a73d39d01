package checkfile

import (
	"errors"
	"testing"
)

func mustCompile(t *testing.T, raw string) CompiledPattern {
	t.Helper()
	p, err := CompilePattern(raw, 1)
	if err != nil {
		t.Fatalf("compile %q: %v", raw, err)
	}
	return p
}

func TestPattern_LiteralSubstring(t *testing.T) {
	p := mustCompile(t, "ProfileSummary")
	if !p.MatchLine(`!7 = !{!"ProfileSummary", !1}`) {
		t.Fatal("expected substring match")
	}
	if p.MatchLine("profileSummary") {
		t.Fatal("matching must be case-sensitive")
	}
}

func TestPattern_WildcardMatchesEmptySpan(t *testing.T) {
	p := mustCompile(t, "a{{.*}}b")
	for _, s := range []string{"ab", "a--b", "xx a123b yy"} {
		if !p.MatchLine(s) {
			t.Errorf("%q should match", s)
		}
	}
	if p.MatchLine("ba") {
		t.Fatal("literals must occur in order")
	}
}

func TestPattern_NonGreedyEnd(t *testing.T) {
	// the wildcard takes the shortest span that lets the next literal match
	p := mustCompile(t, "a{{.*}}b")
	end, ok := p.MatchAt("aXbYb", 0)
	if !ok || end != 3 {
		t.Fatalf("end = %d, ok = %v; want 3, true", end, ok)
	}
}

func TestPattern_MatchAtOffset(t *testing.T) {
	p := mustCompile(t, "void")
	if _, ok := p.MatchAt("define void @f", 7); !ok {
		t.Fatal("match at offset 7 should succeed")
	}
	if _, ok := p.MatchAt("define void @f", 8); ok {
		t.Fatal("match strictly after the literal start should fail")
	}
}

func TestPattern_AdjacentWildcards(t *testing.T) {
	p := mustCompile(t, "{{.*}}{{.*}}x{{.*}}")
	if !p.MatchLine("x") {
		t.Fatal("adjacent wildcards are zero-width")
	}
}

func TestPattern_SingleBracesAreLiteral(t *testing.T) {
	p := mustCompile(t, `!{!"ProfileFormat", !"InstrProf"}`)
	if !p.MatchLine(`!0 = !{!"ProfileFormat", !"InstrProf"}`) {
		t.Fatal("single braces are plain literal text")
	}
	// a bare "}}" without an opener is literal too
	if !mustCompile(t, "end}}").MatchLine("the end}} marker") {
		t.Fatal("bare }} is literal")
	}
}

func TestPattern_InvalidMarkers(t *testing.T) {
	for _, raw := range []string{
		"broken {{.* pattern",
		"{{.*",
		"regex {{[0-9]+}} block",
		"open {{ brace",
	} {
		_, err := CompilePattern(raw, 7)
		var pe *InvalidPatternError
		if !errors.As(err, &pe) {
			t.Errorf("%q: got %v, want InvalidPatternError", raw, err)
			continue
		}
		if pe.Line != 7 {
			t.Errorf("%q: error line = %d, want 7", raw, pe.Line)
		}
	}
}

func TestPattern_AnchorLiteral(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"define {{.*}} @hot_function", " @hot_function"},
		{"plain literal", "plain literal"},
		{"{{.*}}", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := mustCompile(t, tt.raw).AnchorLiteral(); got != tt.want {
			t.Errorf("AnchorLiteral(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestPattern_EmptyMatchesAnything(t *testing.T) {
	p := mustCompile(t, "")
	end, ok := p.MatchAt("whatever", 3)
	if !ok || end != 3 {
		t.Fatalf("empty pattern: end = %d, ok = %v; want 3, true", end, ok)
	}
}
