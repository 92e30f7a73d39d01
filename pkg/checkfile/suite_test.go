package checkfile

import "testing"

func TestLoadSuiteYAML(t *testing.T) {
	b := []byte(`
name: pgo-metadata
cases:
  - name: instrprof-format
    check: checks/format.check
    input: inputs/format.ll
  - check: checks/summary.check
`)
	s, err := LoadSuiteYAML(b)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "pgo-metadata" || len(s.Cases) != 2 {
		t.Fatalf("unexpected suite: %+v", s)
	}
	if s.Cases[0].Input != "inputs/format.ll" {
		t.Fatalf("case 0 input = %q", s.Cases[0].Input)
	}
	// unnamed cases get positional names
	if s.Cases[1].Name != "case-2" {
		t.Fatalf("case 1 name = %q, want case-2", s.Cases[1].Name)
	}
}

func TestLoadSuiteYAML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", "cases:\n  - check: a.check\n"},
		{"no cases", "name: empty\n"},
		{"case without check", "name: s\ncases:\n  - name: x\n"},
		{"bad yaml", "name: [unterminated\n"},
	}
	for _, tt := range tests {
		if _, err := LoadSuiteYAML([]byte(tt.yaml)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}
