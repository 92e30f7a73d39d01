package verify

import (
	"testing"

	"github.com/PhucNguyen204/LineCheck_V2/pkg/checkfile"
)

func compile(t *testing.T, text string, cfg Config) *Check {
	t.Helper()
	cf, err := checkfile.Parse("test", []byte(text))
	if err != nil {
		t.Fatal(err)
	}
	return Compile(cf, cfg)
}

func TestPrefilter_StatsAndDedupe(t *testing.T) {
	c := compile(t, "CHECK: needle\nCHECK-NOT: needle\nCHECK: other\n", DefaultConfig())
	st := c.PrefilterStats()
	if st.PatternCount != 2 {
		t.Fatalf("pattern count = %d, want 2 (needle deduped)", st.PatternCount)
	}
	if st.DirectiveCount != 3 {
		t.Fatalf("directive count = %d, want 3", st.DirectiveCount)
	}
	if st.MemoryUsage <= 0 {
		t.Fatalf("memory usage = %d", st.MemoryUsage)
	}
}

func TestPrefilter_Disabled(t *testing.T) {
	c := compile(t, "CHECK: needle\n", DisabledPrefilterConfig())
	st := c.PrefilterStats()
	if st.PatternCount != 0 || st.EstimatedSelectivity != 1.0 {
		t.Fatalf("disabled prefilter stats: %+v", st)
	}
	v := c.Verify("needle\n")
	if !v.Pass || v.PrefilterSkips != 0 {
		t.Fatalf("verdict: %+v", v)
	}
}

func TestPrefilter_ShortLiteralsNotIndexed(t *testing.T) {
	// default MinLiteralLength is 3; "ab" must not enter the automaton
	c := compile(t, "CHECK: ab\n", DefaultConfig())
	if st := c.PrefilterStats(); st.PatternCount != 0 {
		t.Fatalf("pattern count = %d, want 0", st.PatternCount)
	}
	// and the directive still goes through the full scan
	if v := c.Verify("xxabxx\n"); !v.Pass {
		t.Fatalf("verdict: %+v", v.Failure)
	}
}

func TestPrefilter_PureWildcardNotIndexed(t *testing.T) {
	c := compile(t, "CHECK: {{.*}}\n", DefaultConfig())
	if st := c.PrefilterStats(); st.PatternCount != 0 {
		t.Fatalf("pattern count = %d, want 0", st.PatternCount)
	}
	if v := c.Verify("anything\n"); !v.Pass {
		t.Fatalf("verdict: %+v", v.Failure)
	}
}

func TestPrefilter_FastFailCountsSkip(t *testing.T) {
	c := compile(t, "CHECK: globally-absent-literal\n", DefaultConfig())
	v := c.Verify("some\ninput\nlines\n")
	if v.Pass {
		t.Fatal("expected failure")
	}
	if v.PrefilterSkips != 1 {
		t.Fatalf("prefilter skips = %d, want 1", v.PrefilterSkips)
	}
	if v.Failure.Kind != FailPatternNotFound {
		t.Fatalf("diagnostic: %+v", v.Failure)
	}
}

func TestPrefilter_CheckNotSkippedWhenLiteralAbsent(t *testing.T) {
	c := compile(t, "CHECK: input\nCHECK-NOT: globally-absent-literal\n", DefaultConfig())
	v := c.Verify("some\ninput\nlines\n")
	if !v.Pass {
		t.Fatalf("verdict: %+v", v.Failure)
	}
	if v.PrefilterSkips != 1 {
		t.Fatalf("prefilter skips = %d, want 1", v.PrefilterSkips)
	}
}

func TestPrefilter_MaxPatternsCap(t *testing.T) {
	cfg := DefaultConfig().WithMaxPatterns(1)
	c := compile(t, "CHECK: first-literal\nCHECK: second-literal\n", cfg)
	if st := c.PrefilterStats(); st.PatternCount != 1 {
		t.Fatalf("pattern count = %d, want 1", st.PatternCount)
	}
	// the uncapped directive still verifies through the full scan
	if v := c.Verify("first-literal\nsecond-literal\n"); !v.Pass {
		t.Fatalf("verdict: %+v", v.Failure)
	}
}
