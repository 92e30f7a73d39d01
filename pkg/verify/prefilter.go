package verify

import (
	ac "github.com/petar-dambovaliev/aho-corasick"

	"github.com/PhucNguyen204/LineCheck_V2/pkg/checkfile"
)

// Literal prefilter over the whole input. One automaton holds the longest
// literal segment of every eligible directive; a single scan of the input
// then tells, per directive, whether its anchor literal occurs at all.
//
// Soundness contract: the prefilter never changes a verdict, only reaches it
// faster. An anchor literal absent from the entire input means no line can
// match the pattern, so a positive directive fails without a line scan and a
// CHECK-NOT is trivially satisfied. Directives without a usable literal are
// never prefiltered.

type PrefilterStats struct {
	// Distinct literal patterns in the automaton.
	PatternCount int `json:"pattern_count"`
	// Directives covered by an anchor literal.
	DirectiveCount int `json:"directive_count"`
	// 0.0 = rất chọn lọc, 1.0 = khớp tất.
	EstimatedSelectivity float64 `json:"estimated_selectivity"`
	// Rough automaton footprint in bytes.
	MemoryUsage int `json:"memory_usage"`
}

func (s PrefilterStats) IsEffective() bool {
	return s.PatternCount >= 2 && s.EstimatedSelectivity < 0.8
}

type literalPrefilter struct {
	ac       *ac.AhoCorasick
	patterns []string
	// anchorOf: directive index -> pattern index in patterns.
	anchorOf map[int]int
	stats    PrefilterStats
}

// buildPrefilter collects anchor literals from the directive sequence and
// builds the automaton. Returns nil when disabled or nothing is eligible.
func buildPrefilter(directives []checkfile.Directive, cfg Config) *literalPrefilter {
	if !cfg.EnablePrefilter {
		return nil
	}
	p := &literalPrefilter{anchorOf: make(map[int]int)}
	dedupe := make(map[string]int)
	for i, d := range directives {
		lit := d.Pattern.AnchorLiteral()
		if len(lit) < cfg.MinLiteralLength {
			continue
		}
		idx, ok := dedupe[lit]
		if !ok {
			if cfg.MaxPatterns != nil && len(p.patterns) >= *cfg.MaxPatterns {
				continue
			}
			idx = len(p.patterns)
			p.patterns = append(p.patterns, lit)
			dedupe[lit] = idx
		}
		p.anchorOf[i] = idx
	}
	if len(p.patterns) == 0 {
		return nil
	}

	builder := ac.NewAhoCorasickBuilder(ac.Opts{
		AsciiCaseInsensitive: false, // directives are case-sensitive
		MatchKind:            ac.LeftMostLongestMatch,
	})
	built := builder.Build(p.patterns)
	p.ac = &built

	p.stats = PrefilterStats{
		PatternCount:         len(p.patterns),
		DirectiveCount:       len(p.anchorOf),
		EstimatedSelectivity: estimateSelectivity(len(p.patterns)),
		MemoryUsage:          estimateMemoryUsage(p.patterns),
	}
	return p
}

func (p *literalPrefilter) Stats() PrefilterStats {
	if p == nil {
		return PrefilterStats{EstimatedSelectivity: 1.0}
	}
	return p.stats
}

// present scans the input once and returns the set of pattern indexes that
// occur anywhere in it.
func (p *literalPrefilter) present(input string) map[int]struct{} {
	out := make(map[int]struct{}, len(p.patterns))
	for _, m := range p.ac.FindAll(input) {
		out[m.Pattern()] = struct{}{}
	}
	return out
}

// covered reports whether directive i has an anchor literal in the automaton,
// and whether that literal occurs in the input per the present set.
func (p *literalPrefilter) covered(i int, present map[int]struct{}) (covered, hit bool) {
	if p == nil {
		return false, false
	}
	idx, ok := p.anchorOf[i]
	if !ok {
		return false, false
	}
	_, hit = present[idx]
	return true, hit
}

func estimateSelectivity(patternCount int) float64 {
	switch {
	case patternCount == 0:
		return 1.0
	case patternCount >= 20:
		return 0.10
	case patternCount >= 10:
		return 0.20
	case patternCount >= 5:
		return 0.40
	default:
		return 0.70
	}
}

func estimateMemoryUsage(patterns []string) int {
	total := 0
	for _, p := range patterns {
		total += len(p)
	}
	// trie states + transitions dominate; rough per-byte overhead
	return total*48 + len(patterns)*20
}
