package suites

import (
	"fmt"
	"os"

	"github.com/PhucNguyen204/LineCheck_V2/pkg/checkfile"
	"github.com/PhucNguyen204/LineCheck_V2/pkg/verify"
)

// CaseResult is one case's outcome. Err is set for load/parse problems
// (missing file, malformed directive); those are distinct from a failing
// verdict, which is a valid result.
type CaseResult struct {
	Suite   string
	Case    string
	Verdict verify.Verdict
	Err     error
}

func (r CaseResult) OK() bool { return r.Err == nil && r.Verdict.Pass }

// Run verifies every case of the suite in order, collecting per-case
// results. A broken case is recorded and does not stop the rest of the
// suite; the all-or-nothing rule applies per run, aggregation is ours.
func Run(ls LoadedSuite, cfg verify.Config) []CaseResult {
	out := make([]CaseResult, 0, len(ls.Suite.Cases))
	for _, c := range ls.Suite.Cases {
		res := CaseResult{Suite: ls.Suite.Name, Case: c.Name}
		checkPath, inputPath := ls.ResolveCase(c)

		cb, err := os.ReadFile(checkPath)
		if err != nil {
			res.Err = fmt.Errorf("read check %s: %w", checkPath, err)
			out = append(out, res)
			continue
		}
		cf, err := checkfile.Parse(c.Name, cb)
		if err != nil {
			res.Err = fmt.Errorf("parse %s: %w", checkPath, err)
			out = append(out, res)
			continue
		}
		if inputPath == "" {
			res.Err = fmt.Errorf("case %s: no input file", c.Name)
			out = append(out, res)
			continue
		}
		ib, err := os.ReadFile(inputPath)
		if err != nil {
			res.Err = fmt.Errorf("read input %s: %w", inputPath, err)
			out = append(out, res)
			continue
		}
		res.Verdict = verify.Compile(cf, cfg).Verify(string(ib))
		out = append(out, res)
	}
	return out
}
