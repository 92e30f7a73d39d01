package suites

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PhucNguyen204/LineCheck_V2/pkg/checkfile"
)

func isYAML(p string) bool {
	l := strings.ToLower(p)
	return strings.HasSuffix(l, ".yml") || strings.HasSuffix(l, ".yaml")
}

// LoadedSuite is a parsed manifest plus the directory it was found in, so
// case paths can be resolved relative to the manifest.
type LoadedSuite struct {
	Suite checkfile.Suite
	Path  string
	Dir   string
}

// ResolveCase returns the on-disk paths for a case's check and input files.
// Absolute paths in the manifest are kept as-is.
func (ls LoadedSuite) ResolveCase(c checkfile.SuiteCase) (checkPath, inputPath string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(ls.Dir, p)
	}
	return resolve(c.Check), resolve(c.Input)
}

// LoadDirRecursive walks root for .yml/.yaml suite manifests.
func LoadDirRecursive(root string) ([]LoadedSuite, error) {
	var out []LoadedSuite
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(p) {
			return nil
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		s, err := checkfile.LoadSuiteYAML(b)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		out = append(out, LoadedSuite{Suite: s, Path: p, Dir: filepath.Dir(p)})
		return nil
	})
	return out, err
}
