package checkfile

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SuiteCase names one check file and, optionally, the input it verifies.
// An empty Input means the input is supplied at run time (stdin, API body).
type SuiteCase struct {
	Name  string `yaml:"name"`
	Check string `yaml:"check"`
	Input string `yaml:"input"`
}

// Suite is one YAML manifest: a named, ordered list of verification cases.
// Paths are as written in the manifest; resolving them against the manifest
// directory is the loader's concern.
type Suite struct {
	Name  string      `yaml:"name"`
	Cases []SuiteCase `yaml:"cases"`
}

// LoadSuiteYAML parses and validates one suite manifest.
func LoadSuiteYAML(b []byte) (Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Suite{}, err
	}
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return Suite{}, errors.New("suite manifest missing name")
	}
	if len(s.Cases) == 0 {
		return Suite{}, fmt.Errorf("suite %s: no cases", s.Name)
	}
	for i := range s.Cases {
		c := &s.Cases[i]
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			c.Name = fmt.Sprintf("case-%d", i+1)
		}
		if strings.TrimSpace(c.Check) == "" {
			return Suite{}, fmt.Errorf("suite %s: case %s: missing check file", s.Name, c.Name)
		}
	}
	return s, nil
}
