package verify

// Config controls compile-time options of a verification run. The prefilter
// settings mirror what the literal prefilter can usefully key on: very short
// literals hit everywhere and only cost automaton states.
type Config struct {
	// Enable the Aho-Corasick literal prefilter.
	EnablePrefilter bool `json:"enable_prefilter"`
	// Ignore anchor literals shorter than this.
	MinLiteralLength int `json:"min_literal_length"`
	// Cap on automaton patterns (nil = no limit).
	MaxPatterns *int `json:"max_patterns"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	max := 256
	return Config{
		EnablePrefilter:  true,
		MinLiteralLength: 3,
		MaxPatterns:      &max,
	}
}

// DisabledPrefilterConfig returns defaults with the prefilter off; every
// directive then goes through the full line scan.
func DisabledPrefilterConfig() Config {
	cfg := DefaultConfig()
	cfg.EnablePrefilter = false
	return cfg
}

func (c Config) WithPrefilter(enable bool) Config {
	c.EnablePrefilter = enable
	return c
}

func (c Config) WithMinLiteralLength(n int) Config {
	c.MinLiteralLength = n
	return c
}

func (c Config) WithMaxPatterns(n int) Config {
	c.MaxPatterns = &n
	return c
}
