// Package config loads the engine's optional tuning file. Its absence is
// not an error: the engine runs with sensible defaults when no file is
// given, matching spec.md §5's "callers bound work externally" stance on
// runaway saturation.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the knobs an operator can use to bound an otherwise
// possibly-divergent saturation run (spec.md §5, §9).
type Config struct {
	// MaxClauses stops a saturation run's forward loop once the clause set
	// (loaded clauses included) holds this many clauses; the run then
	// only tries backward construction before reporting the query
	// underived. Zero means unbounded.
	MaxClauses int `yaml:"max_clauses"`
	// MaxIterations caps the number of worklist pops a single saturation
	// run may perform. Zero means unbounded.
	MaxIterations int `yaml:"max_iterations"`
	// Quiet suppresses the info-level progress logging the saturation
	// engine otherwise emits when a run starts and finishes; warnings
	// are still logged.
	Quiet bool `yaml:"quiet"`
}

// Default returns the engine's out-of-the-box tuning: unbounded, verbose.
func Default() Config {
	return Config{}
}

// Load reads a YAML tuning file from path. A missing file is not an
// error: Load returns the default Config unchanged, since engine tuning
// is optional.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config %q", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %q", path)
	}
	return cfg, nil
}
