package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOptions reads an AnalyzerOptions document from path. Grounded on the
// teacher's own yaml.v3 usage for embedded-language configuration
// (internal/ext/config.go).
func LoadOptions(path string) (AnalyzerOptions, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, err
	}
	if opts.Reduction == "" {
		opts.Reduction = ReductionDefault
	}
	return opts, nil
}
