package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/qualitygate/qualitygate/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the quality config looked up when no path is given.
const DefaultFileName = ".quality.yaml"

// document mirrors the YAML layout. The tests section is decoded through
// yaml.Node so toolchain maps keep the order they were written in.
type document struct {
	domain.QualityConfig `yaml:",inline"`
	Tests                rawTests `yaml:"tests"`
}

type rawTests struct {
	Enabled       bool      `yaml:"enabled"`
	Setup         []string  `yaml:"setup"`
	Command       string    `yaml:"command"`
	Commands      yaml.Node `yaml:"commands"`
	CoverageFile  string    `yaml:"coverage_file"`
	CoverageFiles yaml.Node `yaml:"coverage_files"`
	JUnitFiles    yaml.Node `yaml:"junit_files"`
}

// YAMLLoader implements domain.ConfigLoader by reading a quality config file.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the config at path. A missing file, a malformed document and
// an invalid one all yield DefaultConfig; only the latter two are logged.
func (l *YAMLLoader) Load(path string) domain.QualityConfig {
	if path == "" {
		return domain.DefaultConfig()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("quality config not found, using defaults", "file", path)
		} else {
			slog.Warn("reading quality config, using defaults", "file", path, "error", err)
		}
		return domain.DefaultConfig()
	}

	cfg, err := Parse(data)
	if err != nil {
		slog.Warn("ignoring quality config", "file", path, "error", err)
		return domain.DefaultConfig()
	}
	return cfg
}

// Parse decodes and validates a quality config document.
func Parse(data []byte) (domain.QualityConfig, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.QualityConfig{}, fmt.Errorf("parsing quality config: %w", err)
	}

	cfg := doc.QualityConfig
	cfg.Tests = domain.TestsConfig{
		Enabled:      doc.Tests.Enabled,
		Setup:        doc.Tests.Setup,
		Command:      doc.Tests.Command,
		CoverageFile: doc.Tests.CoverageFile,
	}

	var err error
	if cfg.Tests.Commands, err = orderedMap("tests.commands", &doc.Tests.Commands); err != nil {
		return domain.QualityConfig{}, err
	}
	if cfg.Tests.CoverageFiles, err = orderedMap("tests.coverage_files", &doc.Tests.CoverageFiles); err != nil {
		return domain.QualityConfig{}, err
	}
	if cfg.Tests.JUnitFiles, err = orderedMap("tests.junit_files", &doc.Tests.JUnitFiles); err != nil {
		return domain.QualityConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		return domain.QualityConfig{}, fmt.Errorf("invalid quality config: %w", err)
	}
	return cfg, nil
}

// orderedMap flattens a mapping of scalars into name/value pairs in
// document order. An absent or null key yields nil.
func orderedMap(key string, n *yaml.Node) ([]domain.NamedValue, error) {
	if n.Kind == 0 || n.ShortTag() == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s must be a mapping of toolchain to value (line %d)", key, n.Line)
	}
	out := make([]domain.NamedValue, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%s.%s must be a string (line %d)", key, k.Value, v.Line)
		}
		out = append(out, domain.NamedValue{Name: k.Value, Value: v.Value})
	}
	return out, nil
}
