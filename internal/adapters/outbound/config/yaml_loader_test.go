package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/qualitygate/qualitygate/internal/adapters/outbound/config"
	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), appconfig.DefaultFileName)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	loader := appconfig.New()

	assert.Equal(t, domain.DefaultConfig(), loader.Load(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Equal(t, domain.DefaultConfig(), loader.Load(""))
}

func TestYAMLLoader_FullDocument(t *testing.T) {
	p := writeConfig(t, `
threshold: 80
tests:
  enabled: true
  setup:
    - pip install -r requirements.txt
    - npm ci
  commands:
    python: pytest -q
    js: npx jest --json
    go: go test -json ./...
  coverage_file: coverage.xml
  coverage_files:
    js: coverage/coverage-final.json
    go: lcov.info
  junit_files:
    python: junit.xml
e2e:
  required: true
lint:
  complexity_rules:
    ruff: [C901, PLR0913]
scoring:
  smell_penalty: 2
  duplication_weight: 0.5
`)

	cfg := appconfig.New().Load(p)

	require.NotNil(t, cfg.Threshold)
	assert.Equal(t, 80, *cfg.Threshold)
	assert.True(t, cfg.Tests.Enabled)
	assert.Equal(t, []string{"pip install -r requirements.txt", "npm ci"}, cfg.Tests.Setup)
	assert.Equal(t, []domain.NamedValue{
		{Name: "python", Value: "pytest -q"},
		{Name: "js", Value: "npx jest --json"},
		{Name: "go", Value: "go test -json ./..."},
	}, cfg.Tests.Commands, "document order is preserved")
	assert.Equal(t, "coverage.xml", cfg.Tests.CoverageFile)
	assert.Equal(t, "lcov.info", cfg.Tests.CoverageFiles[1].Value)
	assert.Equal(t, "junit.xml", cfg.Tests.JUnitFile("python"))
	assert.Equal(t, "", cfg.Tests.JUnitFile("js"))
	assert.True(t, cfg.E2E.Required)
	assert.Equal(t, []string{"C901", "PLR0913"}, cfg.Lint.ComplexityRules["ruff"])
	require.NotNil(t, cfg.Scoring)
	assert.Equal(t, 2, *cfg.Scoring.SmellPenalty)
	assert.InDelta(t, 0.5, *cfg.Scoring.DuplicationWeight, 1e-9)
	assert.Nil(t, cfg.Scoring.ComplexityPenalty)
}

func TestYAMLLoader_SingleCommand(t *testing.T) {
	p := writeConfig(t, "tests:\n  enabled: true\n  command: make test\n")

	cfg := appconfig.New().Load(p)
	assert.Equal(t, "make test", cfg.Tests.Command)
	assert.Nil(t, cfg.Tests.Commands)
	assert.Nil(t, cfg.Threshold)
}

func TestYAMLLoader_MalformedDegradesToDefaults(t *testing.T) {
	for name, content := range map[string]string{
		"syntax":           `{{{invalid yaml`,
		"commands as list": "tests:\n  commands: [pytest]\n",
		"nested command":   "tests:\n  commands:\n    python: {run: pytest}\n",
		"threshold range":  "threshold: 140\n",
		"unknown tool":     "lint:\n  complexity_rules:\n    pylint: [R0915]\n",
		"negative penalty": "scoring:\n  complexity_penalty: -1\n",
		"empty command":    "tests:\n  commands:\n    python: \"\"\n",
	} {
		t.Run(name, func(t *testing.T) {
			cfg := appconfig.New().Load(writeConfig(t, content))
			assert.Equal(t, domain.DefaultConfig(), cfg)
			assert.False(t, cfg.Tests.Enabled)
		})
	}
}

func TestParse_ReportsErrors(t *testing.T) {
	_, err := appconfig.Parse([]byte(`{{{`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing quality config")

	_, err = appconfig.Parse([]byte("threshold: -5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid quality config")
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := appconfig.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestParse_NullMapIsAbsent(t *testing.T) {
	cfg, err := appconfig.Parse([]byte("tests:\n  commands: ~\n"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Tests.Commands)
}
