package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/qualitygate/qualitygate/internal/adapters/outbound/changes"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/config"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/coverage"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/discovery"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/duplication"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/gitinfo"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/history"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/lint"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/report"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/runner"
	"github.com/qualitygate/qualitygate/internal/adapters/outbound/testoutput"
	"github.com/qualitygate/qualitygate/internal/application"
	"github.com/qualitygate/qualitygate/internal/domain"
)

// projectFlags are shared by every command that works on a checkout.
type projectFlags struct {
	path         string
	configPath   string
	changedFiles string
	baseRef      string
	timeout      time.Duration
}

func (f *projectFlags) absPath() (string, error) {
	abs, err := filepath.Abs(f.path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

// config defaults to the quality config at the project root.
func (f *projectFlags) config(root string) string {
	if f.configPath != "" {
		return f.configPath
	}
	return filepath.Join(root, config.DefaultFileName)
}

// changes prefers a git diff against --base over the --changed-files list.
func (f *projectFlags) changes(root string) domain.ChangedFilesSource {
	if f.baseRef != "" {
		return changes.NewGitDiff(gitinfo.New(), root, f.baseRef)
	}
	return changes.NewFileList(f.changedFiles)
}

func newServices(root string, timeout time.Duration) *application.ScoreService {
	reports := report.NewJSONWriter()
	tests := application.NewTestService(
		root,
		discovery.New(),
		runner.New(root).WithTimeout(timeout),
		testoutput.NewParser(),
		coverage.NewRegistry(),
	)
	return application.NewScoreService(
		config.New(),
		lint.Parsers,
		duplication.NewJSCPD(),
		reports,
		reports,
		gitinfo.New(),
		history.New(),
		tests,
	)
}
