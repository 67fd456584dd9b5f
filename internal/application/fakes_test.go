package application_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/qualitygate/qualitygate/internal/domain"
)

// fakeRunner answers commands from a table and records every call.
type fakeRunner struct {
	results map[string]domain.CommandResult
	errs    map[string]error
	calls   []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		results: map[string]domain.CommandResult{},
		errs:    map[string]error{},
	}
}

func (r *fakeRunner) Run(_ context.Context, command string) (domain.CommandResult, error) {
	r.calls = append(r.calls, command)
	if err, ok := r.errs[command]; ok {
		return domain.CommandResult{TimedOut: true}, err
	}
	if res, ok := r.results[command]; ok {
		return res, nil
	}
	return domain.CommandResult{ExitCode: 127, Stderr: fmt.Sprintf("sh: %s: not found", command)}, nil
}

type fakeDiscoverer struct {
	presence domain.TestPresence
}

func (d fakeDiscoverer) Discover(string) domain.TestPresence { return d.presence }

type staticChanges []string

func (c staticChanges) ChangedFiles() ([]string, error) { return c, nil }

type brokenChanges struct{}

func (brokenChanges) ChangedFiles() ([]string, error) { return nil, errors.New("boom") }

type fakeGit struct {
	repo bool
	hash string
}

func (g fakeGit) IsGitRepo(string) bool                         { return g.repo }
func (g fakeGit) CommitHash(string) (string, error)             { return g.hash, nil }
func (g fakeGit) ChangedFiles(string, string) ([]string, error) { return nil, nil }

type failingWriter struct{}

func (failingWriter) Write(string, any) error { return errors.New("disk full") }
