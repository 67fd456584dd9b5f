package coverage

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/qualitygate/qualitygate/internal/domain/changeset"
)

type istanbulFile struct {
	Statements map[string]float64    `json:"s"`
	Functions  map[string]float64    `json:"f"`
	FnMap      map[string]istanbulFn `json:"fnMap"`
}

type istanbulFn struct {
	Name *string `json:"name"`
	Loc  struct {
		Start struct {
			Line *int `json:"line"`
		} `json:"start"`
	} `json:"loc"`
}

// Istanbul parses coverage-final.json. Totals are statement counts, not
// lines.
type Istanbul struct{}

func NewIstanbul() *Istanbul { return &Istanbul{} }

func (p *Istanbul) Format() domain.CoverageFormat { return domain.CoverageIstanbul }

func (p *Istanbul) Parse(path string, changes changeset.Set) domain.CoverageReport {
	report := emptyReport()
	f, ok := openReport(domain.CoverageIstanbul, path)
	if !ok {
		return report
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		warnParse(domain.CoverageIstanbul, path, err)
		return report
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		warnParse(domain.CoverageIstanbul, path, err)
		return report
	}

	for _, file := range sortedKeys(doc) {
		if !changes.Contains(file) {
			continue
		}
		var entry istanbulFile
		if err := json.Unmarshal(doc[file], &entry); err != nil {
			continue
		}
		total := len(entry.Statements)
		if total == 0 {
			continue
		}
		covered := 0
		for _, hits := range entry.Statements {
			if hits > 0 {
				covered++
			}
		}
		report.AddFile(file, total, covered)
		report.UncoveredFunctions = append(report.UncoveredFunctions, entry.uncovered(file)...)
	}
	return report
}

func (e istanbulFile) uncovered(file string) []string {
	ids := make([]string, 0, len(e.Functions))
	for id := range e.Functions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return lessID(ids[i], ids[j]) })

	var out []string
	for _, id := range ids {
		if e.Functions[id] != 0 {
			continue
		}
		fn, ok := e.FnMap[id]
		if !ok {
			continue
		}
		name := "anonymous"
		if fn.Name != nil {
			name = *fn.Name
		}
		line := "?"
		if fn.Loc.Start.Line != nil {
			line = strconv.Itoa(*fn.Loc.Start.Line)
		}
		out = append(out, fmt.Sprintf("%s:%s (%s)", file, line, name))
	}
	return out
}

// lessID orders numeric function ids numerically and anything else after
// them lexically.
func lessID(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
