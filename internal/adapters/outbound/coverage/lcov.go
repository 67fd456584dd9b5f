package coverage

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/qualitygate/qualitygate/internal/domain/changeset"
)

// LCOV streams an lcov tracefile. Only records closed by end_of_record are
// counted; malformed DA lines are skipped.
type LCOV struct{}

func NewLCOV() *LCOV { return &LCOV{} }

func (p *LCOV) Format() domain.CoverageFormat { return domain.CoverageLCOV }

func (p *LCOV) Parse(path string, changes changeset.Set) domain.CoverageReport {
	report := emptyReport()
	f, ok := openReport(domain.CoverageLCOV, path)
	if !ok {
		return report
	}
	defer f.Close()

	var (
		current        string
		total, covered int
	)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "SF:"):
			current = line[len("SF:"):]
			total, covered = 0, 0
		case strings.HasPrefix(line, "DA:"):
			hits, ok := parseDA(line[len("DA:"):])
			if !ok {
				continue
			}
			total++
			if hits > 0 {
				covered++
			}
		case line == "end_of_record":
			if current != "" && changes.Contains(current) {
				report.AddFile(current, total, covered)
			}
			current = ""
		}
	}
	if err := sc.Err(); err != nil {
		warnParse(domain.CoverageLCOV, path, err)
	}
	return report
}

// parseDA reads "line,hits[,checksum]".
func parseDA(s string) (int64, bool) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return 0, false
	}
	if _, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64); err != nil {
		return 0, false
	}
	hits, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, false
	}
	return hits, true
}
