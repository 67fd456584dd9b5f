package coverage

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/qualitygate/qualitygate/internal/domain/changeset"
)

type coberturaDoc struct {
	Packages []coberturaPackage `xml:"packages>package"`
}

type coberturaPackage struct {
	Classes []coberturaClass `xml:"classes>class"`
}

type coberturaClass struct {
	Filename string            `xml:"filename,attr"`
	Methods  []coberturaMethod `xml:"methods>method"`
	Lines    []coberturaLine   `xml:"lines>line"`
}

type coberturaMethod struct {
	Name  string          `xml:"name,attr"`
	Line  string          `xml:"line,attr"`
	Lines []coberturaLine `xml:"lines>line"`
}

type coberturaLine struct {
	Number string `xml:"number,attr"`
	Hits   string `xml:"hits,attr"`
}

// hits returns the hit count, treating absent or non-numeric values as zero.
func (l coberturaLine) hits() int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(l.Hits), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Cobertura parses Cobertura XML as written by coverage.py, gcovr and
// JaCoCo converters.
type Cobertura struct{}

func NewCobertura() *Cobertura { return &Cobertura{} }

func (p *Cobertura) Format() domain.CoverageFormat { return domain.CoverageCobertura }

func (p *Cobertura) Parse(path string, changes changeset.Set) domain.CoverageReport {
	report := emptyReport()
	f, ok := openReport(domain.CoverageCobertura, path)
	if !ok {
		return report
	}
	defer f.Close()

	var doc coberturaDoc
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		warnParse(domain.CoverageCobertura, path, err)
		return report
	}

	for _, pkg := range doc.Packages {
		for _, cls := range pkg.Classes {
			if !changes.Contains(cls.Filename) {
				continue
			}
			total, covered := cls.lineCounts()
			if total == 0 {
				continue
			}
			report.AddFile(cls.Filename, total, covered)
			for _, m := range cls.Methods {
				if m.hasUncoveredLine() {
					report.UncoveredFunctions = append(report.UncoveredFunctions, m.describe(cls.Filename))
				}
			}
		}
	}
	return report
}

// lineCounts counts every <line> element under the class, class-level and
// method-level alike. Writers that repeat method lines at class level count
// those lines twice.
func (c coberturaClass) lineCounts() (total, covered int) {
	count := func(lines []coberturaLine) {
		for _, l := range lines {
			total++
			if l.hits() > 0 {
				covered++
			}
		}
	}
	count(c.Lines)
	for _, m := range c.Methods {
		count(m.Lines)
	}
	return total, covered
}

func (m coberturaMethod) hasUncoveredLine() bool {
	for _, l := range m.Lines {
		if l.hits() == 0 {
			return true
		}
	}
	return false
}

func (m coberturaMethod) describe(file string) string {
	line := m.Line
	if line == "" {
		line = "?"
	}
	return fmt.Sprintf("%s:%s (%s)", file, line, m.Name)
}
