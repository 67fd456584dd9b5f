package domain_test

import (
	"testing"

	"github.com/qualitygate/qualitygate/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDetectCoverageFormat(t *testing.T) {
	tests := []struct {
		path string
		want domain.CoverageFormat
	}{
		{"coverage.xml", domain.CoverageCobertura},
		{"reports/COVERAGE.XML", domain.CoverageCobertura},
		{"coverage/lcov.info", domain.CoverageLCOV},
		{"lcov.json", domain.CoverageLCOV},
		{"coverage/coverage-final.json", domain.CoverageIstanbul},
		{"cover.out", domain.CoverageUnknown},
		{"", domain.CoverageUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.DetectCoverageFormat(tt.path), tt.path)
	}
}
