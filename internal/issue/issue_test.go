package issue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityRank(t *testing.T) {
	assert.Greater(t, SeverityHigh.Rank(), SeverityMedium.Rank())
	assert.Greater(t, SeverityMedium.Rank(), SeverityLow.Rank())
	assert.Equal(t, 0, Severity("bogus").Rank())
}

func TestNormalizeSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"HIGH", SeverityHigh},
		{"high", SeverityHigh},
		{"Low", SeverityLow},
		{"MEDIUM", SeverityMedium},
		{"", SeverityMedium},
		{"critical", SeverityMedium},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSeverity(tt.in), "input %q", tt.in)
	}
}

func TestMeetsThreshold(t *testing.T) {
	assert.True(t, MeetsThreshold(SeverityHigh, "medium"))
	assert.True(t, MeetsThreshold(SeverityMedium, "medium"))
	assert.False(t, MeetsThreshold(SeverityLow, "medium"))
	assert.False(t, MeetsThreshold(SeverityHigh, "none"))
	assert.False(t, MeetsThreshold(SeverityHigh, ""))
}
