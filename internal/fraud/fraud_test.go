package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze_FlagsScamKeywords(t *testing.T) {
	report := Analyze("Guaranteed Winner Scholarship", "Just send a small processing fee to apply.")

	assert.True(t, report.Suspicious)
	assert.Equal(t, RiskHigh, report.RiskLevel)
	assert.Contains(t, report.Reason, "guaranteed winner")
	assert.Contains(t, report.Reason, "processing fee")
}

func TestAnalyze_CaseInsensitive(t *testing.T) {
	report := Analyze("", "Wire the funds via WESTERN UNION today")

	assert.True(t, report.Suspicious)
}

func TestAnalyze_CleanContent(t *testing.T) {
	report := Analyze("Merit Scholarship", "Awarded annually to outstanding computer science students.")

	assert.False(t, report.Suspicious)
	assert.Equal(t, RiskSafe, report.RiskLevel)
}
