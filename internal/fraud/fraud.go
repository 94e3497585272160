// Package fraud screens scholarship content for scam indicators before it
// is published to users.
package fraud

import (
	"fmt"
	"strings"
)

// suspiciousKeywords are phrases common in scam scholarship listings:
// requests for money, unsafe transfer channels, or too-good-to-be-true
// promises.
var suspiciousKeywords = []string{
	"processing fee",
	"application fee",
	"bank account",
	"credit card",
	"western union",
	"moneygram",
	"guaranteed winner",
	"no essay",
	"login credentials",
	"pay to apply",
}

// RiskLevel classifies the outcome of a scan.
type RiskLevel string

const (
	RiskHigh RiskLevel = "HIGH"
	RiskSafe RiskLevel = "SAFE"
)

// Report is the result of screening one scholarship.
type Report struct {
	Suspicious bool      `json:"is_suspicious"`
	Reason     string    `json:"reason"`
	RiskLevel  RiskLevel `json:"risk_level"`
}

// Analyze scans the title and description and reports whether the content
// looks fraudulent.
func Analyze(title, description string) Report {
	fullText := strings.ToLower(title + " " + description)

	var flags []string
	for _, keyword := range suspiciousKeywords {
		if strings.Contains(fullText, keyword) {
			flags = append(flags, keyword)
		}
	}

	if len(flags) > 0 {
		return Report{
			Suspicious: true,
			Reason:     fmt.Sprintf("System detected high-risk keywords: %s", strings.Join(flags, ", ")),
			RiskLevel:  RiskHigh,
		}
	}
	return Report{
		Suspicious: false,
		Reason:     "No suspicious keywords found.",
		RiskLevel:  RiskSafe,
	}
}
