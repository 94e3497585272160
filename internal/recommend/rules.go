package recommend

import (
	"fmt"
	"strings"
	"time"
)

// Point values for the rule ledger. Scoring is additive: each rule
// contributes its points independently and the sum is clamped at the end.
const (
	pointsMastersPathway  = 30
	pointsPhDPathway      = 35
	pointsSameLevel       = 10
	pointsFieldMatch      = 25
	pointsSpecialization  = 15
	pointsPreferredState  = 20
	pointsTopDestination  = 10
	pointsCGPAMet         = 15
	penaltyCGPABelow      = 50
	pointsFullyFunded     = 20
	pointsFundingCovers   = 15
	pointsDeadlineWindow  = 10
	defaultTuitionUSD     = 30000
	deadlineWindowMinDays = 30
	deadlineWindowMaxDays = 180

	// maxReasons caps the explanation list. Reasons are kept in rule
	// evaluation order, so an early low-weight reason can displace a later
	// high-weight one. Product has not confirmed a weight ordering, so the
	// original behavior stands. See DESIGN.md.
	maxReasons = 4
)

// topDestinations are countries that earn partial credit when the candidate
// is outside the user's preferred list.
var topDestinations = map[string]bool{
	"United Kingdom": true,
	"USA":            true,
	"Canada":         true,
	"Germany":        true,
	"Australia":      true,
}

// ScoreCandidate scores a single scholarship against a profile using the
// rule ledger. It is a pure function of its inputs and the current time, and
// never fails: missing candidate fields simply skip their rules.
func ScoreCandidate(profile UserProfile, c Candidate) ScoredResult {
	return scoreCandidateAt(profile, c, time.Now().UTC())
}

func scoreCandidateAt(profile UserProfile, c Candidate, now time.Time) ScoredResult {
	points := 0
	eligibility := EligibilityEligible
	var reasons []string

	// 1. Degree pathway
	switch {
	case profile.HighestDegree == "Bachelor's" && strings.Contains(c.DegreeLevel, "Master"):
		points += pointsMastersPathway
		reasons = append(reasons, "Ideal Master's pathway for your Bachelor's degree.")
	case strings.Contains(profile.HighestDegree, "Master") && strings.Contains(c.DegreeLevel, "PhD"):
		points += pointsPhDPathway
		reasons = append(reasons, "Perfect PhD progression for your Master's background.")
	case profile.HighestDegree == c.DegreeLevel:
		points += pointsSameLevel
		reasons = append(reasons, "Matches your current academic level.")
	default:
		eligibility = EligibilityBorderline
		reasons = append(reasons, "Degree level might not be the standard next step.")
	}

	// 2. Field of study
	userField := strings.ToLower(profile.FieldOfStudy)
	candField := strings.ToLower(c.FieldOfStudy)
	switch {
	case userField != "" && candField != "" &&
		(strings.Contains(candField, userField) || strings.Contains(userField, candField)):
		points += pointsFieldMatch
		reasons = append(reasons, fmt.Sprintf("Strong match for your %s background.", profile.FieldOfStudy))
	case profile.Specialization != "" &&
		strings.Contains(strings.ToLower(c.Description), strings.ToLower(profile.Specialization)):
		points += pointsSpecialization
		reasons = append(reasons, fmt.Sprintf("Matches your specialization in %s.", profile.Specialization))
	default:
		reasons = append(reasons, "Field of study is slightly different but possibly related.")
	}

	// 3. Country preference
	if containsString(profile.PreferredCountries, c.Country) {
		points += pointsPreferredState
		reasons = append(reasons, fmt.Sprintf("Located in one of your preferred countries: %s.", c.Country))
	} else if topDestinations[c.Country] {
		points += pointsTopDestination
		reasons = append(reasons, fmt.Sprintf("Located in a top global destination (%s).", c.Country))
	}

	// 4. CGPA gate. Falling below the minimum is a hard constraint: it both
	// deducts points and forces eligibility, independently of the score.
	if c.MinCGPA != nil {
		if profile.CGPA < *c.MinCGPA {
			eligibility = EligibilityNotEligible
			points -= penaltyCGPABelow
			reasons = append(reasons, "Your CGPA is below the minimum required.")
		} else {
			points += pointsCGPAMet
			reasons = append(reasons, "Your CGPA meets the eligibility criteria.")
		}
	}

	// 5. Funding vs budget
	if strings.Contains(strings.ToLower(c.FundingType), "fully funded") {
		points += pointsFullyFunded
		reasons = append(reasons, "Fully funded: Covers tuition and likely more.")
	} else if c.FundingAmount != nil && profile.BudgetPerYearUSD > 0 {
		tuition := float64(defaultTuitionUSD)
		if c.TuitionAmount != nil {
			tuition = *c.TuitionAmount
		}
		if *c.FundingAmount >= tuition-profile.BudgetPerYearUSD {
			points += pointsFundingCovers
			reasons = append(reasons, "Scholarship makes this university affordable within your budget.")
		}
	}

	// 6. Deadline window. A passed deadline is a hard constraint like the
	// CGPA gate, but carries no point penalty.
	if c.Deadline != nil {
		if c.Deadline.Before(now) {
			eligibility = EligibilityNotEligible
			reasons = append(reasons, "Application deadline has passed.")
		} else {
			daysLeft := int(c.Deadline.Sub(now).Hours() / 24)
			if daysLeft >= deadlineWindowMinDays && daysLeft <= deadlineWindowMaxDays {
				points += pointsDeadlineWindow
				reasons = append(reasons, "Optimal application window (1-6 months left).")
			}
		}
	}

	return ScoredResult{
		CandidateID: c.ID,
		Score:       clampScore(float64(points)),
		Eligibility: eligibility,
		Reasons:     truncateReasons(reasons),
	}
}

// clampScore bounds a raw ledger total to [0, 100].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func truncateReasons(reasons []string) []string {
	if len(reasons) > maxReasons {
		return reasons[:maxReasons]
	}
	return reasons
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
