package recommend

import "strings"

// defaultMinCGPA stands in for an institution's minimum requirement when the
// candidate carries none, so the gap feature stays defined.
const defaultMinCGPA = 3.0

// Features are the engineered inputs for the external match model. The
// layout of Vector must stay in sync with the model's training set:
// [degree_path_match, field_match_score, country_match, cgpa_gap].
type Features struct {
	DegreePathway float32 // 1 when the candidate is the standard next step
	FieldMatch    float32 // 1.0 on a field substring match, 0.5 otherwise
	CountryMatch  float32 // 1 when the candidate country is preferred
	CGPAGap       float32 // profile CGPA minus the candidate's minimum
}

// ExtractFeatures derives the model features from a (profile, candidate)
// pair. Like the rule scorer it never fails; absent fields fall back to
// documented defaults.
func ExtractFeatures(profile UserProfile, c Candidate) Features {
	var f Features

	if profile.HighestDegree == "Bachelor's" && strings.Contains(c.DegreeLevel, "Master") {
		f.DegreePathway = 1
	}

	f.FieldMatch = 0.5
	userField := strings.ToLower(profile.FieldOfStudy)
	if userField != "" && strings.Contains(strings.ToLower(c.FieldOfStudy), userField) {
		f.FieldMatch = 1.0
	}

	if containsString(profile.PreferredCountries, c.Country) {
		f.CountryMatch = 1
	}

	minCGPA := defaultMinCGPA
	if c.MinCGPA != nil {
		minCGPA = *c.MinCGPA
	}
	f.CGPAGap = float32(profile.CGPA - minCGPA)

	return f
}

// Vector returns the features in the fixed order the match model expects.
func (f Features) Vector() []float32 {
	return []float32{f.DegreePathway, f.FieldMatch, f.CountryMatch, f.CGPAGap}
}
