package recommend

import (
	"math"
	"sort"
	"strings"
)

// RankBySimilarity scores candidates by term-frequency-inverse-document-
// frequency similarity between the profile's interest tags and each
// candidate's text fields, after a hard degree-level filter.
//
// The IDF weights are computed over the profile tag plus the current
// filtered batch, so the score for the same (profile, candidate) pair shifts
// with the batch. That is the contract: this is a function of
// (profile, batch) and its output must never be cached keyed on the profile
// alone.
//
// An empty filtered set returns an empty list; there is no fallback to the
// unfiltered candidates.
func RankBySimilarity(profile UserProfile, candidates []Candidate) []SimilarityResult {
	filtered := filterByTargetDegree(profile, candidates)
	if len(filtered) == 0 {
		return []SimilarityResult{}
	}

	// Field term appears twice so it outweighs the specialization.
	profileTag := cleanText(profile.FieldOfStudy + " " + profile.Specialization + " " + profile.FieldOfStudy)

	docs := make([][]string, 0, len(filtered)+1)
	docs = append(docs, tokenize(profileTag))
	for _, c := range filtered {
		tag := cleanText(c.Title + " " + c.Description + " " + c.FieldOfStudy)
		docs = append(docs, tokenize(tag))
	}

	vectors := tfidfVectors(docs)

	results := make([]SimilarityResult, 0, len(filtered))
	for i, c := range filtered {
		sim := cosineSimilarity(vectors[0], vectors[i+1])
		results = append(results, SimilarityResult{
			CandidateID: c.ID,
			Score:       math.Round(sim*100*10) / 10,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// TargetDegreeLevel maps the profile's completed degree to the level the
// user should be applying for: Bachelor's holders target Master's programs,
// Master's holders target PhDs, anything else filters on the same level.
// Callers pre-filtering candidates in SQL use the same mapping so the batch
// handed to RankBySimilarity is already roughly on-level.
func TargetDegreeLevel(profile UserProfile) string {
	degree := strings.ToLower(profile.HighestDegree)
	switch {
	case strings.Contains(degree, "bachelor"):
		return "master"
	case strings.Contains(degree, "master"):
		return "phd"
	default:
		return degree
	}
}

func filterByTargetDegree(profile UserProfile, candidates []Candidate) []Candidate {
	target := TargetDegreeLevel(profile)
	if target == "" {
		return candidates
	}
	var filtered []Candidate
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.DegreeLevel), target) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// cleanText lowercases and strips everything but letters, digits and spaces.
func cleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '\t', r == '\n':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func tokenize(text string) []string {
	var tokens []string
	for _, tok := range strings.Fields(text) {
		if !stopWords[tok] {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// tfidfVectors builds one sparse tf-idf vector per document. IDF uses the
// smoothed form ln((1+n)/(1+df)) + 1 so terms present in every document
// still carry a small weight.
func tfidfVectors(docs [][]string) []map[string]float64 {
	df := make(map[string]int)
	termCounts := make([]map[string]int, len(docs))
	for i, doc := range docs {
		counts := make(map[string]int)
		for _, tok := range doc {
			counts[tok]++
		}
		termCounts[i] = counts
		for term := range counts {
			df[term]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}

	vectors := make([]map[string]float64, len(docs))
	for i, counts := range termCounts {
		vec := make(map[string]float64, len(counts))
		for term, tf := range counts {
			vec[term] = float64(tf) * idf[term]
		}
		vectors[i] = vec
	}
	return vectors
}

func cosineSimilarity(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for term, wa := range a {
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
		normA += wa * wa
	}
	for _, wb := range b {
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
