package domain

import "strings"

// Composite score weights for job matching.
const (
	WeightSemantic   = 0.5
	WeightSkills     = 0.3
	WeightExperience = 0.2
)

// ScoreEpsilon is the width of a scoring tie. Scores closer than this are
// considered equal and ordered by ascending document id instead, which keeps
// result ordering reproducible regardless of input iteration order.
const ScoreEpsilon = 1e-4

// RankLess reports whether result A ranks before result B: descending by
// score, ties within ScoreEpsilon broken by ascending id.
func RankLess(scoreA, scoreB float64, idA, idB string) bool {
	diff := scoreA - scoreB
	if diff < ScoreEpsilon && diff > -ScoreEpsilon {
		return idA < idB
	}
	return scoreA > scoreB
}

// MatchTerms splits required terms into matched and missing against candidate
// terms. A required term is matched when any candidate term contains it as a
// case-insensitive substring (asymmetric containment). Matched preserves the
// order of required.
func MatchTerms(required, candidate []string) (matched, missing []string) {
	lowered := make([]string, len(candidate))
	for i, c := range candidate {
		lowered[i] = strings.ToLower(c)
	}

	for _, req := range required {
		want := strings.ToLower(req)
		found := false
		for _, have := range lowered {
			if strings.Contains(have, want) {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, req)
		} else {
			missing = append(missing, req)
		}
	}
	return matched, missing
}

// SkillsScore is the fraction of required skills matched, or 0 when no skills
// are required.
func SkillsScore(matchedCount, requiredCount int) float64 {
	if requiredCount == 0 {
		return 0
	}
	return float64(matchedCount) / float64(requiredCount)
}

// ExperienceScore scores candidate experience against a minimum-years
// requirement. The number of experience entries stands in for years of
// experience; actual year spans are not computed. With no minimum, any
// experience at all scores 1.
func ExperienceScore(minYears float64, entryCount int) float64 {
	if minYears > 0 {
		score := float64(entryCount) / minYears
		if score > 1 {
			return 1
		}
		return score
	}
	if entryCount > 0 {
		return 1
	}
	return 0
}

// CompositeScore blends the three match signals with the fixed weights.
func CompositeScore(semantic, skills, experience float64) float64 {
	return semantic*WeightSemantic + skills*WeightSkills + experience*WeightExperience
}

// MissingRequirement lists required items of one category that no candidate
// item matched. Only non-empty categories are reported.
type MissingRequirement struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}
