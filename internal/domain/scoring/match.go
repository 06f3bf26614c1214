package scoring

import (
	"math"
	"strings"
	"unicode"
)

// Blend weights for the job-aware composite. Fixed design constants; changing
// them breaks parity with historically persisted scores.
const (
	skillsWeight  = 0.8
	yearsWeight   = 0.2
	profileWeight = 0.7
	jobWeight     = 0.3

	maxOverlapBoost = 10
)

// NormalizeSkills lowercases, trims and deduplicates while preserving first
// occurrence order.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		n := strings.ToLower(strings.TrimSpace(s))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// SkillOverlap counts the case-insensitive exact-token intersection of two
// skill lists. Both sides are treated as sets, so duplicates never
// double-count.
func SkillOverlap(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, s := range NormalizeSkills(a) {
		set[s] = struct{}{}
	}
	count := 0
	for _, s := range NormalizeSkills(b) {
		if _, ok := set[s]; ok {
			count++
			delete(set, s)
		}
	}
	return count
}

// BoostedScore adds a capped skill-overlap boost to the provider's raw match
// score and clamps the result to [0,100].
func BoostedScore(aiScore int, candidateSkills, requiredSkills []string) int {
	boost := SkillOverlap(candidateSkills, requiredSkills)
	if boost > maxOverlapBoost {
		boost = maxOverlapBoost
	}
	return Clamp(int(math.Round(float64(aiScore)+float64(boost))), 0, 100)
}

// SkillsPct is the share of a job's required skills the profile covers.
func SkillsPct(profileSkills, jobSkills []string) int {
	denom := len(NormalizeSkills(jobSkills))
	if denom < 1 {
		denom = 1
	}
	pct := int(math.Round(100 * float64(SkillOverlap(profileSkills, jobSkills)) / float64(denom)))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// YearsPct saturates at 100 once the candidate meets the requirement. A
// requirement of zero years makes experience stop mattering entirely.
func YearsPct(years, requiredYears int) int {
	if requiredYears <= 0 {
		return 100
	}
	if years > requiredYears {
		years = requiredYears
	}
	if years < 0 {
		years = 0
	}
	pct := int(math.Round(100 * float64(years) / float64(requiredYears)))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// JobMatchScore blends skill coverage with experience coverage.
func JobMatchScore(skillsPct, yearsPct int) int {
	return int(math.Round(skillsWeight*float64(skillsPct) + yearsWeight*float64(yearsPct)))
}

// CompositeScore blends the job-independent profile score with the
// job-specific match, used when ranking candidates against one job.
func CompositeScore(profileScore, jobMatchScore int) int {
	return int(math.Round(profileWeight*float64(profileScore) + jobWeight*float64(jobMatchScore)))
}

// RequiredYears extracts the first integer token from a free-text experience
// requirement ("3+ years" -> 3). No digits means no requirement.
func RequiredYears(s string) int {
	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return atoiSafe(s[start:i])
		}
	}
	if start >= 0 {
		return atoiSafe(s[start:])
	}
	return 0
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return n
		}
		n = n*10 + int(r-'0')
		if n > 1000 {
			return 1000
		}
	}
	return n
}

func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
