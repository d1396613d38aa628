package matching

import (
	"context"
	"fmt"
	"strings"
)

// FuzzyThreshold is the minimum similarity ratio for a tier-3 industry
// match.
const FuzzyThreshold = 0.70

// TagMatcher pairs role tags with candidate interests. Implementations
// may be semantic (LLM, embeddings); callers must fall back to
// MatchIndustry when a call fails or returns nothing.
type TagMatcher interface {
	MatchTags(ctx context.Context, tags, interests []string) ([]string, error)
}

// MatchIndustry checks one interest bucket against the role tags and
// returns matched-pair descriptions. Tiers apply in order and a lower
// tier runs only when the higher ones produced nothing:
//
//	tier 1: exact (normalized equality)
//	tier 2: substring either way, tag longer than 2 chars
//	tier 3: similarity ratio >= FuzzyThreshold
//
// Exact matches report the interest itself; partial matches report
// "interest ~ tag".
func MatchIndustry(tags, interests []string) []string {
	var matched []string

	for _, interest := range interests {
		ni := strings.ToLower(strings.TrimSpace(interest))
		if ni == "" {
			continue
		}
		for _, tag := range tags {
			nt := strings.ToLower(strings.TrimSpace(tag))
			if nt != "" && nt == ni {
				matched = append(matched, interest)
				break
			}
		}
	}
	if len(matched) > 0 {
		return matched
	}

	for _, interest := range interests {
		ni := strings.ToLower(strings.TrimSpace(interest))
		if ni == "" {
			continue
		}
		for _, tag := range tags {
			nt := strings.ToLower(strings.TrimSpace(tag))
			if len(nt) <= 2 {
				continue
			}
			if strings.Contains(ni, nt) || strings.Contains(nt, ni) {
				matched = append(matched, fmt.Sprintf("%s ~ %s", interest, tag))
				break
			}
		}
	}
	if len(matched) > 0 {
		return matched
	}

	for _, interest := range interests {
		ni := strings.ToLower(strings.TrimSpace(interest))
		if ni == "" {
			continue
		}
		for _, tag := range tags {
			nt := strings.ToLower(strings.TrimSpace(tag))
			if nt == "" {
				continue
			}
			if similarityRatio(ni, nt) >= FuzzyThreshold {
				matched = append(matched, fmt.Sprintf("%s ~ %s", interest, tag))
				break
			}
		}
	}
	return matched
}

// similarityRatio is 2*LCS(a,b) / (len(a)+len(b)), computed over bytes
// of the already lowercased inputs.
func similarityRatio(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[len(b)]
	return 2 * float64(lcs) / float64(len(a)+len(b))
}
