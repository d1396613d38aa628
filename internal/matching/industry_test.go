package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchIndustryExactTier(t *testing.T) {
	got := MatchIndustry([]string{"Finance", "Technology"}, []string{"finance"})
	assert.Equal(t, []string{"finance"}, got)
}

func TestMatchIndustryExactBeatsSubstring(t *testing.T) {
	// "Tech" would substring-match "Technology", but the exact hit on
	// "Finance" means tier 2 never runs.
	got := MatchIndustry([]string{"Finance", "Technology"}, []string{"Finance", "Tech"})
	assert.Equal(t, []string{"Finance"}, got)
}

func TestMatchIndustrySubstringTier(t *testing.T) {
	got := MatchIndustry([]string{"Technology"}, []string{"Information Technology"})
	assert.Equal(t, []string{"Information Technology ~ Technology"}, got)
}

func TestMatchIndustrySubstringRejectsShortTags(t *testing.T) {
	// Two-char tags are too noisy for substring matching.
	got := MatchIndustry([]string{"IT"}, []string{"Auditing"})
	assert.Empty(t, got)
}

func TestMatchIndustryFuzzyTier(t *testing.T) {
	got := MatchIndustry([]string{"Finanace"}, []string{"Finance"})
	assert.Equal(t, []string{"Finance ~ Finanace"}, got)
}

func TestMatchIndustryFuzzyBelowThreshold(t *testing.T) {
	got := MatchIndustry([]string{"Marketing"}, []string{"Law"})
	assert.Empty(t, got)
}

func TestMatchIndustryNoInterests(t *testing.T) {
	assert.Empty(t, MatchIndustry([]string{"Finance"}, nil))
	assert.Empty(t, MatchIndustry(nil, []string{"Finance"}))
}

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"finance", "finance", 1.0, 1.0},
		{"finance", "finanace", 0.9, 1.0},
		{"abc", "xyz", 0.0, 0.0},
		{"", "finance", 0.0, 0.0},
	}
	for _, tt := range tests {
		got := similarityRatio(tt.a, tt.b)
		assert.GreaterOrEqual(t, got, tt.min, "similarityRatio(%q, %q)", tt.a, tt.b)
		assert.LessOrEqual(t, got, tt.max, "similarityRatio(%q, %q)", tt.a, tt.b)
	}
}
