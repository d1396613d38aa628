package matching

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rizalfahlevi/intern-outreach/internal/model"
)

// Canonical score weights.
const (
	WeightIndustry1    = 0.40
	WeightIndustry2    = 0.20
	WeightSkills       = 0.25
	WeightStartDate    = 0.15
	RejectedPenalty    = 0.15
	RejectedDealFloor  = 2 // penalty applies from this many rejected deals
	SkillTarget        = 3 // skills needed for a full skill sub-score
	StartDateWindowDay = 14
)

// MatchSkills returns the candidate skills found in the role text.
// Short skills (<= 2 chars) and skills containing "+" or "#" need exact
// token membership so "c++" and "c#" work; longer skills need a
// whole-word hit, falling back to any of their own words (> 3 chars)
// appearing as a token. The word boundary keeps "git" from matching
// inside "digital".
func MatchSkills(skills []string, roleText string) []string {
	if len(skills) == 0 || strings.TrimSpace(roleText) == "" {
		return nil
	}
	tokens := TokenizeWords(roleText)
	lowerText := strings.ToLower(roleText)

	var matched []string
	for _, skill := range skills {
		s := strings.ToLower(strings.TrimSpace(skill))
		if s == "" {
			continue
		}
		if len(s) <= 2 || strings.ContainsAny(s, "+#") {
			if tokens[s] {
				matched = append(matched, skill)
			}
			continue
		}
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(s) + `\b`)
		if err == nil && re.MatchString(lowerText) {
			matched = append(matched, skill)
			continue
		}
		for _, word := range strings.Fields(s) {
			if len(word) > 3 && tokens[word] {
				matched = append(matched, skill)
				break
			}
		}
	}
	return matched
}

// MatchLocation compares the candidate location (primary, else
// secondary) with the role location: equal or either contains the
// other, case-insensitive.
func MatchLocation(primary, secondary, roleLocation string) bool {
	cand := strings.ToLower(strings.TrimSpace(primary))
	if cand == "" {
		cand = strings.ToLower(strings.TrimSpace(secondary))
	}
	role := strings.ToLower(strings.TrimSpace(roleLocation))
	if cand == "" || role == "" {
		return false
	}
	return cand == role || strings.Contains(cand, role) || strings.Contains(role, cand)
}

// CandidateWantsRemote derives the remote flag from the location
// fields.
func CandidateWantsRemote(primary, secondary string) bool {
	return strings.Contains(strings.ToLower(primary), "remote") ||
		strings.Contains(strings.ToLower(secondary), "remote")
}

// RolePolicyModes detects which work modes the role supports from its
// free-text policy fields. Nothing detected defaults to office+hybrid.
func RolePolicyModes(policyTexts ...string) (remote, office, hybrid bool) {
	joined := strings.ToLower(strings.Join(policyTexts, " "))
	if strings.Contains(joined, "remote") || strings.Contains(joined, "yes") || strings.Contains(joined, "true") {
		remote = true
	}
	if strings.Contains(joined, "office") || strings.Contains(joined, "on-site") || strings.Contains(joined, "onsite") {
		office = true
	}
	if strings.Contains(joined, "hybrid") || strings.Contains(joined, "flexible") {
		hybrid = true
	}
	if !remote && !office && !hybrid {
		office, hybrid = true, true
	}
	return remote, office, hybrid
}

// MatchWorkPolicy applies the policy rule: a remote candidate needs a
// remote-supporting role; everyone else matches office, hybrid or
// remote roles.
func MatchWorkPolicy(candidateRemote, roleRemote, roleOffice, roleHybrid bool) bool {
	if candidateRemote {
		return roleRemote
	}
	return roleOffice || roleHybrid || roleRemote
}

// StartDatePriority is true when the candidate wants to start within
// the 14 days before (inclusive) the end of any confirmed deal and not
// after it.
func StartDatePriority(candidateStart *time.Time, deals []model.Deal) bool {
	if candidateStart == nil {
		return false
	}
	start := candidateStart.Truncate(24 * time.Hour)
	for _, d := range deals {
		if !isConfirmedStage(d.Stage) || d.EndDate == nil {
			continue
		}
		end := d.EndDate.Truncate(24 * time.Hour)
		windowStart := end.AddDate(0, 0, -StartDateWindowDay)
		if !start.Before(windowStart) && !start.After(end) {
			return true
		}
	}
	return false
}

func isConfirmedStage(stage string) bool {
	return strings.Contains(strings.ToLower(stage), strings.ToLower(model.DealStageConfirmed))
}

// ScoreInput carries the sub-match results feeding the final score.
type ScoreInput struct {
	Industry1Matches  []string
	Industry2Matches  []string
	SkillMatches      []string
	StartDatePriority bool
	RejectedDeals     int
}

// Score combines sub-matches into one bounded value. Industry
// relevance is a hard gate handled by the caller: inputs with no
// industry match in either bucket never reach storage.
func Score(in ScoreInput) float64 {
	score := 0.0
	if len(in.Industry1Matches) > 0 {
		score += WeightIndustry1
	}
	if len(in.Industry2Matches) > 0 {
		score += WeightIndustry2
	}
	skillRatio := float64(len(in.SkillMatches)) / float64(SkillTarget)
	if skillRatio > 1 {
		skillRatio = 1
	}
	score += WeightSkills * skillRatio
	if in.StartDatePriority {
		score += WeightStartDate
	}
	if in.RejectedDeals >= RejectedDealFloor {
		score -= RejectedPenalty
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// BuildReason renders the human-readable explanation stored with a
// match.
func BuildReason(in ScoreInput, locationMatch, policyMatch bool) string {
	var parts []string
	if len(in.Industry1Matches) > 0 {
		parts = append(parts, "Industry 1: "+strings.Join(in.Industry1Matches, ", "))
	}
	if len(in.Industry2Matches) > 0 {
		parts = append(parts, "Industry 2: "+strings.Join(in.Industry2Matches, ", "))
	}
	if len(in.SkillMatches) > 0 {
		parts = append(parts, fmt.Sprintf("Skills (%d): %s", len(in.SkillMatches), strings.Join(in.SkillMatches, ", ")))
	}
	if locationMatch {
		parts = append(parts, "Location match")
	}
	if policyMatch {
		parts = append(parts, "Work policy match")
	}
	if in.StartDatePriority {
		parts = append(parts, "Start date priority")
	}
	if in.RejectedDeals >= RejectedDealFloor {
		parts = append(parts, fmt.Sprintf("Penalty: %d rejected deals", in.RejectedDeals))
	}
	return strings.Join(parts, "; ")
}
