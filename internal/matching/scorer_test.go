package matching

import (
	"testing"
	"time"

	"github.com/rizalfahlevi/intern-outreach/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestMatchSkills(t *testing.T) {
	roleText := "We use Python and C++ daily. Digital marketing experience is a plus. Machine learning exposure welcome."

	tests := []struct {
		name   string
		skills []string
		want   []string
	}{
		{name: "whole word", skills: []string{"Python"}, want: []string{"Python"}},
		{name: "symbol skill exact token", skills: []string{"C++"}, want: []string{"C++"}},
		{name: "no hit inside longer word", skills: []string{"Git"}, want: nil},
		{name: "multi word falls back to own words", skills: []string{"machine learning"}, want: []string{"machine learning"}},
		{name: "absent skill", skills: []string{"Rust"}, want: nil},
		{name: "mixed", skills: []string{"Python", "Rust", "C++"}, want: []string{"Python", "C++"}},
		{name: "empty skills", skills: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchSkills(tt.skills, roleText))
		})
	}

	assert.Nil(t, MatchSkills([]string{"Python"}, "   "))
}

func TestMatchLocation(t *testing.T) {
	assert.True(t, MatchLocation("London", "", "London"))
	assert.True(t, MatchLocation("london", "", "London, UK"))
	assert.True(t, MatchLocation("", "Berlin", "Berlin"))
	assert.False(t, MatchLocation("Paris", "", "London"))
	assert.False(t, MatchLocation("", "", "London"))
	assert.False(t, MatchLocation("London", "", ""))
	// Primary wins even when the secondary would match.
	assert.False(t, MatchLocation("Paris", "London", "London"))
}

func TestCandidateWantsRemote(t *testing.T) {
	assert.True(t, CandidateWantsRemote("Remote", ""))
	assert.True(t, CandidateWantsRemote("London", "remote (EU)"))
	assert.False(t, CandidateWantsRemote("London", "Berlin"))
}

func TestRolePolicyModes(t *testing.T) {
	tests := []struct {
		name                   string
		texts                  []string
		remote, office, hybrid bool
	}{
		{name: "remote keyword", texts: []string{"Remote"}, remote: true},
		{name: "yes means remote ok", texts: []string{"yes"}, remote: true},
		{name: "onsite", texts: []string{"on-site"}, office: true},
		{name: "hybrid", texts: []string{"Hybrid, 2 days"}, hybrid: true},
		{name: "flexible", texts: []string{"flexible"}, hybrid: true},
		{name: "nothing detected defaults to office and hybrid", texts: []string{"n/a"}, office: true, hybrid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote, office, hybrid := RolePolicyModes(tt.texts...)
			assert.Equal(t, tt.remote, remote)
			assert.Equal(t, tt.office, office)
			assert.Equal(t, tt.hybrid, hybrid)
		})
	}
}

func TestMatchWorkPolicy(t *testing.T) {
	// Remote candidate needs a remote-supporting role.
	assert.True(t, MatchWorkPolicy(true, true, false, false))
	assert.False(t, MatchWorkPolicy(true, false, true, true))
	// Non-remote candidate matches anything with a mode.
	assert.True(t, MatchWorkPolicy(false, false, true, false))
	assert.True(t, MatchWorkPolicy(false, true, false, false))
	assert.False(t, MatchWorkPolicy(false, false, false, false))
}

func TestStartDatePriority(t *testing.T) {
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	confirmed := model.Deal{Stage: model.DealStageConfirmed, EndDate: &end}

	day := func(d int) *time.Time {
		t := time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	tests := []struct {
		name  string
		start *time.Time
		deals []model.Deal
		want  bool
	}{
		{name: "inside window", start: day(20), deals: []model.Deal{confirmed}, want: true},
		{name: "window start inclusive", start: day(16), deals: []model.Deal{confirmed}, want: true},
		{name: "deal end inclusive", start: day(30), deals: []model.Deal{confirmed}, want: true},
		{name: "before window", start: day(10), deals: []model.Deal{confirmed}, want: false},
		{name: "after deal end", start: &[]time.Time{time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)}[0], deals: []model.Deal{confirmed}, want: false},
		{name: "no candidate start", start: nil, deals: []model.Deal{confirmed}, want: false},
		{name: "unconfirmed stage ignored", start: day(20), deals: []model.Deal{{Stage: "Pending Outcome", EndDate: &end}}, want: false},
		{name: "confirmed without end date ignored", start: day(20), deals: []model.Deal{{Stage: model.DealStageConfirmed}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StartDatePriority(tt.start, tt.deals))
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		in   ScoreInput
		want float64
	}{
		{
			name: "industry one only",
			in:   ScoreInput{Industry1Matches: []string{"Finance"}},
			want: 0.40,
		},
		{
			name: "industry one with rejection penalty",
			in:   ScoreInput{Industry1Matches: []string{"Finance"}, RejectedDeals: 2},
			want: 0.25,
		},
		{
			name: "two skills are a partial skill score",
			in:   ScoreInput{Industry1Matches: []string{"Tech"}, SkillMatches: []string{"Python", "C++"}},
			want: 0.40 + 0.25*2.0/3.0,
		},
		{
			name: "skill score caps at three",
			in:   ScoreInput{SkillMatches: []string{"a", "b", "c", "d", "e"}},
			want: 0.25,
		},
		{
			name: "everything",
			in: ScoreInput{
				Industry1Matches:  []string{"Finance"},
				Industry2Matches:  []string{"Tech"},
				SkillMatches:      []string{"a", "b", "c"},
				StartDatePriority: true,
			},
			want: 1.0,
		},
		{
			name: "penalty clamps at zero",
			in:   ScoreInput{RejectedDeals: 5},
			want: 0.0,
		},
		{
			name: "single rejection is not penalized",
			in:   ScoreInput{Industry1Matches: []string{"Finance"}, RejectedDeals: 1},
			want: 0.40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.in), 1e-9)
		})
	}
}

func TestBuildReason(t *testing.T) {
	in := ScoreInput{
		Industry1Matches: []string{"Finance"},
		Industry2Matches: []string{"Consulting ~ Consultancy"},
		SkillMatches:     []string{"Python", "Excel"},
		RejectedDeals:    2,
	}
	reason := BuildReason(in, true, true)

	assert.Equal(t,
		"Industry 1: Finance; Industry 2: Consulting ~ Consultancy; Skills (2): Python, Excel; Location match; Work policy match; Penalty: 2 rejected deals",
		reason,
	)

	assert.Empty(t, BuildReason(ScoreInput{}, false, false))
}
