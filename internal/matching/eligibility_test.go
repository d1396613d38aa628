package matching

import (
	"testing"
	"time"

	"github.com/rizalfahlevi/intern-outreach/internal/model"
	"github.com/stretchr/testify/assert"
)

var asOf = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func eligibleCompany() *model.Company {
	future := asOf.AddDate(0, 1, 0)
	return &model.Company{
		Name:         "Acme",
		NoEmployees:  "40",
		FollowUpDate: &future,
	}
}

func TestCheckEligibilityFailsOpenOnMissingCompany(t *testing.T) {
	ex := CheckEligibility(nil, nil, asOf, nil)
	assert.False(t, ex.Excluded)
}

func TestCheckEligibilityDNC(t *testing.T) {
	company := eligibleCompany()
	company.IsDNC = true
	ex := CheckEligibility(company, nil, asOf, nil)
	assert.True(t, ex.Excluded)
	assert.Equal(t, ReasonDNC, ex.Reason)
}

func TestCheckEligibilityFollowUpDate(t *testing.T) {
	tests := []struct {
		name     string
		date     *time.Time
		excluded bool
	}{
		{name: "missing date", date: nil, excluded: true},
		{name: "yesterday", date: &[]time.Time{asOf.AddDate(0, 0, -1)}[0], excluded: true},
		{name: "today", date: &[]time.Time{asOf.Truncate(24 * time.Hour)}[0], excluded: true},
		{name: "tomorrow", date: &[]time.Time{asOf.AddDate(0, 0, 1)}[0], excluded: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			company := eligibleCompany()
			company.FollowUpDate = tt.date
			ex := CheckEligibility(company, nil, asOf, nil)
			assert.Equal(t, tt.excluded, ex.Excluded)
			if tt.excluded {
				assert.Equal(t, ReasonFollowUpDate, ex.Reason)
			}
		})
	}
}

func TestCheckEligibilityInternRatio(t *testing.T) {
	company := eligibleCompany()
	company.NoEmployees = "4"
	deals := []model.Deal{
		{Stage: model.DealStageConfirmed},
		{Stage: model.DealStageConfirmed},
	}
	ex := CheckEligibility(company, deals, asOf, nil)
	assert.True(t, ex.Excluded)
	assert.Equal(t, ReasonInternRatio, ex.Reason)

	// A larger company absorbs the same confirmed count.
	company.NoEmployees = "1,200"
	ex = CheckEligibility(company, deals, asOf, nil)
	assert.False(t, ex.Excluded)
}

func TestCheckEligibilityEmployeeCountFailsClosed(t *testing.T) {
	company := eligibleCompany()
	company.NoEmployees = "unknown"
	deals := []model.Deal{{Stage: model.DealStageConfirmed}}

	ex := CheckEligibility(company, deals, asOf, nil)
	assert.True(t, ex.Excluded)
	assert.Equal(t, ReasonEmployeeCount, ex.Reason)

	// Without confirmed deals the ratio rule never runs, so a broken
	// employee field does not exclude on its own.
	ex = CheckEligibility(company, nil, asOf, nil)
	assert.False(t, ex.Excluded)
}

func TestCheckEligibilityCandidateStartNarrowsConfirmedDeals(t *testing.T) {
	company := eligibleCompany()
	company.NoEmployees = "unknown"

	dealStart := asOf.AddDate(0, 2, 0)
	dealEnd := asOf.AddDate(0, 5, 0)
	deals := []model.Deal{{Stage: model.DealStageConfirmed, StartDate: &dealStart, EndDate: &dealEnd}}

	// Candidate starts outside the deal window: the deal does not count
	// toward the ratio and the broken employee field stays irrelevant.
	outside := asOf.AddDate(1, 0, 0)
	ex := CheckEligibility(company, deals, asOf, &outside)
	assert.False(t, ex.Excluded)

	inside := asOf.AddDate(0, 3, 0)
	ex = CheckEligibility(company, deals, asOf, &inside)
	assert.True(t, ex.Excluded)
	assert.Equal(t, ReasonEmployeeCount, ex.Reason)
}

func TestCheckEligibilityActiveDeals(t *testing.T) {
	company := eligibleCompany()
	deals := []model.Deal{
		{Stage: "Scheduling Interview"},
		{Stage: "Pending Interview"},
		{Stage: "Rescheduling Interview"},
		{Stage: "Pending Outcome"},
	}
	ex := CheckEligibility(company, deals, asOf, nil)
	assert.True(t, ex.Excluded)
	assert.Equal(t, ReasonActiveDeals, ex.Reason)

	ex = CheckEligibility(company, deals[:3], asOf, nil)
	assert.False(t, ex.Excluded)
}

func TestCheckEligibilityDNCFlipIsMonotonic(t *testing.T) {
	company := eligibleCompany()
	assert.False(t, CheckEligibility(company, nil, asOf, nil).Excluded)

	company.IsDNC = true
	assert.True(t, CheckEligibility(company, nil, asOf, nil).Excluded)
}

func TestParseEmployeeCount(t *testing.T) {
	tests := []struct {
		raw string
		n   int
		ok  bool
	}{
		{"40", 40, true},
		{"1,200", 1200, true},
		{"50+", 50, true},
		{" 10 ", 10, true},
		{"unknown", 0, false},
		{"", 0, false},
		{"0", 0, false},
		{"~30", 0, false},
	}
	for _, tt := range tests {
		n, ok := parseEmployeeCount(tt.raw)
		assert.Equal(t, tt.ok, ok, "parseEmployeeCount(%q)", tt.raw)
		assert.Equal(t, tt.n, n, "parseEmployeeCount(%q)", tt.raw)
	}
}
