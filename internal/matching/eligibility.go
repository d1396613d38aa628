package matching

import (
	"strconv"
	"strings"
	"time"

	"github.com/rizalfahlevi/intern-outreach/internal/model"
)

const (
	MaxInternRatio = 0.25
	MaxActiveDeals = 3
)

// Exclusion reasons returned by CheckEligibility.
const (
	ReasonDNC           = "dnc"
	ReasonFollowUpDate  = "follow_up_date"
	ReasonEmployeeCount = "employee_count"
	ReasonInternRatio   = "intern_ratio"
	ReasonActiveDeals   = "active_deals"
)

type Exclusion struct {
	Excluded bool
	Reason   string
}

func excluded(reason string) Exclusion {
	return Exclusion{Excluded: true, Reason: reason}
}

// CheckEligibility decides whether a role is poolable. Rules short-
// circuit on the first hit. Missing relationship data (no company, no
// deals) fails open; a missing or non-numeric employee count fails
// closed because the ratio rule cannot be evaluated safely without it.
//
// candidateStart is optional: when set, the confirmed-deal count for
// the ratio rule is restricted to deals whose window contains it (the
// per-candidate recompute path); role-level pre-filtering passes nil.
func CheckEligibility(company *model.Company, deals []model.Deal, asOf time.Time, candidateStart *time.Time) Exclusion {
	if company == nil {
		return Exclusion{}
	}

	if company.IsDNC {
		return excluded(ReasonDNC)
	}

	today := asOf.Truncate(24 * time.Hour)
	if company.FollowUpDate == nil || !company.FollowUpDate.After(today) {
		return excluded(ReasonFollowUpDate)
	}

	confirmed := 0
	for _, d := range deals {
		if !isConfirmedStage(d.Stage) {
			continue
		}
		if candidateStart != nil && !dealWindowContains(d, *candidateStart) {
			continue
		}
		confirmed++
	}
	if confirmed > 0 {
		employees, ok := parseEmployeeCount(company.NoEmployees)
		if !ok {
			return excluded(ReasonEmployeeCount)
		}
		if float64(confirmed)/float64(employees) > MaxInternRatio {
			return excluded(ReasonInternRatio)
		}
	}

	active := 0
	for _, d := range deals {
		if isActivePipelineStage(d.Stage) {
			active++
		}
	}
	if active > MaxActiveDeals {
		return excluded(ReasonActiveDeals)
	}

	return Exclusion{}
}

func dealWindowContains(d model.Deal, t time.Time) bool {
	if d.StartDate == nil || d.EndDate == nil {
		return false
	}
	day := t.Truncate(24 * time.Hour)
	return !day.Before(d.StartDate.Truncate(24*time.Hour)) && !day.After(d.EndDate.Truncate(24*time.Hour))
}

func isActivePipelineStage(stage string) bool {
	s := strings.ToLower(strings.TrimSpace(stage))
	if s == "" {
		return false
	}
	for _, active := range model.ActivePipelineStages {
		a := strings.ToLower(active)
		if s == a || strings.Contains(s, a) {
			return true
		}
	}
	return false
}

// parseEmployeeCount tolerates synced values like "1,200" or "50+" but
// rejects anything without a leading number.
func parseEmployeeCount(raw string) (int, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	var digits strings.Builder
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			break
		}
		digits.WriteRune(r)
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
