package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rizalfahlevi/intern-outreach/internal/model"
)

type MatchDTO struct {
	ID                 uuid.UUID `json:"id"`
	CandidateID        uuid.UUID `json:"candidate_id"`
	RoleID             uuid.UUID `json:"role_id"`
	Score              float64   `json:"score"`
	Industry1Match     bool      `json:"industry1_match"`
	Industry2Match     bool      `json:"industry2_match"`
	SkillMatch         bool      `json:"skill_match"`
	StartDatePriority  bool      `json:"start_date_priority"`
	MatchedIndustries1 []string  `json:"matched_industries1"`
	MatchedIndustries2 []string  `json:"matched_industries2"`
	MatchedSkills      []string  `json:"matched_skills"`
	Reason             string    `json:"reason"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewMatchDTO(m model.Match) MatchDTO {
	return MatchDTO{
		ID:                 m.ID,
		CandidateID:        m.CandidateID,
		RoleID:             m.RoleID,
		Score:              m.Score,
		Industry1Match:     m.Industry1Match,
		Industry2Match:     m.Industry2Match,
		SkillMatch:         m.SkillMatch,
		StartDatePriority:  m.StartDatePriority,
		MatchedIndustries1: decodeList(m.MatchedIndustries1),
		MatchedIndustries2: decodeList(m.MatchedIndustries2),
		MatchedSkills:      decodeList(m.MatchedSkills),
		Reason:             m.Reason,
		UpdatedAt:          m.UpdatedAt,
	}
}

func decodeList(raw string) []string {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []string{}
	}
	return items
}
