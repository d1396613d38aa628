package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MatchStatusActive     = "active"
	MatchStatusSuperseded = "superseded"
)

// Match holds the latest compatibility result for a (candidate, role)
// pair. Recomputing a candidate replaces all of their active rows in one
// transaction, so at most one active row exists per pair.
type Match struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CandidateID        uuid.UUID `gorm:"type:uuid;index:idx_matches_candidate" json:"candidate_id"`
	RoleID             uuid.UUID `gorm:"type:uuid;index" json:"role_id"`
	Score              float64   `json:"score"`
	Industry1Match     bool      `json:"industry1_match"`
	Industry2Match     bool      `json:"industry2_match"`
	SkillMatch         bool      `json:"skill_match"`
	StartDatePriority  bool      `json:"start_date_priority"`
	MatchedIndustries1 string    `gorm:"type:jsonb;default:'[]'" json:"matched_industries1"`
	MatchedIndustries2 string    `gorm:"type:jsonb;default:'[]'" json:"matched_industries2"`
	MatchedSkills      string    `gorm:"type:jsonb;default:'[]'" json:"matched_skills"`
	Reason             string    `gorm:"type:text" json:"reason"`
	Status             string    `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (m *Match) TableName() string {
	return "job_matches"
}
