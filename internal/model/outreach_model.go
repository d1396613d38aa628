package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StageInitial    = "initial"
	StageFollowUp   = "follow_up"
	StageFinal      = "final"
	StageMoveToNext = "move_to_next"
)

const (
	HistoryStatusActive      = "active"
	HistoryStatusResponded   = "responded"
	HistoryStatusCompleted   = "completed"
	HistoryStatusMovedToNext = "moved_to_next"
)

// OutreachLog is an immutable record of a sent email. Follow-up and
// final sends chain to the initial send through ParentID and share its
// ThreadID.
type OutreachLog struct {
	ID               uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RoleID           uuid.UUID    `gorm:"type:uuid;index" json:"role_id"`
	CompanyID        uuid.UUID    `gorm:"type:uuid;index" json:"company_id"`
	RoleTitle        string       `gorm:"type:varchar(255)" json:"role_title"` // snapshot at send time
	CompanyName      string       `gorm:"type:varchar(255)" json:"company_name"`
	Subject          string       `gorm:"type:varchar(500)" json:"subject"`
	Stage            string       `gorm:"type:varchar(20)" json:"stage"`
	Sender           string       `gorm:"type:varchar(255)" json:"sender"`
	Recipients       string       `gorm:"type:jsonb;default:'[]'" json:"recipients"`
	CandidateIDs     string       `gorm:"type:jsonb;default:'[]'" json:"candidate_ids"`
	CandidateCount   int          `json:"candidate_count"`
	Urgent           bool         `json:"urgent"`
	SentAt           time.Time    `json:"sent_at"`
	MessageID        string       `gorm:"type:varchar(255);uniqueIndex" json:"message_id"`
	ThreadID         string       `gorm:"type:varchar(255);index" json:"thread_id"`
	InReplyTo        string       `gorm:"type:varchar(255)" json:"in_reply_to"`
	ResponseReceived bool         `json:"response_received"`
	ResponseAt       *time.Time   `json:"response_at"`
	ResponseType     string       `gorm:"type:varchar(50)" json:"response_type"`
	FollowUpCount    int          `json:"follow_up_count"`
	LastFollowUpAt   *time.Time   `json:"last_follow_up_at"`
	ParentID         *uuid.UUID   `gorm:"type:uuid;index" json:"parent_id"`
	Parent           *OutreachLog `gorm:"foreignKey:ParentID" json:"-"`
	CreatedAt        time.Time    `json:"created_at"`
}

func (l *OutreachLog) TableName() string {
	return "outreach_logs"
}

// FollowUpTask is one step of the cadence scheduled at initial-send
// time. Completed tasks are never re-run; Result records why a task was
// closed ("sent", "skipped_response_received", "error: ...").
type FollowUpTask struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OutreachLogID uuid.UUID  `gorm:"type:uuid;index" json:"outreach_log_id"`
	Stage         string     `gorm:"type:varchar(20)" json:"stage"` // follow_up, final, move_to_next
	ScheduledAt   time.Time  `gorm:"index" json:"scheduled_at"`
	Completed     bool       `gorm:"index" json:"completed"`
	CompletedAt   *time.Time `json:"completed_at"`
	Result        string     `gorm:"type:varchar(255)" json:"result"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (t *FollowUpTask) TableName() string {
	return "follow_up_tasks"
}

// CandidateOutreachHistory tracks every pitch of a candidate to a role.
// Any row for a (candidate, role) pair excludes that pair from future
// pool building.
type CandidateOutreachHistory struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CandidateID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_history_cycle;index" json:"candidate_id"`
	RoleID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_history_cycle" json:"role_id"`
	CycleNumber   int       `gorm:"uniqueIndex:idx_history_cycle" json:"cycle_number"`
	OutreachLogID uuid.UUID `gorm:"type:uuid" json:"outreach_log_id"`
	Status        string    `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (h *CandidateOutreachHistory) TableName() string {
	return "candidate_outreach_history"
}

// EmailLimiter caps outreach emails per company per calendar week.
// WeekStart is always the Monday of the ISO week.
type EmailLimiter struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_limiter_week" json:"company_id"`
	WeekStart time.Time `gorm:"type:date;uniqueIndex:idx_limiter_week" json:"week_start"`
	SentCount int       `json:"sent_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *EmailLimiter) TableName() string {
	return "email_limiters"
}
