package model

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CRMID        string     `gorm:"type:varchar(64);uniqueIndex" json:"crm_id"`
	Name         string     `gorm:"type:varchar(255)" json:"name"`
	IsDNC        bool       `json:"is_dnc"`
	NoEmployees  string     `gorm:"type:varchar(32)" json:"no_employees"` // synced as free text, parsed at eligibility time
	FollowUpDate *time.Time `json:"follow_up_date"`
	Deals        []Deal     `gorm:"foreignKey:CompanyID" json:"deals,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Deal stages used by eligibility and timing rules.
const (
	DealStageConfirmed = "Role Confirmed"
)

// ActivePipelineStages are the stages that count towards the active-deal
// load limit. Matching against them is case-insensitive contains.
var ActivePipelineStages = []string{
	"Scheduling Interview",
	"Pending Interview",
	"Rescheduling Interview",
	"Pending Outcome",
}

// CompanyContact is a person on the company side. Outreach goes to
// contacts on the partner layout with a usable email address.
type CompanyContact struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index" json:"company_id"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Layout    string    `gorm:"type:varchar(50)" json:"layout"` // "partner", "student"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Deal struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CompanyID uuid.UUID  `gorm:"type:uuid;index" json:"company_id"`
	Name      string     `gorm:"type:varchar(255)" json:"name"`
	Stage     string     `gorm:"type:varchar(100)" json:"stage"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
