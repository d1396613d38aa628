package model

import (
	"time"

	"github.com/google/uuid"
)

// Candidate is synced from the CRM and read-only to the matching core.
// Industry and skill fields keep the raw upstream encoding (JSON array,
// delimited string or bare string) and are normalized at match time.
type Candidate struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CRMID             string     `gorm:"type:varchar(64);uniqueIndex" json:"crm_id"`
	Name              string     `gorm:"type:varchar(255)" json:"name"`
	Email             string     `gorm:"type:varchar(255)" json:"email"`
	Industry1         string     `gorm:"type:text" json:"industry1"`
	Industry1Areas    string     `gorm:"type:text" json:"industry1_areas"`
	Industry2         string     `gorm:"type:text" json:"industry2"`
	Industry2Areas    string     `gorm:"type:text" json:"industry2_areas"`
	Location          string     `gorm:"type:varchar(255)" json:"location"`
	SecondaryLocation string     `gorm:"type:varchar(255)" json:"secondary_location"`
	Skills            string     `gorm:"type:jsonb;default:'[]'" json:"skills"`
	Bio               string     `gorm:"type:text" json:"bio"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	VisaRequired      bool       `json:"visa_required"`
	SpecialistName    string     `gorm:"type:varchar(255)" json:"specialist_name"`
	SpecialistEmail   string     `gorm:"type:varchar(255)" json:"specialist_email"`
	ResumeFileID      string     `gorm:"type:varchar(128)" json:"resume_file_id"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (c *Candidate) TableName() string {
	return "candidates"
}
