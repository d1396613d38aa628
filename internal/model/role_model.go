package model

import (
	"time"

	"github.com/google/uuid"
)

type Role struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CRMID             string     `gorm:"type:varchar(64);uniqueIndex" json:"crm_id"`
	CompanyID         uuid.UUID  `gorm:"type:uuid;index" json:"company_id"`
	Company           *Company   `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Title             string     `gorm:"type:varchar(255)" json:"title"`
	Status            string     `gorm:"type:varchar(50)" json:"status"` // "active", "closed", "cancelled"
	Tags              string     `gorm:"type:text" json:"tags"`          // raw upstream encoding
	Location          string     `gorm:"type:varchar(255)" json:"location"`
	WorkPolicy        string     `gorm:"type:text" json:"work_policy"`
	HybridDays        string     `gorm:"type:varchar(100)" json:"hybrid_days"`
	OfficePolicy      string     `gorm:"type:text" json:"office_policy"`
	Description       string     `gorm:"type:text" json:"description"`
	Requirements      string     `gorm:"type:text" json:"requirements"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	RejectedDealCount int        `json:"rejected_deal_count"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (r *Role) TableName() string {
	return "intern_roles"
}

func (r *Role) IsActive() bool {
	return r.Status == "active"
}
