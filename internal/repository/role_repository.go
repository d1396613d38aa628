package repository

import (
	"github.com/google/uuid"
	"github.com/rizalfahlevi/intern-outreach/internal/model"
	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db}
}

func (r *RoleRepository) FindByID(id uuid.UUID) (*model.Role, error) {
	var role model.Role
	err := r.db.Preload("Company").First(&role, "id = ?", id).Error
	return &role, err
}

func (r *RoleRepository) FindByIDs(ids []uuid.UUID) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.Preload("Company").Where("id IN ?", ids).Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) GetActive() ([]model.Role, error) {
	var roles []model.Role
	err := r.db.Preload("Company").Where("status = ?", "active").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) GetCompanyDeals(companyID uuid.UUID) ([]model.Deal, error) {
	var deals []model.Deal
	err := r.db.Where("company_id = ?", companyID).Find(&deals).Error
	return deals, err
}

// GetPartnerContacts returns the company people outreach can be sent
// to.
func (r *RoleRepository) GetPartnerContacts(companyID uuid.UUID) ([]model.CompanyContact, error) {
	var contacts []model.CompanyContact
	err := r.db.
		Where("company_id = ? AND layout = ? AND email <> ''", companyID, "partner").
		Find(&contacts).Error
	return contacts, err
}
