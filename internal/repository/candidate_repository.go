package repository

import (
	"github.com/google/uuid"
	"github.com/rizalfahlevi/intern-outreach/internal/model"
	"gorm.io/gorm"
)

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db}
}

func (r *CandidateRepository) FindByID(id uuid.UUID) (*model.Candidate, error) {
	var c model.Candidate
	err := r.db.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *CandidateRepository) GetAll() ([]model.Candidate, error) {
	var candidates []model.Candidate
	err := r.db.Find(&candidates).Error
	return candidates, err
}

func (r *CandidateRepository) FindByIDs(ids []uuid.UUID) ([]model.Candidate, error) {
	var candidates []model.Candidate
	err := r.db.Where("id IN ?", ids).Find(&candidates).Error
	return candidates, err
}

func (r *CandidateRepository) UpdateSkills(id uuid.UUID, skillsJSON string) error {
	return r.db.Model(&model.Candidate{}).Where("id = ?", id).Update("skills", skillsJSON).Error
}
