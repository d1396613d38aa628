package repository

import (
	"github.com/google/uuid"
	"github.com/rizalfahlevi/intern-outreach/internal/model"
	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db}
}

// ReplaceForCandidate swaps out every stored match for the candidate in
// one transaction so readers never observe a mix of old and new rows.
func (r *MatchRepository) ReplaceForCandidate(candidateID uuid.UUID, matches []model.Match) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("candidate_id = ?", candidateID).Delete(&model.Match{}).Error; err != nil {
			return err
		}
		if len(matches) == 0 {
			return nil
		}
		return tx.Create(&matches).Error
	})
}

func (r *MatchRepository) TopForCandidate(candidateID uuid.UUID, limit int) ([]model.Match, error) {
	var matches []model.Match
	err := r.db.
		Where("candidate_id = ? AND status = ?", candidateID, model.MatchStatusActive).
		Order("score DESC").
		Limit(limit).
		Find(&matches).Error
	return matches, err
}

// ActiveAboveScore returns every active match at or above the score
// floor ordered best-first, the working set for pool building.
func (r *MatchRepository) ActiveAboveScore(minScore float64) ([]model.Match, error) {
	var matches []model.Match
	err := r.db.
		Where("status = ? AND score >= ?", model.MatchStatusActive, minScore).
		Order("score DESC").
		Find(&matches).Error
	return matches, err
}

func (r *MatchRepository) ActiveForCandidate(candidateID uuid.UUID) ([]model.Match, error) {
	var matches []model.Match
	err := r.db.
		Where("candidate_id = ? AND status = ?", candidateID, model.MatchStatusActive).
		Order("score DESC").
		Find(&matches).Error
	return matches, err
}
