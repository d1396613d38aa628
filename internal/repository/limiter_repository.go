package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/rizalfahlevi/intern-outreach/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LimiterRepository struct {
	db *gorm.DB
}

func NewLimiterRepository(db *gorm.DB) *LimiterRepository {
	return &LimiterRepository{db}
}

// WeekStart returns the Monday of the ISO week containing t, at
// midnight UTC.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -(weekday - 1))
}

func (r *LimiterRepository) SentThisWeek(companyID uuid.UUID, at time.Time) (int, error) {
	var limiter model.EmailLimiter
	err := r.db.
		Where("company_id = ? AND week_start = ?", companyID, WeekStart(at)).
		First(&limiter).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return limiter.SentCount, nil
}

// Increment bumps the weekly counter atomically, creating the week row
// on first use. Row locking keeps concurrent sends to one company from
// losing updates.
func (r *LimiterRepository) Increment(companyID uuid.UUID, at time.Time) error {
	week := WeekStart(at)
	return r.db.Transaction(func(tx *gorm.DB) error {
		var limiter model.EmailLimiter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ? AND week_start = ?", companyID, week).
			First(&limiter).Error
		if err == gorm.ErrRecordNotFound {
			return tx.Create(&model.EmailLimiter{
				CompanyID: companyID,
				WeekStart: week,
				SentCount: 1,
			}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&limiter).Update("sent_count", gorm.Expr("sent_count + 1")).Error
	})
}
