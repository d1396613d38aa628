package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/rizalfahlevi/intern-outreach/internal/model"
	"gorm.io/gorm"
)

type OutreachRepository struct {
	db *gorm.DB
}

func NewOutreachRepository(db *gorm.DB) *OutreachRepository {
	return &OutreachRepository{db}
}

func (r *OutreachRepository) CreateLog(log *model.OutreachLog) error {
	return r.db.Create(log).Error
}

func (r *OutreachRepository) UpdateLog(log *model.OutreachLog) error {
	return r.db.Save(log).Error
}

func (r *OutreachRepository) FindLogByID(id uuid.UUID) (*model.OutreachLog, error) {
	var log model.OutreachLog
	err := r.db.First(&log, "id = ?", id).Error
	return &log, err
}

func (r *OutreachRepository) FindLogByMessageID(messageID string) (*model.OutreachLog, error) {
	var log model.OutreachLog
	err := r.db.First(&log, "message_id = ?", messageID).Error
	return &log, err
}

func (r *OutreachRepository) CreateHistory(h *model.CandidateOutreachHistory) error {
	return r.db.Create(h).Error
}

// HistoryCount returns how many cycles a candidate has already been
// pitched to a role; the next cycle number is count+1.
func (r *OutreachRepository) HistoryCount(candidateID, roleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.CandidateOutreachHistory{}).
		Where("candidate_id = ? AND role_id = ?", candidateID, roleID).
		Count(&count).Error
	return count, err
}

// PitchedCandidateIDs returns every candidate with any history row for
// the role, regardless of cycle.
func (r *OutreachRepository) PitchedCandidateIDs(roleID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&model.CandidateOutreachHistory{}).
		Where("role_id = ?", roleID).
		Distinct().
		Pluck("candidate_id", &ids).Error
	return ids, err
}

// PitchedRoleIDs returns every role a candidate has already been
// pitched to.
func (r *OutreachRepository) PitchedRoleIDs(candidateID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&model.CandidateOutreachHistory{}).
		Where("candidate_id = ?", candidateID).
		Distinct().
		Pluck("role_id", &ids).Error
	return ids, err
}

func (r *OutreachRepository) UpdateHistoryStatus(roleID uuid.UUID, candidateIDs []uuid.UUID, status string) error {
	if len(candidateIDs) == 0 {
		return nil
	}
	return r.db.Model(&model.CandidateOutreachHistory{}).
		Where("role_id = ? AND candidate_id IN ?", roleID, candidateIDs).
		Update("status", status).Error
}

func (r *OutreachRepository) CreateTasks(tasks []model.FollowUpTask) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.Create(&tasks).Error
}

// DueTasks returns incomplete tasks whose scheduled time has passed,
// oldest first, so repeated sweeps drain the backlog in order.
func (r *OutreachRepository) DueTasks(asOf time.Time) ([]model.FollowUpTask, error) {
	var tasks []model.FollowUpTask
	err := r.db.
		Where("completed = ? AND scheduled_at <= ?", false, asOf).
		Order("scheduled_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *OutreachRepository) CompleteTask(task *model.FollowUpTask, result string) error {
	now := time.Now()
	task.Completed = true
	task.CompletedAt = &now
	task.Result = result
	return r.db.Save(task).Error
}

// CancelIncompleteTasks closes every open task of one log, the
// response short-circuit. Tasks of other logs are untouched.
func (r *OutreachRepository) CancelIncompleteTasks(logID uuid.UUID, result string) error {
	now := time.Now()
	return r.db.Model(&model.FollowUpTask{}).
		Where("outreach_log_id = ? AND completed = ?", logID, false).
		Updates(map[string]any{
			"completed":    true,
			"completed_at": now,
			"result":       result,
		}).Error
}
