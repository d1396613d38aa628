package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/rizalfahlevi/intern-outreach/internal/model"
)

// Storage contracts consumed by the usecases, implemented by the
// repository package.

type CandidateStore interface {
	FindByID(id uuid.UUID) (*model.Candidate, error)
	GetAll() ([]model.Candidate, error)
	FindByIDs(ids []uuid.UUID) ([]model.Candidate, error)
	UpdateSkills(id uuid.UUID, skillsJSON string) error
}

type RoleStore interface {
	FindByID(id uuid.UUID) (*model.Role, error)
	FindByIDs(ids []uuid.UUID) ([]model.Role, error)
	GetActive() ([]model.Role, error)
	GetCompanyDeals(companyID uuid.UUID) ([]model.Deal, error)
	GetPartnerContacts(companyID uuid.UUID) ([]model.CompanyContact, error)
}

type MatchStore interface {
	ReplaceForCandidate(candidateID uuid.UUID, matches []model.Match) error
	TopForCandidate(candidateID uuid.UUID, limit int) ([]model.Match, error)
	ActiveAboveScore(minScore float64) ([]model.Match, error)
	ActiveForCandidate(candidateID uuid.UUID) ([]model.Match, error)
}

type OutreachStore interface {
	CreateLog(log *model.OutreachLog) error
	UpdateLog(log *model.OutreachLog) error
	FindLogByID(id uuid.UUID) (*model.OutreachLog, error)
	CreateHistory(h *model.CandidateOutreachHistory) error
	HistoryCount(candidateID, roleID uuid.UUID) (int64, error)
	PitchedCandidateIDs(roleID uuid.UUID) ([]uuid.UUID, error)
	PitchedRoleIDs(candidateID uuid.UUID) ([]uuid.UUID, error)
	UpdateHistoryStatus(roleID uuid.UUID, candidateIDs []uuid.UUID, status string) error
	CreateTasks(tasks []model.FollowUpTask) error
	DueTasks(asOf time.Time) ([]model.FollowUpTask, error)
	CompleteTask(task *model.FollowUpTask, result string) error
	CancelIncompleteTasks(logID uuid.UUID, result string) error
}

type LimiterStore interface {
	SentThisWeek(companyID uuid.UUID, at time.Time) (int, error)
	Increment(companyID uuid.UUID, at time.Time) error
}

// BatchSummary is the structured result every batch operation returns
// to callers; per-item failures are counted, never propagated.
type BatchSummary struct {
	Total        int      `json:"total"`
	Successful   int      `json:"successful"`
	Failed       int      `json:"failed"`
	TotalCreated int      `json:"total_created"`
	Errors       []string `json:"errors,omitempty"`
}

const maxSummaryErrors = 10

func (s *BatchSummary) addError(err error) {
	s.Failed++
	if len(s.Errors) < maxSummaryErrors {
		s.Errors = append(s.Errors, err.Error())
	}
}
