package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rizalfahlevi/intern-outreach/internal/config"
	"github.com/rizalfahlevi/intern-outreach/internal/model"
	"github.com/rizalfahlevi/intern-outreach/internal/service"
)

// In-memory store and service stubs shared by the usecase tests.

func testOutreachConfig() *config.OutreachConfig {
	return &config.OutreachConfig{
		MatchStrategy:        "deterministic",
		StoreThreshold:       0.1,
		QualityThreshold:     0.2,
		EmbeddingSimilarity:  0.85,
		TopCandidatesPerRole: 3,
		WeeklyEmailLimit:     1,
		VisaUrgentDays:       120,
		NoVisaUrgentDays:     60,
		FollowUpAfter:        48 * time.Hour,
		FinalAfter:           96 * time.Hour,
		MoveToNextAfter:      144 * time.Hour,
	}
}

func testMailConfig() *config.MailConfig {
	return &config.MailConfig{
		FromDomain:  "internoutreach.io",
		DefaultFrom: "team@internoutreach.io",
	}
}

type stubCandidateStore struct {
	candidates  map[uuid.UUID]*model.Candidate
	findErr     map[uuid.UUID]error
	savedSkills map[uuid.UUID]string
}

func newStubCandidateStore(candidates ...*model.Candidate) *stubCandidateStore {
	s := &stubCandidateStore{
		candidates:  make(map[uuid.UUID]*model.Candidate),
		findErr:     make(map[uuid.UUID]error),
		savedSkills: make(map[uuid.UUID]string),
	}
	for _, c := range candidates {
		s.candidates[c.ID] = c
	}
	return s
}

func (s *stubCandidateStore) FindByID(id uuid.UUID) (*model.Candidate, error) {
	if err := s.findErr[id]; err != nil {
		return nil, err
	}
	c, ok := s.candidates[id]
	if !ok {
		return nil, fmt.Errorf("candidate %s not found", id)
	}
	return c, nil
}

func (s *stubCandidateStore) GetAll() ([]model.Candidate, error) {
	var out []model.Candidate
	for _, c := range s.candidates {
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubCandidateStore) FindByIDs(ids []uuid.UUID) ([]model.Candidate, error) {
	var out []model.Candidate
	for _, id := range ids {
		if c, ok := s.candidates[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubCandidateStore) UpdateSkills(id uuid.UUID, skillsJSON string) error {
	s.savedSkills[id] = skillsJSON
	return nil
}

type stubRoleStore struct {
	roles    map[uuid.UUID]*model.Role
	active   []model.Role
	deals    map[uuid.UUID][]model.Deal
	contacts map[uuid.UUID][]model.CompanyContact
}

func newStubRoleStore() *stubRoleStore {
	return &stubRoleStore{
		roles:    make(map[uuid.UUID]*model.Role),
		deals:    make(map[uuid.UUID][]model.Deal),
		contacts: make(map[uuid.UUID][]model.CompanyContact),
	}
}

func (s *stubRoleStore) addActive(role *model.Role) {
	s.roles[role.ID] = role
	s.active = append(s.active, *role)
}

func (s *stubRoleStore) FindByID(id uuid.UUID) (*model.Role, error) {
	r, ok := s.roles[id]
	if !ok {
		return nil, fmt.Errorf("role %s not found", id)
	}
	return r, nil
}

func (s *stubRoleStore) FindByIDs(ids []uuid.UUID) ([]model.Role, error) {
	var out []model.Role
	for _, id := range ids {
		if r, ok := s.roles[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *stubRoleStore) GetActive() ([]model.Role, error) {
	return s.active, nil
}

func (s *stubRoleStore) GetCompanyDeals(companyID uuid.UUID) ([]model.Deal, error) {
	return s.deals[companyID], nil
}

func (s *stubRoleStore) GetPartnerContacts(companyID uuid.UUID) ([]model.CompanyContact, error) {
	return s.contacts[companyID], nil
}

type stubMatchStore struct {
	aboveScore []model.Match
	byCand     map[uuid.UUID][]model.Match
	replaced   map[uuid.UUID][]model.Match
}

func newStubMatchStore() *stubMatchStore {
	return &stubMatchStore{
		byCand:   make(map[uuid.UUID][]model.Match),
		replaced: make(map[uuid.UUID][]model.Match),
	}
}

func (s *stubMatchStore) ReplaceForCandidate(candidateID uuid.UUID, matches []model.Match) error {
	s.replaced[candidateID] = matches
	return nil
}

func (s *stubMatchStore) TopForCandidate(candidateID uuid.UUID, limit int) ([]model.Match, error) {
	matches := s.byCand[candidateID]
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (s *stubMatchStore) ActiveAboveScore(minScore float64) ([]model.Match, error) {
	var out []model.Match
	for _, m := range s.aboveScore {
		if m.Score >= minScore {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubMatchStore) ActiveForCandidate(candidateID uuid.UUID) ([]model.Match, error) {
	return s.byCand[candidateID], nil
}

type stubOutreachStore struct {
	logs            map[uuid.UUID]*model.OutreachLog
	createdLogs     []*model.OutreachLog
	histories       []*model.CandidateOutreachHistory
	historyCounts   map[string]int64
	pitchedByRole   map[uuid.UUID][]uuid.UUID
	pitchedByCand   map[uuid.UUID][]uuid.UUID
	createdTasks    []model.FollowUpTask
	due             []model.FollowUpTask
	completed       map[uuid.UUID]string
	cancelledLogs   map[uuid.UUID]string
	historyStatuses []string
}

func newStubOutreachStore() *stubOutreachStore {
	return &stubOutreachStore{
		logs:          make(map[uuid.UUID]*model.OutreachLog),
		historyCounts: make(map[string]int64),
		pitchedByRole: make(map[uuid.UUID][]uuid.UUID),
		pitchedByCand: make(map[uuid.UUID][]uuid.UUID),
		completed:     make(map[uuid.UUID]string),
		cancelledLogs: make(map[uuid.UUID]string),
	}
}

func (s *stubOutreachStore) CreateLog(log *model.OutreachLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	s.logs[log.ID] = log
	s.createdLogs = append(s.createdLogs, log)
	return nil
}

func (s *stubOutreachStore) UpdateLog(log *model.OutreachLog) error {
	s.logs[log.ID] = log
	return nil
}

func (s *stubOutreachStore) FindLogByID(id uuid.UUID) (*model.OutreachLog, error) {
	log, ok := s.logs[id]
	if !ok {
		return nil, fmt.Errorf("outreach log %s not found", id)
	}
	return log, nil
}

func (s *stubOutreachStore) CreateHistory(h *model.CandidateOutreachHistory) error {
	s.histories = append(s.histories, h)
	return nil
}

func (s *stubOutreachStore) HistoryCount(candidateID, roleID uuid.UUID) (int64, error) {
	return s.historyCounts[candidateID.String()+roleID.String()], nil
}

func (s *stubOutreachStore) PitchedCandidateIDs(roleID uuid.UUID) ([]uuid.UUID, error) {
	return s.pitchedByRole[roleID], nil
}

func (s *stubOutreachStore) PitchedRoleIDs(candidateID uuid.UUID) ([]uuid.UUID, error) {
	return s.pitchedByCand[candidateID], nil
}

func (s *stubOutreachStore) UpdateHistoryStatus(roleID uuid.UUID, candidateIDs []uuid.UUID, status string) error {
	s.historyStatuses = append(s.historyStatuses, status)
	return nil
}

func (s *stubOutreachStore) CreateTasks(tasks []model.FollowUpTask) error {
	s.createdTasks = append(s.createdTasks, tasks...)
	return nil
}

func (s *stubOutreachStore) DueTasks(asOf time.Time) ([]model.FollowUpTask, error) {
	return s.due, nil
}

func (s *stubOutreachStore) CompleteTask(task *model.FollowUpTask, result string) error {
	task.Completed = true
	task.Result = result
	s.completed[task.ID] = result
	return nil
}

func (s *stubOutreachStore) CancelIncompleteTasks(logID uuid.UUID, result string) error {
	s.cancelledLogs[logID] = result
	return nil
}

type stubLimiterStore struct {
	sent       map[uuid.UUID]int
	increments []uuid.UUID
}

func newStubLimiterStore() *stubLimiterStore {
	return &stubLimiterStore{sent: make(map[uuid.UUID]int)}
}

func (s *stubLimiterStore) SentThisWeek(companyID uuid.UUID, at time.Time) (int, error) {
	return s.sent[companyID], nil
}

func (s *stubLimiterStore) Increment(companyID uuid.UUID, at time.Time) error {
	s.sent[companyID]++
	s.increments = append(s.increments, companyID)
	return nil
}

type stubMailService struct {
	sent    []*service.OutboundMessage
	sendErr error
}

func (s *stubMailService) Send(ctx context.Context, msg *service.OutboundMessage) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, msg)
	return nil
}

type stubCRMService struct {
	files map[string]*service.ResumeFile
}

func (s *stubCRMService) DownloadResume(ctx context.Context, fileID string) (*service.ResumeFile, error) {
	f, ok := s.files[fileID]
	if !ok {
		return nil, fmt.Errorf("file %s not found", fileID)
	}
	return f, nil
}

type stubSkillExtractor struct {
	skills []service.ExtractedSkill
	err    error
}

func (s *stubSkillExtractor) ExtractSkills(ctx context.Context, cvText string) ([]service.ExtractedSkill, error) {
	return s.skills, s.err
}

type stubTagMatcher struct {
	pairs []string
	err   error
	calls int
}

func (s *stubTagMatcher) MatchTags(ctx context.Context, tags, interests []string) ([]string, error) {
	s.calls++
	return s.pairs, s.err
}

type cycleCall struct {
	roleID       uuid.UUID
	candidateIDs []uuid.UUID
	urgent       bool
}

type stubDispatcher struct {
	calls   []cycleCall
	skipped bool
	err     error
}

func (s *stubDispatcher) StartCycle(ctx context.Context, roleID uuid.UUID, candidateIDs []uuid.UUID, urgent bool) (bool, error) {
	s.calls = append(s.calls, cycleCall{roleID: roleID, candidateIDs: candidateIDs, urgent: urgent})
	return s.skipped, s.err
}
