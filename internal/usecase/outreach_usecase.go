package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rizalfahlevi/intern-outreach/internal/config"
	"github.com/rizalfahlevi/intern-outreach/internal/matching"
	"github.com/rizalfahlevi/intern-outreach/internal/model"
	"github.com/rizalfahlevi/intern-outreach/internal/service"
	"go.uber.org/zap"
)

// RolePool is the outreach unit: one role and the candidates pitched
// for it in this pass.
type RolePool struct {
	Role       model.Role
	Candidates []model.Candidate
	Urgent     bool
}

type OutreachSummary struct {
	Roles   int      `json:"roles"`
	Sent    int      `json:"sent"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	DryRun  bool     `json:"dry_run,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

type OutreachUsecase struct {
	candidates CandidateStore
	roles      RoleStore
	matches    MatchStore
	outreach   OutreachStore
	limiter    LimiterStore
	mail       service.MailServiceInterface
	crm        service.CRMServiceInterface
	cfg        *config.OutreachConfig
	mailCfg    *config.MailConfig
	log        *zap.Logger
	now        func() time.Time
}

func NewOutreachUsecase(
	candidates CandidateStore,
	roles RoleStore,
	matches MatchStore,
	outreach OutreachStore,
	limiter LimiterStore,
	mail service.MailServiceInterface,
	crm service.CRMServiceInterface,
	cfg *config.OutreachConfig,
	mailCfg *config.MailConfig,
	log *zap.Logger,
) *OutreachUsecase {
	return &OutreachUsecase{
		candidates: candidates,
		roles:      roles,
		matches:    matches,
		outreach:   outreach,
		limiter:    limiter,
		mail:       mail,
		crm:        crm,
		cfg:        cfg,
		mailCfg:    mailCfg,
		log:        log,
		now:        time.Now,
	}
}

// BuildPools selects the top candidates per eligible role. A candidate
// with any outreach history for a role is never re-pitched to it, and
// the used set keeps one candidate out of two pools in the same pass.
func (uc *OutreachUsecase) BuildPools(ctx context.Context, urgentOnly bool, maxRoles int) ([]RolePool, error) {
	roles, err := uc.roles.GetActive()
	if err != nil {
		return nil, fmt.Errorf("load active roles: %w", err)
	}

	allMatches, err := uc.matches.ActiveAboveScore(uc.cfg.QualityThreshold)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	byRole := make(map[uuid.UUID][]model.Match)
	for _, m := range allMatches {
		byRole[m.RoleID] = append(byRole[m.RoleID], m)
	}

	asOf := uc.now()
	used := make(map[uuid.UUID]bool)
	var pools []RolePool

	for i := range roles {
		if maxRoles > 0 && len(pools) >= maxRoles {
			break
		}
		role := roles[i]

		deals, err := uc.roles.GetCompanyDeals(role.CompanyID)
		if err != nil {
			uc.log.Warn("could not load deals", zap.String("role", role.Title), zap.Error(err))
			deals = nil
		}
		if excl := matching.CheckEligibility(role.Company, deals, asOf, nil); excl.Excluded {
			continue
		}

		pitchedIDs, err := uc.outreach.PitchedCandidateIDs(role.ID)
		if err != nil {
			uc.log.Warn("could not load pitch history", zap.String("role", role.Title), zap.Error(err))
			continue
		}
		pitched := make(map[uuid.UUID]bool, len(pitchedIDs))
		for _, id := range pitchedIDs {
			pitched[id] = true
		}

		var selected []model.Candidate
		for _, m := range byRole[role.ID] {
			if len(selected) >= uc.cfg.TopCandidatesPerRole {
				break
			}
			if pitched[m.CandidateID] || used[m.CandidateID] {
				continue
			}
			candidate, err := uc.candidates.FindByID(m.CandidateID)
			if err != nil {
				continue
			}
			if urgentOnly && !uc.isUrgent(candidate, asOf) {
				continue
			}
			used[m.CandidateID] = true
			selected = append(selected, *candidate)
		}
		if len(selected) == 0 {
			continue
		}
		pools = append(pools, RolePool{Role: role, Candidates: selected, Urgent: urgentOnly})
	}
	return pools, nil
}

// isUrgent applies the urgency predicate: visa candidates within 120
// days of their start date, others within 60.
func (uc *OutreachUsecase) isUrgent(c *model.Candidate, asOf time.Time) bool {
	if c.StartDate == nil {
		return false
	}
	days := daysUntil(c.StartDate, asOf)
	if c.VisaRequired {
		return days < uc.cfg.VisaUrgentDays
	}
	return days < uc.cfg.NoVisaUrgentDays
}

func (uc *OutreachUsecase) RunBatch(ctx context.Context, maxRoles int, dryRun bool) (*OutreachSummary, error) {
	pools, err := uc.BuildPools(ctx, false, maxRoles)
	if err != nil {
		return nil, err
	}
	return uc.dispatchPools(ctx, pools, dryRun), nil
}

func (uc *OutreachUsecase) RunUrgentBatch(ctx context.Context, maxRoles int) (*OutreachSummary, error) {
	pools, err := uc.BuildPools(ctx, true, maxRoles)
	if err != nil {
		return nil, err
	}
	return uc.dispatchPools(ctx, pools, false), nil
}

func (uc *OutreachUsecase) dispatchPools(ctx context.Context, pools []RolePool, dryRun bool) *OutreachSummary {
	summary := &OutreachSummary{Roles: len(pools), DryRun: dryRun}
	for i := range pools {
		skipped, err := uc.dispatchInitial(ctx, &pools[i], dryRun)
		switch {
		case err != nil:
			summary.Failed++
			if len(summary.Errors) < maxSummaryErrors {
				summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", pools[i].Role.Title, err))
			}
			uc.log.Error("outreach dispatch failed",
				zap.String("role", pools[i].Role.Title), zap.Error(err))
		case skipped:
			summary.Skipped++
		default:
			summary.Sent++
		}
	}
	return summary
}

// StartCycle begins a fresh initial outreach cycle for specific
// candidates on a role, used by the move-to-next path.
func (uc *OutreachUsecase) StartCycle(ctx context.Context, roleID uuid.UUID, candidateIDs []uuid.UUID, urgent bool) (bool, error) {
	role, err := uc.roles.FindByID(roleID)
	if err != nil {
		return false, fmt.Errorf("find role %s: %w", roleID, err)
	}
	candidates, err := uc.candidates.FindByIDs(candidateIDs)
	if err != nil || len(candidates) == 0 {
		return false, fmt.Errorf("find candidates %v: %w", candidateIDs, err)
	}
	pool := RolePool{Role: *role, Candidates: candidates, Urgent: urgent}
	return uc.dispatchInitial(ctx, &pool, false)
}

// dispatchInitial composes and sends the initial email for one pool.
// All persistence happens strictly after a confirmed send. Returns
// skipped=true for non-error conditions that prevent a send.
func (uc *OutreachUsecase) dispatchInitial(ctx context.Context, pool *RolePool, dryRun bool) (bool, error) {
	role := pool.Role
	company := role.Company
	if company == nil {
		uc.log.Warn("role has no company, skipping", zap.String("role", role.Title))
		return true, nil
	}
	asOf := uc.now()

	// Urgent sends bypass the weekly limiter.
	if !pool.Urgent {
		sent, err := uc.limiter.SentThisWeek(company.ID, asOf)
		if err != nil {
			return false, fmt.Errorf("check weekly limiter: %w", err)
		}
		if sent >= uc.cfg.WeeklyEmailLimit {
			uc.log.Info("weekly email limit reached, skipping",
				zap.String("company", company.Name))
			return true, nil
		}
	}

	contacts, err := uc.roles.GetPartnerContacts(company.ID)
	if err != nil {
		return false, fmt.Errorf("load partner contacts: %w", err)
	}
	if len(contacts) == 0 {
		uc.log.Info("no partner contacts, skipping", zap.String("company", company.Name))
		return true, nil
	}
	recipients := make([]string, 0, len(contacts))
	for _, c := range contacts {
		recipients = append(recipients, c.Email)
	}

	sender, senderName := uc.resolveSender(pool.Candidates)
	if sender == "" {
		uc.log.Info("no resolvable sender, skipping", zap.String("role", role.Title))
		return true, nil
	}

	subject := renderSubject(pool.Urgent, model.StageInitial, role.Title)
	body := renderBody(pool.Urgent, model.StageInitial, company.Name, role.Title, senderName, pool.Candidates)
	messageID := uc.newMessageID(model.StageInitial, asOf)
	threadID := threadIDFor(role.ID, company.ID)

	if dryRun {
		uc.log.Info("dry run, would send outreach",
			zap.String("role", role.Title),
			zap.String("company", company.Name),
			zap.Strings("to", recipients),
			zap.Int("candidates", len(pool.Candidates)))
		return false, nil
	}

	msg := &service.OutboundMessage{
		From:        sender,
		To:          recipients,
		ReplyTo:     sender,
		Subject:     subject,
		HTMLBody:    body,
		MessageID:   messageID,
		ThreadID:    threadID,
		Attachments: uc.resumeAttachments(ctx, pool.Candidates),
	}
	if err := uc.mail.Send(ctx, msg); err != nil {
		return false, fmt.Errorf("send outreach: %w", err)
	}

	candidateIDs := make([]uuid.UUID, 0, len(pool.Candidates))
	for _, c := range pool.Candidates {
		candidateIDs = append(candidateIDs, c.ID)
	}
	log := &model.OutreachLog{
		RoleID:         role.ID,
		CompanyID:      company.ID,
		RoleTitle:      role.Title,
		CompanyName:    company.Name,
		Subject:        subject,
		Stage:          model.StageInitial,
		Sender:         sender,
		Recipients:     toJSON(recipients),
		CandidateIDs:   uuidsToJSON(candidateIDs),
		CandidateCount: len(candidateIDs),
		Urgent:         pool.Urgent,
		SentAt:         asOf,
		MessageID:      messageID,
		ThreadID:       threadID,
	}
	if err := uc.outreach.CreateLog(log); err != nil {
		return false, fmt.Errorf("persist outreach log: %w", err)
	}

	for _, c := range pool.Candidates {
		count, err := uc.outreach.HistoryCount(c.ID, role.ID)
		if err != nil {
			uc.log.Error("history count failed", zap.String("candidate", c.Name), zap.Error(err))
			count = 0
		}
		history := &model.CandidateOutreachHistory{
			CandidateID:   c.ID,
			RoleID:        role.ID,
			CycleNumber:   int(count) + 1,
			OutreachLogID: log.ID,
			Status:        model.HistoryStatusActive,
		}
		if err := uc.outreach.CreateHistory(history); err != nil {
			uc.log.Error("history insert failed", zap.String("candidate", c.Name), zap.Error(err))
		}
	}

	if err := uc.outreach.CreateTasks(uc.cadenceTasks(log.ID, asOf)); err != nil {
		uc.log.Error("scheduling follow-up tasks failed", zap.String("log", log.ID.String()), zap.Error(err))
	}

	if err := uc.limiter.Increment(company.ID, asOf); err != nil {
		uc.log.Error("limiter increment failed", zap.String("company", company.Name), zap.Error(err))
	}

	uc.log.Info("outreach sent",
		zap.String("role", role.Title),
		zap.String("company", company.Name),
		zap.Int("candidates", len(candidateIDs)),
		zap.Bool("urgent", pool.Urgent))
	return false, nil
}

// cadenceTasks creates the fixed three-step cadence for one initial
// send.
func (uc *OutreachUsecase) cadenceTasks(logID uuid.UUID, sentAt time.Time) []model.FollowUpTask {
	return []model.FollowUpTask{
		{OutreachLogID: logID, Stage: model.StageFollowUp, ScheduledAt: sentAt.Add(uc.cfg.FollowUpAfter)},
		{OutreachLogID: logID, Stage: model.StageFinal, ScheduledAt: sentAt.Add(uc.cfg.FinalAfter)},
		{OutreachLogID: logID, Stage: model.StageMoveToNext, ScheduledAt: sentAt.Add(uc.cfg.MoveToNextAfter)},
	}
}

// resolveSender prefers the first candidate's assigned specialist and
// falls back to the configured default mailbox.
func (uc *OutreachUsecase) resolveSender(candidates []model.Candidate) (email, name string) {
	for _, c := range candidates {
		if c.SpecialistEmail != "" {
			specialist := c.SpecialistName
			if specialist == "" {
				specialist = "The Placement Team"
			}
			return c.SpecialistEmail, specialist
		}
	}
	if uc.mailCfg.DefaultFrom != "" {
		return uc.mailCfg.DefaultFrom, "The Placement Team"
	}
	return "", ""
}

func (uc *OutreachUsecase) resumeAttachments(ctx context.Context, candidates []model.Candidate) []service.Attachment {
	var attachments []service.Attachment
	for _, c := range candidates {
		if c.ResumeFileID == "" {
			continue
		}
		resume, err := uc.crm.DownloadResume(ctx, c.ResumeFileID)
		if err != nil {
			uc.log.Warn("resume download failed, sending without it",
				zap.String("candidate", c.Name), zap.Error(err))
			continue
		}
		attachments = append(attachments, service.Attachment{
			Filename: resume.Filename,
			Content:  resume.Content,
		})
	}
	return attachments
}

func (uc *OutreachUsecase) newMessageID(stage string, at time.Time) string {
	return fmt.Sprintf("<%s-%d-%s@%s>", stage, at.Unix(), uuid.NewString()[:8], uc.mailCfg.FromDomain)
}

// threadIDFor regenerates the deterministic thread id for a role and
// company pair, also the fallback when a parent log lost its thread.
func threadIDFor(roleID, companyID uuid.UUID) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(roleID.String()+companyID.String())).String()
}

func uuidsToJSON(ids []uuid.UUID) string {
	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, id.String())
	}
	return toJSON(strs)
}

func uuidsFromJSON(raw string) []uuid.UUID {
	var strs []string
	if err := json.Unmarshal([]byte(raw), &strs); err != nil {
		return nil
	}
	var ids []uuid.UUID
	for _, s := range strs {
		if id, err := uuid.Parse(s); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func stringsFromJSON(raw string) []string {
	var strs []string
	if err := json.Unmarshal([]byte(raw), &strs); err != nil {
		return nil
	}
	return strs
}
