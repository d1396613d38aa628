package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rizalfahlevi/intern-outreach/internal/config"
	"github.com/rizalfahlevi/intern-outreach/internal/model"
	"github.com/rizalfahlevi/intern-outreach/internal/service"
	"go.uber.org/zap"
)

// CycleDispatcher starts a fresh initial outreach cycle, implemented
// by OutreachUsecase.
type CycleDispatcher interface {
	StartCycle(ctx context.Context, roleID uuid.UUID, candidateIDs []uuid.UUID, urgent bool) (bool, error)
}

type FollowUpUsecase struct {
	candidates CandidateStore
	matches    MatchStore
	outreach   OutreachStore
	dispatcher CycleDispatcher
	mail       service.MailServiceInterface
	cfg        *config.OutreachConfig
	mailCfg    *config.MailConfig
	log        *zap.Logger
	now        func() time.Time
}

func NewFollowUpUsecase(
	candidates CandidateStore,
	matches MatchStore,
	outreach OutreachStore,
	dispatcher CycleDispatcher,
	mail service.MailServiceInterface,
	cfg *config.OutreachConfig,
	mailCfg *config.MailConfig,
	log *zap.Logger,
) *FollowUpUsecase {
	return &FollowUpUsecase{
		candidates: candidates,
		matches:    matches,
		outreach:   outreach,
		dispatcher: dispatcher,
		mail:       mail,
		cfg:        cfg,
		mailCfg:    mailCfg,
		log:        log,
		now:        time.Now,
	}
}

// ProcessPending sweeps every due incomplete task oldest-first. Each
// task is closed exactly once, whatever happens; failures record a
// result and are never retried automatically.
func (uc *FollowUpUsecase) ProcessPending(ctx context.Context) (*BatchSummary, error) {
	tasks, err := uc.outreach.DueTasks(uc.now())
	if err != nil {
		return nil, fmt.Errorf("load due tasks: %w", err)
	}

	summary := &BatchSummary{Total: len(tasks)}
	for i := range tasks {
		task := &tasks[i]

		parent, err := uc.outreach.FindLogByID(task.OutreachLogID)
		if err != nil {
			uc.completeTask(task, "error: outreach log missing")
			summary.addError(fmt.Errorf("task %s: outreach log missing", task.ID))
			continue
		}

		// Response short-circuit: the company already replied.
		if parent.ResponseReceived {
			uc.completeTask(task, "skipped_response_received")
			summary.Successful++
			continue
		}

		switch task.Stage {
		case model.StageFollowUp, model.StageFinal:
			if err := uc.sendFollowUp(ctx, parent, task.Stage); err != nil {
				uc.completeTask(task, "error: "+err.Error())
				summary.addError(fmt.Errorf("task %s (%s): %w", task.ID, task.Stage, err))
				continue
			}
			uc.completeTask(task, "sent")
			summary.Successful++
			summary.TotalCreated++

		case model.StageMoveToNext:
			started := uc.moveToNext(ctx, parent)
			uc.completeTask(task, "moved_to_next")
			summary.Successful++
			summary.TotalCreated += started

		default:
			uc.completeTask(task, "error: unknown stage "+task.Stage)
			summary.addError(fmt.Errorf("task %s: unknown stage %q", task.ID, task.Stage))
		}
	}
	return summary, nil
}

func (uc *FollowUpUsecase) completeTask(task *model.FollowUpTask, result string) {
	if err := uc.outreach.CompleteTask(task, result); err != nil {
		uc.log.Error("completing task failed",
			zap.String("task", task.ID.String()), zap.Error(err))
	}
}

// sendFollowUp composes the next-stage email from the stored initial
// log and chains the new log to it via ParentID and the shared thread.
func (uc *FollowUpUsecase) sendFollowUp(ctx context.Context, parent *model.OutreachLog, stage string) error {
	recipients := stringsFromJSON(parent.Recipients)
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients on parent log")
	}
	if parent.Sender == "" {
		return fmt.Errorf("no sender on parent log")
	}

	subject := renderSubject(parent.Urgent, stage, parent.RoleTitle)
	if parent.Subject != "" {
		subject = parent.Subject
	}
	subject = "Re: " + subject

	threadID := parent.ThreadID
	if threadID == "" {
		threadID = threadIDFor(parent.RoleID, parent.CompanyID)
	}

	senderName := uc.senderNameFor(parent)
	body := renderBody(parent.Urgent, stage, parent.CompanyName, parent.RoleTitle, senderName, nil)
	asOf := uc.now()
	messageID := fmt.Sprintf("<%s-%d-%s@%s>", stage, asOf.Unix(), uuid.NewString()[:8], uc.mailCfg.FromDomain)

	msg := &service.OutboundMessage{
		From:       parent.Sender,
		To:         recipients,
		ReplyTo:    parent.Sender,
		Subject:    subject,
		HTMLBody:   body,
		MessageID:  messageID,
		InReplyTo:  parent.MessageID,
		References: parent.MessageID,
		ThreadID:   threadID,
	}
	if err := uc.mail.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %s email: %w", stage, err)
	}

	child := &model.OutreachLog{
		RoleID:         parent.RoleID,
		CompanyID:      parent.CompanyID,
		RoleTitle:      parent.RoleTitle,
		CompanyName:    parent.CompanyName,
		Subject:        subject,
		Stage:          stage,
		Sender:         parent.Sender,
		Recipients:     parent.Recipients,
		CandidateIDs:   parent.CandidateIDs,
		CandidateCount: parent.CandidateCount,
		Urgent:         parent.Urgent,
		SentAt:         asOf,
		MessageID:      messageID,
		ThreadID:       threadID,
		InReplyTo:      parent.MessageID,
		ParentID:       &parent.ID,
	}
	if err := uc.outreach.CreateLog(child); err != nil {
		return fmt.Errorf("persist %s log: %w", stage, err)
	}

	parent.FollowUpCount++
	parent.LastFollowUpAt = &asOf
	if err := uc.outreach.UpdateLog(parent); err != nil {
		uc.log.Error("updating parent log failed",
			zap.String("log", parent.ID.String()), zap.Error(err))
	}

	uc.log.Info("follow-up sent",
		zap.String("stage", stage),
		zap.String("role", parent.RoleTitle),
		zap.String("company", parent.CompanyName))
	return nil
}

func (uc *FollowUpUsecase) senderNameFor(parent *model.OutreachLog) string {
	for _, id := range uuidsFromJSON(parent.CandidateIDs) {
		c, err := uc.candidates.FindByID(id)
		if err == nil && c.SpecialistName != "" {
			return c.SpecialistName
		}
	}
	return "The Placement Team"
}

// moveToNext reassigns every unresponsive candidate of the exhausted
// thread to up to three next-best roles they have never been pitched
// to, starting an independent new cycle per pairing. Returns the
// number of cycles started.
func (uc *FollowUpUsecase) moveToNext(ctx context.Context, parent *model.OutreachLog) int {
	candidateIDs := uuidsFromJSON(parent.CandidateIDs)
	started := 0

	for _, candidateID := range candidateIDs {
		nextRoles := uc.nextBestRoles(candidateID, 3)
		if len(nextRoles) == 0 {
			uc.log.Info("no next roles for candidate",
				zap.String("candidate", candidateID.String()))
			continue
		}
		for _, roleID := range nextRoles {
			skipped, err := uc.dispatcher.StartCycle(ctx, roleID, []uuid.UUID{candidateID}, parent.Urgent)
			if err != nil {
				uc.log.Error("starting next cycle failed",
					zap.String("candidate", candidateID.String()),
					zap.String("role", roleID.String()),
					zap.Error(err))
				continue
			}
			if !skipped {
				started++
			}
		}
	}

	now := uc.now()
	parent.ResponseType = model.HistoryStatusMovedToNext
	parent.ResponseAt = &now
	if err := uc.outreach.UpdateLog(parent); err != nil {
		uc.log.Error("updating parent log failed", zap.String("log", parent.ID.String()), zap.Error(err))
	}
	if err := uc.outreach.UpdateHistoryStatus(parent.RoleID, candidateIDs, model.HistoryStatusMovedToNext); err != nil {
		uc.log.Error("updating history failed", zap.String("log", parent.ID.String()), zap.Error(err))
	}
	return started
}

// nextBestRoles returns up to limit role ids from the candidate's
// active matches, best score first, excluding every role they were
// already pitched to.
func (uc *FollowUpUsecase) nextBestRoles(candidateID uuid.UUID, limit int) []uuid.UUID {
	matches, err := uc.matches.ActiveForCandidate(candidateID)
	if err != nil {
		uc.log.Error("loading matches failed", zap.String("candidate", candidateID.String()), zap.Error(err))
		return nil
	}
	pitchedIDs, err := uc.outreach.PitchedRoleIDs(candidateID)
	if err != nil {
		uc.log.Error("loading pitch history failed", zap.String("candidate", candidateID.String()), zap.Error(err))
		return nil
	}
	pitched := make(map[uuid.UUID]bool, len(pitchedIDs))
	for _, id := range pitchedIDs {
		pitched[id] = true
	}

	var next []uuid.UUID
	for _, m := range matches {
		if len(next) >= limit {
			break
		}
		if m.Score < uc.cfg.QualityThreshold || pitched[m.RoleID] {
			continue
		}
		next = append(next, m.RoleID)
	}
	return next
}

// MarkResponseReceived records a company reply on the log and cancels
// all of its still-open tasks, the short-circuit out of the cadence.
func (uc *FollowUpUsecase) MarkResponseReceived(logID uuid.UUID, responseType string) error {
	log, err := uc.outreach.FindLogByID(logID)
	if err != nil {
		return fmt.Errorf("find outreach log %s: %w", logID, err)
	}

	now := uc.now()
	log.ResponseReceived = true
	log.ResponseAt = &now
	log.ResponseType = responseType
	if err := uc.outreach.UpdateLog(log); err != nil {
		return fmt.Errorf("update outreach log: %w", err)
	}

	if err := uc.outreach.CancelIncompleteTasks(log.ID, "cancelled_response_received"); err != nil {
		return fmt.Errorf("cancel tasks: %w", err)
	}

	candidateIDs := uuidsFromJSON(log.CandidateIDs)
	if err := uc.outreach.UpdateHistoryStatus(log.RoleID, candidateIDs, model.HistoryStatusResponded); err != nil {
		uc.log.Error("updating history failed", zap.String("log", log.ID.String()), zap.Error(err))
	}

	uc.log.Info("response recorded",
		zap.String("log", log.ID.String()),
		zap.String("type", responseType))
	return nil
}
