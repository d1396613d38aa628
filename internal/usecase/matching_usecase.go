package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rizalfahlevi/intern-outreach/internal/config"
	"github.com/rizalfahlevi/intern-outreach/internal/matching"
	"github.com/rizalfahlevi/intern-outreach/internal/model"
	"github.com/rizalfahlevi/intern-outreach/internal/service"
	"github.com/rizalfahlevi/intern-outreach/internal/util"
	"go.uber.org/zap"
)

type MatchingUsecase struct {
	candidates CandidateStore
	roles      RoleStore
	matches    MatchStore
	tagMatcher matching.TagMatcher // nil means deterministic only
	crm        service.CRMServiceInterface
	extractor  service.SkillExtractorInterface
	cfg        *config.OutreachConfig
	log        *zap.Logger
	now        func() time.Time
}

func NewMatchingUsecase(
	candidates CandidateStore,
	roles RoleStore,
	matches MatchStore,
	tagMatcher matching.TagMatcher,
	crm service.CRMServiceInterface,
	extractor service.SkillExtractorInterface,
	cfg *config.OutreachConfig,
	log *zap.Logger,
) *MatchingUsecase {
	return &MatchingUsecase{
		candidates: candidates,
		roles:      roles,
		matches:    matches,
		tagMatcher: tagMatcher,
		crm:        crm,
		extractor:  extractor,
		cfg:        cfg,
		log:        log,
		now:        time.Now,
	}
}

// RecomputeForCandidate scores the candidate against every eligible
// role and replaces their stored matches in one transaction. Returns
// the number of matches stored.
func (uc *MatchingUsecase) RecomputeForCandidate(ctx context.Context, candidateID uuid.UUID) (int, error) {
	candidate, err := uc.candidates.FindByID(candidateID)
	if err != nil {
		return 0, fmt.Errorf("find candidate %s: %w", candidateID, err)
	}

	roles, err := uc.roles.GetActive()
	if err != nil {
		return 0, fmt.Errorf("load active roles: %w", err)
	}

	interests1 := interestList(candidate.Industry1, candidate.Industry1Areas)
	interests2 := interestList(candidate.Industry2, candidate.Industry2Areas)
	skills := matching.ParseListField(candidate.Skills)
	candidateRemote := matching.CandidateWantsRemote(candidate.Location, candidate.SecondaryLocation)
	asOf := uc.now()

	var results []model.Match
	for i := range roles {
		role := &roles[i]

		deals, err := uc.roles.GetCompanyDeals(role.CompanyID)
		if err != nil {
			// Missing relationship data fails open for eligibility.
			uc.log.Warn("could not load deals", zap.String("role", role.Title), zap.Error(err))
			deals = nil
		}

		if excl := matching.CheckEligibility(role.Company, deals, asOf, candidate.StartDate); excl.Excluded {
			continue
		}

		tags := matching.ParseListField(role.Tags)
		matched1 := uc.matchBucket(ctx, tags, interests1)
		matched2 := uc.matchBucket(ctx, tags, interests2)
		if len(matched1) == 0 && len(matched2) == 0 {
			// Industry relevance is a hard gate.
			continue
		}

		roleText := role.Description + " " + role.Requirements
		matchedSkills := matching.MatchSkills(skills, roleText)
		locationMatch := matching.MatchLocation(candidate.Location, candidate.SecondaryLocation, role.Location)
		roleRemote, roleOffice, roleHybrid := matching.RolePolicyModes(role.WorkPolicy, role.HybridDays, role.OfficePolicy)
		policyMatch := matching.MatchWorkPolicy(candidateRemote, roleRemote, roleOffice, roleHybrid)

		input := matching.ScoreInput{
			Industry1Matches:  matched1,
			Industry2Matches:  matched2,
			SkillMatches:      matchedSkills,
			StartDatePriority: matching.StartDatePriority(candidate.StartDate, deals),
			RejectedDeals:     role.RejectedDealCount,
		}
		score := matching.Score(input)
		if score < uc.cfg.StoreThreshold {
			continue
		}

		results = append(results, model.Match{
			CandidateID:        candidate.ID,
			RoleID:             role.ID,
			Score:              score,
			Industry1Match:     len(matched1) > 0,
			Industry2Match:     len(matched2) > 0,
			SkillMatch:         len(matchedSkills) > 0,
			StartDatePriority:  input.StartDatePriority,
			MatchedIndustries1: toJSON(matched1),
			MatchedIndustries2: toJSON(matched2),
			MatchedSkills:      toJSON(matchedSkills),
			Reason:             matching.BuildReason(input, locationMatch, policyMatch),
			Status:             model.MatchStatusActive,
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	if err := uc.matches.ReplaceForCandidate(candidate.ID, results); err != nil {
		return 0, fmt.Errorf("replace matches for %s: %w", candidateID, err)
	}
	uc.log.Info("recomputed matches",
		zap.String("candidate", candidate.Name),
		zap.Int("stored", len(results)))
	return len(results), nil
}

// RecomputeAll iterates every candidate, isolating per-candidate
// failures so one bad record never aborts the batch.
func (uc *MatchingUsecase) RecomputeAll(ctx context.Context) (*BatchSummary, error) {
	candidates, err := uc.candidates.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	summary := &BatchSummary{Total: len(candidates)}
	for _, c := range candidates {
		created, err := uc.RecomputeForCandidate(ctx, c.ID)
		if err != nil {
			uc.log.Error("recompute failed", zap.String("candidate", c.Name), zap.Error(err))
			summary.addError(fmt.Errorf("%s: %w", c.Name, err))
			continue
		}
		summary.Successful++
		summary.TotalCreated += created
	}
	return summary, nil
}

func (uc *MatchingUsecase) TopMatches(candidateID uuid.UUID, limit int) ([]model.Match, error) {
	if limit <= 0 {
		limit = 10
	}
	return uc.matches.TopForCandidate(candidateID, limit)
}

// ExtractCandidateSkills downloads the candidate's resume, extracts its
// text and asks the skill extractor for structured skills, persisting
// the names on the candidate record.
func (uc *MatchingUsecase) ExtractCandidateSkills(ctx context.Context, candidateID uuid.UUID) ([]service.ExtractedSkill, error) {
	candidate, err := uc.candidates.FindByID(candidateID)
	if err != nil {
		return nil, fmt.Errorf("find candidate %s: %w", candidateID, err)
	}
	if candidate.ResumeFileID == "" {
		return nil, fmt.Errorf("candidate %s has no resume on file", candidate.Name)
	}

	resume, err := uc.crm.DownloadResume(ctx, candidate.ResumeFileID)
	if err != nil {
		return nil, fmt.Errorf("download resume: %w", err)
	}
	text, err := util.ExtractPDFText(resume.Content)
	if err != nil {
		return nil, fmt.Errorf("extract resume text: %w", err)
	}

	skills, err := uc.extractor.ExtractSkills(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extract skills: %w", err)
	}

	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	if err := uc.candidates.UpdateSkills(candidate.ID, toJSON(names)); err != nil {
		return nil, fmt.Errorf("save skills: %w", err)
	}
	uc.log.Info("updated candidate skills",
		zap.String("candidate", candidate.Name),
		zap.Int("skills", len(names)))
	return skills, nil
}

// matchBucket runs the configured semantic matcher when present and
// falls back to the deterministic tiers on any failure or empty result.
func (uc *MatchingUsecase) matchBucket(ctx context.Context, tags, interests []string) []string {
	if len(tags) == 0 || len(interests) == 0 {
		return nil
	}
	if uc.tagMatcher != nil {
		pairs, err := uc.tagMatcher.MatchTags(ctx, tags, interests)
		if err == nil && len(pairs) > 0 {
			return pairs
		}
		if err != nil {
			uc.log.Warn("semantic matcher failed, using deterministic tiers", zap.Error(err))
		}
	}
	return matching.MatchIndustry(tags, interests)
}

func interestList(industry, areas string) []string {
	combined := matching.ParseListField(industry)
	combined = append(combined, matching.ParseListField(areas)...)
	seen := make(map[string]bool, len(combined))
	var out []string
	for _, it := range combined {
		key := strings.ToLower(it)
		if !seen[key] {
			seen[key] = true
			out = append(out, it)
		}
	}
	return out
}

func toJSON(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}
