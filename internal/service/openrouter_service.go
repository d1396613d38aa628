package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rizalfahlevi/intern-outreach/internal/config"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type ExtractedSkill struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

type SkillExtractorInterface interface {
	ExtractSkills(ctx context.Context, cvText string) ([]ExtractedSkill, error)
}

type OpenRouterService struct {
	APIKey string
	Model  string
	client *resty.Client
	log    *zap.Logger
}

func NewOpenRouterService(log *zap.Logger) *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	client := resty.New().
		SetBaseURL("https://openrouter.ai/api/v1").
		SetTimeout(60 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &OpenRouterService{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		client: client,
		log:    log,
	}
}

const extractSkillsPrompt = `Extract the professional skills from the CV text below.

Return STRICTLY a JSON array with this schema:
[{"name": "<skill>", "category": "<technical|soft|language|tool>", "confidence": <0-1>}]

Only include skills the CV actually evidences. No prose, no markdown.

CV:
%s`

// ExtractSkills pulls (name, category, confidence) triples out of CV
// text. Callers treat any failure as "no skills" rather than aborting
// the surrounding flow.
func (s *OpenRouterService) ExtractSkills(ctx context.Context, cvText string) ([]ExtractedSkill, error) {
	if strings.TrimSpace(cvText) == "" {
		return nil, fmt.Errorf("cv text is empty")
	}
	if s.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "system", "content": "You extract structured skill data from resumes."},
				{"role": "user", "content": fmt.Sprintf(extractSkillsPrompt, cvText)},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("openrouter request: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("openrouter status %d: %s", resp.StatusCode(), resp.String())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return nil, fmt.Errorf("no content in openrouter response")
	}

	skills := parseSkills(text)
	if len(skills) == 0 {
		return nil, fmt.Errorf("no skills parsed from model output")
	}
	s.log.Debug("extracted skills", zap.Int("count", len(skills)))
	return skills, nil
}

func parseSkills(text string) []ExtractedSkill {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	parsed := gjson.Parse(strings.TrimSpace(text))
	if !parsed.IsArray() {
		if start, end := strings.Index(text, "["), strings.LastIndex(text, "]"); start >= 0 && end > start {
			parsed = gjson.Parse(text[start : end+1])
		}
	}
	if !parsed.IsArray() {
		return nil
	}

	var skills []ExtractedSkill
	for _, v := range parsed.Array() {
		name := strings.TrimSpace(v.Get("name").String())
		if name == "" {
			continue
		}
		skills = append(skills, ExtractedSkill{
			Name:       name,
			Category:   v.Get("category").String(),
			Confidence: v.Get("confidence").Float(),
		})
	}
	return skills
}
