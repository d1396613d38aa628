package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rizalfahlevi/intern-outreach/internal/config"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type GeminiServiceInterface interface {
	MatchTags(ctx context.Context, tags, interests []string) ([]string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type GeminiService struct {
	Client            *genai.Client
	Model             string
	EmbeddingModel    string
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	RequestTimeout    time.Duration
	log               *zap.Logger
	consecutiveErrors int
	circuitBreakerMax int
}

func NewGeminiService(ctx context.Context, log *zap.Logger) (*GeminiService, error) {
	geminiConfig := config.LoadGeminiConfig()
	if geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiService{
		Client:            client,
		Model:             geminiConfig.Model,
		EmbeddingModel:    geminiConfig.EmbeddingModel,
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          90 * time.Second,
		RequestTimeout:    90 * time.Second,
		log:               log,
		circuitBreakerMax: 5,
	}, nil
}

const matchTagsPrompt = `You match internship role categories to a candidate's interests.

Role tags:
%s

Candidate interests:
%s

Pair each interest with the single most semantically similar tag, if any.
Only pair values that genuinely describe the same industry or field.
Return STRICTLY a JSON array of strings, one per pair, in the exact format
"interest -> tag". Return [] if nothing matches.`

// MatchTags asks the model to pair role tags with candidate interests
// and returns "interest -> tag" strings. Callers fall back to the
// deterministic tiered matcher when this errors or returns nothing.
func (s *GeminiService) MatchTags(ctx context.Context, tags, interests []string) ([]string, error) {
	if len(tags) == 0 || len(interests) == 0 {
		return nil, nil
	}

	prompt := fmt.Sprintf(matchTagsPrompt,
		"- "+strings.Join(tags, "\n- "),
		"- "+strings.Join(interests, "\n- "))

	result, err := s.generateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	pairs := parseTagPairs(result.Text())
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no usable pairs in model output")
	}
	return pairs, nil
}

// parseTagPairs extracts "a -> b" strings from model output, tolerating
// markdown fences, a stray "json" prefix and junk entries.
func parseTagPairs(text string) []string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "json"))

	parsed := gjson.Parse(text)
	if !parsed.IsArray() {
		// Sometimes the array is buried in prose.
		if start, end := strings.Index(text, "["), strings.LastIndex(text, "]"); start >= 0 && end > start {
			parsed = gjson.Parse(text[start : end+1])
		}
	}
	if !parsed.IsArray() {
		return nil
	}

	var pairs []string
	for _, v := range parsed.Array() {
		pair := strings.TrimSpace(v.String())
		if strings.Contains(pair, "->") {
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

func (s *GeminiService) generateContent(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	if s.consecutiveErrors >= s.circuitBreakerMax {
		return nil, fmt.Errorf("circuit breaker open: too many consecutive errors (%d)", s.consecutiveErrors)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.1)),
	}

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.log.Warn("retrying generate content",
				zap.Int("attempt", attempt),
				zap.Int("max", s.MaxRetries),
				zap.Duration("delay", delay))

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return nil, fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		result, err := s.Client.Models.GenerateContent(timeoutCtx, s.Model, genai.Text(prompt), genConfig)
		if err == nil {
			s.consecutiveErrors = 0
			if err := validateGenerateResponse(result); err != nil {
				return nil, fmt.Errorf("invalid response: %w", err)
			}
			return result, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			s.consecutiveErrors++
			return nil, fmt.Errorf("generate content failed: %w", err)
		}
		s.log.Warn("retryable gemini error", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	s.consecutiveErrors++
	return nil, fmt.Errorf("max retries (%d) exceeded for generate content: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}
	if len(trimmed) > 10000 {
		trimmed = trimmed[:10000]
	}

	if s.consecutiveErrors >= s.circuitBreakerMax {
		return nil, fmt.Errorf("circuit breaker open: too many consecutive errors (%d)", s.consecutiveErrors)
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	content := []*genai.Content{genai.NewContentFromText(trimmed, genai.RoleUser)}

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.log.Warn("retrying embedding",
				zap.Int("attempt", attempt),
				zap.Int("max", s.MaxRetries),
				zap.Duration("delay", delay))

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return nil, fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		result, err := s.Client.Models.EmbedContent(timeoutCtx, s.EmbeddingModel, content, nil)
		if err == nil {
			s.consecutiveErrors = 0
			embedding, err := validateEmbeddingResponse(result)
			if err != nil {
				return nil, fmt.Errorf("invalid embedding response: %w", err)
			}
			return embedding, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			s.consecutiveErrors++
			return nil, fmt.Errorf("generate embedding failed: %w", err)
		}
		s.log.Warn("retryable gemini error", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	s.consecutiveErrors++
	return nil, fmt.Errorf("max retries (%d) exceeded for embedding: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}
	jitter := time.Duration(float64(delay) * 0.25)
	return delay - jitter/2 + time.Duration(float64(jitter)*0.5)
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()

	if strings.Contains(errMsg, "context canceled") ||
		strings.Contains(errMsg, "context deadline exceeded") {
		return false
	}
	if apiErr, ok := err.(*genai.APIError); ok {
		switch apiErr.Code {
		case 429:
			return true
		case 500, 502, 503, 504:
			return true
		case 400, 401, 403, 404:
			return false
		}
	}
	if strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF") {
		return true
	}
	return false
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}

func validateEmbeddingResponse(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}
	embedding := resp.Embeddings[0].Values
	if len(embedding) == 0 {
		return nil, fmt.Errorf("embedding vector is empty")
	}
	for i, val := range embedding {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil, fmt.Errorf("invalid embedding value at index %d: %v", i, val)
		}
	}
	return embedding, nil
}
