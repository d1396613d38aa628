package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/rizalfahlevi/intern-outreach/internal/model"
	"github.com/rizalfahlevi/intern-outreach/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmbeddingMatcher pairs tags and interests by cosine similarity over
// cached Gemini embeddings. It satisfies the same contract as the LLM
// matcher: "interest -> tag" pairs, error when nothing usable comes
// back, deterministic fallback handled by the caller.
type EmbeddingMatcher struct {
	gemini    GeminiServiceInterface
	repo      *repository.TagEmbeddingRepository
	threshold float64
	log       *zap.Logger
}

func NewEmbeddingMatcher(gemini GeminiServiceInterface, repo *repository.TagEmbeddingRepository, threshold float64, log *zap.Logger) *EmbeddingMatcher {
	return &EmbeddingMatcher{gemini: gemini, repo: repo, threshold: threshold, log: log}
}

func (m *EmbeddingMatcher) MatchTags(ctx context.Context, tags, interests []string) ([]string, error) {
	if len(tags) == 0 || len(interests) == 0 {
		return nil, nil
	}

	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		nt := strings.ToLower(strings.TrimSpace(tag))
		if nt == "" {
			continue
		}
		if _, err := m.embeddingFor(ctx, nt); err != nil {
			return nil, fmt.Errorf("embed tag %q: %w", nt, err)
		}
		normalized = append(normalized, nt)
	}
	if len(normalized) == 0 {
		return nil, nil
	}

	var pairs []string
	for _, interest := range interests {
		ni := strings.ToLower(strings.TrimSpace(interest))
		if ni == "" {
			continue
		}
		embedding, err := m.embeddingFor(ctx, ni)
		if err != nil {
			return nil, fmt.Errorf("embed interest %q: %w", ni, err)
		}
		text, similarity, err := m.repo.NearestText(embedding, normalized)
		if err != nil {
			return nil, fmt.Errorf("nearest tag for %q: %w", ni, err)
		}
		if text == "" || similarity < m.threshold {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s -> %s", interest, text))
	}

	if len(pairs) == 0 {
		return nil, fmt.Errorf("no pairs above similarity threshold %.2f", m.threshold)
	}
	return pairs, nil
}

func (m *EmbeddingMatcher) embeddingFor(ctx context.Context, text string) (pgvector.Vector, error) {
	cached, err := m.repo.FindByText(text)
	if err == nil {
		return cached.Embedding, nil
	}
	if err != gorm.ErrRecordNotFound {
		return pgvector.Vector{}, err
	}

	values, err := m.gemini.GenerateEmbedding(ctx, text)
	if err != nil {
		return pgvector.Vector{}, err
	}
	embedding := pgvector.NewVector(values)
	if err := m.repo.Create(&model.TagEmbedding{Text: text, Embedding: embedding}); err != nil {
		// Cache miss is not fatal, the vector is still usable.
		m.log.Warn("failed to cache tag embedding", zap.String("text", text), zap.Error(err))
	}
	return embedding, nil
}
