package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestParseTagPairs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain array",
			text: `["Finance -> Financial Services", "Tech -> Technology"]`,
			want: []string{"Finance -> Financial Services", "Tech -> Technology"},
		},
		{
			name: "markdown fenced",
			text: "```json\n[\"Finance -> Financial Services\"]\n```",
			want: []string{"Finance -> Financial Services"},
		},
		{
			name: "bare fence",
			text: "```\n[\"Finance -> Financial Services\"]\n```",
			want: []string{"Finance -> Financial Services"},
		},
		{
			name: "json prefix",
			text: `json ["Finance -> Financial Services"]`,
			want: []string{"Finance -> Financial Services"},
		},
		{
			name: "array buried in prose",
			text: `Here are the pairs: ["Finance -> Financial Services"] hope that helps`,
			want: []string{"Finance -> Financial Services"},
		},
		{
			name: "entries without arrow dropped",
			text: `["Finance -> Financial Services", "no match", ""]`,
			want: []string{"Finance -> Financial Services"},
		},
		{name: "empty array", text: `[]`, want: nil},
		{name: "prose only", text: `I could not find any matches.`, want: nil},
		{name: "empty input", text: ``, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTagPairs(tt.text))
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, isRetryableError(nil))
	assert.True(t, isRetryableError(&genai.APIError{Code: 429, Message: "rate limited"}))
	assert.True(t, isRetryableError(&genai.APIError{Code: 503, Message: "overloaded"}))
	assert.False(t, isRetryableError(&genai.APIError{Code: 400, Message: "bad request"}))
	assert.False(t, isRetryableError(&genai.APIError{Code: 401, Message: "unauthorized"}))
	assert.True(t, isRetryableError(errors.New("dial tcp: connection refused")))
	assert.False(t, isRetryableError(errors.New("context canceled")))
	assert.False(t, isRetryableError(errors.New("something else entirely")))
}

func TestCalculateBackoffCapsAtMaxDelay(t *testing.T) {
	s := &GeminiService{BaseDelay: time.Second, MaxDelay: 90 * time.Second}

	first := s.calculateBackoff(1)
	assert.Greater(t, first, time.Duration(0))
	assert.LessOrEqual(t, first, 2*time.Second)

	late := s.calculateBackoff(12)
	assert.LessOrEqual(t, late, 90*time.Second+90*time.Second/4)
}

func TestValidateEmbeddingResponse(t *testing.T) {
	_, err := validateEmbeddingResponse(nil)
	assert.Error(t, err)

	_, err = validateEmbeddingResponse(&genai.EmbedContentResponse{})
	assert.Error(t, err)

	_, err = validateEmbeddingResponse(&genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: []float32{}}},
	})
	assert.Error(t, err)

	got, err := validateEmbeddingResponse(&genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: []float32{0.1, 0.2}}},
	})
	assert.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, got)
}
