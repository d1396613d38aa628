package repository

import (
	"github.com/pgvector/pgvector-go"
	"github.com/rizalfahlevi/intern-outreach/internal/model"
	"gorm.io/gorm"
)

type TagEmbeddingRepository struct {
	db *gorm.DB
}

func NewTagEmbeddingRepository(db *gorm.DB) *TagEmbeddingRepository {
	return &TagEmbeddingRepository{db}
}

func (r *TagEmbeddingRepository) FindByText(text string) (*model.TagEmbedding, error) {
	var te model.TagEmbedding
	err := r.db.First(&te, "text = ?", text).Error
	return &te, err
}

func (r *TagEmbeddingRepository) Create(te *model.TagEmbedding) error {
	return r.db.Create(te).Error
}

// NearestText returns the cached tag closest to the embedding by
// cosine distance, together with the similarity (1 - distance).
func (r *TagEmbeddingRepository) NearestText(embedding pgvector.Vector, candidates []string) (string, float64, error) {
	var row struct {
		Text     string
		Distance float64
	}
	err := r.db.Raw(`
        SELECT text, embedding <=> ? AS distance
        FROM tag_embeddings
        WHERE text IN ?
        ORDER BY embedding <=> ?
        LIMIT 1
    `, embedding, candidates, embedding).Scan(&row).Error
	if err != nil {
		return "", 0, err
	}
	return row.Text, 1 - row.Distance, nil
}
