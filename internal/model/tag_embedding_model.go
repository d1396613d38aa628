package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// TagEmbedding caches the embedding vector for a normalized tag or
// interest string so the embedding matcher does not re-embed known
// values on every recompute.
type TagEmbedding struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Text      string          `gorm:"type:varchar(255);uniqueIndex" json:"text"`
	Embedding pgvector.Vector `gorm:"type:vector(3072)" json:"embedding"`
	CreatedAt time.Time       `json:"created_at"`
}

func (t *TagEmbedding) TableName() string {
	return "tag_embeddings"
}
