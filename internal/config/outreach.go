package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

type OutreachConfig struct {
	// Matching
	MatchStrategy       string  // "deterministic", "gemini" or "embedding"
	StoreThreshold      float64 // minimum score kept in the match table
	QualityThreshold    float64 // minimum score eligible for outreach pools
	EmbeddingSimilarity float64 // cosine cutoff for the embedding matcher

	// Outreach
	TopCandidatesPerRole int
	WeeklyEmailLimit     int
	VisaUrgentDays       int
	NoVisaUrgentDays     int

	// Follow-up cadence, offsets from the initial send
	FollowUpAfter   time.Duration
	FinalAfter      time.Duration
	MoveToNextAfter time.Duration
}

var (
	outreachConfig *OutreachConfig
	outreachOnce   sync.Once
)

func envFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

func LoadOutreachConfig() *OutreachConfig {
	outreachOnce.Do(func() {
		strategy := os.Getenv("MATCH_STRATEGY")
		if strategy == "" {
			strategy = "deterministic"
		}
		outreachConfig = &OutreachConfig{
			MatchStrategy:        strategy,
			StoreThreshold:       envFloat("MATCH_STORE_THRESHOLD", 0.1),
			QualityThreshold:     envFloat("MATCH_QUALITY_THRESHOLD", 0.2),
			EmbeddingSimilarity:  envFloat("EMBEDDING_SIMILARITY_THRESHOLD", 0.85),
			TopCandidatesPerRole: envInt("TOP_CANDIDATES_PER_ROLE", 3),
			WeeklyEmailLimit:     envInt("WEEKLY_EMAIL_LIMIT", 1),
			VisaUrgentDays:       envInt("VISA_URGENT_DAYS", 120),
			NoVisaUrgentDays:     envInt("NO_VISA_URGENT_DAYS", 60),
			FollowUpAfter:        time.Duration(envInt("FOLLOW_UP_AFTER_HOURS", 48)) * time.Hour,
			FinalAfter:           time.Duration(envInt("FINAL_AFTER_HOURS", 96)) * time.Hour,
			MoveToNextAfter:      time.Duration(envInt("MOVE_TO_NEXT_AFTER_HOURS", 144)) * time.Hour,
		}
	})
	return outreachConfig
}
