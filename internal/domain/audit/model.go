package audit

import "time"

const (
	ActionResultIngested      = "RESULT_INGESTED"
	ActionScoringConfigSaved  = "SCORING_CONFIG_SAVED"
	ActionLeaderboardRebuilt  = "LEADERBOARD_REBUILT"
	EntityTypeMatch           = "MATCH"
	EntityTypeScoringConfig   = "SCORING_CONFIG"
	EntityTypeLeaderboard     = "LEADERBOARD"
)

// Entry records one administrative action against the scoring state.
type Entry struct {
	ID         string
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Metadata   map[string]any
	CreatedAt  time.Time
}
