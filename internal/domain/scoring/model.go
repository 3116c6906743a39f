package scoring

import "time"

// Config is the singleton table of point values awarded per category.
// Changes apply only to future ingestions; already-computed scores are not
// retroactively recalculated.
type Config struct {
	Winner       int
	ExactScore   int
	TopScorer    int
	FirstScorer  int
	MVP          int
	YellowCards  int
	RedCards     int
	MostPasses   int
	PerfectBonus int
	UpdatedBy    string
	UpdatedAt    time.Time
}

// DefaultConfig is the tournament launch configuration.
func DefaultConfig() Config {
	return Config{
		Winner:       3,
		ExactScore:   5,
		TopScorer:    3,
		FirstScorer:  3,
		MVP:          3,
		YellowCards:  2,
		RedCards:     2,
		MostPasses:   2,
		PerfectBonus: 10,
	}
}

// Breakdown is the per-category point split for one scored prediction.
// Winner and ExactScore are mutually exclusive: an exact score subsumes
// winner correctness and is never summed with it.
type Breakdown struct {
	Winner       int
	ExactScore   int
	TopScorer    int
	FirstScorer  int
	MVP          int
	YellowCards  int
	RedCards     int
	MostPasses   int
	PerfectBonus int
	Total        int
}

// PredictionScore is the persisted breakdown, one-to-one with a prediction.
// Overwritten in place whenever its match's result is (re-)ingested.
type PredictionScore struct {
	PredictionID string
	UserID       string
	MatchID      string
	Breakdown    Breakdown
	CalculatedAt time.Time
}
