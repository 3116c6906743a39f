package httpapi

import (
	"time"

	"github.com/golazozone/prediction-league/internal/domain/leaderboard"
	"github.com/golazozone/prediction-league/internal/domain/prediction"
	"github.com/golazozone/prediction-league/internal/domain/result"
	"github.com/golazozone/prediction-league/internal/domain/scoring"
	"github.com/golazozone/prediction-league/internal/domain/team"
	"github.com/golazozone/prediction-league/internal/usecase"
)

type teamDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	Group         string `json:"group"`
	IsPlaceholder bool   `json:"is_placeholder,omitempty"`
}

type matchDTO struct {
	ID          string     `json:"id"`
	Number      int        `json:"number"`
	Phase       string     `json:"phase"`
	Group       string     `json:"group,omitempty"`
	Matchday    int        `json:"matchday,omitempty"`
	HomeTeam    *teamDTO   `json:"home_team,omitempty"`
	AwayTeam    *teamDTO   `json:"away_team,omitempty"`
	HomeSlot    string     `json:"home_slot,omitempty"`
	AwaySlot    string     `json:"away_slot,omitempty"`
	Venue       string     `json:"venue,omitempty"`
	KickoffAt   time.Time  `json:"kickoff_at"`
	LockAt      time.Time  `json:"lock_at"`
	Status      string     `json:"status"`
	Predictable bool       `json:"predictable"`
	Result      *resultDTO `json:"result,omitempty"`
}

type resultDTO struct {
	MatchID     string    `json:"match_id"`
	HomeScore   int       `json:"home_score"`
	AwayScore   int       `json:"away_score"`
	Winner      string    `json:"winner"`
	TopScorer   string    `json:"top_scorer,omitempty"`
	FirstScorer string    `json:"first_scorer,omitempty"`
	MVP         string    `json:"mvp,omitempty"`
	MostPasses  string    `json:"most_passes,omitempty"`
	YellowCards *int      `json:"yellow_cards,omitempty"`
	RedCards    *int      `json:"red_cards,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

type predictionDTO struct {
	ID          string     `json:"id"`
	MatchID     string     `json:"match_id"`
	HomeScore   int        `json:"home_score"`
	AwayScore   int        `json:"away_score"`
	Winner      string     `json:"winner"`
	TopScorer   string     `json:"top_scorer,omitempty"`
	FirstScorer string     `json:"first_scorer,omitempty"`
	MVP         string     `json:"mvp,omitempty"`
	MostPasses  string     `json:"most_passes,omitempty"`
	YellowCards *int       `json:"yellow_cards,omitempty"`
	RedCards    *int       `json:"red_cards,omitempty"`
	Locked      bool       `json:"locked"`
	LockedAt    *time.Time `json:"locked_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type breakdownDTO struct {
	Winner       int `json:"winner"`
	ExactScore   int `json:"exact_score"`
	TopScorer    int `json:"top_scorer"`
	FirstScorer  int `json:"first_scorer"`
	MVP          int `json:"mvp"`
	YellowCards  int `json:"yellow_cards"`
	RedCards     int `json:"red_cards"`
	MostPasses   int `json:"most_passes"`
	PerfectBonus int `json:"perfect_bonus"`
	Total        int `json:"total"`
}

type predictionViewDTO struct {
	Prediction predictionDTO `json:"prediction"`
	Match      matchDTO      `json:"match"`
	Result     *resultDTO    `json:"result,omitempty"`
	Score      *breakdownDTO `json:"score,omitempty"`
}

type leaderboardEntryDTO struct {
	Rank           int       `json:"rank"`
	UserID         string    `json:"user_id"`
	DisplayName    string    `json:"display_name"`
	TotalPoints    int       `json:"total_points"`
	MatchesPlayed  int       `json:"matches_played"`
	ExactScores    int       `json:"exact_scores"`
	CorrectWinners int       `json:"correct_winners"`
	Accuracy       float64   `json:"accuracy"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type groupMemberStandingDTO struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	GroupPoints int    `json:"group_points"`
}

type groupStandingsDTO struct {
	GroupID   string                   `json:"group_id"`
	GroupName string                   `json:"group_name"`
	Members   []groupMemberStandingDTO `json:"members"`
}

type scoringConfigDTO struct {
	Winner       int        `json:"winner"`
	ExactScore   int        `json:"exact_score"`
	TopScorer    int        `json:"top_scorer"`
	FirstScorer  int        `json:"first_scorer"`
	MVP          int        `json:"mvp"`
	YellowCards  int        `json:"yellow_cards"`
	RedCards     int        `json:"red_cards"`
	MostPasses   int        `json:"most_passes"`
	PerfectBonus int        `json:"perfect_bonus"`
	UpdatedBy    string     `json:"updated_by,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type ingestOutcomeDTO struct {
	Result             resultDTO `json:"result"`
	PredictionsUpdated int       `json:"predictions_updated"`
	PredictionsSkipped int       `json:"predictions_skipped"`
}

type lockTickOutcomeDTO struct {
	MatchesDue        int `json:"matches_due"`
	PredictionsLocked int `json:"predictions_locked"`
	MatchesWentLive   int `json:"matches_went_live"`
}

type reminderOutcomeDTO struct {
	MatchesFound  int `json:"matches_found"`
	RemindersSent int `json:"reminders_sent"`
	Failures      int `json:"failures"`
}

type rebuildOutcomeDTO struct {
	EntriesRebuilt int `json:"entries_rebuilt"`
}

type submitPredictionRequest struct {
	MatchID     string `json:"match_id" validate:"required"`
	HomeScore   int    `json:"home_score" validate:"min=0,max=30"`
	AwayScore   int    `json:"away_score" validate:"min=0,max=30"`
	TopScorer   string `json:"top_scorer" validate:"omitempty,max=100"`
	FirstScorer string `json:"first_scorer" validate:"omitempty,max=100"`
	MVP         string `json:"mvp" validate:"omitempty,max=100"`
	MostPasses  string `json:"most_passes" validate:"omitempty,max=100"`
	YellowCards *int   `json:"yellow_cards" validate:"omitempty,min=0,max=20"`
	RedCards    *int   `json:"red_cards" validate:"omitempty,min=0,max=10"`
}

type ingestResultRequest struct {
	MatchID     string `json:"match_id" validate:"required"`
	HomeScore   int    `json:"home_score" validate:"min=0,max=30"`
	AwayScore   int    `json:"away_score" validate:"min=0,max=30"`
	TopScorer   string `json:"top_scorer" validate:"omitempty,max=100"`
	FirstScorer string `json:"first_scorer" validate:"omitempty,max=100"`
	MVP         string `json:"mvp" validate:"omitempty,max=100"`
	MostPasses  string `json:"most_passes" validate:"omitempty,max=100"`
	YellowCards *int   `json:"yellow_cards" validate:"omitempty,min=0,max=20"`
	RedCards    *int   `json:"red_cards" validate:"omitempty,min=0,max=10"`
}

type updateScoringConfigRequest struct {
	Winner       int `json:"winner" validate:"min=0,max=10"`
	ExactScore   int `json:"exact_score" validate:"min=0,max=10"`
	TopScorer    int `json:"top_scorer" validate:"min=0,max=10"`
	FirstScorer  int `json:"first_scorer" validate:"min=0,max=10"`
	MVP          int `json:"mvp" validate:"min=0,max=10"`
	YellowCards  int `json:"yellow_cards" validate:"min=0,max=5"`
	RedCards     int `json:"red_cards" validate:"min=0,max=10"`
	MostPasses   int `json:"most_passes" validate:"min=0,max=5"`
	PerfectBonus int `json:"perfect_bonus" validate:"min=0,max=20"`
}

func teamToDTO(t *team.Team) *teamDTO {
	if t == nil {
		return nil
	}
	return &teamDTO{
		ID:            t.ID,
		Name:          t.Name,
		Code:          t.Code,
		Group:         t.GroupLetter,
		IsPlaceholder: t.IsPlaceholder,
	}
}

func matchViewToDTO(view usecase.MatchView) matchDTO {
	return matchDTO{
		ID:          view.Match.ID,
		Number:      view.Match.Number,
		Phase:       view.Match.Phase,
		Group:       view.Match.GroupLetter,
		Matchday:    view.Match.Matchday,
		HomeTeam:    teamToDTO(view.HomeTeam),
		AwayTeam:    teamToDTO(view.AwayTeam),
		HomeSlot:    view.Match.HomeSlot,
		AwaySlot:    view.Match.AwaySlot,
		Venue:       view.Match.Venue,
		KickoffAt:   view.Match.KickoffAt,
		LockAt:      view.Match.LockAt,
		Status:      view.Match.Status,
		Predictable: view.Match.Predictable,
		Result:      resultToDTO(view.Result),
	}
}

func resultToDTO(res *result.Result) *resultDTO {
	if res == nil {
		return nil
	}
	return &resultDTO{
		MatchID:     res.MatchID,
		HomeScore:   res.HomeScore,
		AwayScore:   res.AwayScore,
		Winner:      string(res.Winner),
		TopScorer:   res.TopScorer,
		FirstScorer: res.FirstScorer,
		MVP:         res.MVP,
		MostPasses:  res.MostPasses,
		YellowCards: res.YellowCards,
		RedCards:    res.RedCards,
		RecordedAt:  res.RecordedAt,
	}
}

func predictionToDTO(p prediction.Prediction) predictionDTO {
	return predictionDTO{
		ID:          p.ID,
		MatchID:     p.MatchID,
		HomeScore:   p.HomeScore,
		AwayScore:   p.AwayScore,
		Winner:      string(p.Winner),
		TopScorer:   p.TopScorer,
		FirstScorer: p.FirstScorer,
		MVP:         p.MVP,
		MostPasses:  p.MostPasses,
		YellowCards: p.YellowCards,
		RedCards:    p.RedCards,
		Locked:      p.IsLocked(),
		LockedAt:    p.LockedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func breakdownToDTO(bd *scoring.Breakdown) *breakdownDTO {
	if bd == nil {
		return nil
	}
	return &breakdownDTO{
		Winner:       bd.Winner,
		ExactScore:   bd.ExactScore,
		TopScorer:    bd.TopScorer,
		FirstScorer:  bd.FirstScorer,
		MVP:          bd.MVP,
		YellowCards:  bd.YellowCards,
		RedCards:     bd.RedCards,
		MostPasses:   bd.MostPasses,
		PerfectBonus: bd.PerfectBonus,
		Total:        bd.Total,
	}
}

func leaderboardEntryToDTO(entry leaderboard.Entry) leaderboardEntryDTO {
	return leaderboardEntryDTO{
		Rank:           entry.Rank,
		UserID:         entry.UserID,
		DisplayName:    entry.DisplayName,
		TotalPoints:    entry.TotalPoints,
		MatchesPlayed:  entry.MatchesPlayed,
		ExactScores:    entry.ExactScores,
		CorrectWinners: entry.CorrectWinners,
		Accuracy:       entry.Accuracy,
		UpdatedAt:      entry.UpdatedAt,
	}
}

func scoringConfigToDTO(cfg scoring.Config) scoringConfigDTO {
	dto := scoringConfigDTO{
		Winner:       cfg.Winner,
		ExactScore:   cfg.ExactScore,
		TopScorer:    cfg.TopScorer,
		FirstScorer:  cfg.FirstScorer,
		MVP:          cfg.MVP,
		YellowCards:  cfg.YellowCards,
		RedCards:     cfg.RedCards,
		MostPasses:   cfg.MostPasses,
		PerfectBonus: cfg.PerfectBonus,
		UpdatedBy:    cfg.UpdatedBy,
	}
	if !cfg.UpdatedAt.IsZero() {
		at := cfg.UpdatedAt
		dto.UpdatedAt = &at
	}
	return dto
}
