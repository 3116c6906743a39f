package match

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
)

const (
	PhaseGroupStage   = "GROUP_STAGE"
	PhaseRoundOf32    = "ROUND_OF_32"
	PhaseRoundOf16    = "ROUND_OF_16"
	PhaseQuarterFinal = "QUARTER_FINAL"
	PhaseSemiFinal    = "SEMI_FINAL"
	PhaseThirdPlace   = "THIRD_PLACE"
	PhaseFinal        = "FINAL"
)

// LockGrace is how long before kickoff a match stops accepting predictions.
const LockGrace = 15 * time.Minute

// Match is one fixture in the tournament bracket. Number is the canonical
// ordering key (1..104, globally unique). HomeSlot/AwaySlot carry placeholder
// labels ("Winner Match 73") until the corresponding team reference resolves.
type Match struct {
	ID          string
	Number      int
	Phase       string
	GroupLetter string
	Matchday    int
	HomeTeamID  string
	AwayTeamID  string
	HomeSlot    string
	AwaySlot    string
	Venue       string
	KickoffAt   time.Time
	LockAt      time.Time
	Status      string
	Predictable bool
}

// LockInstant derives the lock deadline from a kickoff instant.
func LockInstant(kickoff time.Time) time.Time {
	return kickoff.Add(-LockGrace)
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinishedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinished
}

// AcceptsLock reports whether the match status still participates in the
// lock sweep. FINISHED matches are never re-locked.
func AcceptsLock(status string) bool {
	switch NormalizeStatus(status) {
	case StatusScheduled, StatusLive:
		return true
	default:
		return false
	}
}
