package memory

import (
	"time"

	"github.com/golazozone/prediction-league/internal/domain/friendgroup"
	"github.com/golazozone/prediction-league/internal/domain/match"
	"github.com/golazozone/prediction-league/internal/domain/team"
)

// SeedTeams returns the 48 tournament participants. Slots still pending the
// intercontinental playoffs are seeded as placeholder teams so the schedule
// can reference them before the playoffs conclude.
func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "mex", Name: "Mexico", Code: "MEX", GroupLetter: "A"},
		{ID: "rsa", Name: "South Africa", Code: "RSA", GroupLetter: "A"},
		{ID: "kor", Name: "South Korea", Code: "KOR", GroupLetter: "A"},
		{ID: "playoff-uefa-d", Name: "Winner Playoff UEFA D", Code: "PUD", GroupLetter: "A", IsPlaceholder: true},

		{ID: "can", Name: "Canada", Code: "CAN", GroupLetter: "B"},
		{ID: "sui", Name: "Switzerland", Code: "SUI", GroupLetter: "B"},
		{ID: "qat", Name: "Qatar", Code: "QAT", GroupLetter: "B"},
		{ID: "civ", Name: "Ivory Coast", Code: "CIV", GroupLetter: "B"},

		{ID: "usa", Name: "United States", Code: "USA", GroupLetter: "C"},
		{ID: "jpn", Name: "Japan", Code: "JPN", GroupLetter: "C"},
		{ID: "nor", Name: "Norway", Code: "NOR", GroupLetter: "C"},
		{ID: "gha", Name: "Ghana", Code: "GHA", GroupLetter: "C"},

		{ID: "arg", Name: "Argentina", Code: "ARG", GroupLetter: "D"},
		{ID: "aus", Name: "Australia", Code: "AUS", GroupLetter: "D"},
		{ID: "tun", Name: "Tunisia", Code: "TUN", GroupLetter: "D"},
		{ID: "playoff-uefa-a", Name: "Winner Playoff UEFA A", Code: "PUA", GroupLetter: "D", IsPlaceholder: true},

		{ID: "fra", Name: "France", Code: "FRA", GroupLetter: "E"},
		{ID: "sen", Name: "Senegal", Code: "SEN", GroupLetter: "E"},
		{ID: "uzb", Name: "Uzbekistan", Code: "UZB", GroupLetter: "E"},
		{ID: "pan", Name: "Panama", Code: "PAN", GroupLetter: "E"},

		{ID: "bra", Name: "Brazil", Code: "BRA", GroupLetter: "F"},
		{ID: "cro", Name: "Croatia", Code: "CRO", GroupLetter: "F"},
		{ID: "irn", Name: "Iran", Code: "IRN", GroupLetter: "F"},
		{ID: "playoff-ic-1", Name: "Winner Playoff IC 1", Code: "PI1", GroupLetter: "F", IsPlaceholder: true},

		{ID: "esp", Name: "Spain", Code: "ESP", GroupLetter: "G"},
		{ID: "mar", Name: "Morocco", Code: "MAR", GroupLetter: "G"},
		{ID: "ecu", Name: "Ecuador", Code: "ECU", GroupLetter: "G"},
		{ID: "jor", Name: "Jordan", Code: "JOR", GroupLetter: "G"},

		{ID: "eng", Name: "England", Code: "ENG", GroupLetter: "H"},
		{ID: "col", Name: "Colombia", Code: "COL", GroupLetter: "H"},
		{ID: "egy", Name: "Egypt", Code: "EGY", GroupLetter: "H"},
		{ID: "nzl", Name: "New Zealand", Code: "NZL", GroupLetter: "H"},

		{ID: "ger", Name: "Germany", Code: "GER", GroupLetter: "I"},
		{ID: "uru", Name: "Uruguay", Code: "URU", GroupLetter: "I"},
		{ID: "ksa", Name: "Saudi Arabia", Code: "KSA", GroupLetter: "I"},
		{ID: "playoff-uefa-b", Name: "Winner Playoff UEFA B", Code: "PUB", GroupLetter: "I", IsPlaceholder: true},

		{ID: "por", Name: "Portugal", Code: "POR", GroupLetter: "J"},
		{ID: "alg", Name: "Algeria", Code: "ALG", GroupLetter: "J"},
		{ID: "par", Name: "Paraguay", Code: "PAR", GroupLetter: "J"},
		{ID: "playoff-ic-2", Name: "Winner Playoff IC 2", Code: "PI2", GroupLetter: "J", IsPlaceholder: true},

		{ID: "ned", Name: "Netherlands", Code: "NED", GroupLetter: "K"},
		{ID: "jam", Name: "Jamaica", Code: "JAM", GroupLetter: "K"},
		{ID: "cpv", Name: "Cape Verde", Code: "CPV", GroupLetter: "K"},
		{ID: "playoff-uefa-c", Name: "Winner Playoff UEFA C", Code: "PUC", GroupLetter: "K", IsPlaceholder: true},

		{ID: "bel", Name: "Belgium", Code: "BEL", GroupLetter: "L"},
		{ID: "sco", Name: "Scotland", Code: "SCO", GroupLetter: "L"},
		{ID: "cur", Name: "Curacao", Code: "CUR", GroupLetter: "L"},
		{ID: "hai", Name: "Haiti", Code: "HAI", GroupLetter: "L"},
	}
}

// SeedMatches returns the opening-week group fixtures plus the first knockout
// slots. Knockout home/away references stay empty until bracket resolution;
// the slot labels are what clients render in the meantime.
func SeedMatches() []match.Match {
	groupMatch := func(id string, number int, letter string, home, away, venue string, kickoff time.Time) match.Match {
		return match.Match{
			ID:          id,
			Number:      number,
			Phase:       match.PhaseGroupStage,
			GroupLetter: letter,
			Matchday:    1,
			HomeTeamID:  home,
			AwayTeamID:  away,
			Venue:       venue,
			KickoffAt:   kickoff,
			LockAt:      match.LockInstant(kickoff),
			Status:      match.StatusScheduled,
			Predictable: true,
		}
	}

	return []match.Match{
		groupMatch("wc-m001", 1, "A", "mex", "rsa", "Estadio Azteca, Mexico City", time.Date(2026, 6, 11, 19, 0, 0, 0, time.UTC)),
		groupMatch("wc-m002", 2, "A", "kor", "playoff-uefa-d", "Estadio Akron, Guadalajara", time.Date(2026, 6, 11, 22, 0, 0, 0, time.UTC)),
		groupMatch("wc-m003", 3, "B", "can", "sui", "BMO Field, Toronto", time.Date(2026, 6, 12, 16, 0, 0, 0, time.UTC)),
		groupMatch("wc-m004", 4, "B", "qat", "civ", "BC Place, Vancouver", time.Date(2026, 6, 12, 19, 0, 0, 0, time.UTC)),
		groupMatch("wc-m005", 5, "C", "usa", "jpn", "SoFi Stadium, Los Angeles", time.Date(2026, 6, 12, 22, 0, 0, 0, time.UTC)),
		groupMatch("wc-m006", 6, "C", "nor", "gha", "Levi's Stadium, San Francisco", time.Date(2026, 6, 13, 1, 0, 0, 0, time.UTC)),
		groupMatch("wc-m007", 7, "D", "arg", "aus", "MetLife Stadium, New York", time.Date(2026, 6, 13, 16, 0, 0, 0, time.UTC)),
		groupMatch("wc-m008", 8, "D", "tun", "playoff-uefa-a", "Gillette Stadium, Boston", time.Date(2026, 6, 13, 19, 0, 0, 0, time.UTC)),
		groupMatch("wc-m009", 9, "E", "fra", "sen", "AT&T Stadium, Dallas", time.Date(2026, 6, 13, 22, 0, 0, 0, time.UTC)),
		groupMatch("wc-m010", 10, "E", "uzb", "pan", "NRG Stadium, Houston", time.Date(2026, 6, 14, 1, 0, 0, 0, time.UTC)),
		groupMatch("wc-m011", 11, "F", "bra", "cro", "Hard Rock Stadium, Miami", time.Date(2026, 6, 14, 16, 0, 0, 0, time.UTC)),
		groupMatch("wc-m012", 12, "F", "irn", "playoff-ic-1", "Mercedes-Benz Stadium, Atlanta", time.Date(2026, 6, 14, 19, 0, 0, 0, time.UTC)),
		groupMatch("wc-m013", 13, "G", "esp", "mar", "Arrowhead Stadium, Kansas City", time.Date(2026, 6, 14, 22, 0, 0, 0, time.UTC)),
		groupMatch("wc-m014", 14, "G", "ecu", "jor", "Lincoln Financial Field, Philadelphia", time.Date(2026, 6, 15, 1, 0, 0, 0, time.UTC)),
		groupMatch("wc-m015", 15, "H", "eng", "col", "Lumen Field, Seattle", time.Date(2026, 6, 15, 16, 0, 0, 0, time.UTC)),
		groupMatch("wc-m016", 16, "H", "egy", "nzl", "Estadio BBVA, Monterrey", time.Date(2026, 6, 15, 19, 0, 0, 0, time.UTC)),
		groupMatch("wc-m017", 17, "I", "ger", "uru", "MetLife Stadium, New York", time.Date(2026, 6, 15, 22, 0, 0, 0, time.UTC)),
		groupMatch("wc-m018", 18, "I", "ksa", "playoff-uefa-b", "BMO Field, Toronto", time.Date(2026, 6, 16, 1, 0, 0, 0, time.UTC)),
		groupMatch("wc-m019", 19, "J", "por", "alg", "AT&T Stadium, Dallas", time.Date(2026, 6, 16, 16, 0, 0, 0, time.UTC)),
		groupMatch("wc-m020", 20, "J", "par", "playoff-ic-2", "NRG Stadium, Houston", time.Date(2026, 6, 16, 19, 0, 0, 0, time.UTC)),
		groupMatch("wc-m021", 21, "K", "ned", "jam", "Hard Rock Stadium, Miami", time.Date(2026, 6, 16, 22, 0, 0, 0, time.UTC)),
		groupMatch("wc-m022", 22, "K", "cpv", "playoff-uefa-c", "Mercedes-Benz Stadium, Atlanta", time.Date(2026, 6, 17, 1, 0, 0, 0, time.UTC)),
		groupMatch("wc-m023", 23, "L", "bel", "sco", "SoFi Stadium, Los Angeles", time.Date(2026, 6, 17, 16, 0, 0, 0, time.UTC)),
		groupMatch("wc-m024", 24, "L", "cur", "hai", "BC Place, Vancouver", time.Date(2026, 6, 17, 19, 0, 0, 0, time.UTC)),
		{
			ID:          "wc-m073",
			Number:      73,
			Phase:       match.PhaseRoundOf32,
			HomeSlot:    "Winner Group A",
			AwaySlot:    "Third Place Group C/D/F",
			Venue:       "SoFi Stadium, Los Angeles",
			KickoffAt:   time.Date(2026, 6, 28, 20, 0, 0, 0, time.UTC),
			LockAt:      match.LockInstant(time.Date(2026, 6, 28, 20, 0, 0, 0, time.UTC)),
			Status:      match.StatusScheduled,
			Predictable: false,
		},
		{
			ID:          "wc-m074",
			Number:      74,
			Phase:       match.PhaseRoundOf32,
			HomeSlot:    "Winner Group B",
			AwaySlot:    "Runner-up Group A",
			Venue:       "Estadio Azteca, Mexico City",
			KickoffAt:   time.Date(2026, 6, 28, 23, 0, 0, 0, time.UTC),
			LockAt:      match.LockInstant(time.Date(2026, 6, 28, 23, 0, 0, 0, time.UTC)),
			Status:      match.StatusScheduled,
			Predictable: false,
		},
		{
			ID:          "wc-m104",
			Number:      104,
			Phase:       match.PhaseFinal,
			HomeSlot:    "Winner Match 102",
			AwaySlot:    "Winner Match 103",
			Venue:       "MetLife Stadium, New York",
			KickoffAt:   time.Date(2026, 7, 19, 19, 0, 0, 0, time.UTC),
			LockAt:      match.LockInstant(time.Date(2026, 7, 19, 19, 0, 0, 0, time.UTC)),
			Status:      match.StatusScheduled,
			Predictable: false,
		},
	}
}

// SeedFriendGroups returns a starter group so local runs can exercise the
// group standings endpoints without a database.
func SeedFriendGroups() ([]friendgroup.Group, []friendgroup.Membership) {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	groups := []friendgroup.Group{
		{
			ID:         "grp-office",
			Name:       "Office Polla",
			InviteCode: "OFFICE26",
			OwnerID:    "user-demo-1",
			IsActive:   true,
			CreatedAt:  created,
		},
	}
	memberships := []friendgroup.Membership{
		{GroupID: "grp-office", UserID: "user-demo-1", JoinedAt: created},
		{GroupID: "grp-office", UserID: "user-demo-2", JoinedAt: created.Add(time.Hour)},
	}
	return groups, memberships
}
