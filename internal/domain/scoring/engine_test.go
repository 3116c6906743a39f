package scoring

import (
	"testing"

	"github.com/golazozone/prediction-league/internal/domain/prediction"
	"github.com/golazozone/prediction-league/internal/domain/result"
)

func intPtr(v int) *int {
	return &v
}

func testConfig() Config {
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

func TestCalculate_ExactScoreWithNormalizedTopScorer(t *testing.T) {
	t.Parallel()

	pred := prediction.Prediction{HomeScore: 2, AwayScore: 1, TopScorer: "Mbappé"}
	res := result.Result{HomeScore: 2, AwayScore: 1, TopScorer: "mbappe"}

	got := Calculate(pred, res, testConfig())
	if got.ExactScore != 5 {
		t.Fatalf("exact score points = %d, want 5", got.ExactScore)
	}
	if got.Winner != 0 {
		t.Fatalf("winner points = %d, want 0 when exact score matched", got.Winner)
	}
	if got.TopScorer != 3 {
		t.Fatalf("top scorer points = %d, want 3", got.TopScorer)
	}
	if got.Total != 8 {
		t.Fatalf("total = %d, want 8", got.Total)
	}
}

func TestCalculate_WrongOutcomeScoresNothing(t *testing.T) {
	t.Parallel()

	pred := prediction.Prediction{HomeScore: 1, AwayScore: 1}
	res := result.Result{HomeScore: 2, AwayScore: 0}

	got := Calculate(pred, res, testConfig())
	if got.Total != 0 {
		t.Fatalf("total = %d, want 0 for DRAW vs HOME", got.Total)
	}
}

func TestCalculate_CorrectWinnerNotExact(t *testing.T) {
	t.Parallel()

	pred := prediction.Prediction{HomeScore: 3, AwayScore: 0}
	res := result.Result{HomeScore: 2, AwayScore: 0}

	got := Calculate(pred, res, testConfig())
	if got.Winner != 3 {
		t.Fatalf("winner points = %d, want 3", got.Winner)
	}
	if got.ExactScore != 0 {
		t.Fatalf("exact score points = %d, want 0", got.ExactScore)
	}
	if got.Total != 3 {
		t.Fatalf("total = %d, want 3", got.Total)
	}
}

func TestCalculate_PerfectPredictionAwardsBonusOnTop(t *testing.T) {
	t.Parallel()

	pred := prediction.Prediction{
		HomeScore:   2,
		AwayScore:   1,
		TopScorer:   "José Martínez",
		FirstScorer: "kane",
		MVP:         "Bellingham",
		MostPasses:  "Rodri",
		YellowCards: intPtr(3),
		RedCards:    intPtr(0),
	}
	res := result.Result{
		HomeScore:   2,
		AwayScore:   1,
		TopScorer:   "jose martinez",
		FirstScorer: "Kane",
		MVP:         "bellingham",
		MostPasses:  "RODRI",
		YellowCards: intPtr(3),
		RedCards:    intPtr(0),
	}

	cfg := testConfig()
	got := Calculate(pred, res, cfg)

	subtotal := cfg.ExactScore + cfg.TopScorer + cfg.FirstScorer + cfg.MVP +
		cfg.YellowCards + cfg.RedCards + cfg.MostPasses
	if got.PerfectBonus != cfg.PerfectBonus {
		t.Fatalf("perfect bonus = %d, want %d", got.PerfectBonus, cfg.PerfectBonus)
	}
	if got.Total != subtotal+cfg.PerfectBonus {
		t.Fatalf("total = %d, want %d", got.Total, subtotal+cfg.PerfectBonus)
	}
}

func TestCalculate_BonusGating(t *testing.T) {
	t.Parallel()

	base := prediction.Prediction{
		HomeScore:   2,
		AwayScore:   1,
		TopScorer:   "a",
		FirstScorer: "b",
		MVP:         "c",
		MostPasses:  "d",
		YellowCards: intPtr(3),
		RedCards:    intPtr(1),
	}
	res := result.Result{
		HomeScore:   2,
		AwayScore:   1,
		TopScorer:   "a",
		FirstScorer: "b",
		MVP:         "c",
		MostPasses:  "d",
		YellowCards: intPtr(3),
		RedCards:    intPtr(1),
	}

	mutations := map[string]func(p *prediction.Prediction){
		"score":        func(p *prediction.Prediction) { p.HomeScore = 3 },
		"top_scorer":   func(p *prediction.Prediction) { p.TopScorer = "x" },
		"first_scorer": func(p *prediction.Prediction) { p.FirstScorer = "x" },
		"mvp":          func(p *prediction.Prediction) { p.MVP = "x" },
		"most_passes":  func(p *prediction.Prediction) { p.MostPasses = "x" },
		"yellow_cards": func(p *prediction.Prediction) { p.YellowCards = intPtr(9) },
		"red_cards":    func(p *prediction.Prediction) { p.RedCards = nil },
	}

	if got := Calculate(base, res, testConfig()); got.PerfectBonus == 0 {
		t.Fatal("expected bonus for the fully correct baseline")
	}

	for name, mutate := range mutations {
		pred := base
		mutate(&pred)
		if got := Calculate(pred, res, testConfig()); got.PerfectBonus != 0 {
			t.Fatalf("mutation %q should zero the bonus, got %d", name, got.PerfectBonus)
		}
	}
}

func TestCalculate_NilNumericNeverMatches(t *testing.T) {
	t.Parallel()

	pred := prediction.Prediction{HomeScore: 0, AwayScore: 0}
	res := result.Result{HomeScore: 0, AwayScore: 0, YellowCards: intPtr(0), RedCards: intPtr(0)}

	got := Calculate(pred, res, testConfig())
	if got.YellowCards != 0 || got.RedCards != 0 {
		t.Fatalf("nil card predictions scored: yellow=%d red=%d", got.YellowCards, got.RedCards)
	}
}

func TestCalculate_EmptyTextNeverMatches(t *testing.T) {
	t.Parallel()

	pred := prediction.Prediction{HomeScore: 1, AwayScore: 0, TopScorer: "   "}
	res := result.Result{HomeScore: 1, AwayScore: 0, TopScorer: ""}

	got := Calculate(pred, res, testConfig())
	if got.TopScorer != 0 {
		t.Fatalf("empty-vs-empty text matched, points=%d", got.TopScorer)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	t.Parallel()

	pred := prediction.Prediction{HomeScore: 2, AwayScore: 2, TopScorer: "Müller", YellowCards: intPtr(4)}
	res := result.Result{HomeScore: 2, AwayScore: 2, TopScorer: "muller", YellowCards: intPtr(4)}

	first := Calculate(pred, res, testConfig())
	second := Calculate(pred, res, testConfig())
	if first != second {
		t.Fatalf("calculate is not deterministic: %+v vs %+v", first, second)
	}
}

func TestCalculate_ExclusivityAcrossOutcomes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		pred prediction.Prediction
		res  result.Result
	}{
		{"exact", prediction.Prediction{HomeScore: 1, AwayScore: 0}, result.Result{HomeScore: 1, AwayScore: 0}},
		{"winner_only", prediction.Prediction{HomeScore: 2, AwayScore: 0}, result.Result{HomeScore: 1, AwayScore: 0}},
		{"wrong", prediction.Prediction{HomeScore: 0, AwayScore: 2}, result.Result{HomeScore: 1, AwayScore: 0}},
		{"exact_draw", prediction.Prediction{HomeScore: 0, AwayScore: 0}, result.Result{HomeScore: 0, AwayScore: 0}},
	}

	for _, tc := range cases {
		got := Calculate(tc.pred, tc.res, testConfig())
		if got.Winner != 0 && got.ExactScore != 0 {
			t.Fatalf("case %q: winner (%d) and exact (%d) both non-zero", tc.name, got.Winner, got.ExactScore)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  Kylian  ": "kylian",
		"José":       "jose",
		"MÜLLER":     "muller",
		"":           "",
		"ação":       "acao",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"José", "  Kylian  ", "Şükür", "N'Golo Kanté", "plain"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}
