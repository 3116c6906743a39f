package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "status").
		From("matches").
		Where(Eq("phase", "GROUP"), IsNull("deleted_at")).
		OrderBy("kickoff_at").
		Limit(5).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, status FROM matches WHERE phase = $1 AND deleted_at IS NULL ORDER BY kickoff_at LIMIT 5"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "GROUP" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_MultipleConditionsKeepArgOrder(t *testing.T) {
	query, args, err := Select("user_id").
		From("predictions").
		Where(Eq("match_public_id", "m-001"), Eq("user_id", "u-9"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT user_id FROM predictions WHERE match_public_id = $1 AND user_id = $2 AND deleted_at IS NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "m-001" || args[1] != "u-9" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("leaderboard_entries").
		Columns("user_id", "total_points").
		Values("u-1", 42).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO leaderboard_entries (user_id, total_points) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "u-1" || args[1] != 42 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("matches").
		Set("status", "LIVE").
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "m-001")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE matches SET status = $1, updated_at = NOW() WHERE public_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "LIVE" || args[1] != "m-001" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
