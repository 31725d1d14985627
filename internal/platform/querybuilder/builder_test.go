package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("user_id", "username").
		From("users").
		Where(In("type", []any{"S", "LM"}), IsNull("deleted_at")).
		OrderBy("updatedat ASC").
		Limit(100).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT user_id, username FROM users WHERE type IN ($1, $2) AND deleted_at IS NULL ORDER BY updatedat ASC LIMIT 100"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "S" || args[1] != "LM" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderOffset(t *testing.T) {
	query, _, err := Select("player_name", "value").
		From("ktc_values").
		OrderBy("value DESC").
		Limit(50).
		Offset(50).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT player_name, value FROM ktc_values ORDER BY value DESC LIMIT 50 OFFSET 50"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
}

func TestSelectBuilderEmptyIn(t *testing.T) {
	query, args, err := Select("league_id").
		From("leagues").
		Where(In("league_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT league_id FROM leagues WHERE 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderUpsertSuffix(t *testing.T) {
	query, args, err := InsertInto("trades").
		Columns("transaction_id", "draft_picks").
		Values("txn-1", "[]").
		Suffix("ON CONFLICT (transaction_id) DO UPDATE SET draft_picks = EXCLUDED.draft_picks").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO trades (transaction_id, draft_picks) VALUES ($1, $2) ON CONFLICT (transaction_id) DO UPDATE SET draft_picks = EXCLUDED.draft_picks"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "txn-1" || args[1] != "[]" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderMultiRow(t *testing.T) {
	query, args, err := InsertInto("userleagues").
		Columns("user_id", "league_id").
		Values("u1", "l1").
		Values("u1", "l2").
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO userleagues (user_id, league_id) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderRowMismatch(t *testing.T) {
	_, _, err := InsertInto("users").
		Columns("user_id", "username").
		Values("u1").
		ToSQL()
	if err == nil {
		t.Fatal("expected row length mismatch error")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("leagues").
		Where(Eq("league_id", "l-404")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM leagues WHERE league_id = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "l-404" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilderRequiresWhere(t *testing.T) {
	_, _, err := DeleteFrom("leagues").ToSQL()
	if err == nil {
		t.Fatal("expected missing conditions error")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		UserID   string `db:"user_id"`
		Username string `db:"username"`
		Ignored  string `db:"-"`
	}

	query, args, err := InsertModel("users", row{UserID: "u1", Username: "name-1"}, "ON CONFLICT (user_id) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO users (user_id, username) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "u1" || args[1] != "name-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
