package usecase

import (
	"reflect"
	"testing"

	"github.com/leaguevault/sleeper-sync/internal/domain/league"
	"github.com/leaguevault/sleeper-sync/internal/domain/trade"
)

func tradeRosters() []league.Roster {
	return []league.Roster{
		{RosterID: 1, UserID: "u1", Username: "alice"},
		{RosterID: 2, UserID: "u2", Username: "bob"},
		{RosterID: 3, UserID: "", Username: "Orphan"},
	}
}

func TestNormalizeTrades_FiltersNonTrades(t *testing.T) {
	transactions := []RemoteTransaction{
		{TransactionID: "t1", Type: "waiver", Status: "complete"},
		{TransactionID: "t2", Type: "trade", Status: "failed"},
		{TransactionID: "t3", Type: "trade", Status: "complete"},
	}

	trades := normalizeTrades("L1", transactions, tradeRosters(), nil)
	if len(trades) != 1 {
		t.Fatalf("unexpected trade count: got=%d want=1", len(trades))
	}
	if trades[0].TransactionID != "t3" {
		t.Fatalf("unexpected trade kept: got=%s", trades[0].TransactionID)
	}
	if trades[0].LeagueID != "L1" {
		t.Fatalf("unexpected league id: got=%s", trades[0].LeagueID)
	}
}

func TestNormalizeTrades_RekeysToManagers(t *testing.T) {
	transactions := []RemoteTransaction{{
		TransactionID: "t1",
		Type:          "trade",
		Status:        "complete",
		StatusUpdated: 1756700000000,
		Adds:          map[string]int{"4029": 1, "6786": 2},
		Drops:         map[string]int{"4029": 2, "6786": 1},
	}}

	trades := normalizeTrades("L1", transactions, tradeRosters(), nil)
	if len(trades) != 1 {
		t.Fatalf("unexpected trade count: got=%d", len(trades))
	}
	got := trades[0]

	if !reflect.DeepEqual(got.Adds, map[string]string{"4029": "u1", "6786": "u2"}) {
		t.Fatalf("unexpected adds: %v", got.Adds)
	}
	if !reflect.DeepEqual(got.Drops, map[string]string{"4029": "u2", "6786": "u1"}) {
		t.Fatalf("unexpected drops: %v", got.Drops)
	}
	if !reflect.DeepEqual(got.Managers, []string{"u1", "u2"}) {
		t.Fatalf("managers must be the deduplicated adder/dropper union: %v", got.Managers)
	}
	if !reflect.DeepEqual(got.Players, []string{"4029", "6786"}) {
		t.Fatalf("unexpected players: %v", got.Players)
	}
	if !reflect.DeepEqual(got.PriceCheck, []string{""}) {
		t.Fatalf("unexpected price check: %v", got.PriceCheck)
	}
	if got.StatusUpdated != 1756700000000 {
		t.Fatalf("unexpected status updated: %d", got.StatusUpdated)
	}
}

func TestNormalizeTrades_OrphanRosterOmitted(t *testing.T) {
	transactions := []RemoteTransaction{{
		TransactionID: "t1",
		Type:          "trade",
		Status:        "complete",
		Adds:          map[string]int{"4029": 3, "6786": 1},
		Drops:         map[string]int{"4029": 1},
	}}

	trades := normalizeTrades("L1", transactions, tradeRosters(), nil)
	got := trades[0]

	if _, ok := got.Adds["4029"]; ok {
		t.Fatalf("player on an orphaned roster must not be rekeyed: %v", got.Adds)
	}
	if !reflect.DeepEqual(got.Managers, []string{"u1"}) {
		t.Fatalf("orphaned roster must not appear in managers: %v", got.Managers)
	}
}

func TestNormalizeTrades_ExpandsDraftPicks(t *testing.T) {
	upcoming := &RemoteDraft{
		DraftID:    "d1",
		Season:     "2025",
		Status:     "drafting",
		Rounds:     4,
		DraftOrder: map[string]int{"u1": 7},
	}
	transactions := []RemoteTransaction{{
		TransactionID: "t1",
		Type:          "trade",
		Status:        "complete",
		DraftPicks: []RemoteTradedPick{
			{Season: "2025", Round: 1, RosterID: 1, PreviousOwnerID: 1, OwnerID: 2},
			{Season: "2026", Round: 3, RosterID: 2, PreviousOwnerID: 2, OwnerID: 1},
		},
	}}

	trades := normalizeTrades("L1", transactions, tradeRosters(), upcoming)
	got := trades[0]

	if len(got.DraftPicks) != 2 {
		t.Fatalf("unexpected pick count: got=%d", len(got.DraftPicks))
	}

	first := got.DraftPicks[0]
	if first.New != "u2" || first.Old != "u1" || first.Original != "u1" {
		t.Fatalf("unexpected pick parties: %+v", first)
	}
	if first.Order == nil || *first.Order != 7 {
		t.Fatalf("upcoming-season pick should carry the draft slot: %+v", first)
	}

	second := got.DraftPicks[1]
	if second.Order != nil {
		t.Fatalf("future-season pick must carry no slot: %+v", second)
	}

	if !reflect.DeepEqual(got.Players, []string{"2025 1.7", "2026 3"}) {
		t.Fatalf("unexpected synthetic pick labels: %v", got.Players)
	}
}

func TestPickTransferLabel(t *testing.T) {
	order := 12
	withOrder := trade.PickTransfer{Season: "2025", Round: 1, Order: &order}
	if got := withOrder.Label(); got != "2025 1.12" {
		t.Fatalf("unexpected label: got=%q", got)
	}
	withoutOrder := trade.PickTransfer{Season: "2026", Round: 4}
	if got := withoutOrder.Label(); got != "2026 4" {
		t.Fatalf("unexpected label: got=%q", got)
	}
}
