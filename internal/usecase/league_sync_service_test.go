package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/leaguevault/sleeper-sync/internal/platform/logging"
)

func TestSyncBatch_StagesAndCommitsOnePass(t *testing.T) {
	gateway := &stubGateway{
		fetchLeague: func(_ context.Context, leagueID string) (RemoteLeague, error) {
			return RemoteLeague{
				LeagueID: leagueID,
				Name:     "Dynasty Warriors",
				Season:   "2025",
				Status:   "in_season",
				Settings: map[string]float64{"type": 2, "draft_rounds": 1},
			}, nil
		},
		fetchRosters: func(_ context.Context, _ string) ([]RemoteRoster, error) {
			return []RemoteRoster{
				{RosterID: 1, OwnerID: "u1"},
				{RosterID: 2, OwnerID: "u2"},
			}, nil
		},
		fetchLeagueUsers: func(_ context.Context, _ string) ([]RemoteLeagueUser, error) {
			return []RemoteLeagueUser{
				{UserID: "u1", DisplayName: "alice", Avatar: "av1"},
				{UserID: "u2", DisplayName: "bob"},
			}, nil
		},
		fetchMatchups: func(_ context.Context, leagueID string, week int) ([]RemoteMatchup, error) {
			if week != 9 {
				t.Errorf("unexpected week: %d", week)
			}
			return []RemoteMatchup{
				{MatchupID: 1, RosterID: 1, Players: []string{"p1"}, Starters: []string{"p1"}},
				{MatchupID: 1, RosterID: 2, Players: []string{"p2"}, Starters: []string{"p2"}},
			}, nil
		},
		fetchTransactions: func(_ context.Context, _ string, _ int) ([]RemoteTransaction, error) {
			return []RemoteTransaction{{
				TransactionID: "t1",
				Type:          "trade",
				Status:        "complete",
				Adds:          map[string]int{"p9": 1},
				Drops:         map[string]int{"p9": 2},
			}}, nil
		},
	}
	writer := &stubWriter{}
	svc := NewLeagueSyncService(gateway, &stubLeagueRepo{}, writer,
		LeagueSyncConfig{PassCap: 2}, logging.NewNop())

	result, err := svc.SyncBatch(context.Background(), []string{"L1", "L2"}, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	staged := append([]string(nil), result.Staged...)
	sort.Strings(staged)
	if len(staged) != 2 || staged[0] != "L1" || staged[1] != "L2" {
		t.Fatalf("unexpected staged ids: %v", result.Staged)
	}

	batches := writer.committed()
	if len(batches) != 1 {
		t.Fatalf("expected a single pass commit, got %d", len(batches))
	}
	batch := batches[0]

	if len(batch.Leagues) != 2 {
		t.Fatalf("unexpected league count: %d", len(batch.Leagues))
	}
	if len(batch.Matchups) != 4 {
		t.Fatalf("unexpected matchup count: %d", len(batch.Matchups))
	}
	if len(batch.Trades) != 2 {
		t.Fatalf("unexpected trade count: %d", len(batch.Trades))
	}
	// Two leagues share both managers; users stage once, memberships per league.
	if len(batch.Users) != 2 {
		t.Fatalf("users must deduplicate across leagues: %d", len(batch.Users))
	}
	if len(batch.Memberships) != 4 {
		t.Fatalf("unexpected membership count: %d", len(batch.Memberships))
	}

	for _, lg := range batch.Leagues {
		if len(lg.Rosters) != 2 {
			t.Fatalf("league staged without enriched rosters: %+v", lg)
		}
		if lg.Rosters[0].Username != "alice" {
			t.Fatalf("roster not enriched: %+v", lg.Rosters[0])
		}
		if len(lg.Rosters[0].DraftPicks) == 0 {
			t.Fatalf("dynasty roster staged without resolved picks: %+v", lg.Rosters[0])
		}
		if lg.UpdatedAt.IsZero() {
			t.Fatal("league staged without updated timestamp")
		}
	}
}

func TestSyncBatch_VanishedLeagueDeletedAndPassContinues(t *testing.T) {
	gateway := &stubGateway{
		fetchLeague: func(_ context.Context, leagueID string) (RemoteLeague, error) {
			if leagueID == "gone" {
				return RemoteLeague{}, fmt.Errorf("league gone: %w", ErrNotFound)
			}
			return RemoteLeague{LeagueID: leagueID, Season: "2025", Status: "complete"}, nil
		},
	}
	repo := &stubLeagueRepo{}
	writer := &stubWriter{}
	svc := NewLeagueSyncService(gateway, repo, writer,
		LeagueSyncConfig{PassCap: 3, GroupSize: 2}, logging.NewNop())

	result, err := svc.SyncBatch(context.Background(), []string{"L1", "gone", "L2"}, 1)
	if err != nil {
		t.Fatalf("a vanished league must not fail the pass: %v", err)
	}

	if len(result.Deleted) != 1 || result.Deleted[0] != "gone" {
		t.Fatalf("unexpected deleted ids: %v", result.Deleted)
	}
	if got := repo.deleted(); len(got) != 1 || got[0] != "gone" {
		t.Fatalf("league row was not deleted: %v", got)
	}
	if len(result.Staged) != 2 {
		t.Fatalf("remaining leagues must still stage: %v", result.Staged)
	}
}

func TestSyncBatch_TransientFailureLeavesLeagueQueued(t *testing.T) {
	gateway := &stubGateway{
		fetchLeague: func(_ context.Context, leagueID string) (RemoteLeague, error) {
			if leagueID == "flaky" {
				return RemoteLeague{}, fmt.Errorf("connection reset")
			}
			return RemoteLeague{LeagueID: leagueID, Season: "2025", Status: "complete"}, nil
		},
	}
	repo := &stubLeagueRepo{}
	svc := NewLeagueSyncService(gateway, repo, &stubWriter{},
		LeagueSyncConfig{PassCap: 2}, logging.NewNop())

	result, err := svc.SyncBatch(context.Background(), []string{"flaky", "L1"}, 1)
	if err != nil {
		t.Fatalf("one league's failure must not fail the pass: %v", err)
	}
	if len(result.Staged) != 1 || result.Staged[0] != "L1" {
		t.Fatalf("unexpected staged ids: %v", result.Staged)
	}
	if len(repo.deleted()) != 0 {
		t.Fatalf("transient failure must not delete the league: %v", repo.deleted())
	}
}

func TestSyncBatch_CommitFailureStagesNothing(t *testing.T) {
	svc := NewLeagueSyncService(&stubGateway{}, &stubLeagueRepo{},
		&stubWriter{commitErr: fmt.Errorf("deadlock detected")},
		LeagueSyncConfig{PassCap: 2}, logging.NewNop())

	result, err := svc.SyncBatch(context.Background(), []string{"L1", "L2"}, 1)
	if err == nil {
		t.Fatal("commit failure must surface as a pass error")
	}
	if len(result.Staged) != 0 {
		t.Fatalf("no league is processed when the commit rolls back: %v", result.Staged)
	}
}

func TestSyncBatch_BackfillsFromStalestLeagues(t *testing.T) {
	var mu sync.Mutex
	fetched := make(map[string]int)

	gateway := &stubGateway{
		fetchLeague: func(_ context.Context, leagueID string) (RemoteLeague, error) {
			mu.Lock()
			fetched[leagueID]++
			mu.Unlock()
			return RemoteLeague{LeagueID: leagueID, Season: "2025", Status: "complete"}, nil
		},
	}
	repo := &stubLeagueRepo{
		stalest: func(_ context.Context, limit int) ([]string, error) {
			if limit != 3 {
				t.Errorf("unexpected backfill limit: %d", limit)
			}
			return []string{"stale1", "L1", "stale2"}, nil
		},
	}
	svc := NewLeagueSyncService(gateway, repo, &stubWriter{},
		LeagueSyncConfig{PassCap: 5}, logging.NewNop())

	result, err := svc.SyncBatch(context.Background(), []string{"L1", "L2"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Staged) != 4 {
		t.Fatalf("unexpected staged count: %v", result.Staged)
	}
	for id, count := range fetched {
		if count != 1 {
			t.Fatalf("league %s fetched %d times, want 1", id, count)
		}
	}
}

func TestSyncBatch_SkipsOffSeasonExtras(t *testing.T) {
	gateway := &stubGateway{
		fetchLeague: func(_ context.Context, leagueID string) (RemoteLeague, error) {
			return RemoteLeague{
				LeagueID: leagueID,
				Season:   "2025",
				Status:   "complete",
				Settings: map[string]float64{"type": 1},
			}, nil
		},
		fetchMatchups: func(_ context.Context, _ string, _ int) ([]RemoteMatchup, error) {
			t.Error("matchups must not be fetched outside in_season")
			return nil, nil
		},
		fetchDrafts: func(_ context.Context, _ string) ([]RemoteDraft, error) {
			t.Error("drafts must not be fetched for redraft leagues")
			return nil, nil
		},
	}
	svc := NewLeagueSyncService(gateway, &stubLeagueRepo{}, &stubWriter{},
		LeagueSyncConfig{PassCap: 1}, logging.NewNop())

	if _, err := svc.SyncBatch(context.Background(), []string{"L1"}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
