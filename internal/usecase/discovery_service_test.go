package usecase

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/leaguevault/sleeper-sync/internal/domain/nflstate"
	"github.com/leaguevault/sleeper-sync/internal/domain/user"
	"github.com/leaguevault/sleeper-sync/internal/platform/logging"
)

func trackedUsers(n int) []user.User {
	out := make([]user.User, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, user.User{UserID: fmt.Sprintf("u%d", i), Type: user.TypeSearched})
	}
	return out
}

func TestDiscovery_FiveUsersFiveNewLeagues(t *testing.T) {
	gateway := &stubGateway{
		fetchUserLeagues: func(_ context.Context, userID, season string) ([]RemoteLeague, error) {
			if season != "2025" {
				t.Errorf("unexpected season requested: %s", season)
			}
			return []RemoteLeague{{LeagueID: "league-of-" + userID}}, nil
		},
	}
	users := &stubUserRepo{
		listTracked: func(_ context.Context, limit int) ([]user.User, error) {
			if limit != 100 {
				t.Errorf("unexpected user batch limit: %d", limit)
			}
			return trackedUsers(5), nil
		},
	}
	frontier := NewFrontier()
	svc := NewDiscoveryService(gateway, users, &stubLeagueRepo{}, frontier, DiscoveryConfig{}, logging.NewNop())

	added, err := svc.Run(context.Background(), nflstate.State{LeagueSeason: "2025"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 5 {
		t.Fatalf("unexpected added count: got=%d want=5", added)
	}

	got := frontier.Snapshot()
	sort.Strings(got)
	want := []string{"league-of-u1", "league-of-u2", "league-of-u3", "league-of-u4", "league-of-u5"}
	for i, id := range want {
		if got[i] != id {
			t.Fatalf("unexpected queue contents: got=%v want=%v", got, want)
		}
	}
}

func TestDiscovery_SharedLeagueQueuedOnce(t *testing.T) {
	gateway := &stubGateway{
		fetchUserLeagues: func(_ context.Context, _, _ string) ([]RemoteLeague, error) {
			return []RemoteLeague{{LeagueID: "shared"}}, nil
		},
	}
	users := &stubUserRepo{
		listTracked: func(_ context.Context, _ int) ([]user.User, error) {
			return trackedUsers(25), nil
		},
	}
	frontier := NewFrontier()
	svc := NewDiscoveryService(gateway, users, &stubLeagueRepo{}, frontier, DiscoveryConfig{}, logging.NewNop())

	added, err := svc.Run(context.Background(), nflstate.State{LeagueSeason: "2025"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 1 || frontier.Len() != 1 {
		t.Fatalf("shared league must queue once: added=%d queued=%d", added, frontier.Len())
	}
}

func TestDiscovery_SkipsKnownLeagues(t *testing.T) {
	gateway := &stubGateway{
		fetchUserLeagues: func(_ context.Context, userID, _ string) ([]RemoteLeague, error) {
			return []RemoteLeague{
				{LeagueID: "stored"},
				{LeagueID: "queued"},
				{LeagueID: "new-" + userID},
			}, nil
		},
	}
	users := &stubUserRepo{
		listTracked: func(_ context.Context, _ int) ([]user.User, error) {
			return trackedUsers(1), nil
		},
	}
	leagues := &stubLeagueRepo{
		existing: func(_ context.Context, ids []string) (map[string]struct{}, error) {
			return map[string]struct{}{"stored": {}}, nil
		},
	}
	frontier := NewFrontier()
	frontier.Append("queued")
	svc := NewDiscoveryService(gateway, users, leagues, frontier, DiscoveryConfig{}, logging.NewNop())

	added, err := svc.Run(context.Background(), nflstate.State{LeagueSeason: "2025"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 1 {
		t.Fatalf("only the unseen league should be added: got=%d", added)
	}
	if !frontier.Contains("new-u1") || frontier.Contains("stored") {
		t.Fatalf("unexpected queue contents: %v", frontier.Snapshot())
	}
}

func TestDiscovery_SkippedWhenFrontierFull(t *testing.T) {
	users := &stubUserRepo{
		listTracked: func(_ context.Context, _ int) ([]user.User, error) {
			t.Fatal("user listing must not run while the frontier is full")
			return nil, nil
		},
	}
	frontier := NewFrontier()
	for i := 0; i < 3; i++ {
		frontier.Append(fmt.Sprintf("L%d", i))
	}
	svc := NewDiscoveryService(&stubGateway{}, users, &stubLeagueRepo{}, frontier,
		DiscoveryConfig{FrontierCap: 3}, logging.NewNop())

	added, err := svc.Run(context.Background(), nflstate.State{LeagueSeason: "2025"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 0 {
		t.Fatalf("full frontier must make discovery a no-op: got=%d", added)
	}
}

func TestDiscovery_UserFetchFailureIsIsolated(t *testing.T) {
	gateway := &stubGateway{
		fetchUserLeagues: func(_ context.Context, userID, _ string) ([]RemoteLeague, error) {
			if userID == "u2" {
				return nil, fmt.Errorf("boom")
			}
			return []RemoteLeague{{LeagueID: "league-of-" + userID}}, nil
		},
	}
	users := &stubUserRepo{
		listTracked: func(_ context.Context, _ int) ([]user.User, error) {
			return trackedUsers(3), nil
		},
	}
	frontier := NewFrontier()
	svc := NewDiscoveryService(gateway, users, &stubLeagueRepo{}, frontier, DiscoveryConfig{}, logging.NewNop())

	added, err := svc.Run(context.Background(), nflstate.State{LeagueSeason: "2025"})
	if err != nil {
		t.Fatalf("one user's failure must not fail the run: %v", err)
	}
	if added != 2 {
		t.Fatalf("unexpected added count: got=%d want=2", added)
	}
}
