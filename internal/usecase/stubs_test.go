package usecase

import (
	"context"
	"sync"

	"github.com/leaguevault/sleeper-sync/internal/domain/league"
	"github.com/leaguevault/sleeper-sync/internal/domain/user"
	"github.com/leaguevault/sleeper-sync/internal/domain/valuation"
)

// stubGateway lets each test override only the fetches it cares about.
type stubGateway struct {
	fetchState        func(ctx context.Context) (RemoteState, error)
	fetchUserLeagues  func(ctx context.Context, userID, season string) ([]RemoteLeague, error)
	fetchLeague       func(ctx context.Context, leagueID string) (RemoteLeague, error)
	fetchRosters      func(ctx context.Context, leagueID string) ([]RemoteRoster, error)
	fetchLeagueUsers  func(ctx context.Context, leagueID string) ([]RemoteLeagueUser, error)
	fetchDrafts       func(ctx context.Context, leagueID string) ([]RemoteDraft, error)
	fetchTradedPicks  func(ctx context.Context, leagueID string) ([]RemoteTradedPick, error)
	fetchTransactions func(ctx context.Context, leagueID string, week int) ([]RemoteTransaction, error)
	fetchMatchups     func(ctx context.Context, leagueID string, week int) ([]RemoteMatchup, error)
	fetchDraftPicks   func(ctx context.Context, draftID string) ([]RemoteDraftPick, error)
}

func (g *stubGateway) FetchState(ctx context.Context) (RemoteState, error) {
	if g.fetchState != nil {
		return g.fetchState(ctx)
	}
	return RemoteState{}, nil
}

func (g *stubGateway) FetchUserLeagues(ctx context.Context, userID, season string) ([]RemoteLeague, error) {
	if g.fetchUserLeagues != nil {
		return g.fetchUserLeagues(ctx, userID, season)
	}
	return nil, nil
}

func (g *stubGateway) FetchLeague(ctx context.Context, leagueID string) (RemoteLeague, error) {
	if g.fetchLeague != nil {
		return g.fetchLeague(ctx, leagueID)
	}
	return RemoteLeague{LeagueID: leagueID, Season: "2026"}, nil
}

func (g *stubGateway) FetchLeagueRosters(ctx context.Context, leagueID string) ([]RemoteRoster, error) {
	if g.fetchRosters != nil {
		return g.fetchRosters(ctx, leagueID)
	}
	return nil, nil
}

func (g *stubGateway) FetchLeagueUsers(ctx context.Context, leagueID string) ([]RemoteLeagueUser, error) {
	if g.fetchLeagueUsers != nil {
		return g.fetchLeagueUsers(ctx, leagueID)
	}
	return nil, nil
}

func (g *stubGateway) FetchLeagueDrafts(ctx context.Context, leagueID string) ([]RemoteDraft, error) {
	if g.fetchDrafts != nil {
		return g.fetchDrafts(ctx, leagueID)
	}
	return nil, nil
}

func (g *stubGateway) FetchLeagueTradedPicks(ctx context.Context, leagueID string) ([]RemoteTradedPick, error) {
	if g.fetchTradedPicks != nil {
		return g.fetchTradedPicks(ctx, leagueID)
	}
	return nil, nil
}

func (g *stubGateway) FetchLeagueTransactions(ctx context.Context, leagueID string, week int) ([]RemoteTransaction, error) {
	if g.fetchTransactions != nil {
		return g.fetchTransactions(ctx, leagueID, week)
	}
	return nil, nil
}

func (g *stubGateway) FetchLeagueMatchups(ctx context.Context, leagueID string, week int) ([]RemoteMatchup, error) {
	if g.fetchMatchups != nil {
		return g.fetchMatchups(ctx, leagueID, week)
	}
	return nil, nil
}

func (g *stubGateway) FetchDraftPicks(ctx context.Context, draftID string) ([]RemoteDraftPick, error) {
	if g.fetchDraftPicks != nil {
		return g.fetchDraftPicks(ctx, draftID)
	}
	return nil, nil
}

type stubUserRepo struct {
	listTracked func(ctx context.Context, limit int) ([]user.User, error)
}

func (r *stubUserRepo) ListTrackedStalest(ctx context.Context, limit int) ([]user.User, error) {
	if r.listTracked != nil {
		return r.listTracked(ctx, limit)
	}
	return nil, nil
}

type stubLeagueRepo struct {
	mu         sync.Mutex
	stalest    func(ctx context.Context, limit int) ([]string, error)
	existing   func(ctx context.Context, ids []string) (map[string]struct{}, error)
	deleteErr  error
	deletedIDs []string
}

func (r *stubLeagueRepo) ListStalestIDs(ctx context.Context, limit int) ([]string, error) {
	if r.stalest != nil {
		return r.stalest(ctx, limit)
	}
	return nil, nil
}

func (r *stubLeagueRepo) FilterExisting(ctx context.Context, ids []string) (map[string]struct{}, error) {
	if r.existing != nil {
		return r.existing(ctx, ids)
	}
	return map[string]struct{}{}, nil
}

func (r *stubLeagueRepo) Delete(ctx context.Context, leagueID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.mu.Lock()
	r.deletedIDs = append(r.deletedIDs, leagueID)
	r.mu.Unlock()
	return nil
}

func (r *stubLeagueRepo) deleted() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.deletedIDs))
	copy(out, r.deletedIDs)
	return out
}

type stubWriter struct {
	mu        sync.Mutex
	commitErr error
	batches   []Batch
}

func (w *stubWriter) CommitBatch(_ context.Context, batch Batch) error {
	if w.commitErr != nil {
		return w.commitErr
	}
	w.mu.Lock()
	w.batches = append(w.batches, batch)
	w.mu.Unlock()
	return nil
}

func (w *stubWriter) committed() []Batch {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Batch, len(w.batches))
	copy(out, w.batches)
	return out
}

type stubValuationRepo struct {
	snapshot valuation.Snapshot
	found    bool
	err      error
}

func (r *stubValuationRepo) GetByOffset(_ context.Context, _ int) (valuation.Snapshot, bool, error) {
	return r.snapshot, r.found, r.err
}

var _ SleeperGateway = (*stubGateway)(nil)
var _ user.Repository = (*stubUserRepo)(nil)
var _ league.Repository = (*stubLeagueRepo)(nil)
var _ BatchWriter = (*stubWriter)(nil)
var _ valuation.Repository = (*stubValuationRepo)(nil)
