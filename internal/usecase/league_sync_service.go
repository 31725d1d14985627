package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/leaguevault/sleeper-sync/internal/domain/league"
	"github.com/leaguevault/sleeper-sync/internal/domain/matchup"
	"github.com/leaguevault/sleeper-sync/internal/domain/trade"
	"github.com/leaguevault/sleeper-sync/internal/domain/user"
	"github.com/leaguevault/sleeper-sync/internal/platform/logging"
)

type LeagueSyncConfig struct {
	// GroupSize bounds in-flight league fetch chains per group.
	GroupSize int
	// PassCap bounds how many leagues one pass processes.
	PassCap int
}

func normalizeLeagueSyncConfig(cfg LeagueSyncConfig) LeagueSyncConfig {
	if cfg.GroupSize <= 0 {
		cfg.GroupSize = 5
	}
	if cfg.PassCap <= 0 {
		cfg.PassCap = 100
	}
	return cfg
}

// SyncPassResult reports which league ids one pass settled. Staged ids
// committed to the store; Deleted ids no longer exist on the platform and
// were removed. Both sets leave the frontier queue.
type SyncPassResult struct {
	Staged  []string
	Deleted []string
}

// LeagueSyncService re-syncs a batch of leagues from the platform and
// commits the staged records in a single transaction.
type LeagueSyncService struct {
	gateway SleeperGateway
	leagues league.Repository
	writer  BatchWriter
	cfg     LeagueSyncConfig
	logger  *logging.Logger
	now     func() time.Time
}

func NewLeagueSyncService(
	gateway SleeperGateway,
	leagueRepo league.Repository,
	writer BatchWriter,
	cfg LeagueSyncConfig,
	logger *logging.Logger,
) *LeagueSyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueSyncService{
		gateway: gateway,
		leagues: leagueRepo,
		writer:  writer,
		cfg:     normalizeLeagueSyncConfig(cfg),
		logger:  logger,
		now:     time.Now,
	}
}

// stagedLeague is one league's records, held until the pass commits.
type stagedLeague struct {
	league   league.League
	trades   []trade.Trade
	matchups []matchup.Matchup
	users    []user.User
	members  []user.Membership
}

// SyncBatch processes up to PassCap league ids for the given week. An
// underfull batch is topped up with the store's stalest leagues. Leagues
// are fetched in strictly sequenced groups of GroupSize; one league's
// failure never aborts its group. All successfully staged leagues commit
// together, so a commit failure leaves every id queued for retry.
func (s *LeagueSyncService) SyncBatch(ctx context.Context, leagueIDs []string, week int) (SyncPassResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueSyncService.SyncBatch")
	defer span.End()

	ids := dedupIDs(leagueIDs)
	if len(ids) > s.cfg.PassCap {
		ids = ids[:s.cfg.PassCap]
	}
	if len(ids) < s.cfg.PassCap {
		stale, err := s.leagues.ListStalestIDs(ctx, s.cfg.PassCap-len(ids))
		if err != nil {
			return SyncPassResult{}, fmt.Errorf("list stalest leagues: %w", err)
		}
		ids = dedupIDs(append(ids, stale...))
	}
	if len(ids) == 0 {
		return SyncPassResult{}, nil
	}

	pool, err := ants.NewPool(s.cfg.GroupSize)
	if err != nil {
		return SyncPassResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	staged := make([]stagedLeague, 0, len(ids))
	deleted := make([]string, 0)

	for start := 0; start < len(ids); start += s.cfg.GroupSize {
		end := start + s.cfg.GroupSize
		if end > len(ids) {
			end = len(ids)
		}

		var workers sync.WaitGroup
		for _, leagueID := range ids[start:end] {
			leagueID := leagueID
			workers.Add(1)
			if err := pool.Submit(func() {
				defer workers.Done()

				item, err := s.syncOne(ctx, leagueID, week)
				if err == nil {
					mu.Lock()
					staged = append(staged, item)
					mu.Unlock()
					return
				}

				if errors.Is(err, ErrNotFound) {
					if delErr := s.leagues.Delete(ctx, leagueID); delErr != nil {
						s.logger.ErrorContext(ctx, "delete vanished league failed",
							"league_id", leagueID,
							"error", delErr,
						)
						return
					}
					s.logger.InfoContext(ctx, "league gone from platform, deleted",
						"league_id", leagueID,
					)
					mu.Lock()
					deleted = append(deleted, leagueID)
					mu.Unlock()
					return
				}

				s.logger.WarnContext(ctx, "league sync failed, will retry next pass",
					"league_id", leagueID,
					"error", err,
				)
			}); err != nil {
				workers.Done()
				return SyncPassResult{}, fmt.Errorf("submit league to worker pool: %w", err)
			}
		}
		workers.Wait()
	}

	batch, stagedIDs := assembleBatch(staged)
	if batch.Empty() {
		return SyncPassResult{Deleted: deleted}, nil
	}

	if err := s.writer.CommitBatch(ctx, batch); err != nil {
		s.logger.ErrorContext(ctx, "pass commit failed, batch rolled back",
			"leagues", len(stagedIDs),
			"error", err,
		)
		return SyncPassResult{Deleted: deleted}, fmt.Errorf("commit sync batch: %w", err)
	}

	s.logger.InfoContext(ctx, "league sync pass committed",
		"leagues", len(stagedIDs),
		"trades", len(batch.Trades),
		"matchups", len(batch.Matchups),
		"users", len(batch.Users),
		"deleted", len(deleted),
	)
	return SyncPassResult{Staged: stagedIDs, Deleted: deleted}, nil
}

// syncOne fetches one league's full snapshot and stages its records.
func (s *LeagueSyncService) syncOne(ctx context.Context, leagueID string, week int) (stagedLeague, error) {
	remote, err := s.gateway.FetchLeague(ctx, leagueID)
	if err != nil {
		return stagedLeague{}, fmt.Errorf("fetch league %s: %w", leagueID, err)
	}

	rosters, err := s.gateway.FetchLeagueRosters(ctx, leagueID)
	if err != nil {
		return stagedLeague{}, fmt.Errorf("fetch rosters %s: %w", leagueID, err)
	}
	leagueUsers, err := s.gateway.FetchLeagueUsers(ctx, leagueID)
	if err != nil {
		return stagedLeague{}, fmt.Errorf("fetch league users %s: %w", leagueID, err)
	}

	var matchups []matchup.Matchup
	if remote.Status == "in_season" {
		remoteMatchups, err := s.gateway.FetchLeagueMatchups(ctx, leagueID, week)
		if err != nil {
			return stagedLeague{}, fmt.Errorf("fetch matchups %s week %d: %w", leagueID, week, err)
		}
		matchups = make([]matchup.Matchup, 0, len(remoteMatchups))
		for _, m := range remoteMatchups {
			matchups = append(matchups, matchup.Matchup{
				Week:      week,
				MatchupID: m.MatchupID,
				RosterID:  m.RosterID,
				Players:   m.Players,
				Starters:  m.Starters,
				LeagueID:  leagueID,
			})
		}
	}

	var picks map[int][]league.DraftPick
	var upcoming *RemoteDraft
	if remote.HasRookieDrafts() {
		drafts, err := s.gateway.FetchLeagueDrafts(ctx, leagueID)
		if err != nil {
			return stagedLeague{}, fmt.Errorf("fetch drafts %s: %w", leagueID, err)
		}
		ledger, err := s.gateway.FetchLeagueTradedPicks(ctx, leagueID)
		if err != nil {
			return stagedLeague{}, fmt.Errorf("fetch traded picks %s: %w", leagueID, err)
		}
		picks = resolvePicks(remote, rosters, leagueUsers, drafts, ledger)
		upcoming = findUpcomingDraft(remote, drafts)
	}

	enriched := enrichRosters(rosters, leagueUsers, picks)

	users := make([]user.User, 0, len(enriched))
	members := make([]user.Membership, 0, len(enriched))
	for _, roster := range enriched {
		if roster.UserID == "" {
			continue
		}
		avatar := ""
		if roster.Avatar != nil {
			avatar = *roster.Avatar
		}
		users = append(users, user.User{
			UserID:   roster.UserID,
			Username: roster.Username,
			Avatar:   avatar,
		})
		members = append(members, user.Membership{
			UserID:   roster.UserID,
			LeagueID: leagueID,
		})
	}

	transactions, err := s.gateway.FetchLeagueTransactions(ctx, leagueID, week)
	if err != nil {
		return stagedLeague{}, fmt.Errorf("fetch transactions %s week %d: %w", leagueID, week, err)
	}
	trades := normalizeTrades(leagueID, transactions, enriched, upcoming)

	return stagedLeague{
		league: league.League{
			LeagueID:        remote.LeagueID,
			Name:            remote.Name,
			Avatar:          remote.Avatar,
			Season:          remote.Season,
			Status:          remote.Status,
			Settings:        remote.Settings,
			ScoringSettings: remote.ScoringSettings,
			RosterPositions: remote.RosterPositions,
			Rosters:         enriched,
			UpdatedAt:       s.now(),
		},
		trades:   trades,
		matchups: matchups,
		users:    users,
		members:  members,
	}, nil
}

// assembleBatch merges per-league stagings into one commit batch. Users
// seen in multiple leagues keep their first staged identity.
func assembleBatch(staged []stagedLeague) (Batch, []string) {
	var batch Batch
	ids := make([]string, 0, len(staged))
	seenUsers := make(map[string]struct{})

	for _, item := range staged {
		ids = append(ids, item.league.LeagueID)
		batch.Leagues = append(batch.Leagues, item.league)
		batch.Trades = append(batch.Trades, item.trades...)
		batch.Matchups = append(batch.Matchups, item.matchups...)
		batch.Memberships = append(batch.Memberships, item.members...)
		for _, u := range item.users {
			if _, ok := seenUsers[u.UserID]; ok {
				continue
			}
			seenUsers[u.UserID] = struct{}{}
			batch.Users = append(batch.Users, u)
		}
	}
	return batch, ids
}

func dedupIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
