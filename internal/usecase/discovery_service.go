package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/leaguevault/sleeper-sync/internal/domain/league"
	"github.com/leaguevault/sleeper-sync/internal/domain/nflstate"
	"github.com/leaguevault/sleeper-sync/internal/domain/user"
	"github.com/leaguevault/sleeper-sync/internal/platform/logging"
)

type DiscoveryConfig struct {
	// UserBatchSize bounds how many stale tracked users one pass reads.
	UserBatchSize int
	// FanOut is the per-group concurrency for user league fetches.
	FanOut int
	// FrontierCap skips discovery entirely while the queue holds at
	// least this many leagues.
	FrontierCap int
}

func normalizeDiscoveryConfig(cfg DiscoveryConfig) DiscoveryConfig {
	if cfg.UserBatchSize <= 0 {
		cfg.UserBatchSize = 100
	}
	if cfg.FanOut <= 0 {
		cfg.FanOut = 10
	}
	if cfg.FrontierCap <= 0 {
		cfg.FrontierCap = 100
	}
	return cfg
}

// DiscoveryService walks stale tracked users' current-season leagues and
// feeds unseen league ids into the frontier queue.
type DiscoveryService struct {
	gateway  SleeperGateway
	userRepo user.Repository
	leagues  league.Repository
	frontier *Frontier
	cfg      DiscoveryConfig
	logger   *logging.Logger
}

func NewDiscoveryService(
	gateway SleeperGateway,
	userRepo user.Repository,
	leagueRepo league.Repository,
	frontier *Frontier,
	cfg DiscoveryConfig,
	logger *logging.Logger,
) *DiscoveryService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DiscoveryService{
		gateway:  gateway,
		userRepo: userRepo,
		leagues:  leagueRepo,
		frontier: frontier,
		cfg:      normalizeDiscoveryConfig(cfg),
		logger:   logger,
	}
}

// Run discovers new league ids for the given season snapshot and appends
// them to the frontier. It returns how many ids were added. A full queue
// makes the whole run a no-op: discovered ids would only be re-discovered
// once the queue drains, so the work is deferred instead.
func (s *DiscoveryService) Run(ctx context.Context, state nflstate.State) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DiscoveryService.Run")
	defer span.End()

	if s.frontier.Len() >= s.cfg.FrontierCap {
		s.logger.DebugContext(ctx, "discovery skipped, frontier at capacity",
			"queued", s.frontier.Len(),
			"cap", s.cfg.FrontierCap,
		)
		return 0, nil
	}

	tracked, err := s.userRepo.ListTrackedStalest(ctx, s.cfg.UserBatchSize)
	if err != nil {
		return 0, fmt.Errorf("list tracked users: %w", err)
	}
	if len(tracked) == 0 {
		return 0, nil
	}

	var mu sync.Mutex
	seen := make(map[string]struct{})
	candidates := make([]string, 0)

	// Groups of FanOut users run concurrently; groups are sequenced so
	// outstanding platform requests stay bounded.
	for start := 0; start < len(tracked); start += s.cfg.FanOut {
		end := start + s.cfg.FanOut
		if end > len(tracked) {
			end = len(tracked)
		}

		var wg conc.WaitGroup
		for _, item := range tracked[start:end] {
			item := item
			wg.Go(func() {
				leagues, err := s.gateway.FetchUserLeagues(ctx, item.UserID, state.LeagueSeason)
				if err != nil {
					s.logger.WarnContext(ctx, "fetch user leagues failed",
						"user_id", item.UserID,
						"season", state.LeagueSeason,
						"error", err,
					)
					return
				}

				mu.Lock()
				defer mu.Unlock()
				for _, lg := range leagues {
					if lg.LeagueID == "" {
						continue
					}
					if _, ok := seen[lg.LeagueID]; ok {
						continue
					}
					seen[lg.LeagueID] = struct{}{}
					candidates = append(candidates, lg.LeagueID)
				}
			})
		}
		wg.Wait()
	}

	if len(candidates) == 0 {
		return 0, nil
	}

	fresh := make([]string, 0, len(candidates))
	for _, id := range candidates {
		if !s.frontier.Contains(id) {
			fresh = append(fresh, id)
		}
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	existing, err := s.leagues.FilterExisting(ctx, fresh)
	if err != nil {
		return 0, fmt.Errorf("filter existing leagues: %w", err)
	}

	unseen := make([]string, 0, len(fresh))
	for _, id := range fresh {
		if _, ok := existing[id]; !ok {
			unseen = append(unseen, id)
		}
	}

	added := s.frontier.Append(unseen...)
	s.logger.InfoContext(ctx, "discovery pass finished",
		"users_checked", len(tracked),
		"leagues_seen", len(candidates),
		"leagues_added", added,
		"queued", s.frontier.Len(),
	)
	return added, nil
}
