package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/leaguevault/sleeper-sync/internal/domain/nflstate"
	"github.com/leaguevault/sleeper-sync/internal/platform/logging"
)

// StateService caches the platform's season/week snapshot so every pass
// does not re-fetch it. The snapshot changes at most weekly, so a stale
// copy is served when a refresh fails and an older one exists.
type StateService struct {
	gateway      SleeperGateway
	refreshEvery time.Duration
	logger       *logging.Logger
	now          func() time.Time

	mu        sync.RWMutex
	state     nflstate.State
	fetchedAt time.Time
}

func NewStateService(gateway SleeperGateway, refreshEvery time.Duration, logger *logging.Logger) *StateService {
	if refreshEvery <= 0 {
		refreshEvery = time.Hour
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &StateService{
		gateway:      gateway,
		refreshEvery: refreshEvery,
		logger:       logger,
		now:          time.Now,
	}
}

// Current returns the cached snapshot, refreshing it first when it has
// gone stale or was never fetched.
func (s *StateService) Current(ctx context.Context) (nflstate.State, error) {
	s.mu.RLock()
	state := s.state
	fetchedAt := s.fetchedAt
	s.mu.RUnlock()

	if !fetchedAt.IsZero() && s.now().Sub(fetchedAt) < s.refreshEvery {
		return state, nil
	}
	return s.Refresh(ctx)
}

// Refresh fetches a fresh snapshot unconditionally. When the fetch fails
// and a previous snapshot exists, that snapshot is returned instead of an
// error so a flaky state endpoint cannot stall whole passes.
func (s *StateService) Refresh(ctx context.Context) (nflstate.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StateService.Refresh")
	defer span.End()

	remote, err := s.gateway.FetchState(ctx)
	if err != nil {
		s.mu.RLock()
		state := s.state
		fetchedAt := s.fetchedAt
		s.mu.RUnlock()

		if !fetchedAt.IsZero() {
			s.logger.WarnContext(ctx, "state refresh failed, serving cached snapshot",
				"error", err,
				"fetched_at", fetchedAt,
			)
			return state, nil
		}
		return nflstate.State{}, fmt.Errorf("fetch nfl state: %w", err)
	}

	state := nflstate.State{
		Week:           remote.Week,
		DisplayWeek:    remote.DisplayWeek,
		SeasonType:     remote.SeasonType,
		Season:         remote.Season,
		LeagueSeason:   remote.LeagueSeason,
		PreviousSeason: remote.PreviousSeason,
	}

	s.mu.Lock()
	s.state = state
	s.fetchedAt = s.now()
	s.mu.Unlock()

	return state, nil
}
