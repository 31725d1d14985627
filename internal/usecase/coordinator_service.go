package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/leaguevault/sleeper-sync/internal/platform/logging"
)

type CoordinatorConfig struct {
	// Interval is the tick period between sync passes.
	Interval time.Duration
}

func normalizeCoordinatorConfig(cfg CoordinatorConfig) CoordinatorConfig {
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Minute
	}
	return cfg
}

// PassResult summarizes one completed coordinator pass.
type PassResult struct {
	Discovered int
	Queued     int
	Staged     int
	Deleted    int
}

// CoordinatorService owns the frontier queue and drives the periodic
// discovery and league sync passes. At most one pass runs at a time; a
// tick arriving mid-pass is skipped outright rather than queued.
type CoordinatorService struct {
	discovery *DiscoveryService
	syncer    *LeagueSyncService
	states    *StateService
	frontier  *Frontier
	cfg       CoordinatorConfig
	logger    *logging.Logger

	running atomic.Bool
}

func NewCoordinatorService(
	discovery *DiscoveryService,
	syncer *LeagueSyncService,
	states *StateService,
	frontier *Frontier,
	cfg CoordinatorConfig,
	logger *logging.Logger,
) *CoordinatorService {
	if logger == nil {
		logger = logging.Default()
	}

	return &CoordinatorService{
		discovery: discovery,
		syncer:    syncer,
		states:    states,
		frontier:  frontier,
		cfg:       normalizeCoordinatorConfig(cfg),
		logger:    logger,
	}
}

// Run ticks passes until ctx is cancelled. The first pass starts
// immediately rather than one interval in.
func (c *CoordinatorService) Run(ctx context.Context) {
	c.logger.InfoContext(ctx, "sync coordinator started",
		"interval", c.cfg.Interval,
	)

	ticker := time.NewTicker(c.cfg.Interval)
	defer ticker.Stop()

	c.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "sync coordinator stopped")
			return
		case <-ticker.C:
			c.tick(ctx)
		}
	}
}

func (c *CoordinatorService) tick(ctx context.Context) {
	result, err := c.RunOnce(ctx)
	switch {
	case errors.Is(err, ErrPassInProgress):
		c.logger.InfoContext(ctx, "tick skipped, previous pass still running")
	case err != nil:
		c.logger.ErrorContext(ctx, "sync pass failed",
			"error", err,
			"queued", c.frontier.Len(),
		)
	default:
		c.logger.InfoContext(ctx, "sync pass finished",
			"discovered", result.Discovered,
			"staged", result.Staged,
			"deleted", result.Deleted,
			"queued", result.Queued,
		)
	}
}

// RunOnce executes a single Discovery plus League Sync pass. It returns
// ErrPassInProgress without doing any work when another pass holds the
// single-flight guard. The guard clears on every exit path.
func (c *CoordinatorService) RunOnce(ctx context.Context) (PassResult, error) {
	if !c.running.CompareAndSwap(false, true) {
		return PassResult{}, ErrPassInProgress
	}
	defer c.running.Store(false)

	ctx, span := startUsecaseSpan(ctx, "usecase.CoordinatorService.RunOnce")
	defer span.End()

	state, err := c.states.Current(ctx)
	if err != nil {
		return PassResult{}, err
	}

	discovered, err := c.discovery.Run(ctx, state)
	if err != nil {
		// A failed discovery leaves the queue usable, so the sync half
		// of the pass still runs against whatever is queued.
		c.logger.WarnContext(ctx, "discovery failed, syncing existing queue",
			"error", err,
		)
	}

	result, err := c.syncer.SyncBatch(ctx, c.frontier.Snapshot(), state.CurrentWeek())
	c.frontier.Remove(result.Deleted...)
	if err != nil {
		return PassResult{Discovered: discovered, Queued: c.frontier.Len()}, err
	}
	c.frontier.Remove(result.Staged...)

	return PassResult{
		Discovered: discovered,
		Queued:     c.frontier.Len(),
		Staged:     len(result.Staged),
		Deleted:    len(result.Deleted),
	}, nil
}
