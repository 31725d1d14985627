package usecase

import (
	"context"
	"fmt"

	"github.com/leaguevault/sleeper-sync/internal/domain/valuation"
	"github.com/leaguevault/sleeper-sync/internal/platform/logging"
)

// ValuationSnapshot is the read model served for one captured valuation
// dataset.
type ValuationSnapshot struct {
	Date   string         `json:"date"`
	Values map[string]int `json:"values"`
}

// ValuationService serves captured player-valuation snapshots. The
// snapshots are written by an external capture job; this service only
// reads them back by recency offset.
type ValuationService struct {
	repo   valuation.Repository
	logger *logging.Logger
}

func NewValuationService(repo valuation.Repository, logger *logging.Logger) *ValuationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ValuationService{
		repo:   repo,
		logger: logger,
	}
}

// Current returns the Nth most recent snapshot, offset 0 being today's.
func (s *ValuationService) Current(ctx context.Context, offset int) (ValuationSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValuationService.Current")
	defer span.End()

	if offset < 0 {
		return ValuationSnapshot{}, fmt.Errorf("%w: offset must be >= 0", ErrInvalidInput)
	}

	snapshot, ok, err := s.repo.GetByOffset(ctx, offset)
	if err != nil {
		return ValuationSnapshot{}, fmt.Errorf("get valuation snapshot offset=%d: %w", offset, err)
	}
	if !ok {
		return ValuationSnapshot{}, fmt.Errorf("%w: no valuation snapshot at offset=%d", ErrNotFound, offset)
	}

	return ValuationSnapshot{
		Date:   snapshot.CapturedAt.Format("2006-01-02"),
		Values: snapshot.Values,
	}, nil
}
