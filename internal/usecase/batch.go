package usecase

import (
	"context"

	"github.com/leaguevault/sleeper-sync/internal/domain/league"
	"github.com/leaguevault/sleeper-sync/internal/domain/matchup"
	"github.com/leaguevault/sleeper-sync/internal/domain/trade"
	"github.com/leaguevault/sleeper-sync/internal/domain/user"
)

// Batch holds everything one sync pass staged for persistence. It commits
// as a single transaction: either every row lands or none do.
type Batch struct {
	Leagues     []league.League
	Trades      []trade.Trade
	Matchups    []matchup.Matchup
	Users       []user.User
	Memberships []user.Membership
}

func (b Batch) Empty() bool {
	return len(b.Leagues) == 0 &&
		len(b.Trades) == 0 &&
		len(b.Matchups) == 0 &&
		len(b.Users) == 0 &&
		len(b.Memberships) == 0
}

// BatchWriter persists one pass's staged records atomically. Empty
// collections inside the batch are no-ops.
type BatchWriter interface {
	CommitBatch(ctx context.Context, batch Batch) error
}
