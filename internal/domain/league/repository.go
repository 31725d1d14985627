package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	// ListStalestIDs returns up to limit league ids ordered oldest-synced
	// first, for backfilling an underfull sync pass.
	ListStalestIDs(ctx context.Context, limit int) ([]string, error)
	// FilterExisting returns the subset of leagueIDs already stored.
	FilterExisting(ctx context.Context, leagueIDs []string) (map[string]struct{}, error)
	// Delete removes a league the platform no longer knows about.
	Delete(ctx context.Context, leagueID string) error
}
