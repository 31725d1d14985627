package valuation

import "context"

// Repository describes valuation snapshot reads.
type Repository interface {
	// GetByOffset returns the Nth most recent snapshot, 0 being the latest.
	GetByOffset(ctx context.Context, offset int) (Snapshot, bool, error)
}
