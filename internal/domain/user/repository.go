package user

import "context"

// Repository describes user persistence needs from use cases.
type Repository interface {
	// ListTrackedStalest returns up to limit searched/league-manager users
	// ordered oldest-updated first.
	ListTrackedStalest(ctx context.Context, limit int) ([]User, error)
}
