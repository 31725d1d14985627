package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/leaguevault/sleeper-sync/internal/domain/league"
	qb "github.com/leaguevault/sleeper-sync/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

var _ league.Repository = (*LeagueRepository)(nil)

func (r *LeagueRepository) ListStalestIDs(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}

	query, args, err := qb.Select("league_id").From("leagues").
		OrderBy("updatedat ASC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build stalest leagues query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select stalest leagues: %w", err)
	}
	return ids, nil
}

func (r *LeagueRepository) FilterExisting(ctx context.Context, leagueIDs []string) (map[string]struct{}, error) {
	if len(leagueIDs) == 0 {
		return map[string]struct{}{}, nil
	}

	values := make([]any, 0, len(leagueIDs))
	for _, id := range leagueIDs {
		values = append(values, id)
	}

	query, args, err := qb.Select("league_id").From("leagues").
		Where(qb.In("league_id", values)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build existing leagues query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select existing leagues: %w", err)
	}

	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

func (r *LeagueRepository) Delete(ctx context.Context, leagueID string) error {
	query, args, err := qb.DeleteFrom("leagues").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete league query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete league %s: %w", leagueID, err)
	}
	return nil
}
