package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/leaguevault/sleeper-sync/internal/domain/user"
	qb "github.com/leaguevault/sleeper-sync/internal/platform/querybuilder"
)

type userTableModel struct {
	UserID   string `db:"user_id"`
	Username string `db:"username"`
	Avatar   string `db:"avatar"`
	Type     string `db:"type"`
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ user.Repository = (*UserRepository)(nil)

// ListTrackedStalest returns searched and league-manager users, oldest
// update first, so discovery cycles through the tracked population.
func (r *UserRepository) ListTrackedStalest(ctx context.Context, limit int) ([]user.User, error) {
	if limit <= 0 {
		return nil, nil
	}

	query, args, err := qb.Select("user_id", "username", "avatar", "type").From("users").
		Where(qb.In("type", []any{user.TypeSearched, user.TypeLeagueManager})).
		OrderBy("updatedat ASC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build tracked users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tracked users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, user.User{
			UserID:   row.UserID,
			Username: row.Username,
			Avatar:   row.Avatar,
			Type:     row.Type,
		})
	}
	return out, nil
}
