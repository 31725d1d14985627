package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/leaguevault/sleeper-sync/internal/domain/matchup"
	"github.com/leaguevault/sleeper-sync/internal/domain/trade"
	"github.com/leaguevault/sleeper-sync/internal/domain/user"
	qb "github.com/leaguevault/sleeper-sync/internal/platform/querybuilder"
	"github.com/leaguevault/sleeper-sync/internal/usecase"
)

const leagueUpsertSuffix = `ON CONFLICT (league_id) DO UPDATE SET
    name = EXCLUDED.name,
    avatar = EXCLUDED.avatar,
    season = EXCLUDED.season,
    status = EXCLUDED.status,
    settings = EXCLUDED.settings,
    scoring_settings = EXCLUDED.scoring_settings,
    roster_positions = EXCLUDED.roster_positions,
    rosters = EXCLUDED.rosters,
    updatedat = EXCLUDED.updatedat`

// Re-synced trades only refresh draft_picks: a pick's order becomes known
// once the next draft's order is fixed, while the rest of a completed
// trade never changes.
const tradeUpsertSuffix = `ON CONFLICT (transaction_id) DO UPDATE SET
    draft_picks = EXCLUDED.draft_picks`

const matchupUpsertSuffix = `ON CONFLICT (week, roster_id, league_id) DO UPDATE SET
    matchup_id = EXCLUDED.matchup_id,
    players = EXCLUDED.players,
    starters = EXCLUDED.starters,
    updatedat = EXCLUDED.updatedat`

// Type is deliberately left out of the update list: rosters stage users
// with a blank type, and overwriting would untag searched users.
const userUpsertSuffix = `ON CONFLICT (user_id) DO UPDATE SET
    username = EXCLUDED.username,
    avatar = EXCLUDED.avatar,
    updatedat = EXCLUDED.updatedat`

// SyncRepository persists one sync pass's staged records in a single
// transaction.
type SyncRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSyncRepository(db *sqlx.DB) *SyncRepository {
	return &SyncRepository{
		db:  db,
		now: time.Now,
	}
}

var _ usecase.BatchWriter = (*SyncRepository)(nil)

func (r *SyncRepository) CommitBatch(ctx context.Context, batch usecase.Batch) error {
	if batch.Empty() {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sync batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := r.upsertLeagues(ctx, tx, batch); err != nil {
		return err
	}
	if err := r.upsertTrades(ctx, tx, batch.Trades); err != nil {
		return err
	}
	if err := r.upsertMatchups(ctx, tx, batch.Matchups); err != nil {
		return err
	}
	if err := r.upsertUsers(ctx, tx, batch.Users); err != nil {
		return err
	}
	if err := r.insertMemberships(ctx, tx, batch.Memberships); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sync batch tx: %w", err)
	}
	return nil
}

func (r *SyncRepository) upsertLeagues(ctx context.Context, tx *sqlx.Tx, batch usecase.Batch) error {
	for _, item := range batch.Leagues {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("validate league %s: %w", item.LeagueID, err)
		}

		model, err := newLeagueInsertModel(item)
		if err != nil {
			return err
		}
		query, args, err := qb.InsertModel("leagues", model, leagueUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert league query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert league %s: %w", item.LeagueID, err)
		}
	}
	return nil
}

type tradeInsertModel struct {
	TransactionID string         `db:"transaction_id"`
	StatusUpdated int64          `db:"status_updated"`
	Adds          string         `db:"adds"`
	Drops         string         `db:"drops"`
	DraftPicks    string         `db:"draft_picks"`
	PriceCheck    pq.StringArray `db:"price_check"`
	Rosters       string         `db:"rosters"`
	Managers      pq.StringArray `db:"managers"`
	Players       pq.StringArray `db:"players"`
	LeagueID      string         `db:"league_id"`
}

func (r *SyncRepository) upsertTrades(ctx context.Context, tx *sqlx.Tx, items []trade.Trade) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("validate trade %s: %w", item.TransactionID, err)
		}

		adds, err := encodeJSON(item.Adds)
		if err != nil {
			return fmt.Errorf("trade %s adds: %w", item.TransactionID, err)
		}
		drops, err := encodeJSON(item.Drops)
		if err != nil {
			return fmt.Errorf("trade %s drops: %w", item.TransactionID, err)
		}
		picks, err := encodeJSON(item.DraftPicks)
		if err != nil {
			return fmt.Errorf("trade %s draft picks: %w", item.TransactionID, err)
		}
		rosters, err := encodeJSON(orEmptyRosters(item.Rosters))
		if err != nil {
			return fmt.Errorf("trade %s rosters: %w", item.TransactionID, err)
		}

		model := tradeInsertModel{
			TransactionID: item.TransactionID,
			StatusUpdated: item.StatusUpdated,
			Adds:          adds,
			Drops:         drops,
			DraftPicks:    picks,
			PriceCheck:    pq.StringArray(item.PriceCheck),
			Rosters:       rosters,
			Managers:      pq.StringArray(item.Managers),
			Players:       pq.StringArray(item.Players),
			LeagueID:      item.LeagueID,
		}
		query, args, err := qb.InsertModel("trades", model, tradeUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert trade query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert trade %s: %w", item.TransactionID, err)
		}
	}
	return nil
}

type matchupInsertModel struct {
	Week      int            `db:"week"`
	MatchupID int            `db:"matchup_id"`
	RosterID  int            `db:"roster_id"`
	Players   pq.StringArray `db:"players"`
	Starters  pq.StringArray `db:"starters"`
	LeagueID  string         `db:"league_id"`
	UpdatedAt time.Time      `db:"updatedat"`
}

func (r *SyncRepository) upsertMatchups(ctx context.Context, tx *sqlx.Tx, items []matchup.Matchup) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("validate matchup league=%s roster=%d: %w", item.LeagueID, item.RosterID, err)
		}

		model := matchupInsertModel{
			Week:      item.Week,
			MatchupID: item.MatchupID,
			RosterID:  item.RosterID,
			Players:   pq.StringArray(item.Players),
			Starters:  pq.StringArray(item.Starters),
			LeagueID:  item.LeagueID,
			UpdatedAt: r.now(),
		}
		query, args, err := qb.InsertModel("matchups", model, matchupUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert matchup query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert matchup league=%s week=%d roster=%d: %w",
				item.LeagueID, item.Week, item.RosterID, err)
		}
	}
	return nil
}

type userInsertModel struct {
	UserID    string    `db:"user_id"`
	Username  string    `db:"username"`
	Avatar    string    `db:"avatar"`
	Type      string    `db:"type"`
	UpdatedAt time.Time `db:"updatedat"`
	CreatedAt time.Time `db:"createdat"`
}

func (r *SyncRepository) upsertUsers(ctx context.Context, tx *sqlx.Tx, items []user.User) error {
	now := r.now()
	for _, item := range items {
		model := userInsertModel{
			UserID:    item.UserID,
			Username:  item.Username,
			Avatar:    item.Avatar,
			Type:      item.Type,
			UpdatedAt: now,
			CreatedAt: now,
		}
		query, args, err := qb.InsertModel("users", model, userUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert user query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert user %s: %w", item.UserID, err)
		}
	}
	return nil
}

type membershipInsertModel struct {
	UserID   string `db:"user_id"`
	LeagueID string `db:"league_id"`
}

func (r *SyncRepository) insertMemberships(ctx context.Context, tx *sqlx.Tx, items []user.Membership) error {
	for _, item := range items {
		model := membershipInsertModel{
			UserID:   item.UserID,
			LeagueID: item.LeagueID,
		}
		query, args, err := qb.InsertModel("userleagues", model, "ON CONFLICT DO NOTHING")
		if err != nil {
			return fmt.Errorf("build insert membership query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert membership user=%s league=%s: %w", item.UserID, item.LeagueID, err)
		}
	}
	return nil
}
