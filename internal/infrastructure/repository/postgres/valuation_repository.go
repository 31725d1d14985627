package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/leaguevault/sleeper-sync/internal/domain/valuation"
	qb "github.com/leaguevault/sleeper-sync/internal/platform/querybuilder"
)

type valuationTableModel struct {
	CapturedAt time.Time `db:"captured_at"`
	Values     string    `db:"player_values"`
}

type ValuationRepository struct {
	db *sqlx.DB
}

func NewValuationRepository(db *sqlx.DB) *ValuationRepository {
	return &ValuationRepository{db: db}
}

var _ valuation.Repository = (*ValuationRepository)(nil)

func (r *ValuationRepository) GetByOffset(ctx context.Context, offset int) (valuation.Snapshot, bool, error) {
	query, args, err := qb.Select("captured_at", "player_values").From("ktc_values").
		OrderBy("captured_at DESC").
		Limit(1).
		Offset(offset).
		ToSQL()
	if err != nil {
		return valuation.Snapshot{}, false, fmt.Errorf("build valuation snapshot query: %w", err)
	}

	var row valuationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return valuation.Snapshot{}, false, nil
		}
		return valuation.Snapshot{}, false, fmt.Errorf("get valuation snapshot offset=%d: %w", offset, err)
	}

	values := make(map[string]int)
	if err := sonic.Unmarshal([]byte(row.Values), &values); err != nil {
		return valuation.Snapshot{}, false, fmt.Errorf("decode valuation values: %w", err)
	}

	return valuation.Snapshot{
		CapturedAt: row.CapturedAt,
		Values:     values,
	}, true, nil
}
