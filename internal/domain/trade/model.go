package trade

import (
	"fmt"

	"github.com/leaguevault/sleeper-sync/internal/domain/league"
)

// Trade is a normalized completed trade transaction. Adds and Drops are
// keyed by player id and map to the acquiring/releasing manager's user id;
// players for which no roster owner could be resolved are omitted.
type Trade struct {
	TransactionID string
	StatusUpdated int64
	Adds          map[string]string
	Drops         map[string]string
	DraftPicks    []PickTransfer
	PriceCheck    []string
	Rosters       []league.Roster
	Managers      []string
	Players       []string
	LeagueID      string
}

func (t Trade) Validate() error {
	if t.TransactionID == "" {
		return fmt.Errorf("trade transaction id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("trade league id is required")
	}

	return nil
}

// PickTransfer records one draft pick changing hands inside a trade. New,
// Old and Original are user ids resolved from the pick's owner, previous
// owner and original roster.
type PickTransfer struct {
	Round    int    `json:"round"`
	Season   string `json:"season"`
	New      string `json:"new"`
	Old      string `json:"old"`
	Original string `json:"original"`
	Order    *int   `json:"order"`
}

// Label is the synthetic player-list entry for a traded pick.
func (p PickTransfer) Label() string {
	if p.Order != nil {
		return fmt.Sprintf("%s %d.%d", p.Season, p.Round, *p.Order)
	}
	return fmt.Sprintf("%s %d", p.Season, p.Round)
}
