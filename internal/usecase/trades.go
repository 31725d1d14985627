package usecase

import (
	"sort"

	"github.com/leaguevault/sleeper-sync/internal/domain/league"
	"github.com/leaguevault/sleeper-sync/internal/domain/trade"
)

// normalizeTrades maps a league's completed trade transactions into trade
// records. Adds and drops are rekeyed from roster ids to the owning
// manager's user id; players on an orphaned or unknown roster are omitted
// from the maps and from the managers list. The upcoming draft, when one
// carries a fixed order, contributes draft slots to traded picks of its
// season.
func normalizeTrades(
	leagueID string,
	transactions []RemoteTransaction,
	rosters []league.Roster,
	upcoming *RemoteDraft,
) []trade.Trade {
	userByRoster := make(map[int]string, len(rosters))
	for _, r := range rosters {
		if r.UserID != "" {
			userByRoster[r.RosterID] = r.UserID
		}
	}

	upcomingSeason := 0
	var draftOrder map[string]int
	if upcoming != nil {
		upcomingSeason = atoiLoose(upcoming.Season)
		draftOrder = upcoming.DraftOrder
	}

	out := make([]trade.Trade, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Type != "trade" || tx.Status != "complete" {
			continue
		}

		adds := make(map[string]string, len(tx.Adds))
		for playerID, rosterID := range tx.Adds {
			if userID, ok := userByRoster[rosterID]; ok {
				adds[playerID] = userID
			}
		}
		drops := make(map[string]string, len(tx.Drops))
		for playerID, rosterID := range tx.Drops {
			if userID, ok := userByRoster[rosterID]; ok {
				drops[playerID] = userID
			}
		}

		picks := make([]trade.PickTransfer, 0, len(tx.DraftPicks))
		for _, dp := range tx.DraftPicks {
			originalUser := userByRoster[dp.RosterID]

			var order *int
			if draftOrder != nil && originalUser != "" && atoiLoose(dp.Season) == upcomingSeason {
				if pos, ok := draftOrder[originalUser]; ok && pos > 0 {
					order = &pos
				}
			}

			picks = append(picks, trade.PickTransfer{
				Round:    dp.Round,
				Season:   dp.Season,
				New:      userByRoster[dp.OwnerID],
				Old:      userByRoster[dp.PreviousOwnerID],
				Original: originalUser,
				Order:    order,
			})
		}

		players := make([]string, 0, len(adds)+len(picks))
		for playerID := range tx.Adds {
			players = append(players, playerID)
		}
		sort.Strings(players)
		for _, pick := range picks {
			players = append(players, pick.Label())
		}

		out = append(out, trade.Trade{
			TransactionID: tx.TransactionID,
			StatusUpdated: tx.StatusUpdated,
			Adds:          adds,
			Drops:         drops,
			DraftPicks:    picks,
			PriceCheck:    []string{""},
			Rosters:       rosters,
			Managers:      dedupManagers(adds, drops),
			Players:       players,
			LeagueID:      leagueID,
		})
	}
	return out
}

func dedupManagers(adds, drops map[string]string) []string {
	seen := make(map[string]struct{}, len(adds)+len(drops))
	out := make([]string, 0, len(adds)+len(drops))
	for _, userID := range adds {
		if _, ok := seen[userID]; !ok {
			seen[userID] = struct{}{}
			out = append(out, userID)
		}
	}
	for _, userID := range drops {
		if _, ok := seen[userID]; !ok {
			seen[userID] = struct{}{}
			out = append(out, userID)
		}
	}
	sort.Strings(out)
	return out
}
