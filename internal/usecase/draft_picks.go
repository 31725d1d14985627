package usecase

import (
	"strconv"

	"github.com/leaguevault/sleeper-sync/internal/domain/league"
)

// findUpcomingDraft returns the league's in-progress rookie draft: the
// first draft whose round count matches the league's configured rounds and
// whose status is not yet complete.
func findUpcomingDraft(lg RemoteLeague, drafts []RemoteDraft) *RemoteDraft {
	for i := range drafts {
		if drafts[i].Status != "complete" && drafts[i].Rounds == lg.DraftRounds() {
			return &drafts[i]
		}
	}
	return nil
}

// resolvePicks computes every future draft slot each roster owns, from the
// league's traded-pick ledger. The ownership window covers three seasons:
// starting at the in-progress draft's season when one exists, otherwise at
// the season after the league's.
//
// Resolution runs in three phases per roster: seed the roster's own slots
// for every (season, round) the ledger does not name as transferred away,
// then credit slots the ledger assigns to this roster, then retract slots
// the ledger shows this roster passed on again. The retraction removes the
// matching (season, round, original roster) entry from the roster's own
// list so a slot acquired and retraded within the window never survives.
func resolvePicks(
	lg RemoteLeague,
	rosters []RemoteRoster,
	users []RemoteLeagueUser,
	drafts []RemoteDraft,
	ledger []RemoteTradedPick,
) map[int][]league.DraftPick {
	upcoming := findUpcomingDraft(lg, drafts)

	startSeason := atoiLoose(lg.Season)
	if upcoming == nil {
		startSeason++
	}

	upcomingSeason := 0
	var draftOrder map[string]int
	if upcoming != nil {
		upcomingSeason = atoiLoose(upcoming.Season)
		draftOrder = upcoming.DraftOrder
	}

	usersByID := make(map[string]RemoteLeagueUser, len(users))
	for _, u := range users {
		usersByID[u.UserID] = u
	}
	rostersByID := make(map[int]RemoteRoster, len(rosters))
	for _, r := range rosters {
		rostersByID[r.RosterID] = r
	}

	orderFor := func(season int, userID string) *int {
		if draftOrder == nil || season != upcomingSeason || userID == "" {
			return nil
		}
		pos, ok := draftOrder[userID]
		if !ok || pos <= 0 {
			return nil
		}
		return &pos
	}

	out := make(map[int][]league.DraftPick, len(rosters))

	for _, roster := range rosters {
		picks := make([]league.DraftPick, 0, 3*lg.DraftRounds())
		owner := usersByID[roster.OwnerID]

		for season := startSeason; season <= startSeason+2; season++ {
			for round := 1; round <= lg.DraftRounds(); round++ {
				if ledgerNames(ledger, season, round, roster.RosterID) {
					continue
				}
				picks = append(picks, league.DraftPick{
					Season:   season,
					Round:    round,
					RosterID: roster.RosterID,
					OriginalUser: league.PickUser{
						Avatar:   owner.Avatar,
						UserID:   roster.OwnerID,
						Username: displayNameOrOrphan(owner),
					},
					Order: orderFor(season, roster.OwnerID),
				})
			}
		}

		for _, entry := range ledger {
			if entry.OwnerID != roster.RosterID || atoiLoose(entry.Season) < startSeason {
				continue
			}
			original, ok := rostersByID[entry.RosterID]
			if !ok {
				continue
			}
			originalUser := usersByID[original.OwnerID]
			picks = append(picks, league.DraftPick{
				Season:   atoiLoose(entry.Season),
				Round:    entry.Round,
				RosterID: entry.RosterID,
				OriginalUser: league.PickUser{
					Avatar:   originalUser.Avatar,
					UserID:   originalUser.UserID,
					Username: displayNameOrOrphan(originalUser),
				},
				Order: orderFor(atoiLoose(entry.Season), originalUser.UserID),
			})
		}

		for _, entry := range ledger {
			if entry.PreviousOwnerID != roster.RosterID || atoiLoose(entry.Season) < startSeason {
				continue
			}
			season := atoiLoose(entry.Season)
			for i, pick := range picks {
				if pick.Season == season && pick.Round == entry.Round && pick.RosterID == entry.RosterID {
					picks = append(picks[:i], picks[i+1:]...)
					break
				}
			}
		}

		out[roster.RosterID] = picks
	}

	return out
}

// enrichRosters attaches the owning manager's display identity, computed
// points and resolved draft picks to each roster.
func enrichRosters(
	rosters []RemoteRoster,
	users []RemoteLeagueUser,
	picksByRoster map[int][]league.DraftPick,
) []league.Roster {
	usersByID := make(map[string]RemoteLeagueUser, len(users))
	for _, u := range users {
		usersByID[u.UserID] = u
	}

	out := make([]league.Roster, 0, len(rosters))
	for _, roster := range rosters {
		owner := usersByID[roster.OwnerID]

		var avatar *string
		if owner.Avatar != "" {
			a := owner.Avatar
			avatar = &a
		}

		picks := picksByRoster[roster.RosterID]
		if picks == nil {
			picks = []league.DraftPick{}
		}

		out = append(out, league.Roster{
			RosterID:   roster.RosterID,
			Username:   displayNameOrOrphan(owner),
			UserID:     roster.OwnerID,
			Avatar:     avatar,
			Players:    roster.Players,
			DraftPicks: picks,
			Starters:   emptyIfNil(roster.Starters),
			Taxi:       emptyIfNil(roster.Taxi),
			Reserve:    emptyIfNil(roster.Reserve),
			Wins:       roster.Settings.Wins,
			Losses:     roster.Settings.Losses,
			Ties:       roster.Settings.Ties,
			FP:         joinPoints(roster.Settings.Fpts, roster.Settings.FptsDecimal),
			FPA:        joinPoints(roster.Settings.FptsAgainst, roster.Settings.FptsAgainstDecimal),
		})
	}
	return out
}

func displayNameOrOrphan(u RemoteLeagueUser) string {
	if u.DisplayName == "" {
		return "Orphan"
	}
	return u.DisplayName
}

// joinPoints combines the platform's split integer/decimal point fields
// into one float, e.g. (512, 55) becomes 512.55.
func joinPoints(whole, frac int) float64 {
	f, err := strconv.ParseFloat(strconv.Itoa(whole)+"."+strconv.Itoa(frac), 64)
	if err != nil {
		return float64(whole)
	}
	return f
}

func ledgerNames(ledger []RemoteTradedPick, season, round, rosterID int) bool {
	for _, entry := range ledger {
		if atoiLoose(entry.Season) == season && entry.Round == round && entry.RosterID == rosterID {
			return true
		}
	}
	return false
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// atoiLoose parses the platform's numeric strings, yielding 0 for
// anything unparseable.
func atoiLoose(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
