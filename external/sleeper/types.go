package sleeper

import (
	"strings"

	"github.com/leaguevault/sleeper-sync/internal/usecase"
)

type stateWire struct {
	Week           int    `json:"week"`
	DisplayWeek    int    `json:"display_week"`
	SeasonType     string `json:"season_type"`
	Season         string `json:"season"`
	LeagueSeason   string `json:"league_season"`
	PreviousSeason string `json:"previous_season"`
}

type leagueWire struct {
	LeagueID         string             `json:"league_id"`
	Name             string             `json:"name"`
	Avatar           string             `json:"avatar"`
	Season           string             `json:"season"`
	Status           string             `json:"status"`
	PreviousLeagueID string             `json:"previous_league_id"`
	DraftID          string             `json:"draft_id"`
	Settings         map[string]float64 `json:"settings"`
	ScoringSettings  map[string]float64 `json:"scoring_settings"`
	RosterPositions  []string           `json:"roster_positions"`
}

type rosterSettingsWire struct {
	Wins               int `json:"wins"`
	Losses             int `json:"losses"`
	Ties               int `json:"ties"`
	Fpts               int `json:"fpts"`
	FptsDecimal        int `json:"fpts_decimal"`
	FptsAgainst        int `json:"fpts_against"`
	FptsAgainstDecimal int `json:"fpts_against_decimal"`
}

type rosterWire struct {
	RosterID int                `json:"roster_id"`
	OwnerID  string             `json:"owner_id"`
	LeagueID string             `json:"league_id"`
	Players  []string           `json:"players"`
	Starters []string           `json:"starters"`
	Reserve  []string           `json:"reserve"`
	Taxi     []string           `json:"taxi"`
	CoOwners []string           `json:"co_owners"`
	Settings rosterSettingsWire `json:"settings"`
}

type leagueUserWire struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	IsOwner     bool   `json:"is_owner"`
}

type draftSettingsWire struct {
	Rounds int `json:"rounds"`
}

type draftWire struct {
	DraftID    string            `json:"draft_id"`
	LeagueID   string            `json:"league_id"`
	Season     string            `json:"season"`
	Status     string            `json:"status"`
	Settings   draftSettingsWire `json:"settings"`
	DraftOrder map[string]int    `json:"draft_order"`
}

type tradedPickWire struct {
	Season          string `json:"season"`
	Round           int    `json:"round"`
	RosterID        int    `json:"roster_id"`
	PreviousOwnerID int    `json:"previous_owner_id"`
	OwnerID         int    `json:"owner_id"`
}

type transactionWire struct {
	TransactionID string           `json:"transaction_id"`
	Type          string           `json:"type"`
	Status        string           `json:"status"`
	StatusUpdated int64            `json:"status_updated"`
	RosterIDs     []int            `json:"roster_ids"`
	Adds          map[string]int   `json:"adds"`
	Drops         map[string]int   `json:"drops"`
	DraftPicks    []tradedPickWire `json:"draft_picks"`
}

type matchupWire struct {
	MatchupID int      `json:"matchup_id"`
	RosterID  int      `json:"roster_id"`
	Players   []string `json:"players"`
	Starters  []string `json:"starters"`
	Points    float64  `json:"points"`
}

type draftPickWire struct {
	DraftID  string `json:"draft_id"`
	PickNo   int    `json:"pick_no"`
	Round    int    `json:"round"`
	RosterID int    `json:"roster_id"`
	PlayerID string `json:"player_id"`
	PickedBy string `json:"picked_by"`
}

func mapState(w stateWire) usecase.RemoteState {
	return usecase.RemoteState{
		Week:           w.Week,
		DisplayWeek:    w.DisplayWeek,
		SeasonType:     strings.TrimSpace(w.SeasonType),
		Season:         strings.TrimSpace(w.Season),
		LeagueSeason:   strings.TrimSpace(w.LeagueSeason),
		PreviousSeason: strings.TrimSpace(w.PreviousSeason),
	}
}

func mapLeague(w leagueWire) usecase.RemoteLeague {
	return usecase.RemoteLeague{
		LeagueID:         w.LeagueID,
		Name:             w.Name,
		Avatar:           w.Avatar,
		Season:           w.Season,
		Status:           w.Status,
		PreviousLeagueID: w.PreviousLeagueID,
		DraftID:          w.DraftID,
		Settings:         w.Settings,
		ScoringSettings:  w.ScoringSettings,
		RosterPositions:  w.RosterPositions,
	}
}

func mapRoster(w rosterWire) usecase.RemoteRoster {
	return usecase.RemoteRoster{
		RosterID: w.RosterID,
		OwnerID:  w.OwnerID,
		LeagueID: w.LeagueID,
		Players:  w.Players,
		Starters: w.Starters,
		Reserve:  w.Reserve,
		Taxi:     w.Taxi,
		CoOwners: w.CoOwners,
		Settings: usecase.RemoteRosterSettings{
			Wins:               w.Settings.Wins,
			Losses:             w.Settings.Losses,
			Ties:               w.Settings.Ties,
			Fpts:               w.Settings.Fpts,
			FptsDecimal:        w.Settings.FptsDecimal,
			FptsAgainst:        w.Settings.FptsAgainst,
			FptsAgainstDecimal: w.Settings.FptsAgainstDecimal,
		},
	}
}

func mapLeagueUser(w leagueUserWire) usecase.RemoteLeagueUser {
	return usecase.RemoteLeagueUser{
		UserID:      w.UserID,
		DisplayName: w.DisplayName,
		Avatar:      w.Avatar,
		IsOwner:     w.IsOwner,
	}
}

func mapDraft(w draftWire) usecase.RemoteDraft {
	return usecase.RemoteDraft{
		DraftID:    w.DraftID,
		LeagueID:   w.LeagueID,
		Season:     w.Season,
		Status:     w.Status,
		Rounds:     w.Settings.Rounds,
		DraftOrder: w.DraftOrder,
	}
}

func mapTradedPick(w tradedPickWire) usecase.RemoteTradedPick {
	return usecase.RemoteTradedPick{
		Season:          w.Season,
		Round:           w.Round,
		RosterID:        w.RosterID,
		PreviousOwnerID: w.PreviousOwnerID,
		OwnerID:         w.OwnerID,
	}
}

func mapTransaction(w transactionWire) usecase.RemoteTransaction {
	picks := make([]usecase.RemoteTradedPick, 0, len(w.DraftPicks))
	for _, pick := range w.DraftPicks {
		picks = append(picks, mapTradedPick(pick))
	}
	return usecase.RemoteTransaction{
		TransactionID: w.TransactionID,
		Type:          w.Type,
		Status:        w.Status,
		StatusUpdated: w.StatusUpdated,
		RosterIDs:     w.RosterIDs,
		Adds:          w.Adds,
		Drops:         w.Drops,
		DraftPicks:    picks,
	}
}

func mapMatchup(w matchupWire) usecase.RemoteMatchup {
	return usecase.RemoteMatchup{
		MatchupID: w.MatchupID,
		RosterID:  w.RosterID,
		Players:   w.Players,
		Starters:  w.Starters,
		Points:    w.Points,
	}
}

func mapDraftPick(w draftPickWire) usecase.RemoteDraftPick {
	return usecase.RemoteDraftPick{
		DraftID:  w.DraftID,
		PickNo:   w.PickNo,
		Round:    w.Round,
		RosterID: w.RosterID,
		PlayerID: w.PlayerID,
		PickedBy: w.PickedBy,
	}
}
