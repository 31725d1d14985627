package postgres

import (
	"fmt"
	"time"

	"github.com/leaguevault/sleeper-sync/internal/domain/league"
)

type leagueInsertModel struct {
	LeagueID        string    `db:"league_id"`
	Name            string    `db:"name"`
	Avatar          string    `db:"avatar"`
	Season          string    `db:"season"`
	Status          string    `db:"status"`
	Settings        string    `db:"settings"`
	ScoringSettings string    `db:"scoring_settings"`
	RosterPositions string    `db:"roster_positions"`
	Rosters         string    `db:"rosters"`
	UpdatedAt       time.Time `db:"updatedat"`
}

func newLeagueInsertModel(item league.League) (leagueInsertModel, error) {
	settings, err := encodeJSON(orEmptyMap(item.Settings))
	if err != nil {
		return leagueInsertModel{}, fmt.Errorf("league %s settings: %w", item.LeagueID, err)
	}
	scoring, err := encodeJSON(orEmptyMap(item.ScoringSettings))
	if err != nil {
		return leagueInsertModel{}, fmt.Errorf("league %s scoring settings: %w", item.LeagueID, err)
	}
	positions, err := encodeJSON(orEmptySlice(item.RosterPositions))
	if err != nil {
		return leagueInsertModel{}, fmt.Errorf("league %s roster positions: %w", item.LeagueID, err)
	}
	rosters, err := encodeJSON(orEmptyRosters(item.Rosters))
	if err != nil {
		return leagueInsertModel{}, fmt.Errorf("league %s rosters: %w", item.LeagueID, err)
	}

	return leagueInsertModel{
		LeagueID:        item.LeagueID,
		Name:            item.Name,
		Avatar:          item.Avatar,
		Season:          item.Season,
		Status:          item.Status,
		Settings:        settings,
		ScoringSettings: scoring,
		RosterPositions: positions,
		Rosters:         rosters,
		UpdatedAt:       item.UpdatedAt,
	}, nil
}

func orEmptyMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}

func orEmptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyRosters(s []league.Roster) []league.Roster {
	if s == nil {
		return []league.Roster{}
	}
	return s
}
