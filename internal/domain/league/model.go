package league

import (
	"fmt"
	"time"
)

// League is one synced Sleeper league snapshot, including its enriched
// rosters. Settings maps hold the raw numeric settings objects from the
// platform so the stored JSON round-trips losslessly.
type League struct {
	LeagueID        string
	Name            string
	Avatar          string
	Season          string
	Status          string
	Settings        map[string]float64
	ScoringSettings map[string]float64
	RosterPositions []string
	Rosters         []Roster
	UpdatedAt       time.Time
}

func (l League) Validate() error {
	if l.LeagueID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Season == "" {
		return fmt.Errorf("league season is required")
	}

	return nil
}

// Roster is a league roster enriched with its owner's display identity and
// resolved future draft picks. UserID is empty for orphaned rosters.
type Roster struct {
	RosterID   int         `json:"roster_id"`
	Username   string      `json:"username"`
	UserID     string      `json:"user_id"`
	Avatar     *string     `json:"avatar"`
	Players    []string    `json:"players"`
	DraftPicks []DraftPick `json:"draftpicks"`
	Starters   []string    `json:"starters"`
	Taxi       []string    `json:"taxi"`
	Reserve    []string    `json:"reserve"`
	Wins       int         `json:"wins"`
	Losses     int         `json:"losses"`
	Ties       int         `json:"ties"`
	FP         float64     `json:"fp"`
	FPA        float64     `json:"fpa"`
}

// DraftPick is a resolved future draft slot. RosterID names the roster that
// drafts if the slot goes unpicked; OriginalUser identifies that roster's
// manager. Order is nil unless a draft with a fixed order covers the season.
type DraftPick struct {
	Season       int      `json:"season"`
	Round        int      `json:"round"`
	RosterID     int      `json:"roster_id"`
	OriginalUser PickUser `json:"original_user"`
	Order        *int     `json:"order"`
}

type PickUser struct {
	Avatar   string `json:"avatar"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
