package matchup

import "fmt"

// Matchup is one roster's weekly head-to-head entry, unique per
// (week, roster, league).
type Matchup struct {
	Week      int
	MatchupID int
	RosterID  int
	Players   []string
	Starters  []string
	LeagueID  string
}

func (m Matchup) Validate() error {
	if m.LeagueID == "" {
		return fmt.Errorf("matchup league id is required")
	}
	if m.Week < 1 {
		return fmt.Errorf("matchup week must be >= 1")
	}
	if m.RosterID < 1 {
		return fmt.Errorf("matchup roster id must be >= 1")
	}

	return nil
}
