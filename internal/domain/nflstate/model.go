package nflstate

const (
	PhasePre     = "pre"
	PhaseRegular = "regular"
	PhasePost    = "post"
)

// State is the platform's current season/week snapshot.
type State struct {
	Week           int
	DisplayWeek    int
	SeasonType     string
	Season         string
	LeagueSeason   string
	PreviousSeason string
}

// CurrentWeek resolves the week used for matchup and transaction fetches.
// Pre-season pins to week 1 and post-season to the final regular week.
func (s State) CurrentWeek() int {
	switch s.SeasonType {
	case PhasePre:
		return 1
	case PhasePost:
		return 18
	default:
		return s.DisplayWeek
	}
}
