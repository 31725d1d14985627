package usecase

import "context"

// SleeperGateway is the read-only boundary to the Sleeper platform. All
// retry, backoff and circuit-breaking policy lives behind it.
type SleeperGateway interface {
	FetchState(ctx context.Context) (RemoteState, error)
	FetchUserLeagues(ctx context.Context, userID, season string) ([]RemoteLeague, error)
	FetchLeague(ctx context.Context, leagueID string) (RemoteLeague, error)
	FetchLeagueRosters(ctx context.Context, leagueID string) ([]RemoteRoster, error)
	FetchLeagueUsers(ctx context.Context, leagueID string) ([]RemoteLeagueUser, error)
	FetchLeagueDrafts(ctx context.Context, leagueID string) ([]RemoteDraft, error)
	FetchLeagueTradedPicks(ctx context.Context, leagueID string) ([]RemoteTradedPick, error)
	FetchLeagueTransactions(ctx context.Context, leagueID string, week int) ([]RemoteTransaction, error)
	FetchLeagueMatchups(ctx context.Context, leagueID string, week int) ([]RemoteMatchup, error)
	FetchDraftPicks(ctx context.Context, draftID string) ([]RemoteDraftPick, error)
}

// RemoteState is the platform's season/week snapshot.
type RemoteState struct {
	Week           int
	DisplayWeek    int
	SeasonType     string
	Season         string
	LeagueSeason   string
	PreviousSeason string
}

// RemoteLeague mirrors a Sleeper league. Settings values are numeric on the
// wire, so the full settings object survives a round trip through the map.
type RemoteLeague struct {
	LeagueID         string
	Name             string
	Avatar           string
	Season           string
	Status           string
	PreviousLeagueID string
	DraftID          string
	Settings         map[string]float64
	ScoringSettings  map[string]float64
	RosterPositions  []string
}

// DraftRounds returns the league's configured rookie-draft round count.
func (l RemoteLeague) DraftRounds() int {
	return int(l.Settings["draft_rounds"])
}

// HasRookieDrafts reports whether the league runs rookie drafts
// (Sleeper league type 2, dynasty).
func (l RemoteLeague) HasRookieDrafts() bool {
	return int(l.Settings["type"]) == 2
}

type RemoteRoster struct {
	RosterID int
	OwnerID  string
	LeagueID string
	Players  []string
	Starters []string
	Reserve  []string
	Taxi     []string
	CoOwners []string
	Settings RemoteRosterSettings
}

type RemoteRosterSettings struct {
	Wins               int
	Losses             int
	Ties               int
	Fpts               int
	FptsDecimal        int
	FptsAgainst        int
	FptsAgainstDecimal int
}

type RemoteLeagueUser struct {
	UserID      string
	DisplayName string
	Avatar      string
	IsOwner     bool
}

type RemoteDraft struct {
	DraftID    string
	LeagueID   string
	Season     string
	Status     string
	Rounds     int
	DraftOrder map[string]int
}

// RemoteTradedPick is one ledger entry: RosterID is the slot's original
// roster, OwnerID the holder after this transfer.
type RemoteTradedPick struct {
	Season          string
	Round           int
	RosterID        int
	PreviousOwnerID int
	OwnerID         int
}

type RemoteTransaction struct {
	TransactionID string
	Type          string
	Status        string
	StatusUpdated int64
	RosterIDs     []int
	Adds          map[string]int
	Drops         map[string]int
	DraftPicks    []RemoteTradedPick
}

type RemoteMatchup struct {
	MatchupID int
	RosterID  int
	Players   []string
	Starters  []string
	Points    float64
}

type RemoteDraftPick struct {
	DraftID  string
	PickNo   int
	Round    int
	RosterID int
	PlayerID string
	PickedBy string
}
