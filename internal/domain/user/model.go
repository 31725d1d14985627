package user

// Tracked-user classification tags. Searched and league-manager users drive
// league discovery; users encountered only as roster owners carry no tag.
const (
	TypeSearched      = "S"
	TypeLeagueManager = "LM"
)

type User struct {
	UserID   string
	Username string
	Avatar   string
	Type     string
}

// Membership links a user to a league they roster in. Insert-only.
type Membership struct {
	UserID   string
	LeagueID string
}
