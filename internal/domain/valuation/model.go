package valuation

import "time"

// Snapshot is one captured player-valuation dataset. The dataset is
// produced by an external scraping job; this service only reads it.
type Snapshot struct {
	CapturedAt time.Time
	Values     map[string]int
}
