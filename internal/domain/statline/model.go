package statline

import "fmt"

// Line is one player's box score for one match. Keyed by (MatchID, PlayerID):
// re-importing a match replaces all of its lines, never merges.
type Line struct {
	MatchID  string
	PlayerID string

	MinutesPlayed float64

	Points      int
	TwoPtMade   int
	TwoPtAtt    int
	ThreePtMade int
	ThreePtAtt  int
	FtMade      int
	FtAtt       int

	ReboundsOff int
	ReboundsDef int

	Assists        int
	Turnovers      int
	Steals         int
	BlocksMade     int
	BlocksReceived int
	FoulsCommitted int
	FoulsDrawn     int

	Valuation float64
	PlusMinus float64
}

func (l Line) Validate() error {
	if l.MatchID == "" {
		return fmt.Errorf("stat line match id is required")
	}
	if l.PlayerID == "" {
		return fmt.Errorf("stat line player id is required")
	}

	return nil
}
