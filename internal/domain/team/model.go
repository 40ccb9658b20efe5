package team

import "fmt"

// Team is a club tracked by the dashboard. Exactly one team carries the
// IsMain flag: it anchors home/away orientation, report defaults, and the
// naming of synthesized opponent-total entries.
type Team struct {
	ID        string
	Name      string
	IsMain    bool
	Location  string
	LogoURL   string
	LeagueIDs []string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// InLeague reports whether the team is registered in the given league.
func (t Team) InLeague(leagueID string) bool {
	for _, id := range t.LeagueIDs {
		if id == leagueID {
			return true
		}
	}
	return false
}
