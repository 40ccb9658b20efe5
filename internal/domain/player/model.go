package player

import "fmt"

// Jersey numbers above MaxRosterNumber are reserved for synthetic entries
// and never appear in roster listings or uniqueness checks.
const (
	MaxRosterNumber     = 900
	NumberBench         = 997
	NumberMainTotal     = 998
	NumberOpponentTotal = 999
)

const (
	RoleBench = "Bench"
	RoleTeam  = "Team"
)

// Player is one rostered athlete, or a lazily materialized synthetic entry
// (bench technical aggregate, opponent team total) referenced by stat lines.
type Player struct {
	ID       string
	TeamID   string
	Number   int
	Name     string
	PhotoURL string
	Role     string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.Number < 0 {
		return fmt.Errorf("player number cannot be negative")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}

// IsVirtual reports whether this record is a synthetic aggregate entry
// rather than a rostered athlete.
func (p Player) IsVirtual() bool {
	return p.Number > MaxRosterNumber
}
