package player

import "strings"

// Virtual identities live in a prefixed ID space so that stat lines can
// reference them before the backing Player record exists.
const (
	benchIDPrefix     = "bench_"
	teamTotalIDPrefix = "team_"
)

func BenchID(teamID string) string {
	return benchIDPrefix + teamID
}

func TeamTotalID(teamID string) string {
	return teamTotalIDPrefix + teamID
}

// IsTeamTotalID reports whether the given stat-line player id refers to a
// whole-team aggregate entry. Score derivation excludes these from the
// main-team point sum.
func IsTeamTotalID(id string) bool {
	return strings.HasPrefix(id, teamTotalIDPrefix)
}

func IsBenchID(id string) bool {
	return strings.HasPrefix(id, benchIDPrefix)
}

type RefKind int

const (
	// RefUnresolved marks a source row whose jersey number matched nothing;
	// the row is dropped (reported, not failed).
	RefUnresolved RefKind = iota
	// RefReal resolves to a rostered player of the main team.
	RefReal
	// RefBench resolves to the main team's bench-technical aggregate.
	RefBench
	// RefOpponentTotal resolves to the opponent's whole-team aggregate.
	RefOpponentTotal
	// RefMainTotal marks the main team's summary row. It never becomes a
	// stat line: its points and quarters feed score reconciliation only.
	RefMainTotal
)

// Ref is the resolved identity of one raw source row.
type Ref struct {
	Kind     RefKind
	PlayerID string
	TeamID   string
}

// StatLineID returns the stat-line player id this ref stores under.
// Only valid for RefReal, RefBench and RefOpponentTotal.
func (r Ref) StatLineID() string {
	switch r.Kind {
	case RefReal:
		return r.PlayerID
	case RefBench:
		return BenchID(r.TeamID)
	case RefOpponentTotal:
		return TeamTotalID(r.TeamID)
	default:
		return ""
	}
}

// Resolve maps a raw jersey number from an external score sheet onto a
// canonical identity. Individual rows only ever resolve against the main
// team's roster: the opponent's individuals are not modeled, only their
// team total (999) and the main bench technical (997).
func Resolve(number int, roster []Player, mainTeamID, opponentTeamID string) Ref {
	switch number {
	case NumberMainTotal:
		return Ref{Kind: RefMainTotal, TeamID: mainTeamID}
	case NumberOpponentTotal:
		return Ref{Kind: RefOpponentTotal, TeamID: opponentTeamID}
	case NumberBench:
		return Ref{Kind: RefBench, TeamID: mainTeamID}
	}

	for _, p := range roster {
		if p.TeamID == mainTeamID && p.Number == number {
			return Ref{Kind: RefReal, PlayerID: p.ID, TeamID: p.TeamID}
		}
	}

	return Ref{Kind: RefUnresolved}
}

// MaterializeBench builds the Player record backing a bench stat line.
func MaterializeBench(teamID string) Player {
	return Player{
		ID:     BenchID(teamID),
		TeamID: teamID,
		Number: NumberBench,
		Name:   "Bench Tech.",
		Role:   RoleBench,
	}
}

// MaterializeTeamTotal builds the Player record backing an opponent-total
// stat line.
func MaterializeTeamTotal(teamID, teamName string) Player {
	if teamName == "" {
		teamName = "Opponent"
	}
	return Player{
		ID:     TeamTotalID(teamID),
		TeamID: teamID,
		Number: NumberOpponentTotal,
		Name:   teamName + " (Total)",
		Role:   RoleTeam,
	}
}
