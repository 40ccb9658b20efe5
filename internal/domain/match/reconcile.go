package match

// Totals carries final scores (and per-period points) expressed from the
// main team's point of view, the way scout sheets report them: one line for
// the tracked club, one for whoever it faced.
type Totals struct {
	MainPoints       int
	MainQuarters     []int
	OpponentPoints   int
	OpponentQuarters []int
}

// HasExplicit reports whether the sheet carried usable total rows. A sheet
// with both totals at zero is treated as missing totals, not a 0-0 game.
func (t Totals) HasExplicit() bool {
	return t.MainPoints > 0 || t.OpponentPoints > 0
}

func padQuarters(q []int) []int {
	out := make([]int, QuarterCount)
	copy(out, q)
	return out
}

// Reconcile writes main-relative totals onto the match's home/away columns
// and marks it played. When the main team plays away the sides swap; when
// the match does not involve the main team at all the main side is assumed
// home, matching how manually filed sheets are oriented.
func Reconcile(m Match, mainTeamID string, t Totals) Match {
	mainHome := m.HomeTeamID == mainTeamID || !m.Involves(mainTeamID)

	mainScore := t.MainPoints
	oppScore := t.OpponentPoints
	mainQ := padQuarters(t.MainQuarters)
	oppQ := padQuarters(t.OpponentQuarters)

	if mainHome {
		m.HomeScore = &mainScore
		m.AwayScore = &oppScore
		m.HomeQuarters = mainQ
		m.AwayQuarters = oppQ
	} else {
		m.HomeScore = &oppScore
		m.AwayScore = &mainScore
		m.HomeQuarters = oppQ
		m.AwayQuarters = mainQ
	}
	m.IsPlayed = true
	return m
}
