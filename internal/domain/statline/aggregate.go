package statline

import (
	"fmt"
	"math"
	"sort"
)

// Totals is a field-wise sum of Lines plus an appearance counter. Derived
// rates (percentages, per-game averages, the combined field-goal line) are
// never stored; compute them from the summed fields at presentation time.
type Totals struct {
	PlayerID string
	Games    int

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

func (t *Totals) add(l Line) {
	t.MinutesPlayed += l.MinutesPlayed
	t.Points += l.Points
	t.TwoPtMade += l.TwoPtMade
	t.TwoPtAtt += l.TwoPtAtt
	t.ThreePtMade += l.ThreePtMade
	t.ThreePtAtt += l.ThreePtAtt
	t.FtMade += l.FtMade
	t.FtAtt += l.FtAtt
	t.ReboundsOff += l.ReboundsOff
	t.ReboundsDef += l.ReboundsDef
	t.Assists += l.Assists
	t.Turnovers += l.Turnovers
	t.Steals += l.Steals
	t.BlocksMade += l.BlocksMade
	t.BlocksReceived += l.BlocksReceived
	t.FoulsCommitted += l.FoulsCommitted
	t.FoulsDrawn += l.FoulsDrawn
	t.Valuation += l.Valuation
	t.PlusMinus += l.PlusMinus
}

// AggregateByPlayer folds lines into one Totals per player. Games counts
// distinct matches contributing for that player. Output order is first
// appearance order; callers re-sort as their view requires.
func AggregateByPlayer(lines []Line) []Totals {
	index := make(map[string]int, len(lines))
	seenMatch := make(map[string]map[string]struct{}, len(lines))
	out := make([]Totals, 0, len(lines))

	for _, l := range lines {
		idx, ok := index[l.PlayerID]
		if !ok {
			idx = len(out)
			index[l.PlayerID] = idx
			out = append(out, Totals{PlayerID: l.PlayerID})
			seenMatch[l.PlayerID] = make(map[string]struct{}, 4)
		}

		out[idx].add(l)
		if _, dup := seenMatch[l.PlayerID][l.MatchID]; !dup {
			seenMatch[l.PlayerID][l.MatchID] = struct{}{}
			out[idx].Games++
		}
	}

	return out
}

// Sum collapses per-player totals into one grand total. Games becomes the
// sum of appearances, which is what report total rows display.
func Sum(totals []Totals) Totals {
	var out Totals
	for _, t := range totals {
		out.Games += t.Games
		out.MinutesPlayed += t.MinutesPlayed
		out.Points += t.Points
		out.TwoPtMade += t.TwoPtMade
		out.TwoPtAtt += t.TwoPtAtt
		out.ThreePtMade += t.ThreePtMade
		out.ThreePtAtt += t.ThreePtAtt
		out.FtMade += t.FtMade
		out.FtAtt += t.FtAtt
		out.ReboundsOff += t.ReboundsOff
		out.ReboundsDef += t.ReboundsDef
		out.Assists += t.Assists
		out.Turnovers += t.Turnovers
		out.Steals += t.Steals
		out.BlocksMade += t.BlocksMade
		out.BlocksReceived += t.BlocksReceived
		out.FoulsCommitted += t.FoulsCommitted
		out.FoulsDrawn += t.FoulsDrawn
		out.Valuation += t.Valuation
		out.PlusMinus += t.PlusMinus
	}
	return out
}

// SortByPointsDesc orders leaderboard rows by total points, ties left in
// their original iteration order.
func SortByPointsDesc(totals []Totals) {
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Points > totals[j].Points
	})
}

// Percentage returns made/attempted as a rounded integer percent, 0 when
// nothing was attempted.
func Percentage(made, attempted int) int {
	if attempted == 0 {
		return 0
	}
	return int(math.Round(float64(made) / float64(attempted) * 100))
}

// FormatPercentage renders Percentage the way report tables show it: "67%",
// and exactly "0%" for zero attempts.
func FormatPercentage(made, attempted int) string {
	return fmt.Sprintf("%d%%", Percentage(made, attempted))
}

// PerGame returns total/games, 0 when games is zero.
func PerGame(total float64, games int) float64 {
	if games == 0 {
		return 0
	}
	return total / float64(games)
}

// FormatPerGame renders a per-game average with two decimals, "0.00" for
// zero games.
func FormatPerGame(total float64, games int) string {
	return fmt.Sprintf("%.2f", PerGame(total, games))
}
