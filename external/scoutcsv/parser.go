package scoutcsv

import (
	"strconv"
	"strings"

	"github.com/palabianco/basketstats/internal/domain/match"
	"github.com/palabianco/basketstats/internal/domain/player"
	"github.com/palabianco/basketstats/internal/domain/statline"
)

// Result is everything one export yields: normalized stat lines, the team
// totals carried by the sentinel rows, and the jersey numbers of rows that
// matched nobody on the roster.
type Result struct {
	Lines          []statline.Line
	Totals         match.Totals
	SkippedNumbers []int
}

// parseNumber reads the tool's European numerics: decimal comma, optional
// trailing percent sign. Anything unparseable counts as zero, matching how
// the tool pads empty cells.
func parseNumber(raw string) float64 {
	clean := strings.TrimSpace(strings.ReplaceAll(strings.TrimSuffix(strings.TrimSpace(raw), "%"), ",", "."))
	if clean == "" {
		return 0
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseMinutes accepts either a decimal value or a MM:SS clock.
func parseMinutes(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if mm, ss, ok := strings.Cut(raw, ":"); ok {
		m := parseNumber(mm)
		s := parseNumber(ss)
		return m + s/60
	}
	return parseNumber(raw)
}

type row []string

func (r row) cell(idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return r[idx]
}

func (r row) num(idx int) float64 { return parseNumber(r.cell(idx)) }
func (r row) count(idx int) int   { return int(r.num(idx)) }

// quarters reads the per-period columns. Canonical matches keep six period
// slots; a third overtime folds into the last one.
func (r row) quarters(l Layout) []int {
	raw := make([]int, 0, l.QuarterLast-l.QuarterFirst+1)
	for idx := l.QuarterFirst; idx <= l.QuarterLast; idx++ {
		raw = append(raw, r.count(idx))
	}
	out := make([]int, match.QuarterCount)
	for i, v := range raw {
		if i < match.QuarterCount {
			out[i] = v
		} else {
			out[match.QuarterCount-1] += v
		}
	}
	return out
}

func (r row) statLine(l Layout, matchID, playerID string) statline.Line {
	return statline.Line{
		MatchID:        matchID,
		PlayerID:       playerID,
		MinutesPlayed:  parseMinutes(r.cell(l.Minutes)),
		Points:         r.count(l.Points),
		TwoPtMade:      r.count(l.TwoPtMade),
		TwoPtAtt:       r.count(l.TwoPtAtt),
		ThreePtMade:    r.count(l.ThreePtMade),
		ThreePtAtt:     r.count(l.ThreePtAtt),
		FtMade:         r.count(l.FtMade),
		FtAtt:          r.count(l.FtAtt),
		ReboundsOff:    r.count(l.ReboundsOff),
		ReboundsDef:    r.count(l.ReboundsDef),
		Assists:        r.count(l.Assists),
		Turnovers:      r.count(l.Turnovers),
		Steals:         r.count(l.Steals),
		BlocksMade:     r.count(l.BlocksMade),
		BlocksReceived: r.count(l.BlocksReceived),
		FoulsCommitted: r.count(l.FoulsCommitted),
		FoulsDrawn:     r.count(l.FoulsDrawn),
		Valuation:      r.num(l.Valuation),
		PlusMinus:      r.num(l.PlusMinus),
	}
}

// Parse normalizes one export against the main team's roster. The first row
// is a header and is skipped; rows with fewer than five columns are
// malformed padding and are skipped too. Sentinel number 998 is the main
// team's total and feeds only the score totals; 999 is the opponent total
// and yields both totals and a team-aggregate stat line; 997 is the bench
// technical line. Every other number is looked up on the main roster, and
// misses are reported, not emitted.
func Parse(content, matchID string, roster []player.Player, mainTeamID, opponentTeamID string) Result {
	return ParseWithLayout(content, matchID, roster, mainTeamID, opponentTeamID, DefaultLayout)
}

func ParseWithLayout(content, matchID string, roster []player.Player, mainTeamID, opponentTeamID string, l Layout) Result {
	var res Result

	lines := strings.Split(content, "\n")
	for i := 1; i < len(lines); i++ {
		cells := row(strings.Split(strings.TrimRight(lines[i], "\r"), ";"))
		if len(cells) < 5 {
			continue
		}

		numberStr := strings.TrimSpace(cells.cell(l.Number))
		if numberStr == "" {
			continue
		}
		number, err := strconv.Atoi(numberStr)
		if err != nil {
			continue
		}

		ref := player.Resolve(number, roster, mainTeamID, opponentTeamID)
		switch ref.Kind {
		case player.RefMainTotal:
			res.Totals.MainPoints = cells.count(l.Points)
			res.Totals.MainQuarters = cells.quarters(l)
			continue
		case player.RefOpponentTotal:
			res.Totals.OpponentPoints = cells.count(l.Points)
			res.Totals.OpponentQuarters = cells.quarters(l)
		case player.RefUnresolved:
			res.SkippedNumbers = append(res.SkippedNumbers, number)
			continue
		}

		res.Lines = append(res.Lines, cells.statLine(l, matchID, ref.StatLineID()))
	}

	return res
}
