package scoutcsv

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palabianco/basketstats/internal/domain/player"
	"github.com/palabianco/basketstats/internal/domain/statline"
)

type testRow map[int]string

func (tr testRow) render() string {
	cells := make([]string, DefaultLayout.QuarterLast+1)
	for idx, v := range tr {
		cells[idx] = v
	}
	return strings.Join(cells, ";")
}

func sheet(rows ...testRow) string {
	out := []string{"Header;Nr;2PM;2PA;..."}
	for _, r := range rows {
		out = append(out, r.render())
	}
	return strings.Join(out, "\n")
}

func testRoster() []player.Player {
	return []player.Player{
		{ID: "p0", TeamID: "t1", Number: 0, Name: "MORRA"},
		{ID: "p4", TeamID: "t1", Number: 4, Name: "ROSA CLOT"},
		{ID: "p91", TeamID: "t1", Number: 91, Name: "CORGIAT M."},
	}
}

func TestParsePlayerRow(t *testing.T) {
	l := DefaultLayout
	csv := sheet(testRow{
		l.Number:    "4",
		l.TwoPtMade: "2",
		l.TwoPtAtt:  "3",
		l.Points:    "10",
		l.Minutes:   "25:30",
		l.Valuation: "12,5",
		l.PlusMinus: "-3",
	})

	res := Parse(csv, "m1", testRoster(), "t1", "t2")
	require.Len(t, res.Lines, 1)

	got := res.Lines[0]
	assert.Equal(t, "m1", got.MatchID)
	assert.Equal(t, "p4", got.PlayerID)
	assert.Equal(t, 10, got.Points)
	assert.Equal(t, 2, got.TwoPtMade)
	assert.Equal(t, 3, got.TwoPtAtt)
	assert.InDelta(t, 25.5, got.MinutesPlayed, 1e-9)
	assert.InDelta(t, 12.5, got.Valuation, 1e-9)
	assert.InDelta(t, -3, got.PlusMinus, 1e-9)
	assert.Empty(t, res.SkippedNumbers)

	assert.Equal(t, "67%", statline.FormatPercentage(got.TwoPtMade, got.TwoPtAtt))
}

func TestParseSentinelRows(t *testing.T) {
	l := DefaultLayout
	mainTotal := testRow{l.Number: "998", l.Points: "65"}
	oppTotal := testRow{l.Number: "999", l.Points: "72"}
	bench := testRow{l.Number: "997", l.Points: "2"}
	for q, v := range map[int]string{45: "18", 46: "20", 47: "16", 48: "18"} {
		oppTotal[q] = v
	}
	for q, v := range map[int]string{45: "15", 46: "18", 47: "14", 48: "18"} {
		mainTotal[q] = v
	}

	res := Parse(sheet(mainTotal, oppTotal, bench), "m1", testRoster(), "t1", "t2")

	assert.Equal(t, 65, res.Totals.MainPoints)
	assert.Equal(t, 72, res.Totals.OpponentPoints)
	assert.Equal(t, []int{15, 18, 14, 18, 0, 0}, res.Totals.MainQuarters)
	assert.Equal(t, []int{18, 20, 16, 18, 0, 0}, res.Totals.OpponentQuarters)

	// 998 feeds totals only; 999 and 997 also emit aggregate lines.
	require.Len(t, res.Lines, 2)
	assert.Equal(t, "team_t2", res.Lines[0].PlayerID)
	assert.Equal(t, 72, res.Lines[0].Points)
	assert.Equal(t, "bench_t1", res.Lines[1].PlayerID)
	assert.Equal(t, 2, res.Lines[1].Points)
}

func TestParseSkipsUnresolvedAndMalformed(t *testing.T) {
	l := DefaultLayout
	csv := sheet(
		testRow{l.Number: "23", l.Points: "9"}, // not on roster
		testRow{l.Number: "4", l.Points: "10"},
	) + "\nshort;row" // fewer than five columns

	res := Parse(csv, "m1", testRoster(), "t1", "t2")

	require.Len(t, res.Lines, 1)
	assert.Equal(t, "p4", res.Lines[0].PlayerID)
	assert.Equal(t, []int{23}, res.SkippedNumbers)
}

func TestParseNumberEuropeanFormat(t *testing.T) {
	assert.InDelta(t, 25.0, parseNumber("25,00%"), 1e-9)
	assert.InDelta(t, 3.5, parseNumber("3,5"), 1e-9)
	assert.InDelta(t, 0, parseNumber(""), 1e-9)
	assert.InDelta(t, 0, parseNumber("n/a"), 1e-9)
	assert.InDelta(t, -7, parseNumber("-7"), 1e-9)
}

func TestParseThirdOvertimeFoldsIntoLastSlot(t *testing.T) {
	l := DefaultLayout
	total := testRow{l.Number: "998", l.Points: "101"}
	values := []string{"18", "20", "16", "18", "9", "10", "10"}
	for i, v := range values {
		total[l.QuarterFirst+i] = v
	}

	res := Parse(sheet(total), "m1", testRoster(), "t1", "t2")
	assert.Equal(t, []int{18, 20, 16, 18, 9, 20}, res.Totals.MainQuarters)
}

func TestParseIgnoresBlankNumberCells(t *testing.T) {
	l := DefaultLayout
	blank := testRow{l.Points: "5"}
	garbage := testRow{l.Number: "abc", l.Points: "5"}

	res := Parse(sheet(blank, garbage), "m1", testRoster(), "t1", "t2")
	assert.Empty(t, res.Lines)
	assert.Empty(t, res.SkippedNumbers)
}

func TestDefaultLayoutContract(t *testing.T) {
	// The scouting tool's export format is a fixed external contract.
	l := DefaultLayout
	for name, got := range map[string]int{
		"number":  l.Number,
		"points":  l.Points,
		"2pm":     l.TwoPtMade,
		"2pa":     l.TwoPtAtt,
		"minutes": l.Minutes,
		"q1":      l.QuarterFirst,
		"ot3":     l.QuarterLast,
	} {
		want := map[string]int{
			"number": 1, "points": 15, "2pm": 2, "2pa": 3,
			"minutes": 40, "q1": 45, "ot3": 51,
		}[name]
		assert.Equal(t, want, got, name+" column moved (expected "+strconv.Itoa(want)+")")
	}
}
