package statline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(matchID, playerID string, pts, twoM, twoA int) Line {
	return Line{
		MatchID:   matchID,
		PlayerID:  playerID,
		Points:    pts,
		TwoPtMade: twoM,
		TwoPtAtt:  twoA,
	}
}

func TestAggregateByPlayerCountsDistinctMatches(t *testing.T) {
	lines := []Line{
		line("m1", "p4", 10, 2, 3),
		line("m2", "p4", 8, 4, 6),
		line("m2", "p4", 0, 0, 0),
		line("m1", "p0", 5, 1, 4),
	}

	totals := AggregateByPlayer(lines)
	require.Len(t, totals, 2)

	assert.Equal(t, "p4", totals[0].PlayerID)
	assert.Equal(t, 2, totals[0].Games)
	assert.Equal(t, 18, totals[0].Points)
	assert.Equal(t, 6, totals[0].TwoPtMade)
	assert.Equal(t, 9, totals[0].TwoPtAtt)

	assert.Equal(t, "p0", totals[1].PlayerID)
	assert.Equal(t, 1, totals[1].Games)
}

func TestAggregateByPlayerFoldIsOrderIndependent(t *testing.T) {
	lines := []Line{
		line("m1", "p4", 10, 2, 3),
		line("m2", "p4", 8, 4, 6),
		line("m3", "p4", 12, 5, 7),
	}
	reversed := []Line{lines[2], lines[1], lines[0]}

	a := AggregateByPlayer(lines)
	b := AggregateByPlayer(reversed)
	require.Len(t, a, 1)
	require.Len(t, b, 1)

	assert.Equal(t, a[0].Points, b[0].Points)
	assert.Equal(t, a[0].TwoPtMade, b[0].TwoPtMade)
	assert.Equal(t, a[0].TwoPtAtt, b[0].TwoPtAtt)
	assert.Equal(t, a[0].Games, b[0].Games)
}

func TestSumCollapsesTotals(t *testing.T) {
	totals := AggregateByPlayer([]Line{
		line("m1", "p4", 10, 2, 3),
		line("m1", "p0", 5, 1, 4),
	})

	grand := Sum(totals)
	assert.Equal(t, 15, grand.Points)
	assert.Equal(t, 3, grand.TwoPtMade)
	assert.Equal(t, 7, grand.TwoPtAtt)
	assert.Equal(t, 2, grand.Games)
}

func TestSortByPointsDesc(t *testing.T) {
	totals := []Totals{
		{PlayerID: "p0", Points: 5},
		{PlayerID: "p4", Points: 18},
		{PlayerID: "p91", Points: 18},
	}

	SortByPointsDesc(totals)

	assert.Equal(t, "p4", totals[0].PlayerID)
	assert.Equal(t, "p91", totals[1].PlayerID) // stable tie
	assert.Equal(t, "p0", totals[2].PlayerID)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 50, Percentage(1, 2))
	assert.Equal(t, 100, Percentage(3, 3))
	assert.Equal(t, 0, Percentage(0, 0))

	assert.Equal(t, "67%", FormatPercentage(2, 3))
	assert.Equal(t, "0%", FormatPercentage(0, 0))
}

func TestPerGame(t *testing.T) {
	assert.InDelta(t, 9.0, PerGame(18, 2), 1e-9)
	assert.Equal(t, "9.00", FormatPerGame(18, 2))
	assert.Equal(t, "0.00", FormatPerGame(0, 0))
	assert.Equal(t, "6.33", FormatPerGame(19, 3))
}
