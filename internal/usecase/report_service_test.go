package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palabianco/basketstats/internal/domain/match"
	"github.com/palabianco/basketstats/internal/domain/player"
	"github.com/palabianco/basketstats/internal/domain/statline"
	"github.com/palabianco/basketstats/internal/infrastructure/repository/memory"
	"github.com/palabianco/basketstats/internal/platform/cache"
	idgen "github.com/palabianco/basketstats/internal/platform/id"
	"github.com/palabianco/basketstats/internal/platform/logging"
)

func intPtr(v int) *int { return &v }

func newReportService(matches []match.Match, stats []statline.Line, extraPlayers ...player.Player) *ReportService {
	players := memory.NewPlayerRepository(append(memory.SeedPlayers(), extraPlayers...))
	return NewReportService(
		memory.NewLeagueRepository(memory.SeedLeagues()),
		memory.NewTeamRepository(memory.SeedTeams()),
		players,
		memory.NewMatchRepository(matches),
		memory.NewStatLineRepository(stats),
		cache.NewStore(time.Minute),
		logging.NewNop(),
	)
}

func playedMatch(id string, home, away string, homeScore, awayScore int) match.Match {
	return match.Match{
		ID:         id,
		LeagueID:   memory.LeagueIDDR3,
		HomeTeamID: home,
		AwayTeamID: away,
		HomeScore:  intPtr(homeScore),
		AwayScore:  intPtr(awayScore),
		IsPlayed:   true,
	}
}

func TestBoxScoreFiltersAndSorts(t *testing.T) {
	ctx := context.Background()

	stats := []statline.Line{
		{MatchID: "m1", PlayerID: "p91", Points: 7, TwoPtMade: 2, TwoPtAtt: 4},
		{MatchID: "m1", PlayerID: "p4", Points: 10, TwoPtMade: 2, TwoPtAtt: 3},
		{MatchID: "m1", PlayerID: "bench_t1", Points: 2},
		{MatchID: "m1", PlayerID: "team_t2", Points: 72},
	}
	svc := newReportService(
		[]match.Match{playedMatch("m1", memory.TeamIDMain, memory.TeamIDJolly, 65, 72)},
		stats,
		player.MaterializeBench(memory.TeamIDMain),
		player.MaterializeTeamTotal(memory.TeamIDJolly, "JOLLY VINOVO"),
	)

	report, err := svc.BoxScore(ctx, "m1", memory.TeamIDMain)
	require.NoError(t, err)

	// Opponent's team-total row is excluded from the main side's view.
	require.Len(t, report.Rows, 3)
	assert.Equal(t, "p4", report.Rows[0].Player.ID)  // #4
	assert.Equal(t, "p91", report.Rows[1].Player.ID) // #91
	assert.Equal(t, "bench_t1", report.Rows[2].Player.ID)

	assert.Equal(t, 19, report.Totals.Points)
	assert.Equal(t, 4, report.Totals.TwoPtMade)
	assert.Equal(t, 7, report.Totals.TwoPtAtt)

	assert.Equal(t, "4 FUN", report.HomeTeam.Name)
	assert.Equal(t, "JOLLY VINOVO", report.AwayTeam.Name)
	assert.Equal(t, "Campionato DR3 Maschile", report.League.Name)
}

func TestBoxScoreOpponentView(t *testing.T) {
	ctx := context.Background()
	svc := newReportService(
		[]match.Match{playedMatch("m1", memory.TeamIDMain, memory.TeamIDJolly, 65, 72)},
		[]statline.Line{
			{MatchID: "m1", PlayerID: "p4", Points: 10},
			{MatchID: "m1", PlayerID: "team_t2", Points: 72},
		},
		player.MaterializeTeamTotal(memory.TeamIDJolly, "JOLLY VINOVO"),
	)

	report, err := svc.BoxScore(ctx, "m1", memory.TeamIDJolly)
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "team_t2", report.Rows[0].Player.ID)
	assert.Equal(t, 72, report.Totals.Points)
}

func TestBoxScoreRejectsOutsideTeam(t *testing.T) {
	svc := newReportService(
		[]match.Match{playedMatch("m1", memory.TeamIDMain, memory.TeamIDJolly, 65, 72)},
		nil,
	)
	_, err := svc.BoxScore(context.Background(), "m1", memory.TeamIDRivoli)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSeasonReportAggregates(t *testing.T) {
	ctx := context.Background()

	m1 := playedMatch("m1", memory.TeamIDMain, memory.TeamIDJolly, 65, 72)
	m1.HomeQuarters = []int{15, 18, 14, 18, 0, 0}
	m1.AwayQuarters = []int{18, 20, 16, 18, 0, 0}
	m2 := playedMatch("m2", memory.TeamIDRivoli, memory.TeamIDMain, 50, 61)
	unplayed := match.Match{ID: "m3", LeagueID: memory.LeagueIDDR3, HomeTeamID: memory.TeamIDMain, AwayTeamID: memory.TeamIDRivoli}

	stats := []statline.Line{
		{MatchID: "m1", PlayerID: "p4", Points: 10, TwoPtMade: 2, TwoPtAtt: 3},
		{MatchID: "m1", PlayerID: "team_t2", Points: 72},
		{MatchID: "m2", PlayerID: "p4", Points: 8, TwoPtMade: 4, TwoPtAtt: 6},
		{MatchID: "m2", PlayerID: "p0", Points: 12},
		{MatchID: "m3", PlayerID: "p4", Points: 99}, // unplayed: excluded
	}
	svc := newReportService(
		[]match.Match{m1, m2, unplayed},
		stats,
		player.MaterializeTeamTotal(memory.TeamIDJolly, "JOLLY VINOVO"),
	)

	report, err := svc.SeasonReport(ctx, memory.TeamIDMain, "")
	require.NoError(t, err)

	require.Len(t, report.Matches, 2)
	assert.Equal(t, 1, report.Wins)
	assert.Equal(t, 1, report.Losses)
	assert.Equal(t, 126, report.PointsFor)
	assert.Equal(t, 122, report.PointsAgainst)
	assert.Equal(t, []int{15, 18, 14, 18, 0, 0}, report.QuartersFor)

	// Leaderboard sorted by points, opponent aggregate rows excluded.
	require.Len(t, report.Players, 2)
	assert.Equal(t, "p4", report.Players[0].Player.ID)
	assert.Equal(t, 18, report.Players[0].Totals.Points)
	assert.Equal(t, 2, report.Players[0].Totals.Games)
	assert.Equal(t, 6, report.Players[0].Totals.TwoPtMade)
	assert.Equal(t, 9, report.Players[0].Totals.TwoPtAtt)
	assert.Equal(t, "67%", statline.FormatPercentage(6, 9))
	assert.Equal(t, "p0", report.Players[1].Player.ID)

	assert.Equal(t, 30, report.Total.Points)
}

func TestSeasonReportExcludesVirtualRows(t *testing.T) {
	ctx := context.Background()

	stats := []statline.Line{
		{MatchID: "m1", PlayerID: "p4", Points: 10},
		{MatchID: "m1", PlayerID: "bench_t1", Points: 2},
		{MatchID: "m1", PlayerID: "team_t1", Points: 65},
	}
	svc := newReportService(
		[]match.Match{playedMatch("m1", memory.TeamIDMain, memory.TeamIDJolly, 65, 72)},
		stats,
		player.MaterializeBench(memory.TeamIDMain),
		player.MaterializeTeamTotal(memory.TeamIDMain, "4 FUN"),
	)

	report, err := svc.SeasonReport(ctx, memory.TeamIDMain, "")
	require.NoError(t, err)

	// Bench and own-team aggregates belong to the box score only.
	require.Len(t, report.Players, 1)
	assert.Equal(t, "p4", report.Players[0].Player.ID)
	assert.Equal(t, 10, report.Total.Points)
}

func TestSeasonReportLeagueFilter(t *testing.T) {
	ctx := context.Background()

	m1 := playedMatch("m1", memory.TeamIDMain, memory.TeamIDJolly, 65, 72)
	m2 := playedMatch("m2", memory.TeamIDRivoli, memory.TeamIDMain, 50, 61)
	m2.LeagueID = memory.LeagueIDUISP

	svc := newReportService([]match.Match{m1, m2}, []statline.Line{
		{MatchID: "m1", PlayerID: "p4", Points: 10},
		{MatchID: "m2", PlayerID: "p4", Points: 8},
	})

	report, err := svc.SeasonReport(ctx, memory.TeamIDMain, memory.LeagueIDUISP)
	require.NoError(t, err)
	require.Len(t, report.Matches, 1)
	assert.Equal(t, "m2", report.Matches[0].ID)
	require.Len(t, report.Players, 1)
	assert.Equal(t, 8, report.Players[0].Totals.Points)
}

func TestSeasonReportUnknownTeam(t *testing.T) {
	svc := newReportService(nil, nil)
	_, err := svc.SeasonReport(context.Background(), "ghost", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoxScoreCacheClearedOnMatchDelete(t *testing.T) {
	ctx := context.Background()

	store := cache.NewStore(time.Minute)
	leagues := memory.NewLeagueRepository(memory.SeedLeagues())
	teams := memory.NewTeamRepository(memory.SeedTeams())
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	matches := memory.NewMatchRepository([]match.Match{playedMatch("m1", memory.TeamIDMain, memory.TeamIDJolly, 65, 72)})
	stats := memory.NewStatLineRepository([]statline.Line{{MatchID: "m1", PlayerID: "p4", Points: 10}})

	reports := NewReportService(leagues, teams, players, matches, stats, store, logging.NewNop())
	schedule := NewScheduleService(matches, teams, stats, idgen.NewRandomGenerator(), store, logging.NewNop())

	_, err := reports.BoxScore(ctx, "m1", memory.TeamIDMain)
	require.NoError(t, err)

	require.NoError(t, schedule.DeleteMatch(ctx, "m1"))

	_, err = reports.BoxScore(ctx, "m1", memory.TeamIDMain)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeasonReportCacheClearedOnRosterChange(t *testing.T) {
	ctx := context.Background()

	store := cache.NewStore(time.Minute)
	leagues := memory.NewLeagueRepository(memory.SeedLeagues())
	teams := memory.NewTeamRepository(memory.SeedTeams())
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	matches := memory.NewMatchRepository([]match.Match{playedMatch("m1", memory.TeamIDMain, memory.TeamIDJolly, 65, 72)})
	stats := memory.NewStatLineRepository([]statline.Line{{MatchID: "m1", PlayerID: "p4", Points: 10}})

	reports := NewReportService(leagues, teams, players, matches, stats, store, logging.NewNop())
	roster := NewRosterService(teams, players, matches, stats, idgen.NewRandomGenerator(), store, logging.NewNop())

	first, err := reports.SeasonReport(ctx, memory.TeamIDMain, "")
	require.NoError(t, err)
	require.Len(t, first.Players, 1)

	require.NoError(t, roster.DeletePlayer(ctx, "p4"))

	second, err := reports.SeasonReport(ctx, memory.TeamIDMain, "")
	require.NoError(t, err)
	assert.Empty(t, second.Players)
	assert.Equal(t, 0, second.Total.Points)
}
