package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palabianco/basketstats/internal/domain/match"
	"github.com/palabianco/basketstats/internal/domain/statline"
	"github.com/palabianco/basketstats/internal/infrastructure/repository/memory"
	"github.com/palabianco/basketstats/internal/platform/cache"
	"github.com/palabianco/basketstats/internal/platform/logging"
)

func newRecomputeFixture(matches []match.Match, stats []statline.Line) (*RecomputeService, *memory.MatchRepository) {
	matchRepo := memory.NewMatchRepository(matches)
	svc := NewRecomputeService(
		matchRepo,
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewStatLineRepository(stats),
		cache.NewStore(time.Minute),
		logging.NewNop(),
	)
	return svc, matchRepo
}

func TestRecomputeScores(t *testing.T) {
	ctx := context.Background()

	stale := 1
	matches := []match.Match{
		{ID: "m1", LeagueID: memory.LeagueIDDR3, HomeTeamID: memory.TeamIDMain, AwayTeamID: memory.TeamIDJolly, HomeScore: &stale, IsPlayed: true},
		{ID: "m2", LeagueID: memory.LeagueIDDR3, HomeTeamID: memory.TeamIDJolly, AwayTeamID: memory.TeamIDMain, IsPlayed: true},
		{ID: "m3", LeagueID: memory.LeagueIDDR3, HomeTeamID: memory.TeamIDMain, AwayTeamID: memory.TeamIDRivoli, IsPlayed: true},
		{ID: "m4", LeagueID: memory.LeagueIDDR3, HomeTeamID: memory.TeamIDMain, AwayTeamID: memory.TeamIDRivoli},
	}
	stats := []statline.Line{
		{MatchID: "m1", PlayerID: "p4", Points: 10},
		{MatchID: "m1", PlayerID: "p0", Points: 8},
		{MatchID: "m1", PlayerID: "team_t2", Points: 72},
		{MatchID: "m2", PlayerID: "p4", Points: 21},
	}

	svc, matchRepo := newRecomputeFixture(matches, stats)

	result, err := svc.RecomputeScores(ctx, RecomputeInput{MaxWorkers: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, result.MatchCount) // m4 is not played
	assert.Equal(t, 2, result.UpdatedCount)
	assert.Equal(t, 1, result.SkippedCount) // m3 has no stat lines
	assert.Equal(t, 0, result.FailedCount)
	require.Len(t, result.Matches, 3)
	assert.Equal(t, "m1", result.Matches[0].MatchID)

	m1, _, err := matchRepo.GetByID(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, m1.HomeScore)
	assert.Equal(t, 18, *m1.HomeScore)
	require.NotNil(t, m1.AwayScore)
	assert.Equal(t, 72, *m1.AwayScore)

	// Main team away: derived sum lands on the away column; the home side
	// had no aggregate row and stays unset.
	m2, _, err := matchRepo.GetByID(ctx, "m2")
	require.NoError(t, err)
	require.NotNil(t, m2.AwayScore)
	assert.Equal(t, 21, *m2.AwayScore)
	assert.Nil(t, m2.HomeScore)
}

func TestRecomputeScoresDryRun(t *testing.T) {
	ctx := context.Background()

	matches := []match.Match{
		{ID: "m1", LeagueID: memory.LeagueIDDR3, HomeTeamID: memory.TeamIDMain, AwayTeamID: memory.TeamIDJolly, IsPlayed: true},
	}
	stats := []statline.Line{{MatchID: "m1", PlayerID: "p4", Points: 10}}

	svc, matchRepo := newRecomputeFixture(matches, stats)

	result, err := svc.RecomputeScores(ctx, RecomputeInput{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdatedCount)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, 10, result.Matches[0].HomeScore)

	m1, _, err := matchRepo.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, m1.HomeScore)
}

func TestRecomputeScoresUnchanged(t *testing.T) {
	ctx := context.Background()

	home := 10
	matches := []match.Match{
		{ID: "m1", LeagueID: memory.LeagueIDDR3, HomeTeamID: memory.TeamIDMain, AwayTeamID: memory.TeamIDJolly, HomeScore: &home, IsPlayed: true},
	}
	stats := []statline.Line{{MatchID: "m1", PlayerID: "p4", Points: 10}}

	svc, _ := newRecomputeFixture(matches, stats)

	result, err := svc.RecomputeScores(ctx, RecomputeInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.UnchangedCount)
	assert.Zero(t, result.UpdatedCount)
}
