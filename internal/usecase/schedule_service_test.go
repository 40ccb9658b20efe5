package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palabianco/basketstats/internal/domain/match"
	"github.com/palabianco/basketstats/internal/domain/statline"
	"github.com/palabianco/basketstats/internal/infrastructure/repository/memory"
	idgen "github.com/palabianco/basketstats/internal/platform/id"
	"github.com/palabianco/basketstats/internal/platform/logging"
)

func newScheduleService(stats *memory.StatLineRepository) (*ScheduleService, *memory.MatchRepository) {
	matches := memory.NewMatchRepository(memory.SeedMatches())
	svc := NewScheduleService(
		matches,
		memory.NewTeamRepository(memory.SeedTeams()),
		stats,
		idgen.NewRandomGenerator(),
		nil,
		logging.NewNop(),
	)
	return svc, matches
}

func TestSaveMatch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleService(memory.NewStatLineRepository(nil))

	saved, err := svc.SaveMatch(ctx, match.Match{
		LeagueID:   memory.LeagueIDDR3,
		Round:      match.RoundReturn,
		Date:       "2026-02-13",
		Time:       "21:00",
		HomeTeamID: memory.TeamIDJolly,
		AwayTeamID: memory.TeamIDMain,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	got, err := svc.GetMatch(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, memory.TeamIDJolly, got.HomeTeamID)
}

func TestSaveMatchRejectsUnknownTeam(t *testing.T) {
	svc, _ := newScheduleService(memory.NewStatLineRepository(nil))

	_, err := svc.SaveMatch(context.Background(), match.Match{
		HomeTeamID: memory.TeamIDMain,
		AwayTeamID: "ghost",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveMatchRejectsSelfPlay(t *testing.T) {
	svc, _ := newScheduleService(memory.NewStatLineRepository(nil))

	_, err := svc.SaveMatch(context.Background(), match.Match{
		HomeTeamID: memory.TeamIDMain,
		AwayTeamID: memory.TeamIDMain,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListMatchesSortedByDate(t *testing.T) {
	ctx := context.Background()
	svc, matches := newScheduleService(memory.NewStatLineRepository(nil))

	require.NoError(t, matches.Upsert(ctx, match.Match{
		ID: "m0", LeagueID: memory.LeagueIDDR3, Date: "2025-10-03", Time: "20:00",
		HomeTeamID: memory.TeamIDRivoli, AwayTeamID: memory.TeamIDMain,
	}))

	out, err := svc.ListMatches(ctx, memory.LeagueIDDR3)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "m0", out[0].ID)
	assert.Equal(t, "m1", out[1].ID)
}

func TestDeleteMatchCascadesStatLines(t *testing.T) {
	ctx := context.Background()
	stats := memory.NewStatLineRepository([]statline.Line{
		{MatchID: "m1", PlayerID: "p4", Points: 10},
	})
	svc, matches := newScheduleService(stats)

	require.NoError(t, svc.DeleteMatch(ctx, "m1"))

	_, exists, err := matches.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.False(t, exists)

	lines, err := stats.ListByMatch(ctx, "m1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}
