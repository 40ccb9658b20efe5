package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palabianco/basketstats/internal/domain/league"
	"github.com/palabianco/basketstats/internal/domain/statline"
	"github.com/palabianco/basketstats/internal/infrastructure/repository/memory"
	idgen "github.com/palabianco/basketstats/internal/platform/id"
	"github.com/palabianco/basketstats/internal/platform/logging"
)

type leagueFixture struct {
	leagues *memory.LeagueRepository
	teams   *memory.TeamRepository
	matches *memory.MatchRepository
	stats   *memory.StatLineRepository
	svc     *LeagueService
}

func newLeagueFixture(stats []statline.Line) *leagueFixture {
	f := &leagueFixture{
		leagues: memory.NewLeagueRepository(memory.SeedLeagues()),
		teams:   memory.NewTeamRepository(memory.SeedTeams()),
		matches: memory.NewMatchRepository(memory.SeedMatches()),
		stats:   memory.NewStatLineRepository(stats),
	}
	f.svc = NewLeagueService(f.leagues, f.teams, f.matches, f.stats, idgen.NewRandomGenerator(), nil, logging.NewNop())
	return f
}

func TestSaveLeagueGeneratesID(t *testing.T) {
	ctx := context.Background()
	f := newLeagueFixture(nil)

	saved, err := f.svc.SaveLeague(ctx, league.League{Name: "Coppa Piemonte", Season: "25/26"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	got, err := f.svc.GetLeague(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coppa Piemonte", got.Name)
}

func TestSaveLeagueValidates(t *testing.T) {
	f := newLeagueFixture(nil)
	_, err := f.svc.SaveLeague(context.Background(), league.League{Season: "25/26"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteLeagueCascades(t *testing.T) {
	ctx := context.Background()
	f := newLeagueFixture([]statline.Line{
		{MatchID: "m1", PlayerID: "p4", Points: 10},
	})

	require.NoError(t, f.svc.DeleteLeague(ctx, memory.LeagueIDDR3))

	_, exists, err := f.leagues.GetByID(ctx, memory.LeagueIDDR3)
	require.NoError(t, err)
	assert.False(t, exists)

	// m1 belonged to the league: removed with its stat lines.
	_, exists, err = f.matches.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.False(t, exists)

	lines, err := f.stats.ListByMatch(ctx, "m1")
	require.NoError(t, err)
	assert.Empty(t, lines)

	// Membership stripped, other leagues kept.
	mainTeam, _, err := f.teams.GetByID(ctx, memory.TeamIDMain)
	require.NoError(t, err)
	assert.Equal(t, []string{memory.LeagueIDUISP}, mainTeam.LeagueIDs)

	jolly, _, err := f.teams.GetByID(ctx, memory.TeamIDJolly)
	require.NoError(t, err)
	assert.Empty(t, jolly.LeagueIDs)
}

func TestDeleteLeagueUnknownID(t *testing.T) {
	f := newLeagueFixture(nil)
	err := f.svc.DeleteLeague(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

var _ league.Repository = (*memory.LeagueRepository)(nil)
