package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palabianco/basketstats/internal/domain/match"
	"github.com/palabianco/basketstats/internal/domain/player"
	"github.com/palabianco/basketstats/internal/domain/statline"
	"github.com/palabianco/basketstats/internal/domain/team"
	"github.com/palabianco/basketstats/internal/infrastructure/repository/memory"
	idgen "github.com/palabianco/basketstats/internal/platform/id"
	"github.com/palabianco/basketstats/internal/platform/logging"
)

type rosterFixture struct {
	teams   *memory.TeamRepository
	players *memory.PlayerRepository
	matches *memory.MatchRepository
	stats   *memory.StatLineRepository
	svc     *RosterService
}

func newRosterFixture(stats []statline.Line) *rosterFixture {
	f := &rosterFixture{
		teams:   memory.NewTeamRepository(memory.SeedTeams()),
		players: memory.NewPlayerRepository(memory.SeedPlayers()),
		matches: memory.NewMatchRepository(memory.SeedMatches()),
		stats:   memory.NewStatLineRepository(stats),
	}
	f.svc = NewRosterService(f.teams, f.players, f.matches, f.stats, idgen.NewRandomGenerator(), nil, logging.NewNop())
	return f
}

func TestSaveTeamKeepsSingleMain(t *testing.T) {
	ctx := context.Background()
	f := newRosterFixture(nil)

	jolly, err := f.svc.GetTeam(ctx, memory.TeamIDJolly)
	require.NoError(t, err)
	jolly.IsMain = true

	_, err = f.svc.SaveTeam(ctx, jolly)
	require.NoError(t, err)

	teams, err := f.svc.ListTeams(ctx)
	require.NoError(t, err)

	mains := make([]string, 0, 1)
	for _, item := range teams {
		if item.IsMain {
			mains = append(mains, item.ID)
		}
	}
	assert.Equal(t, []string{memory.TeamIDJolly}, mains)
	assert.Equal(t, memory.TeamIDJolly, teams[0].ID, "main team leads the listing")
}

func TestSavePlayerRejectsTakenNumber(t *testing.T) {
	ctx := context.Background()
	f := newRosterFixture(nil)

	_, err := f.svc.SavePlayer(ctx, player.Player{
		TeamID: memory.TeamIDMain,
		Number: 4, // ROSA CLOT already wears it
		Name:   "NEW GUY",
	})
	assert.ErrorIs(t, err, ErrConflict)

	// Updating the player who owns the number is fine.
	existing, _, err := f.players.GetByID(ctx, "p4")
	require.NoError(t, err)
	existing.Name = "ROSA CLOT JR."
	_, err = f.svc.SavePlayer(ctx, existing)
	assert.NoError(t, err)
}

func TestSavePlayerRejectsReservedNumbers(t *testing.T) {
	ctx := context.Background()
	f := newRosterFixture(nil)

	_, err := f.svc.SavePlayer(ctx, player.Player{
		TeamID: memory.TeamIDMain,
		Number: player.NumberBench,
		Name:   "IMPOSTOR",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListRosterExcludesVirtualPlayers(t *testing.T) {
	ctx := context.Background()
	f := newRosterFixture(nil)

	require.NoError(t, f.players.Upsert(ctx, player.MaterializeBench(memory.TeamIDMain)))

	roster, err := f.svc.ListRoster(ctx, memory.TeamIDMain)
	require.NoError(t, err)
	for _, p := range roster {
		assert.False(t, p.IsVirtual(), "virtual player %s in roster listing", p.ID)
	}

	// Sorted by jersey number.
	for i := 1; i < len(roster); i++ {
		assert.Less(t, roster[i-1].Number, roster[i].Number)
	}
}

func TestDeleteTeamCascades(t *testing.T) {
	ctx := context.Background()
	f := newRosterFixture([]statline.Line{
		{MatchID: "m1", PlayerID: "p4", Points: 10},
		{MatchID: "m1", PlayerID: "team_t2", Points: 72},
	})

	require.NoError(t, f.svc.DeleteTeam(ctx, memory.TeamIDMain))

	_, exists, err := f.teams.GetByID(ctx, memory.TeamIDMain)
	require.NoError(t, err)
	assert.False(t, exists)

	players, err := f.players.ListByTeam(ctx, memory.TeamIDMain)
	require.NoError(t, err)
	assert.Empty(t, players)

	// m1 involved the team, so it and its stat lines are gone, including
	// lines owned by the other side's virtual player.
	_, exists, err = f.matches.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.False(t, exists)

	lines, err := f.stats.ListByMatch(ctx, "m1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestDeletePlayerCascades(t *testing.T) {
	ctx := context.Background()
	f := newRosterFixture([]statline.Line{
		{MatchID: "m1", PlayerID: "p4", Points: 10},
		{MatchID: "m1", PlayerID: "p0", Points: 5},
	})

	require.NoError(t, f.svc.DeletePlayer(ctx, "p4"))

	lines, err := f.stats.ListByMatch(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "p0", lines[0].PlayerID)
}

func TestDeleteTeamUnknownID(t *testing.T) {
	f := newRosterFixture(nil)
	err := f.svc.DeleteTeam(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

var _ team.Repository = (*memory.TeamRepository)(nil)
var _ player.Repository = (*memory.PlayerRepository)(nil)
var _ match.Repository = (*memory.MatchRepository)(nil)
