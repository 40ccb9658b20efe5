package memory

import (
	"github.com/palabianco/basketstats/internal/domain/league"
	"github.com/palabianco/basketstats/internal/domain/match"
	"github.com/palabianco/basketstats/internal/domain/player"
	"github.com/palabianco/basketstats/internal/domain/settings"
	"github.com/palabianco/basketstats/internal/domain/team"
)

const (
	LeagueIDDR3  = "l1"
	LeagueIDUISP = "l2"

	TeamIDMain   = "t1"
	TeamIDJolly  = "t2"
	TeamIDRivoli = "t3"
)

func SeedLeagues() []league.League {
	return []league.League{
		{ID: LeagueIDDR3, Name: "Campionato DR3 Maschile", Season: "25/26"},
		{ID: LeagueIDUISP, Name: "Campionato UISP", Season: "25/26"},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDMain, Name: "4 FUN", IsMain: true, Location: "Palabianco", LeagueIDs: []string{LeagueIDDR3, LeagueIDUISP}, LogoURL: "https://picsum.photos/id/158/100/100"},
		{ID: TeamIDJolly, Name: "JOLLY VINOVO", LeagueIDs: []string{LeagueIDDR3}, LogoURL: "https://picsum.photos/id/177/100/100"},
		{ID: TeamIDRivoli, Name: "RIVOLI BASKET", LeagueIDs: []string{LeagueIDDR3}, LogoURL: "https://picsum.photos/id/192/100/100"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "p0", TeamID: TeamIDMain, Number: 0, Name: "MORRA", PhotoURL: "https://picsum.photos/id/64/150/150"},
		{ID: "p3", TeamID: TeamIDMain, Number: 3, Name: "GIAMMELLO", PhotoURL: "https://picsum.photos/id/91/150/150"},
		{ID: "p4", TeamID: TeamIDMain, Number: 4, Name: "ROSA CLOT", PhotoURL: "https://picsum.photos/id/103/150/150"},
		{ID: "p7", TeamID: TeamIDMain, Number: 7, Name: "BENINATI"},
		{ID: "p13", TeamID: TeamIDMain, Number: 13, Name: "CORGIAT A."},
		{ID: "p17", TeamID: TeamIDMain, Number: 17, Name: "RAMPONE"},
		{ID: "p18", TeamID: TeamIDMain, Number: 18, Name: "CIBRARIO"},
		{ID: "p21", TeamID: TeamIDMain, Number: 21, Name: "ALESSIO"},
		{ID: "p23", TeamID: TeamIDMain, Number: 23, Name: "EMANUELE"},
		{ID: "p33", TeamID: TeamIDMain, Number: 33, Name: "PETRELLI"},
		{ID: "p74", TeamID: TeamIDMain, Number: 74, Name: "SAMMARUCA"},
		{ID: "p91", TeamID: TeamIDMain, Number: 91, Name: "CORGIAT M."},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:          "m1",
			LeagueID:    LeagueIDDR3,
			MatchNumber: "5594",
			Round:       match.RoundFirstLeg,
			Date:        "2025-11-21",
			Time:        "21:15",
			HomeTeamID:  TeamIDMain,
			AwayTeamID:  TeamIDJolly,
		},
	}
}

func SeedSettings() settings.Settings {
	return settings.Default()
}
