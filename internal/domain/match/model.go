package match

import (
	"fmt"
	"strings"
)

const (
	RoundFirstLeg = "Andata"
	RoundReturn   = "Ritorno"
)

// QuarterCount covers four regulation periods plus two overtime slots.
const QuarterCount = 6

// Match is one scheduled fixture. Scores stay nil until a stat import (or
// manual edit) marks the match as played. Quarters hold per-period points
// for each side, zero-filled for periods not reached.
type Match struct {
	ID          string `json:"id" db:"id"`
	LeagueID    string `json:"leagueId" db:"league_id"`
	MatchNumber string `json:"matchNumber" db:"match_number"`
	Round       string `json:"round" db:"round"`
	Date        string `json:"date" db:"match_date"`
	Time        string `json:"time" db:"match_time"`

	HomeTeamID string `json:"homeTeamId" db:"home_team_id"`
	AwayTeamID string `json:"awayTeamId" db:"away_team_id"`

	HomeScore *int `json:"homeScore" db:"home_score"`
	AwayScore *int `json:"awayScore" db:"away_score"`

	HomeQuarters []int `json:"homeQuarters" db:"home_quarters"`
	AwayQuarters []int `json:"awayQuarters" db:"away_quarters"`

	IsPlayed bool `json:"isPlayed" db:"is_played"`
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("match id is required")
	}
	if strings.TrimSpace(m.HomeTeamID) == "" || strings.TrimSpace(m.AwayTeamID) == "" {
		return fmt.Errorf("match requires both home and away teams")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match cannot pair a team against itself")
	}
	if m.Round != "" && m.Round != RoundFirstLeg && m.Round != RoundReturn {
		return fmt.Errorf("unknown round %q", m.Round)
	}
	if len(m.HomeQuarters) > QuarterCount || len(m.AwayQuarters) > QuarterCount {
		return fmt.Errorf("at most %d quarter entries per side", QuarterCount)
	}
	return nil
}

// Involves reports whether teamID plays in this match on either side.
func (m Match) Involves(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// OpponentOf returns the other side's team ID, or "" when teamID does not
// play in this match.
func (m Match) OpponentOf(teamID string) string {
	switch teamID {
	case m.HomeTeamID:
		return m.AwayTeamID
	case m.AwayTeamID:
		return m.HomeTeamID
	default:
		return ""
	}
}
