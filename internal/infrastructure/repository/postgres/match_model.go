package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type matchTableModel struct {
	ID           int64         `db:"id"`
	PublicID     string        `db:"public_id"`
	LeagueID     string        `db:"league_id"`
	MatchNumber  string        `db:"match_number"`
	Round        string        `db:"round"`
	MatchDate    string        `db:"match_date"`
	MatchTime    string        `db:"match_time"`
	HomeTeamID   string        `db:"home_team_id"`
	AwayTeamID   string        `db:"away_team_id"`
	HomeScore    sql.NullInt64 `db:"home_score"`
	AwayScore    sql.NullInt64 `db:"away_score"`
	HomeQuarters pq.Int64Array `db:"home_quarters"`
	AwayQuarters pq.Int64Array `db:"away_quarters"`
	IsPlayed     bool          `db:"is_played"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
	DeletedAt    *time.Time    `db:"deleted_at"`
}

type matchInsertModel struct {
	PublicID     string        `db:"public_id"`
	LeagueID     string        `db:"league_id"`
	MatchNumber  string        `db:"match_number"`
	Round        string        `db:"round"`
	MatchDate    string        `db:"match_date"`
	MatchTime    string        `db:"match_time"`
	HomeTeamID   string        `db:"home_team_id"`
	AwayTeamID   string        `db:"away_team_id"`
	HomeScore    sql.NullInt64 `db:"home_score"`
	AwayScore    sql.NullInt64 `db:"away_score"`
	HomeQuarters pq.Int64Array `db:"home_quarters"`
	AwayQuarters pq.Int64Array `db:"away_quarters"`
	IsPlayed     bool          `db:"is_played"`
}
