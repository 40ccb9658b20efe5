package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/palabianco/basketstats/internal/domain/match"
	qb "github.com/palabianco/basketstats/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func mapMatchRow(row matchTableModel) match.Match {
	return match.Match{
		ID:           row.PublicID,
		LeagueID:     row.LeagueID,
		MatchNumber:  row.MatchNumber,
		Round:        row.Round,
		Date:         row.MatchDate,
		Time:         row.MatchTime,
		HomeTeamID:   row.HomeTeamID,
		AwayTeamID:   row.AwayTeamID,
		HomeScore:    nullIntToPtr(row.HomeScore),
		AwayScore:    nullIntToPtr(row.AwayScore),
		HomeQuarters: int64sToInts(row.HomeQuarters),
		AwayQuarters: int64sToInts(row.AwayQuarters),
		IsPlayed:     row.IsPlayed,
	}
}

func (r *MatchRepository) selectMatches(ctx context.Context, conditions ...qb.Condition) ([]match.Match, error) {
	conditions = append(conditions, qb.IsNull("deleted_at"))
	query, args, err := qb.Select("*").From("matches").
		Where(conditions...).
		OrderBy("match_date", "match_time", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapMatchRow(row))
	}

	return out, nil
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	return r.selectMatches(ctx)
}

func (r *MatchRepository) ListByLeague(ctx context.Context, leagueID string) ([]match.Match, error) {
	return r.selectMatches(ctx, qb.Eq("league_id", leagueID))
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID string) ([]match.Match, error) {
	return r.selectMatches(ctx, qb.Expr("(home_team_id = ? OR away_team_id = ?)", teamID, teamID))
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return mapMatchRow(row), true, nil
}

func (r *MatchRepository) Upsert(ctx context.Context, m match.Match) error {
	query, args, err := qb.InsertModel("matches", matchInsertModel{
		PublicID:     m.ID,
		LeagueID:     m.LeagueID,
		MatchNumber:  m.MatchNumber,
		Round:        m.Round,
		MatchDate:    m.Date,
		MatchTime:    m.Time,
		HomeTeamID:   m.HomeTeamID,
		AwayTeamID:   m.AwayTeamID,
		HomeScore:    ptrToNullInt(m.HomeScore),
		AwayScore:    ptrToNullInt(m.AwayScore),
		HomeQuarters: pq.Int64Array(intsToInt64s(m.HomeQuarters)),
		AwayQuarters: pq.Int64Array(intsToInt64s(m.AwayQuarters)),
		IsPlayed:     m.IsPlayed,
	}, `ON CONFLICT (public_id)
DO UPDATE SET
    league_id = EXCLUDED.league_id,
    match_number = EXCLUDED.match_number,
    round = EXCLUDED.round,
    match_date = EXCLUDED.match_date,
    match_time = EXCLUDED.match_time,
    home_team_id = EXCLUDED.home_team_id,
    away_team_id = EXCLUDED.away_team_id,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    home_quarters = EXCLUDED.home_quarters,
    away_quarters = EXCLUDED.away_quarters,
    is_played = EXCLUDED.is_played,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match: %w", err)
	}

	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.Update("matches").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}

	return nil
}
