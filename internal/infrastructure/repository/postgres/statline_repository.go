package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/palabianco/basketstats/internal/domain/statline"
	qb "github.com/palabianco/basketstats/internal/platform/querybuilder"
)

type StatLineRepository struct {
	db *sqlx.DB
}

func NewStatLineRepository(db *sqlx.DB) *StatLineRepository {
	return &StatLineRepository{db: db}
}

func mapStatLineRow(row statLineTableModel) statline.Line {
	return statline.Line{
		MatchID:        row.MatchID,
		PlayerID:       row.PlayerID,
		MinutesPlayed:  row.MinutesPlayed,
		Points:         row.Points,
		TwoPtMade:      row.TwoPtMade,
		TwoPtAtt:       row.TwoPtAtt,
		ThreePtMade:    row.ThreePtMade,
		ThreePtAtt:     row.ThreePtAtt,
		FtMade:         row.FtMade,
		FtAtt:          row.FtAtt,
		ReboundsOff:    row.ReboundsOff,
		ReboundsDef:    row.ReboundsDef,
		Assists:        row.Assists,
		Turnovers:      row.Turnovers,
		Steals:         row.Steals,
		BlocksMade:     row.BlocksMade,
		BlocksReceived: row.BlocksReceived,
		FoulsCommitted: row.FoulsCommitted,
		FoulsDrawn:     row.FoulsDrawn,
		Valuation:      row.Valuation,
		PlusMinus:      row.PlusMinus,
	}
}

func statLineInsert(l statline.Line) statLineInsertModel {
	return statLineInsertModel{
		MatchID:        l.MatchID,
		PlayerID:       l.PlayerID,
		MinutesPlayed:  l.MinutesPlayed,
		Points:         l.Points,
		TwoPtMade:      l.TwoPtMade,
		TwoPtAtt:       l.TwoPtAtt,
		ThreePtMade:    l.ThreePtMade,
		ThreePtAtt:     l.ThreePtAtt,
		FtMade:         l.FtMade,
		FtAtt:          l.FtAtt,
		ReboundsOff:    l.ReboundsOff,
		ReboundsDef:    l.ReboundsDef,
		Assists:        l.Assists,
		Turnovers:      l.Turnovers,
		Steals:         l.Steals,
		BlocksMade:     l.BlocksMade,
		BlocksReceived: l.BlocksReceived,
		FoulsCommitted: l.FoulsCommitted,
		FoulsDrawn:     l.FoulsDrawn,
		Valuation:      l.Valuation,
		PlusMinus:      l.PlusMinus,
	}
}

func (r *StatLineRepository) selectLines(ctx context.Context, conditions ...qb.Condition) ([]statline.Line, error) {
	conditions = append(conditions, qb.IsNull("deleted_at"))
	query, args, err := qb.Select("*").From("stat_lines").
		Where(conditions...).
		OrderBy("match_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select stat lines query: %w", err)
	}

	var rows []statLineTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stat lines: %w", err)
	}

	out := make([]statline.Line, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapStatLineRow(row))
	}

	return out, nil
}

func (r *StatLineRepository) ListByMatch(ctx context.Context, matchID string) ([]statline.Line, error) {
	return r.selectLines(ctx, qb.Eq("match_id", matchID))
}

func (r *StatLineRepository) ListByMatches(ctx context.Context, matchIDs []string) ([]statline.Line, error) {
	if len(matchIDs) == 0 {
		return nil, nil
	}

	values := make([]any, len(matchIDs))
	for i, id := range matchIDs {
		values[i] = id
	}

	return r.selectLines(ctx, qb.In("match_id", values))
}

func (r *StatLineRepository) ListByPlayer(ctx context.Context, playerID string) ([]statline.Line, error) {
	return r.selectLines(ctx, qb.Eq("player_id", playerID))
}

func (r *StatLineRepository) ReplaceForMatch(ctx context.Context, matchID string, lines []statline.Line) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace stat lines: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("stat_lines").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("match_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear stat lines query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear stat lines: %w", err)
	}

	for _, line := range lines {
		query, args, err := qb.InsertModel("stat_lines", statLineInsert(line), `ON CONFLICT (match_id, player_id) WHERE deleted_at IS NULL
DO UPDATE SET
    minutes_played = EXCLUDED.minutes_played,
    points = EXCLUDED.points,
    two_pt_made = EXCLUDED.two_pt_made,
    two_pt_att = EXCLUDED.two_pt_att,
    three_pt_made = EXCLUDED.three_pt_made,
    three_pt_att = EXCLUDED.three_pt_att,
    ft_made = EXCLUDED.ft_made,
    ft_att = EXCLUDED.ft_att,
    rebounds_off = EXCLUDED.rebounds_off,
    rebounds_def = EXCLUDED.rebounds_def,
    assists = EXCLUDED.assists,
    turnovers = EXCLUDED.turnovers,
    steals = EXCLUDED.steals,
    blocks_made = EXCLUDED.blocks_made,
    blocks_received = EXCLUDED.blocks_received,
    fouls_committed = EXCLUDED.fouls_committed,
    fouls_drawn = EXCLUDED.fouls_drawn,
    valuation = EXCLUDED.valuation,
    plus_minus = EXCLUDED.plus_minus,
    updated_at = NOW(),
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert stat line query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert stat line match=%s player=%s: %w", line.MatchID, line.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace stat lines tx: %w", err)
	}
	return nil
}

func (r *StatLineRepository) deleteWhere(ctx context.Context, condition qb.Condition) error {
	query, args, err := qb.Update("stat_lines").
		SetExpr("deleted_at", "NOW()").
		Where(
			condition,
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete stat lines query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete stat lines: %w", err)
	}

	return nil
}

func (r *StatLineRepository) DeleteByMatch(ctx context.Context, matchID string) error {
	return r.deleteWhere(ctx, qb.Eq("match_id", matchID))
}

func (r *StatLineRepository) DeleteByPlayer(ctx context.Context, playerID string) error {
	return r.deleteWhere(ctx, qb.Eq("player_id", playerID))
}
