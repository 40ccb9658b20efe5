package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/palabianco/basketstats/external/scoutcsv"
	"github.com/palabianco/basketstats/internal/domain/match"
	"github.com/palabianco/basketstats/internal/domain/player"
	"github.com/palabianco/basketstats/internal/domain/statline"
	"github.com/palabianco/basketstats/internal/domain/team"
	"github.com/palabianco/basketstats/internal/platform/cache"
	"github.com/palabianco/basketstats/internal/platform/logging"
)

// ImportPreview is the reviewable result of parsing one source against a
// match. Nothing is persisted until the preview is committed.
type ImportPreview struct {
	MatchID              string
	Lines                []statline.Line
	Score                match.Totals
	HasExplicitScore     bool
	PlayersToMaterialize []player.Player
	SkippedNumbers       []int
}

// ImportService runs the stat import pipeline: normalize a source, resolve
// identities, reconcile the score, and replace the match's stat lines on
// commit.
type ImportService struct {
	matchRepo   match.Repository
	teamRepo    team.Repository
	playerRepo  player.Repository
	statRepo    statline.Repository
	analyzer    ScoreSheetAnalyzer
	reportCache *cache.Store
	logger      *logging.Logger
}

func NewImportService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	statRepo statline.Repository,
	analyzer ScoreSheetAnalyzer,
	reportCache *cache.Store,
	logger *logging.Logger,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ImportService{
		matchRepo:   matchRepo,
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		statRepo:    statRepo,
		analyzer:    analyzer,
		reportCache: reportCache,
		logger:      logger,
	}
}

type importContext struct {
	match    match.Match
	mainTeam team.Team
	opponent string
	roster   []player.Player
}

func (s *ImportService) resolveContext(ctx context.Context, matchID string) (importContext, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return importContext{}, fmt.Errorf("%w: no match selected", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return importContext{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return importContext{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	mainTeam, exists, err := s.teamRepo.GetMain(ctx)
	if err != nil {
		return importContext{}, fmt.Errorf("get main team: %w", err)
	}
	if !exists {
		return importContext{}, fmt.Errorf("%w: no main team configured", ErrInvalidInput)
	}

	opponent := m.OpponentOf(mainTeam.ID)
	if opponent == "" {
		return importContext{}, fmt.Errorf("%w: main team does not play in match=%s", ErrInvalidInput, matchID)
	}

	roster, err := s.playerRepo.ListByTeam(ctx, mainTeam.ID)
	if err != nil {
		return importContext{}, fmt.Errorf("list main roster: %w", err)
	}

	return importContext{match: m, mainTeam: mainTeam, opponent: opponent, roster: roster}, nil
}

// PreviewCSV parses a scouting export for the match and returns the
// candidate stat lines and score. Rows whose jersey number matches nobody on
// the main roster are dropped and reported in SkippedNumbers.
func (s *ImportService) PreviewCSV(ctx context.Context, matchID, csvContent string) (ImportPreview, error) {
	ctx, span := startUsecaseSpan(ctx, "ImportService.PreviewCSV")
	defer span.End()

	ic, err := s.resolveContext(ctx, matchID)
	if err != nil {
		return ImportPreview{}, err
	}

	parsed := scoutcsv.Parse(csvContent, ic.match.ID, ic.roster, ic.mainTeam.ID, ic.opponent)
	if len(parsed.Lines) == 0 && !parsed.Totals.HasExplicit() {
		return ImportPreview{}, fmt.Errorf("%w: no usable data in CSV", ErrInvalidInput)
	}
	if len(parsed.SkippedNumbers) > 0 {
		s.logger.WarnContext(ctx, "dropped CSV rows with unknown jersey numbers",
			"match_id", ic.match.ID,
			"numbers", parsed.SkippedNumbers,
		)
	}

	toMaterialize, err := s.playersToMaterialize(ctx, ic, parsed.Lines)
	if err != nil {
		return ImportPreview{}, err
	}

	return ImportPreview{
		MatchID:              ic.match.ID,
		Lines:                parsed.Lines,
		Score:                parsed.Totals,
		HasExplicitScore:     parsed.Totals.HasExplicit(),
		PlayersToMaterialize: toMaterialize,
		SkippedNumbers:       parsed.SkippedNumbers,
	}, nil
}

// PreviewImage asks the vision service for a best-effort box score extracted
// from a photographed sheet. The vision path never yields explicit team
// totals, so the committed score falls back to summation.
func (s *ImportService) PreviewImage(ctx context.Context, matchID string, imageJPEG []byte) (ImportPreview, error) {
	ctx, span := startUsecaseSpan(ctx, "ImportService.PreviewImage")
	defer span.End()

	if s.analyzer == nil {
		return ImportPreview{}, fmt.Errorf("%w: vision service is not configured", ErrDependencyUnavailable)
	}

	ic, err := s.resolveContext(ctx, matchID)
	if err != nil {
		return ImportPreview{}, err
	}

	rosterCtx := make([]VisionRosterEntry, 0, len(ic.roster))
	for _, p := range ic.roster {
		if p.IsVirtual() {
			continue
		}
		rosterCtx = append(rosterCtx, VisionRosterEntry{PlayerID: p.ID, Number: p.Number, Name: p.Name})
	}

	extracts, err := s.analyzer.AnalyzeScoreSheet(ctx, imageJPEG, rosterCtx)
	if err != nil {
		return ImportPreview{}, fmt.Errorf("analyze score sheet: %w", err)
	}
	if len(extracts) == 0 {
		return ImportPreview{}, fmt.Errorf("%w: no usable data extracted from image", ErrInvalidInput)
	}

	lines := make([]statline.Line, 0, len(extracts))
	for _, e := range extracts {
		lines = append(lines, statline.Line{
			MatchID:        ic.match.ID,
			PlayerID:       e.PlayerID,
			MinutesPlayed:  parseClockMinutes(e.Minutes),
			Points:         e.Points,
			TwoPtMade:      e.TwoPtMade,
			TwoPtAtt:       e.TwoPtAtt,
			ThreePtMade:    e.ThreePtMade,
			ThreePtAtt:     e.ThreePtAtt,
			FtMade:         e.FtMade,
			FtAtt:          e.FtAtt,
			ReboundsOff:    e.ReboundsOff,
			ReboundsDef:    e.ReboundsDef,
			Assists:        e.Assists,
			Turnovers:      e.Turnovers,
			Steals:         e.Steals,
			BlocksMade:     e.BlocksMade,
			FoulsCommitted: e.FoulsCommitted,
			Valuation:      e.Valuation,
			PlusMinus:      e.PlusMinus,
		})
	}

	return ImportPreview{
		MatchID: ic.match.ID,
		Lines:   lines,
	}, nil
}

func (s *ImportService) playersToMaterialize(ctx context.Context, ic importContext, lines []statline.Line) ([]player.Player, error) {
	seen := make(map[string]struct{}, 2)
	out := make([]player.Player, 0, 2)

	for _, l := range lines {
		if _, dup := seen[l.PlayerID]; dup {
			continue
		}

		var candidate player.Player
		switch {
		case player.IsBenchID(l.PlayerID):
			candidate = player.MaterializeBench(ic.mainTeam.ID)
		case player.IsTeamTotalID(l.PlayerID):
			opponentTeam, _, err := s.teamRepo.GetByID(ctx, ic.opponent)
			if err != nil {
				return nil, fmt.Errorf("get opponent team: %w", err)
			}
			candidate = player.MaterializeTeamTotal(ic.opponent, opponentTeam.Name)
		default:
			continue
		}
		seen[l.PlayerID] = struct{}{}

		_, exists, err := s.playerRepo.GetByID(ctx, candidate.ID)
		if err != nil {
			return nil, fmt.Errorf("check virtual player=%s: %w", candidate.ID, err)
		}
		if !exists {
			out = append(out, candidate)
		}
	}

	return out, nil
}

// Commit applies a reviewed preview: materializes missing virtual players,
// fully replaces the match's stat lines, and writes the reconciled score.
// Re-committing the same preview is idempotent and reuses virtual player ids.
func (s *ImportService) Commit(ctx context.Context, preview ImportPreview) error {
	ctx, span := startUsecaseSpan(ctx, "ImportService.Commit")
	defer span.End()

	ic, err := s.resolveContext(ctx, preview.MatchID)
	if err != nil {
		return err
	}
	if len(preview.Lines) == 0 && !preview.HasExplicitScore {
		return fmt.Errorf("%w: nothing to commit", ErrInvalidInput)
	}

	for _, candidate := range preview.PlayersToMaterialize {
		// The preview echoes back from the client, so the record is rebuilt
		// server-side; anything but this match's virtual ids is rejected.
		rebuilt, err := s.rebuildVirtualCandidate(ctx, ic, candidate.ID)
		if err != nil {
			return err
		}
		_, exists, err := s.playerRepo.GetByID(ctx, rebuilt.ID)
		if err != nil {
			return fmt.Errorf("check virtual player=%s: %w", rebuilt.ID, err)
		}
		if exists {
			continue
		}
		if err := s.playerRepo.Upsert(ctx, rebuilt); err != nil {
			return fmt.Errorf("materialize virtual player=%s: %w", rebuilt.ID, err)
		}
	}

	if err := s.statRepo.ReplaceForMatch(ctx, preview.MatchID, preview.Lines); err != nil {
		return fmt.Errorf("replace stat lines: %w", err)
	}

	updated := s.reconcileScore(ic.match, ic.mainTeam.ID, preview)
	if err := s.matchRepo.Upsert(ctx, updated); err != nil {
		return fmt.Errorf("update match score: %w", err)
	}

	s.reportCache.DeletePrefix(ctx, reportCachePrefix)

	s.logger.InfoContext(ctx, "stat import committed",
		"match_id", preview.MatchID,
		"lines", len(preview.Lines),
		"explicit_score", preview.HasExplicitScore,
	)
	return nil
}

// rebuildVirtualCandidate maps a materialization request onto the only two
// records a commit may create: the main team's bench aggregate and the
// opponent's team total.
func (s *ImportService) rebuildVirtualCandidate(ctx context.Context, ic importContext, id string) (player.Player, error) {
	switch id {
	case player.BenchID(ic.mainTeam.ID):
		return player.MaterializeBench(ic.mainTeam.ID), nil
	case player.TeamTotalID(ic.opponent):
		opponentTeam, _, err := s.teamRepo.GetByID(ctx, ic.opponent)
		if err != nil {
			return player.Player{}, fmt.Errorf("get opponent team: %w", err)
		}
		return player.MaterializeTeamTotal(ic.opponent, opponentTeam.Name), nil
	default:
		return player.Player{}, fmt.Errorf("%w: player=%s cannot be materialized for match=%s", ErrInvalidInput, id, ic.match.ID)
	}
}

// reconcileScore prefers the sheet's explicit totals. Without them the main
// side's score is derived by summing player points, excluding the opponent's
// team-aggregate row; the opponent's score comes from that aggregate row if
// present and otherwise keeps its previously stored value. The match is
// marked played either way.
func (s *ImportService) reconcileScore(m match.Match, mainTeamID string, preview ImportPreview) match.Match {
	if preview.HasExplicitScore {
		return match.Reconcile(m, mainTeamID, preview.Score)
	}

	mainPoints := 0
	var opponentPoints *int
	for _, l := range preview.Lines {
		if player.IsTeamTotalID(l.PlayerID) {
			pts := l.Points
			opponentPoints = &pts
			continue
		}
		mainPoints += l.Points
	}

	mainHome := m.HomeTeamID == mainTeamID || !m.Involves(mainTeamID)
	mainScore := mainPoints
	if mainHome {
		m.HomeScore = &mainScore
		if opponentPoints != nil {
			m.AwayScore = opponentPoints
		}
	} else {
		m.AwayScore = &mainScore
		if opponentPoints != nil {
			m.HomeScore = opponentPoints
		}
	}
	m.IsPlayed = true
	return m
}

// parseClockMinutes converts the vision service's "HH:MM:SS" clock into
// minutes. Plain numeric strings pass through unchanged.
func parseClockMinutes(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	parts := strings.Split(raw, ":")
	if len(parts) == 1 {
		v, err := strconv.ParseFloat(strings.ReplaceAll(parts[0], ",", "."), 64)
		if err != nil {
			return 0
		}
		return v
	}

	values := make([]float64, 0, 3)
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0
		}
		values = append(values, v)
	}
	switch len(values) {
	case 2: // MM:SS
		return values[0] + values[1]/60
	case 3: // HH:MM:SS
		return values[0]*60 + values[1] + values[2]/60
	default:
		return 0
	}
}
