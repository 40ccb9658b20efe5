package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/palabianco/basketstats/internal/domain/league"
	"github.com/palabianco/basketstats/internal/domain/match"
	"github.com/palabianco/basketstats/internal/domain/player"
	"github.com/palabianco/basketstats/internal/domain/statline"
	"github.com/palabianco/basketstats/internal/domain/team"
	"github.com/palabianco/basketstats/internal/platform/cache"
	"github.com/palabianco/basketstats/internal/platform/logging"
)

const reportCachePrefix = "report:"

// BoxScoreRow pairs one stat line with the player it belongs to.
type BoxScoreRow struct {
	Player player.Player
	Line   statline.Line
}

// BoxScore is the single-game report for one side of a match.
type BoxScore struct {
	Match      match.Match
	League     league.League
	HomeTeam   team.Team
	AwayTeam   team.Team
	ViewTeamID string
	Rows       []BoxScoreRow
	Totals     statline.Line
}

// SeasonPlayerRow is one leaderboard entry of the season report.
type SeasonPlayerRow struct {
	Player player.Player
	Totals statline.Totals
}

// SeasonReport aggregates a team's played matches, optionally restricted to
// one league.
type SeasonReport struct {
	Team     team.Team
	LeagueID string

	Matches []match.Match
	Players []SeasonPlayerRow
	Total   statline.Totals

	Wins            int
	Losses          int
	PointsFor       int
	PointsAgainst   int
	QuartersFor     []int
	QuartersAgainst []int
}

type ReportService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	statRepo   statline.Repository
	store      *cache.Store
	logger     *logging.Logger
}

func NewReportService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	statRepo statline.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *ReportService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ReportService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		statRepo:   statRepo,
		store:      store,
		logger:     logger,
	}
}

// BoxScore builds the single-game report for the given side of a match.
// Rows are the viewed team's stat lines sorted by jersey number, closed by a
// field-wise totals row.
func (s *ReportService) BoxScore(ctx context.Context, matchID, viewTeamID string) (BoxScore, error) {
	ctx, span := startUsecaseSpan(ctx, "ReportService.BoxScore")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	viewTeamID = strings.TrimSpace(viewTeamID)
	if matchID == "" {
		return BoxScore{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if viewTeamID == "" {
		return BoxScore{}, fmt.Errorf("%w: view team id is required", ErrInvalidInput)
	}

	key := fmt.Sprintf("%sbox:%s:%s", reportCachePrefix, matchID, viewTeamID)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.buildBoxScore(ctx, matchID, viewTeamID)
	})
	if err != nil {
		return BoxScore{}, err
	}

	report, ok := value.(BoxScore)
	if !ok {
		return BoxScore{}, fmt.Errorf("unexpected cached box score type %T", value)
	}
	return report, nil
}

func (s *ReportService) buildBoxScore(ctx context.Context, matchID, viewTeamID string) (BoxScore, error) {
	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return BoxScore{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return BoxScore{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if !m.Involves(viewTeamID) {
		return BoxScore{}, fmt.Errorf("%w: team=%s does not play in match=%s", ErrInvalidInput, viewTeamID, matchID)
	}

	report := BoxScore{Match: m, ViewTeamID: viewTeamID}
	report.HomeTeam, _, err = s.teamRepo.GetByID(ctx, m.HomeTeamID)
	if err != nil {
		return BoxScore{}, fmt.Errorf("get home team: %w", err)
	}
	report.AwayTeam, _, err = s.teamRepo.GetByID(ctx, m.AwayTeamID)
	if err != nil {
		return BoxScore{}, fmt.Errorf("get away team: %w", err)
	}
	if m.LeagueID != "" {
		report.League, _, err = s.leagueRepo.GetByID(ctx, m.LeagueID)
		if err != nil {
			return BoxScore{}, fmt.Errorf("get league: %w", err)
		}
	}

	lines, err := s.statRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return BoxScore{}, fmt.Errorf("list stat lines: %w", err)
	}

	for _, l := range lines {
		owner, err := s.resolveOwner(ctx, l.PlayerID)
		if err != nil {
			return BoxScore{}, err
		}
		if owner.TeamID != viewTeamID {
			continue
		}
		report.Rows = append(report.Rows, BoxScoreRow{Player: owner, Line: l})
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Player.Number < report.Rows[j].Player.Number
	})

	report.Totals = statline.Line{MatchID: matchID}
	for _, row := range report.Rows {
		report.Totals.MinutesPlayed += row.Line.MinutesPlayed
		report.Totals.Points += row.Line.Points
		report.Totals.TwoPtMade += row.Line.TwoPtMade
		report.Totals.TwoPtAtt += row.Line.TwoPtAtt
		report.Totals.ThreePtMade += row.Line.ThreePtMade
		report.Totals.ThreePtAtt += row.Line.ThreePtAtt
		report.Totals.FtMade += row.Line.FtMade
		report.Totals.FtAtt += row.Line.FtAtt
		report.Totals.ReboundsOff += row.Line.ReboundsOff
		report.Totals.ReboundsDef += row.Line.ReboundsDef
		report.Totals.Assists += row.Line.Assists
		report.Totals.Turnovers += row.Line.Turnovers
		report.Totals.Steals += row.Line.Steals
		report.Totals.BlocksMade += row.Line.BlocksMade
		report.Totals.BlocksReceived += row.Line.BlocksReceived
		report.Totals.FoulsCommitted += row.Line.FoulsCommitted
		report.Totals.FoulsDrawn += row.Line.FoulsDrawn
		report.Totals.Valuation += row.Line.Valuation
		report.Totals.PlusMinus += row.Line.PlusMinus
	}

	return report, nil
}

// resolveOwner maps a stat-line player id onto the Player that owns it.
// Virtual ids may reference records that were never materialized; those fall
// back to a synthetic placeholder so reports stay renderable.
func (s *ReportService) resolveOwner(ctx context.Context, playerID string) (player.Player, error) {
	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player=%s: %w", playerID, err)
	}
	if exists {
		return p, nil
	}

	switch {
	case player.IsBenchID(playerID):
		return player.MaterializeBench(strings.TrimPrefix(playerID, "bench_")), nil
	case player.IsTeamTotalID(playerID):
		teamID := strings.TrimPrefix(playerID, "team_")
		owner, _, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return player.Player{}, fmt.Errorf("get team=%s: %w", teamID, err)
		}
		return player.MaterializeTeamTotal(teamID, owner.Name), nil
	default:
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
}

// SeasonReport aggregates every played match of the team, optionally
// filtered by league, into per-player season totals plus a team panel
// derived from the match records.
func (s *ReportService) SeasonReport(ctx context.Context, teamID, leagueID string) (SeasonReport, error) {
	ctx, span := startUsecaseSpan(ctx, "ReportService.SeasonReport")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	leagueID = strings.TrimSpace(leagueID)
	if teamID == "" {
		return SeasonReport{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	key := fmt.Sprintf("%sseason:%s:%s", reportCachePrefix, teamID, leagueID)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.buildSeasonReport(ctx, teamID, leagueID)
	})
	if err != nil {
		return SeasonReport{}, err
	}

	report, ok := value.(SeasonReport)
	if !ok {
		return SeasonReport{}, fmt.Errorf("unexpected cached season report type %T", value)
	}
	return report, nil
}

func (s *ReportService) buildSeasonReport(ctx context.Context, teamID, leagueID string) (SeasonReport, error) {
	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return SeasonReport{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return SeasonReport{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	allMatches, err := s.matchRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return SeasonReport{}, fmt.Errorf("list matches by team: %w", err)
	}

	report := SeasonReport{
		Team:            t,
		LeagueID:        leagueID,
		QuartersFor:     make([]int, match.QuarterCount),
		QuartersAgainst: make([]int, match.QuarterCount),
	}

	matchIDs := make([]string, 0, len(allMatches))
	for _, m := range allMatches {
		if !m.IsPlayed {
			continue
		}
		if leagueID != "" && m.LeagueID != leagueID {
			continue
		}
		report.Matches = append(report.Matches, m)
		matchIDs = append(matchIDs, m.ID)
		s.applyTeamPanel(&report, m, teamID)
	}

	sort.SliceStable(report.Matches, func(i, j int) bool {
		if report.Matches[i].Date != report.Matches[j].Date {
			return report.Matches[i].Date < report.Matches[j].Date
		}
		return report.Matches[i].ID < report.Matches[j].ID
	})

	lines, err := s.statRepo.ListByMatches(ctx, matchIDs)
	if err != nil {
		return SeasonReport{}, fmt.Errorf("list stat lines: %w", err)
	}

	owned := make([]statline.Line, 0, len(lines))
	ownerByID := make(map[string]player.Player, 16)
	for _, l := range lines {
		owner, ok := ownerByID[l.PlayerID]
		if !ok {
			owner, err = s.resolveOwner(ctx, l.PlayerID)
			if err != nil {
				return SeasonReport{}, err
			}
			ownerByID[l.PlayerID] = owner
		}
		// Bench and team-total aggregates stay on the box score but never
		// qualify for the season leaderboard.
		if owner.TeamID != teamID || owner.IsVirtual() {
			continue
		}
		owned = append(owned, l)
	}

	totals := statline.AggregateByPlayer(owned)
	report.Total = statline.Sum(totals)
	statline.SortByPointsDesc(totals)

	report.Players = make([]SeasonPlayerRow, 0, len(totals))
	for _, pt := range totals {
		report.Players = append(report.Players, SeasonPlayerRow{
			Player: ownerByID[pt.PlayerID],
			Totals: pt,
		})
	}

	return report, nil
}

// applyTeamPanel folds one played match into the wins/quarters panel.
// Matches missing a stored score count neither as win nor loss.
func (s *ReportService) applyTeamPanel(report *SeasonReport, m match.Match, teamID string) {
	var teamScore, oppScore *int
	var teamQuarters, oppQuarters []int

	if m.HomeTeamID == teamID {
		teamScore, oppScore = m.HomeScore, m.AwayScore
		teamQuarters, oppQuarters = m.HomeQuarters, m.AwayQuarters
	} else {
		teamScore, oppScore = m.AwayScore, m.HomeScore
		teamQuarters, oppQuarters = m.AwayQuarters, m.HomeQuarters
	}

	if teamScore == nil || oppScore == nil {
		return
	}
	report.PointsFor += *teamScore
	report.PointsAgainst += *oppScore
	if *teamScore > *oppScore {
		report.Wins++
	} else if *teamScore < *oppScore {
		report.Losses++
	}

	for i := 0; i < match.QuarterCount; i++ {
		if i < len(teamQuarters) {
			report.QuartersFor[i] += teamQuarters[i]
		}
		if i < len(oppQuarters) {
			report.QuartersAgainst[i] += oppQuarters[i]
		}
	}
}
