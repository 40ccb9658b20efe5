package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/palabianco/basketstats/internal/domain/league"
	"github.com/palabianco/basketstats/internal/domain/match"
	"github.com/palabianco/basketstats/internal/domain/statline"
	"github.com/palabianco/basketstats/internal/domain/team"
	"github.com/palabianco/basketstats/internal/platform/cache"
	idgen "github.com/palabianco/basketstats/internal/platform/id"
	"github.com/palabianco/basketstats/internal/platform/logging"
)

type LeagueService struct {
	leagueRepo  league.Repository
	teamRepo    team.Repository
	matchRepo   match.Repository
	statRepo    statline.Repository
	idGen       idgen.Generator
	reportCache *cache.Store
	logger      *logging.Logger
}

func NewLeagueService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	statRepo statline.Repository,
	idGen idgen.Generator,
	reportCache *cache.Store,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo:  leagueRepo,
		teamRepo:    teamRepo,
		matchRepo:   matchRepo,
		statRepo:    statRepo,
		idGen:       idGen,
		reportCache: reportCache,
		logger:      logger,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.GetLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return item, nil
}

// SaveLeague creates the league when the id is blank and updates it
// otherwise.
func (s *LeagueService) SaveLeague(ctx context.Context, item league.League) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.SaveLeague")
	defer span.End()

	item.Name = strings.TrimSpace(item.Name)
	item.Season = strings.TrimSpace(item.Season)

	if item.ID == "" {
		newID, err := s.idGen.NewID()
		if err != nil {
			return league.League{}, fmt.Errorf("generate league id: %w", err)
		}
		item.ID = newID
	}

	if err := item.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.leagueRepo.Upsert(ctx, item); err != nil {
		return league.League{}, fmt.Errorf("upsert league: %w", err)
	}
	s.reportCache.DeletePrefix(ctx, reportCachePrefix)

	return item, nil
}

// DeleteLeague removes the league, its matches with their stat lines, and
// strips the league id from every team's membership list.
func (s *LeagueService) DeleteLeague(ctx context.Context, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.DeleteLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	matches, err := s.matchRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("list matches by league: %w", err)
	}
	for _, m := range matches {
		if err := s.statRepo.DeleteByMatch(ctx, m.ID); err != nil {
			return fmt.Errorf("delete stat lines match=%s: %w", m.ID, err)
		}
		if err := s.matchRepo.Delete(ctx, m.ID); err != nil {
			return fmt.Errorf("delete match=%s: %w", m.ID, err)
		}
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	for _, t := range teams {
		if !t.InLeague(leagueID) {
			continue
		}
		kept := make([]string, 0, len(t.LeagueIDs))
		for _, id := range t.LeagueIDs {
			if id != leagueID {
				kept = append(kept, id)
			}
		}
		t.LeagueIDs = kept
		if err := s.teamRepo.Upsert(ctx, t); err != nil {
			return fmt.Errorf("strip league from team=%s: %w", t.ID, err)
		}
	}

	if err := s.leagueRepo.Delete(ctx, leagueID); err != nil {
		return fmt.Errorf("delete league: %w", err)
	}
	s.reportCache.DeletePrefix(ctx, reportCachePrefix)

	s.logger.InfoContext(ctx, "league deleted",
		"league_id", leagueID,
		"matches_removed", len(matches),
	)
	return nil
}
