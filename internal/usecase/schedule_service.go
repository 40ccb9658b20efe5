package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/palabianco/basketstats/internal/domain/match"
	"github.com/palabianco/basketstats/internal/domain/statline"
	"github.com/palabianco/basketstats/internal/domain/team"
	"github.com/palabianco/basketstats/internal/platform/cache"
	idgen "github.com/palabianco/basketstats/internal/platform/id"
	"github.com/palabianco/basketstats/internal/platform/logging"
)

type ScheduleService struct {
	matchRepo   match.Repository
	teamRepo    team.Repository
	statRepo    statline.Repository
	idGen       idgen.Generator
	reportCache *cache.Store
	logger      *logging.Logger
}

func NewScheduleService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	statRepo statline.Repository,
	idGen idgen.Generator,
	reportCache *cache.Store,
	logger *logging.Logger,
) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScheduleService{
		matchRepo:   matchRepo,
		teamRepo:    teamRepo,
		statRepo:    statRepo,
		idGen:       idGen,
		reportCache: reportCache,
		logger:      logger,
	}
}

// ListMatches returns matches ordered by date, then time, then id. An empty
// leagueID lists the whole schedule.
func (s *ScheduleService) ListMatches(ctx context.Context, leagueID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "ScheduleService.ListMatches")
	defer span.End()

	var (
		matches []match.Match
		err     error
	)
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		matches, err = s.matchRepo.List(ctx)
	} else {
		matches, err = s.matchRepo.ListByLeague(ctx, leagueID)
	}
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Date != matches[j].Date {
			return matches[i].Date < matches[j].Date
		}
		if matches[i].Time != matches[j].Time {
			return matches[i].Time < matches[j].Time
		}
		return matches[i].ID < matches[j].ID
	})

	return matches, nil
}

func (s *ScheduleService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "ScheduleService.GetMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return item, nil
}

// SaveMatch creates or updates a schedule entry. Both sides must be known
// teams.
func (s *ScheduleService) SaveMatch(ctx context.Context, item match.Match) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "ScheduleService.SaveMatch")
	defer span.End()

	item.MatchNumber = strings.TrimSpace(item.MatchNumber)
	item.HomeTeamID = strings.TrimSpace(item.HomeTeamID)
	item.AwayTeamID = strings.TrimSpace(item.AwayTeamID)

	if item.ID == "" {
		newID, err := s.idGen.NewID()
		if err != nil {
			return match.Match{}, fmt.Errorf("generate match id: %w", err)
		}
		item.ID = newID
	}

	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, teamID := range []string{item.HomeTeamID, item.AwayTeamID} {
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return match.Match{}, fmt.Errorf("get team: %w", err)
		}
		if !exists {
			return match.Match{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}

	if err := s.matchRepo.Upsert(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("upsert match: %w", err)
	}
	s.reportCache.DeletePrefix(ctx, reportCachePrefix)

	return item, nil
}

// DeleteMatch removes the match and every stat line it owns.
func (s *ScheduleService) DeleteMatch(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "ScheduleService.DeleteMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	_, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	if err := s.statRepo.DeleteByMatch(ctx, matchID); err != nil {
		return fmt.Errorf("delete stat lines match=%s: %w", matchID, err)
	}
	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	s.reportCache.DeletePrefix(ctx, reportCachePrefix)

	return nil
}
