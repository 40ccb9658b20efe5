package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/palabianco/basketstats/internal/domain/match"
	"github.com/palabianco/basketstats/internal/domain/player"
	"github.com/palabianco/basketstats/internal/domain/statline"
	"github.com/palabianco/basketstats/internal/domain/team"
	"github.com/palabianco/basketstats/internal/platform/cache"
	idgen "github.com/palabianco/basketstats/internal/platform/id"
	"github.com/palabianco/basketstats/internal/platform/logging"
)

// RosterService manages teams and their player rosters, including the
// single-main-team invariant and the cascades hanging off both entities.
type RosterService struct {
	teamRepo    team.Repository
	playerRepo  player.Repository
	matchRepo   match.Repository
	statRepo    statline.Repository
	idGen       idgen.Generator
	reportCache *cache.Store
	logger      *logging.Logger
}

func NewRosterService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	statRepo statline.Repository,
	idGen idgen.Generator,
	reportCache *cache.Store,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
		statRepo:    statRepo,
		idGen:       idGen,
		reportCache: reportCache,
		logger:      logger,
	}
}

func (s *RosterService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	// Main team leads the list, the rest stay name-ordered.
	sort.SliceStable(teams, func(i, j int) bool { return teams[i].IsMain && !teams[j].IsMain })

	return teams, nil
}

func (s *RosterService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return item, nil
}

// MainTeam returns the team carrying the isMain flag. Exactly one team can
// hold the flag at a time.
func (s *RosterService) MainTeam(ctx context.Context) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.MainTeam")
	defer span.End()

	item, exists, err := s.teamRepo.GetMain(ctx)
	if err != nil {
		return team.Team{}, fmt.Errorf("get main team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: no main team configured", ErrNotFound)
	}

	return item, nil
}

// SaveTeam creates or updates the team. Setting isMain clears the flag on
// every other team so the store never holds two main teams.
func (s *RosterService) SaveTeam(ctx context.Context, item team.Team) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.SaveTeam")
	defer span.End()

	item.Name = strings.TrimSpace(item.Name)
	item.Location = strings.TrimSpace(item.Location)

	if item.ID == "" {
		newID, err := s.idGen.NewID()
		if err != nil {
			return team.Team{}, fmt.Errorf("generate team id: %w", err)
		}
		item.ID = newID
	}

	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Upsert(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("upsert team: %w", err)
	}
	if item.IsMain {
		if err := s.teamRepo.UnsetMainExcept(ctx, item.ID); err != nil {
			return team.Team{}, fmt.Errorf("clear main flag on other teams: %w", err)
		}
	}
	s.reportCache.DeletePrefix(ctx, reportCachePrefix)

	return item, nil
}

// DeleteTeam removes the team, its players and their stat lines, every match
// the team appears in, and all stat lines of those matches.
func (s *RosterService) DeleteTeam(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "RosterService.DeleteTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("list players by team: %w", err)
	}
	for _, p := range players {
		if err := s.statRepo.DeleteByPlayer(ctx, p.ID); err != nil {
			return fmt.Errorf("delete stat lines player=%s: %w", p.ID, err)
		}
		if err := s.playerRepo.Delete(ctx, p.ID); err != nil {
			return fmt.Errorf("delete player=%s: %w", p.ID, err)
		}
	}

	matches, err := s.matchRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("list matches by team: %w", err)
	}
	for _, m := range matches {
		if err := s.statRepo.DeleteByMatch(ctx, m.ID); err != nil {
			return fmt.Errorf("delete stat lines match=%s: %w", m.ID, err)
		}
		if err := s.matchRepo.Delete(ctx, m.ID); err != nil {
			return fmt.Errorf("delete match=%s: %w", m.ID, err)
		}
	}

	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	s.reportCache.DeletePrefix(ctx, reportCachePrefix)

	s.logger.InfoContext(ctx, "team deleted",
		"team_id", teamID,
		"players_removed", len(players),
		"matches_removed", len(matches),
	)
	return nil
}

// ListRoster returns the team's real players sorted by jersey number.
// Synthetic bench/total records never show up in roster listings.
func (s *RosterService) ListRoster(ctx context.Context, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.ListRoster")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}

	roster := make([]player.Player, 0, len(players))
	for _, p := range players {
		if p.IsVirtual() {
			continue
		}
		roster = append(roster, p)
	}
	sort.SliceStable(roster, func(i, j int) bool { return roster[i].Number < roster[j].Number })

	return roster, nil
}

// SavePlayer creates or updates a roster player. Jersey numbers up to 900
// must be unique within the team; sentinel numbers are reserved for the
// import pipeline and rejected here.
func (s *RosterService) SavePlayer(ctx context.Context, item player.Player) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.SavePlayer")
	defer span.End()

	item.Name = strings.TrimSpace(item.Name)
	item.TeamID = strings.TrimSpace(item.TeamID)

	if item.Number > player.MaxRosterNumber {
		return player.Player{}, fmt.Errorf("%w: numbers above %d are reserved", ErrInvalidInput, player.MaxRosterNumber)
	}

	if item.ID == "" {
		newID, err := s.idGen.NewID()
		if err != nil {
			return player.Player{}, fmt.Errorf("generate player id: %w", err)
		}
		item.ID = newID
	}

	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, teamExists, err := s.teamRepo.GetByID(ctx, item.TeamID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get team: %w", err)
	}
	if !teamExists {
		return player.Player{}, fmt.Errorf("%w: team=%s", ErrNotFound, item.TeamID)
	}

	existing, exists, err := s.playerRepo.GetByTeamAndNumber(ctx, item.TeamID, item.Number)
	if err != nil {
		return player.Player{}, fmt.Errorf("check jersey number: %w", err)
	}
	if exists && existing.ID != item.ID {
		return player.Player{}, fmt.Errorf("%w: number %d is already taken on team=%s", ErrConflict, item.Number, item.TeamID)
	}

	if err := s.playerRepo.Upsert(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("upsert player: %w", err)
	}
	s.reportCache.DeletePrefix(ctx, reportCachePrefix)

	return item, nil
}

// DeletePlayer removes the player and every stat line referencing them.
func (s *RosterService) DeletePlayer(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "RosterService.DeletePlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	_, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	if err := s.statRepo.DeleteByPlayer(ctx, playerID); err != nil {
		return fmt.Errorf("delete stat lines player=%s: %w", playerID, err)
	}
	if err := s.playerRepo.Delete(ctx, playerID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	s.reportCache.DeletePrefix(ctx, reportCachePrefix)

	return nil
}
