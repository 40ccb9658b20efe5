package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/palabianco/basketstats/internal/domain/match"
	"github.com/palabianco/basketstats/internal/domain/player"
	"github.com/palabianco/basketstats/internal/domain/statline"
	"github.com/palabianco/basketstats/internal/domain/team"
	"github.com/palabianco/basketstats/internal/platform/cache"
	"github.com/palabianco/basketstats/internal/platform/logging"
)

const (
	recomputeStatusUpdated   = "updated"
	recomputeStatusUnchanged = "unchanged"
	recomputeStatusSkipped   = "skipped"
	recomputeStatusFailed    = "failed"

	defaultRecomputeWorkers = 4
	maxRecomputeWorkers     = 16
)

type RecomputeInput struct {
	LeagueID   string
	MaxWorkers int
	// DryRun computes scores without writing them back.
	DryRun bool
}

type RecomputeResult struct {
	MatchCount     int                   `json:"match_count"`
	UpdatedCount   int                   `json:"updated_count"`
	UnchangedCount int                   `json:"unchanged_count"`
	SkippedCount   int                   `json:"skipped_count"`
	FailedCount    int                   `json:"failed_count"`
	WorkerCount    int                   `json:"worker_count"`
	Matches        []RecomputeMatchState `json:"matches"`
}

type RecomputeMatchState struct {
	MatchID    string `json:"match_id"`
	Status     string `json:"status"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// RecomputeService re-derives season scores from stored stat lines, used
// after bulk roster edits or manual stat corrections. Matches carrying
// explicit quarter data keep it; only the score scalars are rebuilt.
type RecomputeService struct {
	matchRepo   match.Repository
	teamRepo    team.Repository
	statRepo    statline.Repository
	reportCache *cache.Store
	logger      *logging.Logger
}

func NewRecomputeService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	statRepo statline.Repository,
	reportCache *cache.Store,
	logger *logging.Logger,
) *RecomputeService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RecomputeService{
		matchRepo:   matchRepo,
		teamRepo:    teamRepo,
		statRepo:    statRepo,
		reportCache: reportCache,
		logger:      logger,
	}
}

func (s *RecomputeService) RecomputeScores(ctx context.Context, input RecomputeInput) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "RecomputeService.RecomputeScores")
	defer span.End()

	mainTeam, exists, err := s.teamRepo.GetMain(ctx)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("get main team: %w", err)
	}
	if !exists {
		return RecomputeResult{}, fmt.Errorf("%w: no main team configured", ErrInvalidInput)
	}

	var matches []match.Match
	leagueID := strings.TrimSpace(input.LeagueID)
	if leagueID == "" {
		matches, err = s.matchRepo.List(ctx)
	} else {
		matches, err = s.matchRepo.ListByLeague(ctx, leagueID)
	}
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list matches: %w", err)
	}

	targets := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.IsPlayed {
			targets = append(targets, m)
		}
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = defaultRecomputeWorkers
	}
	if workerCount > maxRecomputeWorkers {
		workerCount = maxRecomputeWorkers
	}

	result := RecomputeResult{
		MatchCount:  len(targets),
		WorkerCount: workerCount,
	}
	if len(targets) == 0 {
		return result, nil
	}

	states := make(chan RecomputeMatchState, len(targets))

	var updatedCount atomic.Int32
	var unchangedCount atomic.Int32
	var skippedCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, m := range targets {
		m := m
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			state := s.recomputeMatch(ctx, m, mainTeam.ID, input.DryRun)
			state.DurationMs = time.Since(start).Milliseconds()

			switch state.Status {
			case recomputeStatusUpdated:
				updatedCount.Add(1)
			case recomputeStatusUnchanged:
				unchangedCount.Add(1)
			case recomputeStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			states <- state
		}); err != nil {
			workers.Done()
			return RecomputeResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(states)

	for state := range states {
		result.Matches = append(result.Matches, state)
	}
	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].MatchID < result.Matches[j].MatchID
	})

	result.UpdatedCount = int(updatedCount.Load())
	result.UnchangedCount = int(unchangedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.FailedCount = int(failedCount.Load())

	if !input.DryRun && result.UpdatedCount > 0 {
		s.reportCache.DeletePrefix(ctx, reportCachePrefix)
	}

	s.logger.InfoContext(ctx, "score recompute finished",
		"matches", result.MatchCount,
		"updated", result.UpdatedCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func (s *RecomputeService) recomputeMatch(ctx context.Context, m match.Match, mainTeamID string, dryRun bool) RecomputeMatchState {
	state := RecomputeMatchState{MatchID: m.ID}

	lines, err := s.statRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		state.Status = recomputeStatusFailed
		state.Message = err.Error()
		return state
	}
	if len(lines) == 0 {
		state.Status = recomputeStatusSkipped
		state.Message = "no stat lines"
		return state
	}

	mainPoints := 0
	opponentPoints := 0
	hasOpponentTotal := false
	for _, l := range lines {
		if player.IsTeamTotalID(l.PlayerID) {
			opponentPoints = l.Points
			hasOpponentTotal = true
			continue
		}
		mainPoints += l.Points
	}

	mainHome := m.HomeTeamID == mainTeamID || !m.Involves(mainTeamID)
	updated := m
	if mainHome {
		updated.HomeScore = &mainPoints
		if hasOpponentTotal {
			updated.AwayScore = &opponentPoints
		}
	} else {
		updated.AwayScore = &mainPoints
		if hasOpponentTotal {
			updated.HomeScore = &opponentPoints
		}
	}

	if intPtrValue(updated.HomeScore) == intPtrValue(m.HomeScore) &&
		intPtrValue(updated.AwayScore) == intPtrValue(m.AwayScore) {
		state.Status = recomputeStatusUnchanged
	} else {
		state.Status = recomputeStatusUpdated
		if !dryRun {
			if err := s.matchRepo.Upsert(ctx, updated); err != nil {
				state.Status = recomputeStatusFailed
				state.Message = err.Error()
				return state
			}
		}
	}

	state.HomeScore = intPtrValue(updated.HomeScore)
	state.AwayScore = intPtrValue(updated.AwayScore)
	return state
}

func intPtrValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
