package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/palabianco/basketstats/external/vision"
	"github.com/palabianco/basketstats/internal/config"
	"github.com/palabianco/basketstats/internal/domain/league"
	"github.com/palabianco/basketstats/internal/domain/match"
	"github.com/palabianco/basketstats/internal/domain/player"
	"github.com/palabianco/basketstats/internal/domain/settings"
	"github.com/palabianco/basketstats/internal/domain/statline"
	"github.com/palabianco/basketstats/internal/domain/team"
	"github.com/palabianco/basketstats/internal/infrastructure/repository/memory"
	"github.com/palabianco/basketstats/internal/infrastructure/repository/postgres"
	"github.com/palabianco/basketstats/internal/interfaces/httpapi"
	"github.com/palabianco/basketstats/internal/platform/cache"
	idgen "github.com/palabianco/basketstats/internal/platform/id"
	"github.com/palabianco/basketstats/internal/platform/logging"
	"github.com/palabianco/basketstats/internal/platform/resilience"
	"github.com/palabianco/basketstats/internal/usecase"
)

type repositories struct {
	leagues     league.Repository
	teams       team.Repository
	players     player.Repository
	matches     match.Repository
	statLines   statline.Repository
	appSettings settings.Repository
}

// NewHTTPServer wires storage, services and the HTTP router. The returned
// cleanup func releases storage resources and is safe to call once.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var reportCache *cache.Store
	if cfg.CacheEnabled {
		reportCache = cache.NewStore(cfg.CacheTTL)
	}

	var analyzer usecase.ScoreSheetAnalyzer
	if cfg.VisionEnabled {
		analyzer = vision.NewClient(vision.ClientConfig{
			BaseURL:    cfg.VisionBaseURL,
			APIKey:     cfg.VisionAPIKey,
			Model:      cfg.VisionModel,
			Timeout:    cfg.VisionTimeout,
			MaxRetries: cfg.VisionMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.VisionCircuitEnabled,
				FailureThreshold: cfg.VisionCircuitFailureCount,
				OpenTimeout:      cfg.VisionCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.VisionCircuitHalfOpenReq,
			},
		})
	}

	idGen := idgen.NewRandomGenerator()

	leagueSvc := usecase.NewLeagueService(repos.leagues, repos.teams, repos.matches, repos.statLines, idGen, reportCache, logger)
	rosterSvc := usecase.NewRosterService(repos.teams, repos.players, repos.matches, repos.statLines, idGen, reportCache, logger)
	scheduleSvc := usecase.NewScheduleService(repos.matches, repos.teams, repos.statLines, idGen, reportCache, logger)
	importSvc := usecase.NewImportService(repos.matches, repos.teams, repos.players, repos.statLines, analyzer, reportCache, logger)
	reportSvc := usecase.NewReportService(repos.leagues, repos.teams, repos.players, repos.matches, repos.statLines, reportCache, logger)
	recomputeSvc := usecase.NewRecomputeService(repos.matches, repos.teams, repos.statLines, reportCache, logger)
	settingsSvc := usecase.NewSettingsService(repos.appSettings)

	handler := httpapi.NewHandler(leagueSvc, rosterSvc, scheduleSvc, importSvc, reportSvc, recomputeSvc, settingsSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		logger.Info("storage ready", "driver", config.StoragePostgres, "database", dbNameFromURL(cfg.DBURL))

		return repositories{
			leagues:     postgres.NewLeagueRepository(db),
			teams:       postgres.NewTeamRepository(db),
			players:     postgres.NewPlayerRepository(db),
			matches:     postgres.NewMatchRepository(db),
			statLines:   postgres.NewStatLineRepository(db),
			appSettings: postgres.NewSettingsRepository(db),
		}, db.Close, nil
	case config.StorageMemory:
		logger.Info("storage ready", "driver", config.StorageMemory)

		return repositories{
			leagues:     memory.NewLeagueRepository(memory.SeedLeagues()),
			teams:       memory.NewTeamRepository(memory.SeedTeams()),
			players:     memory.NewPlayerRepository(memory.SeedPlayers()),
			matches:     memory.NewMatchRepository(memory.SeedMatches()),
			statLines:   memory.NewStatLineRepository(nil),
			appSettings: memory.NewSettingsRepository(memory.SeedSettings()),
		}, func() error { return nil }, nil
	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
