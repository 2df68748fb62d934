package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/openfantasy/draft-league/external/statsfeed"
	"github.com/openfantasy/draft-league/internal/config"
	"github.com/openfantasy/draft-league/internal/domain/draft"
	"github.com/openfantasy/draft-league/internal/domain/gameweek"
	"github.com/openfantasy/draft-league/internal/domain/lineup"
	"github.com/openfantasy/draft-league/internal/domain/manager"
	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/squad"
	feeddomain "github.com/openfantasy/draft-league/internal/domain/statsfeed"
	"github.com/openfantasy/draft-league/internal/domain/transfer"
	"github.com/openfantasy/draft-league/internal/infrastructure/repository/memory"
	"github.com/openfantasy/draft-league/internal/infrastructure/repository/postgres"
	"github.com/openfantasy/draft-league/internal/interfaces/httpapi"
	idgen "github.com/openfantasy/draft-league/internal/platform/id"
	"github.com/openfantasy/draft-league/internal/platform/logging"
	"github.com/openfantasy/draft-league/internal/platform/resilience"
	"github.com/openfantasy/draft-league/internal/usecase"
)

// Application owns the wired service graph and its shutdown handles.
type Application struct {
	Config    config.Config
	Logger    *logging.Logger
	Server    *http.Server
	Ingestion *usecase.IngestionService

	db *sqlx.DB
}

type repositories struct {
	manager  manager.Repository
	player   player.Repository
	squad    squad.Repository
	draft    draft.Repository
	lineup   lineup.Repository
	transfer transfer.Repository
	gameweek gameweek.Repository
	stats    feeddomain.Repository
}

func New(cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	app := &Application{Config: cfg, Logger: logger}

	repos, err := app.buildRepositories()
	if err != nil {
		return nil, err
	}

	feedClient := statsfeed.NewClient(statsfeed.ClientConfig{
		FeedURL:    cfg.StatsFeedURL,
		Token:      cfg.StatsFeedToken,
		Timeout:    cfg.StatsFeedTimeout,
		MaxRetries: cfg.StatsFeedMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StatsFeedCircuitEnabled,
			FailureThreshold: cfg.StatsFeedCircuitFailureCount,
			OpenTimeout:      cfg.StatsFeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StatsFeedCircuitHalfOpenMaxReq,
		},
	})

	leagueSvc := usecase.NewLeagueService(repos.manager, repos.gameweek, idgen.NewPrefixedGenerator("mgr"), logger)
	draftSvc := usecase.NewDraftService(repos.draft, repos.squad, repos.manager, repos.player, repos.gameweek, logger)
	lineupSvc := usecase.NewLineupService(repos.lineup, repos.squad, repos.player, repos.gameweek, logger)
	transferSvc := usecase.NewTransferService(repos.transfer, repos.squad, repos.player, repos.gameweek, logger)
	gameweekSvc := usecase.NewGameweekService(
		repos.gameweek,
		repos.lineup,
		repos.transfer,
		repos.stats,
		repos.manager,
		repos.squad,
		usecase.NormalizeMissingLineupPolicy(cfg.MissingLineupPolicy),
		logger,
	)
	playerSvc := usecase.NewPlayerService(repos.player, repos.stats)
	ingestionSvc := usecase.NewIngestionService(feedClient, repos.player, repos.stats, cfg.IngestionWorkers, logger)

	handler := httpapi.NewHandler(leagueSvc, draftSvc, lineupSvc, transferSvc, gameweekSvc, playerSvc, ingestionSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	app.Server = server
	app.Ingestion = ingestionSvc

	return app, nil
}

// buildRepositories picks the storage backend: postgres when DB_URL is set,
// a seeded in-memory store otherwise.
func (a *Application) buildRepositories() (repositories, error) {
	if a.Config.DBURL == "" {
		a.Logger.Info("storage backend", "driver", "memory", "reason", "DB_URL empty")

		statsRepo := memory.NewStatsFeedRepository()
		if err := statsRepo.Put(context.Background(), memory.SeedSnapshot(time.Now().UTC())); err != nil {
			return repositories{}, fmt.Errorf("seed statistics snapshot: %w", err)
		}

		return repositories{
			manager:  memory.NewManagerRepository(memory.SeedManagers()),
			player:   memory.NewPlayerRepository(memory.SeedPlayers()),
			squad:    memory.NewSquadRepository(),
			draft:    memory.NewDraftRepository(),
			lineup:   memory.NewLineupRepository(),
			transfer: memory.NewTransferRepository(),
			gameweek: memory.NewGameweekRepository(),
			stats:    statsRepo,
		}, nil
	}

	db, err := openDatabase(a.Config.DBURL)
	if err != nil {
		return repositories{}, err
	}
	a.db = db
	a.Logger.Info("storage backend", "driver", "postgres", "db", dbNameFromURL(a.Config.DBURL))

	return repositories{
		manager:  postgres.NewManagerRepository(db),
		player:   postgres.NewPlayerRepository(db),
		squad:    postgres.NewSquadRepository(db),
		draft:    postgres.NewDraftRepository(db),
		lineup:   postgres.NewLineupRepository(db),
		transfer: postgres.NewTransferRepository(db),
		gameweek: postgres.NewGameweekRepository(db),
		stats:    postgres.NewStatsFeedRepository(db),
	}, nil
}

// StartBackgroundJobs launches the periodic statistics refresh when enabled.
func (a *Application) StartBackgroundJobs(ctx context.Context) {
	if !a.Config.StatsRefreshEnabled {
		a.Logger.Info("background statistics refresh disabled", "reason", "STATS_REFRESH_ENABLED=false")
		return
	}

	a.Logger.Info("background statistics refresh starting", "interval", a.Config.StatsRefreshInterval.String())
	go a.Ingestion.RunEvery(ctx, a.Config.StatsRefreshInterval)
}

func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
