package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/golazozone/prediction-league/internal/config"
	"github.com/golazozone/prediction-league/internal/domain/audit"
	"github.com/golazozone/prediction-league/internal/domain/friendgroup"
	"github.com/golazozone/prediction-league/internal/domain/leaderboard"
	"github.com/golazozone/prediction-league/internal/domain/match"
	"github.com/golazozone/prediction-league/internal/domain/prediction"
	"github.com/golazozone/prediction-league/internal/domain/result"
	"github.com/golazozone/prediction-league/internal/domain/scoring"
	"github.com/golazozone/prediction-league/internal/domain/team"
	"github.com/golazozone/prediction-league/internal/infrastructure/account/authsvc"
	"github.com/golazozone/prediction-league/internal/infrastructure/jobqueue"
	"github.com/golazozone/prediction-league/internal/infrastructure/notify"
	cacherepo "github.com/golazozone/prediction-league/internal/infrastructure/repository/cache"
	"github.com/golazozone/prediction-league/internal/infrastructure/repository/memory"
	"github.com/golazozone/prediction-league/internal/infrastructure/repository/postgres"
	"github.com/golazozone/prediction-league/internal/interfaces/httpapi"
	basecache "github.com/golazozone/prediction-league/internal/platform/cache"
	idgen "github.com/golazozone/prediction-league/internal/platform/id"
	"github.com/golazozone/prediction-league/internal/platform/logging"
	"github.com/golazozone/prediction-league/internal/platform/resilience"
	"github.com/golazozone/prediction-league/internal/usecase"
)

// App bundles the HTTP server and the background job scheduler with the
// resources they share.
type App struct {
	Server    *http.Server
	Scheduler *Scheduler

	db *sqlx.DB
}

type repositories struct {
	teams       team.Repository
	matches     match.Repository
	predictions prediction.Repository
	results     result.Repository
	configs     scoring.ConfigRepository
	scores      scoring.ScoreRepository
	leaderboard leaderboard.Repository
	groups      friendgroup.Repository
	audits      audit.Repository
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, db, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.matches = cacherepo.NewMatchRepository(repos.matches, store)
		repos.leaderboard = cacherepo.NewLeaderboardRepository(repos.leaderboard, store)
		repos.configs = cacherepo.NewScoringConfigRepository(repos.configs, store)
		repos.groups = cacherepo.NewFriendGroupRepository(repos.groups, store)
	}

	idGenerator := idgen.NewRandomGenerator()

	// Postgres groups the ingestion writes into one transaction; the
	// in-memory backend has nothing to roll back.
	var txRunner usecase.TxRunner
	if db != nil {
		txRunner = postgres.NewTxManager(db)
	}

	leaderboardSvc := usecase.NewLeaderboardService(repos.leaderboard, repos.scores, repos.groups, logger)
	matchSvc := usecase.NewMatchService(repos.matches, repos.teams, repos.results)
	predictionSvc := usecase.NewPredictionService(
		repos.matches,
		repos.predictions,
		repos.results,
		repos.scores,
		leaderboardSvc,
		idGenerator,
	)
	resultSvc := usecase.NewResultService(
		repos.matches,
		repos.results,
		repos.predictions,
		repos.configs,
		repos.scores,
		repos.leaderboard,
		repos.groups,
		repos.audits,
		leaderboardSvc,
		txRunner,
		idGenerator,
		logger,
	)
	scoringConfigSvc := usecase.NewScoringConfigService(repos.configs, repos.audits, idGenerator)
	lockSvc := usecase.NewLockService(repos.matches, repos.predictions, logger)

	notifier := usecase.NewNoopNotifier()
	if cfg.NotifierEnabled {
		notifier = notify.NewClient(notify.ClientConfig{
			BaseURL: cfg.NotifierBaseURL,
			APIKey:  cfg.NotifierAPIKey,
			Timeout: cfg.NotifierTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.NotifierCircuitEnabled,
				FailureThreshold: cfg.NotifierCircuitFailureCount,
				OpenTimeout:      cfg.NotifierCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.NotifierCircuitHalfOpenMaxReq,
			},
		}, logger)
	}
	reminderSvc := usecase.NewReminderService(
		repos.matches,
		repos.predictions,
		repos.leaderboard,
		notifier,
		logger,
		cfg.ReminderLead,
		cfg.JobReminderInterval,
	)

	authClient := authsvc.NewClient(
		&http.Client{Timeout: cfg.AuthTimeout},
		cfg.AuthBaseURL,
		cfg.AuthIntrospectPath,
		cfg.AuthAdminKey,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.AuthCircuitEnabled,
			FailureThreshold: cfg.AuthCircuitFailureCount,
			OpenTimeout:      cfg.AuthCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AuthCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(
		matchSvc,
		predictionSvc,
		resultSvc,
		scoringConfigSvc,
		leaderboardSvc,
		lockSvc,
		reminderSvc,
		logger,
	)
	router := httpapi.NewRouter(
		handler,
		authClient,
		logger,
		cfg.SwaggerEnabled,
		cfg.CORSAllowedOrigins,
		cfg.InternalJobToken,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var publisher JobPublisher
	if cfg.QStashEnabled {
		publisher = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	scheduler := NewScheduler(lockSvc, reminderSvc, publisher, logger, SchedulerConfig{
		LockInterval:     cfg.JobLockInterval,
		ReminderInterval: cfg.JobReminderInterval,
	})

	return &App{
		Server:    server,
		Scheduler: scheduler,
		db:        db,
	}, nil
}

// Close releases resources not owned by the HTTP server.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("storage backend", "driver", "memory", "reason", "DB_URL empty")

		groups, memberships := memory.SeedFriendGroups()
		return repositories{
			teams:       memory.NewTeamRepository(memory.SeedTeams()),
			matches:     memory.NewMatchRepository(memory.SeedMatches()),
			predictions: memory.NewPredictionRepository(),
			results:     memory.NewResultRepository(),
			configs:     memory.NewScoringConfigRepository(),
			scores:      memory.NewPredictionScoreRepository(),
			leaderboard: memory.NewLeaderboardRepository(),
			groups:      memory.NewFriendGroupRepository(groups, memberships),
			audits:      memory.NewAuditRepository(),
		}, nil, nil
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := postgres.BootstrapSeed(context.Background(), db); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
	}
	logger.Info("storage backend", "driver", "postgres", "db", dbNameFromURL(dbURL))

	return repositories{
		teams:       postgres.NewTeamRepository(db),
		matches:     postgres.NewMatchRepository(db),
		predictions: postgres.NewPredictionRepository(db),
		results:     postgres.NewResultRepository(db),
		configs:     postgres.NewScoringConfigRepository(db),
		scores:      postgres.NewPredictionScoreRepository(db),
		leaderboard: postgres.NewLeaderboardRepository(db),
		groups:      postgres.NewFriendGroupRepository(db),
		audits:      postgres.NewAuditRepository(db),
	}, db, nil
}
