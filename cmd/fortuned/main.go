package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/fortunecookie/pkg/config"
	"github.com/dmitrymomot/fortunecookie/pkg/fortune"
	"github.com/dmitrymomot/fortunecookie/pkg/game"
	"github.com/dmitrymomot/fortunecookie/pkg/httpserver"
	"github.com/dmitrymomot/fortunecookie/pkg/i18n"
	"github.com/dmitrymomot/fortunecookie/pkg/jwt"
	"github.com/dmitrymomot/fortunecookie/pkg/logger"
	"github.com/dmitrymomot/fortunecookie/pkg/pg"
	"github.com/dmitrymomot/fortunecookie/pkg/redis"
	"github.com/dmitrymomot/fortunecookie/pkg/session"

	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load[appConfig]()
	if err != nil {
		slog.Error("failed to load configuration", logger.Error(err))
		os.Exit(1)
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithConfig(cfg.Log),
		logger.WithContextExtractors(
			logger.RequestIDExtractor(middleware.GetReqID),
			logger.LocaleExtractor(i18n.LocaleFromContext),
		),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("service stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	deps := dependencies{logger: log, checks: map[string]httpserver.Check{}}

	var extra []i18n.TranslationAdapter
	if cfg.CatalogDir != "" {
		extra = append(extra, i18n.NewDirectoryAdapter(cfg.CatalogDir))
	}

	if cfg.Postgres.Enabled() {
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer pool.Close()

		if cfg.Postgres.CreateSchema {
			if err := pg.EnsureTranslationsTable(ctx, pool, cfg.Postgres.TranslationsTable); err != nil {
				return err
			}
		}
		extra = append(extra, i18n.NewPostgresAdapter(pool, i18n.WithTable(cfg.Postgres.TranslationsTable)))
		deps.checks["postgres"] = pg.Healthcheck(pool)
	}

	catalog, err := fortune.NewDefaultCatalog(ctx, extra,
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(cfg.Fortune.Debug),
	)
	if err != nil {
		return err
	}
	deps.catalog = catalog

	sessionOpts := []session.Option{session.WithLogger(log)}
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		sessionOpts = append(sessionOpts, session.WithStore(
			session.NewRedisStore(client, session.WithRedisPrefix(cfg.Session.RedisPrefix)),
		))
		deps.checks["redis"] = redis.Healthcheck(client)
	}
	deps.sessions = session.NewFromConfig(cfg.Session, sessionOpts...)
	defer deps.sessions.Close()

	if cfg.JWT.Enabled() {
		svc, err := jwt.NewFromConfig(cfg.JWT)
		if err != nil {
			return err
		}
		deps.tokens = svc
	}

	questions, err := loadQuestions(cfg.QuizFile)
	if err != nil {
		return err
	}
	gameOpts := []game.Option{game.WithTranslator(catalog), game.WithLogger(log)}
	games := game.NewRegistry(gameOpts...)
	if len(questions) > 0 {
		games.Register(game.TypeQuiz, game.NewQuiz(questions, gameOpts...))
	}

	deps.enricher, err = fortune.New(cfg.Fortune, catalog,
		fortune.WithGames(games),
		fortune.WithLogger(log),
	)
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, newRouter(deps)); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
