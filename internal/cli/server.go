package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"geoquiz-service/internal/app"
	"geoquiz-service/internal/catalog"
	"geoquiz-service/internal/config"
	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/infra/memory"
	"geoquiz-service/internal/infra/postgres"
	infraredis "geoquiz-service/internal/infra/redis"
	"geoquiz-service/internal/logging"
	transport "geoquiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	if err := catalog.Validate(); err != nil {
		return err
	}
	defaultDifficulty, err := domain.ParseDifficulty(cfg.Quiz.DefaultDifficulty)
	if err != nil {
		return fmt.Errorf("quiz.defaultDifficulty: %w", err)
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		if err := runMigrations(ctx, cfg, log); err != nil {
			return err
		}
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	deps := wire(cfg, log, pool, redisClient)
	sampler := app.NewSampler(deps.landmarks, cfg.Quiz.Seed)
	service := app.NewQuizService(deps.sessions, app.NewController(sampler),
		app.WithRoundRecorder(deps.rounds),
		app.WithLogger(log),
		app.WithDefaultDifficulty(defaultDifficulty),
	)

	handler := transport.NewRouter(
		transport.NewWSHandler(service, log),
		transport.NewAPI(service, deps.landmarks),
		log,
	)

	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", finalPort).
			Bool("redis", redisClient != nil).
			Bool("postgres", pool != nil).
			Msg("starting geoquiz service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info().Msg("shutting down server")
	case <-ctx.Done():
		log.Info().Msg("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

type dependencies struct {
	landmarks app.LandmarkRepository
	sessions  app.SessionRepository
	rounds    app.RoundRecorder
}

// wire picks Postgres and Redis backed adapters when configured and falls
// back to the in-process ones otherwise.
func wire(cfg config.Config, log zerolog.Logger, pool *pgxpool.Pool, redisClient *redis.Client) dependencies {
	var loader memory.LandmarkLoader = memory.NewCatalogLoader()
	var rounds app.RoundRecorder = memory.NewRoundLog()
	if pool != nil {
		loader = postgres.NewLandmarkLoader(pool)
		rounds = postgres.NewRoundRecorder(pool)
	}

	landmarkTTL := config.TTLDuration(cfg.Quiz.LandmarkTTL, 10*time.Minute)
	sessionTTL := config.TTLDuration(cfg.Quiz.SessionTTL, 30*time.Minute)

	deps := dependencies{rounds: rounds}
	if redisClient != nil {
		deps.landmarks = infraredis.NewLandmarkRepository(redisClient, loader, landmarkTTL, infraredis.WithLandmarkLogger(log))
		deps.sessions = infraredis.NewSessionStore(redisClient, config.TTLDuration(cfg.Redis.TTL, sessionTTL))
	} else {
		deps.landmarks = memory.NewLandmarkRepository(loader, landmarkTTL)
		deps.sessions = memory.NewSessionStore(sessionTTL)
	}
	return deps
}
