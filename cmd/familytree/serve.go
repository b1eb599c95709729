package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"familytree/internal/adapters"
	"familytree/internal/bootstrap"
	familyDelivery "familytree/internal/delivery/family"
	ownMiddleware "familytree/internal/middleware"
	"familytree/internal/repository"
	familyUC "familytree/internal/usecase/family"
)

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the family tree over HTTP and websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return serve(commandContext(cmd), cfg, logger)
		},
	}
}

func serve(parent context.Context, cfg *bootstrap.Config, logger *zap.SugaredLogger) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	go handleShutdown(ctx, cancel, logger)

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.close(context.Background(), logger)

	uc := familyUC.NewFamilyUseCase(logger, databaseAdapters.journal(logger), databaseAdapters.publisher(cfg, logger))
	logger.Infof("family tree session %s started", uc.SessionID())

	r := chi.NewRouter()
	if cfg.IsLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	familyDelivery.NewFamilyHandler(logger, uc).Routes(r)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("Failed to shut down server", "error", err)
		}
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorw("Failed to start server", "error", err)
		return err
	}
	return nil
}

// initDatabaseAdapters connects the adapters that are configured. A failing
// adapter is logged and left out, the tree works without it.
func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	result := &dataBaseAdapters{}

	if cfg.MongoUri != "" {
		mongoAdapter := adapters.NewAdapterMongo(cfg, log)
		if err := mongoAdapter.Init(ctx); err != nil {
			log.Errorw("Failed to initialize MongoDB, journal stays in memory", "error", err)
		} else {
			result.mongoAdapter = mongoAdapter
		}
	}

	if cfg.RedisUrl != "" {
		redisAdapter := adapters.NewAdapterRedis(cfg, log)
		if err := redisAdapter.Init(ctx); err != nil {
			log.Errorw("Failed to initialize Redis, tree events are not published", "error", err)
		} else {
			result.redisAdapter = redisAdapter
		}
	}

	return result
}

func (d *dataBaseAdapters) journal(log *zap.SugaredLogger) familyUC.Journal {
	if d.mongoAdapter == nil {
		return repository.NewMemoryJournal()
	}
	return repository.NewMongoJournal(d.mongoAdapter.Database, log)
}

func (d *dataBaseAdapters) publisher(cfg *bootstrap.Config, log *zap.SugaredLogger) familyUC.EventPublisher {
	if d.redisAdapter == nil {
		return repository.NopPublisher{}
	}
	return repository.NewRedisEventPublisher(d.redisAdapter.GetClient(), cfg.EventPrefix, log)
}

func (d *dataBaseAdapters) close(ctx context.Context, log *zap.SugaredLogger) {
	if d.mongoAdapter != nil {
		if err := d.mongoAdapter.Close(ctx); err != nil {
			log.Errorw("Failed to close MongoDB", "error", err)
		}
	}
	if d.redisAdapter != nil {
		if err := d.redisAdapter.Close(ctx); err != nil {
			log.Errorw("Failed to close Redis", "error", err)
		}
	}
}

func handleShutdown(ctx context.Context, cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case <-sigs:
		log.Info("Received shutdown signal")
		cancelFunc()
	case <-ctx.Done():
	}
}
