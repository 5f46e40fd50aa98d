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
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"goban/internal/adapters"
	"goban/internal/bootstrap"
	authDelivery "goban/internal/delivery/auth"
	matchDelivery "goban/internal/delivery/match"
	ownMiddleware "goban/internal/middleware"
	repo "goban/internal/repository"
	authUC "goban/internal/usecase/auth"
	matchuc "goban/internal/usecase/match"
)

type mainDeliveryHandler struct {
	auth  *authDelivery.AuthHandler
	match *matchDelivery.MatchHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.mongoAdapter.Close(context.Background())
	defer databaseAdapters.redisAdapter.Close(context.Background())

	suggester, closeSuggester := initSuggester(logger, *cfg)
	defer closeSuggester()

	hub := matchDelivery.NewHub(logger)
	defer hub.Close()

	matchUC := matchuc.NewMatchUseCase(
		repo.NewMongoMatchStorage(databaseAdapters.mongoAdapter.Database, logger, cfg.RequestTimeout),
		repo.NewRedisMatchCache(databaseAdapters.redisAdapter.GetClient(), cfg.MatchCacheTTL),
		hub,
		suggester,
		*cfg,
		logger,
	)
	sessions := repo.NewSessionRedisStorage(databaseAdapters.redisAdapter.GetClient(), logger)
	authHandler := authDelivery.NewAuthHandler(authUC.NewAuthUseCase(sessions), logger, !cfg.IsLocalCors)
	handlers := &mainDeliveryHandler{
		auth:  authHandler,
		match: matchDelivery.NewMatchHandler(*cfg, logger, matchUC, authHandler, hub),
	}

	r := chi.NewRouter()
	handlers.Router(r, cfg.IsLocalCors)

	server := &http.Server{Addr: cfg.ServerPort, Handler: r}
	go func() {
		<-ctx.Done()
		logger.Info("Received shutdown signal")
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("graceful shutdown failed: %v", err)
		}
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/login", h.auth.Login)
	r.Delete("/logout", h.auth.Logout)
	r.Get("/me", h.auth.Me)
	h.match.Routes(r)
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	mongoAdapter := adapters.NewAdapterMongo(cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatal("Не удалось инициализировать MongoDB", zap.Error(err))
	}

	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatal("Не удалось инициализировать Redis", zap.Error(err))
	}

	log.Info("Адаптеры баз данных инициализированы")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

// initSuggester без SUGGEST_GRPC_ADDR возвращает nil: подсказки выключены.
func initSuggester(log *zap.SugaredLogger, cfg bootstrap.Config) (matchuc.Suggester, func()) {
	if cfg.SuggestGrpcAddr == "" {
		log.Info("SUGGEST_GRPC_ADDR is empty, move suggestions are disabled")
		return nil, func() {}
	}

	conn, err := grpc.NewClient(cfg.SuggestGrpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to dial grpc", zap.Error(err))
	}
	return repo.NewGrpcSuggestClient(conn, log, cfg.RequestTimeout), func() { conn.Close() }
}
