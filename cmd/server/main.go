package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload" // load .env before config is read
	"github.com/labstack/echo/v4"         // Echo web framework
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-tickets/internal/config"
	"github.com/iliyamo/cinema-tickets/internal/database"
	"github.com/iliyamo/cinema-tickets/internal/handler"
	"github.com/iliyamo/cinema-tickets/internal/logger"
	"github.com/iliyamo/cinema-tickets/internal/middleware"
	"github.com/iliyamo/cinema-tickets/internal/queue"
	"github.com/iliyamo/cinema-tickets/internal/repository"
	"github.com/iliyamo/cinema-tickets/internal/router"
	"github.com/iliyamo/cinema-tickets/internal/service"
)

func main() {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.Init(cfg.Env); err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()
	log := zap.L()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("database migrate failed", zap.Error(err))
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		log.Warn("redis unavailable; cache and rate limiting disabled", zap.String("addr", cfg.Redis.Addr))
	} else {
		defer rdb.Close()
	}

	// ---- repositories ----
	ticketRepo := repository.NewTicketRepo(db)
	sessionRepo := repository.NewFilmSessionRepo(db)
	filmRepo := repository.NewFilmRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	hallRepo := repository.NewHallRepo(db)
	fileRepo := repository.NewFileRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	// ---- services ----
	films := service.NewFilmService(filmRepo, genreRepo)
	sessions := service.NewFilmSessionService(sessionRepo, films)
	tickets := service.NewTicketService(ticketRepo, sessionRepo, films)
	halls := service.NewHallService(hallRepo)
	users := service.NewUserService(userRepo, cfg.BcryptCost)
	files := service.NewFileService(fileRepo, cfg.Files.Path)

	var events handler.EventPublisher
	if cfg.Rabbit.URL != "" {
		events = queue.NewPublisher(cfg.Rabbit.URL, cfg.Rabbit.Queue)
		if cfg.Rabbit.Consumer {
			consumer := queue.NewConsumer(cfg.Rabbit.URL, cfg.Rabbit.Queue, cfg.Rabbit.LogDir)
			go func() {
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("ticket consumer stopped", zap.Error(err))
				}
			}()
		}
	}

	// ---- HTTP ----
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = handler.NewRequestValidator()
	e.Use(echoMw.Recover())
	e.Use(middleware.RequestLogger())

	health := &handler.HealthHandler{Deps: map[string]handler.Pinger{"mysql": db}}
	if rdb != nil {
		health.Deps["redis"] = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	fileHandler := handler.NewFileHandler(files)

	router.RegisterRoutes(e, health)
	v1 := router.V1(e)
	router.RegisterAuth(v1, handler.NewAuthHandler(cfg, users, tokenRepo), cfg.JWTSecret)
	router.RegisterPublic(v1, handler.NewCatalogHandler(films, sessions, halls), fileHandler,
		middleware.NewRedisCache(cfg.Cache, rdb))
	router.RegisterCustomer(v1, handler.NewTicketHandler(tickets, sessions, halls, events), fileHandler,
		cfg.JWTSecret, middleware.NewTokenBucket(cfg.RateLimit, rdb))

	addr := ":" + cfg.Port // Address string with port
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
