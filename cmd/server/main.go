package main // Entry point package

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iliyamo/movie-ticket-cms/internal/config"   // Internal config loader
	"github.com/iliyamo/movie-ticket-cms/internal/database" // MySQL connection and migrations
	"github.com/iliyamo/movie-ticket-cms/internal/handler"
	"github.com/iliyamo/movie-ticket-cms/internal/logger"
	"github.com/iliyamo/movie-ticket-cms/internal/middleware"
	"github.com/iliyamo/movie-ticket-cms/internal/queue"
	"github.com/iliyamo/movie-ticket-cms/internal/repository"
	"github.com/iliyamo/movie-ticket-cms/internal/router" // Internal router setup
	"github.com/iliyamo/movie-ticket-cms/internal/service"
)

func main() {
	_ = godotenv.Load() // a missing .env is fine outside dev

	cfg, err := config.Load() // Load environment config
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Error("database open failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if cfg.DB.Migrate {
		if err := database.Migrate(db); err != nil {
			log.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}

	rdb := config.NewRedisClient(cfg.Redis) // nil when Redis is unreachable
	if rdb != nil {
		defer rdb.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- Repositories and services ----
	accounts := repository.NewAccountRepo(db)
	profiles := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	movies := repository.NewMovieRepo(db)
	sessions := service.NewSessionResolver(accounts, profiles)

	var events service.Publisher = service.NopPublisher{}
	if cfg.AMQP.PublishEnabled {
		events = service.NewAMQPPublisher(cfg.AMQP.URL)
	}
	if cfg.AMQP.ConsumerEnabled {
		go func() {
			if err := queue.StartCatalogConsumer(ctx, cfg.AMQP.URL, cfg.AMQP.LogDir); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("catalog consumer stopped", "err", err)
			}
		}()
	}
	purge := func(ctx context.Context) error { return middleware.PurgeCache(ctx, cfg.Cache, rdb) }

	// ---- HTTP ----
	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(echomw.BodyLimit("1M"))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status,
				"latency", v.Latency, "request_id", v.RequestID}
			if v.Error != nil {
				log.Error("request", append(attrs, "err", v.Error)...)
				return nil
			}
			log.Info("request", attrs...)
			return nil
		},
	}))
	if cfg.MetricsRoute {
		e.Use(middleware.NewMetrics(prometheus.DefaultRegisterer).Middleware())
	}

	router.RegisterRoutes(e, db, cfg.MetricsRoute)
	router.RegisterAuth(e,
		handler.NewAuthHandler(cfg.Auth, accounts, profiles, tokens, sessions),
		cfg.Auth.JWTSecret, sessions,
		middleware.NewTokenBucket(cfg.RateLimit, rdb))
	router.RegisterPublic(e, &handler.PublicHandler{Movies: movies}, middleware.NewRedisCache(cfg.Cache, rdb))
	router.RegisterAdmin(e,
		handler.NewMovieHandler(movies, events, purge),
		&handler.UsersHandler{Profiles: profiles},
		cfg.Auth.JWTSecret, sessions)
	if cfg.DebugRoutes {
		log.Warn("debug routes enabled; do not run this in production")
		router.RegisterDebug(e, &handler.DebugHandler{Profiles: profiles, Sessions: sessions}, cfg.Auth.JWTSecret)
	}

	addr := ":" + cfg.Port // Address string with port
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}
