package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pearline_shop/internal/config"
	"github.com/Skotchmaster/pearline_shop/internal/es"
	"github.com/Skotchmaster/pearline_shop/internal/httpserver"
	"github.com/Skotchmaster/pearline_shop/internal/models"
	"github.com/Skotchmaster/pearline_shop/internal/mykafka"
	"github.com/Skotchmaster/pearline_shop/internal/repo"
	"github.com/Skotchmaster/pearline_shop/internal/service"
	"github.com/Skotchmaster/pearline_shop/pkg/db"
	"github.com/Skotchmaster/pearline_shop/pkg/logging"
	"github.com/Skotchmaster/pearline_shop/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/pearline_shop/pkg/middleware/logging"
	"github.com/Skotchmaster/pearline_shop/pkg/tokens"
)

type publisher interface {
	service.EventPublisher
	Close() error
}

func main() {
	config.LoadDotEnv(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Error("db init error", "error", err)
		os.Exit(1)
	}
	if err := models.AutoMigrate(gdb); err != nil {
		logger.Error("db migrate error", "error", err)
		os.Exit(1)
	}

	var events publisher = mykafka.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		events = mykafka.NewProducer(cfg.KafkaBrokers)
		logger.Info("kafka producer ready", "brokers", cfg.KafkaBrokers)
	} else {
		logger.Warn("KAFKA_BROKERS not set, events are dropped")
	}

	Repo := repo.New(gdb)

	catalog := &service.CatalogService{Repo: Repo, Events: events}
	if cfg.ESURL != "" {
		esCtx, esCancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := es.NewClient(esCtx, cfg, logger)
		esCancel()
		if err != nil {
			logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		} else {
			catalog.Index = es.NewProductIndex(client, cfg.ESIndex)
		}
	}

	authService := &service.AuthService{
		Repo:          Repo,
		Events:        events,
		JWTSecret:     cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}
	userService := &service.UserService{Repo: Repo, Events: events}

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	created, err := authService.SeedSuperAdmin(seedCtx, cfg.SuperAdminEmail, cfg.SuperAdminPassword)
	seedCancel()
	if err != nil {
		logger.Error("seed super admin error", "error", err)
		os.Exit(1)
	}
	if created {
		logger.Info("super admin created", "email", cfg.SuperAdminEmail)
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.Secure())
	if cfg.CSRFEnabled {
		e.Use(csrf.Middleware(csrf.DefaultConfig(tokens.AccessCookie)))
	}

	httpserver.Register(e, &httpserver.Deps{
		CartHandler: &httpserver.CartHTTP{Svc: &service.CartService{Repo: Repo, Events: events}},
		QuoteHandler: &httpserver.QuoteHTTP{Svc: &service.QuoteService{
			Repo:              Repo,
			Events:            events,
			TaxRate:           cfg.QuoteTaxRate,
			ClearCartOnSubmit: cfg.ClearCartOnSubmit,
		}},
		AdminQuoteHandler: &httpserver.AdminQuoteHTTP{Svc: &service.AdminQuoteService{Repo: Repo, Events: events}},
		ProductHandler:    &httpserver.ProductHTTP{Svc: catalog},
		MessageHandler:    &httpserver.MessageHTTP{Svc: &service.MessageService{Repo: Repo, Events: events}},
		AuthHandler:       &httpserver.AuthHTTP{Svc: authService, User: userService},
		UserHandler:       &httpserver.UserHTTP{Svc: userService},
		JWTSecret:         cfg.JWTAccessSecret,
		Ready:             func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdown(srv, gdb, events, logger)
	logger.Info("shutdown complete")
}

func shutdown(srv *http.Server, gdb *gorm.DB, events publisher, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := events.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close error", "error", err)
	}
}
