package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"bookstore/internal/config"
	"bookstore/internal/es"
	"bookstore/internal/events"
	"bookstore/internal/httpserver"
	"bookstore/internal/logging"
	"bookstore/internal/metrics"
	"bookstore/internal/middleware"
	"bookstore/internal/repo"
	"bookstore/internal/service/auth"
	"bookstore/internal/service/catalog"
	"bookstore/internal/service/checkout"
	"bookstore/internal/service/search"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.RefreshSecret, "REFRESH_SECRET")

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	db, err := config.OpenDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	if !producer.Enabled() {
		logger.Warn("kafka brokers not configured, events disabled")
	}

	searchSvc := &search.Service{Index: cfg.ESIndex}
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init: %v", err)
		}
		searchSvc.ES = esClient
	} else {
		logger.Warn("elasticsearch not configured, search disabled")
	}

	m := metrics.New("server")

	r := repo.New(db)
	authSvc := &auth.Service{
		Repo:          r,
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
		Revocations:   auth.NoopRevocations{},
	}
	catalogSvc := &catalog.Service{Repo: r}
	checkoutSvc := &checkout.Service{Repo: r}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.Metrics(m))

	deps := httpserver.Deps{
		AuthHandler:   &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		BookHandler:   &httpserver.BookHTTP{Svc: catalogSvc},
		CartHandler:   &httpserver.CartHTTP{Svc: catalogSvc},
		OrderHandler:  &httpserver.OrderHTTP{Svc: checkoutSvc, Producer: producer, Metrics: m},
		ReviewHandler: &httpserver.ReviewHTTP{Svc: catalogSvc},
		SearchHandler: &httpserver.SearchHTTP{Svc: searchSvc},
		AdminHandler:  &httpserver.AdminHTTP{Svc: catalogSvc, Search: searchSvc},
		Metrics:       m,
		JWTSecret:     cfg.JWTSecret,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "port", cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	} else {
		logger.Error("db handle error", "error", err)
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
