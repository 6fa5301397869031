package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"go.uber.org/zap"

	"prnotify/internal/app/config"
	httpapi "prnotify/internal/app/http"
	"prnotify/internal/app/http/handler"
	"prnotify/internal/domain/identity"
	"prnotify/internal/domain/notify"
	"prnotify/internal/domain/thread"
	"prnotify/internal/infrastructure/async"
	"prnotify/internal/infrastructure/db/pg"
	"prnotify/internal/infrastructure/gitea"
	"prnotify/internal/infrastructure/logging"
	"prnotify/internal/infrastructure/slackapi"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db open error", zap.Error(err))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("db ping error", zap.Error(err))
	}

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("goose dialect error", zap.Error(err))
	}
	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatal("goose up error", zap.Error(err))
	}

	uow := pg.NewTxManager(db)

	eventBus := async.NewAsyncEventBus(ctx, 4, log)
	defer eventBus.Close()

	threadRepo := pg.NewThreadRepository(db, uow)
	threadCache := thread.NewCache(threadRepo, log)

	giteaClient := gitea.NewClient(cfg.GiteaBaseURL, cfg.GiteaToken)
	slackClient := slackapi.NewClient(cfg.SlackToken)

	idSvc := identity.NewService(giteaClient, slackClient, log)
	notifySvc := notify.NewService(idSvc, threadCache, slackClient, eventBus, cfg.SlackChannel, log)

	h := handler.New(notifySvc, log)
	router := httpapi.NewRouter(h, log)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}
