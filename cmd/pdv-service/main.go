package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/pastelneto/pdv-backend/internal/cash"
	"github.com/pastelneto/pdv-backend/internal/config"
	"github.com/pastelneto/pdv-backend/internal/logx"
	"github.com/pastelneto/pdv-backend/internal/notify"
	"github.com/pastelneto/pdv-backend/internal/order"
	"github.com/pastelneto/pdv-backend/internal/product"
	"github.com/pastelneto/pdv-backend/internal/table"
)

func main() {
	cfg := config.Load()
	logger := logx.Init(cfg.LogMode)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		zap.S().Fatalw("db_connect_failed", "err", err)
	}
	if err := pool.Ping(ctx); err != nil {
		zap.S().Fatalw("db_ping_failed", "err", err)
	}
	defer pool.Close()

	var feed notify.Feed
	if cfg.AMQPURL != "" {
		amqpFeed, err := notify.DialAMQP(cfg.AMQPURL)
		if err != nil {
			zap.S().Fatalw("amqp_connect_failed", "err", err)
		}
		feed = amqpFeed
	} else {
		feed = notify.NewMemoryFeed()
	}
	defer feed.Close()

	tables := table.NewPGRepo(pool)
	cashSvc := cash.NewService(cash.NewPGRepo(pool), feed)
	orders := order.NewPGRepo(pool)
	d := &deps{
		products: product.NewPGRepo(pool),
		orders:   orders,
		orderSvc: order.NewService(orders, tables, cashSvc, feed),
		tables:   tables,
		cashSvc:  cashSvc,
		feed:     feed,
	}

	r := newRouter(d)
	hub := newWSHub(feed)
	r.GET("/ws", hub.handler())

	srv := &http.Server{Addr: cfg.Addr, Handler: r}
	go func() {
		zap.S().Infow("service_started", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.S().Fatalw("listen_failed", "err", err)
		}
	}()

	<-ctx.Done()
	zap.S().Infow("graceful_shutdown")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorw("shutdown_failed", "err", err)
	}
}
