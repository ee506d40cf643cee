package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/QuincyForbes/thread-chat-backend/internal/config"
	"github.com/QuincyForbes/thread-chat-backend/internal/db"
	"github.com/QuincyForbes/thread-chat-backend/internal/httpapi"
	"github.com/QuincyForbes/thread-chat-backend/internal/store/rabbitmq"
	"github.com/QuincyForbes/thread-chat-backend/internal/store/redisstore"
)

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN)

	var rds *redisstore.Store
	if cfg.RedisAddr != "" {
		rds = redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rds.Ping(pingCtx); err != nil {
			log.Printf("redis unavailable, stats endpoint disabled: %v", err)
			_ = rds.Close()
			rds = nil
		}
		cancel()
	}

	var pub *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			log.Printf("rabbitmq unavailable, message events disabled: %v", err)
		} else {
			pub = p
			defer pub.Close()
		}
	}

	router := httpapi.NewRouter(gdb, cfg, rds, pub)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
