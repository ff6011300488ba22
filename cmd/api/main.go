package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	coreauth "workbridge/internal/core/auth"
	"workbridge/internal/core/config"
	"workbridge/internal/core/database"
	"workbridge/internal/core/logger"
	"workbridge/internal/core/server"
	"workbridge/internal/core/session"
	"workbridge/internal/domain"
	"workbridge/internal/feature/applications"
	"workbridge/internal/feature/auth"
	"workbridge/internal/feature/jobs"
	"workbridge/internal/feature/notifications"
	"workbridge/internal/repo"
	"workbridge/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	store := mustOpenStore(cfg, log)
	revoker := newRevoker(cfg)

	jwter := &coreauth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	router.Register(auth.NewModule(store, jwter, revoker, log))
	router.Register(jobs.NewModule(store, log))
	router.Register(applications.NewModule(store, log))
	router.Register(notifications.NewModule(store, log))

	r := router.NewAPIEngine(log)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("marketplace api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
		zap.String("storage", cfg.DB.Driver),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("marketplace api start FAILED", zap.Error(err))
		}
	}()
	log.Info("marketplace api started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("marketplace api stopped gracefully")
}

// mustOpenStore picks the storage implementation from config: a relational
// database or the process-lifetime in-memory store.
func mustOpenStore(cfg *config.Config, l *zap.Logger) domain.Storage {
	if cfg.DB.Driver == "memory" {
		l.Warn("using in-memory storage, data will not survive a restart")
		return repo.NewMemStore()
	}
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	store := repo.NewGormStore(db)
	if cfg.DB.AutoMigrate {
		if err := store.AutoMigrate(); err != nil {
			l.Fatal("automigrate failed", zap.Error(err))
		}
		l.Info("automigrate done")
	}
	return store
}

// newRevoker mirrors the storage split: redis when configured, otherwise
// in-memory.
func newRevoker(cfg *config.Config) session.Revoker {
	if cfg.Redis.Addr == "" {
		return session.NewMemoryRevoker()
	}
	return session.NewRedisRevoker(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
}
