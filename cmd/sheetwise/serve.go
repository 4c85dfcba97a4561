package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/y-sudharshan/SheetWise/internal/api"
	"github.com/y-sudharshan/SheetWise/internal/core/ports"
	"github.com/y-sudharshan/SheetWise/internal/core/service"
	"github.com/y-sudharshan/SheetWise/internal/infrastructure/ai"
	mongostore "github.com/y-sudharshan/SheetWise/internal/infrastructure/db/mongo"
	redisstore "github.com/y-sudharshan/SheetWise/internal/infrastructure/db/redis"
	"github.com/y-sudharshan/SheetWise/internal/infrastructure/spreadsheet"
	"github.com/y-sudharshan/SheetWise/internal/infrastructure/storage"
	"github.com/y-sudharshan/SheetWise/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func (a *app) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log := a.cfg, a.log

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	users := mongostore.NewUserRepository(db)
	files := mongostore.NewFileRepository(db)
	batches := mongostore.NewBatchRepository(db)
	if err := mongostore.EnsureIndexes(ctx, users, files, batches); err != nil {
		return err
	}

	blobs, err := storage.NewDiskStore(cfg.Upload.Dir)
	if err != nil {
		return err
	}

	var (
		rdb   *goredis.Client
		cache ports.InsightCache
	)
	redisCfg := redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	if redisCfg.Enabled() {
		rdb, err = redisstore.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer rdb.Close()
		cache = redisstore.NewInsightCache(rdb, cfg.Redis.CacheTTL)
	} else {
		log.Info().Msg("REDIS_ADDR not set, insight cache disabled")
	}

	var narrator ports.Narrator
	if cfg.Gemini.APIKey != "" {
		gemini, err := ai.NewGeminiNarrator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}
		narrator = gemini
		log.Info().Str("model", gemini.Model()).Msg("AI narratives enabled")
	}

	authService := service.NewAuthService(users, cfg.JWTSecret, cfg.JWTTTL)
	router := api.NewRouter(api.Deps{
		Auth:           authService,
		Users:          service.NewUserService(users, logger.Component("users")),
		Files:          service.NewFileService(files, batches, blobs, spreadsheet.NewParser(), cfg.Upload.MaxBytes, logger.Component("files")),
		Charts:         service.NewChartService(batches, narrator, cache, logger.Component("charts")),
		Mongo:          db,
		Redis:          rdb,
		Log:            logger.Component("http"),
		Debug:          cfg.IsDevelopment(),
		AllowedOrigins: []string{cfg.FrontendURL},
		MaxUploadBytes: cfg.Upload.MaxBytes,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
