package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotel_extranet/internal/adapters/extranet"
	server "hotel_extranet/internal/adapters/http_server"
	"hotel_extranet/internal/adapters/observability"
	redisad "hotel_extranet/internal/adapters/redis"
	"hotel_extranet/internal/app"
	"hotel_extranet/internal/shared"
	"hotel_extranet/internal/storage/memory"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env load failed")
	}
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	client, err := extranet.New(cfg.FeedBaseURL, cfg.FeedUsername, cfg.FeedPassword, cfg.FeedTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize extranet client")
	}

	// Eager ingestion: the store must be complete before we serve anything.
	// An authentication or fetch failure aborts startup; serving an empty
	// store would be indistinguishable from "no reservations".
	log.Info().Str("base", cfg.FeedBaseURL).Msg("ingesting reservation feed")
	ing := app.NewIngestionService(client)
	items, stats, err := ing.Run(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("feed ingestion failed")
	}
	log.Info().Int("reservations", stats.Parsed).Int("dropped_rows", stats.Dropped).Msg("store ready")
	observability.ObserveFeedRows("parsed", stats.Parsed)
	observability.ObserveFeedRows("dropped", stats.Dropped)

	store := memory.New(items)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	q := app.NewQueryService(store, cache, cfg.CacheTTL)

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	h, err := server.NewHandlers(q, cfg.PageSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse templates")
	}
	srv.MountHandlers(h)

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("web server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("web server failed")
	}
	log.Info().Msg("shut down cleanly")
}
