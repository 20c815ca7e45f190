package main

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/SystAttic/TraversiumSocialService/internal/platform/auth"
	"github.com/SystAttic/TraversiumSocialService/internal/platform/config"
	"github.com/SystAttic/TraversiumSocialService/internal/platform/db"
	"github.com/SystAttic/TraversiumSocialService/internal/platform/httpserver"
	"github.com/SystAttic/TraversiumSocialService/internal/platform/logging"
	"github.com/SystAttic/TraversiumSocialService/internal/platform/natsconn"
	"github.com/SystAttic/TraversiumSocialService/internal/platform/run"
	"github.com/SystAttic/TraversiumSocialService/internal/social/cache"
	"github.com/SystAttic/TraversiumSocialService/internal/social/events"
	"github.com/SystAttic/TraversiumSocialService/internal/social/handlers"
	"github.com/SystAttic/TraversiumSocialService/internal/social/moderation"
	"github.com/SystAttic/TraversiumSocialService/internal/social/service"
	"github.com/SystAttic/TraversiumSocialService/internal/social/store"
	"github.com/SystAttic/TraversiumSocialService/internal/social/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.ServiceName, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	comments, likes, closeStores := initStores(cfg, log)
	if closeStores != nil {
		defer closeStores()
	}

	sink, closeNATS := initSink(cfg, log)
	if closeNATS != nil {
		defer closeNATS()
	}

	counts := initLikeCounts(cfg, log)

	tripClient := trip.New(cfg.Oracles.TripServiceURL, log)
	moderationClient := moderation.New(cfg.Oracles.ModerationServiceURL, log)

	commentSvc := service.NewCommentService(comments, tripClient, moderationClient, sink, log)
	likeSvc := service.NewLikeService(likes, tripClient, sink, counts, log)

	verifier := auth.JWTVerifier{Secret: []byte(cfg.JWTSecret)}

	r := chi.NewRouter()
	httpserver.SetupRouter(r)

	// Public reads; a bearer token only personalises the response.
	r.Group(func(r chi.Router) {
		r.Use(auth.OptionalUser(verifier))
		r.Get("/rest/v1/media/{mediaId}/comments", handlers.GetCommentsForMedia(commentSvc, log))
		r.Get("/rest/v1/comments/{commentId}", handlers.GetComment(commentSvc, log))
		r.Get("/rest/v1/comments/{commentId}/replies", handlers.GetRepliesForComment(commentSvc, log))
		r.Get("/rest/v1/media/{mediaId}/likes/count", handlers.GetLikeCount(likeSvc, log))
	})

	// Mutations require an authenticated caller.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(verifier))
		r.Post("/rest/v1/media/{mediaId}/comments", handlers.CreateComment(commentSvc, log))
		r.Put("/rest/v1/comments/{commentId}", handlers.UpdateComment(commentSvc, log))
		r.Delete("/rest/v1/comments/{commentId}", handlers.DeleteComment(commentSvc, log))
		r.Post("/rest/v1/media/{mediaId}/likes", handlers.LikeMedia(likeSvc, log))
		r.Delete("/rest/v1/media/{mediaId}/likes", handlers.UnlikeMedia(likeSvc, log))
		r.Get("/rest/v1/media/{mediaId}/likes/me", handlers.HasUserLiked(likeSvc, log))
	})

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, ServiceName: cfg.ServiceName, Logger: log, Router: r})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	if code != 0 {
		_ = log.Sync()
		run.Exit(code)
	}
}

// initStores selects the persistence backend. config.Load guarantees
// production always has a DATABASE_URL; here only the connection can fail.
func initStores(cfg config.AppConfig, log *zap.Logger) (store.CommentStore, store.LikeStore, func()) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores (development only)")
		return store.NewInMemoryCommentStore(), store.NewInMemoryLikeStore(), nil
	}

	pool, err := db.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		if cfg.IsProduction() {
			log.Error("postgres is required in production but unavailable", zap.Error(err))
			_ = log.Sync()
			run.Exit(1)
		}
		log.Warn("postgres unavailable, falling back to in-memory stores", zap.Error(err))
		return store.NewInMemoryCommentStore(), store.NewInMemoryLikeStore(), nil
	}

	log.Info("stores: postgres")
	return store.NewPostgresCommentStore(pool), store.NewPostgresLikeStore(pool), pool.Close
}

// initSink connects the NATS event sink. Without NATS the sink degrades to a
// no-op: social actions still succeed, events are dropped.
func initSink(cfg config.AppConfig, log *zap.Logger) (events.Sink, func()) {
	nc, err := natsconn.Connect(natsconn.Options{URL: cfg.NATSURL, Name: cfg.ServiceName})
	if err != nil {
		log.Warn("nats unavailable, events disabled", zap.Error(err))
		return events.NewNATSSink(nil, log), nil
	}
	js, err := nc.JetStream(nats.PublishAsyncMaxPending(256))
	if err != nil {
		log.Warn("jetstream unavailable, events disabled", zap.Error(err))
		nc.Close()
		return events.NewNATSSink(nil, log), nil
	}
	log.Info("event sink: nats jetstream")
	return events.NewNATSSink(js, log), nc.Close
}

func initLikeCounts(cfg config.AppConfig, log *zap.Logger) *cache.LikeCountCache {
	if cfg.RedisURL == "" {
		log.Warn("REDIS_URL not set, like counts are uncached")
		return nil
	}
	counts, err := cache.NewLikeCountCache(cfg.RedisURL, 5*time.Minute)
	if err != nil {
		log.Warn("redis unavailable, like counts are uncached", zap.Error(err))
		return nil
	}
	log.Info("like count cache: redis")
	return counts
}
