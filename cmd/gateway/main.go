package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	api "github.com/examgate/examgate/internal/api/http"
	auth "github.com/examgate/examgate/internal/auth/middleware"
	"github.com/examgate/examgate/internal/config"
	"github.com/examgate/examgate/internal/db"
	"github.com/examgate/examgate/internal/exam"
	"github.com/examgate/examgate/internal/rbac"
	"github.com/examgate/examgate/internal/session"
	"github.com/examgate/examgate/internal/upstream"
)

func main() {
	cfg := config.FromEnv()

	store, err := openSessionStore(cfg)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	client := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	authSvc := auth.NewAuthService(cfg.SessionSecret, cfg.SessionTTL)
	attempts := exam.NewRegistry()

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(auth.SessionMiddleware(authSvc, store))

	r.Post("/auth/login", api.LoginHandler(client))
	r.Post("/auth/logout", api.LogoutHandler(attempts))
	r.Get("/me", api.MeHandler())

	// Gated flows: a session with no role, or the wrong one, is redirected
	// to the login entry point.
	r.Group(func(pr chi.Router) {
		pr.With(rbac.Require("scores:view-own")).
			Get("/api/scores", api.MyScoresHandler(client))

		pr.With(rbac.Require("paper:list")).
			Get("/api/papers", api.ListPapersHandler(client))
		pr.With(rbac.Require("paper:select")).
			Post("/api/papers/select", api.SelectPaperHandler())
		pr.With(rbac.Require("paper:questions")).
			Get("/api/papers/selected/questions", api.SelectedQuestionsHandler(client))
		pr.With(rbac.Require("paper:create")).
			Post("/api/papers", api.CreatePaperHandler(client))

		pr.With(rbac.Require("attempt:take")).
			Post("/api/attempt", api.StartAttemptHandler(client, attempts))
		pr.With(rbac.Require("attempt:take")).
			Get("/api/attempt", api.GetAttemptHandler(attempts))
		pr.With(rbac.Require("attempt:take")).
			Put("/api/attempt/answers", api.AnswerHandler(attempts))
		pr.With(rbac.Require("attempt:take")).
			Post("/api/attempt/submit", api.SubmitAttemptHandler(client, attempts))

		pr.With(rbac.Require("scores:view-all")).
			Get("/api/scores/all", api.AllScoresHandler(client))
		pr.With(rbac.Require("scores:grade")).
			Post("/api/scores/grade", api.GradeHandler(client))

		pr.With(rbac.Require("users:list")).
			Get("/api/users", api.ListUsersHandler(client))
		pr.With(rbac.Require("users:create")).
			Post("/api/users", api.CreateUserHandler(client))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (upstream=%s, sessions=%s)", cfg.HTTPAddr, cfg.UpstreamBaseURL, cfg.SessionDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

func openSessionStore(cfg config.Config) (session.Store, error) {
	switch cfg.SessionDriver {
	case "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, err
		}
		return session.NewRedisStore(rdb, cfg.SessionTTL), nil
	default: // sqlite or postgres
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		return session.NewSQLStore(dbh), nil
	}
}
