package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/quizforge/quizforge/internal/api/http"
	"github.com/quizforge/quizforge/internal/audit"
	"github.com/quizforge/quizforge/internal/auth"
	authmw "github.com/quizforge/quizforge/internal/auth/middleware"
	"github.com/quizforge/quizforge/internal/catalog"
	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/db"
	"github.com/quizforge/quizforge/internal/images"
	"github.com/quizforge/quizforge/internal/picker"
	"github.com/quizforge/quizforge/internal/rbac"
	"github.com/quizforge/quizforge/internal/solve"
	"github.com/quizforge/quizforge/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := catalog.NewSQLStore(dbh, cfg.DBDriver)

	// --- Blob store (question images) ---
	bs, err := storage.Open(cfg.BlobDriver, cfg.BlobBasePath, "/assets")
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Content snapshot ---
	holder := catalog.NewSnapshotHolder(store)
	if err := holder.Refresh(ctx); err != nil {
		log.Fatalf("initial catalog refresh: %v", err)
	}

	events := audit.NewEventRepo(dbh, string(cfg.Mode))
	cascader := catalog.NewCascader(store, bs, events)

	pickers := picker.NewRegistry()
	sessions := solve.NewRegistry()
	pipeline := images.NewPipeline(bs)

	// --- Auth ---
	authSvc := authmw.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Auth routes (public) ---
	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc, cfg))
	}
	if cfg.EnableGuestAuth {
		r.Post("/auth/guest", auth.GuestLoginHandler(authSvc, dbh, cfg))
	}
	if cfg.EnableGoogleAuth {
		r.Get("/auth/google/login", auth.GoogleLoginHandler(cfg))
		r.Get("/auth/google/callback", auth.GoogleCallbackHandler(authSvc, dbh, cfg))
	}

	// --- Assets (protected) ---
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))
		pr.With(rbac.Require("asset:view")).Route("/assets", func(ar chi.Router) {
			api.MountAssets(ar, bs)
		})
	})

	// --- Protected API (JWT -> role in context -> RBAC) ---
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))

		pr.Get("/me", api.MeHandler())

		// Browsing
		pr.With(rbac.Require("catalog:view")).
			Get("/catalog", api.CatalogHandler(holder))
		pr.With(rbac.Require("catalog:view")).
			Get("/overview", api.OverviewHandler(holder))
		pr.With(rbac.Require("catalog:view")).
			Post("/catalog/refresh", api.RefreshHandler(holder))

		// Pickers (solve / author / builder)
		pr.With(rbac.Require("picker:use")).
			Get("/pickers/{purpose}", api.PickerViewHandler(holder, pickers))
		pr.With(rbac.Require("picker:use")).
			Post("/pickers/{purpose}/select", api.PickerSelectHandler(holder, pickers))
		pr.With(rbac.Require("picker:use")).
			Post("/pickers/{purpose}/filter", api.PickerFilterHandler(holder, pickers))
		pr.With(rbac.Require("picker:use")).
			Post("/pickers/{purpose}/reset", api.PickerResetHandler(holder, pickers))

		// Solve flow
		pr.With(rbac.Require("solve:start")).
			Post("/solve/start", api.StartSolveHandler(cfg, holder, pickers, sessions))
		pr.With(rbac.Require("solve:answer")).
			Post("/solve/answer", api.AnswerHandler(sessions))
		pr.With(rbac.Require("solve:start")).
			Get("/solve", api.SolveViewHandler(sessions))
		pr.With(rbac.Require("solve:start")).
			Delete("/solve", api.EndSolveHandler(sessions))

		// Authoring (admin only)
		pr.With(rbac.Require("category:create")).
			Post("/categories", api.CreateCategoryHandler(store, holder, events))
		pr.With(rbac.Require("category:delete")).
			Get("/categories/{categoryID}/plan", api.TopicPlanHandler(holder, cascader))
		pr.With(rbac.Require("category:delete")).
			Delete("/categories/{categoryID}", api.DeleteTopicHandler(holder, cascader))

		pr.With(rbac.Require("quiz:create")).
			Post("/quizzes", api.CreateQuizHandler(store, holder, pickers, events))
		pr.With(rbac.Require("quiz:delete")).
			Get("/quizzes/{quizID}/plan", api.QuizPlanHandler(holder, cascader))
		pr.With(rbac.Require("quiz:delete")).
			Delete("/quizzes/{quizID}", api.DeleteQuizHandler(holder, cascader))

		pr.With(rbac.Require("question:create")).
			Post("/questions", api.CreateQuestionHandler(store, holder, pickers, pipeline, events))

		pr.With(rbac.Require("image:upload")).
			Post("/images", api.UploadImageHandler(pipeline))
		pr.With(rbac.Require("image:upload")).
			Get("/images/pending", api.PendingImageHandler(pipeline))
		pr.With(rbac.Require("image:upload")).
			Delete("/images/pending", api.ClearPendingImageHandler(pipeline))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
