package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/verbatim-app/verbatim/internal/activity"
	api "github.com/verbatim-app/verbatim/internal/api/http"
	auth "github.com/verbatim-app/verbatim/internal/auth/middleware"
	"github.com/verbatim-app/verbatim/internal/config"
	"github.com/verbatim-app/verbatim/internal/db"
	"github.com/verbatim-app/verbatim/internal/lexicon"
	"github.com/verbatim-app/verbatim/internal/practice"
	rbac "github.com/verbatim-app/verbatim/internal/rbac"
	storage "github.com/verbatim-app/verbatim/internal/storage"

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
	lex := lexicon.NewSQLStore(dbh, cfg.DBDriver)
	store := practice.NewSQLStore(dbh, cfg.DBDriver, lex)

	// --- Auth (local HMAC tokens, same in both modes) ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)

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
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh, auth.Bootstrap{
		Username: cfg.AdminUser,
		PassHash: cfg.AdminPassHash,
	}))
	r.Post("/auth/guest", auth.GuestLoginHandler(authSvc, dbh, cfg.EnableGuestAuth))

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}
	// assets routes (protected)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Route("/assets", func(ar chi.Router) {
			api.MountAssets(ar, bs, store)
		})
	})

	// Protected API (JWT → role in context → RBAC)
	events := activity.NewLog(dbh)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(activity.Audit(events))

		// Exercises
		pr.With(rbac.Require("exercise:create")).
			Post("/exercises", api.CreateExerciseHandler(store))
		pr.With(rbac.Require("exercise:view")).
			Get("/exercises", api.ListExercisesHandler(store))
		pr.With(rbac.Require("exercise:view")).
			Get("/exercises/{exerciseID}", api.GetExerciseHandler(store))
		pr.With(rbac.Require("exercise:delete")).
			Delete("/exercises/{exerciseID}", api.DeleteExerciseHandler(store))

		// Dictation sessions
		pr.With(rbac.Require("session:create")).
			Post("/sessions", api.CreateSessionHandler(store))
		pr.With(rbac.Require("session:submit")).
			Post("/sessions/{sessionID}/submit", api.SubmitSessionHandler(store))
		pr.With(rbac.RequireAny("session:view-own", "session:view-all")).
			Get("/sessions", api.ListSessionsHandler(store))
		pr.With(rbac.RequireAny("session:view-own", "session:view-all")).
			Get("/sessions/{sessionID}", api.GetSessionHandler(store))
		pr.With(rbac.RequireAny("session:delete-own", "session:view-all")).
			Delete("/sessions/{sessionID}", api.DeleteSessionHandler(store))

		// Stateless comparison
		pr.With(rbac.Require("compare:run")).
			Post("/compare", api.CompareHandler(lex))

		// Notes
		pr.With(rbac.Require("note:manage")).Route("/notes", func(nr chi.Router) {
			nr.Post("/", api.CreateNoteHandler(store))
			nr.Get("/", api.ListNotesHandler(store))
			nr.Get("/{noteID}", api.GetNoteHandler(store))
			nr.Put("/{noteID}", api.UpdateNoteHandler(store))
			nr.Delete("/{noteID}", api.DeleteNoteHandler(store))
		})

		// Proper-noun lexicon
		pr.With(rbac.Require("lexicon:manage")).Route("/lexicon", func(lr chi.Router) {
			lr.Get("/", api.ListLexiconHandler(lex))
			lr.Post("/", api.AddLexiconHandler(lex))
			lr.Delete("/{word}", api.RemoveLexiconHandler(lex))
		})

		// Archive
		pr.With(rbac.Require("archive:export")).
			Get("/export", api.ExportArchiveHandler(store, lex))
		pr.With(rbac.Require("archive:import")).
			Post("/import", api.ImportArchiveHandler(store, lex))

		// Classroom activity feed (teacher/admin)
		pr.With(rbac.Require("activity:view")).
			Get("/activity", api.ActivityHandler(events))

		// Users (teacher/admin)
		pr.With(rbac.Require("users:bulk_upsert")).
			Post("/users/bulk", api.BulkUpsertUsersHandler(dbh)) // pass *sql.DB
		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
