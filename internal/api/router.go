package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "membox/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"membox/backend/internal/interfaces"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Chat    *ChatHandler
	Session *SessionHandler
	User    *UserHandler
	Memory  *MemoryHandler
	Upload  *UploadHandler
}

// NewRouter creates and configures a chi router with all application routes.
func NewRouter(h Handlers, users interfaces.UserService, uploadDir string) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The browser client runs on a different origin in development. The user
	// cookie must survive cross-origin requests, so the origin is echoed back
	// instead of wildcarded.
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  func(r *http.Request, origin string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Public Routes ---
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness/readiness probe for container orchestration.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Uploaded images are served statically, mirroring the upload URLs.
	uploadServer := http.FileServer(http.Dir(uploadDir))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", uploadServer))

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON routes carry a request timeout so client
		// connections cannot hang indefinitely.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			// --- Users (no acting user required) ---
			r.Post("/users/login", h.User.HandleLogin)
			r.Post("/users/switch", h.User.HandleSwitchUser)
			r.Post("/users/logout", h.User.HandleLogout)
			r.Get("/users", h.User.HandleListUsers)

			// --- Routes scoped to the acting user ---
			r.Group(func(r chi.Router) {
				r.Use(RequireUser(users))

				r.Get("/users/me", h.User.HandleCurrentUser)

				// --- Sessions ---
				r.Get("/sessions", h.Session.HandleListSessions)
				r.Post("/sessions", h.Session.HandleCreateSession)
				r.Get("/sessions/{sessionID}", h.Session.HandleGetSession)
				r.Post("/sessions/{sessionID}/select", h.Session.HandleSelectSession)
				r.Delete("/sessions/{sessionID}", h.Session.HandleDeleteSession)

				// --- Memory ---
				r.Post("/memory/search", h.Memory.HandleSearch)
				r.Post("/memory", h.Memory.HandleAdd)
				r.Get("/memory", h.Memory.HandleList)
				r.Get("/memory/profile", h.Memory.HandleProfile)
				r.Delete("/memory/{memoryID}", h.Memory.HandleDelete)

				// --- Uploads ---
				r.Post("/upload/images", h.Upload.HandleUploadImages)
			})
		})

		// The streaming chat endpoint must NOT have a timeout; it holds the
		// connection open for the whole generation.
		r.Group(func(r chi.Router) {
			r.Use(RequireUser(users))
			r.Post("/chat/completions", h.Chat.HandleStreamTurn)
		})
	})

	return r
}
