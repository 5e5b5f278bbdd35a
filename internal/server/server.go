package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/alfagnish/usuarios-api/internal/config"
	"github.com/alfagnish/usuarios-api/internal/events"
	"github.com/alfagnish/usuarios-api/internal/handlers"
	"github.com/alfagnish/usuarios-api/internal/logging"
	appmw "github.com/alfagnish/usuarios-api/internal/middleware"
	"github.com/alfagnish/usuarios-api/internal/users"
)

// New creates a fully-configured chi router with all route groups,
// middleware, and handlers wired together. The store and hub are owned by
// the caller.
func New(cfg *config.Config, log zerolog.Logger, store *users.Store, hub *events.Hub) http.Handler {
	r := chi.NewRouter()

	// ── Middleware ───────────────────────────────────────────
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appmw.RequestLogger(logging.Namespace(log, "app:http")))
	if cfg.IsDevelopment() {
		r.Use(appmw.Tiny(logging.Namespace(log, "app:access")))
		startupLog := logging.Namespace(log, "app:startup")
		startupLog.Debug().Msg("access log enabled")
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.GetHead)

	// ── Handlers ────────────────────────────────────────────
	systemH := handlers.NewSystemHandler(cfg, store, hub)
	usersH := handlers.NewUsersHandler(store, hub)
	productsH := handlers.NewProductsHandler()
	eventsH := handlers.NewEventsHandler(hub, logging.Namespace(log, "app:events"))
	staticH := handlers.NewStaticHandler(cfg.PublicDir)

	// ── Routes ──────────────────────────────────────────────
	r.Get("/", systemH.Greeting)
	r.Get("/healthz", systemH.Health)

	r.Route("/users", func(r chi.Router) {
		r.Get("/events", eventsH.Stream)
		usersH.Routes(r)
	})
	r.Route("/products", productsH.Routes)

	r.NotFound(staticH.ServeHTTP)

	return r
}
