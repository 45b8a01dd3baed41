package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/court-finder/docs"
	"github.com/Dosada05/court-finder/handlers"
	"github.com/Dosada05/court-finder/middleware"
)

type Options struct {
	AllowedOrigins   []string
	EnforceAdminAuth bool
	JWTSecret        []byte
	Secrets          middleware.SecretChecker
	Cache            *middleware.ResponseCache
	Redis            *redis.Client
	LoginRateLimit   int
	Logger           *slog.Logger
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	authHandler *handlers.AuthHandler,
	venueHandler *handlers.VenueHandler,
	sportHandler *handlers.SportHandler,
	webSocketHandler *handlers.WebSocketHandler,
	healthHandler *handlers.HealthHandler,
) {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", middleware.HeaderAdminSecret},
		ExposedHeaders:   []string{"X-Cache", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.Identify(opts.JWTSecret, opts.Secrets, logger))

	superAdmin := middleware.RequireSuperAdmin(opts.EnforceAdminAuth)
	venueScope := middleware.RequireVenueScope(opts.EnforceAdminAuth)

	router.Get("/healthz", healthHandler.Healthz)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/ws", func(r chi.Router) {
		r.Get("/venues", webSocketHandler.ServeVenues)
		r.Get("/venues/{id}", webSocketHandler.ServeVenue)
	})

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RateLimit(opts.Redis, "login", opts.LoginRateLimit, logger)).
				Post("/login", authHandler.Login)
		})

		r.Route("/venues", func(r chi.Router) {
			r.With(opts.Cache.Middleware).Get("/", venueHandler.ListVenues)
			r.With(opts.Cache.Middleware).Get("/{id}", venueHandler.GetVenue)

			r.With(superAdmin).Post("/", venueHandler.CreateVenue)
			r.With(superAdmin).Patch("/order", venueHandler.ReorderVenues)
			r.With(venueScope).Put("/{id}", venueHandler.UpdateVenue)
			r.With(superAdmin).Delete("/{id}", venueHandler.DeleteVenue)
		})

		r.Route("/sports", func(r chi.Router) {
			r.With(opts.Cache.Middleware).Get("/", sportHandler.GetAllSports)
			r.With(opts.Cache.Middleware).Get("/{id}", sportHandler.GetSport)

			r.Group(func(r chi.Router) {
				r.Use(superAdmin)

				r.Post("/", sportHandler.CreateSport)
				r.Put("/{id}", sportHandler.UpdateSport)
				r.Delete("/{id}", sportHandler.DeleteSport)
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "the requested resource could not be found"}` + "\n"))
	})
}
