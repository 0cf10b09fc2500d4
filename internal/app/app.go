package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/offerspot/offerspot-backend/internal/catalog"
	"github.com/offerspot/offerspot-backend/internal/config"
	"github.com/offerspot/offerspot-backend/internal/favorites"
	favoriteshandler "github.com/offerspot/offerspot-backend/internal/favorites/handler"
	offerhandler "github.com/offerspot/offerspot-backend/internal/offer/handler"
	offerservice "github.com/offerspot/offerspot-backend/internal/offer/service"
	"github.com/offerspot/offerspot-backend/internal/restaurant"
	restauranthandler "github.com/offerspot/offerspot-backend/internal/restaurant/handler"
	restaurantservice "github.com/offerspot/offerspot-backend/internal/restaurant/service"
	"go.uber.org/zap"
)

type App struct {
	HTTPServer *http.Server
	Favorites  *favorites.Store
}

func NewApp(ctx context.Context, log *zap.Logger, cfg config.Config) *App {
	catalogClient := catalog.NewClient(
		catalog.Config{
			BaseURL: cfg.Catalog.BaseURL,
			Timeout: cfg.Catalog.Timeout,
		},
		catalog.NewTTLCache[[]restaurant.Restaurant](cfg.Catalog.CacheTTL),
		catalog.NewBreaker(cfg.Catalog.BreakerThreshold, cfg.Catalog.BreakerCooldown),
		log,
	)

	favoritesStorage := favorites.NewFileStorage(cfg.Favorites.Path, log)

	favoritesStore := favorites.NewStore(favoritesStorage, catalogClient, log)
	// seeding from storage must happen before any mutation persists
	favoritesStore.Load()

	if err := favoritesStorage.Watch(ctx, favoritesStore.Reload); err != nil {
		log.Warn("favorites storage watcher disabled", zap.Error(err))
	}

	router := chi.NewRouter()

	router.Use(
		LoggingMiddleware(log),
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.HTTPServer.AllowedOrigins,
			AllowCredentials: true,
		}),
		middleware.Recoverer,
	)

	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", PingHandler)

		offerService := offerservice.New(catalogClient, log)

		restaurantService := restaurantservice.New(catalogClient, log)

		offerHandler := offerhandler.New(offerService, log)

		log.Info("register offer handlers")

		offerHandler.Register(r)

		restaurantHandler := restauranthandler.New(restaurantService, log)

		log.Info("register restaurant handlers")

		restaurantHandler.Register(r)

		favoritesHandler := favoriteshandler.New(favoritesStore, log)

		log.Info("register favorites handlers")

		favoritesHandler.Register(r)
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		HTTPServer: srv,
		Favorites:  favoritesStore,
	}
}

func (a *App) MustRun() {
	if err := a.HTTPServer.ListenAndServe(); err != nil {
		panic("failed to start server")
	}
}

func LoggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong"))
}
