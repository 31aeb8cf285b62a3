package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/liamba05/Fynnance/internal/api/handlers"
	custommiddleware "github.com/liamba05/Fynnance/internal/api/middleware"
	"github.com/liamba05/Fynnance/internal/config"
	"github.com/liamba05/Fynnance/internal/service"
)

// Services are the collaborators the router dispatches to.
// ProfileService and MarketService may be nil when their integration is not configured.
type Services struct {
	System    *service.SystemService
	UserFacts *service.UserFactsService
	Profile   *service.ProfileService
	Market    *service.MarketService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(services.System)
	analyticsHandler := handlers.NewAnalyticsHandler()
	marketHandler := handlers.NewMarketHandler(services.Market)
	profileHandler := handlers.NewProfileHandler(services.Profile)
	userHandler := handlers.NewUserHandler(services.UserFacts)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Post("/loan-projection", analyticsHandler.LoanProjection)
			r.Post("/recurring", analyticsHandler.Recurring)
			r.Post("/liabilities", analyticsHandler.Liabilities)
			r.Post("/investment", analyticsHandler.Investment)
			r.Post("/affordability", analyticsHandler.Affordability)
		})

		r.Route("/market", func(r chi.Router) {
			r.Get("/stats", marketHandler.MarketStats)
		})

		r.Route("/user/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)

			r.Get("/facts", userHandler.Facts)
			r.Put("/facts", userHandler.UpdateFacts)
			r.Get("/goals", userHandler.Goals)
			r.Put("/goals", userHandler.UpdateGoals)
			r.Post("/memories", userHandler.AddMemories)

			r.Get("/profile", profileHandler.Profile)
			r.Get("/recurring", profileHandler.Recurring)
			r.Get("/liabilities", profileHandler.Liabilities)

			r.Get("/affordability", marketHandler.Affordability)
			r.Get("/investment", marketHandler.Investment)
			r.Get("/listings/{kind}", marketHandler.Listings)
		})
	})

	return r
}
