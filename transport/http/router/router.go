package router

import (
	"net/http"

	"kingdom/config"
	"kingdom/internal/handlers/auth"
	"kingdom/internal/handlers/booking"
	"kingdom/internal/handlers/donation"
	"kingdom/internal/handlers/member"
	"kingdom/internal/handlers/pastor"
	"kingdom/internal/handlers/payment"
	"kingdom/internal/handlers/report"
	"kingdom/internal/handlers/room"
	"kingdom/internal/handlers/user"
	"kingdom/transport/http/middleware"

	// swagger docs
	_ "kingdom/docs"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth     auth.Handler
	User     user.Handler
	Room     room.Handler
	Booking  booking.Handler
	Member   member.Handler
	Pastor   pastor.Handler
	Donation donation.Handler
	Payment  payment.Handler
	Report   report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	AuthRole       middleware.AuthRole
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router, health http.HandlerFunc) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)

	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.Config.App.CORS.AllowedHeaders,
			AllowCredentials: r.Config.App.CORS.AllowCredentials,
			MaxAge:           r.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Use(r.App.Tracing)
	router.Use(r.App.Metrics)

	router.Get("/health", health)
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	if r.Config.Metrics.Enable {
		router.Handle("/metrics", promhttp.Handler())
	}

	router.Route("/api", func(routerGroup chi.Router) {
		routerGroup.Use(r.App.RateLimit())
		routerGroup.Use(r.AuthRole.APIKey)
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		routerGroup.Get("/health", health)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Member.Router(routerGroup)
		r.DomainHandlers.Pastor.Router(routerGroup)
		r.DomainHandlers.Donation.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, authRole middleware.AuthRole, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		AuthRole:       authRole,
		Config:         cfg,
	}
}
