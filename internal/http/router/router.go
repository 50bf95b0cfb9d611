package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sycelim/delivery-web/internal/domain"
	"github.com/sycelim/delivery-web/internal/http/handlers"
	"github.com/sycelim/delivery-web/internal/http/middleware"
	"github.com/sycelim/delivery-web/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
func New(
	h *handlers.Handlers,
	auth *handlers.AuthHandler,
	admin *handlers.AdminHandler,
	livreur *handlers.LivreurHandler,
	logger logx.Logger,
	cookieSecure bool,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.Observability(logger))

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/", auth.Home)
	r.Get("/login", auth.LoginPage)
	r.Post("/login", auth.LoginSubmit)
	r.Get("/register", auth.RegisterPage)
	r.Post("/register", auth.RegisterSubmit)
	r.Post("/logout", auth.Logout)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireRole(logger, cookieSecure, domain.RoleAdmin))
		r.Get("/", admin.Page)
		r.Post("/deliveries/{id}/status", admin.UpdateStatus)
		r.Post("/deliveries/{id}/delete", admin.Delete)
	})

	r.Route("/livreur", func(r chi.Router) {
		r.Use(middleware.RequireRole(logger, cookieSecure, domain.RoleLivreur))
		r.Get("/", livreur.Page)
		r.Post("/deliveries", livreur.Create)
	})

	r.NotFound(http.HandlerFunc(h.NotFound))

	return r
}
