package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/msomdec/ideabox/internal/metrics"
	"github.com/msomdec/ideabox/internal/service"
)

// App is the explicitly constructed application context shared by every
// handler.
type App struct {
	Auth         *service.AuthService
	Ideas        *service.IdeaService
	DB           Pinger
	Metrics      *metrics.Metrics
	CookieSecure bool
}

// NewRouter builds the full HTTP handler: middleware stack plus routes.
func NewRouter(app App) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, Recover, Instrument(app.Metrics), SecurityHeaders)
	RegisterRoutes(r, app)
	return r
}

// RegisterRoutes sets up all HTTP routes on the given router.
func RegisterRoutes(r chi.Router, app App) {
	auth := NewAuthHandler(app.Auth, app.Metrics, app.CookieSecure)
	ideas := NewIdeaHandler(app.Ideas, app.Metrics, app.CookieSecure)

	r.Get("/healthz", HandleHealthz(app.DB))
	r.Handle("/metrics", app.Metrics.Handler())

	r.Get("/register", auth.HandleRegisterPage)
	r.Post("/register", auth.HandleRegister)
	r.Get("/login", auth.HandleLoginPage)
	r.Post("/login", auth.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler { return RequireAuth(app.Auth, next) })
		r.Get("/logout", auth.HandleLogout)
		r.Get("/", ideas.HandleList)
		r.Post("/add", ideas.HandleAdd)
	})
}
