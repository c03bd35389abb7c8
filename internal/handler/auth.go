package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/ideabox/internal/domain"
	"github.com/msomdec/ideabox/internal/metrics"
	"github.com/msomdec/ideabox/internal/service"
	"github.com/msomdec/ideabox/internal/view"
)

const authCookieName = "auth_token"

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	auth         *service.AuthService
	metrics      *metrics.Metrics
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, m *metrics.Metrics, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, metrics: m, cookieSecure: cookieSecure}
}

// HandleLoginPage renders the login form.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	flash := popFlash(w, r, h.cookieSecure)
	render(w, r, view.LoginPage(flash))
}

// HandleLogin verifies credentials and starts a session.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	token, err := h.auth.Login(r.Context(), r.PostFormValue("login_id"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.metrics.Logins.WithLabelValues("failed").Inc()
			setFlash(w, h.cookieSecure, view.FlashError, "Login failed: wrong login ID or password.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h.metrics.Logins.WithLabelValues("error").Inc()
		slog.Error("login user", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.metrics.Logins.WithLabelValues("ok").Inc()
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.auth.SessionTTL().Seconds()),
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleRegisterPage renders the registration form.
// GET /register
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	flash := popFlash(w, r, h.cookieSecure)
	render(w, r, view.RegisterPage(flash))
}

// HandleRegister creates an account and sends the user to the login page.
// POST /register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	_, err := h.auth.Register(r.Context(),
		r.PostFormValue("login_id"),
		r.PostFormValue("nickname"),
		r.PostFormValue("password"),
	)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordTooLong):
			h.metrics.Registrations.WithLabelValues("invalid").Inc()
			setFlash(w, h.cookieSecure, view.FlashError, "Password must be at most 72 bytes.")
		case errors.Is(err, domain.ErrInvalidInput):
			h.metrics.Registrations.WithLabelValues("invalid").Inc()
			setFlash(w, h.cookieSecure, view.FlashError, "Login ID, nickname, and password are all required.")
		case errors.Is(err, domain.ErrDuplicateLoginID):
			h.metrics.Registrations.WithLabelValues("duplicate").Inc()
			setFlash(w, h.cookieSecure, view.FlashError, "That login ID is already taken.")
		default:
			h.metrics.Registrations.WithLabelValues("error").Inc()
			slog.Error("register user", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	h.metrics.Registrations.WithLabelValues("ok").Inc()
	setFlash(w, h.cookieSecure, view.FlashSuccess, "Registration successful. Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLogout revokes the current session and clears the cookie.
// GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), tokenFromContext(r.Context())); err != nil {
		slog.Error("logout user", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
