package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/msomdec/ideabox/internal/handler"
)

func loginToken(t *testing.T, app handler.App, loginID, nickname, password string) string {
	t.Helper()
	ctx := context.Background()
	if _, err := app.Auth.Register(ctx, loginID, nickname, password); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := app.Auth.Login(ctx, loginID, password)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return token
}

func TestRequireAuth_ValidToken(t *testing.T) {
	app := newTestApp(t)
	token := loginToken(t, app, "valid", "Valid User", "password123")

	var gotUser string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := handler.UserFromContext(r.Context()); user != nil {
			gotUser = user.Nickname
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()

	handler.RequireAuth(app.Auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotUser != "Valid User" {
		t.Fatalf("expected user 'Valid User', got %q", gotUser)
	}
}

func TestRequireAuth_RedirectsToLogin(t *testing.T) {
	app := newTestApp(t)
	token := loginToken(t, app, "tamper", "Tamper", "password123")

	tests := []struct {
		name   string
		cookie string
	}{
		{"missing cookie", ""},
		{"garbage token", "invalid.jwt.token"},
		{"tampered token", token[:len(token)-1] + "X"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("inner handler should not be called")
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "auth_token", Value: tc.cookie})
			}
			w := httptest.NewRecorder()

			handler.RequireAuth(app.Auth, inner).ServeHTTP(w, req)

			if w.Code != http.StatusSeeOther {
				t.Fatalf("expected 303, got %d", w.Code)
			}
			if loc := w.Header().Get("Location"); loc != "/login" {
				t.Fatalf("expected redirect to /login, got %q", loc)
			}
		})
	}
}

func TestRequireAuth_RevokedToken(t *testing.T) {
	app := newTestApp(t)
	token := loginToken(t, app, "revoked", "Revoked", "password123")

	if err := app.Auth.Logout(context.Background(), token); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()

	handler.RequireAuth(app.Auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	w := httptest.NewRecorder()

	handler.SecurityHeaders(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy"} {
		if w.Header().Get(h) == "" {
			t.Fatalf("expected %s header to be set", h)
		}
	}
}

func TestRecover(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	w := httptest.NewRecorder()

	handler.Recover(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
