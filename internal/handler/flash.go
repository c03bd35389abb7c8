package handler

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/msomdec/ideabox/internal/view"
)

const flashCookieName = "flash"

// setFlash stores a one-shot message to be shown by the next page render.
// secure mirrors the auth cookie setting.
func setFlash(w http.ResponseWriter, secure bool, kind view.FlashKind, message string) {
	value := base64.RawURLEncoding.EncodeToString([]byte(string(kind) + "\x00" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// popFlash reads and clears the pending flash message. It must run before
// the response body is written.
func popFlash(w http.ResponseWriter, r *http.Request, secure bool) view.Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return view.Flash{}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return view.Flash{}
	}
	kind, message, ok := strings.Cut(string(decoded), "\x00")
	if !ok {
		return view.Flash{}
	}
	switch view.FlashKind(kind) {
	case view.FlashSuccess, view.FlashError:
		return view.Flash{Kind: view.FlashKind(kind), Message: message}
	default:
		return view.Flash{}
	}
}
