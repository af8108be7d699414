package web

import (
	"net/http"
	"time"
)

const sessionCookieName = "rb_session"

// sessionID returns the browser session ID from the request, if any.
func sessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// ensureSession returns the existing session ID or issues a new one. The
// cookie is re-sent either way so its lifetime tracks the server-side idle TTL.
func ensureSession(w http.ResponseWriter, r *http.Request, ttl time.Duration) string {
	id, ok := sessionID(r)
	if !ok {
		id = generateToken()
	}
	setSessionCookie(w, id, ttl)
	return id
}

// setSessionCookie issues the session cookie with a fresh expiry.
func setSessionCookie(w http.ResponseWriter, id string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSession expires the session cookie.
func clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
