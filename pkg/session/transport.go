package session

import (
	"net/http"
	"strings"
	"time"
)

// Transport carries the session token between client and server.
type Transport interface {
	Token(r *http.Request) (string, bool)
	Issue(w http.ResponseWriter, token string, ttl time.Duration)
	Revoke(w http.ResponseWriter)
}

// CookieTransport keeps the token in an HTTP-only, SameSite=Lax cookie.
type CookieTransport struct {
	Name   string
	Secure bool
}

func (t CookieTransport) Token(r *http.Request) (string, bool) {
	c, err := r.Cookie(t.Name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (t CookieTransport) Issue(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, t.cookie(token, int(ttl.Seconds())))
}

func (t CookieTransport) Revoke(w http.ResponseWriter) {
	http.SetCookie(w, t.cookie("", -1))
}

func (t CookieTransport) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     t.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   t.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// HeaderTransport reads the token from a request header and echoes new tokens
// in the same response header. Suited to API clients without cookie jars.
type HeaderTransport struct {
	Name string
}

func (t HeaderTransport) Token(r *http.Request) (string, bool) {
	v := strings.TrimSpace(r.Header.Get(t.Name))
	return v, v != ""
}

func (t HeaderTransport) Issue(w http.ResponseWriter, token string, _ time.Duration) {
	w.Header().Set(t.Name, token)
}

func (t HeaderTransport) Revoke(w http.ResponseWriter) {
	w.Header().Del(t.Name)
}
