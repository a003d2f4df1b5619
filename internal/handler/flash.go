package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"quizmaster/internal/view"
)

const flashCookieName = "flash"

// setFlash queues a one-shot message for the next rendered page. A cookie is
// used rather than the server-side session so pre-login pages (register,
// login) can flash too.
func (h *Handler) setFlash(w http.ResponseWriter, level, text string) {
	data, err := json.Marshal(view.Flash{Level: level, Text: text})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.config.SecureCookies,
	})
}

// popFlash reads and clears the pending flash message, if any.
func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request) *view.Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.SecureCookies,
	})
	data, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var f view.Flash
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	return &f
}
