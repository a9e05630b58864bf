// Package session holds the viewer's "already answered" markers and the
// admin "authenticated" marker as signed cookies. The markers are advisory
// idempotency state, not server-enforced uniqueness: the store itself never
// rejects a duplicate answer, a forged cookie only bypasses the courtesy
// check.
package session

import (
	"net/http"

	"github.com/go-chi/jwtauth"
)

const (
	AnsweredCookie = "sorgu_answered"
	AdminCookie    = "sorgu_admin"
)

type Manager struct {
	auth *jwtauth.JWTAuth
}

func NewManager(secret string) *Manager {
	return &Manager{
		auth: jwtauth.New("HS256", []byte(secret), nil),
	}
}

// Auth exposes the underlying verifier for route middleware.
func (m *Manager) Auth() *jwtauth.JWTAuth {
	return m.auth
}

// Answered returns the ids of the questions this browser already answered.
func (m *Manager) Answered(r *http.Request) []string {
	cookie, err := r.Cookie(AnsweredCookie)
	if err != nil {
		return nil
	}

	token, err := m.auth.Decode(cookie.Value)
	if err != nil {
		// tampered or stale cookie: treat as no markers
		return nil
	}

	claim, ok := token.Get("answered")
	if !ok {
		return nil
	}
	list, ok := claim.([]any)
	if !ok {
		return nil
	}

	ids := make([]string, 0, len(list))
	for _, v := range list {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// HasAnswered reports whether this browser holds a completed-submission
// marker for the question.
func (m *Manager) HasAnswered(r *http.Request, questionID string) bool {
	for _, id := range m.Answered(r) {
		if id == questionID {
			return true
		}
	}
	return false
}

// MarkAnswered records a completed submission for the question. Call only
// after the store append succeeded. The markers have no expiry.
func (m *Manager) MarkAnswered(w http.ResponseWriter, r *http.Request, questionID string) error {
	ids := m.Answered(r)
	for _, id := range ids {
		if id == questionID {
			return nil
		}
	}
	ids = append(ids, questionID)

	_, token, err := m.auth.Encode(map[string]any{"answered": ids})
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     AnsweredCookie,
		Value:    token,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// IssueAdmin unlocks the admin surface for this browser.
func (m *Manager) IssueAdmin(w http.ResponseWriter) error {
	_, token, err := m.auth.Encode(map[string]any{"roles": "admin"})
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     AdminCookie,
		Value:    token,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearAdmin drops the admin marker.
func (m *Manager) ClearAdmin(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     AdminCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// AdminTokenFromCookie extracts the admin marker for jwtauth.Verify.
func AdminTokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(AdminCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
