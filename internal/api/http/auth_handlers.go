package http

import (
	"encoding/json"
	"net/http"

	auth "github.com/quizforge/quizforge/internal/auth/middleware"
	"github.com/quizforge/quizforge/internal/users"
)

// POST /auth/register  { "username": "...", "password": "...", "email": "..." }
// Registration always creates a regular user; administrators are
// provisioned from config at startup.
func RegisterHandler(store *users.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Email    string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "", "malformed json body")
			return
		}
		if req.Username == "" {
			badRequest(w, "username", "this field is required")
			return
		}
		if len(req.Password) < 8 {
			badRequest(w, "password", "must be at least 8 characters")
			return
		}
		u, err := store.Create(r.Context(), req.Username, req.Email, req.Password, "user")
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, u)
	}
}

// POST /auth/login  { "username": "...", "password": "..." }
func LoginHandler(store *users.Store, a *auth.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "", "malformed json body")
			return
		}
		u, err := store.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		tok, err := a.IssueJWT(u.ID, u.Role)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": tok,
			"user":         u,
		})
	}
}

// GET /auth/me
func MeHandler(store *users.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := store.Get(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}
