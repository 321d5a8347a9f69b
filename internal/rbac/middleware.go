package rbac

import (
	"encoding/json"
	"net/http"
)

// Require enforces an action whose decision does not depend on ownership.
// Ownership-sensitive actions (quiz update/delete) are decided in the
// handler once the target object is loaded, through the same Allowed
// function.
func Require(action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == "" || !Allowed(action, role, false) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]string{
						"code":    "permission_denied",
						"message": "user does not have the required role to perform this action",
					},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
