package http

import (
	nethttp "net/http"

	authmw "github.com/quizforge/quizforge/internal/auth/middleware"
)

// GET /me returns the caller's identity as the token carries it.
func MeHandler() nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		user := authmw.IdentityFromContext(r.Context())
		if user.Sub == "" {
			writeErr(w, nethttp.StatusUnauthorized, "unauthorized", "no identity")
			return
		}
		writeJSON(w, nethttp.StatusOK, user)
	}
}
