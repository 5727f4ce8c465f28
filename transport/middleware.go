package transport

import (
	"context"
	"net/http"
	"strings"

	"pizzeria/pkg/domain/model"
	"pizzeria/pkg/domain/service"
)

type contextKey int

const userContextKey contextKey = iota

// withUser verifies the bearer token and loads the authenticated user into
// the request context. A token whose subject no longer exists is rejected
// the same way as a bad token.
func (h *Handler) withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, service.ErrInvalidToken)
			return
		}

		userID, err := h.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, err)
			return
		}

		user, err := h.users.Find(userID)
		if err != nil {
			writeError(w, service.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func actor(r *http.Request) *model.User {
	user, _ := r.Context().Value(userContextKey).(*model.User)
	return user
}
