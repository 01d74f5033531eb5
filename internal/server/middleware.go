package server

import (
	"context"
	"net/http"

	"github.com/errandly/errand-service/internal/repository"
)

type contextKey string

const userContextKey contextKey = "authenticated_user"

// basicAuthMiddleware resolves the verified (userID, userType) identity the
// lifecycle engine trusts. Credential checks live in the user repository.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := s.userRepo.ValidateUser(r.Context(), username, password)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromContext(ctx context.Context) (*repository.User, bool) {
	user, ok := ctx.Value(userContextKey).(*repository.User)
	return user, ok
}
